package apperr

import (
	"errors"
	"net/http"
)

// HTTPStatus maps a domain error to the HTTP status code handlers return:
// validation 400, precondition conflict 409, not found 404, everything else
// (persistence failures included) 500.
func HTTPStatus(err error) int {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest
	}
	var pe *PreconditionError
	if errors.As(err, &pe) {
		return http.StatusConflict
	}
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// Envelope renders the caller-facing error body. Field-attributed errors carry
// a field_errors map so the client can re-prompt for the one bad input.
func Envelope(err error) map[string]interface{} {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return map[string]interface{}{
			"success":      false,
			"message":      ve.Message,
			"field_errors": map[string]string{ve.Field: ve.Message},
		}
	}
	var pe *PreconditionError
	if errors.As(err, &pe) {
		return map[string]interface{}{
			"success":      false,
			"message":      pe.Message,
			"field_errors": map[string]string{pe.Field: pe.Message},
		}
	}
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return map[string]interface{}{
			"success": false,
			"message": nf.Error(),
		}
	}
	return map[string]interface{}{
		"success": false,
		"message": "operation failed, please retry",
	}
}

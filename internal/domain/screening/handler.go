package screening

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/carelink/carelink/internal/domain/apperr"
	"github.com/carelink/carelink/internal/platform/auth"
	"github.com/carelink/carelink/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	// Submission is subject-facing; the review endpoints are staff-only.
	api.POST("/screenings/:kind", h.SubmitScreening)

	staff := api.Group("", auth.RequireRole("admin", "staff"))
	staff.GET("/screenings/:kind", h.ListScreenings)
	staff.GET("/screenings/:kind/:id", h.GetScreening)
}

func (h *Handler) SubmitScreening(c echo.Context) error {
	ctx := c.Request().Context()
	userID := auth.UserIDFromContext(ctx)

	var result *SubmitResult
	var err error
	switch c.Param("kind") {
	case KindHIV:
		var sub HIVScreening
		if err := c.Bind(&sub); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		result, err = h.svc.SubmitHIV(ctx, userID, &sub)
	case KindGBV:
		var sub GBVScreening
		if err := c.Bind(&sub); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		result, err = h.svc.SubmitGBV(ctx, userID, &sub)
	case KindPrEP:
		var sub PrEPScreening
		if err := c.Bind(&sub); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		result, err = h.svc.SubmitPrEP(ctx, userID, &sub)
	case KindSTI:
		var sub STIScreening
		if err := c.Bind(&sub); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		result, err = h.svc.SubmitSTI(ctx, userID, &sub)
	default:
		return echo.NewHTTPError(http.StatusNotFound, "unknown screening kind")
	}
	if err != nil {
		return c.JSON(apperr.HTTPStatus(err), apperr.Envelope(err))
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success":          true,
		"message":          result.Message,
		"screening_id":     result.ScreeningID,
		"referral_id":      result.ReferralID,
		"referral_message": result.ReferralMessage,
	})
}

func (h *Handler) ListScreenings(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), c.Param("kind"), pg.Limit, pg.Offset)
	if err != nil {
		return c.JSON(apperr.HTTPStatus(err), apperr.Envelope(err))
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) GetScreening(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	scr, err := h.svc.Get(c.Request().Context(), c.Param("kind"), id)
	if err != nil {
		return c.JSON(apperr.HTTPStatus(err), apperr.Envelope(err))
	}
	return c.JSON(http.StatusOK, scr)
}

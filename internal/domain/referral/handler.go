package referral

import (
	"net/http"
	"time"

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
	// Consent is the subject-facing write; everything else is staff-only.
	api.POST("/referrals/:id/consent", h.RecordConsent)

	staff := api.Group("", auth.RequireRole("admin", "staff"))
	staff.GET("/referrals", h.ListReferrals)
	staff.GET("/referrals/:id", h.GetReferral)
	staff.PUT("/referrals/:id/status", h.UpdateStatus)
	staff.PUT("/referrals/:id/appointment", h.ScheduleAppointment)
	staff.DELETE("/referrals/:id", h.DeleteReferral)
}

func (h *Handler) RecordConsent(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req ConsentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	r, err := h.svc.RecordConsent(c.Request().Context(), id, req)
	if err != nil {
		return c.JSON(apperr.HTTPStatus(err), apperr.Envelope(err))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":  true,
		"message":  "consent recorded, your referral has been routed for review",
		"referral": r,
	})
}

func (h *Handler) ListReferrals(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListConsented(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) GetReferral(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	r, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return c.JSON(apperr.HTTPStatus(err), apperr.Envelope(err))
	}
	return c.JSON(http.StatusOK, r)
}

type updateStatusRequest struct {
	Status   string   `json:"status"`
	Notes    *string  `json:"notes,omitempty"`
	Services []string `json:"services,omitempty"`
}

func (h *Handler) UpdateStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	r, err := h.svc.UpdateStatus(c.Request().Context(), id, req.Status, req.Notes, req.Services)
	if err != nil {
		return c.JSON(apperr.HTTPStatus(err), apperr.Envelope(err))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "referral": r})
}

type scheduleAppointmentRequest struct {
	AppointmentAt time.Time `json:"appointment_at"`
}

func (h *Handler) ScheduleAppointment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req scheduleAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	r, err := h.svc.ScheduleAppointment(c.Request().Context(), id, req.AppointmentAt)
	if err != nil {
		return c.JSON(apperr.HTTPStatus(err), apperr.Envelope(err))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "referral": r})
}

func (h *Handler) DeleteReferral(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return c.JSON(apperr.HTTPStatus(err), apperr.Envelope(err))
	}
	return c.NoContent(http.StatusNoContent)
}

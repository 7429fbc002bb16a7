package admin

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/carelink/carelink/internal/domain/apperr"
	"github.com/carelink/carelink/internal/platform/auth"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	exporter *Exporter
}

func NewHandler(exporter *Exporter) *Handler {
	return &Handler{exporter: exporter}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	staff := api.Group("", auth.RequireRole("admin", "staff"))
	staff.GET("/admin/export/screenings/:kind", h.ExportScreenings)
	staff.GET("/admin/export/referrals", h.ExportReferrals)
}

func (h *Handler) ExportScreenings(c echo.Context) error {
	kind := c.Param("kind")
	data, err := h.exporter.ExportScreenings(c.Request().Context(), kind)
	if err != nil {
		return c.JSON(apperr.HTTPStatus(err), apperr.Envelope(err))
	}
	filename := "screenings-" + kind + "-" + time.Now().Format("2006-01-02") + ".xlsx"
	c.Response().Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, xlsxContentType, data)
}

func (h *Handler) ExportReferrals(c echo.Context) error {
	data, err := h.exporter.ExportReferrals(c.Request().Context())
	if err != nil {
		return c.JSON(apperr.HTTPStatus(err), apperr.Envelope(err))
	}
	filename := "referrals-" + time.Now().Format("2006-01-02") + ".xlsx"
	c.Response().Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, xlsxContentType, data)
}

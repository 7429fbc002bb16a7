package facility

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/facilities/regions", h.ListRegions)
	api.GET("/facilities/regions/:region/constituencies", h.ListConstituencies)
	api.GET("/facilities/regions/:region/constituencies/:constituency/facilities", h.ListFacilities)
}

func (h *Handler) ListRegions(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{"regions": h.svc.Regions()})
}

func (h *Handler) ListConstituencies(c echo.Context) error {
	constituencies, ok := h.svc.Constituencies(c.Param("region"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown region")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"constituencies": constituencies})
}

func (h *Handler) ListFacilities(c echo.Context) error {
	facilities, ok := h.svc.Facilities(c.Param("region"), c.Param("constituency"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown region or constituency")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"facilities": facilities})
}

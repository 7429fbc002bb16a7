package chat

import (
	"net/http"

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
	api.GET("/chat/:conversation/messages", h.History)
	api.POST("/chat/:conversation/messages", h.Send)
}

type sendRequest struct {
	Body string `json:"body"`
}

func (h *Handler) Send(c echo.Context) error {
	var req sendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ctx := c.Request().Context()
	m := &Message{
		Conversation: c.Param("conversation"),
		SenderID:     auth.UserIDFromContext(ctx),
		SenderRole:   senderRole(auth.RolesFromContext(ctx)),
		Body:         req.Body,
	}
	if err := h.svc.Send(ctx, m); err != nil {
		return c.JSON(apperr.HTTPStatus(err), apperr.Envelope(err))
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *Handler) History(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.History(c.Request().Context(), c.Param("conversation"), pg.Limit, pg.Offset)
	if err != nil {
		return c.JSON(apperr.HTTPStatus(err), apperr.Envelope(err))
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func senderRole(roles []string) string {
	for _, r := range roles {
		if r == "admin" || r == "staff" {
			return "staff"
		}
	}
	return "subject"
}

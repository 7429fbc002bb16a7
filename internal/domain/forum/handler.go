package forum

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
	api.GET("/forum/posts", h.ListPosts)
	api.POST("/forum/posts", h.CreatePost)
	api.GET("/forum/posts/:id/comments", h.ListComments)
	api.POST("/forum/posts/:id/comments", h.AddComment)

	staff := api.Group("", auth.RequireRole("admin", "staff"))
	staff.GET("/forum/posts/pending", h.ListPending)
	staff.PUT("/forum/posts/:id/moderate", h.Moderate)
	staff.DELETE("/forum/posts/:id", h.DeletePost)
}

type postRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (h *Handler) CreatePost(c echo.Context) error {
	var req postRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ctx := c.Request().Context()
	p := &Post{AuthorID: auth.UserIDFromContext(ctx), Title: req.Title, Body: req.Body}
	if err := h.svc.CreatePost(ctx, p); err != nil {
		return c.JSON(apperr.HTTPStatus(err), apperr.Envelope(err))
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) ListPosts(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListApproved(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) ListPending(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListPending(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

type moderateRequest struct {
	Status string `json:"status"`
}

func (h *Handler) Moderate(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req moderateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p, err := h.svc.Moderate(c.Request().Context(), id, req.Status)
	if err != nil {
		return c.JSON(apperr.HTTPStatus(err), apperr.Envelope(err))
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) DeletePost(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeletePost(c.Request().Context(), id); err != nil {
		return c.JSON(apperr.HTTPStatus(err), apperr.Envelope(err))
	}
	return c.NoContent(http.StatusNoContent)
}

type commentRequest struct {
	Body string `json:"body"`
}

func (h *Handler) AddComment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ctx := c.Request().Context()
	comment := &Comment{PostID: id, AuthorID: auth.UserIDFromContext(ctx), Body: req.Body}
	if err := h.svc.AddComment(ctx, comment); err != nil {
		return c.JSON(apperr.HTTPStatus(err), apperr.Envelope(err))
	}
	return c.JSON(http.StatusCreated, comment)
}

func (h *Handler) ListComments(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListComments(c.Request().Context(), id, pg.Limit, pg.Offset)
	if err != nil {
		return c.JSON(apperr.HTTPStatus(err), apperr.Envelope(err))
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

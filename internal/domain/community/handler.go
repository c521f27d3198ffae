package community

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mamacare/mamacare/internal/domain/account"
	"github.com/mamacare/mamacare/internal/platform/auth"
	"github.com/mamacare/mamacare/pkg/pagination"
)

type Handler struct {
	svc      *Service
	accounts *account.Service
}

func NewHandler(svc *Service, accounts *account.Service) *Handler {
	return &Handler{svc: svc, accounts: accounts}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/posts", h.CreatePost)
	api.GET("/posts", h.ListPosts)
	api.GET("/posts/:id", h.GetPost)
	api.PUT("/posts/:id", h.UpdatePost)
	api.DELETE("/posts/:id", h.DeletePost)

	api.POST("/posts/:id/comments", h.AddComment)
	api.GET("/posts/:id/comments", h.ListComments)
	api.DELETE("/comments/:id", h.DeleteComment)
}

func (h *Handler) caller(c echo.Context) (*account.Account, error) {
	subject := auth.UserIDFromContext(c.Request().Context())
	a, err := h.accounts.GetBySubject(c.Request().Context(), subject)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "no registered account")
	}
	return a, nil
}

type createPostRequest struct {
	Topic string `json:"topic,omitempty"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (h *Handler) CreatePost(c echo.Context) error {
	caller, err := h.caller(c)
	if err != nil {
		return err
	}
	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p := Post{
		AccountID:  caller.ID,
		AuthorName: caller.FullName,
		Topic:      req.Topic,
		Title:      req.Title,
		Body:       req.Body,
	}
	if err := h.svc.CreatePost(c.Request().Context(), &p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) ListPosts(c echo.Context) error {
	if _, err := h.caller(c); err != nil {
		return err
	}
	pg := pagination.FromContext(c)
	topic := c.QueryParam("topic")
	items, total, err := h.svc.ListPosts(c.Request().Context(), topic, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) GetPost(c echo.Context) error {
	if _, err := h.caller(c); err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	p, err := h.svc.GetPost(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "post not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) UpdatePost(c echo.Context) error {
	caller, err := h.caller(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var p Post
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p.ID = id
	updated, err := h.svc.UpdatePost(c.Request().Context(), caller.ID, &p)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeletePost(c echo.Context) error {
	caller, err := h.caller(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeletePost(c.Request().Context(), caller.ID, id); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "post not found")
	}
	return c.NoContent(http.StatusNoContent)
}

type addCommentRequest struct {
	Body string `json:"body"`
}

func (h *Handler) AddComment(c echo.Context) error {
	caller, err := h.caller(c)
	if err != nil {
		return err
	}
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req addCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	cm := Comment{
		PostID:     postID,
		AccountID:  caller.ID,
		AuthorName: caller.FullName,
		Body:       req.Body,
	}
	if err := h.svc.AddComment(c.Request().Context(), &cm); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, cm)
}

func (h *Handler) ListComments(c echo.Context) error {
	if _, err := h.caller(c); err != nil {
		return err
	}
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListComments(c.Request().Context(), postID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "post not found")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) DeleteComment(c echo.Context) error {
	caller, err := h.caller(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteComment(c.Request().Context(), caller.ID, id); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "comment not found")
	}
	return c.NoContent(http.StatusNoContent)
}

package reminder

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mamacare/mamacare/internal/domain/account"
	"github.com/mamacare/mamacare/internal/platform/auth"
	"github.com/mamacare/mamacare/internal/schedule"
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
	api.POST("/reminders", h.Create)
	api.GET("/reminders", h.List)
	api.GET("/reminders/:id", h.Get)
	api.DELETE("/reminders/:id", h.Delete)
}

func (h *Handler) caller(c echo.Context) (*account.Account, error) {
	subject := auth.UserIDFromContext(c.Request().Context())
	a, err := h.accounts.GetBySubject(c.Request().Context(), subject)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "no registered account")
	}
	return a, nil
}

type createReminderRequest struct {
	Kind    string `json:"kind,omitempty"`
	Title   string `json:"title"`
	Body    string `json:"body,omitempty"`
	DueDate string `json:"due_date"`
}

func (h *Handler) Create(c echo.Context) error {
	caller, err := h.caller(c)
	if err != nil {
		return err
	}
	var req createReminderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	due, err := schedule.ParseAnchor(req.DueDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid due_date, expected YYYY-MM-DD")
	}
	r := Reminder{
		AccountID: caller.ID,
		Kind:      req.Kind,
		Title:     req.Title,
		Body:      req.Body,
		DueDate:   due,
	}
	if err := h.svc.Create(c.Request().Context(), &r); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, r)
}

func (h *Handler) List(c echo.Context) error {
	caller, err := h.caller(c)
	if err != nil {
		return err
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListByAccount(c.Request().Context(), caller.ID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) Get(c echo.Context) error {
	caller, err := h.caller(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	r, err := h.svc.Get(c.Request().Context(), caller.ID, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "reminder not found")
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) Delete(c echo.Context) error {
	caller, err := h.caller(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Delete(c.Request().Context(), caller.ID, id); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "reminder not found")
	}
	return c.NoContent(http.StatusNoContent)
}

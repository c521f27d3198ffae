package account

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mamacare/mamacare/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/accounts", h.Register)
	api.GET("/accounts/me", h.GetMe)
	api.PUT("/accounts/me", h.UpdateMe)
	api.DELETE("/accounts/me", h.DeleteMe)
}

// Register creates (or returns) the caller's profile.
func (h *Handler) Register(c echo.Context) error {
	var a Account
	if err := c.Bind(&a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a.Subject = auth.UserIDFromContext(c.Request().Context())
	if a.Subject == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "no authenticated subject")
	}

	created, err := h.svc.Register(c.Request().Context(), &a)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) GetMe(c echo.Context) error {
	subject := auth.UserIDFromContext(c.Request().Context())
	a, err := h.svc.GetBySubject(c.Request().Context(), subject)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "account not found")
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) UpdateMe(c echo.Context) error {
	subject := auth.UserIDFromContext(c.Request().Context())
	existing, err := h.svc.GetBySubject(c.Request().Context(), subject)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "account not found")
	}

	var a Account
	if err := c.Bind(&a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a.ID = existing.ID
	a.Subject = existing.Subject
	if err := h.svc.Update(c.Request().Context(), &a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) DeleteMe(c echo.Context) error {
	subject := auth.UserIDFromContext(c.Request().Context())
	existing, err := h.svc.GetBySubject(c.Request().Context(), subject)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "account not found")
	}
	if err := h.svc.Delete(c.Request().Context(), existing.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

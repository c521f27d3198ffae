package child

import (
	"net/http"
	"time"

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
	api.POST("/children", h.Create)
	api.GET("/children", h.List)
	api.GET("/children/:id", h.Get)
	api.PUT("/children/:id", h.Update)
	api.DELETE("/children/:id", h.Delete)

	api.GET("/children/:id/schedule", h.Schedule)
	api.GET("/children/:id/next-dose", h.NextDose)
	api.GET("/children/:id/progress", h.Progress)
	api.POST("/children/:id/administer", h.Administer)
}

// caller resolves the authenticated caregiver's account.
func (h *Handler) caller(c echo.Context) (*account.Account, error) {
	subject := auth.UserIDFromContext(c.Request().Context())
	a, err := h.accounts.GetBySubject(c.Request().Context(), subject)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "no registered account")
	}
	return a, nil
}

type createChildRequest struct {
	Name        string   `json:"name"`
	DateOfBirth string   `json:"date_of_birth"`
	Gender      *string  `json:"gender,omitempty"`
	BirthWeight *float64 `json:"birth_weight_kg,omitempty"`
}

func (h *Handler) Create(c echo.Context) error {
	caller, err := h.caller(c)
	if err != nil {
		return err
	}

	var req createChildRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	dob, err := schedule.ParseAnchor(req.DateOfBirth)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date_of_birth, expected YYYY-MM-DD")
	}

	ch := Child{
		AccountID:   caller.ID,
		Name:        req.Name,
		DateOfBirth: dob,
		Gender:      req.Gender,
		BirthWeight: req.BirthWeight,
	}
	if err := h.svc.Create(c.Request().Context(), &ch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, ch)
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
	ch, err := h.svc.Get(c.Request().Context(), caller.ID, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "child not found")
	}
	return c.JSON(http.StatusOK, ch)
}

func (h *Handler) Update(c echo.Context) error {
	caller, err := h.caller(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var ch Child
	if err := c.Bind(&ch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ch.ID = id
	if err := h.svc.Update(c.Request().Context(), caller.ID, &ch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, ch)
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
		return echo.NewHTTPError(http.StatusNotFound, "child not found")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Schedule(c echo.Context) error {
	caller, err := h.caller(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	records, err := h.svc.Schedule(c.Request().Context(), caller.ID, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "child not found")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"data": records})
}

func (h *Handler) NextDose(c echo.Context) error {
	caller, err := h.caller(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	next, err := h.svc.NextDose(c.Request().Context(), caller.ID, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "child not found")
	}
	if next == nil {
		return c.JSON(http.StatusOK, map[string]interface{}{"next_dose": nil, "complete": true})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"next_dose": next, "complete": false})
}

func (h *Handler) Progress(c echo.Context) error {
	caller, err := h.caller(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	p, err := h.svc.Progress(c.Request().Context(), caller.ID, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "child not found")
	}
	return c.JSON(http.StatusOK, p)
}

type administerRequest struct {
	VaccineName string `json:"vaccine_name"`
	Dose        int    `json:"dose"`
	Date        string `json:"date,omitempty"`
}

func (h *Handler) Administer(c echo.Context) error {
	caller, err := h.caller(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req administerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	// Dose 0 is valid: birth doses (e.g. OPV) use it.
	if req.VaccineName == "" || req.Dose < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "vaccine_name and dose are required")
	}

	var givenAt time.Time
	if req.Date != "" {
		givenAt, err = schedule.ParseAnchor(req.Date)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		}
	}

	rec, err := h.svc.Administer(c.Request().Context(), caller.ID, id, req.VaccineName, req.Dose, givenAt)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, rec)
}

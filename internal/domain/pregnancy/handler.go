package pregnancy

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
	api.POST("/pregnancies", h.Create)
	api.GET("/pregnancies", h.List)
	api.GET("/pregnancies/:id", h.Get)
	api.PUT("/pregnancies/:id", h.Update)
	api.DELETE("/pregnancies/:id", h.Delete)

	api.GET("/pregnancies/:id/schedule", h.Schedule)
	api.GET("/pregnancies/:id/next-visit", h.NextVisit)
	api.GET("/pregnancies/:id/progress", h.Progress)
	api.POST("/pregnancies/:id/attend", h.Attend)
	api.GET("/pregnancies/:id/risk", h.Risk)
}

func (h *Handler) caller(c echo.Context) (*account.Account, error) {
	subject := auth.UserIDFromContext(c.Request().Context())
	a, err := h.accounts.GetBySubject(c.Request().Context(), subject)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "no registered account")
	}
	return a, nil
}

type createPregnancyRequest struct {
	LMP               string `json:"lmp"`
	MaternalAge       int    `json:"maternal_age"`
	IFASStarted       bool   `json:"ifas_started"`
	TetanusVaccinated bool   `json:"tetanus_vaccinated"`
}

func (h *Handler) Create(c echo.Context) error {
	caller, err := h.caller(c)
	if err != nil {
		return err
	}

	var req createPregnancyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	lmp, err := schedule.ParseAnchor(req.LMP)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid lmp, expected YYYY-MM-DD")
	}

	p := Pregnancy{
		AccountID:         caller.ID,
		LMP:               lmp,
		MaternalAge:       req.MaternalAge,
		IFASStarted:       req.IFASStarted,
		TetanusVaccinated: req.TetanusVaccinated,
	}
	if err := h.svc.Create(c.Request().Context(), &p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, p)
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
	p, err := h.svc.Get(c.Request().Context(), caller.ID, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "pregnancy not found")
	}
	return c.JSON(http.StatusOK, p)
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
	var p Pregnancy
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p.ID = id
	if err := h.svc.Update(c.Request().Context(), caller.ID, &p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, p)
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
		return echo.NewHTTPError(http.StatusNotFound, "pregnancy not found")
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
	visits, err := h.svc.Schedule(c.Request().Context(), caller.ID, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "pregnancy not found")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"data": visits})
}

func (h *Handler) NextVisit(c echo.Context) error {
	caller, err := h.caller(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	next, err := h.svc.NextVisit(c.Request().Context(), caller.ID, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "pregnancy not found")
	}
	if next == nil {
		return c.JSON(http.StatusOK, map[string]interface{}{"next_visit": nil, "complete": true})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"next_visit": next, "complete": false})
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
		return echo.NewHTTPError(http.StatusNotFound, "pregnancy not found")
	}
	return c.JSON(http.StatusOK, p)
}

type attendRequest struct {
	Contact        int      `json:"contact"`
	Date           string   `json:"date,omitempty"`
	Notes          *string  `json:"notes,omitempty"`
	WeightKg       *float64 `json:"weight_kg,omitempty"`
	BloodPressure  *string  `json:"blood_pressure,omitempty"`
	FundalHeightCm *float64 `json:"fundal_height_cm,omitempty"`
}

func (h *Handler) Attend(c echo.Context) error {
	caller, err := h.caller(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req attendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Contact < 1 || req.Contact > len(schedule.ANCSchedule) {
		return echo.NewHTTPError(http.StatusBadRequest, "contact must be between 1 and 8")
	}

	var attendedAt time.Time
	if req.Date != "" {
		attendedAt, err = schedule.ParseAnchor(req.Date)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		}
	}

	vitals := &Vitals{
		WeightKg:       req.WeightKg,
		BloodPressure:  req.BloodPressure,
		FundalHeightCm: req.FundalHeightCm,
	}
	v, err := h.svc.Attend(c.Request().Context(), caller.ID, id, req.Contact, attendedAt, req.Notes, vitals)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, v)
}

func (h *Handler) Risk(c echo.Context) error {
	caller, err := h.caller(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	assessment, err := h.svc.Risk(c.Request().Context(), caller.ID, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "pregnancy not found")
	}
	return c.JSON(http.StatusOK, assessment)
}

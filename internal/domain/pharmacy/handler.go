package pharmacy

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinicore/clinicore/internal/platform/auth"
	"github.com/clinicore/clinicore/internal/platform/httperr"
	"github.com/clinicore/clinicore/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	readGroup := api.Group("", auth.RequireRole("physician", "nurse", "pharmacist"))
	readGroup.GET("/prescriptions", h.List)
	readGroup.GET("/prescriptions/:id", h.Get)
	readGroup.GET("/prescriptions/:id/dispenses", h.Dispenses)

	physGroup := api.Group("", auth.RequireRole("physician"))
	physGroup.POST("/prescriptions", h.Prescribe)
	physGroup.POST("/prescriptions/:id/cancel", h.Cancel)

	pharmGroup := api.Group("", auth.RequireRole("pharmacist"))
	pharmGroup.POST("/prescriptions/:id/dispense", h.Dispense)
}

func (h *Handler) Prescribe(c echo.Context) error {
	var p Prescription
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if p.PrescribedBy == uuid.Nil {
		p.PrescribedBy = auth.UserIDFromContext(c.Request().Context())
	}
	if err := h.svc.Prescribe(c.Request().Context(), &p); err != nil {
		return httperr.Map(err, "prescription not found")
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	p, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return httperr.Map(err, "prescription not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	var patientID uuid.UUID
	if s := c.QueryParam("patient_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
		}
		patientID = id
	}
	items, total, err := h.svc.List(c.Request().Context(), patientID, c.QueryParam("status"), pg.Limit, pg.Offset)
	if err != nil {
		return httperr.Map(err, "prescription not found")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) Cancel(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	p, err := h.svc.Cancel(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotDispensable) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return httperr.Map(err, "prescription not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) Dispense(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var d DispenseRecord
	if err := c.Bind(&d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	d.PrescriptionID = id
	if d.DispensedBy == uuid.Nil {
		d.DispensedBy = auth.UserIDFromContext(c.Request().Context())
	}
	if err := h.svc.Dispense(c.Request().Context(), &d); err != nil {
		if errors.Is(err, ErrNotDispensable) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return httperr.Map(err, "prescription not found")
	}
	return c.JSON(http.StatusCreated, d)
}

func (h *Handler) Dispenses(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	records, err := h.svc.Dispenses(c.Request().Context(), id)
	if err != nil {
		return httperr.Map(err, "prescription not found")
	}
	return c.JSON(http.StatusOK, records)
}

package beds

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinicore/clinicore/internal/platform/auth"
	"github.com/clinicore/clinicore/internal/platform/db"
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
	readGroup := api.Group("", auth.RequireRole("physician", "nurse", "receptionist"))
	readGroup.GET("/wards", h.ListWards)
	readGroup.GET("/beds", h.ListBeds)
	readGroup.GET("/beds/:id", h.GetBed)
	readGroup.GET("/beds/occupancy", h.Occupancy)

	nurseGroup := api.Group("", auth.RequireRole("nurse"))
	nurseGroup.POST("/beds/:id/assign", h.Assign)
	nurseGroup.POST("/beds/:id/release", h.Release)

	adminGroup := api.Group("", auth.RequireRole("admin"))
	adminGroup.POST("/wards", h.CreateWard)
	adminGroup.DELETE("/wards/:id", h.DeleteWard)
	adminGroup.POST("/beds", h.CreateBed)
	adminGroup.DELETE("/beds/:id", h.DeleteBed)
}

func (h *Handler) CreateWard(c echo.Context) error {
	var w Ward
	if err := c.Bind(&w); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateWard(c.Request().Context(), &w); err != nil {
		if db.IsConflict(err) {
			return echo.NewHTTPError(http.StatusConflict, "ward name already in use")
		}
		return httperr.Map(err, "ward not found")
	}
	return c.JSON(http.StatusCreated, w)
}

func (h *Handler) ListWards(c echo.Context) error {
	wards, err := h.svc.ListWards(c.Request().Context())
	if err != nil {
		return httperr.Map(err, "ward not found")
	}
	return c.JSON(http.StatusOK, wards)
}

func (h *Handler) DeleteWard(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteWard(c.Request().Context(), id); err != nil {
		return httperr.Map(err, "ward not found")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) CreateBed(c echo.Context) error {
	var b Bed
	if err := c.Bind(&b); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateBed(c.Request().Context(), &b); err != nil {
		if db.IsConflict(err) {
			return echo.NewHTTPError(http.StatusConflict, "bed label already in use in this ward")
		}
		return httperr.Map(err, "bed not found")
	}
	return c.JSON(http.StatusCreated, b)
}

func (h *Handler) GetBed(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	b, err := h.svc.GetBed(c.Request().Context(), id)
	if err != nil {
		return httperr.Map(err, "bed not found")
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) ListBeds(c echo.Context) error {
	pg := pagination.FromContext(c)
	var wardID uuid.UUID
	if s := c.QueryParam("ward_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid ward_id")
		}
		wardID = id
	}
	beds, total, err := h.svc.ListBeds(c.Request().Context(), wardID, c.QueryParam("status"), pg.Limit, pg.Offset)
	if err != nil {
		return httperr.Map(err, "bed not found")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(beds, total, pg.Limit, pg.Offset))
}

type assignRequest struct {
	PatientID uuid.UUID `json:"patient_id"`
}

func (h *Handler) Assign(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req assignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	b, err := h.svc.Assign(c.Request().Context(), id, req.PatientID)
	if err != nil {
		if errors.Is(err, ErrBedOccupied) || errors.Is(err, ErrBedUnavailable) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return httperr.Map(err, "bed not found")
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) Release(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	b, err := h.svc.Release(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrBedNotOccupied) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return httperr.Map(err, "bed not found")
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) DeleteBed(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteBed(c.Request().Context(), id); err != nil {
		return httperr.Map(err, "bed not found")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Occupancy(c echo.Context) error {
	occ, err := h.svc.Occupancy(c.Request().Context())
	if err != nil {
		return httperr.Map(err, "occupancy not found")
	}
	return c.JSON(http.StatusOK, occ)
}

package hr

import (
	"errors"
	"net/http"
	"time"

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
	readGroup := api.Group("", auth.RequireRole("physician", "nurse", "receptionist"))
	readGroup.GET("/staff", h.ListStaff)
	readGroup.GET("/staff/:id", h.GetStaff)
	readGroup.GET("/shifts", h.ListShifts)

	adminGroup := api.Group("", auth.RequireRole("admin"))
	adminGroup.POST("/staff", h.CreateStaff)
	adminGroup.PUT("/staff/:id", h.UpdateStaff)
	adminGroup.POST("/shifts", h.Schedule)
	adminGroup.DELETE("/shifts/:id", h.DeleteShift)
}

func (h *Handler) CreateStaff(c echo.Context) error {
	var st Staff
	if err := c.Bind(&st); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateStaff(c.Request().Context(), &st); err != nil {
		return httperr.Map(err, "staff member not found")
	}
	return c.JSON(http.StatusCreated, st)
}

func (h *Handler) GetStaff(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	st, err := h.svc.GetStaff(c.Request().Context(), id)
	if err != nil {
		return httperr.Map(err, "staff member not found")
	}
	return c.JSON(http.StatusOK, st)
}

func (h *Handler) UpdateStaff(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var st Staff
	if err := c.Bind(&st); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	st.ID = id
	if err := h.svc.UpdateStaff(c.Request().Context(), &st); err != nil {
		return httperr.Map(err, "staff member not found")
	}
	return c.JSON(http.StatusOK, st)
}

func (h *Handler) ListStaff(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListStaff(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return httperr.Map(err, "staff member not found")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) Schedule(c echo.Context) error {
	var sh Shift
	if err := c.Bind(&sh); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Schedule(c.Request().Context(), &sh); err != nil {
		if errors.Is(err, ErrShiftOverlap) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return httperr.Map(err, "staff member not found")
	}
	return c.JSON(http.StatusCreated, sh)
}

func (h *Handler) ListShifts(c echo.Context) error {
	pg := pagination.FromContext(c)
	var staffID uuid.UUID
	if s := c.QueryParam("staff_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid staff_id")
		}
		staffID = id
	}
	var day time.Time
	if s := c.QueryParam("date"); s != "" {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
		}
		day = d
	}
	shifts, total, err := h.svc.ListShifts(c.Request().Context(), staffID, day, pg.Limit, pg.Offset)
	if err != nil {
		return httperr.Map(err, "shift not found")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(shifts, total, pg.Limit, pg.Offset))
}

func (h *Handler) DeleteShift(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteShift(c.Request().Context(), id); err != nil {
		return httperr.Map(err, "shift not found")
	}
	return c.NoContent(http.StatusNoContent)
}

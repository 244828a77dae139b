package alerts

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
	group := api.Group("", auth.RequireRole("physician", "nurse", "receptionist", "lab_tech", "pharmacist", "billing_clerk"))
	group.GET("/alerts", h.List)
	group.GET("/alerts/:id", h.Get)
	group.POST("/alerts", h.Raise)
	group.POST("/alerts/:id/ack", h.Acknowledge)
	group.POST("/alerts/:id/resolve", h.Resolve)
}

func (h *Handler) Raise(c echo.Context) error {
	var a Alert
	if err := c.Bind(&a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if a.CreatedBy == uuid.Nil {
		a.CreatedBy = auth.UserIDFromContext(c.Request().Context())
	}
	if err := h.svc.Raise(c.Request().Context(), &a); err != nil {
		return httperr.Map(err, "alert not found")
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	a, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return httperr.Map(err, "alert not found")
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), c.QueryParam("status"), pg.Limit, pg.Offset)
	if err != nil {
		return httperr.Map(err, "alert not found")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) Acknowledge(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	a, err := h.svc.Acknowledge(c.Request().Context(), id, auth.UserIDFromContext(c.Request().Context()))
	if err != nil {
		if errors.Is(err, ErrAlreadyResolved) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return httperr.Map(err, "alert not found")
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) Resolve(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	a, err := h.svc.Resolve(c.Request().Context(), id, auth.UserIDFromContext(c.Request().Context()))
	if err != nil {
		if errors.Is(err, ErrAlreadyResolved) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return httperr.Map(err, "alert not found")
	}
	return c.JSON(http.StatusOK, a)
}

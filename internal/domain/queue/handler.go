package queue

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
	readGroup := api.Group("", auth.RequireRole("physician", "nurse", "receptionist"))
	readGroup.GET("/queue", h.List)
	readGroup.GET("/queue/:id", h.Get)
	readGroup.GET("/queue/:id/stage-history", h.StageHistory)

	writeGroup := api.Group("", auth.RequireRole("physician", "nurse", "receptionist"))
	writeGroup.POST("/queue", h.CheckIn)
	writeGroup.PUT("/queue/:id/status", h.SetStatus)
	writeGroup.PUT("/queue/:id/stage", h.SetStage)

	adminGroup := api.Group("", auth.RequireRole("admin"))
	adminGroup.DELETE("/queue/:id", h.Delete)
}

func (h *Handler) CheckIn(c echo.Context) error {
	var e Entry
	if err := c.Bind(&e); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CheckIn(c.Request().Context(), &e); err != nil {
		if errors.Is(err, ErrAlreadyQueued) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return httperr.Map(err, "queue entry not found")
	}
	return c.JSON(http.StatusCreated, e)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	e, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return httperr.Map(err, "queue entry not found")
	}
	return c.JSON(http.StatusOK, e)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	params := map[string]string{}
	if s := c.QueryParam("status"); s != "" {
		params["status"] = s
	}
	if s := c.QueryParam("stage"); s != "" {
		params["current_stage"] = s
	}
	if s := c.QueryParam("patient_id"); s != "" {
		if _, err := uuid.Parse(s); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
		}
		params["patient_id"] = s
	}
	items, total, err := h.svc.List(c.Request().Context(), params, pg.Limit, pg.Offset)
	if err != nil {
		return httperr.Map(err, "queue entry not found")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) SetStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	e, err := h.svc.SetStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return httperr.Map(err, "queue entry not found")
	}
	return c.JSON(http.StatusOK, e)
}

type stageRequest struct {
	Stage string `json:"stage"`
}

func (h *Handler) SetStage(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req stageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	e, err := h.svc.SetStage(c.Request().Context(), id, req.Stage, auth.UserIDFromContext(c.Request().Context()))
	if err != nil {
		return httperr.Map(err, "queue entry not found")
	}
	return c.JSON(http.StatusOK, e)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return httperr.Map(err, "queue entry not found")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) StageHistory(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	items, err := h.svc.StageHistory(c.Request().Context(), id)
	if err != nil {
		return httperr.Map(err, "queue entry not found")
	}
	return c.JSON(http.StatusOK, items)
}

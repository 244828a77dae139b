package laboratory

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
	readGroup := api.Group("", auth.RequireRole("physician", "nurse", "lab_tech"))
	readGroup.GET("/lab/orders", h.ListOrders)
	readGroup.GET("/lab/orders/:id", h.GetOrder)
	readGroup.GET("/lab/orders/:id/results", h.Results)

	physGroup := api.Group("", auth.RequireRole("physician"))
	physGroup.POST("/lab/orders", h.CreateOrder)

	labGroup := api.Group("", auth.RequireRole("lab_tech"))
	labGroup.PUT("/lab/orders/:id/status", h.SetStatus)
	labGroup.POST("/lab/orders/:id/results", h.AttachResult)
}

func (h *Handler) CreateOrder(c echo.Context) error {
	var o Order
	if err := c.Bind(&o); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if o.OrderedBy == uuid.Nil {
		o.OrderedBy = auth.UserIDFromContext(c.Request().Context())
	}
	if err := h.svc.CreateOrder(c.Request().Context(), &o); err != nil {
		return httperr.Map(err, "lab order not found")
	}
	return c.JSON(http.StatusCreated, o)
}

func (h *Handler) GetOrder(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	o, err := h.svc.GetOrder(c.Request().Context(), id)
	if err != nil {
		return httperr.Map(err, "lab order not found")
	}
	return c.JSON(http.StatusOK, o)
}

func (h *Handler) ListOrders(c echo.Context) error {
	pg := pagination.FromContext(c)
	var patientID uuid.UUID
	if s := c.QueryParam("patient_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
		}
		patientID = id
	}
	orders, total, err := h.svc.ListOrders(c.Request().Context(), patientID, c.QueryParam("status"), pg.Limit, pg.Offset)
	if err != nil {
		return httperr.Map(err, "lab order not found")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(orders, total, pg.Limit, pg.Offset))
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
	o, err := h.svc.SetStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return httperr.Map(err, "lab order not found")
	}
	return c.JSON(http.StatusOK, o)
}

func (h *Handler) AttachResult(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var res Result
	if err := c.Bind(&res); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res.OrderID = id
	if res.ResultedBy == uuid.Nil {
		res.ResultedBy = auth.UserIDFromContext(c.Request().Context())
	}
	if err := h.svc.AttachResult(c.Request().Context(), &res); err != nil {
		if errors.Is(err, ErrOrderCancelled) || errors.Is(err, ErrOrderResulted) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return httperr.Map(err, "lab order not found")
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *Handler) Results(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	results, err := h.svc.Results(c.Request().Context(), id)
	if err != nil {
		return httperr.Map(err, "lab order not found")
	}
	return c.JSON(http.StatusOK, results)
}

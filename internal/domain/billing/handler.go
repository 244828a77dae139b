package billing

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
	group := api.Group("", auth.RequireRole("billing_clerk", "receptionist"))
	group.GET("/invoices", h.List)
	group.GET("/invoices/:id", h.Get)
	group.POST("/invoices", h.Create)
	group.POST("/invoices/:id/items", h.AddItem)
	group.POST("/invoices/:id/issue", h.Issue)
	group.POST("/invoices/:id/payments", h.RecordPayment)

	adminGroup := api.Group("", auth.RequireRole("billing_clerk"))
	adminGroup.POST("/invoices/:id/void", h.Void)
}

func (h *Handler) Create(c echo.Context) error {
	var inv Invoice
	if err := c.Bind(&inv); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if inv.CreatedBy == uuid.Nil {
		inv.CreatedBy = auth.UserIDFromContext(c.Request().Context())
	}
	if err := h.svc.CreateInvoice(c.Request().Context(), &inv); err != nil {
		return httperr.Map(err, "invoice not found")
	}
	return c.JSON(http.StatusCreated, inv)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	inv, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return httperr.Map(err, "invoice not found")
	}
	return c.JSON(http.StatusOK, inv)
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
	invoices, total, err := h.svc.List(c.Request().Context(), patientID, c.QueryParam("status"), pg.Limit, pg.Offset)
	if err != nil {
		return httperr.Map(err, "invoice not found")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(invoices, total, pg.Limit, pg.Offset))
}

func (h *Handler) AddItem(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var item LineItem
	if err := c.Bind(&item); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	item.InvoiceID = id
	if err := h.svc.AddItem(c.Request().Context(), &item); err != nil {
		if errors.Is(err, ErrNotDraft) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return httperr.Map(err, "invoice not found")
	}
	return c.JSON(http.StatusCreated, item)
}

func (h *Handler) Issue(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	inv, err := h.svc.Issue(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotDraft) || errors.Is(err, ErrEmptyInvoice) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return httperr.Map(err, "invoice not found")
	}
	return c.JSON(http.StatusOK, inv)
}

func (h *Handler) RecordPayment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var p Payment
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p.InvoiceID = id
	if p.ReceivedBy == uuid.Nil {
		p.ReceivedBy = auth.UserIDFromContext(c.Request().Context())
	}
	inv, err := h.svc.RecordPayment(c.Request().Context(), &p)
	if err != nil {
		if errors.Is(err, ErrNotPayable) || errors.Is(err, ErrOverpayment) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return httperr.Map(err, "invoice not found")
	}
	return c.JSON(http.StatusCreated, inv)
}

func (h *Handler) Void(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	inv, err := h.svc.Void(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotVoidable) || errors.Is(err, ErrHasPayments) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return httperr.Map(err, "invoice not found")
	}
	return c.JSON(http.StatusOK, inv)
}

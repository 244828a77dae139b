package billing

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	CreateInvoice(ctx context.Context, inv *Invoice) error
	GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error)
	ListInvoices(ctx context.Context, patientID uuid.UUID, status string, limit, offset int) ([]*Invoice, int, error)
	UpdateInvoice(ctx context.Context, inv *Invoice) error

	AddLineItem(ctx context.Context, item *LineItem) error
	ListLineItems(ctx context.Context, invoiceID uuid.UUID) ([]*LineItem, error)

	AddPayment(ctx context.Context, p *Payment) error
	ListPayments(ctx context.Context, invoiceID uuid.UUID) ([]*Payment, error)
	PaidTotal(ctx context.Context, invoiceID uuid.UUID) (int64, error)
}

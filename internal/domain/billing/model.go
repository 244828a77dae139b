package billing

import (
	"time"

	"github.com/google/uuid"
)

// Invoice statuses. Amounts are integer cents throughout; floats never touch
// money.
const (
	StatusDraft  = "draft"
	StatusIssued = "issued"
	StatusPaid   = "paid"
	StatusVoid   = "void"
)

type Invoice struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	PatientID  uuid.UUID  `db:"patient_id" json:"patient_id"`
	Status     string     `db:"status" json:"status"`
	TotalCents int64      `db:"total_cents" json:"total_cents"`
	CreatedBy  uuid.UUID  `db:"created_by" json:"created_by"`
	IssuedAt   *time.Time `db:"issued_at" json:"issued_at,omitempty"`
	PaidAt     *time.Time `db:"paid_at" json:"paid_at,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`

	Items    []*LineItem `db:"-" json:"items,omitempty"`
	Payments []*Payment  `db:"-" json:"payments,omitempty"`
}

type LineItem struct {
	ID             uuid.UUID `db:"id" json:"id"`
	InvoiceID      uuid.UUID `db:"invoice_id" json:"invoice_id"`
	Description    string    `db:"description" json:"description"`
	Quantity       int       `db:"quantity" json:"quantity"`
	UnitPriceCents int64     `db:"unit_price_cents" json:"unit_price_cents"`
	AmountCents    int64     `db:"amount_cents" json:"amount_cents"`
}

type Payment struct {
	ID          uuid.UUID `db:"id" json:"id"`
	InvoiceID   uuid.UUID `db:"invoice_id" json:"invoice_id"`
	AmountCents int64     `db:"amount_cents" json:"amount_cents"`
	Method      string    `db:"method" json:"method"`
	ReceivedBy  uuid.UUID `db:"received_by" json:"received_by"`
	PaidAt      time.Time `db:"paid_at" json:"paid_at"`
}

var validStatuses = map[string]bool{
	StatusDraft:  true,
	StatusIssued: true,
	StatusPaid:   true,
	StatusVoid:   true,
}

func ValidStatus(s string) bool { return validStatuses[s] }

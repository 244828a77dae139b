package billing

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore/internal/platform/db"
	"github.com/clinicore/clinicore/internal/platform/validate"
)

var (
	ErrInvalidStatus = validate.New("invalid invoice status")
	ErrNotDraft      = errors.New("invoice is not a draft")
	ErrNotPayable    = errors.New("invoice is not open for payment")
	ErrEmptyInvoice  = errors.New("invoice has no line items")
	ErrOverpayment   = errors.New("payment exceeds outstanding balance")
	ErrNotVoidable   = errors.New("only draft or issued invoices can be voided")
	ErrHasPayments   = errors.New("cannot void an invoice with recorded payments")
)

type Service struct {
	repo Repository
	tx   db.TxManager
}

func NewService(repo Repository, tx db.TxManager) *Service {
	return &Service{repo: repo, tx: tx}
}

// CreateInvoice opens a draft invoice, optionally with initial line items.
func (s *Service) CreateInvoice(ctx context.Context, inv *Invoice) error {
	if inv.PatientID == uuid.Nil {
		return validate.New("patient_id is required")
	}
	items := inv.Items
	for _, item := range items {
		if err := validateItem(item); err != nil {
			return err
		}
	}
	inv.Status = StatusDraft
	inv.TotalCents = 0
	return s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.repo.CreateInvoice(ctx, inv); err != nil {
			return err
		}
		for _, item := range items {
			item.InvoiceID = inv.ID
			item.AmountCents = int64(item.Quantity) * item.UnitPriceCents
			if err := s.repo.AddLineItem(ctx, item); err != nil {
				return err
			}
			inv.TotalCents += item.AmountCents
		}
		if inv.TotalCents > 0 {
			return s.repo.UpdateInvoice(ctx, inv)
		}
		return nil
	})
}

func validateItem(item *LineItem) error {
	if strings.TrimSpace(item.Description) == "" {
		return validate.New("line item description is required")
	}
	if item.Quantity <= 0 {
		return validate.New("line item quantity must be positive")
	}
	if item.UnitPriceCents < 0 {
		return validate.New("line item unit price cannot be negative")
	}
	return nil
}

// Get loads an invoice with its line items and payments.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	inv, err := s.repo.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.Items, err = s.repo.ListLineItems(ctx, id); err != nil {
		return nil, err
	}
	if inv.Payments, err = s.repo.ListPayments(ctx, id); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *Service) List(ctx context.Context, patientID uuid.UUID, status string, limit, offset int) ([]*Invoice, int, error) {
	if status != "" && !ValidStatus(status) {
		return nil, 0, ErrInvalidStatus
	}
	return s.repo.ListInvoices(ctx, patientID, status, limit, offset)
}

// AddItem appends a line item to a draft invoice and bumps the total.
func (s *Service) AddItem(ctx context.Context, item *LineItem) error {
	if err := validateItem(item); err != nil {
		return err
	}
	inv, err := s.repo.GetInvoice(ctx, item.InvoiceID)
	if err != nil {
		return err
	}
	if inv.Status != StatusDraft {
		return ErrNotDraft
	}
	item.AmountCents = int64(item.Quantity) * item.UnitPriceCents
	inv.TotalCents += item.AmountCents
	return s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.repo.AddLineItem(ctx, item); err != nil {
			return err
		}
		return s.repo.UpdateInvoice(ctx, inv)
	})
}

// Issue moves a non-empty draft to issued.
func (s *Service) Issue(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	inv, err := s.repo.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.Status != StatusDraft {
		return nil, ErrNotDraft
	}
	if inv.TotalCents == 0 {
		return nil, ErrEmptyInvoice
	}
	now := time.Now().UTC()
	inv.Status = StatusIssued
	inv.IssuedAt = &now
	if err := s.repo.UpdateInvoice(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// RecordPayment applies a payment to an issued invoice; when payments cover
// the total the invoice flips to paid. Payment insert and status flip commit
// together.
func (s *Service) RecordPayment(ctx context.Context, p *Payment) (*Invoice, error) {
	if p.AmountCents <= 0 {
		return nil, validate.New("payment amount must be positive")
	}
	if p.Method == "" {
		p.Method = "cash"
	}
	inv, err := s.repo.GetInvoice(ctx, p.InvoiceID)
	if err != nil {
		return nil, err
	}
	if inv.Status != StatusIssued {
		return nil, ErrNotPayable
	}
	paid, err := s.repo.PaidTotal(ctx, p.InvoiceID)
	if err != nil {
		return nil, err
	}
	if paid+p.AmountCents > inv.TotalCents {
		return nil, ErrOverpayment
	}
	if p.PaidAt.IsZero() {
		p.PaidAt = time.Now().UTC()
	}
	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.repo.AddPayment(ctx, p); err != nil {
			return err
		}
		if paid+p.AmountCents == inv.TotalCents {
			inv.Status = StatusPaid
			inv.PaidAt = &p.PaidAt
			return s.repo.UpdateInvoice(ctx, inv)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// Void cancels a draft or issued invoice with no payments against it.
func (s *Service) Void(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	inv, err := s.repo.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.Status != StatusDraft && inv.Status != StatusIssued {
		return nil, ErrNotVoidable
	}
	paid, err := s.repo.PaidTotal(ctx, id)
	if err != nil {
		return nil, err
	}
	if paid > 0 {
		return nil, ErrHasPayments
	}
	inv.Status = StatusVoid
	if err := s.repo.UpdateInvoice(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

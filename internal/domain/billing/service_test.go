package billing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore/internal/platform/db"
)

type mockRepo struct {
	invoices   map[uuid.UUID]*Invoice
	items      map[uuid.UUID][]*LineItem
	payments   map[uuid.UUID][]*Payment
	paymentErr error
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		invoices: make(map[uuid.UUID]*Invoice),
		items:    make(map[uuid.UUID][]*LineItem),
		payments: make(map[uuid.UUID][]*Payment),
	}
}

func (m *mockRepo) CreateInvoice(_ context.Context, inv *Invoice) error {
	inv.ID = uuid.New()
	inv.CreatedAt = time.Now()
	cp := *inv
	cp.Items = nil
	cp.Payments = nil
	m.invoices[inv.ID] = &cp
	return nil
}

func (m *mockRepo) GetInvoice(_ context.Context, id uuid.UUID) (*Invoice, error) {
	inv, ok := m.invoices[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	cp := *inv
	return &cp, nil
}

func (m *mockRepo) ListInvoices(_ context.Context, patientID uuid.UUID, status string, _, _ int) ([]*Invoice, int, error) {
	var out []*Invoice
	for _, inv := range m.invoices {
		if patientID != uuid.Nil && inv.PatientID != patientID {
			continue
		}
		if status != "" && inv.Status != status {
			continue
		}
		cp := *inv
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (m *mockRepo) UpdateInvoice(_ context.Context, inv *Invoice) error {
	if _, ok := m.invoices[inv.ID]; !ok {
		return db.ErrNotFound
	}
	cp := *inv
	cp.Items = nil
	cp.Payments = nil
	m.invoices[inv.ID] = &cp
	return nil
}

func (m *mockRepo) AddLineItem(_ context.Context, item *LineItem) error {
	item.ID = uuid.New()
	cp := *item
	m.items[item.InvoiceID] = append(m.items[item.InvoiceID], &cp)
	return nil
}

func (m *mockRepo) ListLineItems(_ context.Context, invoiceID uuid.UUID) ([]*LineItem, error) {
	return m.items[invoiceID], nil
}

func (m *mockRepo) AddPayment(_ context.Context, p *Payment) error {
	if m.paymentErr != nil {
		return m.paymentErr
	}
	p.ID = uuid.New()
	cp := *p
	m.payments[p.InvoiceID] = append(m.payments[p.InvoiceID], &cp)
	return nil
}

func (m *mockRepo) ListPayments(_ context.Context, invoiceID uuid.UUID) ([]*Payment, error) {
	return m.payments[invoiceID], nil
}

func (m *mockRepo) PaidTotal(_ context.Context, invoiceID uuid.UUID) (int64, error) {
	var total int64
	for _, p := range m.payments[invoiceID] {
		total += p.AmountCents
	}
	return total, nil
}

type fakeTxManager struct {
	rolledBack bool
}

func (f *fakeTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		f.rolledBack = true
		return err
	}
	return nil
}

func draftInvoice(t *testing.T, svc *Service, items ...*LineItem) *Invoice {
	t.Helper()
	inv := &Invoice{PatientID: uuid.New(), CreatedBy: uuid.New(), Items: items}
	if err := svc.CreateInvoice(context.Background(), inv); err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	return inv
}

func consultItem() *LineItem {
	return &LineItem{Description: "consultation", Quantity: 1, UnitPriceCents: 5000}
}

func TestCreateInvoice_ComputesTotal(t *testing.T) {
	svc := NewService(newMockRepo(), &fakeTxManager{})
	inv := draftInvoice(t, svc,
		&LineItem{Description: "consultation", Quantity: 1, UnitPriceCents: 5000},
		&LineItem{Description: "dressing", Quantity: 3, UnitPriceCents: 700},
	)
	if inv.Status != StatusDraft {
		t.Errorf("status = %q, want draft", inv.Status)
	}
	if inv.TotalCents != 7100 {
		t.Errorf("total = %d, want 7100", inv.TotalCents)
	}
}

func TestAddItem_DraftOnly(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, &fakeTxManager{})
	ctx := context.Background()
	inv := draftInvoice(t, svc, consultItem())

	if err := svc.AddItem(ctx, &LineItem{InvoiceID: inv.ID, Description: "x-ray", Quantity: 1, UnitPriceCents: 12000}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	updated, _ := repo.GetInvoice(ctx, inv.ID)
	if updated.TotalCents != 17000 {
		t.Errorf("total = %d, want 17000", updated.TotalCents)
	}

	if _, err := svc.Issue(ctx, inv.ID); err != nil {
		t.Fatalf("Issue: %v", err)
	}
	err := svc.AddItem(ctx, &LineItem{InvoiceID: inv.ID, Description: "late", Quantity: 1, UnitPriceCents: 100})
	if err != ErrNotDraft {
		t.Errorf("err = %v, want ErrNotDraft", err)
	}
}

func TestIssue_EmptyDraftRejected(t *testing.T) {
	svc := NewService(newMockRepo(), &fakeTxManager{})
	inv := draftInvoice(t, svc)
	if _, err := svc.Issue(context.Background(), inv.ID); err != ErrEmptyInvoice {
		t.Errorf("err = %v, want ErrEmptyInvoice", err)
	}
}

func TestRecordPayment_FullPaymentFlipsToPaid(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, &fakeTxManager{})
	ctx := context.Background()
	inv := draftInvoice(t, svc, consultItem())
	if _, err := svc.Issue(ctx, inv.ID); err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Partial payment keeps the invoice issued.
	if _, err := svc.RecordPayment(ctx, &Payment{InvoiceID: inv.ID, AmountCents: 2000, ReceivedBy: uuid.New()}); err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}
	current, _ := repo.GetInvoice(ctx, inv.ID)
	if current.Status != StatusIssued {
		t.Errorf("status = %q, want still issued after partial payment", current.Status)
	}

	// Remainder flips it to paid.
	if _, err := svc.RecordPayment(ctx, &Payment{InvoiceID: inv.ID, AmountCents: 3000, ReceivedBy: uuid.New()}); err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}
	current, _ = repo.GetInvoice(ctx, inv.ID)
	if current.Status != StatusPaid || current.PaidAt == nil {
		t.Errorf("status = %q (paid_at %v), want paid with timestamp", current.Status, current.PaidAt)
	}
}

func TestRecordPayment_Guards(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, &fakeTxManager{})
	ctx := context.Background()
	inv := draftInvoice(t, svc, consultItem())

	// Draft invoices cannot take payments.
	if _, err := svc.RecordPayment(ctx, &Payment{InvoiceID: inv.ID, AmountCents: 100}); err != ErrNotPayable {
		t.Errorf("err = %v, want ErrNotPayable", err)
	}

	if _, err := svc.Issue(ctx, inv.ID); err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := svc.RecordPayment(ctx, &Payment{InvoiceID: inv.ID, AmountCents: 6000}); err != ErrOverpayment {
		t.Errorf("err = %v, want ErrOverpayment", err)
	}
}

func TestRecordPayment_InsertFailureRollsBack(t *testing.T) {
	repo := newMockRepo()
	tx := &fakeTxManager{}
	svc := NewService(repo, tx)
	ctx := context.Background()
	inv := draftInvoice(t, svc, consultItem())
	if _, err := svc.Issue(ctx, inv.ID); err != nil {
		t.Fatalf("Issue: %v", err)
	}

	repo.paymentErr = db.ErrConflict
	if _, err := svc.RecordPayment(ctx, &Payment{InvoiceID: inv.ID, AmountCents: 5000}); err == nil {
		t.Fatal("expected payment error")
	}
	if !tx.rolledBack {
		t.Error("transaction not rolled back")
	}
	current, _ := repo.GetInvoice(ctx, inv.ID)
	if current.Status != StatusIssued {
		t.Errorf("status = %q, want still issued", current.Status)
	}
}

func TestVoid(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, &fakeTxManager{})
	ctx := context.Background()
	inv := draftInvoice(t, svc, consultItem())

	voided, err := svc.Void(ctx, inv.ID)
	if err != nil {
		t.Fatalf("Void: %v", err)
	}
	if voided.Status != StatusVoid {
		t.Errorf("status = %q, want void", voided.Status)
	}
	if _, err := svc.Void(ctx, inv.ID); !errors.Is(err, ErrNotVoidable) {
		t.Errorf("err = %v, want ErrNotVoidable", err)
	}

	// An invoice with payments cannot be voided.
	inv2 := draftInvoice(t, svc, consultItem())
	if _, err := svc.Issue(ctx, inv2.ID); err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := svc.RecordPayment(ctx, &Payment{InvoiceID: inv2.ID, AmountCents: 1000}); err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}
	if _, err := svc.Void(ctx, inv2.ID); !errors.Is(err, ErrHasPayments) {
		t.Errorf("err = %v, want ErrHasPayments", err)
	}
}

package billing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicore/clinicore/internal/platform/db"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) db.Querier {
	if q := db.QuerierFromContext(ctx); q != nil {
		return q
	}
	return r.pool
}

const invoiceCols = `id, patient_id, status, total_cents, created_by, issued_at, paid_at, created_at, updated_at`

func scanInvoice(row pgx.Row) (*Invoice, error) {
	var inv Invoice
	err := row.Scan(&inv.ID, &inv.PatientID, &inv.Status, &inv.TotalCents, &inv.CreatedBy,
		&inv.IssuedAt, &inv.PaidAt, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	return &inv, nil
}

func (r *repoPG) CreateInvoice(ctx context.Context, inv *Invoice) error {
	inv.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO invoice (id, patient_id, status, total_cents, created_by)
		VALUES ($1,$2,$3,$4,$5)`,
		inv.ID, inv.PatientID, inv.Status, inv.TotalCents, inv.CreatedBy)
	return db.TranslateError(err)
}

func (r *repoPG) GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	return scanInvoice(r.conn(ctx).QueryRow(ctx,
		`SELECT `+invoiceCols+` FROM invoice WHERE id = $1`, id))
}

func (r *repoPG) ListInvoices(ctx context.Context, patientID uuid.UUID, status string, limit, offset int) ([]*Invoice, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	idx := 1
	if patientID != uuid.Nil {
		where += fmt.Sprintf(` AND patient_id = $%d`, idx)
		args = append(args, patientID)
		idx++
	}
	if status != "" {
		where += fmt.Sprintf(` AND status = $%d`, idx)
		args = append(args, status)
		idx++
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM invoice`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	listSQL := `SELECT ` + invoiceCols + ` FROM invoice` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var invoices []*Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, 0, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, total, nil
}

func (r *repoPG) UpdateInvoice(ctx context.Context, inv *Invoice) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE invoice SET status=$2, total_cents=$3, issued_at=$4, paid_at=$5, updated_at=NOW()
		WHERE id = $1`,
		inv.ID, inv.Status, inv.TotalCents, inv.IssuedAt, inv.PaidAt)
	if err != nil {
		return db.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

func (r *repoPG) AddLineItem(ctx context.Context, item *LineItem) error {
	item.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO invoice_line_item (id, invoice_id, description, quantity, unit_price_cents, amount_cents)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		item.ID, item.InvoiceID, item.Description, item.Quantity, item.UnitPriceCents, item.AmountCents)
	return db.TranslateError(err)
}

func (r *repoPG) ListLineItems(ctx context.Context, invoiceID uuid.UUID) ([]*LineItem, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, invoice_id, description, quantity, unit_price_cents, amount_cents
		FROM invoice_line_item WHERE invoice_id = $1 ORDER BY description ASC`, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*LineItem
	for rows.Next() {
		var item LineItem
		if err := rows.Scan(&item.ID, &item.InvoiceID, &item.Description, &item.Quantity,
			&item.UnitPriceCents, &item.AmountCents); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	return items, nil
}

func (r *repoPG) AddPayment(ctx context.Context, p *Payment) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO payment (id, invoice_id, amount_cents, method, received_by, paid_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		p.ID, p.InvoiceID, p.AmountCents, p.Method, p.ReceivedBy, p.PaidAt)
	return db.TranslateError(err)
}

func (r *repoPG) ListPayments(ctx context.Context, invoiceID uuid.UUID) ([]*Payment, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, invoice_id, amount_cents, method, received_by, paid_at
		FROM payment WHERE invoice_id = $1 ORDER BY paid_at ASC`, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var payments []*Payment
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.InvoiceID, &p.AmountCents, &p.Method, &p.ReceivedBy, &p.PaidAt); err != nil {
			return nil, err
		}
		payments = append(payments, &p)
	}
	return payments, nil
}

func (r *repoPG) PaidTotal(ctx context.Context, invoiceID uuid.UUID) (int64, error) {
	var total int64
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0) FROM payment WHERE invoice_id = $1`, invoiceID).Scan(&total)
	return total, err
}

package laboratory

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

const orderCols = `id, patient_id, ordered_by, test_code, test_name, status, notes, created_at, updated_at`

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.PatientID, &o.OrderedBy, &o.TestCode, &o.TestName, &o.Status,
		&o.Notes, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	return &o, nil
}

func (r *repoPG) CreateOrder(ctx context.Context, o *Order) error {
	o.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO lab_order (id, patient_id, ordered_by, test_code, test_name, status, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		o.ID, o.PatientID, o.OrderedBy, o.TestCode, o.TestName, o.Status, o.Notes)
	return db.TranslateError(err)
}

func (r *repoPG) GetOrder(ctx context.Context, id uuid.UUID) (*Order, error) {
	return scanOrder(r.conn(ctx).QueryRow(ctx,
		`SELECT `+orderCols+` FROM lab_order WHERE id = $1`, id))
}

func (r *repoPG) ListOrders(ctx context.Context, patientID uuid.UUID, status string, limit, offset int) ([]*Order, int, error) {
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
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM lab_order`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	listSQL := `SELECT ` + orderCols + ` FROM lab_order` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	return orders, total, nil
}

func (r *repoPG) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE lab_order SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return db.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

func (r *repoPG) CreateResult(ctx context.Context, res *Result) error {
	res.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO lab_result (id, order_id, value, unit, reference_range, abnormal, resulted_by, resulted_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		res.ID, res.OrderID, res.Value, res.Unit, res.ReferenceRange, res.Abnormal, res.ResultedBy, res.ResultedAt)
	return db.TranslateError(err)
}

func (r *repoPG) ListResults(ctx context.Context, orderID uuid.UUID) ([]*Result, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, order_id, value, unit, reference_range, abnormal, resulted_by, resulted_at, created_at
		FROM lab_result WHERE order_id = $1 ORDER BY resulted_at ASC`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var results []*Result
	for rows.Next() {
		var res Result
		if err := rows.Scan(&res.ID, &res.OrderID, &res.Value, &res.Unit, &res.ReferenceRange,
			&res.Abnormal, &res.ResultedBy, &res.ResultedAt, &res.CreatedAt); err != nil {
			return nil, err
		}
		results = append(results, &res)
	}
	return results, nil
}

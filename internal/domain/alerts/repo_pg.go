package alerts

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

const alertCols = `id, severity, source, message, status, patient_id, created_by,
	acked_by, acked_at, resolved_by, resolved_at, created_at`

func scanAlert(row pgx.Row) (*Alert, error) {
	var a Alert
	err := row.Scan(&a.ID, &a.Severity, &a.Source, &a.Message, &a.Status, &a.PatientID,
		&a.CreatedBy, &a.AckedBy, &a.AckedAt, &a.ResolvedBy, &a.ResolvedAt, &a.CreatedAt)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	return &a, nil
}

func (r *repoPG) Create(ctx context.Context, a *Alert) error {
	a.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO alert (id, severity, source, message, status, patient_id, created_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		a.ID, a.Severity, a.Source, a.Message, a.Status, a.PatientID, a.CreatedBy)
	return db.TranslateError(err)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Alert, error) {
	return scanAlert(r.conn(ctx).QueryRow(ctx,
		`SELECT `+alertCols+` FROM alert WHERE id = $1`, id))
}

func (r *repoPG) List(ctx context.Context, status string, limit, offset int) ([]*Alert, int, error) {
	where := ``
	args := []interface{}{}
	idx := 1
	if status != "" {
		where = ` WHERE status = $1`
		args = append(args, status)
		idx++
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM alert`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	listSQL := `SELECT ` + alertCols + ` FROM alert` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, nil
}

func (r *repoPG) Update(ctx context.Context, a *Alert) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE alert SET status=$2, acked_by=$3, acked_at=$4, resolved_by=$5, resolved_at=$6
		WHERE id = $1`,
		a.ID, a.Status, a.AckedBy, a.AckedAt, a.ResolvedBy, a.ResolvedAt)
	if err != nil {
		return db.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

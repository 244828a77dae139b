package beds

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

func (r *repoPG) CreateWard(ctx context.Context, w *Ward) error {
	w.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx,
		`INSERT INTO ward (id, name, floor) VALUES ($1,$2,$3)`, w.ID, w.Name, w.Floor)
	return db.TranslateError(err)
}

func (r *repoPG) ListWards(ctx context.Context) ([]*Ward, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT id, name, floor, created_at FROM ward ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var wards []*Ward
	for rows.Next() {
		var w Ward
		if err := rows.Scan(&w.ID, &w.Name, &w.Floor, &w.CreatedAt); err != nil {
			return nil, err
		}
		wards = append(wards, &w)
	}
	return wards, nil
}

func (r *repoPG) DeleteWard(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM ward WHERE id = $1`, id)
	if err != nil {
		return db.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

const bedCols = `id, ward_id, label, status, patient_id, assigned_at, created_at, updated_at`

func scanBed(row pgx.Row) (*Bed, error) {
	var b Bed
	err := row.Scan(&b.ID, &b.WardID, &b.Label, &b.Status, &b.PatientID, &b.AssignedAt, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	return &b, nil
}

func (r *repoPG) CreateBed(ctx context.Context, b *Bed) error {
	b.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx,
		`INSERT INTO bed (id, ward_id, label, status) VALUES ($1,$2,$3,$4)`,
		b.ID, b.WardID, b.Label, b.Status)
	return db.TranslateError(err)
}

func (r *repoPG) GetBed(ctx context.Context, id uuid.UUID) (*Bed, error) {
	return scanBed(r.conn(ctx).QueryRow(ctx,
		`SELECT `+bedCols+` FROM bed WHERE id = $1`, id))
}

func (r *repoPG) ListBeds(ctx context.Context, wardID uuid.UUID, status string, limit, offset int) ([]*Bed, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	idx := 1
	if wardID != uuid.Nil {
		where += fmt.Sprintf(` AND ward_id = $%d`, idx)
		args = append(args, wardID)
		idx++
	}
	if status != "" {
		where += fmt.Sprintf(` AND status = $%d`, idx)
		args = append(args, status)
		idx++
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM bed`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	listSQL := `SELECT ` + bedCols + ` FROM bed` + where +
		fmt.Sprintf(` ORDER BY label ASC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var beds []*Bed
	for rows.Next() {
		b, err := scanBed(rows)
		if err != nil {
			return nil, 0, err
		}
		beds = append(beds, b)
	}
	return beds, total, nil
}

func (r *repoPG) UpdateBed(ctx context.Context, b *Bed) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE bed SET status=$2, patient_id=$3, assigned_at=$4, label=$5, updated_at=NOW()
		WHERE id = $1`,
		b.ID, b.Status, b.PatientID, b.AssignedAt, b.Label)
	if err != nil {
		return db.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

func (r *repoPG) DeleteBed(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM bed WHERE id = $1`, id)
	if err != nil {
		return db.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

func (r *repoPG) Occupancy(ctx context.Context) ([]*WardOccupancy, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT w.id, w.name, COUNT(b.id), COUNT(b.id) FILTER (WHERE b.status = 'occupied')
		FROM ward w
		LEFT JOIN bed b ON b.ward_id = w.id
		GROUP BY w.id, w.name
		ORDER BY w.name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*WardOccupancy
	for rows.Next() {
		var o WardOccupancy
		if err := rows.Scan(&o.WardID, &o.WardName, &o.Total, &o.Occupied); err != nil {
			return nil, err
		}
		out = append(out, &o)
	}
	return out, nil
}

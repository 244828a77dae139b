package hr

import (
	"context"
	"fmt"
	"time"

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

const staffCols = `id, full_name, job_title, department, phone, email, active, created_at, updated_at`

func scanStaff(row pgx.Row) (*Staff, error) {
	var s Staff
	err := row.Scan(&s.ID, &s.FullName, &s.JobTitle, &s.Department, &s.Phone, &s.Email,
		&s.Active, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	return &s, nil
}

func (r *repoPG) CreateStaff(ctx context.Context, s *Staff) error {
	s.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO staff (id, full_name, job_title, department, phone, email, active)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		s.ID, s.FullName, s.JobTitle, s.Department, s.Phone, s.Email, s.Active)
	return db.TranslateError(err)
}

func (r *repoPG) GetStaff(ctx context.Context, id uuid.UUID) (*Staff, error) {
	return scanStaff(r.conn(ctx).QueryRow(ctx,
		`SELECT `+staffCols+` FROM staff WHERE id = $1`, id))
}

func (r *repoPG) UpdateStaff(ctx context.Context, s *Staff) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE staff SET full_name=$2, job_title=$3, department=$4, phone=$5, email=$6,
			active=$7, updated_at=NOW()
		WHERE id = $1`,
		s.ID, s.FullName, s.JobTitle, s.Department, s.Phone, s.Email, s.Active)
	if err != nil {
		return db.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

func (r *repoPG) ListStaff(ctx context.Context, limit, offset int) ([]*Staff, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM staff`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+staffCols+` FROM staff ORDER BY full_name ASC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var out []*Staff
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, s)
	}
	return out, total, nil
}

func (r *repoPG) CreateShift(ctx context.Context, sh *Shift) error {
	sh.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO shift (id, staff_id, starts_at, ends_at, ward)
		VALUES ($1,$2,$3,$4,$5)`,
		sh.ID, sh.StaffID, sh.StartsAt, sh.EndsAt, sh.Ward)
	return db.TranslateError(err)
}

func (r *repoPG) ListShifts(ctx context.Context, staffID uuid.UUID, day time.Time, limit, offset int) ([]*Shift, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	idx := 1
	if staffID != uuid.Nil {
		where += fmt.Sprintf(` AND staff_id = $%d`, idx)
		args = append(args, staffID)
		idx++
	}
	if !day.IsZero() {
		where += fmt.Sprintf(` AND starts_at::date = $%d::date`, idx)
		args = append(args, day)
		idx++
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM shift`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	listSQL := `SELECT id, staff_id, starts_at, ends_at, ward, created_at FROM shift` + where +
		fmt.Sprintf(` ORDER BY starts_at ASC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var shifts []*Shift
	for rows.Next() {
		var sh Shift
		if err := rows.Scan(&sh.ID, &sh.StaffID, &sh.StartsAt, &sh.EndsAt, &sh.Ward, &sh.CreatedAt); err != nil {
			return nil, 0, err
		}
		shifts = append(shifts, &sh)
	}
	return shifts, total, nil
}

func (r *repoPG) OverlappingShifts(ctx context.Context, staffID uuid.UUID, start, end time.Time) (int, error) {
	var count int
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*) FROM shift
		WHERE staff_id = $1 AND starts_at < $3 AND ends_at > $2`,
		staffID, start, end).Scan(&count)
	return count, err
}

func (r *repoPG) DeleteShift(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM shift WHERE id = $1`, id)
	if err != nil {
		return db.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

package queue

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

const entryCols = `id, patient_id, status, current_stage, priority, check_in_time,
	called_at, completed_at, note, created_at, updated_at`

func (r *repoPG) scanEntry(row pgx.Row) (*Entry, error) {
	var e Entry
	err := row.Scan(&e.ID, &e.PatientID, &e.Status, &e.CurrentStage, &e.Priority, &e.CheckInTime,
		&e.CalledAt, &e.CompletedAt, &e.Note, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	return &e, nil
}

func (r *repoPG) Create(ctx context.Context, e *Entry) error {
	e.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO queue_entry (id, patient_id, status, current_stage, priority, check_in_time, note)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		e.ID, e.PatientID, e.Status, e.CurrentStage, e.Priority, e.CheckInTime, e.Note)
	return db.TranslateError(err)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Entry, error) {
	return r.scanEntry(r.conn(ctx).QueryRow(ctx, `SELECT `+entryCols+` FROM queue_entry WHERE id = $1`, id))
}

func (r *repoPG) GetActiveByPatient(ctx context.Context, patientID uuid.UUID) (*Entry, error) {
	return r.scanEntry(r.conn(ctx).QueryRow(ctx, `
		SELECT `+entryCols+` FROM queue_entry
		WHERE patient_id = $1 AND status IN ('waiting','called','in_progress')`, patientID))
}

// List returns queue entries ordered by priority ascending, then most recent
// check-in first, matching how the waiting room board reads the queue.
func (r *repoPG) List(ctx context.Context, params map[string]string, limit, offset int) ([]*Entry, int, error) {
	query := `SELECT ` + entryCols + ` FROM queue_entry WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM queue_entry WHERE 1=1`
	var args []interface{}
	idx := 1

	if p, ok := params["status"]; ok {
		query += fmt.Sprintf(` AND status = $%d`, idx)
		countQuery += fmt.Sprintf(` AND status = $%d`, idx)
		args = append(args, p)
		idx++
	}
	if p, ok := params["current_stage"]; ok {
		query += fmt.Sprintf(` AND current_stage = $%d`, idx)
		countQuery += fmt.Sprintf(` AND current_stage = $%d`, idx)
		args = append(args, p)
		idx++
	}
	if p, ok := params["patient_id"]; ok {
		query += fmt.Sprintf(` AND patient_id = $%d`, idx)
		countQuery += fmt.Sprintf(` AND patient_id = $%d`, idx)
		args = append(args, p)
		idx++
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY priority ASC, check_in_time DESC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Entry
	for rows.Next() {
		e, err := r.scanEntry(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, e)
	}
	return items, total, nil
}

func (r *repoPG) UpdateStatus(ctx context.Context, e *Entry) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE queue_entry SET status=$2, called_at=$3, completed_at=$4, updated_at=NOW()
		WHERE id = $1`,
		e.ID, e.Status, e.CalledAt, e.CompletedAt)
	if err != nil {
		return db.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

func (r *repoPG) UpdateStage(ctx context.Context, id uuid.UUID, stage string) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE queue_entry SET current_stage=$2, updated_at=NOW() WHERE id = $1`, id, stage)
	if err != nil {
		return db.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

func (r *repoPG) UpdatePriority(ctx context.Context, id uuid.UUID, priority int) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE queue_entry SET priority=$2, updated_at=NOW() WHERE id = $1`, id, priority)
	if err != nil {
		return db.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM queue_entry WHERE id = $1`, id)
	if err != nil {
		return db.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

func (r *repoPG) AddStageChange(ctx context.Context, sc *StageChange) error {
	sc.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO queue_stage_history (id, queue_id, from_stage, to_stage, changed_by, changed_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		sc.ID, sc.QueueID, sc.FromStage, sc.ToStage, sc.ChangedBy, sc.ChangedAt)
	return db.TranslateError(err)
}

func (r *repoPG) GetStageHistory(ctx context.Context, queueID uuid.UUID) ([]*StageChange, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, queue_id, from_stage, to_stage, changed_by, changed_at
		FROM queue_stage_history WHERE queue_id = $1 ORDER BY changed_at`, queueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*StageChange
	for rows.Next() {
		var sc StageChange
		if err := rows.Scan(&sc.ID, &sc.QueueID, &sc.FromStage, &sc.ToStage, &sc.ChangedBy, &sc.ChangedAt); err != nil {
			return nil, err
		}
		items = append(items, &sc)
	}
	return items, nil
}

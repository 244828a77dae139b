package triage

import (
	"context"

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

const assessmentCols = `id, patient_id, queue_id, triage_level, triage_category, chief_complaint,
	heart_rate, bp_systolic, bp_diastolic, temperature, respiratory_rate, oxygen_saturation,
	pain_scale, notes, assessed_by, assessed_at, created_at, updated_at`

func (r *repoPG) scanAssessment(row pgx.Row) (*Assessment, error) {
	var a Assessment
	err := row.Scan(&a.ID, &a.PatientID, &a.QueueID, &a.TriageLevel, &a.TriageCategory, &a.ChiefComplaint,
		&a.HeartRate, &a.BPSystolic, &a.BPDiastolic, &a.Temperature, &a.RespiratoryRate, &a.OxygenSaturation,
		&a.PainScale, &a.Notes, &a.AssessedBy, &a.AssessedAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	return &a, nil
}

func (r *repoPG) Create(ctx context.Context, a *Assessment) error {
	a.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO triage_assessment (id, patient_id, queue_id, triage_level, triage_category,
			chief_complaint, heart_rate, bp_systolic, bp_diastolic, temperature, respiratory_rate,
			oxygen_saturation, pain_scale, notes, assessed_by, assessed_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
		a.ID, a.PatientID, a.QueueID, a.TriageLevel, a.TriageCategory,
		a.ChiefComplaint, a.HeartRate, a.BPSystolic, a.BPDiastolic, a.Temperature, a.RespiratoryRate,
		a.OxygenSaturation, a.PainScale, a.Notes, a.AssessedBy, a.AssessedAt)
	return db.TranslateError(err)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Assessment, error) {
	return r.scanAssessment(r.conn(ctx).QueryRow(ctx,
		`SELECT `+assessmentCols+` FROM triage_assessment WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, a *Assessment) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE triage_assessment SET triage_level=$2, triage_category=$3, chief_complaint=$4,
			heart_rate=$5, bp_systolic=$6, bp_diastolic=$7, temperature=$8, respiratory_rate=$9,
			oxygen_saturation=$10, pain_scale=$11, notes=$12, updated_at=NOW()
		WHERE id = $1`,
		a.ID, a.TriageLevel, a.TriageCategory, a.ChiefComplaint,
		a.HeartRate, a.BPSystolic, a.BPDiastolic, a.Temperature, a.RespiratoryRate,
		a.OxygenSaturation, a.PainScale, a.Notes)
	if err != nil {
		return db.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM triage_assessment WHERE id = $1`, id)
	if err != nil {
		return db.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Assessment, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM triage_assessment`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+assessmentCols+` FROM triage_assessment ORDER BY assessed_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Assessment
	for rows.Next() {
		a, err := r.scanAssessment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, nil
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Assessment, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM triage_assessment WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+assessmentCols+` FROM triage_assessment WHERE patient_id = $1 ORDER BY assessed_at DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Assessment
	for rows.Next() {
		a, err := r.scanAssessment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, nil
}

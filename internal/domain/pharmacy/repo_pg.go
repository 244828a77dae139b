package pharmacy

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

const rxCols = `id, patient_id, prescribed_by, medication, dosage, frequency, duration_days,
	status, notes, created_at, updated_at`

func scanPrescription(row pgx.Row) (*Prescription, error) {
	var p Prescription
	err := row.Scan(&p.ID, &p.PatientID, &p.PrescribedBy, &p.Medication, &p.Dosage, &p.Frequency,
		&p.DurationDays, &p.Status, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	return &p, nil
}

func (r *repoPG) Create(ctx context.Context, p *Prescription) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO prescription (id, patient_id, prescribed_by, medication, dosage, frequency,
			duration_days, status, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		p.ID, p.PatientID, p.PrescribedBy, p.Medication, p.Dosage, p.Frequency,
		p.DurationDays, p.Status, p.Notes)
	return db.TranslateError(err)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	return scanPrescription(r.conn(ctx).QueryRow(ctx,
		`SELECT `+rxCols+` FROM prescription WHERE id = $1`, id))
}

func (r *repoPG) List(ctx context.Context, patientID uuid.UUID, status string, limit, offset int) ([]*Prescription, int, error) {
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
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM prescription`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	listSQL := `SELECT ` + rxCols + ` FROM prescription` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Prescription
	for rows.Next() {
		p, err := scanPrescription(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, nil
}

func (r *repoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE prescription SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return db.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

func (r *repoPG) CreateDispense(ctx context.Context, d *DispenseRecord) error {
	d.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO dispense_record (id, prescription_id, dispensed_by, quantity, notes, dispensed_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		d.ID, d.PrescriptionID, d.DispensedBy, d.Quantity, d.Notes, d.DispensedAt)
	return db.TranslateError(err)
}

func (r *repoPG) ListDispenses(ctx context.Context, prescriptionID uuid.UUID) ([]*DispenseRecord, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, prescription_id, dispensed_by, quantity, notes, dispensed_at
		FROM dispense_record WHERE prescription_id = $1 ORDER BY dispensed_at ASC`, prescriptionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var records []*DispenseRecord
	for rows.Next() {
		var d DispenseRecord
		if err := rows.Scan(&d.ID, &d.PrescriptionID, &d.DispensedBy, &d.Quantity, &d.Notes, &d.DispensedAt); err != nil {
			return nil, err
		}
		records = append(records, &d)
	}
	return records, nil
}

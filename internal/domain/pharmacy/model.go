package pharmacy

import (
	"time"

	"github.com/google/uuid"
)

// Prescription statuses.
const (
	StatusActive    = "active"
	StatusDispensed = "dispensed"
	StatusCancelled = "cancelled"
)

type Prescription struct {
	ID           uuid.UUID `db:"id" json:"id"`
	PatientID    uuid.UUID `db:"patient_id" json:"patient_id"`
	PrescribedBy uuid.UUID `db:"prescribed_by" json:"prescribed_by"`
	Medication   string    `db:"medication" json:"medication"`
	Dosage       string    `db:"dosage" json:"dosage"`
	Frequency    string    `db:"frequency" json:"frequency"`
	DurationDays *int      `db:"duration_days" json:"duration_days,omitempty"`
	Status       string    `db:"status" json:"status"`
	Notes        *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// DispenseRecord captures a single hand-over of a prescription.
type DispenseRecord struct {
	ID             uuid.UUID `db:"id" json:"id"`
	PrescriptionID uuid.UUID `db:"prescription_id" json:"prescription_id"`
	DispensedBy    uuid.UUID `db:"dispensed_by" json:"dispensed_by"`
	Quantity       int       `db:"quantity" json:"quantity"`
	Notes          *string   `db:"notes" json:"notes,omitempty"`
	DispensedAt    time.Time `db:"dispensed_at" json:"dispensed_at"`
}

var validStatuses = map[string]bool{
	StatusActive:    true,
	StatusDispensed: true,
	StatusCancelled: true,
}

func ValidStatus(s string) bool { return validStatuses[s] }

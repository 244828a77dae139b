package alerts

import (
	"time"

	"github.com/google/uuid"
)

// Alert severities and statuses.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"

	StatusOpen         = "open"
	StatusAcknowledged = "acknowledged"
	StatusResolved     = "resolved"
)

type Alert struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	Severity   string     `db:"severity" json:"severity"`
	Source     string     `db:"source" json:"source"`
	Message    string     `db:"message" json:"message"`
	Status     string     `db:"status" json:"status"`
	PatientID  *uuid.UUID `db:"patient_id" json:"patient_id,omitempty"`
	CreatedBy  uuid.UUID  `db:"created_by" json:"created_by"`
	AckedBy    *uuid.UUID `db:"acked_by" json:"acked_by,omitempty"`
	AckedAt    *time.Time `db:"acked_at" json:"acked_at,omitempty"`
	ResolvedBy *uuid.UUID `db:"resolved_by" json:"resolved_by,omitempty"`
	ResolvedAt *time.Time `db:"resolved_at" json:"resolved_at,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}

var validSeverities = map[string]bool{
	SeverityInfo:     true,
	SeverityWarning:  true,
	SeverityCritical: true,
}

func ValidSeverity(s string) bool { return validSeverities[s] }

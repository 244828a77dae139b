package triage

import (
	"time"

	"github.com/google/uuid"
)

// Triage categories, mirroring the five-level urgency scale. Category and
// numeric level travel together on an assessment.
const (
	CategoryResuscitation = "resuscitation"
	CategoryEmergent      = "emergent"
	CategoryUrgent        = "urgent"
	CategoryLessUrgent    = "less_urgent"
	CategoryNonUrgent     = "non_urgent"
)

// Level bounds: 1 is most urgent, 5 least.
const (
	MinLevel = 1
	MaxLevel = 5
)

// Assessment maps to the triage_assessment table. One row per triage
// encounter; immutable by convention, though partial updates are allowed.
type Assessment struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	PatientID        uuid.UUID  `db:"patient_id" json:"patient_id"`
	QueueID          *uuid.UUID `db:"queue_id" json:"queue_id,omitempty"`
	TriageLevel      int        `db:"triage_level" json:"triage_level"`
	TriageCategory   string     `db:"triage_category" json:"triage_category"`
	ChiefComplaint   string     `db:"chief_complaint" json:"chief_complaint"`
	HeartRate        *int       `db:"heart_rate" json:"heart_rate,omitempty"`
	BPSystolic       *int       `db:"bp_systolic" json:"bp_systolic,omitempty"`
	BPDiastolic      *int       `db:"bp_diastolic" json:"bp_diastolic,omitempty"`
	Temperature      *float64   `db:"temperature" json:"temperature,omitempty"`
	RespiratoryRate  *int       `db:"respiratory_rate" json:"respiratory_rate,omitempty"`
	OxygenSaturation *int       `db:"oxygen_saturation" json:"oxygen_saturation,omitempty"`
	PainScale        *int       `db:"pain_scale" json:"pain_scale,omitempty"`
	Notes            *string    `db:"notes" json:"notes,omitempty"`
	AssessedBy       uuid.UUID  `db:"assessed_by" json:"assessed_by"`
	AssessedAt       time.Time  `db:"assessed_at" json:"assessed_at"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}

var validCategories = map[string]bool{
	CategoryResuscitation: true,
	CategoryEmergent:      true,
	CategoryUrgent:        true,
	CategoryLessUrgent:    true,
	CategoryNonUrgent:     true,
}

// ValidCategory reports whether c is a known triage category.
func ValidCategory(c string) bool { return validCategories[c] }

// ValidLevel reports whether l is within the 1-5 urgency scale.
func ValidLevel(l int) bool { return l >= MinLevel && l <= MaxLevel }

// PriorityForLevel maps a triage level onto a queue priority. Both use the
// same 1-5 scale today, but queue ordering and clinical urgency are distinct
// concerns, so the mapping has a single named seam.
func PriorityForLevel(level int) int { return level }

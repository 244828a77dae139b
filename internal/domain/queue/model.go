package queue

import (
	"time"

	"github.com/google/uuid"
)

// Queue entry statuses. The first three are "active": a patient may hold at
// most one active entry at a time, enforced by a partial unique index.
const (
	StatusWaiting    = "waiting"
	StatusCalled     = "called"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Workflow stages a visit moves through.
const (
	StageWaiting    = "waiting"
	StageTriage     = "triage"
	StageNurse      = "nurse"
	StageDoctor     = "doctor"
	StageLab        = "lab"
	StagePharmacy   = "pharmacy"
	StageBilling    = "billing"
	StageCompleted  = "completed"
	StageDischarged = "discharged"
)

// DefaultPriority is assigned at check-in, before any triage assessment.
// Lower values sort first; triage levels 1-5 map onto the same scale.
const DefaultPriority = 3

// Entry maps to the queue_entry table: one row per active patient visit.
type Entry struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	PatientID    uuid.UUID  `db:"patient_id" json:"patient_id"`
	Status       string     `db:"status" json:"status"`
	CurrentStage string     `db:"current_stage" json:"current_stage"`
	Priority     int        `db:"priority" json:"priority"`
	CheckInTime  time.Time  `db:"check_in_time" json:"check_in_time"`
	CalledAt     *time.Time `db:"called_at" json:"called_at,omitempty"`
	CompletedAt  *time.Time `db:"completed_at" json:"completed_at,omitempty"`
	Note         *string    `db:"note" json:"note,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// StageChange maps to the queue_stage_history table.
type StageChange struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	QueueID   uuid.UUID  `db:"queue_id" json:"queue_id"`
	FromStage string     `db:"from_stage" json:"from_stage"`
	ToStage   string     `db:"to_stage" json:"to_stage"`
	ChangedBy *uuid.UUID `db:"changed_by" json:"changed_by,omitempty"`
	ChangedAt time.Time  `db:"changed_at" json:"changed_at"`
}

var validStatuses = map[string]bool{
	StatusWaiting:    true,
	StatusCalled:     true,
	StatusInProgress: true,
	StatusCompleted:  true,
}

// ValidStatus reports whether s is a known queue status.
func ValidStatus(s string) bool { return validStatuses[s] }

// ActiveStatuses are the statuses covered by the one-active-entry-per-patient
// guard.
var ActiveStatuses = []string{StatusWaiting, StatusCalled, StatusInProgress}

// stageTransitions is the allowed successor table. A stage update whose
// (current, proposed) pair is absent is rejected. Terminal stages have no
// successors.
var stageTransitions = map[string][]string{
	StageWaiting:   {StageTriage},
	StageTriage:    {StageNurse},
	StageNurse:     {StageDoctor},
	StageDoctor:    {StageLab, StagePharmacy, StageBilling, StageCompleted},
	StageLab:       {StageDoctor, StagePharmacy, StageBilling},
	StagePharmacy:  {StageBilling},
	StageBilling:   {StageCompleted},
	StageCompleted: {StageDischarged},
}

// ValidStage reports whether s is a known workflow stage.
func ValidStage(s string) bool {
	if _, ok := stageTransitions[s]; ok {
		return true
	}
	return s == StageDischarged
}

// ValidStageTransition reports whether moving from one stage to the next is
// allowed by the transition table.
func ValidStageTransition(from, to string) bool {
	for _, next := range stageTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

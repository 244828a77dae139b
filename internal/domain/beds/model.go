package beds

import (
	"time"

	"github.com/google/uuid"
)

// Bed statuses. A bed is occupied exactly when patient_id is set.
const (
	BedAvailable   = "available"
	BedOccupied    = "occupied"
	BedMaintenance = "maintenance"
)

type Ward struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Floor     *string   `db:"floor" json:"floor,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Bed struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	WardID     uuid.UUID  `db:"ward_id" json:"ward_id"`
	Label      string     `db:"label" json:"label"`
	Status     string     `db:"status" json:"status"`
	PatientID  *uuid.UUID `db:"patient_id" json:"patient_id,omitempty"`
	AssignedAt *time.Time `db:"assigned_at" json:"assigned_at,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

// WardOccupancy is a per-ward rollup used by the dashboard.
type WardOccupancy struct {
	WardID   uuid.UUID `db:"ward_id" json:"ward_id"`
	WardName string    `db:"ward_name" json:"ward_name"`
	Total    int       `db:"total" json:"total"`
	Occupied int       `db:"occupied" json:"occupied"`
}

var validBedStatuses = map[string]bool{
	BedAvailable:   true,
	BedOccupied:    true,
	BedMaintenance: true,
}

func ValidBedStatus(s string) bool { return validBedStatuses[s] }

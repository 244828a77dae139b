package laboratory

import (
	"time"

	"github.com/google/uuid"
)

// Lab order statuses, in rough lifecycle order.
const (
	StatusOrdered    = "ordered"
	StatusCollected  = "collected"
	StatusInProgress = "in_progress"
	StatusResulted   = "resulted"
	StatusCancelled  = "cancelled"
)

type Order struct {
	ID        uuid.UUID `db:"id" json:"id"`
	PatientID uuid.UUID `db:"patient_id" json:"patient_id"`
	OrderedBy uuid.UUID `db:"ordered_by" json:"ordered_by"`
	TestCode  string    `db:"test_code" json:"test_code"`
	TestName  string    `db:"test_name" json:"test_name"`
	Status    string    `db:"status" json:"status"`
	Notes     *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type Result struct {
	ID             uuid.UUID `db:"id" json:"id"`
	OrderID        uuid.UUID `db:"order_id" json:"order_id"`
	Value          string    `db:"value" json:"value"`
	Unit           *string   `db:"unit" json:"unit,omitempty"`
	ReferenceRange *string   `db:"reference_range" json:"reference_range,omitempty"`
	Abnormal       bool      `db:"abnormal" json:"abnormal"`
	ResultedBy     uuid.UUID `db:"resulted_by" json:"resulted_by"`
	ResultedAt     time.Time `db:"resulted_at" json:"resulted_at"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

var validStatuses = map[string]bool{
	StatusOrdered:    true,
	StatusCollected:  true,
	StatusInProgress: true,
	StatusResulted:   true,
	StatusCancelled:  true,
}

func ValidStatus(s string) bool { return validStatuses[s] }

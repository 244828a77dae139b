package hr

import (
	"time"

	"github.com/google/uuid"
)

// Staff is a directory entry for anyone on the roster. It is independent of
// login accounts; most staff never sign in to the system.
type Staff struct {
	ID         uuid.UUID `db:"id" json:"id"`
	FullName   string    `db:"full_name" json:"full_name"`
	JobTitle   string    `db:"job_title" json:"job_title"`
	Department *string   `db:"department" json:"department,omitempty"`
	Phone      *string   `db:"phone" json:"phone,omitempty"`
	Email      *string   `db:"email" json:"email,omitempty"`
	Active     bool      `db:"active" json:"active"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// Shift is one roster entry for a staff member.
type Shift struct {
	ID        uuid.UUID `db:"id" json:"id"`
	StaffID   uuid.UUID `db:"staff_id" json:"staff_id"`
	StartsAt  time.Time `db:"starts_at" json:"starts_at"`
	EndsAt    time.Time `db:"ends_at" json:"ends_at"`
	Ward      *string   `db:"ward" json:"ward,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

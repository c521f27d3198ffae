package reminder

import (
	"time"

	"github.com/google/uuid"
)

// Reminder kinds.
const (
	KindVaccination = "vaccination"
	KindANC         = "anc"
	KindCustom      = "custom"
)

// Reminder maps to the reminders table. Due reminders are swept daily and
// delivered to the owning caregiver.
type Reminder struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	AccountID uuid.UUID  `db:"account_id" json:"account_id"`
	Kind      string     `db:"kind" json:"kind"`
	Title     string     `db:"title" json:"title"`
	Body      string     `db:"body" json:"body"`
	DueDate   time.Time  `db:"due_date" json:"due_date"`
	SentAt    *time.Time `db:"sent_at" json:"sent_at,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

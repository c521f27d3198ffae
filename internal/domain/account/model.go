package account

import (
	"time"

	"github.com/google/uuid"
)

// Account is a caregiver profile, keyed by the identity provider subject.
type Account struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Subject   string    `db:"subject" json:"subject"`
	FullName  string    `db:"full_name" json:"full_name"`
	Email     string    `db:"email" json:"email"`
	Phone     *string   `db:"phone" json:"phone,omitempty"`
	County    *string   `db:"county" json:"county,omitempty"`
	Language  string    `db:"language" json:"language"`
	Reminders bool      `db:"reminders_enabled" json:"reminders_enabled"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

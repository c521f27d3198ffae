package child

import (
	"time"

	"github.com/google/uuid"

	"github.com/mamacare/mamacare/internal/schedule"
)

// Child maps to the children table.
type Child struct {
	ID          uuid.UUID `db:"id" json:"id"`
	AccountID   uuid.UUID `db:"account_id" json:"account_id"`
	Name        string    `db:"name" json:"name"`
	DateOfBirth time.Time `db:"date_of_birth" json:"date_of_birth"`
	Gender      *string   `db:"gender" json:"gender,omitempty"`
	BirthWeight *float64  `db:"birth_weight_kg" json:"birth_weight_kg,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// VaccinationRecord maps to the vaccination_records table. One row per dose
// of the immunization schedule, materialized when the child is registered.
type VaccinationRecord struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	ChildID          uuid.UUID  `db:"child_id" json:"child_id"`
	VaccineName      string     `db:"vaccine_name" json:"vaccine_name"`
	Dose             int        `db:"dose" json:"dose"`
	ScheduledDate    time.Time  `db:"scheduled_date" json:"scheduled_date"`
	AgeLabel         string     `db:"age_label" json:"age_label"`
	Method           string     `db:"method" json:"method"`
	Purpose          string     `db:"purpose" json:"purpose"`
	Status           string     `db:"status" json:"status"`
	AdministeredDate *time.Time `db:"administered_date" json:"administered_date,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}

// visit converts the record to its schedule representation.
func (v *VaccinationRecord) visit() schedule.Visit {
	return schedule.Visit{
		Name:    v.VaccineName,
		Dose:    v.Dose,
		Date:    v.ScheduledDate,
		AgeAt:   v.AgeLabel,
		Method:  v.Method,
		Purpose: v.Purpose,
	}
}

// completion converts the record to a completion entry, or returns false if
// the dose has not been acted on.
func (v *VaccinationRecord) completion() (schedule.Completion, bool) {
	if v.Status == schedule.StatusScheduled || v.Status == schedule.StatusOverdue {
		return schedule.Completion{}, false
	}
	c := schedule.Completion{
		Name:   v.VaccineName,
		Dose:   v.Dose,
		Status: v.Status,
	}
	if v.AdministeredDate != nil {
		c.Date = *v.AdministeredDate
	}
	return c, true
}

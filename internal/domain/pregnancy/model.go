package pregnancy

import (
	"time"

	"github.com/google/uuid"

	"github.com/mamacare/mamacare/internal/schedule"
)

// Pregnancy maps to the pregnancies table. LMP (last menstrual period) is
// the anchor date for the antenatal contact schedule and the due date.
type Pregnancy struct {
	ID                uuid.UUID `db:"id" json:"id"`
	AccountID         uuid.UUID `db:"account_id" json:"account_id"`
	LMP               time.Time `db:"lmp" json:"lmp"`
	EDD               time.Time `db:"edd" json:"edd"`
	MaternalAge       int       `db:"maternal_age" json:"maternal_age"`
	IFASStarted       bool      `db:"ifas_started" json:"ifas_started"`
	TetanusVaccinated bool      `db:"tetanus_vaccinated" json:"tetanus_vaccinated"`
	Status            string    `db:"status" json:"status"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

// Pregnancy statuses.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusClosed    = "closed"
)

// GestationalWeek returns the completed weeks of gestation at the given time.
func (p *Pregnancy) GestationalWeek(at time.Time) int {
	days := int(at.Sub(p.LMP).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days / 7
}

// ANCVisit maps to the anc_visits table. One row per scheduled contact,
// materialized when the pregnancy is registered.
type ANCVisit struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	PregnancyID   uuid.UUID  `db:"pregnancy_id" json:"pregnancy_id"`
	Contact       int        `db:"contact" json:"contact"`
	ScheduledDate time.Time  `db:"scheduled_date" json:"scheduled_date"`
	AgeLabel      string     `db:"age_label" json:"age_label"`
	Purpose       string     `db:"purpose" json:"purpose"`
	Status        string     `db:"status" json:"status"`
	AttendedDate  *time.Time `db:"attended_date" json:"attended_date,omitempty"`
	Notes         *string    `db:"notes" json:"notes,omitempty"`

	// Vitals recorded by the attending nurse.
	WeightKg       *float64 `db:"weight_kg" json:"weight_kg,omitempty"`
	BloodPressure  *string  `db:"blood_pressure" json:"blood_pressure,omitempty"`
	FundalHeightCm *float64 `db:"fundal_height_cm" json:"fundal_height_cm,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Vitals captures the measurements taken at an attended contact.
type Vitals struct {
	WeightKg       *float64 `json:"weight_kg,omitempty"`
	BloodPressure  *string  `json:"blood_pressure,omitempty"`
	FundalHeightCm *float64 `json:"fundal_height_cm,omitempty"`
}

func (v *ANCVisit) visit() schedule.Visit {
	return schedule.Visit{
		Name:    "ANC Contact",
		Dose:    v.Contact,
		Date:    v.ScheduledDate,
		AgeAt:   v.AgeLabel,
		Method:  "Clinic visit",
		Purpose: v.Purpose,
	}
}

func (v *ANCVisit) completion() (schedule.Completion, bool) {
	if v.Status == schedule.StatusScheduled || v.Status == schedule.StatusOverdue {
		return schedule.Completion{}, false
	}
	c := schedule.Completion{
		Name:   "ANC Contact",
		Dose:   v.Contact,
		Status: v.Status,
	}
	if v.AttendedDate != nil {
		c.Date = *v.AttendedDate
	}
	return c, true
}

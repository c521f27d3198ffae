// Package schedule implements the rule-based visit schedule engine shared by
// the child vaccination (KEPI) and antenatal care domains. Schedules are
// derived from a single anchor date (birth date or last menstrual period) and
// a static table of offsets; every function here is pure and safe for
// concurrent use.
package schedule

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

// ErrInvalidDate is returned when an anchor date cannot be parsed as an
// ISO-8601 calendar date.
var ErrInvalidDate = errors.New("invalid date")

// DateLayout is the calendar date form accepted for anchors and emitted for
// computed visit dates.
const DateLayout = "2006-01-02"

// Visit statuses assigned by NextPending and stored on materialized records.
const (
	StatusScheduled    = "scheduled"
	StatusAdministered = "administered"
	StatusOverdue      = "overdue"
	StatusMissed       = "missed"
)

// Entry is one row of a static schedule table. Tables are defined once at
// process start and never mutated.
type Entry struct {
	Name        string   `json:"name"`
	Dose        int      `json:"dose"`
	AgeWeeks    int      `json:"age_weeks"`
	AgeDays     int      `json:"age_days,omitempty"` // overrides AgeWeeks*7 when non-zero on a week-zero entry
	Method      string   `json:"method,omitempty"`
	Purpose     string   `json:"purpose,omitempty"`
	SideEffects []string `json:"side_effects,omitempty"`
	Tips        []string `json:"tips,omitempty"`
}

// offsetDays returns the entry's offset from the anchor in whole days.
func (e Entry) offsetDays() int {
	if e.AgeDays != 0 {
		return e.AgeDays
	}
	return e.AgeWeeks * 7
}

// Visit is one computed schedule slot, derived deterministically from an
// (Entry, anchor) pair. Visits are recomputed on demand and never treated as
// the source of truth for what actually happened.
type Visit struct {
	Name    string    `json:"name"`
	Dose    int       `json:"dose"`
	Date    time.Time `json:"date"`
	AgeAt   string    `json:"age_at"`
	Method  string    `json:"method,omitempty"`
	Purpose string    `json:"purpose,omitempty"`
}

// Completion is the externally owned record of an entry that was acted on.
// Matching against schedule slots uses (Name, Dose) only; any recorded date
// is deliberately ignored, so an item administered early or late still
// satisfies its slot.
type Completion struct {
	Name   string    `json:"name"`
	Dose   int       `json:"dose"`
	Status string    `json:"status"`
	Date   time.Time `json:"date,omitempty"`
}

// ParseAnchor parses an ISO-8601 calendar date, wrapping failures in
// ErrInvalidDate so callers can map them to a request rejection.
func ParseAnchor(anchor string) (time.Time, error) {
	t, err := time.Parse(DateLayout, anchor)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, anchor)
	}
	return t, nil
}

// Generate computes the full visit schedule for an anchor date. The result is
// sorted ascending by date; entries sharing a date keep table order, since
// multiple vaccines or tests are legitimately co-scheduled on one day. An
// empty table yields an empty, valid schedule.
func Generate(anchor string, table []Entry) ([]Visit, error) {
	at, err := ParseAnchor(anchor)
	if err != nil {
		return nil, err
	}
	return GenerateFrom(at, table), nil
}

// GenerateFrom is Generate for callers that already hold a parsed anchor.
func GenerateFrom(anchor time.Time, table []Entry) []Visit {
	visits := make([]Visit, 0, len(table))
	for _, e := range table {
		visits = append(visits, Visit{
			Name:    e.Name,
			Dose:    e.Dose,
			Date:    anchor.AddDate(0, 0, e.offsetDays()),
			AgeAt:   ageLabel(e),
			Method:  e.Method,
			Purpose: e.Purpose,
		})
	}
	sort.SliceStable(visits, func(i, j int) bool {
		return visits[i].Date.Before(visits[j].Date)
	})
	return visits
}

func ageLabel(e Entry) string {
	if e.offsetDays() == 0 {
		return "At birth"
	}
	if e.AgeDays != 0 {
		return fmt.Sprintf("%d days", e.AgeDays)
	}
	return fmt.Sprintf("%d weeks", e.AgeWeeks)
}

// PendingVisit is a schedule slot not yet satisfied by an administered
// completion, tagged with its standing relative to the caller's clock.
type PendingVisit struct {
	Visit
	Status string `json:"status"` // scheduled or overdue
}

// NextPending walks a chronologically sorted schedule and returns the
// earliest slot with no matching administered completion. The slot is tagged
// overdue when its date is strictly before today. A nil result means every
// slot is satisfied; that signals completion, not an error.
func NextPending(visits []Visit, completions []Completion, today time.Time) *PendingVisit {
	done := make(map[completionKey]bool, len(completions))
	for _, c := range completions {
		if c.Status == StatusAdministered {
			done[completionKey{c.Name, c.Dose}] = true
		}
	}
	for _, v := range visits {
		if done[completionKey{v.Name, v.Dose}] {
			continue
		}
		status := StatusScheduled
		if v.Date.Before(truncateDay(today)) {
			status = StatusOverdue
		}
		return &PendingVisit{Visit: v, Status: status}
	}
	return nil
}

type completionKey struct {
	name string
	dose int
}

// Progress summarizes schedule compliance at a point in time.
type Progress struct {
	DueCount       int           `json:"due_count"`
	CompletedCount int           `json:"completed_count"`
	Percentage     int           `json:"percentage"`
	NextPending    *PendingVisit `json:"next_pending,omitempty"`
}

// ComputeProgress counts slots due on or before today and administered
// completions, and derives a percentage. CompletedCount is a global count of
// administered records, not filtered to due slots, so Percentage can exceed
// 100 and is not clamped; callers that need a bounded value clamp themselves.
func ComputeProgress(visits []Visit, completions []Completion, today time.Time) Progress {
	day := truncateDay(today)
	p := Progress{NextPending: NextPending(visits, completions, today)}
	for _, v := range visits {
		if !v.Date.After(day) {
			p.DueCount++
		}
	}
	for _, c := range completions {
		if c.Status == StatusAdministered {
			p.CompletedCount++
		}
	}
	if p.DueCount > 0 {
		p.Percentage = int(math.Round(float64(p.CompletedCount) / float64(p.DueCount) * 100))
	}
	return p
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

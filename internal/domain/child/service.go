package child

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mamacare/mamacare/internal/schedule"
)

// TxRunner executes fn inside a transaction. The default runs fn directly.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

func passthroughTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type Service struct {
	children ChildRepository
	records  RecordRepository
	inTx     TxRunner
	now      func() time.Time
}

func NewService(children ChildRepository, records RecordRepository, opts ...Option) *Service {
	s := &Service{
		children: children,
		records:  records,
		inTx:     passthroughTx,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type Option func(*Service)

// WithTxRunner wires the service to run multi-statement writes in a
// database transaction.
func WithTxRunner(runner TxRunner) Option {
	return func(s *Service) { s.inTx = runner }
}

// WithClock overrides the service clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

var validGenders = map[string]bool{
	"female": true, "male": true,
}

// Create registers a child and materializes their full immunization
// schedule from the date of birth.
func (s *Service) Create(ctx context.Context, ch *Child) error {
	if ch.AccountID == uuid.Nil {
		return fmt.Errorf("account_id is required")
	}
	if ch.Name == "" {
		return fmt.Errorf("name is required")
	}
	if ch.DateOfBirth.IsZero() {
		return fmt.Errorf("date_of_birth is required")
	}
	if ch.DateOfBirth.After(s.now()) {
		return fmt.Errorf("date_of_birth cannot be in the future")
	}
	if ch.Gender != nil && !validGenders[*ch.Gender] {
		return fmt.Errorf("invalid gender: %s", *ch.Gender)
	}

	visits := schedule.GenerateFrom(ch.DateOfBirth, schedule.KEPISchedule)

	return s.inTx(ctx, func(ctx context.Context) error {
		if err := s.children.Create(ctx, ch); err != nil {
			return err
		}
		records := make([]*VaccinationRecord, 0, len(visits))
		for _, v := range visits {
			records = append(records, &VaccinationRecord{
				ChildID:       ch.ID,
				VaccineName:   v.Name,
				Dose:          v.Dose,
				ScheduledDate: v.Date,
				AgeLabel:      v.AgeAt,
				Method:        v.Method,
				Purpose:       v.Purpose,
				Status:        schedule.StatusScheduled,
			})
		}
		return s.records.CreateBatch(ctx, records)
	})
}

// Get returns a child owned by the given account.
func (s *Service) Get(ctx context.Context, accountID, childID uuid.UUID) (*Child, error) {
	ch, err := s.children.GetByID(ctx, childID)
	if err != nil {
		return nil, err
	}
	if ch.AccountID != accountID {
		return nil, fmt.Errorf("child does not belong to account")
	}
	return ch, nil
}

func (s *Service) ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*Child, int, error) {
	return s.children.ListByAccount(ctx, accountID, limit, offset)
}

func (s *Service) Update(ctx context.Context, accountID uuid.UUID, ch *Child) error {
	existing, err := s.Get(ctx, accountID, ch.ID)
	if err != nil {
		return err
	}
	if ch.Name == "" {
		ch.Name = existing.Name
	}
	if ch.Gender != nil && !validGenders[*ch.Gender] {
		return fmt.Errorf("invalid gender: %s", *ch.Gender)
	}
	return s.children.Update(ctx, ch)
}

func (s *Service) Delete(ctx context.Context, accountID, childID uuid.UUID) error {
	if _, err := s.Get(ctx, accountID, childID); err != nil {
		return err
	}
	return s.inTx(ctx, func(ctx context.Context) error {
		if err := s.records.DeleteByChild(ctx, childID); err != nil {
			return err
		}
		return s.children.Delete(ctx, childID)
	})
}

// Schedule returns the child's full vaccination schedule.
func (s *Service) Schedule(ctx context.Context, accountID, childID uuid.UUID) ([]*VaccinationRecord, error) {
	if _, err := s.Get(ctx, accountID, childID); err != nil {
		return nil, err
	}
	return s.records.ListByChild(ctx, childID)
}

// NextDose returns the next pending vaccination, or nil when the schedule
// is complete.
func (s *Service) NextDose(ctx context.Context, accountID, childID uuid.UUID) (*schedule.PendingVisit, error) {
	records, err := s.Schedule(ctx, accountID, childID)
	if err != nil {
		return nil, err
	}
	visits, completions := splitRecords(records)
	return schedule.NextPending(visits, completions, s.now()), nil
}

// Progress reports the child's vaccination progress.
func (s *Service) Progress(ctx context.Context, accountID, childID uuid.UUID) (*schedule.Progress, error) {
	records, err := s.Schedule(ctx, accountID, childID)
	if err != nil {
		return nil, err
	}
	visits, completions := splitRecords(records)
	p := schedule.ComputeProgress(visits, completions, s.now())
	return &p, nil
}

// Administer marks a scheduled dose as given. The dose is matched by
// vaccine name and dose number.
func (s *Service) Administer(ctx context.Context, accountID, childID uuid.UUID, vaccineName string, dose int, givenAt time.Time) (*VaccinationRecord, error) {
	records, err := s.Schedule(ctx, accountID, childID)
	if err != nil {
		return nil, err
	}
	if givenAt.IsZero() {
		givenAt = s.now()
	}
	for _, rec := range records {
		if rec.VaccineName == vaccineName && rec.Dose == dose {
			if rec.Status == schedule.StatusAdministered {
				return nil, fmt.Errorf("%s dose %d already administered", vaccineName, dose)
			}
			rec.Status = schedule.StatusAdministered
			rec.AdministeredDate = &givenAt
			if err := s.records.Update(ctx, rec); err != nil {
				return nil, err
			}
			return rec, nil
		}
	}
	return nil, fmt.Errorf("no scheduled dose %d of %s", dose, vaccineName)
}

func splitRecords(records []*VaccinationRecord) ([]schedule.Visit, []schedule.Completion) {
	visits := make([]schedule.Visit, 0, len(records))
	var completions []schedule.Completion
	for _, rec := range records {
		visits = append(visits, rec.visit())
		if c, ok := rec.completion(); ok {
			completions = append(completions, c)
		}
	}
	return visits, completions
}

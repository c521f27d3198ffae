package pregnancy

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
	pregnancies PregnancyRepository
	visits      VisitRepository
	inTx        TxRunner
	now         func() time.Time
}

func NewService(pregnancies PregnancyRepository, visits VisitRepository, opts ...Option) *Service {
	s := &Service{
		pregnancies: pregnancies,
		visits:      visits,
		inTx:        passthroughTx,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type Option func(*Service)

func WithTxRunner(runner TxRunner) Option {
	return func(s *Service) { s.inTx = runner }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// Create registers a pregnancy, derives the due date from the LMP and
// materializes the eight-contact antenatal schedule. One active pregnancy
// per account.
func (s *Service) Create(ctx context.Context, p *Pregnancy) error {
	if p.AccountID == uuid.Nil {
		return fmt.Errorf("account_id is required")
	}
	if p.LMP.IsZero() {
		return fmt.Errorf("lmp is required")
	}
	if p.LMP.After(s.now()) {
		return fmt.Errorf("lmp cannot be in the future")
	}
	if p.MaternalAge < 0 || p.MaternalAge > 70 {
		return fmt.Errorf("implausible maternal_age: %d", p.MaternalAge)
	}
	if existing, err := s.pregnancies.GetActiveByAccount(ctx, p.AccountID); err == nil && existing != nil {
		return fmt.Errorf("account already has an active pregnancy")
	}

	p.EDD = p.LMP.AddDate(0, 0, schedule.GestationDays)
	p.Status = StatusActive

	contacts := schedule.GenerateFrom(p.LMP, schedule.ANCSchedule)

	return s.inTx(ctx, func(ctx context.Context) error {
		if err := s.pregnancies.Create(ctx, p); err != nil {
			return err
		}
		visits := make([]*ANCVisit, 0, len(contacts))
		for _, c := range contacts {
			visits = append(visits, &ANCVisit{
				PregnancyID:   p.ID,
				Contact:       c.Dose,
				ScheduledDate: c.Date,
				AgeLabel:      c.AgeAt,
				Purpose:       c.Purpose,
				Status:        schedule.StatusScheduled,
			})
		}
		return s.visits.CreateBatch(ctx, visits)
	})
}

func (s *Service) Get(ctx context.Context, accountID, pregnancyID uuid.UUID) (*Pregnancy, error) {
	p, err := s.pregnancies.GetByID(ctx, pregnancyID)
	if err != nil {
		return nil, err
	}
	if p.AccountID != accountID {
		return nil, fmt.Errorf("pregnancy does not belong to account")
	}
	return p, nil
}

func (s *Service) GetActive(ctx context.Context, accountID uuid.UUID) (*Pregnancy, error) {
	return s.pregnancies.GetActiveByAccount(ctx, accountID)
}

func (s *Service) ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*Pregnancy, int, error) {
	return s.pregnancies.ListByAccount(ctx, accountID, limit, offset)
}

var validStatuses = map[string]bool{
	StatusActive: true, StatusCompleted: true, StatusClosed: true,
}

// Update changes the mutable clinical flags and status. LMP and EDD are
// fixed after registration; a wrong LMP means closing and re-registering.
func (s *Service) Update(ctx context.Context, accountID uuid.UUID, p *Pregnancy) error {
	existing, err := s.Get(ctx, accountID, p.ID)
	if err != nil {
		return err
	}
	if p.Status == "" {
		p.Status = existing.Status
	}
	if !validStatuses[p.Status] {
		return fmt.Errorf("invalid status: %s", p.Status)
	}
	if p.MaternalAge == 0 {
		p.MaternalAge = existing.MaternalAge
	}
	return s.pregnancies.Update(ctx, p)
}

func (s *Service) Delete(ctx context.Context, accountID, pregnancyID uuid.UUID) error {
	if _, err := s.Get(ctx, accountID, pregnancyID); err != nil {
		return err
	}
	return s.inTx(ctx, func(ctx context.Context) error {
		if err := s.visits.DeleteByPregnancy(ctx, pregnancyID); err != nil {
			return err
		}
		return s.pregnancies.Delete(ctx, pregnancyID)
	})
}

// Schedule returns the full antenatal contact schedule.
func (s *Service) Schedule(ctx context.Context, accountID, pregnancyID uuid.UUID) ([]*ANCVisit, error) {
	if _, err := s.Get(ctx, accountID, pregnancyID); err != nil {
		return nil, err
	}
	return s.visits.ListByPregnancy(ctx, pregnancyID)
}

// NextVisit returns the next pending contact, or nil after contact 8.
func (s *Service) NextVisit(ctx context.Context, accountID, pregnancyID uuid.UUID) (*schedule.PendingVisit, error) {
	visits, err := s.Schedule(ctx, accountID, pregnancyID)
	if err != nil {
		return nil, err
	}
	slots, completions := splitVisits(visits)
	return schedule.NextPending(slots, completions, s.now()), nil
}

// Progress reports contact attendance against the schedule.
func (s *Service) Progress(ctx context.Context, accountID, pregnancyID uuid.UUID) (*schedule.Progress, error) {
	visits, err := s.Schedule(ctx, accountID, pregnancyID)
	if err != nil {
		return nil, err
	}
	slots, completions := splitVisits(visits)
	p := schedule.ComputeProgress(slots, completions, s.now())
	return &p, nil
}

// Attend marks a contact as attended, recording the visit's vitals.
func (s *Service) Attend(ctx context.Context, accountID, pregnancyID uuid.UUID, contact int, attendedAt time.Time, notes *string, vitals *Vitals) (*ANCVisit, error) {
	visits, err := s.Schedule(ctx, accountID, pregnancyID)
	if err != nil {
		return nil, err
	}
	if attendedAt.IsZero() {
		attendedAt = s.now()
	}
	for _, v := range visits {
		if v.Contact == contact {
			if v.Status == schedule.StatusAdministered {
				return nil, fmt.Errorf("contact %d already attended", contact)
			}
			v.Status = schedule.StatusAdministered
			v.AttendedDate = &attendedAt
			if notes != nil {
				v.Notes = notes
			}
			if vitals != nil {
				v.WeightKg = vitals.WeightKg
				v.BloodPressure = vitals.BloodPressure
				v.FundalHeightCm = vitals.FundalHeightCm
			}
			if err := s.visits.Update(ctx, v); err != nil {
				return nil, err
			}
			return v, nil
		}
	}
	return nil, fmt.Errorf("no scheduled contact %d", contact)
}

// Risk evaluates the antenatal risk heuristic for the pregnancy.
func (s *Service) Risk(ctx context.Context, accountID, pregnancyID uuid.UUID) (*schedule.RiskAssessment, error) {
	p, err := s.Get(ctx, accountID, pregnancyID)
	if err != nil {
		return nil, err
	}
	visits, err := s.visits.ListByPregnancy(ctx, pregnancyID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	attended, expected := 0, 0
	for _, v := range visits {
		if !v.ScheduledDate.After(now) {
			expected++
		}
		if v.Status == schedule.StatusAdministered {
			attended++
		}
	}

	assessment := schedule.AssessANCRisk(schedule.RiskFacts{
		MaternalAge:       p.MaternalAge,
		GestationalWeek:   p.GestationalWeek(now),
		TetanusVaccinated: p.TetanusVaccinated,
		IFASStarted:       p.IFASStarted,
		VisitsAttended:    attended,
		VisitsExpected:    expected,
	})
	return &assessment, nil
}

func splitVisits(visits []*ANCVisit) ([]schedule.Visit, []schedule.Completion) {
	slots := make([]schedule.Visit, 0, len(visits))
	var completions []schedule.Completion
	for _, v := range visits {
		slots = append(slots, v.visit())
		if c, ok := v.completion(); ok {
			completions = append(completions, c)
		}
	}
	return slots, completions
}

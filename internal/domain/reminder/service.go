package reminder

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	reminders Repository
}

func NewService(reminders Repository) *Service {
	return &Service{reminders: reminders}
}

var validKinds = map[string]bool{
	KindVaccination: true, KindANC: true, KindCustom: true,
}

func (s *Service) Create(ctx context.Context, r *Reminder) error {
	if r.AccountID == uuid.Nil {
		return fmt.Errorf("account_id is required")
	}
	if r.Title == "" {
		return fmt.Errorf("title is required")
	}
	if r.DueDate.IsZero() {
		return fmt.Errorf("due_date is required")
	}
	if r.Kind == "" {
		r.Kind = KindCustom
	}
	if !validKinds[r.Kind] {
		return fmt.Errorf("invalid kind: %s", r.Kind)
	}
	return s.reminders.Create(ctx, r)
}

func (s *Service) Get(ctx context.Context, accountID, id uuid.UUID) (*Reminder, error) {
	r, err := s.reminders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.AccountID != accountID {
		return nil, fmt.Errorf("reminder does not belong to account")
	}
	return r, nil
}

func (s *Service) ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*Reminder, int, error) {
	return s.reminders.ListByAccount(ctx, accountID, limit, offset)
}

func (s *Service) Delete(ctx context.Context, accountID, id uuid.UUID) error {
	if _, err := s.Get(ctx, accountID, id); err != nil {
		return err
	}
	return s.reminders.Delete(ctx, id)
}

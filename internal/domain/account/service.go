package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	accounts Repository
}

func NewService(accounts Repository) *Service {
	return &Service{accounts: accounts}
}

var validLanguages = map[string]bool{
	"en": true, "sw": true,
}

// Register creates a profile for the given IdP subject. Re-registering an
// existing subject returns the stored profile unchanged.
func (s *Service) Register(ctx context.Context, a *Account) (*Account, error) {
	if a.Subject == "" {
		return nil, fmt.Errorf("subject is required")
	}
	if a.FullName == "" {
		return nil, fmt.Errorf("full_name is required")
	}
	if a.Email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if a.Language == "" {
		a.Language = "en"
	}
	if !validLanguages[a.Language] {
		return nil, fmt.Errorf("unsupported language: %s", a.Language)
	}

	if existing, err := s.accounts.GetBySubject(ctx, a.Subject); err == nil {
		return existing, nil
	}

	a.Reminders = true
	if err := s.accounts.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Account, error) {
	return s.accounts.GetByID(ctx, id)
}

func (s *Service) GetBySubject(ctx context.Context, subject string) (*Account, error) {
	return s.accounts.GetBySubject(ctx, subject)
}

func (s *Service) Update(ctx context.Context, a *Account) error {
	if a.Language != "" && !validLanguages[a.Language] {
		return fmt.Errorf("unsupported language: %s", a.Language)
	}
	return s.accounts.Update(ctx, a)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.accounts.Delete(ctx, id)
}

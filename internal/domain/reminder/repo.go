package reminder

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, r *Reminder) error
	GetByID(ctx context.Context, id uuid.UUID) (*Reminder, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*Reminder, int, error)
	ListDueUnsent(ctx context.Context, asOf time.Time) ([]*Reminder, error)
	MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}

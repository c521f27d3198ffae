package child

import (
	"context"

	"github.com/google/uuid"
)

type ChildRepository interface {
	Create(ctx context.Context, ch *Child) error
	GetByID(ctx context.Context, id uuid.UUID) (*Child, error)
	Update(ctx context.Context, ch *Child) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*Child, int, error)
}

type RecordRepository interface {
	CreateBatch(ctx context.Context, records []*VaccinationRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*VaccinationRecord, error)
	ListByChild(ctx context.Context, childID uuid.UUID) ([]*VaccinationRecord, error)
	Update(ctx context.Context, rec *VaccinationRecord) error
	DeleteByChild(ctx context.Context, childID uuid.UUID) error
}

package pregnancy

import (
	"context"

	"github.com/google/uuid"
)

type PregnancyRepository interface {
	Create(ctx context.Context, p *Pregnancy) error
	GetByID(ctx context.Context, id uuid.UUID) (*Pregnancy, error)
	GetActiveByAccount(ctx context.Context, accountID uuid.UUID) (*Pregnancy, error)
	Update(ctx context.Context, p *Pregnancy) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*Pregnancy, int, error)
}

type VisitRepository interface {
	CreateBatch(ctx context.Context, visits []*ANCVisit) error
	ListByPregnancy(ctx context.Context, pregnancyID uuid.UUID) ([]*ANCVisit, error)
	Update(ctx context.Context, v *ANCVisit) error
	DeleteByPregnancy(ctx context.Context, pregnancyID uuid.UUID) error
}

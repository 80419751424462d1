package contractormock

import (
	"context"

	domain "workorder-approval/internal/domain/contractor"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn            func(ctx context.Context, c *domain.Contractor) error
	GetByContractorIDFn func(ctx context.Context, contractorID string) (*domain.Contractor, error)
	ListFn              func(ctx context.Context, limit, offset int) ([]domain.Contractor, error)
}

func (m *Repo) Create(ctx context.Context, c *domain.Contractor) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *Repo) GetByContractorID(ctx context.Context, contractorID string) (*domain.Contractor, error) {
	if m.GetByContractorIDFn != nil {
		return m.GetByContractorIDFn(ctx, contractorID)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context, limit, offset int) ([]domain.Contractor, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, limit, offset)
	}
	return nil, context.Canceled
}

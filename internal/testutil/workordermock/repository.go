package workordermock

import (
	"context"

	domain "workorder-approval/internal/domain/workorder"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Writes default to success, reads default to context.Canceled.
type Repo struct {
	CreateFn                    func(ctx context.Context, wo *domain.WorkOrder) error
	GetByWorkOrderIDFn          func(ctx context.Context, workOrderID string) (*domain.WorkOrder, error)
	GetByWorkOrderIDForUpdateFn func(ctx context.Context, workOrderID string) (*domain.WorkOrder, error)
	ListFn                      func(ctx context.Context, f domain.ListFilter) ([]domain.WorkOrder, error)
	SaveTransitionFn            func(ctx context.Context, wo *domain.WorkOrder, expectedRevision int) error
}

func (m *Repo) Create(ctx context.Context, wo *domain.WorkOrder) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, wo)
	}
	return nil
}

func (m *Repo) GetByWorkOrderID(ctx context.Context, workOrderID string) (*domain.WorkOrder, error) {
	if m.GetByWorkOrderIDFn != nil {
		return m.GetByWorkOrderIDFn(ctx, workOrderID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByWorkOrderIDForUpdate(ctx context.Context, workOrderID string) (*domain.WorkOrder, error) {
	if m.GetByWorkOrderIDForUpdateFn != nil {
		return m.GetByWorkOrderIDForUpdateFn(ctx, workOrderID)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context, f domain.ListFilter) ([]domain.WorkOrder, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, context.Canceled
}

func (m *Repo) SaveTransition(ctx context.Context, wo *domain.WorkOrder, expectedRevision int) error {
	if m.SaveTransitionFn != nil {
		return m.SaveTransitionFn(ctx, wo, expectedRevision)
	}
	return nil
}

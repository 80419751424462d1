package historymock

import (
	"context"

	domain "workorder-approval/internal/domain/approval"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	AppendFn            func(ctx context.Context, h *domain.History) error
	ListByWorkOrderIDFn func(ctx context.Context, workOrderID string) ([]domain.History, error)
}

func (m *Repo) Append(ctx context.Context, h *domain.History) error {
	if m.AppendFn != nil {
		return m.AppendFn(ctx, h)
	}
	return nil
}

func (m *Repo) ListByWorkOrderID(ctx context.Context, workOrderID string) ([]domain.History, error) {
	if m.ListByWorkOrderIDFn != nil {
		return m.ListByWorkOrderIDFn(ctx, workOrderID)
	}
	return nil, context.Canceled
}

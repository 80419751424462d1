package approval

import "context"

// Repository is append-only: entries are never updated or deleted.
type Repository interface {
	Append(ctx context.Context, h *History) error

	// ListByWorkOrderID returns entries oldest first.
	ListByWorkOrderID(ctx context.Context, workOrderID string) ([]History, error)
}

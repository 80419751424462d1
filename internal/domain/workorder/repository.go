package workorder

import "context"

// ListFilter narrows List results; zero values are ignored.
type ListFilter struct {
	Status       Status
	ContractorID string
	// PendingFor matches current_approver (an approver's inbox).
	PendingFor string
	Limit      int
	Offset     int
}

type Repository interface {
	Create(ctx context.Context, wo *WorkOrder) error
	GetByWorkOrderID(ctx context.Context, workOrderID string) (*WorkOrder, error)
	// Locks the row for the rest of the surrounding transaction.
	GetByWorkOrderIDForUpdate(ctx context.Context, workOrderID string) (*WorkOrder, error)
	List(ctx context.Context, f ListFilter) ([]WorkOrder, error)

	// SaveTransition writes the workflow columns only if the stored revision
	// still equals expectedRevision, otherwise ErrStaleRevision.
	SaveTransition(ctx context.Context, wo *WorkOrder, expectedRevision int) error
}

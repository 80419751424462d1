package uow

import (
	"context"

	"workorder-approval/internal/domain/approval"
	"workorder-approval/internal/domain/contractor"
	"workorder-approval/internal/domain/workorder"
)

type Repos struct {
	WorkOrders  workorder.Repository
	History     approval.Repository
	Contractors contractor.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the work order first, then pass it in
	WithinWorkOrderTx(ctx context.Context, workOrderID string, fn func(r Repos, wo *workorder.WorkOrder) error) error
}

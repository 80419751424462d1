package uowmock

import (
	"context"
	"errors"

	"workorder-approval/internal/domain/uow"
	"workorder-approval/internal/domain/workorder"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn          func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinWorkOrderTxFn func(ctx context.Context, workOrderID string, fn func(r uow.Repos, wo *workorder.WorkOrder) error) error
}

func New() *UoW { return &UoW{} }

// Passthrough runs every callback directly against repos, loading the work
// order through GetByWorkOrderIDForUpdate the way the gorm UoW does.
func Passthrough(repos uow.Repos) *UoW {
	return &UoW{
		WithinTxFn: func(_ context.Context, fn func(uow.Repos) error) error {
			return fn(repos)
		},
		WithinWorkOrderTxFn: func(ctx context.Context, id string, fn func(uow.Repos, *workorder.WorkOrder) error) error {
			wo, err := repos.WorkOrders.GetByWorkOrderIDForUpdate(ctx, id)
			if err != nil {
				return err
			}
			return fn(repos, wo)
		},
	}
}

func (m *UoW) WithWithinTx(fn func(context.Context, func(uow.Repos) error) error) *UoW {
	m.WithinTxFn = fn
	return m
}
func (m *UoW) WithWithinWorkOrderTx(fn func(context.Context, string, func(uow.Repos, *workorder.WorkOrder) error) error) *UoW {
	m.WithinWorkOrderTxFn = fn
	return m
}
func (m *UoW) Reset() { *m = UoW{} }

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}
func (m *UoW) WithinWorkOrderTx(ctx context.Context, workOrderID string, fn func(r uow.Repos, wo *workorder.WorkOrder) error) error {
	if m.WithinWorkOrderTxFn != nil {
		return m.WithinWorkOrderTxFn(ctx, workOrderID, fn)
	}
	return errUnimplemented
}

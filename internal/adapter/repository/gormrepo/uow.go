package gormrepo

import (
	"context"

	"workorder-approval/internal/domain/uow"
	"workorder-approval/internal/domain/workorder"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func repos(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		WorkOrders:  &WorkOrderRepository{db: tx},
		History:     &HistoryRepository{db: tx},
		Contractors: &ContractorRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(repos(tx))
	})
}

func (u *GormUoW) WithinWorkOrderTx(ctx context.Context, workOrderID string, fn func(r uow.Repos, wo *workorder.WorkOrder) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := repos(tx)
		// lock the work order row up-front to prevent races
		wo, err := r.WorkOrders.GetByWorkOrderIDForUpdate(ctx, workOrderID)
		if err != nil {
			return err
		}
		return fn(r, wo)
	})
}

package gormrepo

import (
	"context"

	woDomain "workorder-approval/internal/domain/workorder"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WorkOrderRepository struct{ db *gorm.DB }

func NewWorkOrderRepository(db *gorm.DB) *WorkOrderRepository { return &WorkOrderRepository{db: db} }

func (r *WorkOrderRepository) Create(ctx context.Context, wo *woDomain.WorkOrder) error {
	return r.db.WithContext(ctx).Create(wo).Error
}

func (r *WorkOrderRepository) GetByWorkOrderID(ctx context.Context, workOrderID string) (*woDomain.WorkOrder, error) {
	var out woDomain.WorkOrder
	res := r.db.WithContext(ctx).Where("work_order_id = ?", workOrderID).First(&out)
	return &out, res.Error
}

func (r *WorkOrderRepository) GetByWorkOrderIDForUpdate(ctx context.Context, workOrderID string) (*woDomain.WorkOrder, error) {
	var out woDomain.WorkOrder
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("work_order_id = ?", workOrderID).
		First(&out)
	return &out, res.Error
}

func (r *WorkOrderRepository) List(ctx context.Context, f woDomain.ListFilter) ([]woDomain.WorkOrder, error) {
	q := r.db.WithContext(ctx).Model(&woDomain.WorkOrder{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.ContractorID != "" {
		q = q.Where("contractor_id = ?", f.ContractorID)
	}
	if f.PendingFor != "" {
		q = q.Where("current_approver = ?", f.PendingFor)
	}
	limit := f.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var out []woDomain.WorkOrder
	res := q.Order("created_at DESC, id DESC").Limit(limit).Offset(f.Offset).Find(&out)
	return out, res.Error
}

// SaveTransition is a compare-and-swap on revision: zero rows affected means
// someone else committed a transition first.
func (r *WorkOrderRepository) SaveTransition(ctx context.Context, wo *woDomain.WorkOrder, expectedRevision int) error {
	res := r.db.WithContext(ctx).
		Model(wo).
		Where("revision = ?", expectedRevision).
		Select(woDomain.TransitionColumns).
		Updates(wo)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return woDomain.ErrStaleRevision
	}
	return nil
}

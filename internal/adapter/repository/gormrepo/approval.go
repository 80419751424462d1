package gormrepo

import (
	"context"

	approvalDomain "workorder-approval/internal/domain/approval"

	"gorm.io/gorm"
)

type HistoryRepository struct{ db *gorm.DB }

func NewHistoryRepository(db *gorm.DB) *HistoryRepository { return &HistoryRepository{db: db} }

func (r *HistoryRepository) Append(ctx context.Context, h *approvalDomain.History) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *HistoryRepository) ListByWorkOrderID(ctx context.Context, workOrderID string) ([]approvalDomain.History, error) {
	var out []approvalDomain.History
	res := r.db.WithContext(ctx).
		Where("work_order_id = ?", workOrderID).
		Order("acted_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

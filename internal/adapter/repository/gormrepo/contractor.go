package gormrepo

import (
	"context"

	contractorDomain "workorder-approval/internal/domain/contractor"

	"gorm.io/gorm"
)

type ContractorRepository struct{ db *gorm.DB }

func NewContractorRepository(db *gorm.DB) *ContractorRepository {
	return &ContractorRepository{db: db}
}

func (r *ContractorRepository) Create(ctx context.Context, c *contractorDomain.Contractor) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ContractorRepository) GetByContractorID(ctx context.Context, contractorID string) (*contractorDomain.Contractor, error) {
	var out contractorDomain.Contractor
	res := r.db.WithContext(ctx).Where("contractor_id = ?", contractorID).First(&out)
	return &out, res.Error
}

func (r *ContractorRepository) List(ctx context.Context, limit, offset int) ([]contractorDomain.Contractor, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var out []contractorDomain.Contractor
	res := r.db.WithContext(ctx).Order("name ASC, id ASC").Limit(limit).Offset(offset).Find(&out)
	return out, res.Error
}

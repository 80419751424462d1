package gormrepo

import (
	"workorder-approval/internal/domain/approval"
	"workorder-approval/internal/domain/contractor"
	"workorder-approval/internal/domain/workorder"

	"gorm.io/gorm"
)

// Models lists every table this service owns, in dependency order.
func Models() []any {
	return []any{&contractor.Contractor{}, &workorder.WorkOrder{}, &approval.History{}}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

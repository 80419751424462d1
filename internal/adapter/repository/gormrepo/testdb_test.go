package gormrepo

import (
	"testing"
	"time"

	"workorder-approval/internal/domain/contractor"
	"workorder-approval/internal/domain/workorder"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB creates an in-memory sqlite DB with the full schema. A single
// connection keeps every query on the same in-memory database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := Migrate(db); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func strp(s string) *string { return &s }

func makeWorkOrder(workOrderID, orderNumber string) *workorder.WorkOrder {
	return &workorder.WorkOrder{
		WorkOrderID:   workOrderID,
		OrderNumber:   orderNumber,
		Title:         "Replace boiler valve",
		Location:      "Plant 2",
		ContractorID:  "c0000000000000000000000000000001",
		SubmittedBy:   "u-sub",
		Status:        workorder.StatusDraft,
		ApprovalLevel: 1,
		TotalLevels:   2,
	}
}

func makeContractor(contractorID, name string) *contractor.Contractor {
	return &contractor.Contractor{
		ContractorID: contractorID,
		Name:         name,
		Company:      "Acme Maintenance",
		Phone:        "+62-21-555-0100",
		Status:       contractor.StatusActive,
	}
}

func ts(min int) time.Time { return time.Date(2025, 9, 6, 10, min, 0, 0, time.UTC) }

package contractor

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("contractor not found")
)

type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

// Table: contractors
type Contractor struct {
	ID           uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ContractorID string         `gorm:"column:contractor_id;size:32;not null;uniqueIndex:ux_contractors_contractor_id" json:"contractorId"`
	Name         string         `gorm:"column:name;size:255;not null" json:"name"`
	Company      string         `gorm:"column:company;size:255" json:"company"`
	Phone        string         `gorm:"column:phone;size:32" json:"phone"`
	Status       Status         `gorm:"column:status;size:16;not null;default:'active'" json:"status"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Contractor) TableName() string { return "contractors" }

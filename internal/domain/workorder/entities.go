package workorder

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("work order not found")
	// ErrStaleRevision is returned by SaveTransition when the row moved on since it was read.
	ErrStaleRevision = errors.New("work order was modified concurrently")
)

type Status string

const (
	StatusDraft          Status = "DRAFT"
	StatusPendingEHS     Status = "PENDING_EHS"
	StatusPendingManager Status = "PENDING_MANAGER"
	StatusApproved       Status = "APPROVED"
	StatusRejected       Status = "REJECTED"
	StatusReturned       Status = "RETURNED_TO_APPLICANT"
)

// Table: work_orders
type WorkOrder struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public identifier (32-char lowercase hex)
	WorkOrderID  string `gorm:"column:work_order_id;size:32;not null;uniqueIndex:ux_work_orders_work_order_id" json:"workOrderId"`
	OrderNumber  string `gorm:"column:order_number;size:64;not null;uniqueIndex:ux_work_orders_order_number" json:"orderNumber"`
	Title        string `gorm:"column:title;size:255;not null" json:"title"`
	Location     string `gorm:"column:location;size:255" json:"location"`
	ContractorID string `gorm:"column:contractor_id;size:32;not null;index:idx_work_orders_contractor" json:"contractorId"`
	SubmittedBy  string `gorm:"column:submitted_by;size:64;not null" json:"submittedBy"`

	Status          Status  `gorm:"column:status;size:32;not null;index:idx_work_orders_status" json:"status"`
	ApprovalLevel   int     `gorm:"column:approval_level;not null" json:"approvalLevel"`
	TotalLevels     int     `gorm:"column:total_levels;not null" json:"totalLevels"`
	CurrentApprover *string `gorm:"column:current_approver;size:32;index:idx_work_orders_current_approver" json:"currentApprover"`

	ApprovedAt      *time.Time `gorm:"column:approved_at" json:"approvedAt"`
	ApprovedBy      *string    `gorm:"column:approved_by;size:32" json:"approvedBy"`
	RejectedAt      *time.Time `gorm:"column:rejected_at" json:"rejectedAt"`
	RejectedBy      *string    `gorm:"column:rejected_by;size:32" json:"rejectedBy"`
	RejectionReason *string    `gorm:"column:rejection_reason;type:text" json:"rejectionReason"`
	ReturnedAt      *time.Time `gorm:"column:returned_at" json:"returnedAt"`
	ReturnedBy      *string    `gorm:"column:returned_by;size:32" json:"returnedBy"`

	// Bumped on every accepted transition; guards conditional writes.
	Revision int `gorm:"column:revision;not null;default:0" json:"-"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
	DeletedBy *string        `gorm:"column:deleted_by;size:64" json:"-"`
}

func (WorkOrder) TableName() string { return "work_orders" }

// TransitionColumns are the columns written by SaveTransition.
var TransitionColumns = []string{
	"status", "approval_level", "total_levels", "current_approver",
	"approved_at", "approved_by",
	"rejected_at", "rejected_by", "rejection_reason",
	"returned_at", "returned_by",
	"revision", "updated_at",
}

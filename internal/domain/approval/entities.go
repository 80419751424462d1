package approval

import (
	"time"
)

type Action string

const (
	ActionSubmitted   Action = "SUBMITTED"
	ActionApproved    Action = "APPROVED"
	ActionRejected    Action = "REJECTED"
	ActionReturned    Action = "RETURNED"
	ActionResubmitted Action = "RESUBMITTED"
)

// EntryType separates ordinary workflow actions from admin overrides so the
// latter can be reviewed on their own.
type EntryType string

const (
	TypeWorkflow      EntryType = "workflow"
	TypeAdminOverride EntryType = "admin_override"
)

// Table: approval_history (append-only)
type History struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public work order id
	WorkOrderID string    `gorm:"column:work_order_id;size:32;not null;index:idx_approval_history_wo_ts,priority:1" json:"workOrderId"`
	Level       int       `gorm:"column:level;not null" json:"level"`
	Approver    string    `gorm:"column:approver;size:32;not null" json:"approver"`
	ActorID     string    `gorm:"column:actor_id;size:64" json:"actorId,omitempty"`
	Action      Action    `gorm:"column:action;size:16;not null" json:"action"`
	Comment     string    `gorm:"column:comment;type:text" json:"comment"`
	Timestamp   time.Time `gorm:"column:acted_at;not null;index:idx_approval_history_wo_ts,priority:2" json:"timestamp"`
	Type        EntryType `gorm:"column:type;size:16;not null;index" json:"type"`
}

func (History) TableName() string { return "approval_history" }

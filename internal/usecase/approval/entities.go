package approval

import (
	domainApproval "workorder-approval/internal/domain/approval"
	"workorder-approval/internal/domain/workflow"
	"workorder-approval/internal/domain/workorder"
)

type DecideInput struct {
	WorkOrderID  string
	Caller       workflow.Caller
	Level        int
	Action       workflow.Action
	Comment      string
	RejectTarget workflow.RejectTarget
}

type OverrideInput struct {
	WorkOrderID string
	Caller      workflow.Caller
	Target      workflow.OverrideTarget
	Comment     string
}

// TransitionResult is the committed work order plus the one history entry
// the transition produced.
type TransitionResult struct {
	WorkOrder workorder.WorkOrder    `json:"workOrder"`
	Entry     domainApproval.History `json:"historyEntry"`
}

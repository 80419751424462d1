package approval

import (
	"context"
	"time"
)

// TransitionEvent is broadcast after a transition and its history entry commit.
type TransitionEvent struct {
	WorkOrderID     string    `json:"workOrderId"`
	OrderNumber     string    `json:"orderNumber"`
	Action          Action    `json:"action"`
	Type            EntryType `json:"type"`
	FromLevel       int       `json:"fromLevel"`
	ToLevel         int       `json:"toLevel"`
	Status          string    `json:"status"`
	Approver        string    `json:"approver"`
	ActorID         string    `json:"actorId,omitempty"`
	CurrentApprover *string   `json:"currentApprover"`
	At              time.Time `json:"at"`
}

// Publisher delivers transition events. Delivery is best effort: a failed
// publish must never undo or fail the transition that produced it.
type Publisher interface {
	PublishTransition(ctx context.Context, ev TransitionEvent)
}

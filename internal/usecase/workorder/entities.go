package workorder

import "workorder-approval/internal/domain/workflow"

type CreateInput struct {
	Title        string
	Location     string
	ContractorID string
	Caller       workflow.Caller
}

type ListInput struct {
	Status       string
	ContractorID string
	PendingFor   string
	Limit        int
	Offset       int
}

package contractor

import "context"

type Repository interface {
	Create(ctx context.Context, c *Contractor) error
	GetByContractorID(ctx context.Context, contractorID string) (*Contractor, error)
	List(ctx context.Context, limit, offset int) ([]Contractor, error)
}

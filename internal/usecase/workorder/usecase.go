package workorder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"workorder-approval/internal/domain/contractor"
	"workorder-approval/internal/domain/workflow"
	domain "workorder-approval/internal/domain/workorder"
	"workorder-approval/pkg/id"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type Usecase struct {
	orders      domain.Repository
	contractors contractor.Repository
	engine      *workflow.Engine
	now         func() time.Time
	log         zerolog.Logger
}

type Option func(*Usecase)

func WithLogger(l zerolog.Logger) Option { return func(u *Usecase) { u.log = l } }
func WithClock(now func() time.Time) Option { return func(u *Usecase) { u.now = now } }

func NewUsecase(orders domain.Repository, contractors contractor.Repository, engine *workflow.Engine, opts ...Option) *Usecase {
	u := &Usecase{orders: orders, contractors: contractors, engine: engine, now: time.Now, log: zerolog.Nop()}
	for _, o := range opts {
		o(u)
	}
	return u
}

// Create registers a new DRAFT work order for an active contractor.
func (u *Usecase) Create(ctx context.Context, in CreateInput) (*domain.WorkOrder, error) {
	if !in.Caller.CanSubmit() {
		return nil, fmt.Errorf("%w: role %q cannot create work orders", workflow.ErrForbidden, in.Caller.Role)
	}
	title := strings.TrimSpace(in.Title)
	if title == "" || in.ContractorID == "" {
		return nil, fmt.Errorf("%w: title and contractorId are required", workflow.ErrInvalidArgument)
	}

	c, err := u.contractors.GetByContractorID(ctx, in.ContractorID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("%w: contractor %s is not registered", workflow.ErrInvalidArgument, in.ContractorID)
	case err != nil:
		return nil, err
	}
	if c.Status != contractor.StatusActive {
		return nil, fmt.Errorf("%w: contractor %s is %s", workflow.ErrPolicyViolation, c.ContractorID, c.Status)
	}

	wo := u.engine.Draft(domain.WorkOrder{
		WorkOrderID:  id.NewID32(),
		OrderNumber:  id.NewOrderNumber(u.now()),
		Title:        title,
		Location:     strings.TrimSpace(in.Location),
		ContractorID: c.ContractorID,
		SubmittedBy:  in.Caller.ID,
	})
	if err := u.orders.Create(ctx, &wo); err != nil {
		return nil, err
	}
	u.log.Info().
		Str("work_order_id", wo.WorkOrderID).
		Str("order_number", wo.OrderNumber).
		Str("contractor_id", wo.ContractorID).
		Msg("workorder: draft created")
	return &wo, nil
}

func (u *Usecase) Get(ctx context.Context, workOrderID string) (*domain.WorkOrder, error) {
	wo, err := u.orders.GetByWorkOrderID(ctx, workOrderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return wo, nil
}

// List filters by status, contractor and pending approver role.
func (u *Usecase) List(ctx context.Context, in ListInput) ([]domain.WorkOrder, error) {
	f := domain.ListFilter{
		Status:       domain.Status(strings.ToUpper(in.Status)),
		ContractorID: in.ContractorID,
		Limit:        in.Limit,
		Offset:       in.Offset,
	}
	if in.PendingFor != "" {
		r, err := workflow.ParseRole(in.PendingFor)
		if err != nil {
			return nil, err
		}
		f.PendingFor = r.String()
	}
	if in.Offset < 0 {
		return nil, fmt.Errorf("%w: offset must be >= 0", workflow.ErrInvalidArgument)
	}
	out, err := u.orders.List(ctx, f)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.WorkOrder{}
	}
	return out, nil
}

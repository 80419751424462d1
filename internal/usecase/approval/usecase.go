package approval

import (
	"context"
	"errors"

	domainApproval "workorder-approval/internal/domain/approval"
	"workorder-approval/internal/domain/uow"
	"workorder-approval/internal/domain/workflow"
	"workorder-approval/internal/domain/workorder"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var errNoUnitOfWork = errors.New("approval: unit of work not configured")

// Recorder receives outcome counters; *metrics.Metrics satisfies it.
type Recorder interface {
	Transition(action, entryType string)
	Failure(operation, kind string)
}

type Usecase struct {
	orders  workorder.Repository
	history domainApproval.Repository
	uow     uow.UnitOfWork
	engine  *workflow.Engine

	log     zerolog.Logger
	metrics Recorder
	pub     domainApproval.Publisher
}

type Option func(*Usecase)

func WithLogger(l zerolog.Logger) Option { return func(u *Usecase) { u.log = l } }
func WithMetrics(m Recorder) Option { return func(u *Usecase) { u.metrics = m } }
func WithPublisher(p domainApproval.Publisher) Option { return func(u *Usecase) { u.pub = p } }

// NewUsecase: reads go through the repos, every transition through tx.
func NewUsecase(orders workorder.Repository, history domainApproval.Repository, tx uow.UnitOfWork, engine *workflow.Engine, opts ...Option) *Usecase {
	u := &Usecase{orders: orders, history: history, uow: tx, engine: engine, log: zerolog.Nop()}
	for _, o := range opts {
		o(u)
	}
	return u
}

func (u *Usecase) Submit(ctx context.Context, workOrderID string, caller workflow.Caller) (*TransitionResult, error) {
	return u.transition(ctx, "submit", workOrderID, caller, func(wo workorder.WorkOrder) (workorder.WorkOrder, domainApproval.History, error) {
		return u.engine.Submit(wo, caller)
	})
}

func (u *Usecase) Resubmit(ctx context.Context, workOrderID string, caller workflow.Caller) (*TransitionResult, error) {
	return u.transition(ctx, "resubmit", workOrderID, caller, func(wo workorder.WorkOrder) (workorder.WorkOrder, domainApproval.History, error) {
		return u.engine.Resubmit(wo, caller)
	})
}

func (u *Usecase) Decide(ctx context.Context, in DecideInput) (*TransitionResult, error) {
	d := workflow.Decision{Level: in.Level, Action: in.Action, Comment: in.Comment, RejectTarget: in.RejectTarget}
	return u.transition(ctx, "decide", in.WorkOrderID, in.Caller, func(wo workorder.WorkOrder) (workorder.WorkOrder, domainApproval.History, error) {
		return u.engine.Decide(wo, in.Caller, d)
	})
}

func (u *Usecase) OverrideReject(ctx context.Context, in OverrideInput) (*TransitionResult, error) {
	return u.transition(ctx, "override_reject", in.WorkOrderID, in.Caller, func(wo workorder.WorkOrder) (workorder.WorkOrder, domainApproval.History, error) {
		return u.engine.AdminOverrideReject(wo, in.Caller, in.Target, in.Comment)
	})
}

// History returns the audit trail oldest first.
func (u *Usecase) History(ctx context.Context, workOrderID string) ([]domainApproval.History, error) {
	if _, err := u.orders.GetByWorkOrderID(ctx, workOrderID); err != nil {
		return nil, translate(err)
	}
	out, err := u.history.ListByWorkOrderID(ctx, workOrderID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domainApproval.History{}
	}
	return out, nil
}

type step func(workorder.WorkOrder) (workorder.WorkOrder, domainApproval.History, error)

// transition locks the work order, runs the engine, then writes the new state
// (guarded by revision) and its history entry in the same tx.
func (u *Usecase) transition(ctx context.Context, op, workOrderID string, caller workflow.Caller, next step) (*TransitionResult, error) {
	if u.uow == nil {
		return nil, errNoUnitOfWork
	}
	var res *TransitionResult

	err := u.uow.WithinWorkOrderTx(ctx, workOrderID, func(r uow.Repos, locked *workorder.WorkOrder) error {
		wo, entry, err := next(*locked)
		if err != nil {
			return err
		}
		if err := r.WorkOrders.SaveTransition(ctx, &wo, locked.Revision); err != nil {
			return err
		}
		if err := r.History.Append(ctx, &entry); err != nil {
			return err
		}
		res = &TransitionResult{WorkOrder: wo, Entry: entry}
		return nil
	})
	if err != nil {
		err = translate(err)
		kind := workflow.KindOf(err)
		if u.metrics != nil {
			u.metrics.Failure(op, string(kind))
		}
		ev := u.log.Warn()
		if kind == workflow.KindInternal {
			ev = u.log.Error()
		}
		ev.Err(err).
			Str("op", op).
			Str("work_order_id", workOrderID).
			Str("role", caller.Role.String()).
			Str("kind", string(kind)).
			Msg("approval: transition refused")
		return nil, err
	}

	u.accepted(ctx, op, res)
	return res, nil
}

func (u *Usecase) accepted(ctx context.Context, op string, res *TransitionResult) {
	wo, h := res.WorkOrder, res.Entry
	if u.metrics != nil {
		u.metrics.Transition(string(h.Action), string(h.Type))
	}
	u.log.Info().
		Str("op", op).
		Str("work_order_id", wo.WorkOrderID).
		Str("action", string(h.Action)).
		Str("type", string(h.Type)).
		Int("from_level", h.Level).
		Int("to_level", wo.ApprovalLevel).
		Str("status", string(wo.Status)).
		Msg("approval: transition committed")

	if u.pub == nil {
		return
	}
	u.pub.PublishTransition(ctx, domainApproval.TransitionEvent{
		WorkOrderID:     wo.WorkOrderID,
		OrderNumber:     wo.OrderNumber,
		Action:          h.Action,
		Type:            h.Type,
		FromLevel:       h.Level,
		ToLevel:         wo.ApprovalLevel,
		Status:          string(wo.Status),
		Approver:        h.Approver,
		ActorID:         h.ActorID,
		CurrentApprover: wo.CurrentApprover,
		At:              h.Timestamp,
	})
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return workorder.ErrNotFound
	}
	return err
}

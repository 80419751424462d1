package workflow

import (
	"fmt"
	"time"

	"workorder-approval/internal/domain/approval"
	"workorder-approval/internal/domain/workorder"
)

type Action string

const (
	ActionApprove Action = "APPROVE"
	ActionReject  Action = "REJECT"
)

type RejectTarget string

const (
	TargetApplicant     RejectTarget = "APPLICANT"
	TargetPreviousLevel RejectTarget = "PREVIOUS_LEVEL"
)

// Decision is an approve or reject request at the level the caller last saw.
type Decision struct {
	Level   int
	Action  Action
	Comment string
	// Only read for ActionReject; empty means TargetApplicant.
	RejectTarget RejectTarget
}

// OverrideTarget is where an admin override sends a pending work order.
type OverrideTarget struct {
	ToApplicant bool
	Level       int
}

func ToApplicant() OverrideTarget { return OverrideTarget{ToApplicant: true} }
func ToLevel(level int) OverrideTarget { return OverrideTarget{Level: level} }
func (t OverrideTarget) String() string {
	if t.ToApplicant {
		return string(TargetApplicant)
	}
	return fmt.Sprintf("LEVEL_%d", t.Level)
}

// Engine computes work order transitions. It performs no I/O: every call takes
// a work order by value and either returns the next snapshot plus exactly one
// history entry, or an error and the input untouched.
type Engine struct {
	def Definition
	now func() time.Time
}

type Option func(*Engine)

// WithClock replaces time.Now for the timestamps the engine stamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func NewEngine(def Definition, opts ...Option) *Engine {
	if def.TotalLevels() == 0 {
		panic("workflow: engine needs a definition with at least one stage")
	}
	e := &Engine{def: def, now: time.Now}
	for _, o := range opts {
		o(e)
	}
	return e
}

func (e *Engine) Definition() Definition { return e.def }

// Draft initialises the workflow fields of a freshly created work order.
func (e *Engine) Draft(wo workorder.WorkOrder) workorder.WorkOrder {
	wo.Status = workorder.StatusDraft
	wo.ApprovalLevel = 1
	wo.TotalLevels = e.def.TotalLevels()
	wo.CurrentApprover = nil
	wo.ApprovedAt, wo.ApprovedBy = nil, nil
	wo.RejectedAt, wo.RejectedBy, wo.RejectionReason = nil, nil, nil
	wo.ReturnedAt, wo.ReturnedBy = nil, nil
	return wo
}

func (e *Engine) Submit(wo workorder.WorkOrder, caller Caller) (workorder.WorkOrder, approval.History, error) {
	if !caller.CanSubmit() {
		return wo, approval.History{}, fmt.Errorf("%w: role %q cannot submit work orders", ErrForbidden, caller.Role)
	}
	if wo.Status != workorder.StatusDraft {
		return wo, approval.History{}, fmt.Errorf("%w: submit requires %s, work order is %s", ErrInvalidState, workorder.StatusDraft, wo.Status)
	}
	now := e.now().UTC()
	next := e.enterFirstStage(wo)
	entry := e.entry(wo, caller, approval.ActionSubmitted, "", approval.TypeWorkflow, now)
	e.mustHold(next)
	return next, entry, nil
}

func (e *Engine) Resubmit(wo workorder.WorkOrder, caller Caller) (workorder.WorkOrder, approval.History, error) {
	if !caller.CanSubmit() {
		return wo, approval.History{}, fmt.Errorf("%w: role %q cannot resubmit work orders", ErrForbidden, caller.Role)
	}
	if wo.Status != workorder.StatusReturned && wo.Status != workorder.StatusRejected {
		return wo, approval.History{}, fmt.Errorf("%w: resubmit requires %s, work order is %s", ErrInvalidState, workorder.StatusReturned, wo.Status)
	}
	now := e.now().UTC()
	next := e.enterFirstStage(wo)
	next.RejectedAt, next.RejectedBy, next.RejectionReason = nil, nil, nil
	entry := e.entry(wo, caller, approval.ActionResubmitted, "", approval.TypeWorkflow, now)
	e.mustHold(next)
	return next, entry, nil
}

func (e *Engine) Decide(wo workorder.WorkOrder, caller Caller, d Decision) (workorder.WorkOrder, approval.History, error) {
	switch d.Action {
	case ActionApprove:
	case ActionReject:
		if d.RejectTarget == "" {
			d.RejectTarget = TargetApplicant
		}
		if d.RejectTarget != TargetApplicant && d.RejectTarget != TargetPreviousLevel {
			return wo, approval.History{}, fmt.Errorf("%w: unknown reject target %q", ErrInvalidArgument, d.RejectTarget)
		}
		if d.RejectTarget == TargetPreviousLevel && d.Level <= 1 {
			return wo, approval.History{}, fmt.Errorf("%w: level 1 has no previous level, reject to %s instead", ErrPolicyViolation, TargetApplicant)
		}
	default:
		return wo, approval.History{}, fmt.Errorf("%w: unknown action %q", ErrInvalidArgument, d.Action)
	}

	stage, err := e.stageAt(wo)
	if err != nil {
		return wo, approval.History{}, err
	}
	// a stale level is reported before the role gate so a replay always sees Conflict
	if d.Level != wo.ApprovalLevel {
		return wo, approval.History{}, fmt.Errorf("%w: request was made at level %d, work order is at level %d", ErrConflict, d.Level, wo.ApprovalLevel)
	}
	// the level was already decided and the order left the pending path
	if wo.Status == workorder.StatusApproved || wo.Status == workorder.StatusReturned {
		return wo, approval.History{}, fmt.Errorf("%w: level %d was already decided, work order is %s", ErrConflict, d.Level, wo.Status)
	}
	if !caller.IsAdmin() && caller.Role != stage.Role {
		return wo, approval.History{}, fmt.Errorf("%w: level %d requires role %s, caller is %q", ErrForbidden, stage.Level, stage.Role, caller.Role)
	}
	if wo.Status != stage.Status {
		return wo, approval.History{}, fmt.Errorf("%w: work order is %s, not awaiting level %d", ErrInvalidState, wo.Status, stage.Level)
	}

	typ := approval.TypeWorkflow
	if caller.Role != stage.Role {
		typ = approval.TypeAdminOverride
	}
	now := e.now().UTC()
	next := wo
	next.Revision++

	var action approval.Action
	switch {
	case d.Action == ActionApprove && wo.ApprovalLevel < wo.TotalLevels:
		up, ok := e.def.Stage(wo.ApprovalLevel + 1)
		if !ok {
			return wo, approval.History{}, fmt.Errorf("%w: no stage configured for level %d", ErrInvalidState, wo.ApprovalLevel+1)
		}
		enterStage(&next, up)
		action = approval.ActionApproved
	case d.Action == ActionApprove:
		next.Status = workorder.StatusApproved
		next.CurrentApprover = nil
		next.ApprovedAt = timePtr(now)
		next.ApprovedBy = strPtr(string(caller.Role))
		action = approval.ActionApproved
	case d.RejectTarget == TargetPreviousLevel:
		down, ok := e.def.Stage(wo.ApprovalLevel - 1)
		if !ok {
			return wo, approval.History{}, fmt.Errorf("%w: no stage configured for level %d", ErrInvalidState, wo.ApprovalLevel-1)
		}
		enterStage(&next, down)
		action = approval.ActionRejected
	default:
		returnToApplicant(&next, caller, d.Comment, now)
		action = approval.ActionReturned
	}

	entry := e.entry(wo, caller, action, d.Comment, typ, now)
	e.mustHold(next)
	return next, entry, nil
}

// AdminOverrideReject sends a pending work order to an explicitly chosen lower
// level or back to the applicant, regardless of who owns the current level.
func (e *Engine) AdminOverrideReject(wo workorder.WorkOrder, caller Caller, target OverrideTarget, comment string) (workorder.WorkOrder, approval.History, error) {
	if !caller.IsAdmin() {
		return wo, approval.History{}, fmt.Errorf("%w: override requires role %s", ErrForbidden, RoleAdmin)
	}
	if !target.ToApplicant && target.Level < 1 {
		return wo, approval.History{}, fmt.Errorf("%w: override target level must be >= 1", ErrInvalidArgument)
	}
	stage, err := e.stageAt(wo)
	if err != nil {
		return wo, approval.History{}, err
	}
	if wo.Status != stage.Status {
		return wo, approval.History{}, fmt.Errorf("%w: override requires a pending work order, got %s", ErrInvalidState, wo.Status)
	}

	now := e.now().UTC()
	next := wo
	next.Revision++

	action := approval.ActionReturned
	if target.ToApplicant {
		returnToApplicant(&next, caller, comment, now)
	} else {
		if target.Level >= wo.ApprovalLevel {
			return wo, approval.History{}, fmt.Errorf("%w: override target level %d must be below current level %d", ErrPolicyViolation, target.Level, wo.ApprovalLevel)
		}
		down, ok := e.def.Stage(target.Level)
		if !ok {
			return wo, approval.History{}, fmt.Errorf("%w: no stage configured for level %d", ErrInvalidState, target.Level)
		}
		enterStage(&next, down)
		action = approval.ActionRejected
	}

	entry := e.entry(wo, caller, action, comment, approval.TypeAdminOverride, now)
	e.mustHold(next)
	return next, entry, nil
}

// stageAt resolves the stage for the work order's current level, rejecting
// stored data the definition cannot account for.
func (e *Engine) stageAt(wo workorder.WorkOrder) (Stage, error) {
	if wo.ApprovalLevel < 1 || wo.ApprovalLevel > wo.TotalLevels {
		return Stage{}, fmt.Errorf("%w: approval level %d outside 1..%d", ErrInvalidState, wo.ApprovalLevel, wo.TotalLevels)
	}
	st, ok := e.def.Stage(wo.ApprovalLevel)
	if !ok {
		return Stage{}, fmt.Errorf("%w: no stage configured for level %d", ErrInvalidState, wo.ApprovalLevel)
	}
	return st, nil
}

func (e *Engine) enterFirstStage(wo workorder.WorkOrder) workorder.WorkOrder {
	first, _ := e.def.Stage(1)
	wo.TotalLevels = e.def.TotalLevels()
	enterStage(&wo, first)
	wo.Revision++
	return wo
}

func (e *Engine) entry(before workorder.WorkOrder, caller Caller, action approval.Action, comment string, typ approval.EntryType, at time.Time) approval.History {
	return approval.History{
		WorkOrderID: before.WorkOrderID,
		Level:       before.ApprovalLevel,
		Approver:    string(caller.Role),
		ActorID:     caller.ID,
		Action:      action,
		Comment:     comment,
		Timestamp:   at,
		Type:        typ,
	}
}

// mustHold panics when a computed snapshot breaks a workflow invariant. That
// can only happen through a bug in this package.
func (e *Engine) mustHold(wo workorder.WorkOrder) {
	if wo.ApprovalLevel < 1 || wo.ApprovalLevel > wo.TotalLevels {
		panic(fmt.Sprintf("workflow: invariant violated: level %d outside 1..%d", wo.ApprovalLevel, wo.TotalLevels))
	}
	switch wo.Status {
	case workorder.StatusApproved:
		if wo.ApprovalLevel != wo.TotalLevels || wo.CurrentApprover != nil {
			panic(fmt.Sprintf("workflow: invariant violated: approved at level %d/%d with approver %v", wo.ApprovalLevel, wo.TotalLevels, wo.CurrentApprover))
		}
	case workorder.StatusDraft, workorder.StatusReturned, workorder.StatusRejected:
		if wo.CurrentApprover != nil {
			panic(fmt.Sprintf("workflow: invariant violated: %s with approver %q", wo.Status, *wo.CurrentApprover))
		}
	default:
		st, ok := e.def.StageForStatus(wo.Status)
		if !ok || st.Level != wo.ApprovalLevel || wo.CurrentApprover == nil || *wo.CurrentApprover != string(st.Role) {
			panic(fmt.Sprintf("workflow: invariant violated: status %s at level %d with approver %v", wo.Status, wo.ApprovalLevel, wo.CurrentApprover))
		}
	}
}

func enterStage(wo *workorder.WorkOrder, st Stage) {
	wo.Status = st.Status
	wo.ApprovalLevel = st.Level
	wo.CurrentApprover = strPtr(string(st.Role))
}

func returnToApplicant(wo *workorder.WorkOrder, caller Caller, reason string, now time.Time) {
	by := string(caller.Role)
	wo.Status = workorder.StatusReturned
	wo.CurrentApprover = nil
	wo.RejectedAt = timePtr(now)
	wo.RejectedBy = strPtr(by)
	wo.RejectionReason = nil
	if reason != "" {
		wo.RejectionReason = strPtr(reason)
	}
	wo.ReturnedAt = timePtr(now)
	wo.ReturnedBy = strPtr(by)
}

func strPtr(s string) *string { return &s }
func timePtr(t time.Time) *time.Time { return &t }

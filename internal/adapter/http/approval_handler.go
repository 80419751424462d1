package http

import (
	"net/http"
	"strings"

	"workorder-approval/internal/adapter/middleware"
	"workorder-approval/internal/domain/workflow"
	ucApproval "workorder-approval/internal/usecase/approval"

	"github.com/labstack/echo/v4"
)

type ApprovalHandler struct{ uc *ucApproval.Usecase }

func NewApprovalHandler(uc *ucApproval.Usecase) *ApprovalHandler { return &ApprovalHandler{uc: uc} }

type decisionReq struct {
	// Level the approver saw; a mismatch is a conflict.
	Level        int    `json:"level"        validate:"required,gte=1"`
	Action       string `json:"action"       validate:"required,oneof=APPROVE REJECT"`
	Comment      string `json:"comment"      validate:"max=2000"`
	RejectTarget string `json:"rejectTarget" validate:"omitempty,oneof=APPLICANT PREVIOUS_LEVEL"`
}

type overrideReq struct {
	Target  string `json:"target"  validate:"required,oneof=APPLICANT LEVEL"`
	Level   int    `json:"level"   validate:"required_if=Target LEVEL,gte=0"`
	Comment string `json:"comment" validate:"max=2000"`
}

func (h *ApprovalHandler) Submit(c echo.Context) error {
	return h.withCaller(c, func(caller workflow.Caller) (*ucApproval.TransitionResult, error) {
		return h.uc.Submit(c.Request().Context(), c.Param("work_order_id"), caller)
	})
}

func (h *ApprovalHandler) Resubmit(c echo.Context) error {
	return h.withCaller(c, func(caller workflow.Caller) (*ucApproval.TransitionResult, error) {
		return h.uc.Resubmit(c.Request().Context(), c.Param("work_order_id"), caller)
	})
}

func (h *ApprovalHandler) Decide(c echo.Context) error {
	var req decisionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body", Kind: string(workflow.KindInvalidArgument)})
	}
	req.Action = strings.ToUpper(strings.TrimSpace(req.Action))
	req.RejectTarget = strings.ToUpper(strings.TrimSpace(req.RejectTarget))
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Kind:    string(workflow.KindInvalidArgument),
			Details: ToFieldErrors(err),
		})
	}
	return h.withCaller(c, func(caller workflow.Caller) (*ucApproval.TransitionResult, error) {
		return h.uc.Decide(c.Request().Context(), ucApproval.DecideInput{
			WorkOrderID:  c.Param("work_order_id"),
			Caller:       caller,
			Level:        req.Level,
			Action:       workflow.Action(req.Action),
			Comment:      req.Comment,
			RejectTarget: workflow.RejectTarget(req.RejectTarget),
		})
	})
}

func (h *ApprovalHandler) OverrideReject(c echo.Context) error {
	var req overrideReq
	if rejected, err := decode(c, &req); rejected {
		return err
	}
	target := workflow.ToApplicant()
	if req.Target == "LEVEL" {
		target = workflow.ToLevel(req.Level)
	}
	return h.withCaller(c, func(caller workflow.Caller) (*ucApproval.TransitionResult, error) {
		return h.uc.OverrideReject(c.Request().Context(), ucApproval.OverrideInput{
			WorkOrderID: c.Param("work_order_id"),
			Caller:      caller,
			Target:      target,
			Comment:     req.Comment,
		})
	})
}

func (h *ApprovalHandler) History(c echo.Context) error {
	out, err := h.uc.History(c.Request().Context(), c.Param("work_order_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ApprovalHandler) withCaller(c echo.Context, run func(workflow.Caller) (*ucApproval.TransitionResult, error)) error {
	if c.Param("work_order_id") == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing work_order_id path param", Kind: string(workflow.KindInvalidArgument)})
	}
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing caller identity"})
	}
	res, err := run(caller)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

package workflow

import (
	"errors"

	"workorder-approval/internal/domain/contractor"
	"workorder-approval/internal/domain/workorder"
)

var (
	// ErrInvalidState: the action is not legal from the current status.
	ErrInvalidState = errors.New("invalid state")
	// ErrForbidden: the caller's role may not act at the current level.
	ErrForbidden = errors.New("forbidden")
	// ErrPolicyViolation: well-formed but disallowed by a business rule.
	ErrPolicyViolation = errors.New("policy violation")
	// ErrConflict: the level the caller observed is no longer current.
	ErrConflict = errors.New("conflict")
	// ErrInvalidArgument: malformed request (unknown action, target, role).
	ErrInvalidArgument = errors.New("invalid argument")
)

type Kind string

const (
	KindInvalidState    Kind = "InvalidState"
	KindForbidden       Kind = "Forbidden"
	KindPolicyViolation Kind = "PolicyViolation"
	KindConflict        Kind = "Conflict"
	KindNotFound        Kind = "NotFound"
	KindInvalidArgument Kind = "InvalidArgument"
	KindInternal        Kind = "Internal"
)

// KindOf names the error taxonomy kind of err.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidState):
		return KindInvalidState
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrPolicyViolation):
		return KindPolicyViolation
	case errors.Is(err, ErrConflict), errors.Is(err, workorder.ErrStaleRevision):
		return KindConflict
	case errors.Is(err, workorder.ErrNotFound), errors.Is(err, contractor.ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidArgument):
		return KindInvalidArgument
	default:
		return KindInternal
	}
}

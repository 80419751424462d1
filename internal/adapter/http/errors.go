package http

import (
	"net/http"

	"workorder-approval/internal/domain/workflow"

	"github.com/labstack/echo/v4"
)

var statusByKind = map[workflow.Kind]int{
	workflow.KindInvalidState:    http.StatusConflict,
	workflow.KindConflict:        http.StatusConflict,
	workflow.KindForbidden:       http.StatusForbidden,
	workflow.KindPolicyViolation: http.StatusUnprocessableEntity,
	workflow.KindInvalidArgument: http.StatusBadRequest,
	workflow.KindNotFound:        http.StatusNotFound,
}

// writeError maps a usecase error to its status code and ErrorResponse.
func writeError(c echo.Context, err error) error {
	kind := workflow.KindOf(err)
	code, ok := statusByKind[kind]
	if !ok {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error", Kind: string(workflow.KindInternal)})
	}
	return c.JSON(code, ErrorResponse{Error: err.Error(), Kind: string(kind)})
}

// decode binds and validates req. When rejected is true the 400/422 response
// has already been written and err is the result of writing it.
func decode(c echo.Context, req any) (rejected bool, err error) {
	if err := c.Bind(req); err != nil {
		return true, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body", Kind: string(workflow.KindInvalidArgument)})
	}
	if err := c.Validate(req); err != nil {
		return true, c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Kind:    string(workflow.KindInvalidArgument),
			Details: ToFieldErrors(err),
		})
	}
	return false, nil
}

package http

import (
	"net/http"

	"workorder-approval/internal/adapter/middleware"
	ucWorkOrder "workorder-approval/internal/usecase/workorder"

	"github.com/labstack/echo/v4"
)

type WorkOrderHandler struct{ uc *ucWorkOrder.Usecase }

func NewWorkOrderHandler(uc *ucWorkOrder.Usecase) *WorkOrderHandler {
	return &WorkOrderHandler{uc: uc}
}

type createWorkOrderReq struct {
	Title        string `json:"title"        validate:"required,notblank,max=255"`
	Location     string `json:"location"     validate:"max=255"`
	ContractorID string `json:"contractorId" validate:"required,hex32"`
}

func (h *WorkOrderHandler) CreateWorkOrder(c echo.Context) error {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing caller identity"})
	}
	var req createWorkOrderReq
	if rejected, err := decode(c, &req); rejected {
		return err
	}
	wo, err := h.uc.Create(c.Request().Context(), ucWorkOrder.CreateInput{
		Title:        req.Title,
		Location:     req.Location,
		ContractorID: req.ContractorID,
		Caller:       caller,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, wo)
}

func (h *WorkOrderHandler) GetWorkOrder(c echo.Context) error {
	wo, err := h.uc.Get(c.Request().Context(), c.Param("work_order_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, wo)
}

type listWorkOrdersQuery struct {
	Status       string `query:"status"`
	ContractorID string `query:"contractorId" validate:"omitempty,hex32"`
	PendingFor   string `query:"pendingFor"   validate:"omitempty,role"`
	Limit        int    `query:"limit"        validate:"gte=0,lte=500"`
	Offset       int    `query:"offset"       validate:"gte=0"`
}

// ListWorkOrders answers an approver's inbox via ?pendingFor=EHS.
func (h *WorkOrderHandler) ListWorkOrders(c echo.Context) error {
	q := listWorkOrdersQuery{Limit: 50}
	if rejected, err := decode(c, &q); rejected {
		return err
	}
	out, err := h.uc.List(c.Request().Context(), ucWorkOrder.ListInput(q))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

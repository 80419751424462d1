package http

import (
	"net/http"

	"workorder-approval/internal/adapter/middleware"
	"workorder-approval/internal/domain/workflow"
	ucContractor "workorder-approval/internal/usecase/contractor"

	"github.com/labstack/echo/v4"
)

type ContractorHandler struct{ uc *ucContractor.Usecase }

func NewContractorHandler(uc *ucContractor.Usecase) *ContractorHandler {
	return &ContractorHandler{uc: uc}
}

type createContractorReq struct {
	Name    string `json:"name"    validate:"required,notblank,max=255"`
	Company string `json:"company" validate:"max=255"`
	Phone   string `json:"phone"   validate:"max=32"`
}

func (h *ContractorHandler) CreateContractor(c echo.Context) error {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing caller identity"})
	}
	var req createContractorReq
	if rejected, err := decode(c, &req); rejected {
		return err
	}
	out, err := h.uc.Create(c.Request().Context(), ucContractor.CreateInput{
		Name:    req.Name,
		Company: req.Company,
		Phone:   req.Phone,
		Caller:  caller,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *ContractorHandler) GetContractor(c echo.Context) error {
	out, err := h.uc.Get(c.Request().Context(), c.Param("contractor_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ContractorHandler) ListContractors(c echo.Context) error {
	limit, offset := 50, 0
	if err := echo.QueryParamsBinder(c).Int("limit", &limit).Int("offset", &offset).BindError(); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "limit and offset must be integers", Kind: string(workflow.KindInvalidArgument)})
	}
	out, err := h.uc.List(c.Request().Context(), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

package contractor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domain "workorder-approval/internal/domain/contractor"
	"workorder-approval/internal/domain/workflow"
	"workorder-approval/pkg/id"

	"gorm.io/gorm"
)

type CreateInput struct {
	Name    string
	Company string
	Phone   string
	Caller  workflow.Caller
}

type Usecase struct{ repo domain.Repository }

func NewUsecase(r domain.Repository) *Usecase { return &Usecase{repo: r} }

// Create adds a contractor to the registry; only admins maintain it.
func (u *Usecase) Create(ctx context.Context, in CreateInput) (*domain.Contractor, error) {
	if !in.Caller.IsAdmin() {
		return nil, fmt.Errorf("%w: only %s can register contractors", workflow.ErrForbidden, workflow.RoleAdmin)
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", workflow.ErrInvalidArgument)
	}
	c := &domain.Contractor{
		ContractorID: id.NewID32(),
		Name:         name,
		Company:      strings.TrimSpace(in.Company),
		Phone:        strings.TrimSpace(in.Phone),
		Status:       domain.StatusActive,
	}
	if err := u.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (u *Usecase) Get(ctx context.Context, contractorID string) (*domain.Contractor, error) {
	c, err := u.repo.GetByContractorID(ctx, contractorID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (u *Usecase) List(ctx context.Context, limit, offset int) ([]domain.Contractor, error) {
	if offset < 0 {
		return nil, fmt.Errorf("%w: offset must be >= 0", workflow.ErrInvalidArgument)
	}
	out, err := u.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Contractor{}
	}
	return out, nil
}

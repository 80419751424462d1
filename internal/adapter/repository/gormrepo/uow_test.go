package gormrepo

import (
	"context"
	"errors"
	"testing"

	approvalDomain "workorder-approval/internal/domain/approval"
	"workorder-approval/internal/domain/uow"
	"workorder-approval/internal/domain/workorder"

	"gorm.io/gorm"
)

func TestUoW_WithinTx_CommitsAcrossRepos(t *testing.T) {
	db := openTestDB(t)
	u := NewGormUoW(db)
	ctx := context.Background()

	err := u.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Contractors.Create(ctx, makeContractor("c0000000000000000000000000000001", "Alpha")); err != nil {
			return err
		}
		if err := r.WorkOrders.Create(ctx, makeWorkOrder("wo-commit", "WO-COMMIT")); err != nil {
			return err
		}
		return r.History.Append(ctx, makeEntry("wo-commit", 1, approvalDomain.ActionSubmitted, 1))
	})
	if err != nil {
		t.Fatalf("WithinTx: %v", err)
	}

	if _, err := NewContractorRepository(db).GetByContractorID(ctx, "c0000000000000000000000000000001"); err != nil {
		t.Fatalf("contractor not committed: %v", err)
	}
	if _, err := NewWorkOrderRepository(db).GetByWorkOrderID(ctx, "wo-commit"); err != nil {
		t.Fatalf("work order not committed: %v", err)
	}
	hs, _ := NewHistoryRepository(db).ListByWorkOrderID(ctx, "wo-commit")
	if len(hs) != 1 {
		t.Fatalf("history not committed: %d rows", len(hs))
	}
}

func TestUoW_WithinTx_RollsBackAll(t *testing.T) {
	db := openTestDB(t)
	u := NewGormUoW(db)
	ctx := context.Background()
	sentinel := errors.New("fail after writes")

	err := u.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.WorkOrders.Create(ctx, makeWorkOrder("wo-rb", "WO-RB")); err != nil {
			return err
		}
		if err := r.History.Append(ctx, makeEntry("wo-rb", 1, approvalDomain.ActionSubmitted, 1)); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel, got %v", err)
	}
	if _, err := NewWorkOrderRepository(db).GetByWorkOrderID(ctx, "wo-rb"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("work order leaked after rollback: %v", err)
	}
	hs, _ := NewHistoryRepository(db).ListByWorkOrderID(ctx, "wo-rb")
	if len(hs) != 0 {
		t.Fatalf("history leaked after rollback: %d rows", len(hs))
	}
}

func TestUoW_WithinWorkOrderTx_TransitionAndAudit(t *testing.T) {
	db := openTestDB(t)
	u := NewGormUoW(db)
	ctx := context.Background()

	if err := NewWorkOrderRepository(db).Create(ctx, makeWorkOrder("wo-lock", "WO-LOCK")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	err := u.WithinWorkOrderTx(ctx, "wo-lock", func(r uow.Repos, wo *workorder.WorkOrder) error {
		if wo.WorkOrderID != "wo-lock" {
			t.Fatalf("locked wrong row: %s", wo.WorkOrderID)
		}
		expected := wo.Revision
		wo.Status = workorder.StatusPendingEHS
		wo.CurrentApprover = strp("EHS")
		wo.Revision++
		if err := r.WorkOrders.SaveTransition(ctx, wo, expected); err != nil {
			return err
		}
		return r.History.Append(ctx, makeEntry(wo.WorkOrderID, 1, approvalDomain.ActionSubmitted, 2))
	})
	if err != nil {
		t.Fatalf("WithinWorkOrderTx: %v", err)
	}

	got, _ := NewWorkOrderRepository(db).GetByWorkOrderID(ctx, "wo-lock")
	if got.Status != workorder.StatusPendingEHS || got.Revision != 1 {
		t.Fatalf("transition not committed: %+v", got)
	}
}

func TestUoW_WithinWorkOrderTx_AuditFailureRollsBackTransition(t *testing.T) {
	db := openTestDB(t)
	u := NewGormUoW(db)
	ctx := context.Background()
	sentinel := errors.New("audit write failed")

	if err := NewWorkOrderRepository(db).Create(ctx, makeWorkOrder("wo-atomic", "WO-ATOMIC")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	err := u.WithinWorkOrderTx(ctx, "wo-atomic", func(r uow.Repos, wo *workorder.WorkOrder) error {
		expected := wo.Revision
		wo.Status = workorder.StatusPendingEHS
		wo.Revision++
		if err := r.WorkOrders.SaveTransition(ctx, wo, expected); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel, got %v", err)
	}
	got, _ := NewWorkOrderRepository(db).GetByWorkOrderID(ctx, "wo-atomic")
	if got.Status != workorder.StatusDraft || got.Revision != 0 {
		t.Fatalf("transition survived rollback: %+v", got)
	}
}

func TestUoW_WithinWorkOrderTx_NotFound(t *testing.T) {
	db := openTestDB(t)
	u := NewGormUoW(db)

	called := false
	err := u.WithinWorkOrderTx(context.Background(), "ghost", func(uow.Repos, *workorder.WorkOrder) error {
		called = true
		return nil
	})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
	if called {
		t.Fatalf("callback must not run for a missing work order")
	}
}

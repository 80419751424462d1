package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"workorder-approval/internal/adapter/events"
	httpadp "workorder-approval/internal/adapter/http"
	"workorder-approval/internal/adapter/repository/gormrepo"
	"workorder-approval/internal/domain/workflow"
	"workorder-approval/internal/infrastructure/cache"
	"workorder-approval/internal/infrastructure/db"
	"workorder-approval/internal/infrastructure/metrics"
	ucApproval "workorder-approval/internal/usecase/approval"
	ucContractor "workorder-approval/internal/usecase/contractor"
	ucWorkOrder "workorder-approval/internal/usecase/workorder"

	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	var autoMigrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx, autoMigrate)
		},
	}
	cmd.Flags().BoolVar(&autoMigrate, "migrate", true, "create or update tables before serving")
	return cmd
}

func (a *app) loadDefinition() (workflow.Definition, error) {
	if a.cfg.WorkflowFile == "" {
		return workflow.DefaultDefinition(), nil
	}
	return workflow.LoadDefinitionFile(a.cfg.WorkflowFile)
}

func (a *app) serve(ctx context.Context, autoMigrate bool) error {
	cfg := a.cfg

	gdb, err := db.OpenGorm(db.Options{Driver: cfg.DBDriver, DSN: cfg.DSN(), LogLevel: db.GormLogLevel(cfg.LogLevel)})
	if err != nil {
		return err
	}
	sqlDB, err := db.SQLDB(gdb)
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	if autoMigrate {
		if err := gormrepo.Migrate(gdb); err != nil {
			return err
		}
	}

	rdb, err := cache.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		return err
	}
	defer rdb.Close()

	def, err := a.loadDefinition()
	if err != nil {
		return err
	}
	engine := workflow.NewEngine(def)

	orders := gormrepo.NewWorkOrderRepository(gdb)
	contractors := gormrepo.NewContractorRepository(gdb)
	history := gormrepo.NewHistoryRepository(gdb)
	m := metrics.New()

	approvals := ucApproval.NewUsecase(orders, history, gormrepo.NewGormUoW(gdb), engine,
		ucApproval.WithLogger(a.log),
		ucApproval.WithMetrics(m),
		ucApproval.WithPublisher(events.NewRedisPublisher(rdb, cfg.EventsChannel, a.log)),
	)

	checks := map[string]httpadp.Pinger{
		"db":    sqlDB.PingContext,
		"redis": func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
	}
	e := httpadp.NewRouter(httpadp.RouterConfig{
		Contractors:    httpadp.NewContractorHandler(ucContractor.NewUsecase(contractors)),
		WorkOrders:     httpadp.NewWorkOrderHandler(ucWorkOrder.NewUsecase(orders, contractors, engine, ucWorkOrder.WithLogger(a.log))),
		Approvals:      httpadp.NewApprovalHandler(approvals),
		Metrics:        m.Handler(),
		HealthChecks:   checks,
		JWTSecret:      []byte(cfg.JWTSecret),
		Redis:          rdb,
		IdempotencyTTL: cfg.IdempotencyTTL(),
		Logger:         a.log,
	})

	addr := ":" + cfg.AppPort
	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", addr).Int("levels", def.TotalLevels()).Msg("http: listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.log.Info().Msg("http: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

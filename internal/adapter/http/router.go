package http

import (
	"net/http"
	"time"

	"workorder-approval/internal/adapter/middleware"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type RouterConfig struct {
	Contractors *ContractorHandler
	WorkOrders  *WorkOrderHandler
	Approvals   *ApprovalHandler

	// Metrics is mounted at /metrics when set.
	Metrics      http.Handler
	HealthChecks map[string]Pinger

	JWTSecret      []byte
	Redis          *redis.Client
	IdempotencyTTL time.Duration
	Logger         zerolog.Logger
}

// NewRouter builds the echo instance: /health and /metrics are open, everything
// under /api/v1 needs a bearer token and idempotency headers on writes.
func NewRouter(rc RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()
	e.Use(
		echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}),
		middleware.RequestLogger(rc.Logger),
		echomw.Recover(),
	)

	e.GET("/health", NewHandler(rc.HealthChecks).Health)
	if rc.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(rc.Metrics))
	}

	api := e.Group("/api/v1", middleware.Identity(rc.JWTSecret), middleware.Idempotency(rc.Redis, rc.IdempotencyTTL))

	api.POST("/contractors", rc.Contractors.CreateContractor)
	api.GET("/contractors", rc.Contractors.ListContractors)
	api.GET("/contractors/:contractor_id", rc.Contractors.GetContractor)

	api.POST("/work-orders", rc.WorkOrders.CreateWorkOrder)
	api.GET("/work-orders", rc.WorkOrders.ListWorkOrders)
	api.GET("/work-orders/:work_order_id", rc.WorkOrders.GetWorkOrder)

	wo := api.Group("/work-orders/:work_order_id")
	wo.POST("/submit", rc.Approvals.Submit)
	wo.POST("/decisions", rc.Approvals.Decide)
	wo.POST("/resubmit", rc.Approvals.Resubmit)
	wo.POST("/override-reject", rc.Approvals.OverrideReject)
	wo.GET("/history", rc.Approvals.History)

	return e
}

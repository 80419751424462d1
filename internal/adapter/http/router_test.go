package http

import (
	"bytes"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"workorder-approval/internal/adapter/middleware"
	"workorder-approval/internal/adapter/repository/gormrepo"
	"workorder-approval/internal/domain/workflow"
	"workorder-approval/internal/infrastructure/metrics"
	ucApproval "workorder-approval/internal/usecase/approval"
	ucContractor "workorder-approval/internal/usecase/contractor"
	ucWorkOrder "workorder-approval/internal/usecase/workorder"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var routerSecret = []byte("router-test-secret")

type apiClient struct {
	t      *testing.T
	e      *echo.Echo
	tokens map[workflow.Role]string
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := gormrepo.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	engine := workflow.NewEngine(workflow.DefaultDefinition())
	orders := gormrepo.NewWorkOrderRepository(db)
	contractors := gormrepo.NewContractorRepository(db)
	history := gormrepo.NewHistoryRepository(db)
	m := metrics.New()

	e := NewRouter(RouterConfig{
		Contractors:    NewContractorHandler(ucContractor.NewUsecase(contractors)),
		WorkOrders:     NewWorkOrderHandler(ucWorkOrder.NewUsecase(orders, contractors, engine)),
		Approvals:      NewApprovalHandler(ucApproval.NewUsecase(orders, history, gormrepo.NewGormUoW(db), engine, ucApproval.WithMetrics(m))),
		Metrics:        m.Handler(),
		JWTSecret:      routerSecret,
		Redis:          rdb,
		IdempotencyTTL: time.Minute,
		Logger:         zerolog.Nop(),
	})

	tokens := map[workflow.Role]string{}
	for _, r := range []workflow.Role{workflow.RoleSubmitter, workflow.RoleEHS, workflow.RoleManager, workflow.RoleAdmin} {
		tok, err := middleware.SignToken(routerSecret, "u-"+strings.ToLower(r.String()), r, time.Hour)
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		tokens[r] = tok
	}
	return &apiClient{t: t, e: e, tokens: tokens}
}

// do sends body as role; writes get a fresh idempotency key unless key is given.
func (a *apiClient) do(role workflow.Role, method, path string, body any, key ...string) *httptest.ResponseRecorder {
	a.t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if role != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+a.tokens[role])
	}
	if method != stdhttp.MethodGet {
		k := uuid.NewString()
		if len(key) > 0 {
			k = key[0]
		}
		req.Header.Set(middleware.HeaderIdempotencyKey, k)
		req.Header.Set(middleware.HeaderRequestAt, time.Now().UTC().Format(time.RFC3339))
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func (a *apiClient) expect(rec *httptest.ResponseRecorder, code int, out any) {
	a.t.Helper()
	if rec.Code != code {
		a.t.Fatalf("status = %d, want %d; body=%s", rec.Code, code, rec.Body.String())
	}
	if out != nil {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			a.t.Fatalf("bad json: %v; raw=%s", err, rec.Body.String())
		}
	}
}

type woView struct {
	WorkOrderID     string  `json:"workOrderId"`
	Status          string  `json:"status"`
	ApprovalLevel   int     `json:"approvalLevel"`
	CurrentApprover *string `json:"currentApprover"`
	ApprovedBy      *string `json:"approvedBy"`
}

type resultView struct {
	WorkOrder woView `json:"workOrder"`
	Entry     struct {
		Action string `json:"action"`
		Level  int    `json:"level"`
	} `json:"historyEntry"`
}

func TestRouter_Lifecycle(t *testing.T) {
	api := newAPI(t)

	var c struct {
		ContractorID string `json:"contractorId"`
	}
	api.expect(api.do(workflow.RoleAdmin, stdhttp.MethodPost, "/api/v1/contractors", map[string]string{"name": "Acme Scaffolding"}), stdhttp.StatusCreated, &c)

	var wo woView
	api.expect(api.do(workflow.RoleSubmitter, stdhttp.MethodPost, "/api/v1/work-orders",
		map[string]string{"title": "Roof repair", "location": "Block C", "contractorId": c.ContractorID}), stdhttp.StatusCreated, &wo)
	if wo.Status != "DRAFT" {
		t.Fatalf("new work order status = %s", wo.Status)
	}
	base := "/api/v1/work-orders/" + wo.WorkOrderID

	var res resultView
	api.expect(api.do(workflow.RoleSubmitter, stdhttp.MethodPost, base+"/submit", nil), stdhttp.StatusOK, &res)

	// inbox for EHS now holds it
	var inbox []woView
	api.expect(api.do(workflow.RoleEHS, stdhttp.MethodGet, "/api/v1/work-orders?pendingFor=EHS", nil), stdhttp.StatusOK, &inbox)
	if len(inbox) != 1 || inbox[0].WorkOrderID != wo.WorkOrderID {
		t.Fatalf("EHS inbox = %+v", inbox)
	}

	api.expect(api.do(workflow.RoleEHS, stdhttp.MethodPost, base+"/decisions", map[string]any{"level": 1, "action": "APPROVE"}), stdhttp.StatusOK, &res)
	if res.WorkOrder.Status != "PENDING_MANAGER" {
		t.Fatalf("after EHS approve: %+v", res.WorkOrder)
	}

	// stale EHS replay with a new key
	api.expect(api.do(workflow.RoleEHS, stdhttp.MethodPost, base+"/decisions", map[string]any{"level": 1, "action": "APPROVE"}), stdhttp.StatusConflict, nil)

	api.expect(api.do(workflow.RoleManager, stdhttp.MethodPost, base+"/decisions", map[string]any{"level": 2, "action": "REJECT", "rejectTarget": "PREVIOUS_LEVEL", "comment": "check anchors"}), stdhttp.StatusOK, &res)
	if res.WorkOrder.Status != "PENDING_EHS" || res.Entry.Action != "REJECTED" {
		t.Fatalf("after manager reject-previous: %+v", res)
	}
	api.expect(api.do(workflow.RoleEHS, stdhttp.MethodPost, base+"/decisions", map[string]any{"level": 1, "action": "APPROVE"}), stdhttp.StatusOK, &res)
	api.expect(api.do(workflow.RoleManager, stdhttp.MethodPost, base+"/decisions", map[string]any{"level": 2, "action": "APPROVE"}), stdhttp.StatusOK, &res)
	if res.WorkOrder.Status != "APPROVED" || res.WorkOrder.CurrentApprover != nil {
		t.Fatalf("after final approve: %+v", res.WorkOrder)
	}

	var hist []struct {
		Action string `json:"action"`
	}
	api.expect(api.do(workflow.RoleSubmitter, stdhttp.MethodGet, base+"/history", nil), stdhttp.StatusOK, &hist)
	var actions []string
	for _, h := range hist {
		actions = append(actions, h.Action)
	}
	if got := strings.Join(actions, ","); got != "SUBMITTED,APPROVED,REJECTED,APPROVED,APPROVED" {
		t.Fatalf("history actions = %s", got)
	}

	scrape := httptest.NewRecorder()
	api.e.ServeHTTP(scrape, httptest.NewRequest(stdhttp.MethodGet, "/metrics", nil))
	if scrape.Code != stdhttp.StatusOK || !strings.Contains(scrape.Body.String(), "workorder_transitions_total") {
		t.Fatalf("metrics scrape = %d", scrape.Code)
	}
}

func TestRouter_IdempotentReplay(t *testing.T) {
	api := newAPI(t)
	body := map[string]string{"name": "Acme"}
	key := uuid.NewString()

	first := api.do(workflow.RoleAdmin, stdhttp.MethodPost, "/api/v1/contractors", body, key)
	second := api.do(workflow.RoleAdmin, stdhttp.MethodPost, "/api/v1/contractors", body, key)
	if first.Code != stdhttp.StatusCreated || second.Code != stdhttp.StatusCreated {
		t.Fatalf("codes = %d, %d", first.Code, second.Code)
	}
	if first.Body.String() != second.Body.String() {
		t.Fatalf("replay returned a different contractor")
	}

	var list []map[string]any
	api.expect(api.do(workflow.RoleAdmin, stdhttp.MethodGet, "/api/v1/contractors", nil), stdhttp.StatusOK, &list)
	if len(list) != 1 {
		t.Fatalf("replay created %d contractors", len(list))
	}
}

func TestRouter_AuthAndOpenRoutes(t *testing.T) {
	api := newAPI(t)

	api.expect(api.do("", stdhttp.MethodGet, "/api/v1/work-orders", nil), stdhttp.StatusUnauthorized, nil)
	api.expect(api.do("", stdhttp.MethodGet, "/health", nil), stdhttp.StatusOK, nil)

	// submitters cannot register contractors
	var er ErrorResponse
	api.expect(api.do(workflow.RoleSubmitter, stdhttp.MethodPost, "/api/v1/contractors", map[string]string{"name": "x"}), stdhttp.StatusForbidden, &er)
	if er.Kind != "Forbidden" {
		t.Fatalf("kind = %q", er.Kind)
	}

	api.expect(api.do(workflow.RoleSubmitter, stdhttp.MethodGet, "/api/v1/work-orders/ffffffffffffffffffffffffffffffff", nil), stdhttp.StatusNotFound, nil)
	api.expect(api.do(workflow.RoleSubmitter, stdhttp.MethodGet, "/api/v1/work-orders?pendingFor=Janitor", nil), stdhttp.StatusUnprocessableEntity, nil)

	rec := api.do(workflow.RoleSubmitter, stdhttp.MethodGet, "/api/v1/contractors", nil)
	if rec.Header().Get(echo.HeaderXRequestID) == "" {
		t.Fatalf("request id header missing")
	}
}

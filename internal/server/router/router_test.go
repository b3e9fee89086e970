package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atsdairy/dashboard/internal/domain/models"
	"github.com/atsdairy/dashboard/internal/export"
	"github.com/atsdairy/dashboard/internal/kvstore"
	"github.com/atsdairy/dashboard/internal/server/handlers"
	"github.com/atsdairy/dashboard/internal/session"
	buzzboxsvc "github.com/atsdairy/dashboard/internal/service/buzzbox"
	distributionsvc "github.com/atsdairy/dashboard/internal/service/distribution"
	insightssvc "github.com/atsdairy/dashboard/internal/service/insights"
	payflowsvc "github.com/atsdairy/dashboard/internal/service/payflow"
	"github.com/atsdairy/dashboard/internal/store"
)

// setupRouter wires the full engine against a throwaway data directory, the
// same way cmd/server does but without Mongo, Sheets or a webhook.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	ctx := context.Background()

	kv, err := kvstore.NewFileStore(t.TempDir(), nil)
	require.NoError(t, err)
	exportSvc := export.NewService(nil, nil)

	farmers := store.New[models.Farmer](models.Farmer.Validate,
		store.WithIDAssign[models.Farmer](func(f *models.Farmer, id int) { f.SetID(id) }))
	milk := store.New[models.MilkEntry](models.MilkEntry.Validate,
		store.WithIDAssign[models.MilkEntry](func(m *models.MilkEntry, id int) { m.SetID(id) }))
	routes := store.New[models.Route](models.Route.Validate)
	units := store.New[models.UnitBatch](models.UnitBatch.Validate)
	sales := store.New[models.Sale](models.Sale.Validate,
		store.WithIDAssign[models.Sale](func(s *models.Sale, id int) { s.SetID(id) }))
	inventory := store.New[models.InventoryItem](models.InventoryItem.Validate,
		store.WithIDAssign[models.InventoryItem](func(i *models.InventoryItem, id int) { i.SetID(id) }))
	team := store.New[models.TeamMember](models.TeamMember.Validate)
	payments := store.New[models.Payment](models.Payment.Validate)
	messages := store.New[models.Message](models.Message.Validate,
		store.WithIDAssign[models.Message](func(m *models.Message, id int) { m.SetID(id) }))
	quality := store.New[models.QualityTest](models.QualityTest.Validate)

	sessionSvc, err := session.NewService(ctx, kv, nil)
	require.NoError(t, err)
	distributionSvc, err := distributionsvc.NewService(ctx, routes, kv, nil)
	require.NoError(t, err)
	payflowSvc := payflowsvc.NewService(payments, kv, nil)
	buzzboxSvc := buzzboxsvc.NewService(messages, nil, nil)
	sessionSvc.OnLogout(buzzboxSvc.Clear)
	insightsSvc := insightssvc.NewService(farmers, milk, sales, inventory, payments, quality, nil, nil)

	routeResource := handlers.NewResource("distribution-network", routes, models.RouteCSVHeader, models.Route.CSVRow, handlers.RouteStats, exportSvc, nil)
	paymentResource := handlers.NewResource("payflow", payments, models.PaymentCSVHeader, models.Payment.CSVRow, handlers.PaymentStats, exportSvc, nil)
	messageResource := handlers.NewResource("buzzbox", messages, models.MessageCSVHeader, models.Message.CSVRow, handlers.MessageStats, exportSvc, nil)

	return New(Handlers{
		Auth:         handlers.NewAuthHandler(sessionSvc, nil),
		Insights:     handlers.NewInsightsHandler(insightsSvc, nil),
		Prefs:        handlers.NewPrefsHandler(kv, nil),
		Farmers:      handlers.NewResource("farmers-portal", farmers, models.FarmerCSVHeader, models.Farmer.CSVRow, handlers.FarmerStats, exportSvc, nil),
		Milk:         handlers.NewResource("milking-zone", milk, models.MilkEntryCSVHeader, models.MilkEntry.CSVRow, handlers.MilkStats, exportSvc, nil),
		Distribution: handlers.NewDistributionHandler(routeResource, distributionSvc, nil),
		Units:        handlers.NewResource("unit-tracker", units, models.UnitBatchCSVHeader, models.UnitBatch.CSVRow, handlers.UnitStats, exportSvc, nil),
		Sales:        handlers.NewResource("sales-grid", sales, models.SaleCSVHeader, models.Sale.CSVRow, handlers.SaleStats, exportSvc, nil),
		Inventory:    handlers.NewResource("stock-control", inventory, models.InventoryCSVHeader, models.InventoryItem.CSVRow, handlers.InventoryStats, exportSvc, nil),
		Team:         handlers.NewResource("team-management", team, models.TeamMemberCSVHeader, models.TeamMember.CSVRow, handlers.TeamStats, exportSvc, nil),
		Payflow:      handlers.NewPayflowHandler(paymentResource, payflowSvc, nil),
		Buzzbox:      handlers.NewBuzzboxHandler(messageResource, buzzboxSvc, nil),
		Quality:      handlers.NewResource("qa-module", quality, models.QualityTestCSVHeader, models.QualityTest.CSVRow, handlers.QualityStats, exportSvc, nil),
	}, nil)
}

func do(t *testing.T, engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealthz(t *testing.T) {
	engine := setupRouter(t)
	w := do(t, engine, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMilkEntryAddAndStats(t *testing.T) {
	engine := setupRouter(t)

	w := do(t, engine, http.MethodPost, "/milking-zone",
		`{"farmerId":"FARM009","date":"2024-06-12","quantity":"40","shift":"Morning"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	list := decode(t, do(t, engine, http.MethodGet, "/milking-zone", ""))
	assert.Equal(t, float64(1), list["count"])

	stats := decode(t, do(t, engine, http.MethodGet, "/milking-zone/stats", ""))
	assert.Equal(t, float64(40), stats["totalLiters"])
}

func TestMilkEntryLowercaseFarmerIDRejected(t *testing.T) {
	engine := setupRouter(t)

	w := do(t, engine, http.MethodPost, "/milking-zone",
		`{"farmerId":"farm009","date":"2024-06-12","quantity":"40","shift":"Morning"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	body := decode(t, w)
	errs, ok := body["errors"].(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, errs["farmerId"])

	list := decode(t, do(t, engine, http.MethodGet, "/milking-zone", ""))
	assert.Equal(t, float64(0), list["count"], "rejected draft must not grow the list")
}

func TestEditFlowOverHTTP(t *testing.T) {
	engine := setupRouter(t)

	w := do(t, engine, http.MethodPost, "/farmers-portal",
		`{"farmerId":"FARM001","name":"Ravi","location":"Pune","email":"ravi@gmail.com","cattleCount":"12","joinDate":"2023-01-15"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, engine, http.MethodPost, "/farmers-portal/0/edit", "")
	require.Equal(t, http.StatusOK, w.Code)

	// Saving a draft with a bad email keeps the stored row intact.
	w = do(t, engine, http.MethodPut, "/farmers-portal/0",
		`{"farmerId":"FARM001","name":"Ravi","location":"Pune","email":"ravi@yahoo.com","cattleCount":"12","joinDate":"2023-01-15"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, engine, http.MethodPut, "/farmers-portal/0",
		`{"farmerId":"FARM001","name":"Ravi","location":"Nashik","email":"ravi@gmail.com","cattleCount":"14","joinDate":"2023-01-15"}`)
	require.Equal(t, http.StatusOK, w.Code)

	list := decode(t, do(t, engine, http.MethodGet, "/farmers-portal", ""))
	assert.Equal(t, float64(1), list["count"], "saveEdit never changes list length")

	w = do(t, engine, http.MethodPost, "/farmers-portal/edit/cancel", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestDeleteFlowOverHTTP(t *testing.T) {
	engine := setupRouter(t)

	w := do(t, engine, http.MethodPost, "/qa-module",
		`{"batchNumber":"BTCH001","date":"2024-06-12","ph":"6.7","fat":"4.2","snf":"8.6","moisture":"87","lacometer":"28","result":"Pass"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, engine, http.MethodDelete, "/qa-module/0", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decode(t, w)["count"])

	w = do(t, engine, http.MethodDelete, "/qa-module/0", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCSVExport(t *testing.T) {
	engine := setupRouter(t)

	do(t, engine, http.MethodPost, "/milking-zone",
		`{"farmerId":"FARM009","date":"2024-06-12","quantity":"40","shift":"Morning"}`)

	w := do(t, engine, http.MethodGet, "/milking-zone/export", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))

	lines := strings.Split(w.Body.String(), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `"Farmer ID","Date","Quantity","Shift"`, lines[0])
	assert.Equal(t, `"FARM009","2024-06-12","40","Morning"`, lines[1])
}

func TestSheetsExportNotConfigured(t *testing.T) {
	engine := setupRouter(t)
	w := do(t, engine, http.MethodPost, "/milking-zone/export/sheets", "")
	assert.Equal(t, http.StatusNotImplemented, w.Code)
}

func TestAuthFlow(t *testing.T) {
	engine := setupRouter(t)

	w := do(t, engine, http.MethodPost, "/auth/login", `{"email":"a@b.com","password":"short"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	state := decode(t, do(t, engine, http.MethodGet, "/auth/session", ""))
	assert.Equal(t, false, state["authenticated"])

	w = do(t, engine, http.MethodPost, "/auth/login", `{"email":"a@b.com","password":"longenough"}`)
	require.Equal(t, http.StatusOK, w.Code)

	state = decode(t, do(t, engine, http.MethodGet, "/auth/session", ""))
	assert.Equal(t, true, state["authenticated"])

	w = do(t, engine, http.MethodPost, "/auth/logout", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	state = decode(t, do(t, engine, http.MethodGet, "/auth/session", ""))
	assert.Equal(t, false, state["authenticated"])
}

func TestLogoutClearsBuzzbox(t *testing.T) {
	engine := setupRouter(t)

	w := do(t, engine, http.MethodPost, "/buzzbox",
		`{"sender":"Asha","subject":"Cold chain","body":"Cooler warm on route three","date":"2024-06-12","priority":"High"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	do(t, engine, http.MethodPost, "/auth/login", `{"email":"a@b.com","password":"longenough"}`)
	do(t, engine, http.MethodPost, "/auth/logout", "")

	list := decode(t, do(t, engine, http.MethodGet, "/buzzbox", ""))
	assert.Equal(t, float64(0), list["count"], "board messages are session-scoped")
}

func TestDistributionTallies(t *testing.T) {
	engine := setupRouter(t)

	w := do(t, engine, http.MethodPost, "/distribution-network",
		`{"routeId":"ZONE001","zone":"North","driver":"Prakash","day":"Tuesday","status":"Active"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	tallies := decode(t, do(t, engine, http.MethodGet, "/distribution-network/tallies", ""))
	byDay, ok := tallies["byDay"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), byDay["Tuesday"])
	assert.Equal(t, float64(0), byDay["Monday"], "zero counts stay visible")

	w = do(t, engine, http.MethodDelete, "/distribution-network/0?reason=Weather", "")
	require.Equal(t, http.StatusOK, w.Code)

	tallies = decode(t, do(t, engine, http.MethodGet, "/distribution-network/tallies", ""))
	byReason, ok := tallies["byReason"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), byReason["Weather"])
}

func TestPayflowDraftEndpoints(t *testing.T) {
	engine := setupRouter(t)

	w := do(t, engine, http.MethodPut, "/payflow/draft", `{"transactionId":"TXNS0","amount":"25"}`)
	require.Equal(t, http.StatusNoContent, w.Code)

	draft := decode(t, do(t, engine, http.MethodGet, "/payflow/draft", ""))
	assert.Equal(t, "TXNS0", draft["transactionId"])

	w = do(t, engine, http.MethodPost, "/payflow",
		`{"transactionId":"TXNS001","date":"2024-06-12","amount":"2500","method":"UPI","status":"Completed"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	draft = decode(t, do(t, engine, http.MethodGet, "/payflow/draft", ""))
	assert.Equal(t, "", draft["transactionId"], "submitting retires the draft")
}

func TestSettingsDefaults(t *testing.T) {
	engine := setupRouter(t)

	settings := decode(t, do(t, engine, http.MethodGet, "/settings", ""))
	assert.Equal(t, "light", settings["theme"])

	w := do(t, engine, http.MethodPut, "/settings", `{"theme":"dark","notifications":false,"language":"en"}`)
	require.Equal(t, http.StatusNoContent, w.Code)

	settings = decode(t, do(t, engine, http.MethodGet, "/settings", ""))
	assert.Equal(t, "dark", settings["theme"])
}

func TestDashboardOverview(t *testing.T) {
	engine := setupRouter(t)

	do(t, engine, http.MethodPost, "/milking-zone",
		`{"farmerId":"FARM009","date":"2024-06-12","quantity":"40","shift":"Morning"}`)

	overview := decode(t, do(t, engine, http.MethodGet, "/dashboard", ""))
	assert.Equal(t, float64(40), overview["milkIntakeLiters"])

	insights := decode(t, do(t, engine, http.MethodGet, "/insights-center", ""))
	assert.Equal(t, overview["milkIntakeLiters"], insights["milkIntakeLiters"])
}

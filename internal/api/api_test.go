package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"pharmatrack/p/internal/domain"
	"pharmatrack/p/internal/inventory"
	"pharmatrack/p/internal/migrations"
	"pharmatrack/p/internal/reports"
	"pharmatrack/p/internal/sales"
	"pharmatrack/p/internal/store"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	db, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, migrations.Run(db))

	medicines := store.NewMedicineStore(db)
	customers := store.NewCustomerStore(db)
	suppliers := store.NewSupplierStore(db)
	saleStore := store.NewSaleStore(db)
	ledger := inventory.NewLedger(medicines)
	processor := sales.NewProcessor(ledger, saleStore)
	reportSvc := reports.NewService(medicines, saleStore)

	h := New(zap.NewNop(), medicines, customers, suppliers, saleStore, processor, reportSvc)
	return h.Router()
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func medicinePayload(name string, stock, minLevel int64) map[string]any {
	return map[string]any{
		"name":            name,
		"generic_name":    "Acetaminophen",
		"manufacturer":    "Acme Pharma",
		"category":        "Pain Relief",
		"dosage":          "500mg",
		"form":            "tablet",
		"batch_number":    "B-100",
		"expiry_date":     "2030-01-01",
		"purchase_price":  5.5,
		"selling_price":   10.0,
		"stock_quantity":  stock,
		"min_stock_level": minLevel,
	}
}

func createMedicine(t *testing.T, router http.Handler, name string, stock, minLevel int64) domain.Medicine {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/medicines", medicinePayload(name, stock, minLevel))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decodeBody[domain.Medicine](t, rec)
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestMedicineCRUDLifecycle(t *testing.T) {
	router := newTestRouter(t)

	created := createMedicine(t, router, "Paracetamol", 100, 20)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, int64(100), created.StockQuantity)

	rec := doJSON(t, router, http.MethodGet, "/api/medicines/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[domain.Medicine](t, rec)
	assert.Equal(t, created.ID, got.ID)

	rec = doJSON(t, router, http.MethodGet, "/api/medicines", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeBody[[]domain.Medicine](t, rec)
	require.Len(t, list, 1)

	rec = doJSON(t, router, http.MethodPut, "/api/medicines/"+created.ID, map[string]any{
		"name":           "Paracetamol Extra",
		"stock_quantity": 60,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decodeBody[domain.Medicine](t, rec)
	assert.Equal(t, "Paracetamol Extra", updated.Name)
	assert.Equal(t, int64(60), updated.StockQuantity)
	assert.Equal(t, created.GenericName, updated.GenericName)

	rec = doJSON(t, router, http.MethodDelete, "/api/medicines/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	msg := decodeBody[map[string]string](t, rec)
	assert.Equal(t, "Medicine deleted successfully", msg["message"])

	// Second delete and subsequent get both 404.
	rec = doJSON(t, router, http.MethodDelete, "/api/medicines/"+created.ID, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	rec = doJSON(t, router, http.MethodGet, "/api/medicines/"+created.ID, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMedicineCreateValidation(t *testing.T) {
	router := newTestRouter(t)

	payload := medicinePayload("Bad", 10, 2)
	payload["expiry_date"] = "tomorrow-ish"
	rec := doJSON(t, router, http.MethodPost, "/api/medicines", payload)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	payload = medicinePayload("Bad", -1, 2)
	rec = doJSON(t, router, http.MethodPost, "/api/medicines", payload)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSaleProcessingEndToEnd(t *testing.T) {
	router := newTestRouter(t)
	medicine := createMedicine(t, router, "Paracetamol", 100, 20)

	rec := doJSON(t, router, http.MethodPost, "/api/sales", map[string]any{
		"items": []map[string]any{{
			"medicine_id":   medicine.ID,
			"medicine_name": medicine.Name,
			"quantity":      5,
			"unit_price":    10.0,
			"total_price":   50.0,
		}},
		"subtotal":         50.0,
		"discount_percent": 5,
		"tax_percent":      10,
		"payment_method":   "cash",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	sale := decodeBody[domain.Sale](t, rec)

	assert.InDelta(t, 2.5, sale.DiscountAmount, 1e-9)
	assert.InDelta(t, 4.75, sale.TaxAmount, 1e-9)
	assert.InDelta(t, 52.25, sale.TotalAmount, 1e-9)
	assert.NotEmpty(t, sale.ID)
	require.Len(t, sale.Items, 1)

	// Stock is decremented through the ledger.
	rec = doJSON(t, router, http.MethodGet, "/api/medicines/"+medicine.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[domain.Medicine](t, rec)
	assert.Equal(t, int64(95), got.StockQuantity)

	// The sale shows up in the list and today views.
	rec = doJSON(t, router, http.MethodGet, "/api/sales", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	all := decodeBody[[]domain.Sale](t, rec)
	require.Len(t, all, 1)
	assert.Equal(t, sale.ID, all[0].ID)

	rec = doJSON(t, router, http.MethodGet, "/api/sales/today", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	today := decodeBody[[]domain.Sale](t, rec)
	require.Len(t, today, 1)
	assert.Equal(t, sale.ID, today[0].ID)
}

func TestSaleUnknownMedicine(t *testing.T) {
	router := newTestRouter(t)
	medicine := createMedicine(t, router, "Paracetamol", 100, 20)

	rec := doJSON(t, router, http.MethodPost, "/api/sales", map[string]any{
		"items": []map[string]any{
			{
				"medicine_id":   medicine.ID,
				"medicine_name": medicine.Name,
				"quantity":      2,
				"unit_price":    10.0,
				"total_price":   20.0,
			},
			{
				"medicine_id":   "no-such-id",
				"medicine_name": "Ghost Pill",
				"quantity":      1,
				"unit_price":    5.0,
				"total_price":   5.0,
			},
		},
		"subtotal": 25.0,
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody[map[string]string](t, rec)
	assert.Equal(t, "Medicine Ghost Pill not found", body["error"])

	// No sale record was created.
	rec = doJSON(t, router, http.MethodGet, "/api/sales", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody[[]domain.Sale](t, rec))

	// The first item's decrement is not rolled back.
	rec = doJSON(t, router, http.MethodGet, "/api/medicines/"+medicine.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[domain.Medicine](t, rec)
	assert.Equal(t, int64(98), got.StockQuantity)
}

func TestSaleValidationRejected(t *testing.T) {
	router := newTestRouter(t)
	medicine := createMedicine(t, router, "Paracetamol", 100, 20)

	rec := doJSON(t, router, http.MethodPost, "/api/sales", map[string]any{
		"items":    []map[string]any{},
		"subtotal": 0,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/sales", map[string]any{
		"items": []map[string]any{{
			"medicine_id":   medicine.ID,
			"medicine_name": medicine.Name,
			"quantity":      0,
			"unit_price":    10.0,
			"total_price":   0.0,
		}},
		"subtotal": 0,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Stock untouched.
	rec = doJSON(t, router, http.MethodGet, "/api/medicines/"+medicine.ID, nil)
	got := decodeBody[domain.Medicine](t, rec)
	assert.Equal(t, int64(100), got.StockQuantity)
}

func TestCustomerAndSupplierEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/customers", map[string]any{
		"name":  "Jamal",
		"phone": "0123456789",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	customer := decodeBody[domain.Customer](t, rec)
	assert.NotEmpty(t, customer.ID)

	rec = doJSON(t, router, http.MethodGet, "/api/customers", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decodeBody[[]domain.Customer](t, rec), 1)

	rec = doJSON(t, router, http.MethodPost, "/api/suppliers", map[string]any{
		"name":           "MediSupply",
		"contact_person": "Rahim",
		"phone":          "018",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, "/api/suppliers", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decodeBody[[]domain.Supplier](t, rec), 1)

	// Missing required fields are rejected.
	rec = doJSON(t, router, http.MethodPost, "/api/customers", map[string]any{"name": "NoPhone"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLowStockAndExpiredViews(t *testing.T) {
	router := newTestRouter(t)

	low := createMedicine(t, router, "Low", 5, 20)
	createMedicine(t, router, "Healthy", 100, 20)

	expiredPayload := medicinePayload("Old", 50, 10)
	expiredPayload["expiry_date"] = "2020-01-01"
	rec := doJSON(t, router, http.MethodPost, "/api/medicines", expiredPayload)
	require.Equal(t, http.StatusOK, rec.Code)
	expired := decodeBody[domain.Medicine](t, rec)

	rec = doJSON(t, router, http.MethodGet, "/api/medicines/low-stock", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	lowStock := decodeBody[[]domain.Medicine](t, rec)
	require.Len(t, lowStock, 1)
	assert.Equal(t, low.ID, lowStock[0].ID)

	rec = doJSON(t, router, http.MethodGet, "/api/medicines/expired", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	expiredList := decodeBody[[]domain.Medicine](t, rec)
	require.Len(t, expiredList, 1)
	assert.Equal(t, expired.ID, expiredList[0].ID)

	rec = doJSON(t, router, http.MethodGet, "/api/medicines/expiring?days=36500", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	expiring := decodeBody[[]domain.Medicine](t, rec)
	assert.Len(t, expiring, 3)
}

func TestDashboardStats(t *testing.T) {
	router := newTestRouter(t)

	medicine := createMedicine(t, router, "Paracetamol", 100, 20)
	createMedicine(t, router, "Low", 5, 20)

	rec := doJSON(t, router, http.MethodPost, "/api/sales", map[string]any{
		"items": []map[string]any{{
			"medicine_id":   medicine.ID,
			"medicine_name": medicine.Name,
			"quantity":      5,
			"unit_price":    10.0,
			"total_price":   50.0,
		}},
		"subtotal":         50.0,
		"discount_percent": 5,
		"tax_percent":      10,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, "/api/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decodeBody[map[string]float64](t, rec)

	assert.Equal(t, float64(2), stats["total_medicines"])
	assert.Equal(t, float64(1), stats["low_stock_count"])
	assert.Equal(t, float64(1), stats["today_sales_count"])
	assert.InDelta(t, 52.25, stats["today_revenue"], 1e-9)
	assert.Equal(t, float64(0), stats["expired_medicines_count"])
}

func TestSearchEndpoint(t *testing.T) {
	router := newTestRouter(t)

	payload := medicinePayload("Napa", 10, 2)
	payload["generic_name"] = "Paracetamol"
	payload["manufacturer"] = "Beximco"
	payload["category"] = "Analgesic"
	rec := doJSON(t, router, http.MethodPost, "/api/medicines", payload)
	require.Equal(t, http.StatusOK, rec.Code)

	for _, term := range []string{"napa", "PARACET", "beximco", "analg"} {
		rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/search/medicines?q=%s", term), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, decodeBody[[]domain.Medicine](t, rec), 1, "term %q should match", term)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/search/medicines?q=absent", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody[[]domain.Medicine](t, rec))

	rec = doJSON(t, router, http.MethodGet, "/api/search/medicines", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stockline/inventory-engine/api"
	"github.com/stockline/inventory-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestRouter(t *testing.T) http.Handler {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	h := api.NewHandler(store, zap.NewNop())
	return api.NewRouter(h, []string{"*"})
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func createItemViaAPI(t *testing.T, router http.Handler, name string, qty int64, price string) int64 {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/inventory", map[string]any{
		"item_name":  name,
		"quantity":   qty,
		"unit_price": price,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created map[string]any
	decodeBody(t, rec, &created)
	return int64(created["item_id"].(float64))
}

// =============================================================================
// INVENTORY ENDPOINTS
// =============================================================================

func TestAPI_Inventory_CreateAndGet(t *testing.T) {
	router := newTestRouter(t)

	id := createItemViaAPI(t, router, "Widget", 5, "10")

	rec := doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/inventory/%d", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var item map[string]any
	decodeBody(t, rec, &item)
	assert.Equal(t, "Widget", item["item_name"])
	assert.Equal(t, float64(5), item["quantity"])
	assert.Equal(t, "10", item["unit_price"], "decimals serialize as strings")
	assert.Equal(t, float64(10), item["reorder_level"], "default applies")
}

func TestAPI_Inventory_Create_MissingName_400(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/inventory", map[string]any{
		"unit_price": "10",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]any
	decodeBody(t, rec, &resp)
	assert.NotEmpty(t, resp["error"])
}

func TestAPI_Inventory_Get_Missing_404(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/inventory/42", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_Inventory_Get_BadID_400(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/inventory/banana", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPI_Inventory_Update_IgnoresQuantity(t *testing.T) {
	// A quantity field in the update body has no effect; stock only
	// moves through sales and supply orders.
	router := newTestRouter(t)
	id := createItemViaAPI(t, router, "Widget", 5, "10")

	rec := doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/inventory/%d", id), map[string]any{
		"item_name":  "Widget Pro",
		"unit_price": "12",
		"quantity":   999,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var item map[string]any
	decodeBody(t, rec, &item)
	assert.Equal(t, "Widget Pro", item["item_name"])
	assert.Equal(t, float64(5), item["quantity"])
}

func TestAPI_Inventory_LowStock(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/inventory", map[string]any{
		"item_name":     "Scarce",
		"quantity":      1,
		"unit_price":    "10",
		"reorder_level": 5,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/inventory/low-stock", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []map[string]any
	decodeBody(t, rec, &rows)
	require.Len(t, rows, 1)
	assert.Equal(t, "Scarce", rows[0]["item_name"])
}

// =============================================================================
// CLIENT / VENDOR ENDPOINTS
// =============================================================================

func TestAPI_Clients_CRUD(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/clients", map[string]any{
		"client_name": "Acme",
		"email":       "orders@acme.test",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var client map[string]any
	decodeBody(t, rec, &client)
	id := int64(client["client_id"].(float64))

	rec = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/clients/%d", id), map[string]any{
		"client_name": "Acme Corp",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/clients", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var clients []map[string]any
	decodeBody(t, rec, &clients)
	require.Len(t, clients, 1)
	assert.Equal(t, "Acme Corp", clients[0]["client_name"])

	rec = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/clients/%d", id), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPI_Vendors_Create_MissingName_400(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/vendors", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// =============================================================================
// SALES ENDPOINTS
// =============================================================================

func TestAPI_Sales_RecordAndList(t *testing.T) {
	router := newTestRouter(t)
	itemID := createItemViaAPI(t, router, "Widget", 5, "10")

	rec := doJSON(t, router, http.MethodPost, "/api/sales", map[string]any{
		"items": []map[string]any{
			{"item_id": itemID, "quantity": 3, "unit_price": "10"},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var sale map[string]any
	decodeBody(t, rec, &sale)
	assert.Nil(t, sale["client_id"], "walk-in sale")
	items := sale["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "30", items[0].(map[string]any)["subtotal"])

	// Stock moved.
	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/inventory/%d", itemID), nil)
	var item map[string]any
	decodeBody(t, rec, &item)
	assert.Equal(t, float64(2), item["quantity"])

	rec = doJSON(t, router, http.MethodGet, "/api/sales", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var summaries []map[string]any
	decodeBody(t, rec, &summaries)
	assert.Len(t, summaries, 1)
}

func TestAPI_Sales_InsufficientStock_400(t *testing.T) {
	router := newTestRouter(t)
	itemID := createItemViaAPI(t, router, "Widget", 2, "10")

	rec := doJSON(t, router, http.MethodPost, "/api/sales", map[string]any{
		"items": []map[string]any{
			{"item_id": itemID, "quantity": 3, "unit_price": "10"},
		},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]any
	decodeBody(t, rec, &resp)
	assert.Equal(t, "Insufficient stock for one or more items", resp["error"])

	// No partial write.
	rec = doJSON(t, router, http.MethodGet, "/api/sales", nil)
	var summaries []map[string]any
	decodeBody(t, rec, &summaries)
	assert.Empty(t, summaries)
}

func TestAPI_Sales_EmptyItems_400(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/sales", map[string]any{
		"items": []map[string]any{},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPI_Sales_Delete_DoesNotRestock(t *testing.T) {
	router := newTestRouter(t)
	itemID := createItemViaAPI(t, router, "Widget", 5, "10")

	rec := doJSON(t, router, http.MethodPost, "/api/sales", map[string]any{
		"items": []map[string]any{
			{"item_id": itemID, "quantity": 3, "unit_price": "10"},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var sale map[string]any
	decodeBody(t, rec, &sale)
	saleID := int64(sale["sale_id"].(float64))

	rec = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/sales/%d", saleID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/inventory/%d", itemID), nil)
	var item map[string]any
	decodeBody(t, rec, &item)
	assert.Equal(t, float64(2), item["quantity"], "deletion must not restock")
}

// =============================================================================
// SUPPLY ENDPOINTS
// =============================================================================

func TestAPI_Supply_RecordIncrementsStock(t *testing.T) {
	router := newTestRouter(t)
	itemID := createItemViaAPI(t, router, "Widget", 2, "10")

	rec := doJSON(t, router, http.MethodPost, "/api/supply", map[string]any{
		"items": []map[string]any{
			{"item_id": itemID, "quantity": 10, "cost_price": "4"},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/inventory/%d", itemID), nil)
	var item map[string]any
	decodeBody(t, rec, &item)
	assert.Equal(t, float64(12), item["quantity"])
}

// =============================================================================
// REPORT ENDPOINTS
// =============================================================================

func TestAPI_Reports_Dashboard(t *testing.T) {
	router := newTestRouter(t)
	itemID := createItemViaAPI(t, router, "Widget", 5, "10")

	rec := doJSON(t, router, http.MethodPost, "/api/sales", map[string]any{
		"items": []map[string]any{
			{"item_id": itemID, "quantity": 3, "unit_price": "10"},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/supply", map[string]any{
		"items": []map[string]any{
			{"item_id": itemID, "quantity": 10, "cost_price": "4"},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/reports/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var dash struct {
		Inventory struct {
			TotalItems    int64  `json:"total_items"`
			TotalValue    string `json:"total_value"`
			LowStockCount int64  `json:"low_stock_count"`
		} `json:"inventory"`
		Transactions struct {
			SalesRevenue string `json:"sales_revenue"`
			SupplyCost   string `json:"supply_cost"`
			GrossMargin  string `json:"gross_margin"`
			SalesCount   int64  `json:"sales_count"`
			SupplyCount  int64  `json:"supply_count"`
		} `json:"transactions"`
	}
	decodeBody(t, rec, &dash)

	assert.Equal(t, int64(12), dash.Inventory.TotalItems)
	assert.Equal(t, "30", dash.Transactions.SalesRevenue)
	assert.Equal(t, "40", dash.Transactions.SupplyCost)
	assert.Equal(t, "-10", dash.Transactions.GrossMargin)
	assert.Equal(t, int64(1), dash.Transactions.SalesCount)
	assert.Equal(t, int64(1), dash.Transactions.SupplyCount)
}

// =============================================================================
// EXPORT / HEALTH ENDPOINTS
// =============================================================================

func TestAPI_Export_XLSX(t *testing.T) {
	router := newTestRouter(t)
	createItemViaAPI(t, router, "Widget", 5, "10")

	rec := doJSON(t, router, http.MethodGet, "/api/export/xlsx", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.NotZero(t, rec.Body.Len())
}

func TestAPI_Health(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	decodeBody(t, rec, &resp)
	assert.Equal(t, "ok", resp["status"])
}

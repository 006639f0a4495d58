/*
handlers.go - HTTP API handlers for the inventory engine

PURPOSE:
  Exposes the inventory ledger via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Inventory:
    GET    /api/inventory              List all items
    POST   /api/inventory              Create item
    GET    /api/inventory/low-stock    List items at/below reorder level
    GET    /api/inventory/{id}         Get item
    PUT    /api/inventory/{id}         Update item (never quantity)
    DELETE /api/inventory/{id}         Delete item

  Clients:
    GET/POST       /api/clients
    GET/PUT/DELETE /api/clients/{id}

  Vendors:
    GET/POST       /api/vendors
    GET/PUT/DELETE /api/vendors/{id}

  Sales:
    GET    /api/sales                  Sales summary listing
    POST   /api/sales                  Record sale (decrements stock)
    GET    /api/sales/details          Per-line sales listing
    GET    /api/sales/{id}             Get sale with line items
    DELETE /api/sales/{id}             Delete sale (stock NOT restored)

  Supply:
    GET    /api/supply                 Supply order summary listing
    POST   /api/supply                 Record supply order (increments stock)
    GET    /api/supply/details         Per-line supply listing
    GET    /api/supply/{id}            Get supply order with line items
    DELETE /api/supply/{id}            Delete order (stock NOT reversed)

  Reports:
    GET    /api/reports/inventory      Stock valuation summary
    GET    /api/reports/transactions   Revenue/cost/margin summary
    GET    /api/reports/dashboard      Both summaries combined

  Export:
    GET    /api/export/xlsx            Full-database XLSX workbook

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Store: Database access (repositories, views, reports, snapshot)
  - Ledger: Transactional sale/supply recording
  - Log: Structured logger

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, insufficient stock
  - 404: Resource not found
  - 409: Conflict (referenced by transaction history)
  - 500: Internal errors

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/stockline/inventory-engine/export"
	"github.com/stockline/inventory-engine/inventory"
	"github.com/stockline/inventory-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store  *sqlite.Store
	Ledger *inventory.Ledger
	Log    *zap.Logger
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		Store:  store,
		Ledger: inventory.NewLedger(store),
		Log:    log,
	}
}

// =============================================================================
// INVENTORY HANDLERS
// =============================================================================

// ListItems handles GET /api/inventory
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.Store.ListItems(r.Context())
	if err != nil {
		h.serverError(w, "Failed to list items", err)
		return
	}

	dtos := make([]ItemDTO, len(items))
	for i, it := range items {
		dtos[i] = itemDTO(it)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetItem handles GET /api/inventory/{id}
func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	item, err := h.Store.GetItem(r.Context(), id)
	if err != nil {
		h.serverError(w, "Failed to get item", err)
		return
	}
	if item == nil {
		writeError(w, http.StatusNotFound, "Item not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, itemDTO(*item))
}

// CreateItem handles POST /api/inventory
func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	item, err := h.Store.CreateItem(r.Context(), inventory.NewItem{
		Name:         req.ItemName,
		Description:  req.Description,
		Quantity:     req.Quantity,
		UnitPrice:    req.UnitPrice,
		ReorderLevel: req.ReorderLevel,
		Notes:        req.Notes,
	})
	if err != nil {
		h.domainError(w, "Failed to create item", err)
		return
	}
	writeJSON(w, http.StatusCreated, itemDTO(*item))
}

// UpdateItem handles PUT /api/inventory/{id}
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	item, err := h.Store.UpdateItem(r.Context(), id, inventory.UpdateItem{
		Name:         req.ItemName,
		Description:  req.Description,
		UnitPrice:    req.UnitPrice,
		ReorderLevel: req.ReorderLevel,
		Notes:        req.Notes,
	})
	if err != nil {
		h.domainError(w, "Failed to update item", err)
		return
	}
	writeJSON(w, http.StatusOK, itemDTO(*item))
}

// DeleteItem handles DELETE /api/inventory/{id}
func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.Store.DeleteItem(r.Context(), id); err != nil {
		if errors.Is(err, inventory.ErrReferentialConflict) {
			writeError(w, http.StatusConflict,
				"Item is referenced by sales or supply orders", err)
			return
		}
		h.serverError(w, "Failed to delete item", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true, "item_id": id})
}

// ListLowStock handles GET /api/inventory/low-stock
func (h *Handler) ListLowStock(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Store.LowStockItems(r.Context())
	if err != nil {
		h.serverError(w, "Failed to list low-stock items", err)
		return
	}

	dtos := make([]LowStockItemDTO, len(rows))
	for i, row := range rows {
		dtos[i] = LowStockItemDTO{
			ItemID:       row.ItemID,
			ItemName:     row.Name,
			Quantity:     row.Quantity,
			ReorderLevel: row.ReorderLevel,
			Notes:        row.Notes,
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// CLIENT HANDLERS
// =============================================================================

// ListClients handles GET /api/clients
func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.Store.ListClients(r.Context())
	if err != nil {
		h.serverError(w, "Failed to list clients", err)
		return
	}

	dtos := make([]ClientDTO, len(clients))
	for i, c := range clients {
		dtos[i] = clientDTO(c)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetClient handles GET /api/clients/{id}
func (h *Handler) GetClient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	client, err := h.Store.GetClient(r.Context(), id)
	if err != nil {
		h.serverError(w, "Failed to get client", err)
		return
	}
	if client == nil {
		writeError(w, http.StatusNotFound, "Client not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, clientDTO(*client))
}

// CreateClient handles POST /api/clients
func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req ClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	client, err := h.Store.CreateClient(r.Context(), inventory.NewClient{
		Name:    req.ClientName,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
	})
	if err != nil {
		h.domainError(w, "Failed to create client", err)
		return
	}
	writeJSON(w, http.StatusCreated, clientDTO(*client))
}

// UpdateClient handles PUT /api/clients/{id}
func (h *Handler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req ClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	client, err := h.Store.UpdateClient(r.Context(), id, inventory.NewClient{
		Name:    req.ClientName,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
	})
	if err != nil {
		h.domainError(w, "Failed to update client", err)
		return
	}
	writeJSON(w, http.StatusOK, clientDTO(*client))
}

// DeleteClient handles DELETE /api/clients/{id}
func (h *Handler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.Store.DeleteClient(r.Context(), id); err != nil {
		if errors.Is(err, inventory.ErrReferentialConflict) {
			writeError(w, http.StatusConflict, "Client has recorded sales", err)
			return
		}
		h.serverError(w, "Failed to delete client", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true, "client_id": id})
}

// =============================================================================
// VENDOR HANDLERS
// =============================================================================

// ListVendors handles GET /api/vendors
func (h *Handler) ListVendors(w http.ResponseWriter, r *http.Request) {
	vendors, err := h.Store.ListVendors(r.Context())
	if err != nil {
		h.serverError(w, "Failed to list vendors", err)
		return
	}

	dtos := make([]VendorDTO, len(vendors))
	for i, v := range vendors {
		dtos[i] = vendorDTO(v)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetVendor handles GET /api/vendors/{id}
func (h *Handler) GetVendor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	vendor, err := h.Store.GetVendor(r.Context(), id)
	if err != nil {
		h.serverError(w, "Failed to get vendor", err)
		return
	}
	if vendor == nil {
		writeError(w, http.StatusNotFound, "Vendor not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, vendorDTO(*vendor))
}

// CreateVendor handles POST /api/vendors
func (h *Handler) CreateVendor(w http.ResponseWriter, r *http.Request) {
	var req VendorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	vendor, err := h.Store.CreateVendor(r.Context(), inventory.NewVendor{
		Name:    req.VendorName,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
	})
	if err != nil {
		h.domainError(w, "Failed to create vendor", err)
		return
	}
	writeJSON(w, http.StatusCreated, vendorDTO(*vendor))
}

// UpdateVendor handles PUT /api/vendors/{id}
func (h *Handler) UpdateVendor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req VendorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	vendor, err := h.Store.UpdateVendor(r.Context(), id, inventory.NewVendor{
		Name:    req.VendorName,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
	})
	if err != nil {
		h.domainError(w, "Failed to update vendor", err)
		return
	}
	writeJSON(w, http.StatusOK, vendorDTO(*vendor))
}

// DeleteVendor handles DELETE /api/vendors/{id}
func (h *Handler) DeleteVendor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.Store.DeleteVendor(r.Context(), id); err != nil {
		if errors.Is(err, inventory.ErrReferentialConflict) {
			writeError(w, http.StatusConflict, "Vendor has recorded supply orders", err)
			return
		}
		h.serverError(w, "Failed to delete vendor", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true, "vendor_id": id})
}

// =============================================================================
// SALES HANDLERS
// =============================================================================

// ListSales handles GET /api/sales
func (h *Handler) ListSales(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Store.ListSales(r.Context())
	if err != nil {
		h.serverError(w, "Failed to list sales", err)
		return
	}

	dtos := make([]SaleSummaryDTO, len(rows))
	for i, row := range rows {
		dtos[i] = SaleSummaryDTO{
			SaleID:     row.SaleID,
			SaleDate:   row.SaleDate.Format(time.RFC3339),
			ClientName: row.ClientName,
			SaleNotes:  row.Notes,
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ListSaleDetails handles GET /api/sales/details
func (h *Handler) ListSaleDetails(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Store.SaleDetails(r.Context())
	if err != nil {
		h.serverError(w, "Failed to list sale details", err)
		return
	}

	dtos := make([]SaleDetailDTO, len(rows))
	for i, row := range rows {
		dtos[i] = SaleDetailDTO{
			SaleItemID: row.SaleItemID,
			SaleID:     row.SaleID,
			SaleDate:   row.SaleDate.Format(time.RFC3339),
			ClientName: row.ClientName,
			ItemName:   row.ItemName,
			Quantity:   row.Quantity,
			UnitPrice:  row.UnitPrice,
			Subtotal:   row.Subtotal,
			SaleNotes:  row.SaleNotes,
			ItemNotes:  row.ItemNotes,
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetSale handles GET /api/sales/{id}
func (h *Handler) GetSale(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	sale, err := h.Store.GetSale(r.Context(), id)
	if err != nil {
		h.serverError(w, "Failed to get sale", err)
		return
	}
	if sale == nil {
		writeError(w, http.StatusNotFound, "Sale not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, saleDTO(sale))
}

// CreateSale handles POST /api/sales
//
// Records the sale header and line items and decrements stock, all in
// one transaction. If any line would drive stock negative the whole
// sale is rejected and nothing is written.
func (h *Handler) CreateSale(w http.ResponseWriter, r *http.Request) {
	var req CreateSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	rec := inventory.NewSale{
		ClientID: req.ClientID,
		Notes:    req.Notes,
		Items:    make([]inventory.NewSaleLine, len(req.Items)),
	}
	for i, li := range req.Items {
		rec.Items[i] = inventory.NewSaleLine{
			ItemID:    li.ItemID,
			Quantity:  li.Quantity,
			UnitPrice: li.UnitPrice,
			Notes:     li.Notes,
		}
	}

	sale, err := h.Ledger.RecordSale(r.Context(), rec)
	if err != nil {
		h.domainError(w, "Failed to record sale", err)
		return
	}
	writeJSON(w, http.StatusCreated, saleDTO(sale))
}

// DeleteSale handles DELETE /api/sales/{id}
//
// Stock is NOT restored: the sale is treated as a historical record
// being purged, not a return.
func (h *Handler) DeleteSale(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.Store.DeleteSale(r.Context(), id); err != nil {
		h.serverError(w, "Failed to delete sale", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true, "sale_id": id})
}

// =============================================================================
// SUPPLY HANDLERS
// =============================================================================

// ListSupplyOrders handles GET /api/supply
func (h *Handler) ListSupplyOrders(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Store.ListSupplyOrders(r.Context())
	if err != nil {
		h.serverError(w, "Failed to list supply orders", err)
		return
	}

	dtos := make([]SupplyOrderSummaryDTO, len(rows))
	for i, row := range rows {
		dtos[i] = SupplyOrderSummaryDTO{
			SupplyOrderID: row.SupplyOrderID,
			OrderDate:     row.OrderDate.Format(time.RFC3339),
			VendorName:    row.VendorName,
			OrderNotes:    row.Notes,
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ListSupplyDetails handles GET /api/supply/details
func (h *Handler) ListSupplyDetails(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Store.SupplyOrderDetails(r.Context())
	if err != nil {
		h.serverError(w, "Failed to list supply details", err)
		return
	}

	dtos := make([]SupplyOrderDetailDTO, len(rows))
	for i, row := range rows {
		dtos[i] = SupplyOrderDetailDTO{
			SupplyItemID:  row.SupplyItemID,
			SupplyOrderID: row.SupplyOrderID,
			OrderDate:     row.OrderDate.Format(time.RFC3339),
			VendorName:    row.VendorName,
			ItemName:      row.ItemName,
			Quantity:      row.Quantity,
			CostPrice:     row.CostPrice,
			Subtotal:      row.Subtotal,
			OrderNotes:    row.OrderNotes,
			ItemNotes:     row.ItemNotes,
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetSupplyOrder handles GET /api/supply/{id}
func (h *Handler) GetSupplyOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	order, err := h.Store.GetSupplyOrder(r.Context(), id)
	if err != nil {
		h.serverError(w, "Failed to get supply order", err)
		return
	}
	if order == nil {
		writeError(w, http.StatusNotFound, "Supply order not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, supplyOrderDTO(order))
}

// CreateSupplyOrder handles POST /api/supply
func (h *Handler) CreateSupplyOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateSupplyOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	rec := inventory.NewSupplyOrder{
		VendorID: req.VendorID,
		Notes:    req.Notes,
		Items:    make([]inventory.NewSupplyLine, len(req.Items)),
	}
	for i, li := range req.Items {
		rec.Items[i] = inventory.NewSupplyLine{
			ItemID:    li.ItemID,
			Quantity:  li.Quantity,
			CostPrice: li.CostPrice,
			Notes:     li.Notes,
		}
	}

	order, err := h.Ledger.RecordSupplyOrder(r.Context(), rec)
	if err != nil {
		h.domainError(w, "Failed to record supply order", err)
		return
	}
	writeJSON(w, http.StatusCreated, supplyOrderDTO(order))
}

// DeleteSupplyOrder handles DELETE /api/supply/{id}
//
// Stock is NOT decremented back out.
func (h *Handler) DeleteSupplyOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.Store.DeleteSupplyOrder(r.Context(), id); err != nil {
		h.serverError(w, "Failed to delete supply order", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true, "supply_order_id": id})
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// InventoryReport handles GET /api/reports/inventory
func (h *Handler) InventoryReport(w http.ResponseWriter, r *http.Request) {
	sum, err := h.Store.InventorySummary(r.Context())
	if err != nil {
		h.serverError(w, "Failed to compute inventory summary", err)
		return
	}
	writeJSON(w, http.StatusOK, inventorySummaryDTO(sum))
}

// TransactionReport handles GET /api/reports/transactions
func (h *Handler) TransactionReport(w http.ResponseWriter, r *http.Request) {
	sum, err := h.Store.TransactionSummary(r.Context())
	if err != nil {
		h.serverError(w, "Failed to compute transaction summary", err)
		return
	}
	writeJSON(w, http.StatusOK, transactionSummaryDTO(sum))
}

// Dashboard handles GET /api/reports/dashboard
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	inv, err := h.Store.InventorySummary(r.Context())
	if err != nil {
		h.serverError(w, "Failed to compute inventory summary", err)
		return
	}
	txn, err := h.Store.TransactionSummary(r.Context())
	if err != nil {
		h.serverError(w, "Failed to compute transaction summary", err)
		return
	}
	writeJSON(w, http.StatusOK, DashboardDTO{
		Inventory:    inventorySummaryDTO(inv),
		Transactions: transactionSummaryDTO(txn),
	})
}

// =============================================================================
// EXPORT HANDLER
// =============================================================================

// ExportXLSX handles GET /api/export/xlsx
//
// Streams a workbook with one sheet per table and view, all read in a
// single transaction so the sheets are mutually consistent.
func (h *Handler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	tables, err := h.Store.Snapshot(r.Context())
	if err != nil {
		h.serverError(w, "Failed to snapshot database", err)
		return
	}

	filename := fmt.Sprintf("inventory-export-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := export.WriteWorkbook(w, tables); err != nil {
		// Headers are already sent; all we can do is log.
		h.Log.Error("xlsx export failed", zap.Error(err))
	}
}

// Health handles GET /api/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// =============================================================================
// HELPERS
// =============================================================================

func clientDTO(c inventory.Client) ClientDTO {
	return ClientDTO{
		ClientID:    c.ID,
		ClientName:  c.Name,
		Email:       c.Email,
		Phone:       c.Phone,
		Address:     c.Address,
		Notes:       c.Notes,
		CreatedDate: c.CreatedDate.Format(time.RFC3339),
	}
}

func vendorDTO(v inventory.Vendor) VendorDTO {
	return VendorDTO{
		VendorID:    v.ID,
		VendorName:  v.Name,
		Email:       v.Email,
		Phone:       v.Phone,
		Address:     v.Address,
		Notes:       v.Notes,
		CreatedDate: v.CreatedDate.Format(time.RFC3339),
	}
}

func inventorySummaryDTO(s inventory.InventorySummary) InventorySummaryDTO {
	return InventorySummaryDTO{
		TotalValue:    s.TotalValue,
		TotalItems:    s.TotalItems,
		LowStockCount: s.LowStockCount,
	}
}

func transactionSummaryDTO(s inventory.TransactionSummary) TransactionSummaryDTO {
	return TransactionSummaryDTO{
		SalesRevenue: s.SalesRevenue,
		SalesCount:   s.SalesCount,
		SupplyCost:   s.SupplyCost,
		SupplyCount:  s.SupplyCount,
		GrossMargin:  s.GrossMargin,
	}
}

// pathID parses the {id} URL parameter. Writes a 400 and returns
// ok=false when it is not a positive integer.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid id: %s", raw), nil)
		return 0, false
	}
	return id, true
}

// domainError maps domain errors from writes to HTTP statuses.
func (h *Handler) domainError(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, inventory.ErrInsufficientStock):
		writeError(w, http.StatusBadRequest, "Insufficient stock for one or more items", err)
	case errors.Is(err, inventory.ErrValidation):
		writeError(w, http.StatusBadRequest, msg, err)
	case errors.Is(err, inventory.ErrNotFound):
		writeError(w, http.StatusNotFound, msg, err)
	case errors.Is(err, inventory.ErrReferentialConflict):
		writeError(w, http.StatusConflict, msg, err)
	default:
		h.serverError(w, msg, err)
	}
}

func (h *Handler) serverError(w http.ResponseWriter, msg string, err error) {
	h.Log.Error(msg, zap.Error(err))
	writeError(w, http.StatusInternalServerError, msg, err)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication, decoupling the
  domain model from the wire contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

MONEY ON THE WIRE:
  Monetary fields are decimal.Decimal and serialize as quoted decimal
  strings ("12.50"). Request bodies may send them as JSON numbers or
  strings; both decode.

VALIDATION:
  DTOs are pure data carriers. Domain validation (required names,
  positive prices, non-empty line-item lists) happens in the core when
  the converted input is persisted.

SEE ALSO:
  - handlers.go: Conversion between DTOs and inventory types
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stockline/inventory-engine/inventory"
)

// =============================================================================
// INVENTORY
// =============================================================================

// ItemDTO represents an inventory item in API responses.
type ItemDTO struct {
	ItemID       int64           `json:"item_id"`
	ItemName     string          `json:"item_name"`
	Description  string          `json:"description,omitempty"`
	Quantity     int64           `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	ReorderLevel int64           `json:"reorder_level"`
	Notes        string          `json:"notes,omitempty"`
	CreatedDate  string          `json:"created_date"`
}

func itemDTO(it inventory.Item) ItemDTO {
	return ItemDTO{
		ItemID:       it.ID,
		ItemName:     it.Name,
		Description:  it.Description,
		Quantity:     it.Quantity,
		UnitPrice:    it.UnitPrice,
		ReorderLevel: it.ReorderLevel,
		Notes:        it.Notes,
		CreatedDate:  it.CreatedDate.Format(time.RFC3339),
	}
}

// CreateItemRequest creates an item. Quantity and reorder_level are
// optional; the core defaults them to 0 and 10.
type CreateItemRequest struct {
	ItemName     string          `json:"item_name"`
	Description  string          `json:"description"`
	Quantity     *int64          `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	ReorderLevel *int64          `json:"reorder_level"`
	Notes        string          `json:"notes"`
}

// UpdateItemRequest updates an item's descriptive fields. There is no
// quantity field: stock only moves through sales and supply orders.
type UpdateItemRequest struct {
	ItemName     string          `json:"item_name"`
	Description  string          `json:"description"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	ReorderLevel *int64          `json:"reorder_level"`
	Notes        string          `json:"notes"`
}

// LowStockItemDTO is a row of the low-stock listing.
type LowStockItemDTO struct {
	ItemID       int64  `json:"item_id"`
	ItemName     string `json:"item_name"`
	Quantity     int64  `json:"quantity"`
	ReorderLevel int64  `json:"reorder_level"`
	Notes        string `json:"notes,omitempty"`
}

// =============================================================================
// CLIENTS / VENDORS
// =============================================================================

// ClientDTO represents a client in API responses.
type ClientDTO struct {
	ClientID    int64  `json:"client_id"`
	ClientName  string `json:"client_name"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	Notes       string `json:"notes,omitempty"`
	CreatedDate string `json:"created_date"`
}

// ClientRequest creates or updates a client.
type ClientRequest struct {
	ClientName string `json:"client_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	Notes      string `json:"notes"`
}

// VendorDTO represents a vendor in API responses.
type VendorDTO struct {
	VendorID    int64  `json:"vendor_id"`
	VendorName  string `json:"vendor_name"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	Notes       string `json:"notes,omitempty"`
	CreatedDate string `json:"created_date"`
}

// VendorRequest creates or updates a vendor.
type VendorRequest struct {
	VendorName string `json:"vendor_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	Notes      string `json:"notes"`
}

// =============================================================================
// SALES
// =============================================================================

// SaleDTO is a sale hydrated with its line items.
type SaleDTO struct {
	SaleID   int64         `json:"sale_id"`
	ClientID *int64        `json:"client_id"`
	SaleDate string        `json:"sale_date"`
	Notes    string        `json:"notes,omitempty"`
	Items    []SaleLineDTO `json:"items"`
}

// SaleLineDTO is one line of a sale.
type SaleLineDTO struct {
	SaleItemID int64           `json:"sale_item_id"`
	SaleID     int64           `json:"sale_id"`
	ItemID     int64           `json:"item_id"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Notes      string          `json:"notes,omitempty"`
}

func saleDTO(s *inventory.Sale) SaleDTO {
	dto := SaleDTO{
		SaleID:   s.ID,
		ClientID: s.ClientID,
		SaleDate: s.SaleDate.Format(time.RFC3339),
		Notes:    s.Notes,
		Items:    make([]SaleLineDTO, len(s.Items)),
	}
	for i, li := range s.Items {
		dto.Items[i] = SaleLineDTO{
			SaleItemID: li.ID,
			SaleID:     li.SaleID,
			ItemID:     li.ItemID,
			Quantity:   li.Quantity,
			UnitPrice:  li.UnitPrice,
			Subtotal:   li.Subtotal,
			Notes:      li.Notes,
		}
	}
	return dto
}

// CreateSaleRequest records a sale.
// Body: { client_id?, notes?, items: [{item_id, quantity, unit_price, notes?}] }
type CreateSaleRequest struct {
	ClientID *int64            `json:"client_id"`
	Notes    string            `json:"notes"`
	Items    []SaleLineRequest `json:"items"`
}

// SaleLineRequest is one requested sale line.
type SaleLineRequest struct {
	ItemID    int64           `json:"item_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Notes     string          `json:"notes"`
}

// SaleSummaryDTO is a row of the sales summary listing.
type SaleSummaryDTO struct {
	SaleID     int64  `json:"sale_id"`
	SaleDate   string `json:"sale_date"`
	ClientName string `json:"client_name,omitempty"`
	SaleNotes  string `json:"sale_notes,omitempty"`
}

// SaleDetailDTO is a row of the sale details listing.
type SaleDetailDTO struct {
	SaleItemID int64           `json:"sale_item_id"`
	SaleID     int64           `json:"sale_id"`
	SaleDate   string          `json:"sale_date"`
	ClientName string          `json:"client_name,omitempty"`
	ItemName   string          `json:"item_name"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	SaleNotes  string          `json:"sale_notes,omitempty"`
	ItemNotes  string          `json:"item_notes,omitempty"`
}

// =============================================================================
// SUPPLY ORDERS
// =============================================================================

// SupplyOrderDTO is a supply order hydrated with its line items.
type SupplyOrderDTO struct {
	SupplyOrderID int64           `json:"supply_order_id"`
	VendorID      *int64          `json:"vendor_id"`
	OrderDate     string          `json:"order_date"`
	Notes         string          `json:"notes,omitempty"`
	Items         []SupplyLineDTO `json:"items"`
}

// SupplyLineDTO is one line of a supply order.
type SupplyLineDTO struct {
	SupplyItemID  int64           `json:"supply_item_id"`
	SupplyOrderID int64           `json:"supply_order_id"`
	ItemID        int64           `json:"item_id"`
	Quantity      int64           `json:"quantity"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Notes         string          `json:"notes,omitempty"`
}

func supplyOrderDTO(o *inventory.SupplyOrder) SupplyOrderDTO {
	dto := SupplyOrderDTO{
		SupplyOrderID: o.ID,
		VendorID:      o.VendorID,
		OrderDate:     o.OrderDate.Format(time.RFC3339),
		Notes:         o.Notes,
		Items:         make([]SupplyLineDTO, len(o.Items)),
	}
	for i, li := range o.Items {
		dto.Items[i] = SupplyLineDTO{
			SupplyItemID:  li.ID,
			SupplyOrderID: li.SupplyOrderID,
			ItemID:        li.ItemID,
			Quantity:      li.Quantity,
			CostPrice:     li.CostPrice,
			Subtotal:      li.Subtotal,
			Notes:         li.Notes,
		}
	}
	return dto
}

// CreateSupplyOrderRequest records a supply order.
// Body: { vendor_id?, notes?, items: [{item_id, quantity, cost_price, notes?}] }
type CreateSupplyOrderRequest struct {
	VendorID *int64              `json:"vendor_id"`
	Notes    string              `json:"notes"`
	Items    []SupplyLineRequest `json:"items"`
}

// SupplyLineRequest is one requested supply line.
type SupplyLineRequest struct {
	ItemID    int64           `json:"item_id"`
	Quantity  int64           `json:"quantity"`
	CostPrice decimal.Decimal `json:"cost_price"`
	Notes     string          `json:"notes"`
}

// SupplyOrderSummaryDTO is a row of the supply order summary listing.
type SupplyOrderSummaryDTO struct {
	SupplyOrderID int64  `json:"supply_order_id"`
	OrderDate     string `json:"order_date"`
	VendorName    string `json:"vendor_name,omitempty"`
	OrderNotes    string `json:"order_notes,omitempty"`
}

// SupplyOrderDetailDTO is a row of the supply order details listing.
type SupplyOrderDetailDTO struct {
	SupplyItemID  int64           `json:"supply_item_id"`
	SupplyOrderID int64           `json:"supply_order_id"`
	OrderDate     string          `json:"order_date"`
	VendorName    string          `json:"vendor_name,omitempty"`
	ItemName      string          `json:"item_name"`
	Quantity      int64           `json:"quantity"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	OrderNotes    string          `json:"order_notes,omitempty"`
	ItemNotes     string          `json:"item_notes,omitempty"`
}

// =============================================================================
// REPORTS
// =============================================================================

// InventorySummaryDTO is the stock valuation report.
type InventorySummaryDTO struct {
	TotalValue    decimal.Decimal `json:"total_value"`
	TotalItems    int64           `json:"total_items"`
	LowStockCount int64           `json:"low_stock_count"`
}

// TransactionSummaryDTO is the sales/supply/margin report.
type TransactionSummaryDTO struct {
	SalesRevenue decimal.Decimal `json:"sales_revenue"`
	SalesCount   int64           `json:"sales_count"`
	SupplyCost   decimal.Decimal `json:"supply_cost"`
	SupplyCount  int64           `json:"supply_count"`
	GrossMargin  decimal.Decimal `json:"gross_margin"`
}

// DashboardDTO combines both reports for the dashboard landing view.
type DashboardDTO struct {
	Inventory    InventorySummaryDTO   `json:"inventory"`
	Transactions TransactionSummaryDTO `json:"transactions"`
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrorResponse is the JSON shape of every error reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

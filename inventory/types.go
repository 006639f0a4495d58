/*
types.go - Core domain types for the inventory ledger

PURPOSE:
  Defines the entities persisted by the store (items, clients, vendors,
  sales, supply orders and their line items), the read-side view rows,
  and the typed input records used to create or update them.

ENTITY RELATIONSHIPS:
  Client  1--N Sale        1--N SaleLine    N--1 Item
  Vendor  1--N SupplyOrder 1--N SupplyLine  N--1 Item

  A Sale/SupplyOrder exclusively owns its line items (cascade delete).
  An Item is shared: many line items may reference it, none own it.

MONEY:
  All monetary values are shopspring/decimal. Prices and subtotals are
  never held as floats; report sums are exact decimal arithmetic.

INPUT RECORDS:
  Every create/update operation takes an explicit struct (NewItem,
  NewSale, ...) rather than a loosely-typed map. Defaulting of optional
  fields (quantity 0, reorder level 10) happens here, in the core,
  so callers cannot bypass it.

SEE ALSO:
  - errors.go: Validation errors raised by the input records
  - ledger.go: The only writer of Sale/SupplyOrder records
  - store.go: Persistence interfaces consuming these types
*/
package inventory

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultReorderLevel is applied when an item is created without one.
const DefaultReorderLevel int64 = 10

// =============================================================================
// PERSISTED ENTITIES
// =============================================================================

// Item is a stocked inventory item. Quantity is only ever changed by the
// Ledger; direct item updates never touch it.
type Item struct {
	ID           int64
	Name         string
	Description  string
	Quantity     int64
	UnitPrice    decimal.Decimal
	ReorderLevel int64
	Notes        string
	CreatedDate  time.Time
}

// Client is a buyer. All fields except Name are optional.
type Client struct {
	ID          int64
	Name        string
	Email       string
	Phone       string
	Address     string
	Notes       string
	CreatedDate time.Time
}

// Vendor is a supplier. Structurally identical to Client.
type Vendor struct {
	ID          int64
	Name        string
	Email       string
	Phone       string
	Address     string
	Notes       string
	CreatedDate time.Time
}

// Sale is a recorded sale header with its line items.
// ClientID is nil for walk-in sales.
type Sale struct {
	ID       int64
	ClientID *int64
	SaleDate time.Time
	Notes    string
	Items    []SaleLine
}

// SaleLine is one (item, quantity, price) row of a sale.
// Subtotal is quantity x unit price, computed at write time and stored.
type SaleLine struct {
	ID        int64
	SaleID    int64
	ItemID    int64
	Quantity  int64
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
	Notes     string
}

// SupplyOrder is a recorded purchase header with its line items.
// VendorID is nil for unassigned orders.
type SupplyOrder struct {
	ID        int64
	VendorID  *int64
	OrderDate time.Time
	Notes     string
	Items     []SupplyLine
}

// SupplyLine is one (item, quantity, cost) row of a supply order.
type SupplyLine struct {
	ID            int64
	SupplyOrderID int64
	ItemID        int64
	Quantity      int64
	CostPrice     decimal.Decimal
	Subtotal      decimal.Decimal
	Notes         string
}

// =============================================================================
// VIEW ROWS (read-side, recomputed live)
// =============================================================================

// LowStockItem is a row of the low_stock_items view:
// items whose quantity has fallen to or below their reorder level.
type LowStockItem struct {
	ItemID       int64
	Name         string
	Quantity     int64
	ReorderLevel int64
	Notes        string
}

// SaleSummary is a row of the sales_summary view: sale headers joined
// with the client name. ClientName is empty for walk-in sales.
type SaleSummary struct {
	SaleID     int64
	SaleDate   time.Time
	ClientName string
	Notes      string
}

// SaleDetail is a row of the sale_details view: line items joined with
// their sale header, client and item for display.
type SaleDetail struct {
	SaleItemID int64
	SaleID     int64
	SaleDate   time.Time
	ClientName string
	ItemName   string
	Quantity   int64
	UnitPrice  decimal.Decimal
	Subtotal   decimal.Decimal
	SaleNotes  string
	ItemNotes  string
}

// SupplyOrderSummary mirrors SaleSummary for supply orders.
type SupplyOrderSummary struct {
	SupplyOrderID int64
	OrderDate     time.Time
	VendorName    string
	Notes         string
}

// SupplyOrderDetail mirrors SaleDetail for supply orders.
type SupplyOrderDetail struct {
	SupplyItemID  int64
	SupplyOrderID int64
	OrderDate     time.Time
	VendorName    string
	ItemName      string
	Quantity      int64
	CostPrice     decimal.Decimal
	Subtotal      decimal.Decimal
	OrderNotes    string
	ItemNotes     string
}

// =============================================================================
// REPORT AGGREGATES
// =============================================================================

// InventorySummary is the current valuation of the stock.
// All fields are zero-valued when the inventory is empty.
type InventorySummary struct {
	TotalValue    decimal.Decimal
	TotalItems    int64
	LowStockCount int64
}

// TransactionSummary aggregates the sales and supply ledgers.
// GrossMargin = SalesRevenue - SupplyCost.
type TransactionSummary struct {
	SalesRevenue decimal.Decimal
	SalesCount   int64
	SupplyCost   decimal.Decimal
	SupplyCount  int64
	GrossMargin  decimal.Decimal
}

// =============================================================================
// INPUT RECORDS
// =============================================================================

// NewItem creates an inventory item. Quantity and ReorderLevel are
// optional; nil defaults to 0 and DefaultReorderLevel respectively.
type NewItem struct {
	Name         string
	Description  string
	Quantity     *int64
	UnitPrice    decimal.Decimal
	ReorderLevel *int64
	Notes        string
}

// Validate checks required-field presence and price positivity.
func (n NewItem) Validate() error {
	if n.Name == "" {
		return &ValidationError{Field: "item_name", Reason: "is required"}
	}
	if !n.UnitPrice.IsPositive() {
		return &ValidationError{Field: "unit_price", Reason: "must be positive"}
	}
	if n.Quantity != nil && *n.Quantity < 0 {
		return &ValidationError{Field: "quantity", Reason: "must not be negative"}
	}
	if n.ReorderLevel != nil && *n.ReorderLevel < 0 {
		return &ValidationError{Field: "reorder_level", Reason: "must not be negative"}
	}
	return nil
}

// StartingQuantity resolves the optional quantity (default 0).
func (n NewItem) StartingQuantity() int64 {
	if n.Quantity == nil {
		return 0
	}
	return *n.Quantity
}

// EffectiveReorderLevel resolves the optional reorder level (default 10).
func (n NewItem) EffectiveReorderLevel() int64 {
	if n.ReorderLevel == nil {
		return DefaultReorderLevel
	}
	return *n.ReorderLevel
}

// UpdateItem updates an item's descriptive fields. It deliberately has
// no quantity: stock levels are mutated only by the Ledger.
type UpdateItem struct {
	Name         string
	Description  string
	UnitPrice    decimal.Decimal
	ReorderLevel *int64
	Notes        string
}

func (u UpdateItem) Validate() error {
	if u.Name == "" {
		return &ValidationError{Field: "item_name", Reason: "is required"}
	}
	if !u.UnitPrice.IsPositive() {
		return &ValidationError{Field: "unit_price", Reason: "must be positive"}
	}
	if u.ReorderLevel != nil && *u.ReorderLevel < 0 {
		return &ValidationError{Field: "reorder_level", Reason: "must not be negative"}
	}
	return nil
}

// EffectiveReorderLevel resolves the optional reorder level (default 10).
func (u UpdateItem) EffectiveReorderLevel() int64 {
	if u.ReorderLevel == nil {
		return DefaultReorderLevel
	}
	return *u.ReorderLevel
}

// NewClient creates a client. Only the name is required.
type NewClient struct {
	Name    string
	Email   string
	Phone   string
	Address string
	Notes   string
}

func (n NewClient) Validate() error {
	if n.Name == "" {
		return &ValidationError{Field: "client_name", Reason: "is required"}
	}
	return nil
}

// NewVendor creates a vendor. Only the name is required.
type NewVendor struct {
	Name    string
	Email   string
	Phone   string
	Address string
	Notes   string
}

func (n NewVendor) Validate() error {
	if n.Name == "" {
		return &ValidationError{Field: "vendor_name", Reason: "is required"}
	}
	return nil
}

// NewSale records a sale: a header plus at least one line item.
// Line items are applied in the order given; repeated item ids are not
// deduplicated, each occurrence is applied independently.
type NewSale struct {
	ClientID *int64
	Notes    string
	Items    []NewSaleLine
}

// NewSaleLine is one requested sale line.
type NewSaleLine struct {
	ItemID    int64
	Quantity  int64
	UnitPrice decimal.Decimal
	Notes     string
}

func (n NewSale) Validate() error {
	if len(n.Items) == 0 {
		return &ValidationError{Field: "items", Reason: "sale must have at least one item"}
	}
	for _, li := range n.Items {
		if li.ItemID <= 0 {
			return &ValidationError{Field: "item_id", Reason: "is required"}
		}
		if li.Quantity <= 0 {
			return &ValidationError{Field: "quantity", Reason: "must be positive"}
		}
		if li.UnitPrice.IsNegative() {
			return &ValidationError{Field: "unit_price", Reason: "must not be negative"}
		}
	}
	return nil
}

// NewSupplyOrder records a purchase: a header plus at least one line item.
type NewSupplyOrder struct {
	VendorID *int64
	Notes    string
	Items    []NewSupplyLine
}

// NewSupplyLine is one requested supply line.
type NewSupplyLine struct {
	ItemID    int64
	Quantity  int64
	CostPrice decimal.Decimal
	Notes     string
}

func (n NewSupplyOrder) Validate() error {
	if len(n.Items) == 0 {
		return &ValidationError{Field: "items", Reason: "supply order must have at least one item"}
	}
	for _, li := range n.Items {
		if li.ItemID <= 0 {
			return &ValidationError{Field: "item_id", Reason: "is required"}
		}
		if li.Quantity <= 0 {
			return &ValidationError{Field: "quantity", Reason: "must be positive"}
		}
		if li.CostPrice.IsNegative() {
			return &ValidationError{Field: "cost_price", Reason: "must not be negative"}
		}
	}
	return nil
}

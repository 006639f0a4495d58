/*
store.go - Persistence interfaces between the domain and the database

PURPOSE:
  Defines what the core needs from storage. The SQLite implementation
  lives in store/sqlite; tests exercise it through these interfaces.

KEY INTERFACES:
  ItemStore / ClientStore / VendorStore  Per-entity CRUD
  SaleReader / SupplyReader              Read-only transaction listings
  LedgerStore                            Scoped transactions for the Ledger
  Reporter                               Derived summaries (reports.go)
  Snapshotter                            Point-in-time export (snapshot.go)

STOCK CONTRACT:
  No interface exposes a direct quantity update. The only way stock
  moves is LedgerTx.AdjustStock inside a LedgerStore.WithTx scope, which
  keeps the line-item insert and the inventory delta in one transaction.

SCOPED TRANSACTIONS:
  WithTx(fn) opens a transaction, passes a transaction-bound LedgerTx to
  fn, commits when fn returns nil and rolls back on any error. There is
  no manual commit/rollback bookkeeping in the domain layer.

SEE ALSO:
  - ledger.go: The only consumer of LedgerStore
  - store/sqlite/sqlite.go: Concrete implementation of everything here
*/
package inventory

import (
	"context"
	"time"
)

// =============================================================================
// REPOSITORY INTERFACES - per-entity CRUD
// =============================================================================

// ItemStore persists inventory items. Note the absence of any quantity
// mutation: UpdateItem never touches stock.
type ItemStore interface {
	ListItems(ctx context.Context) ([]Item, error)
	GetItem(ctx context.Context, id int64) (*Item, error)
	LowStockItems(ctx context.Context) ([]LowStockItem, error)
	CreateItem(ctx context.Context, in NewItem) (*Item, error)
	UpdateItem(ctx context.Context, id int64, in UpdateItem) (*Item, error)

	// DeleteItem removes an item. Fails with ErrReferentialConflict when
	// the item is still referenced by any line item.
	DeleteItem(ctx context.Context, id int64) error
}

// ClientStore persists clients.
type ClientStore interface {
	ListClients(ctx context.Context) ([]Client, error)
	GetClient(ctx context.Context, id int64) (*Client, error)
	CreateClient(ctx context.Context, in NewClient) (*Client, error)
	UpdateClient(ctx context.Context, id int64, in NewClient) (*Client, error)
	DeleteClient(ctx context.Context, id int64) error
}

// VendorStore persists vendors.
type VendorStore interface {
	ListVendors(ctx context.Context) ([]Vendor, error)
	GetVendor(ctx context.Context, id int64) (*Vendor, error)
	CreateVendor(ctx context.Context, in NewVendor) (*Vendor, error)
	UpdateVendor(ctx context.Context, id int64, in NewVendor) (*Vendor, error)
	DeleteVendor(ctx context.Context, id int64) error
}

// =============================================================================
// TRANSACTION READERS - read-only listings for sales and supply orders
// =============================================================================

// SaleReader lists recorded sales. Get* return (nil, nil) when absent so
// callers can distinguish "missing" from "failed".
type SaleReader interface {
	// ListSales returns header rows joined with client names,
	// most recent first.
	ListSales(ctx context.Context) ([]SaleSummary, error)

	// SaleDetails returns all line items joined with their sale, client
	// and item, most recent first.
	SaleDetails(ctx context.Context) ([]SaleDetail, error)

	// GetSale returns a sale hydrated with its line items.
	GetSale(ctx context.Context, id int64) (*Sale, error)
}

// SupplyReader mirrors SaleReader for supply orders.
type SupplyReader interface {
	ListSupplyOrders(ctx context.Context) ([]SupplyOrderSummary, error)
	SupplyOrderDetails(ctx context.Context) ([]SupplyOrderDetail, error)
	GetSupplyOrder(ctx context.Context, id int64) (*SupplyOrder, error)
}

// =============================================================================
// LEDGER STORE - scoped transactions for atomic writes
// =============================================================================

// LedgerTx is the write surface available inside one store transaction.
// Everything executed through it commits or rolls back together.
type LedgerTx interface {
	InsertSale(ctx context.Context, clientID *int64, saleDate time.Time, notes string) (int64, error)
	InsertSaleLine(ctx context.Context, line SaleLine) (int64, error)
	InsertSupplyOrder(ctx context.Context, vendorID *int64, orderDate time.Time, notes string) (int64, error)
	InsertSupplyLine(ctx context.Context, line SupplyLine) (int64, error)

	// AdjustStock shifts an item's quantity by delta (negative for sales).
	// Returns ErrInsufficientStock when the shift would go below zero.
	AdjustStock(ctx context.Context, itemID, delta int64) error
}

// LedgerStore is what the Ledger needs from storage.
type LedgerStore interface {
	// WithTx executes fn within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTx(ctx context.Context, fn func(LedgerTx) error) error

	GetSale(ctx context.Context, id int64) (*Sale, error)
	GetSupplyOrder(ctx context.Context, id int64) (*SupplyOrder, error)

	// DeleteSale removes a sale header; line items cascade. The inventory
	// effect of the sale is deliberately NOT reversed.
	DeleteSale(ctx context.Context, id int64) error

	// DeleteSupplyOrder mirrors DeleteSale. No de-stock on deletion.
	DeleteSupplyOrder(ctx context.Context, id int64) error
}

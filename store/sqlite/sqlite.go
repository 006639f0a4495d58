/*
Package sqlite provides the SQLite-backed implementation of the storage
interfaces.

PURPOSE:
  Implements every persistence interface of the inventory package
  (ItemStore, ClientStore, VendorStore, SaleReader, SupplyReader,
  LedgerStore, Reporter, Snapshotter) over a single embedded database.

SCHEMA:
  inventory, clients, vendors:   directly managed entities
  sales, sale_items:             sale ledger (cascade delete)
  supply_orders, supply_items:   supply ledger (cascade delete)
  low_stock_items, *_summary,
  *_details:                     live views, never materialized

CONSTRAINTS THE LEDGER RELIES ON:
  - stock_non_negative CHECK on inventory.quantity. The ledger decrements
    stock inside the sale transaction; this constraint is what turns an
    oversold batch into a rollback.
  - Foreign keys from line items to inventory are RESTRICT: an item that
    appears on any line item cannot be deleted.
  - sales -> sale_items and supply_orders -> supply_items CASCADE.

ERROR CLASSIFICATION:
  SQLite reports constraint violations as strings. The helpers at the
  bottom match them onto the inventory error kinds:
    "stock_non_negative"            -> inventory.ErrInsufficientStock
    "FOREIGN KEY constraint failed" -> inventory.ErrReferentialConflict
    anything else                   -> inventory.ErrPersistence

DATA REPRESENTATION:
  Timestamps are RFC3339 strings written from Go. Monetary values are
  decimal strings (TEXT), parsed with shopspring/decimal; sums are
  computed in Go, never as floats in SQL.

WAL MODE:
  The database is opened with WAL and foreign keys on. Reads do not
  block each other; writes are serialized by SQLite, which is what
  keeps two concurrent sales from both seeing pre-decrement stock.

USAGE:
  store, err := sqlite.New("./data/inventory.db")
  ...
  ledger := inventory.NewLedger(store)

SEE ALSO:
  - inventory/store.go: Interface definitions
  - inventory/ledger.go: The transactional consumer of WithTx
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/stockline/inventory-engine/inventory"
)

// Store implements all storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection: writes are mutex-serialized anyway, and a ":memory:"
	// database exists per connection.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Inventory items. Stock level is guarded by the named CHECK so an
	-- oversold sale aborts its whole transaction.
	CREATE TABLE IF NOT EXISTS inventory (
		item_id INTEGER PRIMARY KEY AUTOINCREMENT,
		item_name TEXT NOT NULL,
		description TEXT,
		quantity INTEGER NOT NULL DEFAULT 0
			CONSTRAINT stock_non_negative CHECK (quantity >= 0),
		unit_price TEXT NOT NULL,
		reorder_level INTEGER NOT NULL DEFAULT 10 CHECK (reorder_level >= 0),
		notes TEXT,
		created_date TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS clients (
		client_id INTEGER PRIMARY KEY AUTOINCREMENT,
		client_name TEXT NOT NULL,
		email TEXT,
		phone TEXT,
		address TEXT,
		notes TEXT,
		created_date TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS vendors (
		vendor_id INTEGER PRIMARY KEY AUTOINCREMENT,
		vendor_name TEXT NOT NULL,
		email TEXT,
		phone TEXT,
		address TEXT,
		notes TEXT,
		created_date TEXT NOT NULL
	);

	-- Sale headers. client_id NULL means a walk-in sale.
	CREATE TABLE IF NOT EXISTS sales (
		sale_id INTEGER PRIMARY KEY AUTOINCREMENT,
		client_id INTEGER REFERENCES clients(client_id) ON DELETE RESTRICT,
		sale_date TEXT NOT NULL,
		notes TEXT
	);

	CREATE TABLE IF NOT EXISTS sale_items (
		sale_item_id INTEGER PRIMARY KEY AUTOINCREMENT,
		sale_id INTEGER NOT NULL REFERENCES sales(sale_id) ON DELETE CASCADE,
		item_id INTEGER NOT NULL REFERENCES inventory(item_id) ON DELETE RESTRICT,
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		unit_price TEXT NOT NULL,
		notes TEXT,
		subtotal TEXT NOT NULL
	);

	-- Supply order headers. vendor_id NULL means unassigned.
	CREATE TABLE IF NOT EXISTS supply_orders (
		supply_order_id INTEGER PRIMARY KEY AUTOINCREMENT,
		vendor_id INTEGER REFERENCES vendors(vendor_id) ON DELETE RESTRICT,
		order_date TEXT NOT NULL,
		notes TEXT
	);

	CREATE TABLE IF NOT EXISTS supply_items (
		supply_item_id INTEGER PRIMARY KEY AUTOINCREMENT,
		supply_order_id INTEGER NOT NULL REFERENCES supply_orders(supply_order_id) ON DELETE CASCADE,
		item_id INTEGER NOT NULL REFERENCES inventory(item_id) ON DELETE RESTRICT,
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		cost_price TEXT NOT NULL,
		notes TEXT,
		subtotal TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sale_items_sale ON sale_items(sale_id);
	CREATE INDEX IF NOT EXISTS idx_sale_items_item ON sale_items(item_id);
	CREATE INDEX IF NOT EXISTS idx_supply_items_order ON supply_items(supply_order_id);
	CREATE INDEX IF NOT EXISTS idx_supply_items_item ON supply_items(item_id);

	-- Derived views, recomputed on every read.
	CREATE VIEW IF NOT EXISTS low_stock_items AS
		SELECT item_id, item_name, quantity, reorder_level, notes
		FROM inventory
		WHERE quantity <= reorder_level;

	CREATE VIEW IF NOT EXISTS sales_summary AS
		SELECT s.sale_id, s.sale_date, c.client_name, s.notes AS sale_notes
		FROM sales s
		LEFT JOIN clients c ON c.client_id = s.client_id;

	CREATE VIEW IF NOT EXISTS sale_details AS
		SELECT si.sale_item_id, si.sale_id, s.sale_date, c.client_name,
		       i.item_name, si.quantity, si.unit_price, si.subtotal,
		       s.notes AS sale_notes, si.notes AS item_notes
		FROM sale_items si
		JOIN sales s ON s.sale_id = si.sale_id
		LEFT JOIN clients c ON c.client_id = s.client_id
		JOIN inventory i ON i.item_id = si.item_id;

	CREATE VIEW IF NOT EXISTS supply_order_summary AS
		SELECT o.supply_order_id, o.order_date, v.vendor_name, o.notes AS order_notes
		FROM supply_orders o
		LEFT JOIN vendors v ON v.vendor_id = o.vendor_id;

	CREATE VIEW IF NOT EXISTS supply_order_details AS
		SELECT si.supply_item_id, si.supply_order_id, o.order_date, v.vendor_name,
		       i.item_name, si.quantity, si.cost_price, si.subtotal,
		       o.notes AS order_notes, si.notes AS item_notes
		FROM supply_items si
		JOIN supply_orders o ON o.supply_order_id = si.supply_order_id
		LEFT JOIN vendors v ON v.vendor_id = o.vendor_id
		JOIN inventory i ON i.item_id = si.item_id;
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// ITEM STORE (inventory.ItemStore interface)
// =============================================================================

// ListItems returns all inventory items ordered by name.
func (s *Store) ListItems(ctx context.Context) ([]inventory.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT item_id, item_name, description, quantity, unit_price, reorder_level, notes, created_date
		FROM inventory
		ORDER BY item_name
	`)
	if err != nil {
		return nil, storeErr("list items", err)
	}
	defer rows.Close()

	var items []inventory.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, storeErr("scan item", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetItem returns an item by id, or (nil, nil) when absent.
func (s *Store) GetItem(ctx context.Context, id int64) (*inventory.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.getItem(ctx, id)
}

func (s *Store) getItem(ctx context.Context, id int64) (*inventory.Item, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT item_id, item_name, description, quantity, unit_price, reorder_level, notes, created_date
		FROM inventory
		WHERE item_id = ?
	`, id)

	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("get item", err)
	}
	return &item, nil
}

// LowStockItems returns items at or below their reorder level,
// lowest stock first.
func (s *Store) LowStockItems(ctx context.Context) ([]inventory.LowStockItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT item_id, item_name, quantity, reorder_level, notes
		FROM low_stock_items
		ORDER BY quantity ASC, item_id
	`)
	if err != nil {
		return nil, storeErr("list low stock", err)
	}
	defer rows.Close()

	var items []inventory.LowStockItem
	for rows.Next() {
		var it inventory.LowStockItem
		var notes sql.NullString
		if err := rows.Scan(&it.ItemID, &it.Name, &it.Quantity, &it.ReorderLevel, &notes); err != nil {
			return nil, storeErr("scan low stock", err)
		}
		it.Notes = notes.String
		items = append(items, it)
	}
	return items, rows.Err()
}

// CreateItem validates and inserts a new item, applying the quantity
// and reorder-level defaults.
func (s *Store) CreateItem(ctx context.Context, in inventory.NewItem) (*inventory.Item, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO inventory (item_name, description, quantity, unit_price, reorder_level, notes, created_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		in.Name,
		nullString(in.Description),
		in.StartingQuantity(),
		in.UnitPrice.String(),
		in.EffectiveReorderLevel(),
		nullString(in.Notes),
		now(),
	)
	if err != nil {
		return nil, storeErr("insert item", err)
	}

	id, _ := res.LastInsertId()
	return s.getItem(ctx, id)
}

// UpdateItem validates and updates an item's descriptive fields.
// Quantity is never touched here; only the ledger moves stock.
func (s *Store) UpdateItem(ctx context.Context, id int64, in inventory.UpdateItem) (*inventory.Item, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE inventory
		SET item_name = ?, description = ?, unit_price = ?, reorder_level = ?, notes = ?
		WHERE item_id = ?
	`,
		in.Name,
		nullString(in.Description),
		in.UnitPrice.String(),
		in.EffectiveReorderLevel(),
		nullString(in.Notes),
		id,
	)
	if err != nil {
		return nil, storeErr("update item", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("item %d: %w", id, inventory.ErrNotFound)
	}
	return s.getItem(ctx, id)
}

// DeleteItem removes an item. Items still referenced by any line item
// are protected by the RESTRICT foreign keys.
func (s *Store) DeleteItem(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM inventory WHERE item_id = ?", id)
	if err != nil {
		if isForeignKeyError(err) {
			return fmt.Errorf("item %d: %w", id, inventory.ErrReferentialConflict)
		}
		return storeErr("delete item", err)
	}
	return nil
}

// =============================================================================
// CLIENT STORE (inventory.ClientStore interface)
// =============================================================================

// ListClients returns all clients ordered by name.
func (s *Store) ListClients(ctx context.Context) ([]inventory.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT client_id, client_name, email, phone, address, notes, created_date
		FROM clients
		ORDER BY client_name
	`)
	if err != nil {
		return nil, storeErr("list clients", err)
	}
	defer rows.Close()

	var clients []inventory.Client
	for rows.Next() {
		c, err := scanParty(rows)
		if err != nil {
			return nil, storeErr("scan client", err)
		}
		clients = append(clients, inventory.Client(c))
	}
	return clients, rows.Err()
}

// GetClient returns a client by id, or (nil, nil) when absent.
func (s *Store) GetClient(ctx context.Context, id int64) (*inventory.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.getClient(ctx, id)
}

func (s *Store) getClient(ctx context.Context, id int64) (*inventory.Client, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT client_id, client_name, email, phone, address, notes, created_date
		FROM clients
		WHERE client_id = ?
	`, id)

	c, err := scanParty(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("get client", err)
	}
	client := inventory.Client(c)
	return &client, nil
}

// CreateClient validates and inserts a client.
func (s *Store) CreateClient(ctx context.Context, in inventory.NewClient) (*inventory.Client, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO clients (client_name, email, phone, address, notes, created_date)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		in.Name, nullString(in.Email), nullString(in.Phone),
		nullString(in.Address), nullString(in.Notes), now(),
	)
	if err != nil {
		return nil, storeErr("insert client", err)
	}

	id, _ := res.LastInsertId()
	return s.getClient(ctx, id)
}

// UpdateClient validates and updates a client.
func (s *Store) UpdateClient(ctx context.Context, id int64, in inventory.NewClient) (*inventory.Client, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE clients
		SET client_name = ?, email = ?, phone = ?, address = ?, notes = ?
		WHERE client_id = ?
	`,
		in.Name, nullString(in.Email), nullString(in.Phone),
		nullString(in.Address), nullString(in.Notes), id,
	)
	if err != nil {
		return nil, storeErr("update client", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("client %d: %w", id, inventory.ErrNotFound)
	}
	return s.getClient(ctx, id)
}

// DeleteClient removes a client. Clients referenced by sales are
// protected by the RESTRICT foreign key.
func (s *Store) DeleteClient(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM clients WHERE client_id = ?", id)
	if err != nil {
		if isForeignKeyError(err) {
			return fmt.Errorf("client %d: %w", id, inventory.ErrReferentialConflict)
		}
		return storeErr("delete client", err)
	}
	return nil
}

// =============================================================================
// VENDOR STORE (inventory.VendorStore interface)
// =============================================================================

// ListVendors returns all vendors ordered by name.
func (s *Store) ListVendors(ctx context.Context) ([]inventory.Vendor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT vendor_id, vendor_name, email, phone, address, notes, created_date
		FROM vendors
		ORDER BY vendor_name
	`)
	if err != nil {
		return nil, storeErr("list vendors", err)
	}
	defer rows.Close()

	var vendors []inventory.Vendor
	for rows.Next() {
		v, err := scanParty(rows)
		if err != nil {
			return nil, storeErr("scan vendor", err)
		}
		vendors = append(vendors, inventory.Vendor(v))
	}
	return vendors, rows.Err()
}

// GetVendor returns a vendor by id, or (nil, nil) when absent.
func (s *Store) GetVendor(ctx context.Context, id int64) (*inventory.Vendor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.getVendor(ctx, id)
}

func (s *Store) getVendor(ctx context.Context, id int64) (*inventory.Vendor, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT vendor_id, vendor_name, email, phone, address, notes, created_date
		FROM vendors
		WHERE vendor_id = ?
	`, id)

	v, err := scanParty(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("get vendor", err)
	}
	vendor := inventory.Vendor(v)
	return &vendor, nil
}

// CreateVendor validates and inserts a vendor.
func (s *Store) CreateVendor(ctx context.Context, in inventory.NewVendor) (*inventory.Vendor, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO vendors (vendor_name, email, phone, address, notes, created_date)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		in.Name, nullString(in.Email), nullString(in.Phone),
		nullString(in.Address), nullString(in.Notes), now(),
	)
	if err != nil {
		return nil, storeErr("insert vendor", err)
	}

	id, _ := res.LastInsertId()
	return s.getVendor(ctx, id)
}

// UpdateVendor validates and updates a vendor.
func (s *Store) UpdateVendor(ctx context.Context, id int64, in inventory.NewVendor) (*inventory.Vendor, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE vendors
		SET vendor_name = ?, email = ?, phone = ?, address = ?, notes = ?
		WHERE vendor_id = ?
	`,
		in.Name, nullString(in.Email), nullString(in.Phone),
		nullString(in.Address), nullString(in.Notes), id,
	)
	if err != nil {
		return nil, storeErr("update vendor", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("vendor %d: %w", id, inventory.ErrNotFound)
	}
	return s.getVendor(ctx, id)
}

// DeleteVendor removes a vendor. Vendors referenced by supply orders
// are protected by the RESTRICT foreign key.
func (s *Store) DeleteVendor(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM vendors WHERE vendor_id = ?", id)
	if err != nil {
		if isForeignKeyError(err) {
			return fmt.Errorf("vendor %d: %w", id, inventory.ErrReferentialConflict)
		}
		return storeErr("delete vendor", err)
	}
	return nil
}

// =============================================================================
// SALE READER (inventory.SaleReader interface)
// =============================================================================

// ListSales returns the sales_summary view, most recent first.
func (s *Store) ListSales(ctx context.Context) ([]inventory.SaleSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT sale_id, sale_date, client_name, sale_notes
		FROM sales_summary
		ORDER BY sale_date DESC, sale_id DESC
	`)
	if err != nil {
		return nil, storeErr("list sales", err)
	}
	defer rows.Close()

	var sales []inventory.SaleSummary
	for rows.Next() {
		var sum inventory.SaleSummary
		var saleDate string
		var clientName, notes sql.NullString
		if err := rows.Scan(&sum.SaleID, &saleDate, &clientName, &notes); err != nil {
			return nil, storeErr("scan sale summary", err)
		}
		sum.SaleDate, _ = time.Parse(time.RFC3339, saleDate)
		sum.ClientName = clientName.String
		sum.Notes = notes.String
		sales = append(sales, sum)
	}
	return sales, rows.Err()
}

// SaleDetails returns the sale_details view, most recent first.
func (s *Store) SaleDetails(ctx context.Context) ([]inventory.SaleDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT sale_item_id, sale_id, sale_date, client_name, item_name,
		       quantity, unit_price, subtotal, sale_notes, item_notes
		FROM sale_details
		ORDER BY sale_date DESC, sale_item_id DESC
	`)
	if err != nil {
		return nil, storeErr("list sale details", err)
	}
	defer rows.Close()

	var details []inventory.SaleDetail
	for rows.Next() {
		var d inventory.SaleDetail
		var saleDate, unitPrice, subtotal string
		var clientName, saleNotes, itemNotes sql.NullString
		if err := rows.Scan(&d.SaleItemID, &d.SaleID, &saleDate, &clientName, &d.ItemName,
			&d.Quantity, &unitPrice, &subtotal, &saleNotes, &itemNotes); err != nil {
			return nil, storeErr("scan sale detail", err)
		}
		d.SaleDate, _ = time.Parse(time.RFC3339, saleDate)
		d.ClientName = clientName.String
		d.UnitPrice, _ = decimal.NewFromString(unitPrice)
		d.Subtotal, _ = decimal.NewFromString(subtotal)
		d.SaleNotes = saleNotes.String
		d.ItemNotes = itemNotes.String
		details = append(details, d)
	}
	return details, rows.Err()
}

// GetSale returns a sale hydrated with its line items, or (nil, nil)
// when absent.
func (s *Store) GetSale(ctx context.Context, id int64) (*inventory.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sale inventory.Sale
	var clientID sql.NullInt64
	var saleDate string
	var notes sql.NullString

	err := s.db.QueryRowContext(ctx,
		"SELECT sale_id, client_id, sale_date, notes FROM sales WHERE sale_id = ?", id,
	).Scan(&sale.ID, &clientID, &saleDate, &notes)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("get sale", err)
	}

	if clientID.Valid {
		sale.ClientID = &clientID.Int64
	}
	sale.SaleDate, _ = time.Parse(time.RFC3339, saleDate)
	sale.Notes = notes.String

	rows, err := s.db.QueryContext(ctx, `
		SELECT sale_item_id, sale_id, item_id, quantity, unit_price, subtotal, notes
		FROM sale_items
		WHERE sale_id = ?
		ORDER BY sale_item_id
	`, id)
	if err != nil {
		return nil, storeErr("get sale items", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line inventory.SaleLine
		var unitPrice, subtotal string
		var lineNotes sql.NullString
		if err := rows.Scan(&line.ID, &line.SaleID, &line.ItemID, &line.Quantity,
			&unitPrice, &subtotal, &lineNotes); err != nil {
			return nil, storeErr("scan sale item", err)
		}
		line.UnitPrice, _ = decimal.NewFromString(unitPrice)
		line.Subtotal, _ = decimal.NewFromString(subtotal)
		line.Notes = lineNotes.String
		sale.Items = append(sale.Items, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &sale, nil
}

// =============================================================================
// SUPPLY READER (inventory.SupplyReader interface)
// =============================================================================

// ListSupplyOrders returns the supply_order_summary view, most recent first.
func (s *Store) ListSupplyOrders(ctx context.Context) ([]inventory.SupplyOrderSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT supply_order_id, order_date, vendor_name, order_notes
		FROM supply_order_summary
		ORDER BY order_date DESC, supply_order_id DESC
	`)
	if err != nil {
		return nil, storeErr("list supply orders", err)
	}
	defer rows.Close()

	var orders []inventory.SupplyOrderSummary
	for rows.Next() {
		var sum inventory.SupplyOrderSummary
		var orderDate string
		var vendorName, notes sql.NullString
		if err := rows.Scan(&sum.SupplyOrderID, &orderDate, &vendorName, &notes); err != nil {
			return nil, storeErr("scan supply summary", err)
		}
		sum.OrderDate, _ = time.Parse(time.RFC3339, orderDate)
		sum.VendorName = vendorName.String
		sum.Notes = notes.String
		orders = append(orders, sum)
	}
	return orders, rows.Err()
}

// SupplyOrderDetails returns the supply_order_details view, most recent first.
func (s *Store) SupplyOrderDetails(ctx context.Context) ([]inventory.SupplyOrderDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT supply_item_id, supply_order_id, order_date, vendor_name, item_name,
		       quantity, cost_price, subtotal, order_notes, item_notes
		FROM supply_order_details
		ORDER BY order_date DESC, supply_item_id DESC
	`)
	if err != nil {
		return nil, storeErr("list supply details", err)
	}
	defer rows.Close()

	var details []inventory.SupplyOrderDetail
	for rows.Next() {
		var d inventory.SupplyOrderDetail
		var orderDate, costPrice, subtotal string
		var vendorName, orderNotes, itemNotes sql.NullString
		if err := rows.Scan(&d.SupplyItemID, &d.SupplyOrderID, &orderDate, &vendorName, &d.ItemName,
			&d.Quantity, &costPrice, &subtotal, &orderNotes, &itemNotes); err != nil {
			return nil, storeErr("scan supply detail", err)
		}
		d.OrderDate, _ = time.Parse(time.RFC3339, orderDate)
		d.VendorName = vendorName.String
		d.CostPrice, _ = decimal.NewFromString(costPrice)
		d.Subtotal, _ = decimal.NewFromString(subtotal)
		d.OrderNotes = orderNotes.String
		d.ItemNotes = itemNotes.String
		details = append(details, d)
	}
	return details, rows.Err()
}

// GetSupplyOrder returns a supply order hydrated with its line items,
// or (nil, nil) when absent.
func (s *Store) GetSupplyOrder(ctx context.Context, id int64) (*inventory.SupplyOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var order inventory.SupplyOrder
	var vendorID sql.NullInt64
	var orderDate string
	var notes sql.NullString

	err := s.db.QueryRowContext(ctx,
		"SELECT supply_order_id, vendor_id, order_date, notes FROM supply_orders WHERE supply_order_id = ?", id,
	).Scan(&order.ID, &vendorID, &orderDate, &notes)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("get supply order", err)
	}

	if vendorID.Valid {
		order.VendorID = &vendorID.Int64
	}
	order.OrderDate, _ = time.Parse(time.RFC3339, orderDate)
	order.Notes = notes.String

	rows, err := s.db.QueryContext(ctx, `
		SELECT supply_item_id, supply_order_id, item_id, quantity, cost_price, subtotal, notes
		FROM supply_items
		WHERE supply_order_id = ?
		ORDER BY supply_item_id
	`, id)
	if err != nil {
		return nil, storeErr("get supply items", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line inventory.SupplyLine
		var costPrice, subtotal string
		var lineNotes sql.NullString
		if err := rows.Scan(&line.ID, &line.SupplyOrderID, &line.ItemID, &line.Quantity,
			&costPrice, &subtotal, &lineNotes); err != nil {
			return nil, storeErr("scan supply item", err)
		}
		line.CostPrice, _ = decimal.NewFromString(costPrice)
		line.Subtotal, _ = decimal.NewFromString(subtotal)
		line.Notes = lineNotes.String
		order.Items = append(order.Items, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &order, nil
}

// =============================================================================
// LEDGER STORE (inventory.LedgerStore interface)
// =============================================================================

// WithTx executes fn within a database transaction. The LedgerTx passed
// to fn routes every write through the same *sql.Tx; fn returning an
// error rolls everything back.
func (s *Store) WithTx(ctx context.Context, fn func(inventory.LedgerTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storeErr("begin transaction", err)
	}
	defer sqlTx.Rollback()

	if err := fn(&ledgerTx{tx: sqlTx}); err != nil {
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return storeErr("commit transaction", err)
	}
	return nil
}

// DeleteSale removes a sale header. Line items cascade-delete; the
// inventory effect of the sale is not reversed.
func (s *Store) DeleteSale(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM sales WHERE sale_id = ?", id)
	if err != nil {
		return storeErr("delete sale", err)
	}
	return nil
}

// DeleteSupplyOrder removes a supply order header. Line items
// cascade-delete; stock is not adjusted.
func (s *Store) DeleteSupplyOrder(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM supply_orders WHERE supply_order_id = ?", id)
	if err != nil {
		return storeErr("delete supply order", err)
	}
	return nil
}

// ledgerTx binds the ledger write surface to one *sql.Tx.
type ledgerTx struct {
	tx *sql.Tx
}

func (t *ledgerTx) InsertSale(ctx context.Context, clientID *int64, saleDate time.Time, notes string) (int64, error) {
	res, err := t.tx.ExecContext(ctx,
		"INSERT INTO sales (client_id, sale_date, notes) VALUES (?, ?, ?)",
		clientID, saleDate.UTC().Format(time.RFC3339), nullString(notes),
	)
	if err != nil {
		return 0, storeErr("insert sale", err)
	}
	return res.LastInsertId()
}

func (t *ledgerTx) InsertSaleLine(ctx context.Context, line inventory.SaleLine) (int64, error) {
	res, err := t.tx.ExecContext(ctx, `
		INSERT INTO sale_items (sale_id, item_id, quantity, unit_price, notes, subtotal)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		line.SaleID, line.ItemID, line.Quantity,
		line.UnitPrice.String(), nullString(line.Notes), line.Subtotal.String(),
	)
	if err != nil {
		return 0, storeErr("insert sale line", err)
	}
	return res.LastInsertId()
}

func (t *ledgerTx) InsertSupplyOrder(ctx context.Context, vendorID *int64, orderDate time.Time, notes string) (int64, error) {
	res, err := t.tx.ExecContext(ctx,
		"INSERT INTO supply_orders (vendor_id, order_date, notes) VALUES (?, ?, ?)",
		vendorID, orderDate.UTC().Format(time.RFC3339), nullString(notes),
	)
	if err != nil {
		return 0, storeErr("insert supply order", err)
	}
	return res.LastInsertId()
}

func (t *ledgerTx) InsertSupplyLine(ctx context.Context, line inventory.SupplyLine) (int64, error) {
	res, err := t.tx.ExecContext(ctx, `
		INSERT INTO supply_items (supply_order_id, item_id, quantity, cost_price, notes, subtotal)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		line.SupplyOrderID, line.ItemID, line.Quantity,
		line.CostPrice.String(), nullString(line.Notes), line.Subtotal.String(),
	)
	if err != nil {
		return 0, storeErr("insert supply line", err)
	}
	return res.LastInsertId()
}

// AdjustStock shifts an item's quantity by delta within the transaction.
// The stock_non_negative CHECK turns an oversell into a rollback.
func (t *ledgerTx) AdjustStock(ctx context.Context, itemID, delta int64) error {
	res, err := t.tx.ExecContext(ctx,
		"UPDATE inventory SET quantity = quantity + ? WHERE item_id = ?",
		delta, itemID,
	)
	if err != nil {
		if isStockConstraintError(err) {
			return &inventory.StockError{ItemID: itemID, Quantity: -delta}
		}
		return storeErr("adjust stock", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("item %d: %w", itemID, inventory.ErrNotFound)
	}
	return nil
}

// =============================================================================
// REPORTER (inventory.Reporter interface)
// =============================================================================

// InventorySummary values the current stock. Sums are exact decimals
// computed in Go; an empty inventory yields zeros.
func (s *Store) InventorySummary(ctx context.Context) (inventory.InventorySummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sum := inventory.InventorySummary{TotalValue: decimal.Zero}

	rows, err := s.db.QueryContext(ctx, "SELECT quantity, unit_price FROM inventory")
	if err != nil {
		return sum, storeErr("inventory summary", err)
	}
	defer rows.Close()

	for rows.Next() {
		var quantity int64
		var unitPrice string
		if err := rows.Scan(&quantity, &unitPrice); err != nil {
			return sum, storeErr("scan inventory summary", err)
		}
		price, _ := decimal.NewFromString(unitPrice)
		sum.TotalValue = sum.TotalValue.Add(price.Mul(decimal.NewFromInt(quantity)))
		sum.TotalItems += quantity
	}
	if err := rows.Err(); err != nil {
		return sum, err
	}

	err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM low_stock_items").Scan(&sum.LowStockCount)
	if err != nil {
		return sum, storeErr("low stock count", err)
	}
	return sum, nil
}

// TransactionSummary aggregates both ledgers from current table state.
func (s *Store) TransactionSummary(ctx context.Context) (inventory.TransactionSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sum := inventory.TransactionSummary{
		SalesRevenue: decimal.Zero,
		SupplyCost:   decimal.Zero,
	}

	revenue, err := s.sumColumn(ctx, "SELECT subtotal FROM sale_items")
	if err != nil {
		return sum, err
	}
	cost, err := s.sumColumn(ctx, "SELECT subtotal FROM supply_items")
	if err != nil {
		return sum, err
	}
	sum.SalesRevenue = revenue
	sum.SupplyCost = cost
	sum.GrossMargin = revenue.Sub(cost)

	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sales").Scan(&sum.SalesCount); err != nil {
		return sum, storeErr("sales count", err)
	}
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM supply_orders").Scan(&sum.SupplyCount); err != nil {
		return sum, storeErr("supply count", err)
	}
	return sum, nil
}

func (s *Store) sumColumn(ctx context.Context, query string) (decimal.Decimal, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return decimal.Zero, storeErr("sum", err)
	}
	defer rows.Close()

	total := decimal.Zero
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return decimal.Zero, storeErr("scan sum", err)
		}
		d, _ := decimal.NewFromString(value)
		total = total.Add(d)
	}
	return total, rows.Err()
}

// =============================================================================
// SNAPSHOTTER (inventory.Snapshotter interface)
// =============================================================================

// snapshotSources is the fixed export set: every table and view with
// its column order, matching what the dashboard and exporter expect.
var snapshotSources = []struct {
	name    string
	columns []string
	query   string
}{
	{
		"inventory",
		[]string{"item_id", "item_name", "description", "quantity", "unit_price", "reorder_level", "notes", "created_date"},
		"SELECT item_id, item_name, description, quantity, unit_price, reorder_level, notes, created_date FROM inventory ORDER BY item_id",
	},
	{
		"clients",
		[]string{"client_id", "client_name", "email", "phone", "address", "notes", "created_date"},
		"SELECT client_id, client_name, email, phone, address, notes, created_date FROM clients ORDER BY client_id",
	},
	{
		"vendors",
		[]string{"vendor_id", "vendor_name", "email", "phone", "address", "notes", "created_date"},
		"SELECT vendor_id, vendor_name, email, phone, address, notes, created_date FROM vendors ORDER BY vendor_id",
	},
	{
		"sales",
		[]string{"sale_id", "client_id", "sale_date", "notes"},
		"SELECT sale_id, client_id, sale_date, notes FROM sales ORDER BY sale_id",
	},
	{
		"sale_items",
		[]string{"sale_item_id", "sale_id", "item_id", "quantity", "unit_price", "notes", "subtotal"},
		"SELECT sale_item_id, sale_id, item_id, quantity, unit_price, notes, subtotal FROM sale_items ORDER BY sale_item_id",
	},
	{
		"supply_orders",
		[]string{"supply_order_id", "vendor_id", "order_date", "notes"},
		"SELECT supply_order_id, vendor_id, order_date, notes FROM supply_orders ORDER BY supply_order_id",
	},
	{
		"supply_items",
		[]string{"supply_item_id", "supply_order_id", "item_id", "quantity", "cost_price", "notes", "subtotal"},
		"SELECT supply_item_id, supply_order_id, item_id, quantity, cost_price, notes, subtotal FROM supply_items ORDER BY supply_item_id",
	},
	{
		"low_stock_items",
		[]string{"item_id", "item_name", "quantity", "reorder_level", "notes"},
		"SELECT item_id, item_name, quantity, reorder_level, notes FROM low_stock_items ORDER BY quantity ASC, item_id",
	},
	{
		"sales_summary",
		[]string{"sale_id", "sale_date", "client_name", "sale_notes"},
		"SELECT sale_id, sale_date, client_name, sale_notes FROM sales_summary ORDER BY sale_date DESC, sale_id DESC",
	},
	{
		"sale_details",
		[]string{"sale_item_id", "sale_id", "sale_date", "client_name", "item_name", "quantity", "unit_price", "subtotal", "sale_notes", "item_notes"},
		"SELECT sale_item_id, sale_id, sale_date, client_name, item_name, quantity, unit_price, subtotal, sale_notes, item_notes FROM sale_details ORDER BY sale_date DESC, sale_item_id DESC",
	},
	{
		"supply_order_summary",
		[]string{"supply_order_id", "order_date", "vendor_name", "order_notes"},
		"SELECT supply_order_id, order_date, vendor_name, order_notes FROM supply_order_summary ORDER BY order_date DESC, supply_order_id DESC",
	},
	{
		"supply_order_details",
		[]string{"supply_item_id", "supply_order_id", "order_date", "vendor_name", "item_name", "quantity", "cost_price", "subtotal", "order_notes", "item_notes"},
		"SELECT supply_item_id, supply_order_id, order_date, vendor_name, item_name, quantity, cost_price, subtotal, order_notes, item_notes FROM supply_order_details ORDER BY order_date DESC, supply_item_id DESC",
	},
}

// Snapshot fetches every export source inside one transaction so the
// result is point-in-time consistent across tables.
func (s *Store) Snapshot(ctx context.Context) ([]inventory.SnapshotTable, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, storeErr("begin snapshot", err)
	}
	defer tx.Rollback()

	tables := make([]inventory.SnapshotTable, 0, len(snapshotSources))
	for _, src := range snapshotSources {
		rows, err := tx.QueryContext(ctx, src.query)
		if err != nil {
			return nil, storeErr("snapshot "+src.name, err)
		}

		table := inventory.SnapshotTable{Name: src.name, Columns: src.columns}
		for rows.Next() {
			values := make([]any, len(src.columns))
			ptrs := make([]any, len(values))
			for i := range values {
				ptrs[i] = &values[i]
			}
			if err := rows.Scan(ptrs...); err != nil {
				rows.Close()
				return nil, storeErr("scan snapshot "+src.name, err)
			}
			for i, v := range values {
				if b, ok := v.([]byte); ok {
					values[i] = string(b)
				}
			}
			table.Rows = append(table.Rows, values)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
		tables = append(tables, table)
	}

	return tables, tx.Commit()
}

// =============================================================================
// SCAN HELPERS
// =============================================================================

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(row scanner) (inventory.Item, error) {
	var item inventory.Item
	var description, notes sql.NullString
	var unitPrice, createdDate string

	err := row.Scan(&item.ID, &item.Name, &description, &item.Quantity,
		&unitPrice, &item.ReorderLevel, &notes, &createdDate)
	if err != nil {
		return item, err
	}

	item.Description = description.String
	item.Notes = notes.String
	item.UnitPrice, _ = decimal.NewFromString(unitPrice)
	item.CreatedDate, _ = time.Parse(time.RFC3339, createdDate)
	return item, nil
}

// party is the shared shape of clients and vendors.
type party struct {
	ID          int64
	Name        string
	Email       string
	Phone       string
	Address     string
	Notes       string
	CreatedDate time.Time
}

func scanParty(row scanner) (party, error) {
	var p party
	var email, phone, address, notes sql.NullString
	var createdDate string

	err := row.Scan(&p.ID, &p.Name, &email, &phone, &address, &notes, &createdDate)
	if err != nil {
		return p, err
	}

	p.Email = email.String
	p.Phone = phone.String
	p.Address = address.String
	p.Notes = notes.String
	p.CreatedDate, _ = time.Parse(time.RFC3339, createdDate)
	return p, nil
}

// =============================================================================
// UTILITIES
// =============================================================================

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", inventory.ErrPersistence, op, err)
}

func isStockConstraintError(err error) bool {
	return err != nil &&
		strings.Contains(err.Error(), "CHECK constraint failed") &&
		strings.Contains(err.Error(), "stock_non_negative")
}

func isForeignKeyError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

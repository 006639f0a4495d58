package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockline/inventory-engine/inventory"
	"github.com/stockline/inventory-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func i64(v int64) *int64 { return &v }

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func createItem(t *testing.T, store *sqlite.Store, name string, qty int64, price string) *inventory.Item {
	t.Helper()
	item, err := store.CreateItem(context.Background(), inventory.NewItem{
		Name:      name,
		Quantity:  i64(qty),
		UnitPrice: dec(price),
	})
	require.NoError(t, err)
	return item
}

// recordSale writes a one-line sale directly through the ledger surface.
func recordSale(t *testing.T, store *sqlite.Store, clientID *int64, itemID, qty int64, price string) int64 {
	t.Helper()
	var saleID int64
	err := store.WithTx(context.Background(), func(tx inventory.LedgerTx) error {
		id, err := tx.InsertSale(context.Background(), clientID, time.Now().UTC(), "")
		if err != nil {
			return err
		}
		unitPrice := dec(price)
		_, err = tx.InsertSaleLine(context.Background(), inventory.SaleLine{
			SaleID:    id,
			ItemID:    itemID,
			Quantity:  qty,
			UnitPrice: unitPrice,
			Subtotal:  unitPrice.Mul(decimal.NewFromInt(qty)),
		})
		if err != nil {
			return err
		}
		if err := tx.AdjustStock(context.Background(), itemID, -qty); err != nil {
			return err
		}
		saleID = id
		return nil
	})
	require.NoError(t, err)
	return saleID
}

// =============================================================================
// ITEM CRUD
// =============================================================================

func TestStore_CreateItem_AppliesDefaults(t *testing.T) {
	// GIVEN: A new item with no quantity or reorder level
	// WHEN: Creating it
	// THEN: Quantity defaults to 0 and reorder level to 10

	store := newTestStore(t)

	item, err := store.CreateItem(context.Background(), inventory.NewItem{
		Name:      "Widget",
		UnitPrice: dec("9.99"),
	})
	require.NoError(t, err)

	assert.NotZero(t, item.ID)
	assert.Equal(t, int64(0), item.Quantity)
	assert.Equal(t, inventory.DefaultReorderLevel, item.ReorderLevel)
	assert.True(t, item.UnitPrice.Equal(dec("9.99")))
	assert.False(t, item.CreatedDate.IsZero())
}

func TestStore_CreateItem_InvalidInput_Rejected(t *testing.T) {
	store := newTestStore(t)

	_, err := store.CreateItem(context.Background(), inventory.NewItem{UnitPrice: dec("1")})
	assert.ErrorIs(t, err, inventory.ErrValidation)

	items, err := store.ListItems(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestStore_GetItem_Missing_ReturnsNil(t *testing.T) {
	store := newTestStore(t)

	item, err := store.GetItem(context.Background(), 42)
	assert.NoError(t, err)
	assert.Nil(t, item)
}

func TestStore_UpdateItem_NeverTouchesQuantity(t *testing.T) {
	// GIVEN: An item with 7 in stock
	// WHEN: Updating its name, price and reorder level
	// THEN: Every descriptive field changes but the quantity does not

	store := newTestStore(t)
	item := createItem(t, store, "Widget", 7, "10")

	updated, err := store.UpdateItem(context.Background(), item.ID, inventory.UpdateItem{
		Name:         "Widget Pro",
		Description:  "upgraded",
		UnitPrice:    dec("12.50"),
		ReorderLevel: i64(5),
		Notes:        "renamed",
	})
	require.NoError(t, err)

	assert.Equal(t, "Widget Pro", updated.Name)
	assert.True(t, updated.UnitPrice.Equal(dec("12.50")))
	assert.Equal(t, int64(5), updated.ReorderLevel)
	assert.Equal(t, int64(7), updated.Quantity, "update must not move stock")
}

func TestStore_UpdateItem_Missing_ReturnsNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.UpdateItem(context.Background(), 42, inventory.UpdateItem{
		Name:      "Ghost",
		UnitPrice: dec("1"),
	})
	assert.ErrorIs(t, err, inventory.ErrNotFound)
}

func TestStore_DeleteItem_ReferencedBySale_Conflicts(t *testing.T) {
	// GIVEN: An item referenced by a sale line
	// WHEN: Deleting the item
	// THEN: The delete is rejected with ErrReferentialConflict

	store := newTestStore(t)
	item := createItem(t, store, "Widget", 10, "10")
	recordSale(t, store, nil, item.ID, 2, "10")

	err := store.DeleteItem(context.Background(), item.ID)
	assert.ErrorIs(t, err, inventory.ErrReferentialConflict)

	still, err := store.GetItem(context.Background(), item.ID)
	require.NoError(t, err)
	require.NotNil(t, still)
}

func TestStore_DeleteItem_Unreferenced_Succeeds(t *testing.T) {
	store := newTestStore(t)
	item := createItem(t, store, "Widget", 10, "10")

	require.NoError(t, store.DeleteItem(context.Background(), item.ID))

	gone, err := store.GetItem(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

// =============================================================================
// CLIENT / VENDOR CRUD
// =============================================================================

func TestStore_ClientLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	client, err := store.CreateClient(ctx, inventory.NewClient{
		Name:  "Acme Corp",
		Email: "orders@acme.test",
	})
	require.NoError(t, err)
	assert.NotZero(t, client.ID)

	updated, err := store.UpdateClient(ctx, client.ID, inventory.NewClient{
		Name:  "Acme Corporation",
		Phone: "555-0100",
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Corporation", updated.Name)
	assert.Equal(t, "555-0100", updated.Phone)

	require.NoError(t, store.DeleteClient(ctx, client.ID))

	gone, err := store.GetClient(ctx, client.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestStore_CreateClient_MissingName_Rejected(t *testing.T) {
	store := newTestStore(t)

	_, err := store.CreateClient(context.Background(), inventory.NewClient{Email: "x@y.test"})
	assert.ErrorIs(t, err, inventory.ErrValidation)
}

func TestStore_DeleteClient_WithSales_Conflicts(t *testing.T) {
	// GIVEN: A client with a recorded sale
	// WHEN: Deleting the client
	// THEN: RESTRICT blocks the delete and history stays readable

	store := newTestStore(t)
	ctx := context.Background()

	client, err := store.CreateClient(ctx, inventory.NewClient{Name: "Acme"})
	require.NoError(t, err)
	item := createItem(t, store, "Widget", 10, "10")
	recordSale(t, store, &client.ID, item.ID, 1, "10")

	err = store.DeleteClient(ctx, client.ID)
	assert.ErrorIs(t, err, inventory.ErrReferentialConflict)

	summaries, err := store.ListSales(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Acme", summaries[0].ClientName)
}

func TestStore_VendorLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	vendor, err := store.CreateVendor(ctx, inventory.NewVendor{Name: "SupplyCo"})
	require.NoError(t, err)

	updated, err := store.UpdateVendor(ctx, vendor.ID, inventory.NewVendor{
		Name:    "SupplyCo Ltd",
		Address: "1 Dock Rd",
	})
	require.NoError(t, err)
	assert.Equal(t, "SupplyCo Ltd", updated.Name)

	require.NoError(t, store.DeleteVendor(ctx, vendor.ID))
}

// =============================================================================
// LEDGER TRANSACTION SURFACE
// =============================================================================

func TestStore_WithTx_RollbackOnError(t *testing.T) {
	// GIVEN: A transaction that inserts a sale then fails
	// WHEN: The callback returns an error
	// THEN: Nothing it wrote survives

	store := newTestStore(t)
	ctx := context.Background()

	boom := assert.AnError
	err := store.WithTx(ctx, func(tx inventory.LedgerTx) error {
		if _, err := tx.InsertSale(ctx, nil, time.Now().UTC(), "doomed"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	sales, err := store.ListSales(ctx)
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestStore_AdjustStock_BelowZero_StockError(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	item := createItem(t, store, "Widget", 2, "10")

	err := store.WithTx(ctx, func(tx inventory.LedgerTx) error {
		return tx.AdjustStock(ctx, item.ID, -3)
	})
	assert.ErrorIs(t, err, inventory.ErrInsufficientStock)

	var stockErr *inventory.StockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, item.ID, stockErr.ItemID)
	assert.Equal(t, int64(3), stockErr.Quantity)
}

func TestStore_AdjustStock_UnknownItem_NotFound(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.WithTx(ctx, func(tx inventory.LedgerTx) error {
		return tx.AdjustStock(ctx, 999, 1)
	})
	assert.ErrorIs(t, err, inventory.ErrNotFound)
}

func TestStore_DeleteSale_CascadesLines(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	item := createItem(t, store, "Widget", 10, "10")
	saleID := recordSale(t, store, nil, item.ID, 2, "10")

	require.NoError(t, store.DeleteSale(ctx, saleID))

	details, err := store.SaleDetails(ctx)
	require.NoError(t, err)
	assert.Empty(t, details)
}

func TestStore_DeleteSale_Missing_NoError(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.DeleteSale(context.Background(), 12345))
}

// =============================================================================
// VIEWS
// =============================================================================

func TestStore_LowStockItems_InclusiveThreshold(t *testing.T) {
	// GIVEN: Items below, at, and above their reorder level
	// WHEN: Listing low stock
	// THEN: "at" counts as low (inclusive threshold), "above" does not

	store := newTestStore(t)
	ctx := context.Background()

	below, err := store.CreateItem(ctx, inventory.NewItem{
		Name: "Below", Quantity: i64(1), UnitPrice: dec("1"), ReorderLevel: i64(5),
	})
	require.NoError(t, err)
	at, err := store.CreateItem(ctx, inventory.NewItem{
		Name: "At", Quantity: i64(5), UnitPrice: dec("1"), ReorderLevel: i64(5),
	})
	require.NoError(t, err)
	_, err = store.CreateItem(ctx, inventory.NewItem{
		Name: "Above", Quantity: i64(6), UnitPrice: dec("1"), ReorderLevel: i64(5),
	})
	require.NoError(t, err)

	rows, err := store.LowStockItems(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Ordered by quantity ascending.
	assert.Equal(t, below.ID, rows[0].ItemID)
	assert.Equal(t, at.ID, rows[1].ItemID)
}

func TestStore_ListSales_WalkIn_EmptyClientName(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	item := createItem(t, store, "Widget", 10, "10")
	recordSale(t, store, nil, item.ID, 1, "10")

	summaries, err := store.ListSales(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Empty(t, summaries[0].ClientName, "walk-in sales have no client")
}

func TestStore_SaleDetails_JoinsItemAndClient(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	client, err := store.CreateClient(ctx, inventory.NewClient{Name: "Acme"})
	require.NoError(t, err)
	item := createItem(t, store, "Widget", 10, "2.50")
	recordSale(t, store, &client.ID, item.ID, 4, "2.50")

	details, err := store.SaleDetails(ctx)
	require.NoError(t, err)
	require.Len(t, details, 1)

	d := details[0]
	assert.Equal(t, "Acme", d.ClientName)
	assert.Equal(t, "Widget", d.ItemName)
	assert.Equal(t, int64(4), d.Quantity)
	assert.True(t, d.Subtotal.Equal(dec("10")))
}

// =============================================================================
// REPORTS
// =============================================================================

func TestStore_InventorySummary_Empty_AllZero(t *testing.T) {
	store := newTestStore(t)

	sum, err := store.InventorySummary(context.Background())
	require.NoError(t, err)
	assert.True(t, sum.TotalValue.IsZero())
	assert.Equal(t, int64(0), sum.TotalItems)
	assert.Equal(t, int64(0), sum.LowStockCount)
}

func TestStore_InventorySummary_ValuesStock(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// 3 x 2.50 + 10 x 1.25 = 20.00
	_, err := store.CreateItem(ctx, inventory.NewItem{
		Name: "A", Quantity: i64(3), UnitPrice: dec("2.50"), ReorderLevel: i64(1),
	})
	require.NoError(t, err)
	_, err = store.CreateItem(ctx, inventory.NewItem{
		Name: "B", Quantity: i64(10), UnitPrice: dec("1.25"), ReorderLevel: i64(1),
	})
	require.NoError(t, err)

	sum, err := store.InventorySummary(ctx)
	require.NoError(t, err)
	assert.True(t, sum.TotalValue.Equal(dec("20")), "total %s", sum.TotalValue)
	assert.Equal(t, int64(13), sum.TotalItems)
}

func TestStore_TransactionSummary_Empty_AllZero(t *testing.T) {
	store := newTestStore(t)

	sum, err := store.TransactionSummary(context.Background())
	require.NoError(t, err)
	assert.True(t, sum.SalesRevenue.IsZero())
	assert.True(t, sum.SupplyCost.IsZero())
	assert.True(t, sum.GrossMargin.IsZero())
	assert.Equal(t, int64(0), sum.SalesCount)
	assert.Equal(t, int64(0), sum.SupplyCount)
}

// =============================================================================
// SNAPSHOT
// =============================================================================

func TestStore_Snapshot_FixedSourceSet(t *testing.T) {
	// The export set is a fixed ordered list of tables then views.
	store := newTestStore(t)

	tables, err := store.Snapshot(context.Background())
	require.NoError(t, err)

	names := make([]string, len(tables))
	for i, tab := range tables {
		names[i] = tab.Name
	}
	assert.Equal(t, []string{
		"inventory", "clients", "vendors",
		"sales", "sale_items", "supply_orders", "supply_items",
		"low_stock_items", "sales_summary", "sale_details",
		"supply_order_summary", "supply_order_details",
	}, names)
}

func TestStore_Snapshot_CarriesRows(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	item := createItem(t, store, "Widget", 10, "2.50")
	recordSale(t, store, nil, item.ID, 2, "2.50")

	tables, err := store.Snapshot(ctx)
	require.NoError(t, err)

	byName := make(map[string]inventory.SnapshotTable, len(tables))
	for _, tab := range tables {
		byName[tab.Name] = tab
	}

	inv := byName["inventory"]
	require.Len(t, inv.Rows, 1)
	assert.Equal(t, int64(8), int64(len(inv.Columns)))
	assert.Equal(t, "Widget", inv.Rows[0][1])
	assert.Equal(t, int64(8), inv.Rows[0][3], "quantity after the sale")
	assert.Equal(t, "2.50", inv.Rows[0][4], "decimal text preserved")

	require.Len(t, byName["sales"].Rows, 1)
	require.Len(t, byName["sale_items"].Rows, 1)
	require.Len(t, byName["sale_details"].Rows, 1)
	assert.Empty(t, byName["supply_orders"].Rows)
}

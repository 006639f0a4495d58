/*
reports.go - Read-side aggregation contract

Summaries are recomputed from current table state on every call; there
is no cache to invalidate. Two reads with no intervening writes return
identical results. All sums are zero decimals when no rows exist,
never null.
*/
package inventory

import "context"

// Reporter computes the derived summaries.
type Reporter interface {
	// InventorySummary values the current stock: total_value is the sum
	// of quantity x unit_price, total_items the sum of quantities,
	// low_stock_count the number of items at or below reorder level.
	InventorySummary(ctx context.Context) (InventorySummary, error)

	// TransactionSummary aggregates both ledgers: revenue and count from
	// sales, cost and count from supply orders, and the gross margin.
	TransactionSummary(ctx context.Context) (TransactionSummary, error)
}

/*
ledger.go - The transactional core: recording sales and supply orders

PURPOSE:
  The Ledger is the only component allowed to change stock levels. It
  records a transaction (header + line items) and the correlated
  inventory adjustment atomically: all lines apply or none do.

RECORD FLOW (RecordSale):
  1. Validate input. Empty line-item lists, non-positive quantities and
     negative prices are rejected BEFORE any transaction is opened.
  2. Open one store transaction.
  3. Insert the sale header (id and timestamp assigned here).
  4. For each line item, in caller order: insert the line with its
     stored subtotal, then decrement the item's quantity.
  5. Any failure rolls back the whole transaction. Insufficient stock
     surfaces as ErrInsufficientStock, everything else as the store's
     error (ErrPersistence for unclassified failures).
  6. On success, return the sale re-read from storage.

ORDERING POLICY:
  Line items are applied exactly in the order supplied. Repeated item
  ids are NOT deduplicated; each occurrence is applied independently
  and their decrements accumulate within the same transaction.

DELETION POLICY:
  DeleteSale / DeleteSupplyOrder remove the header (line items cascade)
  but do NOT reverse the inventory adjustment. Deleting history does
  not restock. This is deliberate, not an oversight.

SEE ALSO:
  - store.go: LedgerStore / LedgerTx contracts
  - store/sqlite/sqlite.go: WithTx implementation and error mapping
*/
package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Ledger records sales and supply orders atomically against a LedgerStore.
type Ledger struct {
	store LedgerStore
}

// NewLedger creates a ledger over the given store.
func NewLedger(store LedgerStore) *Ledger {
	return &Ledger{store: store}
}

// RecordSale writes a sale header, its line items and the matching stock
// decrements in one transaction. Returns the hydrated sale on success.
func (l *Ledger) RecordSale(ctx context.Context, req NewSale) (*Sale, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var saleID int64
	err := l.store.WithTx(ctx, func(tx LedgerTx) error {
		id, err := tx.InsertSale(ctx, req.ClientID, time.Now().UTC(), req.Notes)
		if err != nil {
			return err
		}

		for _, li := range req.Items {
			line := SaleLine{
				SaleID:    id,
				ItemID:    li.ItemID,
				Quantity:  li.Quantity,
				UnitPrice: li.UnitPrice,
				Subtotal:  li.UnitPrice.Mul(decimal.NewFromInt(li.Quantity)),
				Notes:     li.Notes,
			}
			if _, err := tx.InsertSaleLine(ctx, line); err != nil {
				return err
			}
			if err := tx.AdjustStock(ctx, li.ItemID, -li.Quantity); err != nil {
				return err
			}
		}

		saleID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	return l.store.GetSale(ctx, saleID)
}

// RecordSupplyOrder is the structural mirror of RecordSale: it increments
// inventory per line item and has no stock floor to hit.
func (l *Ledger) RecordSupplyOrder(ctx context.Context, req NewSupplyOrder) (*SupplyOrder, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var orderID int64
	err := l.store.WithTx(ctx, func(tx LedgerTx) error {
		id, err := tx.InsertSupplyOrder(ctx, req.VendorID, time.Now().UTC(), req.Notes)
		if err != nil {
			return err
		}

		for _, li := range req.Items {
			line := SupplyLine{
				SupplyOrderID: id,
				ItemID:        li.ItemID,
				Quantity:      li.Quantity,
				CostPrice:     li.CostPrice,
				Subtotal:      li.CostPrice.Mul(decimal.NewFromInt(li.Quantity)),
				Notes:         li.Notes,
			}
			if _, err := tx.InsertSupplyLine(ctx, line); err != nil {
				return err
			}
			if err := tx.AdjustStock(ctx, li.ItemID, li.Quantity); err != nil {
				return err
			}
		}

		orderID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	return l.store.GetSupplyOrder(ctx, orderID)
}

// DeleteSale removes a sale header; its line items cascade-delete.
// Stock is not restocked.
func (l *Ledger) DeleteSale(ctx context.Context, id int64) error {
	return l.store.DeleteSale(ctx, id)
}

// DeleteSupplyOrder removes a supply order header; its line items
// cascade-delete. Stock is not de-stocked.
func (l *Ledger) DeleteSupplyOrder(ctx context.Context, id int64) error {
	return l.store.DeleteSupplyOrder(ctx, id)
}

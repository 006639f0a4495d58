/*
errors.go - Centralized error types for the inventory core

PURPOSE:
  All error kinds surfaced by the core in one place. The store and
  ledger wrap these sentinels; callers classify with errors.Is/As.

ERROR KINDS:
  ErrValidation          Caller input fails a precondition. Raised before
                         any transaction is opened, never partially applied.
  ErrNotFound            Lookup by id found no row.
  ErrReferentialConflict Delete blocked by a foreign-key relationship.
  ErrInsufficientStock   A sale would drive an item's quantity negative.
                         Raised only from RecordSale, always with full rollback.
  ErrPersistence         Any other storage-layer failure.

USAGE:
  if errors.Is(err, inventory.ErrInsufficientStock) { ... }

  var verr *inventory.ValidationError
  if errors.As(err, &verr) { log(verr.Field) }

SEE ALSO:
  - ledger.go: Raises validation and stock errors
  - store/sqlite: Maps SQLite constraint violations onto these kinds
*/
package inventory

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrValidation is returned when caller input fails a precondition.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when a lookup by id finds no row.
	ErrNotFound = errors.New("not found")

	// ErrReferentialConflict is returned when a delete is blocked by a
	// foreign-key relationship (e.g. an item still referenced by line items).
	ErrReferentialConflict = errors.New("referenced by other records")

	// ErrInsufficientStock is returned when a sale's line items would drive
	// an item's quantity below zero. The whole sale is rolled back.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrPersistence is returned for storage failures that match no more
	// specific kind.
	ErrPersistence = errors.New("persistence failure")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ValidationError identifies the offending field of an invalid input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// StockError reports which item could not cover the requested quantity.
// ItemID is zero when the store cannot attribute the violation to a
// single line (the constraint fires inside the transaction).
type StockError struct {
	ItemID   int64
	Quantity int64
}

func (e *StockError) Error() string {
	if e.ItemID == 0 {
		return "insufficient stock for one or more items"
	}
	return fmt.Sprintf("insufficient stock: item %d cannot cover quantity %d", e.ItemID, e.Quantity)
}

func (e *StockError) Unwrap() error {
	return ErrInsufficientStock
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input
// rather than a storage failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInsufficientStock)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

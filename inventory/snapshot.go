/*
snapshot.go - Point-in-time export contract

The export collaborator (spreadsheet rendering, backups) consumes a
fixed named list of tables and views, each with its column order and
all current rows. The whole set is fetched inside one read transaction
so the snapshot is consistent across tables. How the result is rendered
is not this package's concern.
*/
package inventory

import "context"

// SnapshotTable is one exported table or view: its name, column order
// and all rows at the time of the snapshot. Row values are plain Go
// scalars (string, int64, nil) ready for rendering.
type SnapshotTable struct {
	Name    string
	Columns []string
	Rows    [][]any
}

// Snapshotter fetches the full export set in one read transaction.
type Snapshotter interface {
	Snapshot(ctx context.Context) ([]SnapshotTable, error)
}

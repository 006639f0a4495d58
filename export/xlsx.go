/*
xlsx.go - XLSX workbook rendering for database snapshots

PURPOSE:
  Turns a database snapshot (one SnapshotTable per table or view) into
  an Excel workbook, one sheet per table with a header row.

FORMAT NOTES:
  - Sheet names come from SnapshotTable.Name and are already short
    enough for Excel's 31-character limit.
  - Row values are written as-is; excelize picks cell types from the
    Go types (strings stay strings, so decimal text is preserved
    exactly).
  - The default "Sheet1" is removed after the real sheets exist.

SEE ALSO:
  - inventory/snapshot.go: SnapshotTable shape
  - store/sqlite/sqlite.go: Snapshot source ordering
*/
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/stockline/inventory-engine/inventory"
)

// WriteWorkbook renders the snapshot tables as an XLSX workbook and
// writes it to w. Sheets appear in the order given.
func WriteWorkbook(w io.Writer, tables []inventory.SnapshotTable) error {
	f := excelize.NewFile()
	defer f.Close()

	for _, t := range tables {
		if _, err := f.NewSheet(t.Name); err != nil {
			return fmt.Errorf("create sheet %s: %w", t.Name, err)
		}
		if err := writeSheet(f, t); err != nil {
			return err
		}
	}

	// Drop the default sheet so the workbook starts on the first table.
	if len(tables) > 0 {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return fmt.Errorf("delete default sheet: %w", err)
		}
		idx, err := f.GetSheetIndex(tables[0].Name)
		if err == nil && idx >= 0 {
			f.SetActiveSheet(idx)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// writeSheet writes the header row then one row per record.
func writeSheet(f *excelize.File, t inventory.SnapshotTable) error {
	for col, name := range t.Columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("sheet %s header: %w", t.Name, err)
		}
		if err := f.SetCellValue(t.Name, cell, name); err != nil {
			return fmt.Errorf("sheet %s header: %w", t.Name, err)
		}
	}

	for row, record := range t.Rows {
		for col, value := range record {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return fmt.Errorf("sheet %s row %d: %w", t.Name, row+1, err)
			}
			if err := f.SetCellValue(t.Name, cell, value); err != nil {
				return fmt.Errorf("sheet %s row %d: %w", t.Name, row+1, err)
			}
		}
	}
	return nil
}

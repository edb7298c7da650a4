/*
PURPOSE:
  Writes all tables of a batch into one workbook.

REQUIREMENTS:
  User-specified:
  - One sheet per run and table.

  Implementation-discovered:
  - Sheet names are limited to 31 characters; collisions get a ~N suffix.

ARCHITECTURE INTEGRATION:
  - Called by: internal/output.Set
  - Dependencies: github.com/tealeg/xlsx

ERROR HANDLING:
  - Returns error if a sheet cannot be added or the workbook cannot be saved.

IMPLEMENTATION RULES:
  - Truncate names by rune, never by byte.
  - Thread-safe.

USAGE:
  w := output.NewXLSXWriter("hydro_results.xlsx")
  w.WriteTable(root, t)
  w.Close()

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/output/set.go

MAINTENANCE:
  - None.
*/

package output

import (
	"fmt"
	"sync"

	"github.com/tealeg/xlsx"

	"github.com/daryltucker/hydro-runner/internal/model"
)

// maxSheetName is the longest sheet name spreadsheet applications accept.
const maxSheetName = 31

// XLSXWriter collects tables into one workbook, one sheet per run and
// table. The workbook is written on Close.
type XLSXWriter struct {
	path string
	file *xlsx.File
	mu   sync.Mutex
}

// NewXLSXWriter creates a writer for the workbook at path.
func NewXLSXWriter(path string) *XLSXWriter {
	return &XLSXWriter{path: path, file: xlsx.NewFile()}
}

// SheetName returns the sheet name for a table of run root, cut to
// maxSheetName characters.
func SheetName(root, table string) string {
	return truncate(root+"_"+table, maxSheetName)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// uniqueSheetName returns SheetName(root, table), or a variant ending in
// "~N" when a sheet of that name already exists.
func (xw *XLSXWriter) uniqueSheetName(root, table string) string {
	name := SheetName(root, table)
	for i := 2; ; i++ {
		if _, taken := xw.file.Sheet[name]; !taken {
			return name
		}
		suffix := fmt.Sprintf("~%d", i)
		name = truncate(root+"_"+table, maxSheetName-len(suffix)) + suffix
	}
}

// WriteTable adds t as a new sheet.
func (xw *XLSXWriter) WriteTable(root string, t *model.Table) error {
	xw.mu.Lock()
	defer xw.mu.Unlock()

	sheet, err := xw.file.AddSheet(xw.uniqueSheetName(root, t.Name))
	if err != nil {
		return fmt.Errorf("output: adding sheet for %s/%s: %w", root, t.Name, err)
	}
	header := sheet.AddRow()
	for _, c := range t.Columns {
		header.AddCell().SetString(c)
	}
	for i := 0; i < t.Len(); i++ {
		row := sheet.AddRow()
		for _, v := range t.Row(i) {
			row.AddCell().SetFloat(v)
		}
	}
	return nil
}

// Close saves the workbook. A workbook without sheets is not written.
func (xw *XLSXWriter) Close() error {
	xw.mu.Lock()
	defer xw.mu.Unlock()

	if len(xw.file.Sheets) == 0 {
		return nil
	}
	return xw.file.Save(xw.path)
}

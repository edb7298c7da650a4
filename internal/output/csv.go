/*
PURPOSE:
  Writes decoded result tables to CSV files, one file per run and table.

REQUIREMENTS:
  User-specified:
  - Output to CSV.
  - File name identifies the run: <root>_<table>.csv.

  Implementation-discovered:
  - Re-running a case overwrites its previous CSV.
  - Shortest round-trip float formatting keeps the engine's precision.

ARCHITECTURE INTEGRATION:
  - Called by: internal/output.Set
  - Consumes: internal/model.Table

ERROR HANDLING:
  - Returns error on file creation or write failure.

IMPLEMENTATION RULES:
  - Use encoding/csv.
  - Header row is the table's column names.

USAGE:
  w := output.NewCSVWriter("./results")
  path, err := w.WriteTable("test", table)

SELF-HEALING INSTRUCTIONS:
  - If CSV format changes, update header and record conversion.

RELATED FILES:
  - internal/model/table.go

MAINTENANCE:
  - None.
*/

package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/daryltucker/hydro-runner/internal/model"
)

// CSVWriter writes tables into a directory.
type CSVWriter struct {
	Dir string
}

// NewCSVWriter creates a new CSVWriter.
func NewCSVWriter(dir string) *CSVWriter {
	return &CSVWriter{Dir: dir}
}

// CSVName returns the file name used for a table of run root.
func CSVName(root, table string) string {
	return fmt.Sprintf("%s_%s.csv", root, table)
}

// WriteTable writes t to <Dir>/<root>_<table>.csv, overwriting any
// previous file, and returns the path.
func (cw *CSVWriter) WriteTable(root string, t *model.Table) (string, error) {
	path := filepath.Join(cw.Dir, CSVName(root, t.Name))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		f.Close()
		return "", err
	}
	record := make([]string, len(t.Columns))
	for i := 0; i < t.Len(); i++ {
		for j, v := range t.Row(i) {
			record[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := w.Write(record); err != nil {
			f.Close()
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}

/*
PURPOSE:
  Fans decoded tables and run records out to the selected writers.

REQUIREMENTS:
  User-specified:
  - Formats are chosen by name (csv, json, xlsx).

  Implementation-discovered:
  - Writer errors are joined so every failing format is reported.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine, internal/cli (decode)

ERROR HANDLING:
  - Unknown formats fail Open; write errors are returned to the runner.

IMPLEMENTATION RULES:
  - Close must be called once to flush JSON and save the workbook.

USAGE:
  s, err := output.Open(dir, "hydro_results", cfg.Formats)
  defer s.Close()

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/output/csv.go
  - internal/output/json.go
  - internal/output/xlsx.go

MAINTENANCE:
  - Register new formats in Open and Formats.
*/

package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/daryltucker/hydro-runner/internal/model"
)

// Formats lists the supported output formats.
var Formats = []string{"csv", "json", "xlsx"}

// Set fans decoded tables and run records out to the selected writers.
type Set struct {
	csv  *CSVWriter
	json *JSONWriter
	xlsx *XLSXWriter
}

// Open creates dir and the writers named in formats. JSON records go to
// <dir>/<file>.jsonl and the workbook to <dir>/<file>.xlsx.
func Open(dir, file string, formats []string) (*Set, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	s := &Set{}
	for _, f := range formats {
		switch f {
		case "csv":
			s.csv = NewCSVWriter(dir)
		case "json":
			if s.json != nil {
				continue
			}
			path := filepath.Join(dir, file+".jsonl")
			w, err := NewJSONWriter(path)
			if err != nil {
				s.Close()
				return nil, fmt.Errorf("failed to init JSON writer at %s: %w", path, err)
			}
			s.json = w
		case "xlsx":
			s.xlsx = NewXLSXWriter(filepath.Join(dir, file+".xlsx"))
		default:
			s.Close()
			return nil, fmt.Errorf("unknown output format %q (known: %v)", f, Formats)
		}
	}
	return s, nil
}

// WriteTable hands t to the table writers.
func (s *Set) WriteTable(root string, t *model.Table) error {
	var errs []error
	if s.csv != nil {
		path, err := s.csv.WriteTable(root, t)
		if err != nil {
			errs = append(errs, err)
		} else {
			Logger.Debug("Wrote CSV", "path", path)
		}
	}
	if s.xlsx != nil {
		errs = append(errs, s.xlsx.WriteTable(root, t))
	}
	return errors.Join(errs...)
}

// WriteRecord hands r to the record writers.
func (s *Set) WriteRecord(r model.RunRecord) error {
	if s.json == nil {
		return nil
	}
	return s.json.Write(r)
}

// Close flushes and closes every writer.
func (s *Set) Close() error {
	var errs []error
	if s.json != nil {
		errs = append(errs, s.json.Close())
	}
	if s.xlsx != nil {
		errs = append(errs, s.xlsx.Close())
	}
	return errors.Join(errs...)
}

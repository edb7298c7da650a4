/*
PURPOSE:
  Writes run records to a JSON Lines file (NDJSON).
  One line per decoded (or failed) table of every run in a batch.

REQUIREMENTS:
  User-specified:
  - JSON output for easier parsing.
  - One record per run and table, including failed runs.

  Implementation-discovered:
  - JSON Lines is better for streaming/logging than a single large array (append-friendly).
  - Failed runs are recorded too, with Error set and no statistics, so
    a batch can be audited from this file alone.
  - Table write failures are recorded on the table's own record.

ARCHITECTURE INTEGRATION:
  - Called by: internal/output.Set
  - Consumes: internal/model.RunRecord

ERROR HANDLING:
  - Returns error on file creation or write failure.

IMPLEMENTATION RULES:
  - Use encoding/json.NewEncoder.
  - Thread-safe.

USAGE:
  w, err := output.NewJSONWriter("results.jsonl")
  w.Write(record)
  w.Close()

SELF-HEALING INSTRUCTIONS:
  - None specific.

RELATED FILES:
  - internal/model/types.go

MAINTENANCE:
  - Update if we switch to plain JSON array (not recommended for streaming).
*/

package output

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/daryltucker/hydro-runner/internal/model"
)

// JSONWriter writes one model.RunRecord per line. A successful table
// carries its columns, row count and statistics; a failed case carries
// one record per requested table with only Error set, so a batch log
// lists every case whether or not it produced data.
type JSONWriter struct {
	file    *os.File
	encoder *json.Encoder
	mu      sync.Mutex
}

// NewJSONWriter creates a new JSONWriter.
func NewJSONWriter(path string) (*JSONWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	return &JSONWriter{
		file:    f,
		encoder: json.NewEncoder(f),
	}, nil
}

// Write appends r as one JSON line.
func (jw *JSONWriter) Write(r model.RunRecord) error {
	jw.mu.Lock()
	defer jw.mu.Unlock()

	return jw.encoder.Encode(r)
}

// Close closes the underlying file.
func (jw *JSONWriter) Close() error {
	return jw.file.Close()
}

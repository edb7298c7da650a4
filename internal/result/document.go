/*
PURPOSE:
  Decodes the engine's printed result documents into numeric tables.

REQUIREMENTS:
  User-specified:
  - Tables are found by header/footer marker text, not by line offset.
  - Each marker must match exactly one line.
  - Malformed rows are errors, never skipped.

  Implementation-discovered:
  - The engine pads tables with blank lines; those are not rows.
  - Several tables are usually pulled from one document, so all markers
    are located in a single pass.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine, internal/cli (decode)
  - Uses: internal/model

ERROR HANDLING:
  - *model.MarkerNotFoundError, *model.AmbiguousMarkerError,
    *model.MalformedTableError, *model.EmptyTableError, *model.IOError.

IMPLEMENTATION RULES:
  - Document is never mutated after reading.
  - Every Extract call returns a freshly allocated Table.

USAGE:
  doc, err := result.ReadFile("output/Hydrolight/excel/Mtest.txt")
  rrs, err := doc.Extract(result.Rrs)

SELF-HEALING INSTRUCTIONS:
  - If a new engine version changes header text, update the Layout
    markers in layouts.go; offsets rarely change.

RELATED FILES:
  - internal/result/layouts.go
  - internal/model/errors.go

MAINTENANCE:
  - Add layouts for new tables in layouts.go.
*/

package result

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/daryltucker/hydro-runner/internal/model"
)

// Document is a result document held as lines.
type Document struct {
	lines []string
}

// NewDocument wraps lines without copying them; the caller must not
// modify lines afterwards.
func NewDocument(lines []string) *Document {
	return &Document{lines: lines}
}

// ReadDocument reads every line of r. Line terminators (LF or CRLF) are
// dropped; content is otherwise kept verbatim.
func ReadDocument(r io.Reader) (*Document, error) {
	var lines []string
	buf := bufio.NewScanner(r)
	buf.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for buf.Scan() {
		lines = append(lines, strings.TrimSuffix(buf.Text(), "\r"))
	}
	if err := buf.Err(); err != nil {
		return nil, err
	}
	return &Document{lines: lines}, nil
}

// ReadFile reads the result document at path.
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &model.IOError{Op: "read", Path: path, Err: err}
	}
	defer f.Close()

	d, err := ReadDocument(f)
	if err != nil {
		return nil, &model.IOError{Op: "read", Path: path, Err: err}
	}
	return d, nil
}

// Len returns the number of lines.
func (d *Document) Len() int { return len(d.lines) }

// locate scans the document once and returns, for every marker, the
// indexes of all lines containing it.
func (d *Document) locate(markers []string) map[string][]int {
	pos := make(map[string][]int, len(markers))
	for _, m := range markers {
		pos[m] = nil
	}
	for i, line := range d.lines {
		for m := range pos {
			if strings.Contains(line, m) {
				pos[m] = append(pos[m], i)
			}
		}
	}
	return pos
}

// unique returns the single match of marker in pos.
func unique(pos map[string][]int, table, marker string) (int, error) {
	switch idx := pos[marker]; len(idx) {
	case 0:
		return 0, &model.MarkerNotFoundError{Table: table, Marker: marker}
	case 1:
		return idx[0], nil
	default:
		return 0, &model.AmbiguousMarkerError{Table: table, Marker: marker, Lines: append([]int(nil), idx...)}
	}
}

// Extract decodes the table described by l.
func (d *Document) Extract(l Layout) (*model.Table, error) {
	pos := d.locate([]string{l.Header, l.Footer})
	return d.extract(pos, l)
}

// ExtractAll decodes every layout against one scan of the document. It
// stops at the first failing layout.
func (d *Document) ExtractAll(layouts ...Layout) ([]*model.Table, error) {
	markers := make([]string, 0, 2*len(layouts))
	for _, l := range layouts {
		markers = append(markers, l.Header, l.Footer)
	}
	pos := d.locate(markers)

	tables := make([]*model.Table, 0, len(layouts))
	for _, l := range layouts {
		t, err := d.extract(pos, l)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

func (d *Document) extract(pos map[string][]int, l Layout) (*model.Table, error) {
	header, err := unique(pos, l.Name, l.Header)
	if err != nil {
		return nil, err
	}
	footer, err := unique(pos, l.Name, l.Footer)
	if err != nil {
		return nil, err
	}

	first, last := header+l.HeaderOffset, footer-l.FooterOffset
	if first > last || first < 0 || last >= len(d.lines) {
		return nil, &model.EmptyTableError{Table: l.Name, First: first, Last: last}
	}

	t := model.NewTable(l.Name, l.Columns)
	row := make([]float64, len(l.Columns))
	for i := first; i <= last; i++ {
		fields := strings.Fields(d.lines[i])
		if len(fields) == 0 {
			continue
		}
		if len(fields) != len(l.Columns) {
			return nil, &model.MalformedTableError{Table: l.Name, Line: i,
				Reason: fmt.Sprintf("expected %d fields, found %d", len(l.Columns), len(fields))}
		}
		for j, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, &model.MalformedTableError{Table: l.Name, Line: i,
					Reason: fmt.Sprintf("field %d (%s) is not numeric: %q", j+1, l.Columns[j], f)}
			}
			row[j] = v
		}
		t.AppendRow(row)
	}
	if t.Len() == 0 {
		return nil, &model.EmptyTableError{Table: l.Name, First: first, Last: last}
	}
	return t, nil
}

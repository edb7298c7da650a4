/*
PURPOSE:
  Numeric table decoded from a result document.

REQUIREMENTS:
  User-specified:
  - Columns are addressed by name.

  Implementation-discovered:
  - Column-major storage suits per-column statistics.

ARCHITECTURE INTEGRATION:
  - Used by: internal/result, internal/output, internal/engine

ERROR HANDLING:
  - N/A

IMPLEMENTATION RULES:
  - AppendRow callers guarantee the row width.

USAGE:
  rrs, ok := t.Column("Rrs")

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/result/document.go

MAINTENANCE:
  - None.
*/

package model

// Table is a decoded numeric table. Data is stored column-major: Data[j]
// holds every value of Columns[j] in row order.
type Table struct {
	Name    string
	Columns []string
	Data    [][]float64
}

// NewTable returns an empty table with the given column names.
func NewTable(name string, columns []string) *Table {
	t := &Table{
		Name:    name,
		Columns: append([]string(nil), columns...),
		Data:    make([][]float64, len(columns)),
	}
	return t
}

// AppendRow adds one row. The caller guarantees len(row) == len(t.Columns).
func (t *Table) AppendRow(row []float64) {
	for j, v := range row {
		t.Data[j] = append(t.Data[j], v)
	}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if len(t.Data) == 0 {
		return 0
	}
	return len(t.Data[0])
}

// Column returns the values of the named column.
func (t *Table) Column(name string) ([]float64, bool) {
	for j, c := range t.Columns {
		if c == name {
			return t.Data[j], true
		}
	}
	return nil, false
}

// Row returns a copy of row i.
func (t *Table) Row(i int) []float64 {
	row := make([]float64, len(t.Columns))
	for j := range t.Columns {
		row[j] = t.Data[j][i]
	}
	return row
}

/*
PURPOSE:
  Column statistics of decoded tables.

REQUIREMENTS:
  User-specified:
  - Runs report min, max and mean per column.

  Implementation-discovered:
  - Empty columns report zeros instead of NaN.

ARCHITECTURE INTEGRATION:
  - Used by: internal/engine, internal/cli (decode)
  - Dependencies: gonum.org/v1/gonum/floats

ERROR HANDLING:
  - N/A

IMPLEMENTATION RULES:
  - Never mutate the table.

USAGE:
  stats := result.Summarize(t)

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/model/types.go

MAINTENANCE:
  - None.
*/

package result

import (
	"gonum.org/v1/gonum/floats"

	"github.com/daryltucker/hydro-runner/internal/model"
)

// Summarize returns the minimum, maximum and mean of every column of t.
// Columns of an empty table are reported as zero.
func Summarize(t *model.Table) []model.ColumnStats {
	stats := make([]model.ColumnStats, len(t.Columns))
	for j, name := range t.Columns {
		stats[j].Column = name
		col := t.Data[j]
		if len(col) == 0 {
			continue
		}
		stats[j].Min = floats.Min(col)
		stats[j].Max = floats.Max(col)
		stats[j].Mean = floats.Sum(col) / float64(len(col))
	}
	return stats
}

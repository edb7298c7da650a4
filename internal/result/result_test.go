package result

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/daryltucker/hydro-runner/internal/model"
)

// mDocument is a trimmed multi-wavelength result document in the layout
// the engine prints.
const mDocument = `"HYDROLIGHT 5.3 multi-wavelength output"
"Run title: Replace the rootname and title"
""
"Remote-sensing reflectance and related quantities"
" " "in air" "Rrs" "Ed" "Lw" "Lu"
400.0   1.523E-03   1.071E+00   1.631E-03   1.002E-03
410.0   1.611E-03   1.152E+00   1.856E-03   1.137E-03
420.0   1.702E-03   1.201E+00   2.044E-03   1.252E-03

430.0   1.750E-03   1.243E+00   2.175E-03   1.333E-03
"R" "R = Eu/Ed"
400.0   4.981E-03
410.0   5.262E-03
`

func TestExtract_Rrs(t *testing.T) {
	doc, err := ReadDocument(strings.NewReader(mDocument))
	require.NoError(t, err)

	rrs, err := doc.Extract(Rrs)
	require.NoError(t, err)

	require.Equal(t, 4, rrs.Len())
	wa, ok := rrs.Column("wavelength")
	require.True(t, ok)
	require.Equal(t, []float64{400, 410, 420, 430}, wa)
	r, ok := rrs.Column("Rrs")
	require.True(t, ok)
	require.Equal(t, []float64{1.523e-3, 1.611e-3, 1.702e-3, 1.750e-3}, r)
	require.Equal(t, []float64{420, 1.702e-3, 1.201, 2.044e-3, 1.252e-3}, rrs.Row(2))
	_, ok = rrs.Column("Eu")
	require.False(t, ok)
}

func TestExtract_CRLF(t *testing.T) {
	doc, err := ReadDocument(strings.NewReader(strings.ReplaceAll(mDocument, "\n", "\r\n")))
	require.NoError(t, err)

	rrs, err := doc.Extract(Rrs)
	require.NoError(t, err)
	require.Equal(t, 4, rrs.Len())
}

// numbered builds a document of n lines where line i (zero-based) holds
// "i i*10", except for the lines overridden by special.
func numbered(n int, special map[int]string) *Document {
	lines := make([]string, n)
	for i := range lines {
		if s, ok := special[i]; ok {
			lines[i] = s
			continue
		}
		lines[i] = fmt.Sprintf("%d %d", i, i*10)
	}
	return NewDocument(lines)
}

var pair = Layout{
	Name:         "pair",
	Header:       "HEADER",
	Footer:       "FOOTER",
	HeaderOffset: 1,
	FooterOffset: 1,
	Columns:      []string{"index", "value"},
}

func TestExtract_RowRange(t *testing.T) {
	doc := numbered(30, map[int]string{10: "== HEADER ==", 20: "== FOOTER =="})

	tbl, err := doc.Extract(pair)
	require.NoError(t, err)

	idx, _ := tbl.Column("index")
	require.Equal(t, []float64{11, 12, 13, 14, 15, 16, 17, 18, 19}, idx)

	t.Run("wider offsets", func(t *testing.T) {
		l := pair
		l.HeaderOffset, l.FooterOffset = 2, 3
		tbl, err := doc.Extract(l)
		require.NoError(t, err)
		idx, _ := tbl.Column("index")
		require.Equal(t, []float64{12, 13, 14, 15, 16, 17}, idx)
	})
}

func TestExtract_Errors(t *testing.T) {
	t.Run("ambiguous header", func(t *testing.T) {
		doc := numbered(30, map[int]string{3: "HEADER", 10: "HEADER", 20: "FOOTER"})
		tbl, err := doc.Extract(pair)
		require.Nil(t, tbl)
		var aerr *model.AmbiguousMarkerError
		require.ErrorAs(t, err, &aerr)
		require.Equal(t, "HEADER", aerr.Marker)
		require.Equal(t, []int{3, 10}, aerr.Lines)
	})

	t.Run("missing footer", func(t *testing.T) {
		doc := numbered(30, map[int]string{10: "HEADER"})
		_, err := doc.Extract(pair)
		var nerr *model.MarkerNotFoundError
		require.ErrorAs(t, err, &nerr)
		require.Equal(t, "FOOTER", nerr.Marker)
	})

	t.Run("footer above header", func(t *testing.T) {
		doc := numbered(30, map[int]string{5: "FOOTER", 10: "HEADER"})
		_, err := doc.Extract(pair)
		var eerr *model.EmptyTableError
		require.ErrorAs(t, err, &eerr)
		require.Equal(t, 11, eerr.First)
		require.Equal(t, 4, eerr.Last)
	})

	t.Run("adjacent markers", func(t *testing.T) {
		doc := numbered(30, map[int]string{10: "HEADER", 11: "FOOTER"})
		_, err := doc.Extract(pair)
		var eerr *model.EmptyTableError
		require.ErrorAs(t, err, &eerr)
	})

	t.Run("only blank lines", func(t *testing.T) {
		doc := numbered(30, map[int]string{10: "HEADER", 11: "", 12: "   ", 13: "FOOTER"})
		_, err := doc.Extract(pair)
		var eerr *model.EmptyTableError
		require.ErrorAs(t, err, &eerr)
	})

	t.Run("short row", func(t *testing.T) {
		doc := numbered(30, map[int]string{10: "HEADER", 15: "15", 20: "FOOTER"})
		_, err := doc.Extract(pair)
		var merr *model.MalformedTableError
		require.ErrorAs(t, err, &merr)
		require.Equal(t, 15, merr.Line)
	})

	t.Run("non-numeric field", func(t *testing.T) {
		doc := numbered(30, map[int]string{10: "HEADER", 16: "16 n/a", 20: "FOOTER"})
		_, err := doc.Extract(pair)
		var merr *model.MalformedTableError
		require.ErrorAs(t, err, &merr)
		require.Equal(t, 16, merr.Line)
		require.Contains(t, merr.Error(), "value")
	})
}

func TestExtractAll(t *testing.T) {
	second := Layout{
		Name:         "second",
		Header:       "BEGIN B",
		Footer:       "END B",
		HeaderOffset: 1,
		FooterOffset: 1,
		Columns:      []string{"index", "value"},
	}
	doc := numbered(40, map[int]string{2: "HEADER", 6: "FOOTER", 20: "BEGIN B", 25: "END B"})

	tables, err := doc.ExtractAll(pair, second)
	require.NoError(t, err)
	require.Len(t, tables, 2)
	require.Equal(t, 3, tables[0].Len())
	require.Equal(t, 4, tables[1].Len())

	// Extraction does not consume the document.
	again, err := doc.Extract(second)
	require.NoError(t, err)
	require.Equal(t, tables[1], again)
	require.Equal(t, 40, doc.Len())

	t.Run("one bad layout fails the call", func(t *testing.T) {
		missing := second
		missing.Footer = "NOT THERE"
		tables, err := doc.ExtractAll(pair, missing)
		require.Nil(t, tables)
		var nerr *model.MarkerNotFoundError
		require.ErrorAs(t, err, &nerr)
		require.Equal(t, "second", nerr.Table)
	})
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Mtest.txt")
	require.NoError(t, os.WriteFile(path, []byte(mDocument), 0644))

	doc, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, 13, doc.Len())

	_, err = ReadFile(filepath.Join(t.TempDir(), "Mmissing.txt"))
	var ioErr *model.IOError
	require.ErrorAs(t, err, &ioErr)
	require.Equal(t, "read", ioErr.Op)
}

func TestSummarize(t *testing.T) {
	tbl := model.NewTable("pair", []string{"index", "value"})
	tbl.AppendRow([]float64{1, 10})
	tbl.AppendRow([]float64{2, 30})
	tbl.AppendRow([]float64{3, 20})

	stats := Summarize(tbl)
	require.Equal(t, []model.ColumnStats{
		{Column: "index", Min: 1, Max: 3, Mean: 2},
		{Column: "value", Min: 10, Max: 30, Mean: 20},
	}, stats)

	empty := Summarize(model.NewTable("empty", []string{"a"}))
	require.Equal(t, []model.ColumnStats{{Column: "a"}}, empty)
}

func TestLookupLayout(t *testing.T) {
	l, err := LookupLayout("rrs")
	require.NoError(t, err)
	require.Equal(t, Rrs.Header, l.Header)

	_, err = LookupLayout("nope")
	require.ErrorContains(t, err, "rrs")
}

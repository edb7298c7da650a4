package output

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"

	"github.com/daryltucker/hydro-runner/internal/model"
)

func rrsTable() *model.Table {
	t := model.NewTable("rrs", []string{"wavelength", "Rrs"})
	t.AppendRow([]float64{400, 1.523e-3})
	t.AppendRow([]float64{410, 1.611e-3})
	return t
}

func TestCSVWriter(t *testing.T) {
	dir := t.TempDir()

	path, err := NewCSVWriter(dir).WriteTable("test", rrsTable())
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "test_rrs.csv"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	want := [][]string{
		{"wavelength", "Rrs"},
		{"400", "0.001523"},
		{"410", "0.001611"},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("csv mismatch (-want +got):\n%s", diff)
	}
}

func TestSet(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir, "batch", []string{"csv", "json", "xlsx"})
	require.NoError(t, err)

	tbl := rrsTable()
	require.NoError(t, s.WriteTable("test", tbl))
	require.NoError(t, s.WriteRecord(model.RunRecord{RootName: "test", Table: "rrs", Columns: tbl.Columns, Rows: 2}))
	require.NoError(t, s.WriteRecord(model.RunRecord{RootName: "broken", Table: "rrs", Error: "engine failed"}))
	require.NoError(t, s.Close())

	require.FileExists(t, filepath.Join(dir, "test_rrs.csv"))

	t.Run("json lines", func(t *testing.T) {
		f, err := os.Open(filepath.Join(dir, "batch.jsonl"))
		require.NoError(t, err)
		defer f.Close()

		var got []model.RunRecord
		sc := bufio.NewScanner(f)
		for sc.Scan() {
			var r model.RunRecord
			require.NoError(t, json.Unmarshal(sc.Bytes(), &r))
			got = append(got, r)
		}
		require.Len(t, got, 2)
		require.Equal(t, 2, got[0].Rows)
		require.Equal(t, "engine failed", got[1].Error)
	})

	t.Run("workbook", func(t *testing.T) {
		wb, err := xlsx.OpenFile(filepath.Join(dir, "batch.xlsx"))
		require.NoError(t, err)
		sheet, ok := wb.Sheet["test_rrs"]
		require.True(t, ok)
		require.Len(t, sheet.Rows, 3)
		require.Equal(t, "Rrs", sheet.Rows[0].Cells[1].Value)
		v, err := sheet.Rows[2].Cells[0].Float()
		require.NoError(t, err)
		require.Equal(t, 410.0, v)
	})
}

func TestOpen_UnknownFormat(t *testing.T) {
	_, err := Open(t.TempDir(), "batch", []string{"json", "parquet"})
	require.ErrorContains(t, err, "parquet")
}

func TestXLSXWriter_EmptyWorkbookNotWritten(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, NewXLSXWriter(path).Close())
	require.NoFileExists(t, path)
}

func TestSheetName(t *testing.T) {
	require.Equal(t, "test_rrs", SheetName("test", "rrs"))
	require.Len(t, SheetName("a_very_long_root_name_for_a_sweep", "rrs"), 31)

	name := SheetName(strings.Repeat("é", 30), "rrs")
	require.True(t, utf8.ValidString(name))
	require.Equal(t, 31, utf8.RuneCountInString(name))
}

func TestXLSXWriter_CollidingSheetNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.xlsx")
	w := NewXLSXWriter(path)
	long := strings.Repeat("r", 31)

	require.NoError(t, w.WriteTable(long+"a", rrsTable()))
	require.NoError(t, w.WriteTable(long+"b", rrsTable()))
	require.NoError(t, w.Close())

	wb, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, wb.Sheets, 2)
	require.Equal(t, long, wb.Sheets[0].Name)
	require.Equal(t, strings.Repeat("r", 29)+"~2", wb.Sheets[1].Name)
}

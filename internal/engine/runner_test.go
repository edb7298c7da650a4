package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/daryltucker/hydro-runner/internal/config"
	"github.com/daryltucker/hydro-runner/internal/model"
	"github.com/daryltucker/hydro-runner/internal/script"
)

// fakeEngine stands in for the engine: it reads the run list, checks the
// script exists and writes a result document for it.
type fakeEngine struct {
	cfg      *config.Config
	failures int // number of leading calls that fail
	calls    int
	noResult bool
}

func (f *fakeEngine) Invoke(ctx context.Context, dir, command string) error {
	f.calls++
	if f.calls <= f.failures {
		return fmt.Errorf("licence server busy")
	}
	name, err := os.ReadFile(f.cfg.Path(f.cfg.RunList))
	if err != nil {
		return err
	}
	if _, err := os.Stat(filepath.Join(f.cfg.Path(f.cfg.BatchDir), string(name))); err != nil {
		return err
	}
	if f.noResult {
		return nil
	}
	root := strings.TrimSuffix(strings.TrimPrefix(string(name), "I"), ".txt")
	doc := strings.Join([]string{
		`"HYDROLIGHT output for ` + root + `"`,
		`" " "in air" "Rrs" "Ed" "Lw" "Lu"`,
		"400.0 1.0E-03 1.0E+00 1.0E-03 1.0E-03",
		"410.0 3.0E-03 1.1E+00 2.0E-03 1.2E-03",
		`"R" "R = Eu/Ed"`,
	}, "\n")
	return os.WriteFile(filepath.Join(f.cfg.Path(f.cfg.ResultDir), script.ResultName(root)), []byte(doc), 0644)
}

// recorder collects what the runner hands to its sink.
type recorder struct {
	tables   map[string]*model.Table
	records  []model.RunRecord
	tableErr error
}

func (r *recorder) WriteTable(root string, t *model.Table) error {
	if r.tableErr != nil {
		return r.tableErr
	}
	if r.tables == nil {
		r.tables = map[string]*model.Table{}
	}
	r.tables[root+"/"+t.Name] = t
	return nil
}

func (r *recorder) WriteRecord(rec model.RunRecord) error {
	r.records = append(r.records, rec)
	return nil
}

func testRunner(t *testing.T) (*Runner, *fakeEngine, *recorder) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Root = t.TempDir()
	cfg.RetryDelay = time.Millisecond
	cfg.Timeout = time.Minute
	for _, d := range []string{cfg.BatchDir, cfg.ResultDir} {
		require.NoError(t, os.MkdirAll(cfg.Path(d), 0755))
	}
	fe := &fakeEngine{cfg: cfg}
	rec := &recorder{}
	return &Runner{Config: cfg, Invoker: fe, Sink: rec}, fe, rec
}

func TestRunOnce(t *testing.T) {
	r, fe, _ := testRunner(t)
	p := model.DefaultParameters()
	p.Run.RootName = "test"

	tables, err := r.RunOnce(context.Background(), p)
	require.NoError(t, err)
	require.Len(t, tables, 1)
	require.Equal(t, "rrs", tables[0].Name)
	require.Equal(t, 2, tables[0].Len())
	require.Equal(t, 1, fe.calls)
	require.FileExists(t, filepath.Join(r.Config.Path(r.Config.BatchDir), "Itest.txt"))
}

func TestRunOnce_Retries(t *testing.T) {
	r, fe, _ := testRunner(t)
	fe.failures = 2

	_, err := r.RunOnce(context.Background(), model.DefaultParameters())
	require.NoError(t, err)
	require.Equal(t, 3, fe.calls)

	t.Run("gives up after max_retries attempts", func(t *testing.T) {
		r, fe, _ := testRunner(t)
		fe.failures = 10
		r.Config.MaxRetries = 2

		_, err := r.RunOnce(context.Background(), model.DefaultParameters())
		require.ErrorContains(t, err, "licence server busy")
		require.Equal(t, 2, fe.calls)
	})
}

func TestRunOnce_MissingResult(t *testing.T) {
	r, fe, _ := testRunner(t)
	fe.noResult = true

	// A result from an earlier run must not be picked up.
	stale := filepath.Join(r.Config.Path(r.Config.ResultDir), "MResults.txt")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0644))

	_, err := r.RunOnce(context.Background(), model.DefaultParameters())
	var ioErr *model.IOError
	require.ErrorAs(t, err, &ioErr)
	require.Equal(t, stale, ioErr.Path)
	require.True(t, errors.Is(err, os.ErrNotExist))
}

func TestRunOnce_InvalidParameters(t *testing.T) {
	r, fe, _ := testRunner(t)
	p := model.DefaultParameters()
	p.Run.RootName = strings.Repeat("x", model.MaxRootNameLen+1)

	_, err := r.RunOnce(context.Background(), p)
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Zero(t, fe.calls, "the engine is not launched for an invalid case")
}

func TestRunBatch(t *testing.T) {
	r, _, rec := testRunner(t)
	cdom := 0.4
	r.Config.Sweep = []config.Override{
		{RootName: "cdom04", CDOM: &cdom},
		{RootName: strings.Repeat("y", model.MaxRootNameLen+1)},
		{RootName: "cdom06"},
	}

	err := r.RunBatch(context.Background(), model.DefaultParameters())
	require.Error(t, err, "one bad case fails the batch")

	// --- Assert: the good cases all ran despite the bad one.
	require.Contains(t, rec.tables, "Results/rrs")
	require.Contains(t, rec.tables, "cdom04/rrs")
	require.Contains(t, rec.tables, "cdom06/rrs")
	require.Len(t, rec.records, 4)
	require.NotEmpty(t, rec.records[2].Error)
	require.Equal(t, 2, rec.records[3].Rows)
	require.Len(t, rec.records[0].Stats, 5)
	require.InDelta(t, 2.0e-3, rec.records[0].Stats[1].Mean, 1e-12)

	body, err := os.ReadFile(filepath.Join(r.Config.Path(r.Config.BatchDir), "Icdom04.txt"))
	require.NoError(t, err)
	require.Contains(t, string(body), "\n0,30,0.4,30\n")
}

func TestRunBatch_DuplicateRootNames(t *testing.T) {
	r, fe, rec := testRunner(t)
	cdom04, cdom06 := 0.4, 0.6
	r.Config.Sweep = []config.Override{{CDOM: &cdom04}, {RootName: "RESULTS", CDOM: &cdom06}}

	err := r.RunBatch(context.Background(), model.DefaultParameters())

	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "run.root_name", verr.Field)
	require.Zero(t, fe.calls, "no case runs when root names collide")
	require.Empty(t, rec.records)
}

func TestRunBatch_SinkErrorsFailBatch(t *testing.T) {
	r, _, rec := testRunner(t)
	rec.tableErr = errors.New("duplicate sheet name")

	err := r.RunBatch(context.Background(), model.DefaultParameters())

	require.ErrorContains(t, err, "duplicate sheet name")
	require.Len(t, rec.records, 1)
	require.Equal(t, "duplicate sheet name", rec.records[0].Error)
}

func TestRunOnce_NoResultDocumentConfigured(t *testing.T) {
	r, fe, _ := testRunner(t)
	p := model.DefaultParameters()
	p.Output.ExcelMulti = 0

	_, err := r.RunOnce(context.Background(), p)

	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "output.excel_multi", verr.Field)
	require.Zero(t, fe.calls)

	t.Run("allowed when no tables are decoded", func(t *testing.T) {
		r.Config.Tables = nil
		fe.noResult = true
		tables, err := r.RunOnce(context.Background(), p)
		require.NoError(t, err)
		require.Empty(t, tables)
		require.Equal(t, 1, fe.calls)
	})
}

func TestRunBatch_Cancelled(t *testing.T) {
	r, fe, _ := testRunner(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.RunBatch(ctx, model.DefaultParameters())
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, fe.calls)
}

func TestExecInvoker(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses POSIX utilities")
	}
	dir := t.TempDir()

	require.NoError(t, ExecInvoker{}.Invoke(context.Background(), dir, "true"))

	err := ExecInvoker{}.Invoke(context.Background(), dir, "sh -c false")
	require.ErrorContains(t, err, "engine sh failed")

	err = ExecInvoker{}.Invoke(context.Background(), dir, "   ")
	require.ErrorContains(t, err, "empty")
}

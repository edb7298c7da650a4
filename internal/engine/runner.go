/*
PURPOSE:
  High-level runner that orchestrates engine runs.
  Encode -> launch engine -> decode result -> write outputs, for the base
  case and every sweep entry.

REQUIREMENTS:
  User-specified:
  - Run a batch of cases that differ by root name and concentrations.
  - Log results to CSV/JSON/XLSX.

  Implementation-discovered:
  - The engine reports little through its exit status; a run only counts
    as successful once its result document exists.
  - A stale result document from an earlier run must not be mistaken for
    a fresh one, so it is removed before launch.
  - Engine launches are occasionally flaky (licence checks, locked files);
    they are retried with exponential back-off.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli
  - Uses: internal/config, internal/script, internal/result, internal/output

ERROR HANDLING:
  - Logs errors but continues (resilience).
  - Failed cases are recorded and joined into the returned error.

IMPLEMENTATION RULES:
  - Cases run sequentially: the engine reads one shared run list.
  - Each engine attempt gets its own timeout.

USAGE:
  err := engine.Run(ctx, cfg)

SELF-HEALING INSTRUCTIONS:
  - If results are not found, check result_dir against the engine's
    output settings.

RELATED FILES:
  - internal/engine/client.go
  - internal/script/encoder.go
  - internal/result/document.go

MAINTENANCE:
  - Update iteration logic if parallelism is introduced.
*/

package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff"

	"github.com/daryltucker/hydro-runner/internal/config"
	"github.com/daryltucker/hydro-runner/internal/model"
	"github.com/daryltucker/hydro-runner/internal/output"
	"github.com/daryltucker/hydro-runner/internal/result"
	"github.com/daryltucker/hydro-runner/internal/script"
)

// Sink receives decoded tables and per-table run records.
type Sink interface {
	WriteTable(root string, t *model.Table) error
	WriteRecord(r model.RunRecord) error
}

// Runner executes engine runs described by Config.
type Runner struct {
	Config  *config.Config
	Invoker Invoker
	Sink    Sink
}

// New creates a Runner that launches the engine locally.
func New(cfg *config.Config, sink Sink) *Runner {
	return &Runner{Config: cfg, Invoker: ExecInvoker{}, Sink: sink}
}

// Run loads the parameters named by cfg, opens the configured outputs and
// runs the base case followed by every sweep entry.
func Run(ctx context.Context, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	params, err := config.LoadParameters(cfg.Parameters)
	if err != nil {
		return err
	}

	sink, err := output.Open(cfg.OutputDir, cfg.OutputFile, cfg.Formats)
	if err != nil {
		return err
	}

	runErr := New(cfg, sink).RunBatch(ctx, params)
	return errors.Join(runErr, sink.Close())
}

// Cases returns the parameter sets of a batch: base first, then one per
// sweep entry.
func (r *Runner) Cases(base *model.Parameters) []*model.Parameters {
	cases := make([]*model.Parameters, 0, 1+len(r.Config.Sweep))
	cases = append(cases, base.Clone())
	for _, o := range r.Config.Sweep {
		cases = append(cases, o.Apply(base))
	}
	return cases
}

// checkRoots rejects a batch in which two cases share a root name. Their
// scripts, result documents and exported tables would overwrite each
// other. Names are compared case-insensitively, as the engine's file
// system does.
func checkRoots(cases []*model.Parameters) error {
	seen := make(map[string]int, len(cases))
	for i, p := range cases {
		key := strings.ToLower(p.Run.RootName)
		if j, ok := seen[key]; ok {
			return &model.ValidationError{Field: "run.root_name", Value: p.Run.RootName,
				Reason: fmt.Sprintf("case %d reuses the root name of case %d; give each sweep entry a root_name", i+1, j+1)}
		}
		seen[key] = i
	}
	return nil
}

// RunBatch runs every case in order. A failing case is logged and
// recorded and does not stop the batch; the joined errors are returned.
// A batch with duplicate root names is rejected before any case runs.
func (r *Runner) RunBatch(ctx context.Context, base *model.Parameters) error {
	cases := r.Cases(base)
	if err := checkRoots(cases); err != nil {
		return err
	}
	var errs []error
	for i, p := range cases {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		root := p.Run.RootName
		output.Logger.Info("Running case", "root", root, "case", i+1, "of", len(cases))

		start := time.Now()
		tables, err := r.RunOnce(ctx, p)
		if err != nil {
			output.Logger.Error("Case failed", "root", root, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", root, err), r.record(root, nil, err))
			continue
		}
		output.Logger.Info("Case complete", "root", root, "tables", len(tables), "duration", time.Since(start).Round(time.Millisecond))
		if err := r.record(root, tables, nil); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", root, err))
		}
	}
	return errors.Join(errs...)
}

// RunOnce encodes p, launches the engine and decodes the configured
// tables from its result document.
func (r *Runner) RunOnce(ctx context.Context, p *model.Parameters) ([]*model.Table, error) {
	cfg := r.Config
	layouts, err := r.layouts()
	if err != nil {
		return nil, err
	}
	if len(layouts) > 0 && p.Output.ExcelMulti == 0 {
		return nil, &model.ValidationError{Field: "output.excel_multi", Value: p.Output.ExcelMulti,
			Reason: "must be 1: the engine writes no result document to decode tables from"}
	}

	enc := script.Encoder{ScriptDir: cfg.Path(cfg.BatchDir), RunList: cfg.Path(cfg.RunList)}
	scriptPath, err := enc.Write(p)
	if err != nil {
		return nil, err
	}
	output.Logger.Debug("Wrote run script", "path", scriptPath)

	resultPath := filepath.Join(cfg.Path(cfg.ResultDir), script.ResultName(p.Run.RootName))
	if err := os.Remove(resultPath); err == nil {
		output.Logger.Debug("Removed stale result document", "path", resultPath)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, &model.IOError{Op: "remove", Path: resultPath, Err: err}
	}

	if err := r.invoke(ctx); err != nil {
		return nil, err
	}
	if len(layouts) == 0 {
		return nil, nil
	}

	if _, err := os.Stat(resultPath); err != nil {
		return nil, &model.IOError{Op: "stat", Path: resultPath, Err: err}
	}
	doc, err := result.ReadFile(resultPath)
	if err != nil {
		return nil, err
	}
	return doc.ExtractAll(layouts...)
}

// invoke launches the engine, retrying with exponential back-off up to
// MaxRetries attempts in total.
func (r *Runner) invoke(ctx context.Context) error {
	cfg := r.Config
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = cfg.RetryDelay

	attempt := 0
	return backoff.RetryNotify(
		func() error {
			attempt++
			actx, cancel := ctx, context.CancelFunc(func() {})
			if cfg.Timeout > 0 {
				actx, cancel = context.WithTimeout(ctx, cfg.Timeout)
			}
			defer cancel()
			output.Logger.Debug("Launching engine", "command", cfg.Command, "attempt", attempt)
			return r.Invoker.Invoke(actx, cfg.Path(cfg.WorkDir), cfg.Command)
		},
		backoff.WithContext(backoff.WithMaxRetries(b, uint64(cfg.MaxRetries-1)), ctx),
		func(err error, d time.Duration) {
			output.Logger.Warn("Engine launch failed, retrying", "attempt", attempt, "in", d, "error", err)
		},
	)
}

func (r *Runner) layouts() ([]result.Layout, error) {
	layouts := make([]result.Layout, 0, len(r.Config.Tables))
	for _, name := range r.Config.Tables {
		l, err := result.LookupLayout(name)
		if err != nil {
			return nil, err
		}
		layouts = append(layouts, l)
	}
	return layouts, nil
}

// record writes tables and their records to the sink. With runErr set,
// one failure record per configured table is written instead. Sink
// failures are logged and returned joined.
func (r *Runner) record(root string, tables []*model.Table, runErr error) error {
	if r.Sink == nil {
		return nil
	}
	var errs []error
	if runErr != nil {
		for _, name := range r.Config.Tables {
			if err := r.Sink.WriteRecord(model.RunRecord{RootName: root, Table: name, Error: runErr.Error()}); err != nil {
				output.Logger.Error("Failed to write record", "root", root, "table", name, "error", err)
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}
	for _, t := range tables {
		rec := model.RunRecord{
			RootName: root,
			Table:    t.Name,
			Columns:  t.Columns,
			Rows:     t.Len(),
			Stats:    result.Summarize(t),
		}
		if err := r.Sink.WriteTable(root, t); err != nil {
			output.Logger.Error("Failed to write table", "root", root, "table", t.Name, "error", err)
			rec.Error = err.Error()
			errs = append(errs, err)
		}
		if err := r.Sink.WriteRecord(rec); err != nil {
			output.Logger.Error("Failed to write record", "root", root, "table", t.Name, "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

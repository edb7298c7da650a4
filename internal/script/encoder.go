/*
PURPOSE:
  Writes the run script and run list to disk.

REQUIREMENTS:
  User-specified:
  - The run list names exactly one script and is overwritten each time.

  Implementation-discovered:
  - Both files are staged as temp files and renamed, so no partial file is visible.
  - An earlier script of the same name is restored if the run list cannot be committed.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine, internal/cli (encode)
  - Uses: internal/script.Render

ERROR HANDLING:
  - *model.ValidationError before any write; *model.IOError on file failures.

IMPLEMENTATION RULES:
  - Temp files live next to their targets so rename stays on one file system.

USAGE:
  enc := script.Encoder{ScriptDir: batch, RunList: list}
  path, err := enc.Write(p)

SELF-HEALING INSTRUCTIONS:
  - If renames fail on a network share, check that ScriptDir and RunList are local.

RELATED FILES:
  - internal/script/document.go
  - internal/engine/runner.go

MAINTENANCE:
  - None.
*/

package script

import (
	"os"
	"path/filepath"

	"github.com/daryltucker/hydro-runner/internal/model"
)

// Encoder writes run scripts and the run list the engine reads on start-up.
type Encoder struct {
	// ScriptDir is the directory the engine's batch mode reads scripts from.
	ScriptDir string
	// RunList is the path of the run-list file.
	RunList string
}

// Write validates and renders p, then writes the run script and a run
// list naming it. It returns the script path.
//
// Both files are staged next to their targets before either is renamed
// into place, so a failed write leaves no partial file behind. An existing
// script of the same name is set aside first; if the run list cannot be
// committed, the new script is withdrawn and the earlier one restored.
func (e *Encoder) Write(p *model.Parameters) (string, error) {
	doc, err := Render(p)
	if err != nil {
		return "", err
	}

	name := ScriptName(p.Run.RootName)
	scriptPath := filepath.Join(e.ScriptDir, name)

	scriptTmp, err := stage(scriptPath, doc.Bytes())
	if err != nil {
		return "", err
	}
	listTmp, err := stage(e.RunList, []byte(name))
	if err != nil {
		os.Remove(scriptTmp)
		return "", err
	}

	backup := ""
	if _, err := os.Lstat(scriptPath); err == nil {
		backup = scriptTmp + ".prev"
		if err := os.Rename(scriptPath, backup); err != nil {
			os.Remove(scriptTmp)
			os.Remove(listTmp)
			return "", &model.IOError{Op: "write", Path: scriptPath, Err: err}
		}
	}
	// withdraw puts back whatever was at scriptPath before this call.
	withdraw := func() {
		if backup != "" {
			os.Rename(backup, scriptPath)
			return
		}
		os.Remove(scriptPath)
	}

	if err := os.Rename(scriptTmp, scriptPath); err != nil {
		os.Remove(scriptTmp)
		os.Remove(listTmp)
		withdraw()
		return "", &model.IOError{Op: "write", Path: scriptPath, Err: err}
	}
	if err := os.Rename(listTmp, e.RunList); err != nil {
		os.Remove(listTmp)
		withdraw()
		return "", &model.IOError{Op: "write", Path: e.RunList, Err: err}
	}
	if backup != "" {
		os.Remove(backup)
	}
	return scriptPath, nil
}

// stage writes data to a temporary file in the directory of dest and
// returns its name.
func stage(dest string, data []byte) (string, error) {
	dir := filepath.Dir(dest)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return "", &model.IOError{Op: "write", Path: dest, Err: err}
	}
	name := tmp.Name()
	fail := func(err error) (string, error) {
		tmp.Close()
		os.Remove(name)
		return "", &model.IOError{Op: "write", Path: dest, Err: err}
	}
	if _, err := tmp.Write(data); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Chmod(0644); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return "", &model.IOError{Op: "write", Path: dest, Err: err}
	}
	return name, nil
}

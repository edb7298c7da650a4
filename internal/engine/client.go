/*
PURPOSE:
  Launches the radiative-transfer engine as an external process.

REQUIREMENTS:
  User-specified:
  - Run the engine's batch launcher inside its run directory.
  - Surface the engine's console output when it fails.

  Implementation-discovered:
  - The launcher may carry arguments ("wine runHL.exe"), so the command
    line is split on whitespace.
  - Tests must not need the engine; the launch is behind an interface.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine.Runner
  - Uses: os/exec

ERROR HANDLING:
  - Non-zero exit returns an error carrying the combined output.
  - Retries are handled at a higher level (Runner).

IMPLEMENTATION RULES:
  - Always use exec.CommandContext so timeouts kill the process.
  - Never change the process working directory (cmd.Dir instead).

USAGE:
  var inv engine.Invoker = engine.ExecInvoker{}
  err := inv.Invoke(ctx, "/opt/HE53/run", "runHL.exe")

SELF-HEALING INSTRUCTIONS:
  - If the engine needs environment variables, set cmd.Env here.

RELATED FILES:
  - internal/engine/runner.go

MAINTENANCE:
  - Update if the engine gains a non-batch launch mode.
*/

package engine

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Invoker launches the engine once.
type Invoker interface {
	Invoke(ctx context.Context, dir, command string) error
}

// ExecInvoker runs the engine as a local process.
type ExecInvoker struct{}

// maxOutput bounds how much engine console output is kept in an error.
const maxOutput = 4096

// Invoke runs command in dir and waits for it to exit.
func (ExecInvoker) Invoke(ctx context.Context, dir, command string) error {
	args := strings.Fields(command)
	if len(args) == 0 {
		return fmt.Errorf("engine command is empty")
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("engine %s: %w", args[0], ctx.Err())
		}
		return fmt.Errorf("engine %s failed: %w\n%s", args[0], err, tail(out))
	}
	return nil
}

func tail(out []byte) string {
	out = bytes.TrimSpace(out)
	if len(out) > maxOutput {
		out = out[len(out)-maxOutput:]
	}
	return string(out)
}

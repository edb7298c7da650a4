package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/daryltucker/hydro-runner/internal/config"
	"github.com/daryltucker/hydro-runner/internal/model"
)

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestInit(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, "init", "--dir", dir, "--format", "toml", "--force=false")
	require.NoError(t, err)

	p, err := config.LoadParameters(filepath.Join(dir, "params.toml"))
	require.NoError(t, err)
	require.Equal(t, model.DefaultParameters(), p)

	cfg, err := config.Load(filepath.Join(dir, "hydro_runner.yaml"))
	require.NoError(t, err)
	require.Equal(t, "params.toml", cfg.Parameters)
	require.Equal(t, config.DefaultConfig().RetryDelay, cfg.RetryDelay)

	_, err = execute(t, "init", "--dir", dir, "--format", "toml", "--force=false")
	require.ErrorContains(t, err, "already exists")
}

func TestEncode_Stdout(t *testing.T) {
	out, err := execute(t, "encode", "--stdout", "--root-name", "chl20", "--params", "")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Equal(t, "chl20", lines[2])
	require.Equal(t, `..\data\MyBiolumData.txt`, lines[len(lines)-1])
}

func TestEncode_Files(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "run", "batch"), 0755))

	_, err := execute(t, "encode", "--stdout=false", "--root", root, "--root-name", "chl20", "--params", "")
	require.NoError(t, err)

	list, err := os.ReadFile(filepath.Join(root, "run", "runlist.txt"))
	require.NoError(t, err)
	require.Equal(t, "Ichl20.txt", string(list))
	require.FileExists(t, filepath.Join(root, "run", "batch", "Ichl20.txt"))
}

func TestDecode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Mtest.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join([]string{
		`"Remote-sensing reflectance"`,
		`" " "in air" "Rrs" "Ed" "Lw" "Lu"`,
		"400.0 1.0E-03 1.0E+00 1.0E-03 1.0E-03",
		"410.0 3.0E-03 1.1E+00 2.0E-03 1.2E-03",
		`"R" "R = Eu/Ed"`,
	}, "\n")), 0644))
	export := filepath.Join(dir, "export")

	out, err := execute(t, "decode", path, "--tables", "rrs", "--export", export, "--formats", "csv")
	require.NoError(t, err)
	require.Contains(t, out, "TABLE")
	require.Contains(t, out, "wavelength")
	require.FileExists(t, filepath.Join(export, "test_rrs.csv"))

	_, err = execute(t, "decode", path, "--tables", "nope", "--export", "")
	require.ErrorContains(t, err, "nope")
}

func TestListTables(t *testing.T) {
	out, err := execute(t, "list-tables")
	require.NoError(t, err)
	require.Contains(t, out, "- rrs")
	require.Contains(t, out, "Rrs, Ed, Lw, Lu")
}

package process

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/thermoprops/pkg/domain"
)

const fakeEngine = `
if [ -n "$SLOW" ]; then exec sleep 5; fi
if [ -n "$ENGINE_FAIL" ]; then echo boom >&2; exit 3; fi
if [ -n "$GARBAGE" ]; then echo nope; exit 0; fi
case "$THERMOPROPS_OP" in
fluids) echo '{"fluids":["Nitrogen","Argon"]}' ;;
fluid)
  case "$THERMOPROPS_ARG_FLUID" in
  Nitrogen|N2) echo '{"name":"Nitrogen","aliases":["N2"],"formula":"N_{2}"}' ;;
  *) echo '{"error":"no such fluid","code":"unknown_fluid"}' ;;
  esac ;;
props)
  if [ "$THERMOPROPS_ARG_FLUID" != "Nitrogen" ]; then echo '{"error":"no such fluid","code":"unknown_fluid"}'; exit 1; fi
  if [ "$THERMOPROPS_ARG_TARGET" = "Q" ]; then echo '{"error":"outside the two-phase region","code":"rejected"}'; exit 0; fi
  echo "{\"value\": $THERMOPROPS_ARG_V1}" ;;
*) echo "unknown op $THERMOPROPS_OP" >&2; exit 2 ;;
esac
`

func newFakeEngine(t *testing.T, env map[string]string, opts ...Option) *Engine {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake engine is a POSIX shell script")
	}
	script := filepath.Join(t.TempDir(), "engine.sh")
	require.NoError(t, os.WriteFile(script, []byte(fakeEngine), 0o755))
	return New(Config{Name: "fake", Command: "sh", Args: []string{script}, Environment: env}, opts...)
}

func TestEngine_Queries(t *testing.T) {
	e := newFakeEngine(t, nil)
	ctx := context.Background()
	require.True(t, e.Ready())

	fluids, err := e.ListFluids(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Argon", "Nitrogen"}, fluids)

	meta, err := e.FluidMetadata(ctx, "N2")
	require.NoError(t, err)
	assert.Equal(t, domain.FluidMetadata{Name: "Nitrogen", Aliases: []string{"N2"}, Formula: "N_{2}"}, meta)

	_, err = e.FluidMetadata(ctx, "Unobtainium")
	assert.ErrorIs(t, err, domain.ErrUnknownFluid)
}

func TestEngine_ComputeProperty(t *testing.T) {
	e := newFakeEngine(t, nil)
	ctx := context.Background()

	v, err := e.ComputeProperty(ctx, "D", "T", 300.5, "P", 101325, "Nitrogen")
	require.NoError(t, err)
	assert.Equal(t, 300.5, v)

	_, err = e.ComputeProperty(ctx, "Q", "T", 300, "P", 101325, "Nitrogen")
	assert.ErrorIs(t, err, domain.ErrRejectedInput)

	// The structured error wins over the non-zero exit status.
	_, err = e.ComputeProperty(ctx, "D", "T", 300, "P", 101325, "Argon")
	assert.ErrorIs(t, err, domain.ErrUnknownFluid)
}

func TestEngine_Failures(t *testing.T) {
	ctx := context.Background()

	_, err := newFakeEngine(t, map[string]string{"ENGINE_FAIL": "1"}).ListFluids(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")

	_, err = newFakeEngine(t, map[string]string{"GARBAGE": "1"}).ListFluids(ctx)
	assert.ErrorContains(t, err, "invalid engine reply")

	_, err = newFakeEngine(t, map[string]string{"SLOW": "1"}, WithTimeout(100*time.Millisecond)).ListFluids(ctx)
	assert.ErrorContains(t, err, "timed out")

	off := New(Config{})
	assert.False(t, off.Ready())
	_, err = off.ListFluids(ctx)
	assert.ErrorIs(t, err, domain.ErrEngineUnavailable)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "engine.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("name: coolprop\ncommand: python3\nargs: [coolprop_engine.py]\nenv:\n  PYTHONUNBUFFERED: \"1\"\n"), 0o644))
	cfg, err := LoadConfig(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, Config{
		Name:        "coolprop",
		Command:     "python3",
		Args:        []string{"coolprop_engine.py"},
		Environment: map[string]string{"PYTHONUNBUFFERED": "1"},
	}, cfg)

	jsonPath := filepath.Join(dir, "engine.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"command":"./engine","args":["--stdio"]}`), 0o644))
	cfg, err = LoadConfig(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "./engine", cfg.Command)

	noCmd := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(noCmd, []byte("name: x\n"), 0o644))
	_, err = LoadConfig(noCmd)
	assert.ErrorContains(t, err, "command is required")

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

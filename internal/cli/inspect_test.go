package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thruflo/lightcycle/internal/config"
	"github.com/thruflo/lightcycle/internal/cycle"
	"github.com/thruflo/lightcycle/internal/testutil"
	"github.com/thruflo/lightcycle/internal/tui"
)

func TestInspectTable(t *testing.T) {
	quietLogs(t)
	path := testutil.WriteTestFile(t, t.TempDir(), "sample.bin", testutil.Words(testutil.SampleCycleWords...))

	out, err := executeCommand(t, context.Background(), bytes.NewReader(nil), "inspect", path)
	require.NoError(t, err)

	assert.Contains(t, out, "word")
	assert.Contains(t, out, "bottom")
	assert.Contains(t, out, "0x584c 5    G..    ..R    ..R    G..")
	assert.Contains(t, out, "4 steps, 14s per cycle")
	assert.NotContains(t, out, "\x1b[", "piped output is not coloured")

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 8)
	assert.True(t, strings.HasPrefix(lines[0], tui.BoxTopLeft))
	assert.True(t, strings.HasPrefix(lines[7], tui.BoxBottomLeft))
}

func TestInspectYAMLFromStdin(t *testing.T) {
	quietLogs(t)

	out, err := executeCommand(t, context.Background(),
		bytes.NewReader(testutil.Words(testutil.SampleCycleWords...)), "inspect", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "name: stdin")

	cf, err := config.ParseCycleFile([]byte(out))
	require.NoError(t, err)
	steps, err := cf.CycleSteps()
	require.NoError(t, err)

	encoded, err := cycle.EncodeSteps(steps)
	require.NoError(t, err)
	assert.Equal(t, testutil.Words(testutil.SampleCycleWords...), encoded)
}

func TestInspectErrors(t *testing.T) {
	quietLogs(t)

	t.Run("unknown format", func(t *testing.T) {
		_, err := executeCommand(t, context.Background(), bytes.NewReader(nil), "inspect", "--format", "json")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown format")
	})

	t.Run("empty cycle", func(t *testing.T) {
		_, err := executeCommand(t, context.Background(), bytes.NewReader(testutil.Words(testutil.Terminator)), "inspect")
		require.ErrorIs(t, err, cycle.ErrEmptyCycle)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := executeCommand(t, context.Background(), bytes.NewReader(nil), "inspect", "/nonexistent/cycle.bin")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open cycle")
	})
}

func TestStepTableColour(t *testing.T) {
	store, err := cycle.NewStore([]cycle.Step{cycle.DecodeWord(0x3249).Step})
	require.NoError(t, err)

	lines := stepTable(store.Steps(), true)
	require.Len(t, lines, 5)
	assert.Contains(t, lines[2], tui.Style("R", tui.EscRed))
	assert.Contains(t, lines[3], "1 step, 3s per cycle")
}

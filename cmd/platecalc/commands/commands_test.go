package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/barbellviz/internal/gymstats/barbell/plates"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestBreakdownCmd(t *testing.T) {
	out, err := runCmd(t, "breakdown", "--weight", "115")
	require.NoError(t, err)

	assert.Contains(t, out, "bar: 20 kg (blue)")
	assert.Contains(t, out, "1 x 25 kg (red)")
	assert.Contains(t, out, "1 x 20 kg (blue)")
	assert.Contains(t, out, "1 x 2.5 kg (red)")
	assert.Contains(t, out, "47.5 kg (104.5 lbs) per side")
	assert.NotContains(t, out, "not loadable")
}

func TestBreakdownCmd_Remainder(t *testing.T) {
	out, err := runCmd(t, "breakdown", "--weight", "60.7", "--bar", "15")
	require.NoError(t, err)

	assert.Contains(t, out, "bar: 15 kg (yellow)")
	assert.Contains(t, out, "not loadable: 0.35 kg per side")
}

func TestBreakdownCmd_EmptyBar(t *testing.T) {
	out, err := runCmd(t, "breakdown", "--weight", "20")
	require.NoError(t, err)
	assert.Contains(t, out, "no plates")
	assert.Contains(t, out, "0.0 kg (0.0 lbs) per side")
}

func TestBreakdownCmd_Errors(t *testing.T) {
	_, err := runCmd(t, "breakdown")
	assert.Error(t, err)

	_, err = runCmd(t, "breakdown", "--weight", "100", "--bar", "12")
	assert.Error(t, err)

	_, err = runCmd(t, "breakdown", "--weight", "2e18")
	assert.ErrorIs(t, err, plates.ErrWeightOutOfRange)

	_, err = runCmd(t, "breakdown", "--weight", "NaN")
	assert.ErrorIs(t, err, plates.ErrWeightOutOfRange)
}

func TestShowCmd(t *testing.T) {
	out, err := runCmd(t, "show", "--weights", "100,60")
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(out, "--- bar"))
	assert.Contains(t, out, "--- bar 20 kg (blue) ---")
	assert.Contains(t, out, "100 kg")
	assert.Contains(t, out, "40.0 kg (88.0 lbs) per side")
	assert.Contains(t, out, "20.0 kg (44.0 lbs) per side")
}

func TestShowCmd_AllBars(t *testing.T) {
	out, err := runCmd(t, "show", "--weights", "100", "--all-bars")
	require.NoError(t, err)

	assert.Equal(t, 3, strings.Count(out, "--- bar"))
	assert.Contains(t, out, "40.0 kg (88.0 lbs) per side")
	assert.Contains(t, out, "--- bar 15 kg (yellow) ---")
	assert.Contains(t, out, "42.5 kg (93.5 lbs) per side")
	assert.Contains(t, out, "--- bar 10 kg (green) ---")
	assert.Contains(t, out, "45.0 kg (99.0 lbs) per side")
}

func TestShowCmd_Errors(t *testing.T) {
	_, err := runCmd(t, "show", "--weights", "100,abc")
	assert.Error(t, err)

	_, err = runCmd(t, "show", "--weights", ",")
	assert.Error(t, err)

	_, err = runCmd(t, "show", "--weights", "100,1e9")
	assert.ErrorIs(t, err, plates.ErrWeightOutOfRange)
}

func TestShowCmd_Config(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[development]
port = 8080

[[development.bars]]
weight = 15
color = "yellow"

[[development.denominations]]
weight = 10
color = "green"
`), 0o600))

	out, err := runCmd(t, "--config", path, "breakdown", "--weight", "45")
	require.NoError(t, err)
	assert.Contains(t, out, "bar: 15 kg (yellow)")
	assert.Contains(t, out, "1 x 10 kg (green)")
	assert.Contains(t, out, "not loadable: 5.00 kg per side")
}

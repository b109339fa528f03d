package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kismap/internal/kismet/kismettest"
	"kismap/internal/runner"
	"kismap/internal/wifi"
)

func init() {
	color.NoColor = true
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())

	return out.String(), err
}

func fixture(t *testing.T) string {
	t.Helper()

	return kismettest.NewCapture(t,
		[]kismettest.Device{
			{MAC: "AA:00:00:00:00:01", Type: "Wi-Fi AP", StrongestSignal: -40, Lat: 52.1, Lon: 4.3, JSON: kismettest.AccessPointJSON("Canal", 0)},
		},
		[]kismettest.Packet{
			{TS: 10, MAC: "AA:00:00:00:00:01", Lat: 52.1, Lon: 4.3, Signal: -40, Frequency: 2462000},
			{TS: 11, MAC: "AA:00:00:00:00:01", Lat: 52.1001, Lon: 4.3001, Signal: -55, Frequency: 5745000},
		},
	)
}

func TestRootGeneratesMap(t *testing.T) {
	input := fixture(t)
	output := filepath.Join(t.TempDir(), "map.html")

	out, err := execute(t, "-i", input, "-o", output, "--driver", "sqlite", "--export-csv", "-b", "5")
	require.NoError(t, err)

	assert.Contains(t, out, "Found 1 packets and 1 devices")
	assert.Contains(t, out, "✓ Heatmap saved to: "+output)
	assert.FileExists(t, output)
	assert.FileExists(t, filepath.Join(filepath.Dir(output), "map.csv"))
}

func TestRootRequiresInput(t *testing.T) {
	_, err := execute(t, "-o", filepath.Join(t.TempDir(), "map.html"))
	assert.EqualError(t, err, "input file is required (-i/--input)")
}

func TestRootMissingInput(t *testing.T) {
	_, err := execute(t, "-i", filepath.Join(t.TempDir(), "none.kismet"), "--driver", "sqlite")
	assert.True(t, errors.Is(err, runner.ErrInputNotFound))
}

func TestRootRejectsUnknownBand(t *testing.T) {
	_, err := execute(t, "-i", fixture(t), "-b", "4")
	assert.ErrorContains(t, err, "invalid band")
}

func TestResolveFlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "kismap.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
input: from-config.kismet
output: from-config.html
filter:
  bands: ["6"]
  min_signal: -80
export:
  geojson: true
`), 0o600))

	var f flags
	cmd := newCommand(&f)
	require.NoError(t, cmd.ParseFlags([]string{
		"--config", cfgPath,
		"-o", "from-flag.html",
		"-b", "2.4", "-b", "5",
		"-e", "Cafe, Upstairs",
		"-v",
	}))

	cfg, err := f.resolve(cmd)
	require.NoError(t, err)

	assert.Equal(t, "from-config.kismet", cfg.Input)
	assert.Equal(t, "from-flag.html", cfg.Output)
	assert.Equal(t, []string{"2.4", "5"}, cfg.Filter.Bands)
	assert.Equal(t, []string{"Cafe, Upstairs"}, cfg.Filter.SSIDs)
	assert.Equal(t, -80, cfg.Filter.MinSignal)
	assert.True(t, cfg.Export.GeoJSON)
	assert.True(t, cfg.Verbose)

	crit, err := cfg.Criteria()
	require.NoError(t, err)
	assert.Equal(t, []wifi.Band{wifi.Band24, wifi.Band5}, crit.Bands)
}

package eventlist

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(filename, []byte(content), 0o644))
	return filename
}

func TestLoadConfigurationDefaults(t *testing.T) {
	config, err := LoadConfiguration(writeConfig(t, `{"file_in": "run.evl"}`))
	require.NoError(t, err)

	defaults := DefaultConfiguration()
	defaults.FileIn = "run.evl"
	assert.Equal(t, defaults, config)
	assert.Equal(t, TofSort, config.SortOrder)
}

func TestLoadConfigurationOverrides(t *testing.T) {
	config, err := LoadConfiguration(writeConfig(t, `{
		"no_db": true,
		"tof_factor": -1,
		"bin_width": 10,
		"mask_ranges": [[10, 20], [30, 40]],
		"split": true,
		"splitters": [{"start": 0, "stop": 10, "index": 0}, {"start": 10, "stop": 20, "index": 1}],
		"sort_order": "pulse_time"
	}`))
	require.NoError(t, err)

	assert.True(t, config.NoDB)
	assert.Equal(t, -1.0, config.TofFactor)
	assert.Equal(t, 10.0, config.BinWidth)
	assert.Equal(t, []TofRange{{10, 20}, {30, 40}}, config.MaskRanges)
	assert.Equal(t, TimeSplitter{{0, 10, 0}, {10, 20, 1}}, config.Splitters)
	assert.Equal(t, PulseTimeSort, config.SortOrder)
}

func TestLoadConfigurationErrors(t *testing.T) {
	_, err := LoadConfiguration(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadConfiguration(writeConfig(t, `{"sort_order": "random"}`))
	var unknown *UnknownSortTypeError
	assert.ErrorAs(t, err, &unknown)

	_, err = LoadConfiguration(writeConfig(t, `{"mask_ranges": [[5, 1]]}`))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestSlogLogger(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewSlogLogger(&out, &errOut, slog.LevelDebug)

	l.Info("reading events", "eventReader")
	l.Error("something failed")

	line := out.String()
	assert.True(t, strings.HasSuffix(line, "[eventReader] reading events\n"), line)
	assert.Contains(t, errOut.String(), `"msg":"something failed"`)

	PrintConfiguration(DefaultConfiguration(), l)
	assert.Contains(t, out.String(), "[config] Sort order: tof")
}

package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/switch-sim/sim"
	"github.com/inference-sim/switch-sim/sim/sweep"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sweep.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSweepFile_OverlaysBase(t *testing.T) {
	// GIVEN a file that only sets max_ports and slots
	path := writeFile(t, "sweep:\n  max_ports: 12\n  slots: 500\n")
	base := SweepFile{
		Sweep:  sweep.Config{MinPorts: 4, MaxPorts: 8, Slots: 131913, BaseSeed: 7},
		Output: "out.csv",
	}

	// WHEN loaded on top of base
	got, err := loadSweepFile(path, base)
	require.NoError(t, err)

	// THEN absent keys keep base values
	assert.Equal(t, SweepFile{
		Sweep:  sweep.Config{MinPorts: 4, MaxPorts: 12, Slots: 500, BaseSeed: 7},
		Output: "out.csv",
	}, got)
}

func TestLoadSweepFile_UnknownField_Error(t *testing.T) {
	path := writeFile(t, "sweep:\n  max_port: 12\n")

	_, err := loadSweepFile(path, SweepFile{})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "max_port"), "error should name the unknown key: %v", err)
}

func TestLoadSweepFile_Missing_Error(t *testing.T) {
	_, err := loadSweepFile(filepath.Join(t.TempDir(), "absent.yaml"), SweepFile{})
	assert.Error(t, err)
}

func TestResolveSweepFile_ChangedFlagsOverrideFile(t *testing.T) {
	// GIVEN a config file and an explicitly set --slots flag
	resetFlags(t, sweepCmd)
	path := writeFile(t, "sweep:\n  min_ports: 2\n  max_ports: 3\n  slots: 500\noutput: from-file.csv\n")
	require.NoError(t, sweepCmd.Flags().Set("config", path))
	require.NoError(t, sweepCmd.Flags().Set("slots", "40"))

	// WHEN resolved
	file, err := resolveSweepFile(sweepCmd)
	require.NoError(t, err)

	// THEN file values apply except where a flag was set explicitly
	assert.Equal(t, 2, file.Sweep.MinPorts)
	assert.Equal(t, 3, file.Sweep.MaxPorts)
	assert.Equal(t, int64(40), file.Sweep.Slots)
	assert.Equal(t, defaultSeed, file.Sweep.BaseSeed)
	assert.Equal(t, "from-file.csv", file.Output)
}

func TestResolveSweepFile_Invalid(t *testing.T) {
	resetFlags(t, sweepCmd)
	require.NoError(t, sweepCmd.Flags().Set("min-ports", "9"))

	_, err := resolveSweepFile(sweepCmd)
	assert.Error(t, err)
}

func TestSweepCommand_WritesTable(t *testing.T) {
	resetFlags(t, sweepCmd)
	out := filepath.Join(t.TempDir(), "table.csv")
	rootCmd.SetArgs([]string{"sweep", "--min-ports", "2", "--max-ports", "4", "--slots", "100", "--output", out})

	printed := captureStdout(t, func() {
		require.NoError(t, rootCmd.Execute())
	})
	assert.Contains(t, printed, "ports=2 avg=")
	assert.NotContains(t, printed, "000000 (", "averages use significant digits, not fixed decimals")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "ports,avg_packets_per_slot,avg_throughput_percent", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "2,"))
	assert.True(t, strings.HasPrefix(lines[3], "4,"))
}

func TestFormatSweepRow_SignificantDigits(t *testing.T) {
	tests := []struct {
		name string
		row  sweep.Row
		want string
	}{
		{
			name: "repeating fraction",
			row:  sweep.Row{Ports: 3, Result: sim.Result{AvgPacketsPerSlot: 2.0 / 3, AvgPercent: 200.0 / 9}},
			want: "ports=3 avg=0.666667 (22.2222%)",
		},
		{
			name: "whole numbers",
			row:  sweep.Row{Ports: 4, Result: sim.Result{AvgPacketsPerSlot: 4, AvgPercent: 100}},
			want: "ports=4 avg=4 (100%)",
		},
		{
			name: "long decimal",
			row:  sweep.Row{Ports: 8, Result: sim.Result{AvgPacketsPerSlot: 7.912345678, AvgPercent: 98.904320975}},
			want: "ports=8 avg=7.91235 (98.9043%)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatSweepRow(tt.row))
		})
	}
}

package telemetry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/synapse/config"
	"github.com/pthm-cable/synapse/graph"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("", "run")
	require.NoError(t, err)
	assert.Nil(t, om)

	// Nil manager is a no-op
	assert.NoError(t, om.WriteTelemetry(WindowStats{}))
	assert.NoError(t, om.WritePerf(PerfStats{}, 0))
	assert.NoError(t, om.WriteGraph(graph.Stats{}))
	assert.NoError(t, om.Close())
	assert.Empty(t, om.Dir())
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	om, err := NewOutputManager(dir, "abc")
	require.NoError(t, err)

	require.NoError(t, om.WriteTelemetry(WindowStats{RunID: "abc", WindowEndTick: 10, Live: 5}))
	require.NoError(t, om.WriteTelemetry(WindowStats{RunID: "abc", WindowEndTick: 20, Live: 6}))
	require.NoError(t, om.WritePerf(PerfStats{}, 20))
	require.NoError(t, om.WriteGraph(graph.Stats{Neurons: 3, Edges: 2}))
	require.NoError(t, om.WriteConfig(config.Default()))
	require.NoError(t, om.Close())

	var rows []WindowStats
	f, err := os.Open(filepath.Join(dir, "telemetry.csv"))
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, gocsv.UnmarshalFile(f, &rows))

	require.Len(t, rows, 2, "header written once")
	assert.Equal(t, int32(10), rows[0].WindowEndTick)
	assert.Equal(t, 6, rows[1].Live)
	assert.Equal(t, "abc", rows[1].RunID)

	var perf []PerfStatsCSV
	pf, err := os.Open(filepath.Join(dir, "perf.csv"))
	require.NoError(t, err)
	defer pf.Close()
	require.NoError(t, gocsv.UnmarshalFile(pf, &perf))
	require.Len(t, perf, 1)
	assert.Equal(t, "abc", perf[0].RunID)

	var g []GraphStatsCSV
	gf, err := os.Open(filepath.Join(dir, "graph.csv"))
	require.NoError(t, err)
	defer gf.Close()
	require.NoError(t, gocsv.UnmarshalFile(gf, &g))
	require.Len(t, g, 1)
	assert.Equal(t, 2, g[0].Edges)

	assert.FileExists(t, filepath.Join(dir, "config.yaml"))
}

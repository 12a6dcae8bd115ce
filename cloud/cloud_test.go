package cloud

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/synapse/config"
	"github.com/pthm-cable/synapse/graph"
)

func TestTransformApply(t *testing.T) {
	pts := []graph.Point{{X: 1, Y: 1, Z: 1}, {X: 2, Y: 2, Z: 2}, {X: 3, Y: 3, Z: 3}, {X: 4, Y: 4, Z: 4}, {X: 5, Y: 5, Z: 5}}

	tests := []struct {
		name string
		tr   Transform
		want []graph.Point
	}{
		{"identity", Identity(), pts},
		{"stride", Transform{Stride: 2, Scale: 1}, []graph.Point{{X: 1, Y: 1, Z: 1}, {X: 3, Y: 3, Z: 3}, {X: 5, Y: 5, Z: 5}}},
		{"zero stride keeps all", Transform{Stride: 0, Scale: 1}, pts},
		{"scale offset", Transform{Stride: 4, Scale: 280, Offset: graph.Point{Y: -170}},
			[]graph.Point{{X: 280, Y: 110, Z: 280}, {X: 1400, Y: 1230, Z: 1400}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tr.Apply(pts))
		})
	}
}

func TestLoadCSV(t *testing.T) {
	in := "x,y,z\n0,0,0\n10,0.5,-2\n"
	pts, err := LoadCSV(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []graph.Point{{X: 0, Y: 0, Z: 0}, {X: 10, Y: 0.5, Z: -2}}, pts)

	_, err = LoadCSV(strings.NewReader("x,y,z\n"))
	assert.ErrorIs(t, err, ErrNoPoints)

	_, err = LoadCSV(strings.NewReader("x,y,z\nfoo,1,2\n"))
	assert.Error(t, err)
}

func TestCSVRoundTripFile(t *testing.T) {
	pts := Shell(ShellParams{Count: 50, Radius: [3]float64{10, 10, 10}}, 1)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, pts))
	path := filepath.Join(t.TempDir(), "cloud.csv")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	got, err := LoadCSVFile(path)
	require.NoError(t, err)
	assert.Len(t, got, 50)

	_, err = LoadCSVFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestShell(t *testing.T) {
	p := ShellParams{Count: 1000, Radius: [3]float64{100, 80, 120}, NoiseScale: 0.02, Amplitude: 0.1}
	pts := Shell(p, 7)
	require.Len(t, pts, 1000)

	for _, pt := range pts {
		// Normalized ellipsoid radius stays within the noise band
		e := math.Sqrt(sq(float64(pt.X)/100) + sq(float64(pt.Y)/80) + sq(float64(pt.Z)/120))
		assert.InDelta(t, 1.0, e, 0.101)
	}

	assert.Equal(t, pts, Shell(p, 7), "same seed, same cloud")
	assert.NotEqual(t, pts, Shell(p, 8))
	assert.Empty(t, Shell(ShellParams{}, 1))
}

func TestShellBuildsConnectedGraph(t *testing.T) {
	cfg := config.Default()
	pts, err := FromConfig(cfg.Cloud, 1)
	require.NoError(t, err)

	g, err := graph.Build(pts, graph.DefaultParams())
	require.NoError(t, err)
	assert.Greater(t, g.Len(), len(pts)/2, "default shell should keep most samples")
}

func TestFromConfigErrors(t *testing.T) {
	cfg := config.Default().Cloud
	cfg.Source = "mesh"
	_, err := FromConfig(cfg, 1)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	cfg.Source = "shell"
	cfg.Shell.Count = 0
	_, err = FromConfig(cfg, 1)
	assert.ErrorIs(t, err, ErrNoPoints)
}

func sq(v float64) float64 { return v * v }

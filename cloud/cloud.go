// Package cloud produces the 3D point clouds neuron graphs are built over.
package cloud

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/synapse/config"
	"github.com/pthm-cable/synapse/graph"
)

// ErrNoPoints is returned when a source yields no samples.
var ErrNoPoints = errors.New("cloud: no points")

// Transform selects and places raw samples.
type Transform struct {
	Stride int // keep every Stride-th sample, starting with the first
	Scale  float32
	Offset graph.Point
}

// Identity keeps every sample unchanged.
func Identity() Transform {
	return Transform{Stride: 1, Scale: 1}
}

// Apply returns a new slice of the selected samples, scaled then offset.
func (t Transform) Apply(pts []graph.Point) []graph.Point {
	stride := max(t.Stride, 1)
	out := make([]graph.Point, 0, (len(pts)+stride-1)/stride)
	for i := 0; i < len(pts); i += stride {
		p := pts[i]
		out = append(out, graph.Point{
			X: p.X*t.Scale + t.Offset.X,
			Y: p.Y*t.Scale + t.Offset.Y,
			Z: p.Z*t.Scale + t.Offset.Z,
		})
	}
	return out
}

// csvPoint is one row of a point cloud CSV with x, y, z columns.
type csvPoint struct {
	X float32 `csv:"x"`
	Y float32 `csv:"y"`
	Z float32 `csv:"z"`
}

// LoadCSV reads points from CSV with an x,y,z header.
func LoadCSV(r io.Reader) ([]graph.Point, error) {
	var rows []csvPoint
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("parsing point csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNoPoints
	}

	pts := make([]graph.Point, len(rows))
	for i, row := range rows {
		pts[i] = graph.Point{X: row.X, Y: row.Y, Z: row.Z}
	}
	return pts, nil
}

// LoadCSVFile reads points from the CSV file at path.
func LoadCSVFile(path string) ([]graph.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening point cloud: %w", err)
	}
	defer f.Close()

	pts, err := LoadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pts, nil
}

// WriteCSV writes pts with an x,y,z header.
func WriteCSV(w io.Writer, pts []graph.Point) error {
	rows := make([]csvPoint, len(pts))
	for i, p := range pts {
		rows[i] = csvPoint{X: p.X, Y: p.Y, Z: p.Z}
	}
	return gocsv.Marshal(rows, w)
}

// FromConfig loads or generates the configured cloud and applies its transform.
func FromConfig(cfg config.CloudConfig, seed int64) ([]graph.Point, error) {
	var raw []graph.Point
	switch cfg.Source {
	case "shell":
		raw = Shell(ShellParamsFromConfig(cfg.Shell), seed)
	case "csv":
		pts, err := LoadCSVFile(cfg.Path)
		if err != nil {
			return nil, err
		}
		raw = pts
	default:
		return nil, fmt.Errorf("%w: unknown cloud source %q", config.ErrInvalidConfig, cfg.Source)
	}

	pts := Transform{
		Stride: cfg.Stride,
		Scale:  float32(cfg.Scale),
		Offset: graph.Point{X: float32(cfg.OffsetX), Y: float32(cfg.OffsetY), Z: float32(cfg.OffsetZ)},
	}.Apply(raw)
	if len(pts) == 0 {
		return nil, ErrNoPoints
	}
	return pts, nil
}

package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/synapse/config"
	"github.com/pthm-cable/synapse/graph"
)

// GraphStatsCSV is the flat CSV form of graph.Stats.
type GraphStatsCSV struct {
	RunID       string  `csv:"run_id"`
	Input       int     `csv:"input"`
	Neurons     int     `csv:"neurons"`
	Edges       int     `csv:"edges"`
	Pruned      int     `csv:"pruned"`
	Lonely      int     `csv:"lonely"`
	Iterations  int     `csv:"iterations"`
	MeanDegree  float64 `csv:"mean_degree"`
	StdDegree   float64 `csv:"std_degree"`
	MeanEdgeLen float64 `csv:"mean_edge_len"`
	MinEdgeLen  float64 `csv:"min_edge_len"`
	MaxEdgeLen  float64 `csv:"max_edge_len"`
}

// NewGraphStatsCSV flattens s.
func NewGraphStatsCSV(runID string, s graph.Stats) GraphStatsCSV {
	return GraphStatsCSV{
		RunID:       runID,
		Input:       s.Input,
		Neurons:     s.Neurons,
		Edges:       s.Edges,
		Pruned:      s.Pruned,
		Lonely:      s.Lonely,
		Iterations:  s.Iterations,
		MeanDegree:  s.MeanDegree,
		StdDegree:   s.StdDegree,
		MeanEdgeLen: s.MeanEdgeLen,
		MinEdgeLen:  s.MinEdgeLen,
		MaxEdgeLen:  s.MaxEdgeLen,
	}
}

// csvFile appends records to one CSV file, writing the header once.
type csvFile struct {
	f             *os.File
	headerWritten bool
}

func openCSV(dir, name string) (*csvFile, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvFile{f: f}, nil
}

func writeRecord[T any](c *csvFile, record T) error {
	records := []T{record}
	if !c.headerWritten {
		if err := gocsv.Marshal(records, c.f); err != nil {
			return err
		}
		c.headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, c.f)
}

// OutputManager handles structured run output with CSV logging.
type OutputManager struct {
	dir       string
	runID     string
	telemetry *csvFile
	perf      *csvFile
	graph     *csvFile
}

// NewOutputManager creates the output directory and its CSV files.
// Returns nil if dir is empty (output disabled); all methods accept a nil receiver.
func NewOutputManager(dir, runID string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir, runID: runID}
	var err error
	if om.telemetry, err = openCSV(dir, "telemetry.csv"); err != nil {
		return nil, err
	}
	if om.perf, err = openCSV(dir, "perf.csv"); err != nil {
		om.Close()
		return nil, err
	}
	if om.graph, err = openCSV(dir, "graph.csv"); err != nil {
		om.Close()
		return nil, err
	}
	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTelemetry writes a window stats record to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	if err := writeRecord(om.telemetry, stats); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

// WritePerf writes a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int32) error {
	if om == nil {
		return nil
	}
	if err := writeRecord(om.perf, stats.ToCSV(om.runID, windowEnd)); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// WriteGraph writes the graph summary to graph.csv.
func (om *OutputManager) WriteGraph(s graph.Stats) error {
	if om == nil {
		return nil
	}
	if err := writeRecord(om.graph, NewGraphStatsCSV(om.runID, s)); err != nil {
		return fmt.Errorf("writing graph stats: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes all output files and returns the first error.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, c := range []*csvFile{om.telemetry, om.perf, om.graph} {
		if c == nil {
			continue
		}
		if err := c.f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Package storage persists Langevin runs as one directory per run holding
// metadata.json and trajectory.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/markovmodel/compsci-2018/internal/core"
	"github.com/markovmodel/compsci-2018/internal/experiment"
	"github.com/markovmodel/compsci-2018/internal/langevin"
	"gonum.org/v1/gonum/mat"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Potential  string             `json:"potential"`
	Integrator string             `json:"integrator"`
	Params     map[string]float64 `json:"params,omitempty"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Particles  int                `json:"particles"`
	Dim        int                `json:"dim"`
	Mass       float64            `json:"mass"`
	Steps      int                `json:"steps"`
	Dt         float64            `json:"dt"`
	Damping    float64            `json:"damping"`
	Beta       float64            `json:"beta"`
	Metrics    map[string]float64 `json:"metrics"`
}

// NewMetadata describes a finished experiment.
func NewMetadata(cfg experiment.Config, res *experiment.Result) RunMetadata {
	return RunMetadata{
		Potential:  cfg.Potential,
		Integrator: cfg.Integrator,
		Params:     cfg.Params,
		Timestamp:  time.Now(),
		Seed:       cfg.Seed,
		Particles:  cfg.Particles,
		Dim:        cfg.Dim,
		Mass:       cfg.Mass,
		Steps:      res.Trajectory.Steps(),
		Dt:         cfg.Langevin.Dt,
		Damping:    cfg.Langevin.Damping,
		Beta:       cfg.Langevin.Beta,
		Metrics:    res.Metrics,
	}
}

// Save writes a new run directory and returns its ID.
func (s *Store) Save(cfg experiment.Config, res *experiment.Result) (string, error) {
	meta := NewMetadata(cfg, res)
	meta.ID = fmt.Sprintf("%s_%d", cfg.Potential, meta.Timestamp.UnixNano())
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, trajectoryFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := writeTrajectory(w, res.Trajectory); err != nil {
		return "", err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return meta.ID, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// One row per frame: time, then positions and velocities in row-major order.
func writeTrajectory(w *csv.Writer, traj *langevin.Trajectory) error {
	if len(traj.X) == 0 {
		return nil
	}
	n, d := traj.X[0].Dims()

	header := []string{"time"}
	for _, prefix := range []string{"x", "v"} {
		for i := 0; i < n; i++ {
			for k := 0; k < d; k++ {
				header = append(header, fmt.Sprintf("%s%d_%d", prefix, i, k))
			}
		}
	}
	if err := w.Write(header); err != nil {
		return err
	}

	times := traj.Times()
	row := make([]string, 0, len(header))
	for f := range traj.X {
		row = append(row[:0], formatFloat(times[f]))
		for _, frame := range []*mat.Dense{traj.X[f], traj.V[f]} {
			for i := 0; i < n; i++ {
				for _, val := range frame.RawRowView(i) {
					row = append(row, formatFloat(val))
				}
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// List returns the metadata of all readable runs, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadStates reads the trajectory of a run back into frames.
func (s *Store) LoadStates(runID string) (*langevin.Trajectory, error) {
	const op = "storage.LoadStates"
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	traj := &langevin.Trajectory{Dt: meta.Dt}
	if len(records) < 2 {
		return traj, nil
	}

	n, d := meta.Particles, meta.Dim
	width := 1 + 2*n*d
	for i, record := range records[1:] {
		if len(record) != width {
			return nil, core.LengthMismatch(op, fmt.Sprintf("row %d", i+1), len(record), width)
		}
		vals := make([]float64, width-1)
		for j := range vals {
			if vals[j], err = strconv.ParseFloat(record[j+1], 64); err != nil {
				return nil, fmt.Errorf("%s: row %d: %w", op, i+1, err)
			}
		}
		traj.X = append(traj.X, mat.NewDense(n, d, vals[:n*d]))
		traj.V = append(traj.V, mat.NewDense(n, d, vals[n*d:]))
	}
	return traj, nil
}

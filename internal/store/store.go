// Package store persists completed runs: one directory per run with
// JSON metadata and the initial and final fields as plain-text grids.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/san-kum/advdiff/internal/config"
	"github.com/san-kum/advdiff/internal/field"
	"github.com/san-kum/advdiff/internal/solver"
)

const (
	initFile  = "u_init.txt"
	finalFile = "u_final.txt"
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
	ID          string             `json:"id"`
	Timestamp   time.Time          `json:"timestamp"`
	NX          int                `json:"nx"`
	NY          int                `json:"ny"`
	Init        string             `json:"init"`
	Flow        string             `json:"flow"`
	Diffusivity float64            `json:"diffusivity"`
	TEnd        float64            `json:"t_end"`
	Steps       int                `json:"steps"`
	WallSeconds float64            `json:"wall_seconds"`
	WallPerDoF  float64            `json:"wall_per_dof"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save writes one completed run and returns its id.
func (s *Store) Save(cfg *config.Config, res *solver.Result, uInit, uFinal *field.Grid) (string, error) {
	runID := fmt.Sprintf("%s-%s_%d", cfg.Init, cfg.Flow, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Timestamp:   time.Now(),
		NX:          cfg.NX,
		NY:          cfg.NY,
		Init:        cfg.Init,
		Flow:        cfg.Flow,
		Diffusivity: cfg.Diffusivity,
		TEnd:        cfg.TEnd,
		Steps:       cfg.Steps,
		WallSeconds: res.Wall.Seconds(),
		WallPerDoF:  res.WallPerDoF,
		Metrics:     res.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	for _, out := range []struct {
		name string
		grid *field.Grid
	}{
		{initFile, uInit},
		{finalFile, uFinal},
	} {
		f, err := os.Create(filepath.Join(runDir, out.name))
		if err != nil {
			return "", err
		}
		if err := WriteField(f, out.grid); err != nil {
			f.Close()
			return "", err
		}
		if err := f.Close(); err != nil {
			return "", err
		}
	}

	return runID, nil
}

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

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadInitial reads back the stored initial field of a run.
func (s *Store) LoadInitial(runID string) (*field.Grid, error) {
	return s.loadField(runID, initFile)
}

// LoadFinal reads back the stored final field of a run.
func (s *Store) LoadFinal(runID string) (*field.Grid, error) {
	return s.loadField(runID, finalFile)
}

func (s *Store) loadField(runID, name string) (*field.Grid, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, name))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadField(f)
}

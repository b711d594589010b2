// Package config translates external run descriptions (YAML files,
// legacy whitespace input, CLI flags) into the typed parameters of the
// core solver.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/advdiff/internal/field"
	"github.com/san-kum/advdiff/internal/stencil"
)

const (
	DefaultNX          = 128
	DefaultNY          = 128
	DefaultDiffusivity = 0.0005
	DefaultTEnd        = 1.0
	DefaultSteps       = 2000
)

// Domain errors at the configuration boundary.
var (
	// ErrInvalidConfig indicates a run description that names unknown
	// presets or carries out-of-range parameters.
	ErrInvalidConfig = errors.New("config: invalid configuration")

	// ErrMissingInput indicates an unreadable configuration source.
	// Fatal at program entry, before any solver state exists.
	ErrMissingInput = errors.New("config: missing input")
)

// InvalidError carries the offending field and input text of a
// rejected configuration.
type InvalidError struct {
	Field string
	Value string
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("%v: %s %q", ErrInvalidConfig, e.Field, e.Value)
}

func (e *InvalidError) Unwrap() error { return ErrInvalidConfig }

// Config describes one simulation run.
type Config struct {
	NX          int     `yaml:"nx"`
	NY          int     `yaml:"ny"`
	Init        string  `yaml:"init"`
	Flow        string  `yaml:"flow"`
	Diffusivity float64 `yaml:"diffusivity"`
	TEnd        float64 `yaml:"t_end"`
	Steps       int     `yaml:"steps"`
}

func DefaultConfig() *Config {
	return &Config{
		NX:          DefaultNX,
		NY:          DefaultNY,
		Init:        "gauss",
		Flow:        "diagonal",
		Diffusivity: DefaultDiffusivity,
		TEnd:        DefaultTEnd,
		Steps:       DefaultSteps,
	}
}

// Load reads a YAML run description, filling unset fields from the
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMissingInput, path)
		}
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ParseInput reads the legacy plain-text run description: whitespace-
// separated fields in the fixed order
//
//	nX nY init flow diffusivity tEnd steps
func ParseInput(r io.Reader) (*Config, error) {
	cfg := &Config{}
	_, err := fmt.Fscan(r,
		&cfg.NX, &cfg.NY, &cfg.Init, &cfg.Flow,
		&cfg.Diffusivity, &cfg.TEnd, &cfg.Steps)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// LoadInput reads the legacy text format from a file.
func LoadInput(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMissingInput, path)
		}
		return nil, err
	}
	defer f.Close()
	return ParseInput(f)
}

// Validate checks ranges and maps the external preset names onto the
// closed core enums. It fails with an InvalidError before any solver
// state is built.
func (c *Config) Validate() (field.Init, stencil.Flow, error) {
	if c.NX < 1 || c.NY < 1 {
		return 0, 0, &InvalidError{Field: "grid size", Value: fmt.Sprintf("%dx%d", c.NX, c.NY)}
	}
	if c.Steps < 1 {
		return 0, 0, &InvalidError{Field: "steps", Value: fmt.Sprintf("%d", c.Steps)}
	}
	if c.TEnd < 0 {
		return 0, 0, &InvalidError{Field: "t_end", Value: fmt.Sprintf("%g", c.TEnd)}
	}
	ic, err := field.ParseInit(c.Init)
	if err != nil {
		return 0, 0, &InvalidError{Field: "init", Value: c.Init}
	}
	fl, err := stencil.ParseFlow(c.Flow)
	if err != nil {
		return 0, 0, &InvalidError{Field: "flow", Value: c.Flow}
	}
	return ic, fl, nil
}

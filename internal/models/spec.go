package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EvalSpec represents a complete evaluation specification loaded from an
// eval.yaml file. All file paths are relative to the spec's directory.
type EvalSpec struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Student     string `yaml:"student"`
	Config      Config `yaml:"config"`
	Files       Files  `yaml:"files"`
	// Modes lists the context modes to run per question, in order.
	// Empty means all four canonical modes.
	Modes []Mode `yaml:"modes,omitempty"`
}

// Config controls execution behavior. There is deliberately no process-wide
// mutable configuration: a Config travels inside the spec and is handed to
// the runner and aggregator at construction.
type Config struct {
	Model               string         `yaml:"model"`
	BackendURL          string         `yaml:"backend_url"`
	Engine              string         `yaml:"engine"`
	TimeoutSec          int            `yaml:"timeout_seconds"`
	Stream              bool           `yaml:"stream,omitempty"`
	Parallel            bool           `yaml:"parallel,omitempty"`
	Workers             int            `yaml:"max_workers,omitempty"`
	BootstrapIterations int            `yaml:"bootstrap_iterations"`
	LowGradeThreshold   string         `yaml:"low_grade_threshold"`
	Personalized        *bool          `yaml:"personalized,omitempty"`
	Extraction          map[string]any `yaml:"extraction,omitempty"`
}

// Files names the input files for a run.
type Files struct {
	Catalog     string `yaml:"catalog"`
	Accounts    string `yaml:"accounts"`
	Enrollments string `yaml:"enrollments"`
	PlansDir    string `yaml:"plans_dir,omitempty"`
	Questions   string `yaml:"questions"`
}

const (
	defaultBackendURL = "http://localhost:11434"
	defaultEngine     = "ollama"
	defaultTimeoutSec = 600
	defaultThreshold  = "C"
)

// LoadEvalSpec loads and validates a spec from a YAML file, applying
// defaults for omitted fields.
func LoadEvalSpec(path string) (*EvalSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var spec EvalSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, err
	}
	spec.applyDefaults()

	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *EvalSpec) applyDefaults() {
	if s.Config.BackendURL == "" {
		s.Config.BackendURL = defaultBackendURL
	}
	if s.Config.Engine == "" {
		s.Config.Engine = defaultEngine
	}
	if s.Config.TimeoutSec == 0 {
		s.Config.TimeoutSec = defaultTimeoutSec
	}
	if s.Config.BootstrapIterations == 0 {
		s.Config.BootstrapIterations = 1000
	}
	if s.Config.LowGradeThreshold == "" {
		s.Config.LowGradeThreshold = defaultThreshold
	}
	if len(s.Modes) == 0 {
		s.Modes = DefaultModes()
	}
}

// PersonalizedScoring reports whether the grade-aware scoring variant is
// enabled (the default).
func (s *EvalSpec) PersonalizedScoring() bool {
	return s.Config.Personalized == nil || *s.Config.Personalized
}

// Validate checks that the spec is complete and internally consistent.
func (s *EvalSpec) Validate() error {
	if s.Student == "" {
		return fmt.Errorf("student is required")
	}
	if s.Config.Model == "" {
		return fmt.Errorf("config.model is required")
	}
	if s.Config.TimeoutSec < 1 {
		return fmt.Errorf("config.timeout_seconds must be at least 1, got %d", s.Config.TimeoutSec)
	}
	if s.Config.BootstrapIterations < 1 {
		return fmt.Errorf("config.bootstrap_iterations must be at least 1, got %d", s.Config.BootstrapIterations)
	}
	switch s.Config.Engine {
	case "ollama", "mock":
	default:
		return fmt.Errorf("config.engine must be ollama or mock, got %q", s.Config.Engine)
	}
	for _, m := range s.Modes {
		if _, err := ParseMode(string(m)); err != nil {
			return err
		}
	}
	if s.Files.Catalog == "" || s.Files.Questions == "" {
		return fmt.Errorf("files.catalog and files.questions are required")
	}
	if s.Files.Accounts == "" || s.Files.Enrollments == "" {
		return fmt.Errorf("files.accounts and files.enrollments are required")
	}
	return nil
}

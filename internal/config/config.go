// Package config carries the immutable per-run configuration handed to the
// runner and aggregator at construction. There is no process-wide mutable
// state: everything a run needs travels in an EvalConfig value.
package config

import (
	"path/filepath"

	"github.com/smartcourse/courseval/internal/models"
)

// EvalConfig bundles a loaded spec with run-level settings that come from
// the command line rather than the spec file.
type EvalConfig struct {
	spec       *models.EvalSpec
	specDir    string
	outputPath string
	cacheDir   string
	verbose    bool
	seed       int64
}

// Option is a functional option for NewEvalConfig.
type Option func(*EvalConfig)

// NewEvalConfig creates a config for the given spec, applying options in
// order (last one wins).
func NewEvalConfig(spec *models.EvalSpec, opts ...Option) *EvalConfig {
	cfg := &EvalConfig{spec: spec, seed: -1}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithSpecDir sets the directory the spec file was loaded from; relative
// input paths resolve against it.
func WithSpecDir(dir string) Option {
	return func(c *EvalConfig) { c.specDir = dir }
}

// WithOutputPath sets the results CSV destination.
func WithOutputPath(path string) Option {
	return func(c *EvalConfig) { c.outputPath = path }
}

// WithCacheDir enables the response cache rooted at dir.
func WithCacheDir(dir string) Option {
	return func(c *EvalConfig) { c.cacheDir = dir }
}

// WithVerbose enables per-trial progress output.
func WithVerbose(v bool) Option {
	return func(c *EvalConfig) { c.verbose = v }
}

// WithSeed fixes the bootstrap random source for reproducible intervals.
// Negative means non-deterministic.
func WithSeed(seed int64) Option {
	return func(c *EvalConfig) { c.seed = seed }
}

func (c *EvalConfig) Spec() *models.EvalSpec { return c.spec }

func (c *EvalConfig) SpecDir() string { return c.specDir }

func (c *EvalConfig) OutputPath() string { return c.outputPath }

func (c *EvalConfig) CacheDir() string { return c.cacheDir }

func (c *EvalConfig) Verbose() bool { return c.verbose }

func (c *EvalConfig) Seed() int64 { return c.seed }

// ResolvePath resolves a spec-relative input path against the spec
// directory. Absolute paths pass through unchanged.
func (c *EvalConfig) ResolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) || c.specDir == "" {
		return path
	}
	return filepath.Join(c.specDir, path)
}

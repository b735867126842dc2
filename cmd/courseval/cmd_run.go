package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/smartcourse/courseval/internal/aggregate"
	"github.com/smartcourse/courseval/internal/cache"
	"github.com/smartcourse/courseval/internal/config"
	"github.com/smartcourse/courseval/internal/dataset"
	"github.com/smartcourse/courseval/internal/generation"
	"github.com/smartcourse/courseval/internal/models"
	"github.com/smartcourse/courseval/internal/orchestration"
	"github.com/smartcourse/courseval/internal/spinner"
)

var (
	outputPath    string
	verbose       bool
	parallel      bool
	workers       int
	stream        bool
	seed          int64
	enableCache   bool
	disableCache  bool
	runCacheDir   string
	modelOverride string
)

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <eval.yaml>",
		Short: "Run a recommendation-quality evaluation",
		Long: `Run an evaluation from a spec file.

The spec names the student, the model, the input files and the context modes.
Each question is asked once per mode; the replies are scored and written to a
results CSV, followed by a per-mode aggregate summary with bootstrap
confidence intervals.`,
		Args: cobra.ExactArgs(1),
		RunE: runCommandE,
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "results.csv", "Output CSV file for per-trial results")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output with per-trial progress")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "Run trials concurrently")
	cmd.Flags().IntVar(&workers, "workers", 0, "Number of concurrent workers (default: 4, requires --parallel)")
	cmd.Flags().BoolVar(&stream, "stream", false, "Use streaming generation responses")
	cmd.Flags().Int64Var(&seed, "seed", -1, "Random seed for bootstrap resampling (negative: non-deterministic)")
	cmd.Flags().BoolVar(&enableCache, "cache", false, "Enable response caching (default: false)")
	cmd.Flags().BoolVar(&disableCache, "no-cache", false, "Disable response caching (default)")
	cmd.Flags().StringVar(&runCacheDir, "cache-dir", ".courseval-cache", "Cache directory for generation responses")
	cmd.Flags().StringVar(&modelOverride, "model", "", "Model to use (overrides spec config)")

	return cmd
}

func runCommandE(cmd *cobra.Command, args []string) error {
	specPath := args[0]

	spec, err := models.LoadEvalSpec(specPath)
	if err != nil {
		return fmt.Errorf("failed to load spec: %w", err)
	}

	// CLI flags override spec config
	if parallel {
		spec.Config.Parallel = true
	}
	if workers > 0 {
		spec.Config.Workers = workers
	}
	if stream {
		spec.Config.Stream = true
	}
	if modelOverride != "" {
		spec.Config.Model = modelOverride
	}

	cfgOpts := []config.Option{
		config.WithSpecDir(filepath.Dir(specPath)),
		config.WithOutputPath(outputPath),
		config.WithVerbose(verbose),
		config.WithSeed(seed),
	}
	if enableCache && !disableCache {
		cfgOpts = append(cfgOpts, config.WithCacheDir(runCacheDir))
	}
	cfg := config.NewEvalConfig(spec, cfgOpts...)

	engine, err := buildEngine(spec)
	if err != nil {
		return err
	}

	var opts []orchestration.RunnerOption
	if cfg.CacheDir() != "" {
		opts = append(opts, orchestration.WithCache(cache.New(cfg.CacheDir())))
	}

	runner := orchestration.NewTrialRunner(cfg, engine, opts...)
	runner.OnProgress(newProgressPrinter(cmd.OutOrStdout(), verbose))

	var stopSpinner func()
	if !verbose {
		stopSpinner = spinner.Start(cmd.OutOrStdout(), "Running trials...")
	}
	rows, err := runner.Run(cmd.Context())
	if stopSpinner != nil {
		stopSpinner()
	}
	if err != nil {
		return err
	}

	if err := dataset.WriteResults(outputPath, rows); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\nResults saved to: %s\n\n", outputPath)

	summaries := aggregate.Aggregate(rows, aggregate.Options{
		Iterations: spec.Config.BootstrapIterations,
		Seed:       seed,
	})
	printSummaries(cmd.OutOrStdout(), summaries)

	return nil
}

func buildEngine(spec *models.EvalSpec) (generation.Engine, error) {
	switch spec.Config.Engine {
	case "ollama":
		return generation.NewOllamaEngine(spec.Config.BackendURL), nil
	case "mock":
		return generation.NewMockEngine(), nil
	default:
		return nil, fmt.Errorf("unknown engine %q", spec.Config.Engine)
	}
}

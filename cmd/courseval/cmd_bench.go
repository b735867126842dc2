package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smartcourse/courseval/internal/generation"
)

const defaultBenchPrompt = "Explain the prerequisite chain for machine learning courses."

// benchResult is the single JSON line the bench command prints.
type benchResult struct {
	Model      string  `json:"model"`
	Tokens     int     `json:"tokens"`
	LatencySec float64 `json:"latency"`
}

func newBenchCommand() *cobra.Command {
	var (
		model       string
		backendURL  string
		benchPrompt string
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark the generation backend with a single prompt",
		Long: `Send one prompt to the backend and report latency and a rough
whitespace-delimited token count as a JSON line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := generation.NewOllamaEngine(backendURL)
			resp, err := engine.Generate(cmd.Context(), &generation.Request{
				Model:  model,
				Prompt: benchPrompt,
			})
			if err != nil {
				return err
			}

			out, err := json.Marshal(benchResult{
				Model:      model,
				Tokens:     len(strings.Fields(resp.Text)),
				LatencySec: resp.Latency.Seconds(),
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&model, "model", "deepseek-r1:1.5b", "Model to benchmark")
	cmd.Flags().StringVar(&backendURL, "backend-url", "http://localhost:11434", "Generation backend base URL")
	cmd.Flags().StringVar(&benchPrompt, "prompt", defaultBenchPrompt, "Prompt to send")

	return cmd
}

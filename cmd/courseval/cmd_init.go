package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/smartcourse/courseval/internal/wizard"
)

func newInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a starter eval.yaml interactively",
		Long: `Create a starter eval.yaml by answering a short guided form:
student, model, backend URL and input file names.

If no directory is specified, the current directory is used. An existing
eval.yaml is never overwritten unless --force is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dir, err)
			}

			specPath := filepath.Join(dir, "eval.yaml")
			if _, err := os.Stat(specPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", specPath)
			}

			spec, err := wizard.RunInitWizard(cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}

			content, err := wizard.GenerateEvalYAML(spec)
			if err != nil {
				return fmt.Errorf("failed to generate eval.yaml: %w", err)
			}
			if err := os.WriteFile(specPath, []byte(content), 0o644); err != nil {
				return fmt.Errorf("failed to write eval.yaml: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", specPath)
			fmt.Fprintln(cmd.OutOrStdout(), "Next: check it with `courseval check` and run with `courseval run`.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing eval.yaml")

	return cmd
}

package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "courseval",
		Short: "courseval - evaluate course-recommendation quality",
		Long: `courseval evaluates how well a language model recommends courses.

It asks the model each evaluation question under four context modes (full
history and plan, plan only, history only, bare question), extracts the
recommended catalog courses from the replies, and scores them against the
student's degree plan and enrollment history.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	cmd.AddCommand(newRunCommand())
	cmd.AddCommand(newBenchCommand())
	cmd.AddCommand(newInitCommand())
	cmd.AddCommand(newCheckCommand())

	return cmd
}

func execute() error {
	return newRootCommand().Execute()
}

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smartcourse/courseval/internal/validation"
)

func newCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <eval.yaml>",
		Short: "Validate an eval.yaml against the spec schema",
		Long: `Validate an eval.yaml file against the embedded JSON Schema.

Reports every violation with its location in the document. Exits non-zero
when the spec has issues, so it can gate CI.`,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			specPath := args[0]

			issues, err := validation.ValidateEvalFile(specPath)
			if err != nil {
				return err
			}
			if len(issues) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", specPath)
				return nil
			}

			printIssueTable(cmd.OutOrStdout(), issues)
			return &CheckFailureError{
				Message: fmt.Sprintf("%s: %d issue(s) found", specPath, len(issues)),
			}
		},
	}
	return cmd
}

// printIssueTable renders one row per violation, location column aligned.
func printIssueTable(w io.Writer, issues []string) {
	locWidth := len("Location")
	type row struct{ loc, msg string }
	rows := make([]row, 0, len(issues))
	for _, issue := range issues {
		loc, msg, ok := strings.Cut(issue, ": ")
		if !ok {
			loc, msg = "/", issue
		}
		if len(loc) > locWidth {
			locWidth = len(loc)
		}
		rows = append(rows, row{loc: loc, msg: msg})
	}

	fmt.Fprintf(w, "%s  Issue\n", padRight("Location", locWidth))
	for _, r := range rows {
		fmt.Fprintf(w, "%s  %s\n", padRight(r.loc, locWidth), r.msg)
	}
}

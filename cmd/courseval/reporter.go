package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/smartcourse/courseval/internal/aggregate"
	"github.com/smartcourse/courseval/internal/orchestration"
)

// newProgressPrinter returns a listener that echoes trial progress. Verbose
// mode prints one line per trial; otherwise only failures are shown.
func newProgressPrinter(w io.Writer, verbose bool) orchestration.ProgressListener {
	return func(e orchestration.ProgressEvent) {
		switch e.EventType {
		case orchestration.EventRunStart:
			if verbose {
				fmt.Fprintf(w, "Running %d trials...\n", e.TotalTrials)
			}
		case orchestration.EventTrialComplete, orchestration.EventTrialCached:
			if e.Row != nil && e.Row.ErrorMsg != "" {
				fmt.Fprintf(w, "[%d/%d] %s (%s) FAILED: %s\n",
					e.TrialNum, e.TotalTrials, truncate(e.Question, 40), e.Mode, e.Row.ErrorMsg)
				return
			}
			if !verbose || e.Row == nil {
				return
			}
			cached := ""
			if e.EventType == orchestration.EventTrialCached {
				cached = " (cached)"
			}
			fmt.Fprintf(w, "[%d/%d] %s (%s) Rec:%d Plan:%.3f Personal:%.3f Recall:%.3f%s\n",
				e.TrialNum, e.TotalTrials, truncate(e.Question, 40), e.Mode,
				e.Row.Recommended, e.Row.PlanScore, e.Row.PersonalScore, e.Row.Recall, cached)
		}
	}
}

// printSummaries renders the per-mode aggregate table: mean and 90%-spanning
// bootstrap interval (5th to 95th percentile) for each metric.
func printSummaries(w io.Writer, summaries []aggregate.ModeSummary) {
	if len(summaries) == 0 {
		fmt.Fprintln(w, "No trials to aggregate.")
		return
	}

	const modeCol = 10
	fmt.Fprint(w, padRight("Mode", modeCol))
	for _, name := range aggregate.MetricNames {
		fmt.Fprint(w, padRight(name, 26))
	}
	fmt.Fprintln(w, "Latency")

	for _, s := range summaries {
		fmt.Fprint(w, padRight(string(s.Mode), modeCol))
		for _, name := range aggregate.MetricNames {
			ci := s.Metrics[name]
			cell := fmt.Sprintf("%.3f [%.3f, %.3f]", ci.Mean, ci.Lower, ci.Upper)
			fmt.Fprint(w, padRight(cell, 26))
		}
		fmt.Fprintf(w, "%.2fs", s.MeanLatencySec)
		if s.Failed > 0 {
			fmt.Fprintf(w, "  (%d failed)", s.Failed)
		}
		fmt.Fprintln(w)
	}
}

// truncate shortens a string to maxLen runes, ending with "…" if needed.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-1]) + "…"
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s + " "
	}
	return s + strings.Repeat(" ", width-sw)
}

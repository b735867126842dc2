// Package aggregate groups trial rows by context mode and computes per-metric
// means with bootstrap confidence intervals.
package aggregate

import (
	"github.com/smartcourse/courseval/internal/models"
	"github.com/smartcourse/courseval/internal/statistics"
)

// MetricNames lists the aggregated metric columns in display order.
var MetricNames = []string{
	"PlanScore", "PersonalScore", "Lift", "Recall",
}

// ModeSummary holds the aggregate statistics for one context mode.
type ModeSummary struct {
	Mode models.Mode `json:"mode"`
	// Trials is the number of successful rows aggregated.
	Trials int `json:"trials"`
	// Failed is the number of rows excluded for failed generation.
	Failed int `json:"failed"`
	// Metrics maps metric name to its mean and interval.
	Metrics map[string]statistics.ConfidenceInterval `json:"metrics"`
	// MeanLatencySec is the mean latency of successful trials, in seconds.
	MeanLatencySec float64 `json:"mean_latency_sec"`
}

// Options configures aggregation.
type Options struct {
	// Iterations is the bootstrap resample count; <=0 means the default.
	Iterations int
	// Seed gives reproducible intervals when non-negative.
	Seed int64
}

// Aggregate groups rows by mode and computes each metric's mean and bootstrap
// CI. Failed rows are counted but contribute no observations. Output order
// follows the canonical mode order, then any extra modes in first-seen order,
// so results are deterministic regardless of trial completion order.
func Aggregate(rows []models.TrialRow, opts Options) []ModeSummary {
	byMode := make(map[models.Mode][]models.TrialRow)
	var order []models.Mode
	seen := make(map[models.Mode]bool)
	for _, m := range models.DefaultModes() {
		seen[m] = true
		order = append(order, m)
	}
	for _, row := range rows {
		if !seen[row.Mode] {
			seen[row.Mode] = true
			order = append(order, row.Mode)
		}
		byMode[row.Mode] = append(byMode[row.Mode], row)
	}

	var summaries []ModeSummary
	for _, mode := range order {
		group := byMode[mode]
		if len(group) == 0 {
			continue
		}
		summaries = append(summaries, summarize(mode, group, opts))
	}
	return summaries
}

func summarize(mode models.Mode, rows []models.TrialRow, opts Options) ModeSummary {
	columns := make(map[string][]float64, len(MetricNames))
	var latencies []float64
	failed := 0

	for _, row := range rows {
		if row.Status == models.StatusFailed {
			failed++
			continue
		}
		columns["PlanScore"] = append(columns["PlanScore"], row.PlanScore)
		columns["PersonalScore"] = append(columns["PersonalScore"], row.PersonalScore)
		columns["Lift"] = append(columns["Lift"], row.Lift)
		columns["Recall"] = append(columns["Recall"], row.Recall)
		latencies = append(latencies, row.Latency.Seconds())
	}

	metrics := make(map[string]statistics.ConfidenceInterval, len(MetricNames))
	for _, name := range MetricNames {
		metrics[name] = statistics.BootstrapCI(columns[name], opts.Iterations, opts.Seed)
	}

	return ModeSummary{
		Mode:           mode,
		Trials:         len(latencies),
		Failed:         failed,
		Metrics:        metrics,
		MeanLatencySec: statistics.Mean(latencies),
	}
}

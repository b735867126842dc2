package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/smartcourse/courseval/internal/models"
)

// resultsHeader is the fixed column layout of the results file.
var resultsHeader = []string{
	"Question", "Mode", "#Rec", "PlanScore", "PersonalScore",
	"Lift", "Recall", "Invalid_Taken", "Invalid_OffPlan", "Latency",
}

// WriteResults writes one CSV row per trial. Failed trials are written with
// empty metric cells rather than zeros, so they cannot be mistaken for
// zero-recommendation successes.
func WriteResults(path string, rows []models.TrialRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("results: create %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	if err := w.Write(resultsHeader); err != nil {
		return fmt.Errorf("results: write header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(resultRecord(row)); err != nil {
			return fmt.Errorf("results: write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("results: flush %s: %w", path, err)
	}
	return nil
}

func resultRecord(row models.TrialRow) []string {
	if row.Status == models.StatusFailed {
		return []string{
			row.Question, string(row.Mode),
			"", "", "", "", "", "", "",
			fmt.Sprintf("%.2fs", row.Latency.Seconds()),
		}
	}
	return []string{
		row.Question,
		string(row.Mode),
		strconv.Itoa(row.Recommended),
		formatScore(row.PlanScore),
		formatScore(row.PersonalScore),
		formatScore(row.Lift),
		formatScore(row.Recall),
		strconv.Itoa(row.InvalidTaken),
		strconv.Itoa(row.InvalidOffPlan),
		fmt.Sprintf("%.2fs", row.Latency.Seconds()),
	}
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

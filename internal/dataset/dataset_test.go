package dataset

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/smartcourse/courseval/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "enrolled.csv")
	content := "username,course,grade\nmiy@kean.edu,CPS 2232: Data Structure,A\nmiy@kean.edu,MATH 2110: Discrete Structure,\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	rows, err := LoadCSV(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "A", rows[0]["grade"])
	assert.Equal(t, "", rows[1]["grade"])
	assert.Equal(t, "miy@kean.edu", rows[1]["username"])
}

func TestLoadCSV_ColumnCountMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2,3\n"), 0644))

	_, err := LoadCSV(path)
	assert.Error(t, err)
}

func TestLoadQuestions_SkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.txt")
	content := "What should I take next?\n\n  \nWhich math course comes first?\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	qs, err := LoadQuestions(path)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"What should I take next?",
		"Which math course comes first?",
	}, qs)
}

func TestLoadQuestions_EmptyFileIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.txt")
	require.NoError(t, os.WriteFile(path, []byte("\n\n"), 0644))

	_, err := LoadQuestions(path)
	assert.Error(t, err)
}

func TestWriteResults_HeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	rows := []models.TrialRow{
		{
			Question:      "What next?",
			Mode:          models.ModeFull,
			Status:        models.StatusOK,
			Recommended:   2,
			PlanScore:     0.5,
			PersonalScore: 1.0,
			Lift:          0.5,
			Recall:        0.25,
			InvalidTaken:  1,
			Latency:       1500 * time.Millisecond,
		},
	}
	require.NoError(t, WriteResults(path, rows))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, []string{
		"Question", "Mode", "#Rec", "PlanScore", "PersonalScore",
		"Lift", "Recall", "Invalid_Taken", "Invalid_OffPlan", "Latency",
	}, records[0])
	assert.Equal(t, []string{
		"What next?", "full", "2", "0.500", "1.000", "0.500", "0.250", "1", "0", "1.50s",
	}, records[1])
}

func TestWriteResults_FailedRowHasEmptyMetrics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	rows := []models.TrialRow{
		{
			Question: "What next?",
			Mode:     models.ModeQuestion,
			Status:   models.StatusFailed,
			ErrorMsg: "generation timed out",
			Latency:  2 * time.Second,
		},
	}
	require.NoError(t, WriteResults(path, rows))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 2)
	got := records[1]
	assert.Equal(t, "question", got[1])
	for i := 2; i <= 8; i++ {
		assert.Empty(t, got[i], "metric column %d should be empty for failed trial", i)
	}
}

package validation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const validEvalYAML = `name: relevance-eval
description: Course recommendation relevance evaluation
student: miy@kean.edu
config:
  model: deepseek-r1:1.5b
  engine: ollama
  timeout_seconds: 600
  bootstrap_iterations: 1000
  low_grade_threshold: C
  extraction:
    fuzzy_threshold: 0.8
files:
  catalog: course_list.txt
  accounts: accounts.csv
  enrollments: enrolled_courses.csv
  questions: evaluation_questions.txt
modes: [full, noGrades, noPlan, question]
`

const invalidEvalYAML = `name: relevance-eval
student: miy@kean.edu
config:
  model: deepseek-r1:1.5b
  engine: copilot
  extraction:
    fuzzy_threshold: 1.5
files:
  catalog: course_list.txt
  accounts: accounts.csv
  enrollments: enrolled_courses.csv
  questions: evaluation_questions.txt
`

func joinErrs(errs []string) string {
	return strings.Join(errs, "\n")
}

func TestValidateEvalBytes_Valid(t *testing.T) {
	errs := ValidateEvalBytes([]byte(validEvalYAML))
	require.Empty(t, errs, "valid eval should have no errors")
}

func TestValidateEvalBytes_Invalid(t *testing.T) {
	errs := ValidateEvalBytes([]byte(invalidEvalYAML))
	require.NotEmpty(t, errs, "invalid eval should have errors")

	joined := joinErrs(errs)
	require.Contains(t, joined, "engine")
	require.Contains(t, joined, "fuzzy_threshold")
}

func TestValidateEvalBytes_UnknownConfigKey(t *testing.T) {
	// The interval bounds are fixed at the 5th/95th percentiles; there is no
	// confidence_level knob, and unknown config keys must fail the check.
	errs := ValidateEvalBytes([]byte(`name: relevance-eval
student: miy@kean.edu
config:
  model: m
  confidence_level: 0.95
files:
  catalog: course_list.txt
  accounts: accounts.csv
  enrollments: enrolled_courses.csv
  questions: evaluation_questions.txt
`))
	require.NotEmpty(t, errs)
	require.Contains(t, joinErrs(errs), "confidence_level")
}

func TestValidateEvalBytes_MissingRequired(t *testing.T) {
	errs := ValidateEvalBytes([]byte("name: x\n"))
	require.NotEmpty(t, errs)
}

func TestValidateEvalBytes_BadYAML(t *testing.T) {
	errs := ValidateEvalBytes([]byte("name: [unclosed"))
	require.NotEmpty(t, errs)
	require.Contains(t, errs[0], "YAML parse error")
}

func TestValidateEvalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eval.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validEvalYAML), 0644))

	errs, err := ValidateEvalFile(path)
	require.NoError(t, err)
	require.Empty(t, errs)

	_, err = ValidateEvalFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validSpecYAML = `name: relevance-eval
student: miy@kean.edu
config:
  model: deepseek-r1:1.5b
files:
  catalog: course_list.txt
  accounts: accounts.csv
  enrollments: enrolled_courses.csv
  questions: evaluation_questions.txt
`

func TestCheckCommand_ValidSpec(t *testing.T) {
	specPath := filepath.Join(t.TempDir(), "eval.yaml")
	require.NoError(t, os.WriteFile(specPath, []byte(validSpecYAML), 0644))

	cmd := newCheckCommand()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)
	cmd.SetArgs([]string{specPath})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, output.String(), "is valid")
}

func TestCheckCommand_InvalidSpec(t *testing.T) {
	specPath := filepath.Join(t.TempDir(), "eval.yaml")
	bad := `name: relevance-eval
student: miy@kean.edu
config:
  model: m
  engine: copilot
files:
  catalog: course_list.txt
  accounts: accounts.csv
  enrollments: enrolled_courses.csv
  questions: evaluation_questions.txt
`
	require.NoError(t, os.WriteFile(specPath, []byte(bad), 0644))

	cmd := newCheckCommand()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)
	cmd.SetArgs([]string{specPath})

	err := cmd.Execute()
	require.Error(t, err)

	var checkErr *CheckFailureError
	assert.True(t, errors.As(err, &checkErr), "expected a CheckFailureError, got %T", err)
	assert.Contains(t, output.String(), "Location")
	assert.Contains(t, output.String(), "engine")
}

func TestCheckCommand_MissingFile(t *testing.T) {
	cmd := newCheckCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "missing.yaml")})

	err := cmd.Execute()
	require.Error(t, err)

	var checkErr *CheckFailureError
	assert.False(t, errors.As(err, &checkErr), "a read failure is a runtime error, not a check failure")
}

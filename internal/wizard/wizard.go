// Package wizard implements the interactive `courseval init` flow that
// collects run settings and renders a starter eval.yaml.
package wizard

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// InitSpec holds all fields collected during the interactive wizard.
type InitSpec struct {
	Name       string
	Student    string
	Model      string
	BackendURL string
	Engine     string
	Catalog    string
	Accounts   string
	Enrolled   string
	Questions  string
}

const evalYAMLTemplate = `name: {{ .Name }}
description: Course recommendation relevance evaluation
student: {{ .Student }}
config:
  model: {{ .Model }}
  backend_url: {{ .BackendURL }}
  engine: {{ .Engine }}
  timeout_seconds: 600
  bootstrap_iterations: 1000
  low_grade_threshold: C
  extraction:
    fuzzy_threshold: 0.8
files:
  catalog: {{ .Catalog }}
  accounts: {{ .Accounts }}
  enrollments: {{ .Enrolled }}
  questions: {{ .Questions }}
modes: [full, noGrades, noPlan, question]
`

// RunInitWizard runs an interactive huh form to collect evaluation settings.
func RunInitWizard(in io.Reader, out io.Writer) (*InitSpec, error) {
	spec := &InitSpec{
		Name:       "relevance-eval",
		BackendURL: "http://localhost:11434",
		Catalog:    "course_list.txt",
		Accounts:   "accounts.csv",
		Enrolled:   "enrolled_courses.csv",
		Questions:  "evaluation_questions.txt",
	}

	required := func(field string) func(string) error {
		return func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("%s is required", field)
			}
			return nil
		}
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Evaluation name").
				Value(&spec.Name).
				Validate(required("name")),
			huh.NewInput().
				Title("Student username").
				Description("Must exist in the accounts file").
				Placeholder("miy@kean.edu").
				Value(&spec.Student).
				Validate(required("student")),
			huh.NewInput().
				Title("Model").
				Placeholder("deepseek-r1:1.5b").
				Value(&spec.Model).
				Validate(required("model")),
			huh.NewInput().
				Title("Backend URL").
				Value(&spec.BackendURL),
			huh.NewSelect[string]().
				Title("Engine").
				Options(
					huh.NewOption("ollama", "ollama"),
					huh.NewOption("mock", "mock"),
				).
				Value(&spec.Engine),
		),
		huh.NewGroup(
			huh.NewInput().Title("Catalog file").Value(&spec.Catalog),
			huh.NewInput().Title("Accounts file").Value(&spec.Accounts),
			huh.NewInput().Title("Enrollments file").Value(&spec.Enrolled),
			huh.NewInput().Title("Questions file").Value(&spec.Questions),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	spec.Name = strings.TrimSpace(spec.Name)
	spec.Student = strings.TrimSpace(spec.Student)
	spec.Model = strings.TrimSpace(spec.Model)
	return spec, nil
}

// GenerateEvalYAML renders a starter eval.yaml from the given spec.
func GenerateEvalYAML(spec *InitSpec) (string, error) {
	tmpl, err := template.New("evalyaml").Parse(evalYAMLTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, spec); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return buf.String(), nil
}

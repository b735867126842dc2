// Package prompt assembles the per-mode generation prompts.
package prompt

import (
	"fmt"
	"strings"

	"github.com/smartcourse/courseval/internal/models"
	"github.com/smartcourse/courseval/internal/roster"
)

// formatSuffix pins the reply format so extraction has course-like lines to
// work with.
const formatSuffix = "\n\nRespond with 3 to 5 courses, one complete course name per line, for example:\n" +
	"CPS 2232: Data Structure\nMATH 2110: Discrete Structure\n"

// Build returns the prompt for one trial. The four modes vary the context
// handed to the model: full gives history with grades plus the plan, noGrades
// gives the plan only, noPlan gives history only, question is the bare
// question.
func Build(mode models.Mode, question string, student *roster.Student, plan []string) (string, error) {
	switch mode {
	case models.ModeFull:
		return fmt.Sprintf("Student question: %q\nMy course history:\n%s\nMy 4-year plan:\n%s\nBased on ALL information, recommend courses.%s",
			question,
			strings.Join(student.History(true), "\n"),
			strings.Join(plan, "\n"),
			formatSuffix), nil
	case models.ModeNoGrades:
		return fmt.Sprintf("%q\nMy 4-year plan:\n%s\nBased on plan, recommend courses.%s",
			question, strings.Join(plan, "\n"), formatSuffix), nil
	case models.ModeNoPlan:
		return fmt.Sprintf("%q\nMy course history:\n%s\nBased on history, recommend courses.%s",
			question, strings.Join(student.History(true), "\n"), formatSuffix), nil
	case models.ModeQuestion:
		return question + formatSuffix, nil
	default:
		return "", fmt.Errorf("prompt: unknown mode %q", mode)
	}
}

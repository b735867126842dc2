// Package roster loads student accounts and enrollment records and exposes
// the per-student view the evaluation scores against.
package roster

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/smartcourse/courseval/internal/dataset"
	"github.com/smartcourse/courseval/internal/scoring"
)

// Student is one account plus every enrollment recorded for it.
type Student struct {
	Username string
	Major    string
	// Taken maps each enrolled course's canonical string to its grade.
	Taken map[string]scoring.Grade
}

// Store holds all students keyed by username.
type Store struct {
	students map[string]*Student
}

// Load reads the accounts and enrollments CSV files and joins them.
// Accounts need username and major columns; enrollments need username,
// course and grade. An enrollment for an unknown username is an error.
func Load(accountsPath, enrollmentsPath string) (*Store, error) {
	accounts, err := dataset.LoadCSV(accountsPath)
	if err != nil {
		return nil, err
	}
	store := &Store{students: make(map[string]*Student, len(accounts))}
	for i, row := range accounts {
		username := strings.TrimSpace(row["username"])
		if username == "" {
			return nil, fmt.Errorf("roster: %s row %d has no username", accountsPath, i+2)
		}
		store.students[username] = &Student{
			Username: username,
			Major:    strings.TrimSpace(row["major"]),
			Taken:    make(map[string]scoring.Grade),
		}
	}

	enrollments, err := dataset.LoadCSV(enrollmentsPath)
	if err != nil {
		return nil, err
	}
	for i, row := range enrollments {
		username := strings.TrimSpace(row["username"])
		student, ok := store.students[username]
		if !ok {
			return nil, fmt.Errorf("roster: %s row %d references unknown student %q", enrollmentsPath, i+2, username)
		}
		course := strings.TrimSpace(row["course"])
		if course == "" {
			return nil, fmt.Errorf("roster: %s row %d has no course", enrollmentsPath, i+2)
		}
		grade, err := scoring.ParseGrade(row["grade"])
		if err != nil {
			return nil, fmt.Errorf("roster: %s row %d: %w", enrollmentsPath, i+2, err)
		}
		student.Taken[course] = grade
	}

	return store, nil
}

// Lookup returns the student for a username. Evaluating an unknown student
// is a configuration error, not an empty result.
func (s *Store) Lookup(username string) (*Student, error) {
	student, ok := s.students[strings.TrimSpace(username)]
	if !ok {
		return nil, fmt.Errorf("roster: unknown student %q", username)
	}
	return student, nil
}

// PlanPath resolves the student's four-year plan file inside plansDir,
// named after the major with spaces collapsed to underscores.
func (st *Student) PlanPath(plansDir string) string {
	major := strings.ReplaceAll(st.Major, " ", "_")
	return filepath.Join(plansDir, major+"_plan.txt")
}

// History returns the student's enrollments in a stable order, optionally
// annotated with grades. Used to build the model's course-history context.
func (st *Student) History(withGrades bool) []string {
	courses := make([]string, 0, len(st.Taken))
	for course := range st.Taken {
		courses = append(courses, course)
	}
	sort.Strings(courses)

	if !withGrades {
		return courses
	}
	lines := make([]string, len(courses))
	for i, course := range courses {
		grade := st.Taken[course]
		if grade.Recorded() {
			lines[i] = fmt.Sprintf("%s (grade: %s)", course, grade)
		} else {
			lines[i] = fmt.Sprintf("%s (in progress)", course)
		}
	}
	return lines
}

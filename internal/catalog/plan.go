package catalog

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// subjectCodePattern accepts entries whose prefix looks like a course code:
// 2-4 uppercase subject letters followed by a 3-4 digit number.
var subjectCodePattern = regexp.MustCompile(`^[A-Z]{2,4}\s*\d{3,4}`)

// LoadPlan reads a four-year plan file, one required course per line.
// A line is accepted only when it contains a colon and its prefix matches
// the subject-code pattern; anything else (section headers, footnotes,
// free-form advice) is skipped without complaint. This leniency is
// intentional: plan files are exported from advising documents and carry
// non-course lines.
func LoadPlan(path string) ([]Course, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("plan: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	var plan []Course
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || !strings.Contains(line, ":") {
			continue
		}
		if !subjectCodePattern.MatchString(line) {
			continue
		}
		if seen[line] {
			continue
		}
		seen[line] = true
		code, _, _ := strings.Cut(line, ":")
		plan = append(plan, Course{Code: strings.TrimSpace(code), Canonical: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("plan: read %s: %w", path, err)
	}

	if len(plan) == 0 {
		return nil, fmt.Errorf("plan: %s contains no plan courses", path)
	}
	return plan, nil
}

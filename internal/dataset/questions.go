package dataset

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadQuestions reads the evaluation questions file, one question per line,
// skipping blank lines.
func LoadQuestions(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("questions: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	var questions []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		q := strings.TrimSpace(scanner.Text())
		if q != "" {
			questions = append(questions, q)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("questions: read %s: %w", path, err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("questions: %s contains no questions", path)
	}
	return questions, nil
}

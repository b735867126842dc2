// Package catalog loads the course catalog and provides the canonical
// code → course lookup used by extraction and scoring.
package catalog

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Course is a canonical catalog entry. Two courses are equal iff their
// canonical strings are equal; Code is the portion before the first colon.
type Course struct {
	Code      string
	Canonical string
}

// Title returns the portion of the canonical string after the code.
func (c Course) Title() string {
	if _, after, ok := strings.Cut(c.Canonical, ":"); ok {
		return strings.TrimSpace(after)
	}
	return ""
}

// Index maps course codes to their canonical catalog entries.
// Codes are unique within an index; on duplicate input the last entry wins.
type Index struct {
	byCode  map[string]Course
	ordered []Course
}

// Load reads a catalog file, one `CODE: Title` entry per line.
// Blank lines are skipped. Lines are whitespace-trimmed.
func Load(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}

	idx := Parse(lines)
	if idx.Len() == 0 {
		return nil, fmt.Errorf("catalog: %s contains no courses", path)
	}
	return idx, nil
}

// Parse builds an Index from raw catalog lines.
func Parse(lines []string) *Index {
	idx := &Index{byCode: make(map[string]Course)}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		code, _, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		course := Course{Code: code, Canonical: line}
		if prev, dup := idx.byCode[code]; dup {
			// Last write wins. Flag it: duplicate codes usually mean a
			// malformed catalog file rather than intent.
			slog.Warn("catalog: duplicate course code, keeping later entry",
				"code", code, "dropped", prev.Canonical, "kept", line)
			for i, c := range idx.ordered {
				if c.Code == code {
					idx.ordered[i] = course
					break
				}
			}
			idx.byCode[code] = course
			continue
		}
		idx.byCode[code] = course
		idx.ordered = append(idx.ordered, course)
	}

	return idx
}

// Resolve returns the course for a code, if present.
func (idx *Index) Resolve(code string) (Course, bool) {
	c, ok := idx.byCode[strings.TrimSpace(code)]
	return c, ok
}

// All returns every course in catalog order.
func (idx *Index) All() []Course {
	out := make([]Course, len(idx.ordered))
	copy(out, idx.ordered)
	return out
}

// Len returns the number of distinct courses.
func (idx *Index) Len() int {
	return len(idx.byCode)
}

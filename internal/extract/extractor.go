// Package extract identifies catalog courses mentioned in model output.
//
// Extraction runs an exact pass first: every catalog code is tested against
// the response as a whole-word, case-insensitive match. Only when the exact
// pass finds nothing does the fuzzy fallback run, comparing the entire
// lowercased response against each lowercased catalog entry with a
// sequence-matching ratio. The fallback is deliberately conservative: it
// under-recalls loosely phrased mentions, and downstream metrics are defined
// relative to exactly this behavior.
package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/smartcourse/courseval/internal/catalog"
)

// DefaultFuzzyThreshold is the minimum similarity ratio (exclusive) for the
// fuzzy fallback to accept a catalog entry.
const DefaultFuzzyThreshold = 0.8

// Options selects the extraction strategy. The zero value is not usable;
// start from DefaultOptions.
type Options struct {
	// FuzzyThreshold is the exclusive lower bound on the similarity ratio.
	FuzzyThreshold float64 `mapstructure:"fuzzy_threshold"`
	// ExactOnly disables the fuzzy fallback entirely.
	ExactOnly bool `mapstructure:"exact_only"`
}

// DefaultOptions returns the standard extraction strategy.
func DefaultOptions() Options {
	return Options{FuzzyThreshold: DefaultFuzzyThreshold}
}

// DecodeOptions builds Options from a raw config map (the `extraction` block
// of an eval spec). Unknown keys are rejected so typos fail loudly.
func DecodeOptions(raw map[string]any) (Options, error) {
	opts := DefaultOptions()
	if len(raw) == 0 {
		return opts, nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &opts,
		ErrorUnused: true,
	})
	if err != nil {
		return Options{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Options{}, fmt.Errorf("extraction options: %w", err)
	}
	if opts.FuzzyThreshold <= 0 || opts.FuzzyThreshold >= 1 {
		return Options{}, fmt.Errorf("extraction options: fuzzy_threshold must be in (0, 1), got %v", opts.FuzzyThreshold)
	}
	return opts, nil
}

// Extractor scans free-form text for catalog course mentions. It precompiles
// one word-boundary pattern per catalog code and is safe for concurrent use.
type Extractor struct {
	opts    Options
	courses []catalog.Course
	exact   []*regexp.Regexp // parallel to courses
	lowered []string         // lowercased canonical strings, parallel to courses
}

// New builds an Extractor over the given catalog.
func New(idx *catalog.Index, opts Options) *Extractor {
	courses := idx.All()
	e := &Extractor{
		opts:    opts,
		courses: courses,
		exact:   make([]*regexp.Regexp, len(courses)),
		lowered: make([]string, len(courses)),
	}
	for i, c := range courses {
		// Word-boundary delimited so "CPS 220" does not fire inside "CPS 2201".
		e.exact[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(c.Code) + `\b`)
		e.lowered[i] = strings.ToLower(c.Canonical)
	}
	return e
}

// Extract returns the deduplicated courses referenced by text, in catalog
// order. It is a pure function of (text, catalog): identical input yields
// identical output. Empty or whitespace-only text yields nil.
func (e *Extractor) Extract(text string) []catalog.Course {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var found []catalog.Course
	for i, re := range e.exact {
		if re.MatchString(text) {
			found = append(found, e.courses[i])
		}
	}
	if len(found) > 0 || e.opts.ExactOnly {
		return found
	}

	// Fuzzy fallback: whole-response similarity against each catalog entry.
	lowered := strings.ToLower(text)
	for i, full := range e.lowered {
		if Ratio(lowered, full) > e.opts.FuzzyThreshold {
			found = append(found, e.courses[i])
		}
	}
	return found
}

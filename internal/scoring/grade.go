package scoring

import (
	"fmt"
	"strings"
)

// Grade is a letter grade as recorded in the enrollments file.
type Grade string

// Ungraded marks an enrollment with no recorded grade, typically an
// in-progress course. It is never considered a low grade.
const Ungraded Grade = ""

// Letter grades in descending order.
const (
	GradeA  Grade = "A"
	GradeAM Grade = "A-"
	GradeBP Grade = "B+"
	GradeB  Grade = "B"
	GradeBM Grade = "B-"
	GradeCP Grade = "C+"
	GradeC  Grade = "C"
	GradeD  Grade = "D"
	GradeF  Grade = "F"
)

// gradeRank gives grades a total order for threshold comparisons.
// Ungraded deliberately has no rank.
var gradeRank = map[Grade]int{
	GradeA:  8,
	GradeAM: 7,
	GradeBP: 6,
	GradeB:  5,
	GradeBM: 4,
	GradeCP: 3,
	GradeC:  2,
	GradeD:  1,
	GradeF:  0,
}

func (g Grade) String() string {
	if g == Ungraded {
		return "ungraded"
	}
	return string(g)
}

// Recorded reports whether the grade is an actual letter grade.
func (g Grade) Recorded() bool {
	return g != Ungraded
}

// AtOrBelow reports whether g is at or below the threshold in grade order.
// Returns false whenever either side has no rank, so an ungraded course can
// never count as a low grade.
func (g Grade) AtOrBelow(threshold Grade) bool {
	gr, ok := gradeRank[g]
	if !ok {
		return false
	}
	tr, ok := gradeRank[threshold]
	if !ok {
		return false
	}
	return gr <= tr
}

// ParseGrade normalizes a raw grade cell. An empty cell is Ungraded; anything
// else must be a known letter grade.
func ParseGrade(raw string) (Grade, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return Ungraded, nil
	}
	g := Grade(s)
	if _, ok := gradeRank[g]; !ok {
		return Ungraded, fmt.Errorf("unknown grade %q", raw)
	}
	return g, nil
}

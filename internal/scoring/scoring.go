// Package scoring turns an extracted recommendation set and a student's
// plan/enrollment state into the evaluation metrics.
package scoring

import (
	"github.com/smartcourse/courseval/internal/catalog"
)

// Result holds the metrics for one recommendation set. All ratios are 0.0
// when their denominator is empty; none of the computations can divide by
// zero.
type Result struct {
	Recommended    int
	GoodPlan       int
	GoodPersonal   int
	Todo           int
	PlanScore      float64
	PersonalScore  float64
	Lift           float64
	Recall         float64
	InvalidTaken   int
	InvalidOffPlan int
}

// Input is the immutable per-trial student snapshot scored against.
type Input struct {
	// Plan is the set of canonical plan-course strings.
	Plan map[string]bool
	// Taken maps each taken course's canonical string to its grade
	// (Ungraded when no grade was recorded).
	Taken map[string]Grade
	// LowGradeThreshold partitions recorded grades: at or below is "low".
	LowGradeThreshold Grade
}

// Score computes the metrics for a recommendation set.
//
// good_plan is recommendations ∩ plan − taken; good_personal additionally
// admits plan courses taken with a low grade, so good_plan ⊆ good_personal
// and Lift = PersonalScore − PlanScore is never negative.
func Score(recs []catalog.Course, in Input) Result {
	r := Result{Recommended: len(recs)}

	for _, c := range recs {
		grade, taken := in.Taken[c.Canonical]
		switch {
		case !in.Plan[c.Canonical]:
			if taken {
				r.InvalidTaken++
			}
		case !taken:
			r.GoodPlan++
			r.GoodPersonal++
		case grade.AtOrBelow(in.LowGradeThreshold):
			r.GoodPersonal++
			r.InvalidTaken++
		default:
			r.InvalidTaken++
		}
	}
	r.InvalidOffPlan = r.Recommended - r.GoodPlan - r.InvalidTaken

	for canonical := range in.Plan {
		if _, taken := in.Taken[canonical]; !taken {
			r.Todo++
		}
	}

	if r.Recommended > 0 {
		r.PlanScore = float64(r.GoodPlan) / float64(r.Recommended)
		r.PersonalScore = float64(r.GoodPersonal) / float64(r.Recommended)
	}
	r.Lift = r.PersonalScore - r.PlanScore
	if r.Todo > 0 {
		r.Recall = float64(r.GoodPlan) / float64(r.Todo)
	}

	return r
}

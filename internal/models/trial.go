package models

import (
	"fmt"
	"time"
)

// Mode identifies which information context a trial's prompt carried.
type Mode string

const (
	// ModeFull includes both the course history (with grades) and the plan.
	ModeFull Mode = "full"
	// ModeNoGrades includes only the four-year plan.
	ModeNoGrades Mode = "noGrades"
	// ModeNoPlan includes only the course history.
	ModeNoPlan Mode = "noPlan"
	// ModeQuestion is the bare question with no student context.
	ModeQuestion Mode = "question"
)

// DefaultModes returns the four context modes in their canonical trial
// order. The order is fixed so that per-question comparisons across modes
// are paired.
func DefaultModes() []Mode {
	return []Mode{ModeFull, ModeNoGrades, ModeNoPlan, ModeQuestion}
}

// ParseMode validates a mode string from config.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeFull, ModeNoGrades, ModeNoPlan, ModeQuestion:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("invalid mode %q: must be full, noGrades, noPlan, or question", s)
	}
}

// Status is the outcome of a single trial.
type Status string

const (
	StatusOK Status = "ok"
	// StatusFailed marks a trial whose generation call timed out or
	// errored. Failed rows carry no metrics and are excluded from
	// aggregation; they are never treated as zero-recommendation
	// successes.
	StatusFailed Status = "failed"
)

// TrialRow is one evaluation observation: the scored outcome of asking one
// question under one context mode. Rows are append-only and immutable once
// recorded.
type TrialRow struct {
	Question string        `json:"question"`
	Mode     Mode          `json:"mode"`
	Status   Status        `json:"status"`
	ErrorMsg string        `json:"error_msg,omitempty"`
	Latency  time.Duration `json:"latency"`

	Recommended    int     `json:"recommended"`
	PlanScore      float64 `json:"plan_score"`
	PersonalScore  float64 `json:"personal_score"`
	Lift           float64 `json:"lift"`
	Recall         float64 `json:"recall"`
	InvalidTaken   int     `json:"invalid_taken"`
	InvalidOffPlan int     `json:"invalid_off_plan"`
}

// Package orchestration drives an evaluation run: loading inputs, executing
// every (question, mode) trial against the generation engine, and collecting
// the scored rows.
package orchestration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/smartcourse/courseval/internal/cache"
	"github.com/smartcourse/courseval/internal/catalog"
	"github.com/smartcourse/courseval/internal/config"
	"github.com/smartcourse/courseval/internal/dataset"
	"github.com/smartcourse/courseval/internal/extract"
	"github.com/smartcourse/courseval/internal/generation"
	"github.com/smartcourse/courseval/internal/models"
	"github.com/smartcourse/courseval/internal/prompt"
	"github.com/smartcourse/courseval/internal/roster"
	"github.com/smartcourse/courseval/internal/scoring"
)

// TrialRunner executes all trials for one evaluation spec.
type TrialRunner struct {
	cfg    *config.EvalConfig
	engine generation.Engine

	cache *cache.Cache

	progressMu sync.Mutex
	listeners  []ProgressListener
}

// ProgressListener receives progress updates.
type ProgressListener func(event ProgressEvent)

// EventType represents the type of progress event.
type EventType string

const (
	EventRunStart      EventType = "run_start"
	EventRunComplete   EventType = "run_complete"
	EventTrialStart    EventType = "trial_start"
	EventTrialComplete EventType = "trial_complete"
	EventTrialCached   EventType = "trial_cached"
)

// ProgressEvent represents a progress update.
type ProgressEvent struct {
	EventType   EventType
	Question    string
	Mode        models.Mode
	TrialNum    int
	TotalTrials int
	Status      models.Status
	Row         *models.TrialRow
}

// RunnerOption configures a TrialRunner.
type RunnerOption func(*TrialRunner)

// WithCache enables response caching.
func WithCache(c *cache.Cache) RunnerOption {
	return func(r *TrialRunner) {
		r.cache = c
	}
}

// NewTrialRunner creates a runner for the given config and engine.
func NewTrialRunner(cfg *config.EvalConfig, engine generation.Engine, opts ...RunnerOption) *TrialRunner {
	r := &TrialRunner{
		cfg:       cfg,
		engine:    engine,
		listeners: []ProgressListener{},
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// OnProgress registers a progress listener.
func (r *TrialRunner) OnProgress(listener ProgressListener) {
	r.progressMu.Lock()
	defer r.progressMu.Unlock()
	r.listeners = append(r.listeners, listener)
}

func (r *TrialRunner) notifyProgress(event ProgressEvent) {
	r.progressMu.Lock()
	listeners := make([]ProgressListener, len(r.listeners))
	copy(listeners, r.listeners)
	r.progressMu.Unlock()

	for _, listener := range listeners {
		listener(event)
	}
}

// trial is one scheduled (question, mode) pair. Trials keep their schedule
// index so rows come out in the canonical question-major, mode-minor order
// no matter how execution interleaves.
type trial struct {
	index    int
	question string
	mode     models.Mode
}

// runInputs is everything loaded once per run and shared read-only by all
// trials.
type runInputs struct {
	student   *roster.Student
	plan      []string
	questions []string
	extractor *extract.Extractor
	scoreIn   scoring.Input
}

// Run executes every trial and returns the rows in canonical order. A failed
// generation call fails only its own trial; the row records the error.
func (r *TrialRunner) Run(ctx context.Context) ([]models.TrialRow, error) {
	in, err := r.loadInputs()
	if err != nil {
		return nil, err
	}

	if err := r.engine.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("initialize engine: %w", err)
	}
	defer func() {
		if err := r.engine.Shutdown(ctx); err != nil {
			slog.Warn("engine shutdown failed", "error", err)
		}
	}()

	spec := r.cfg.Spec()
	var trials []trial
	for _, q := range in.questions {
		for _, mode := range spec.Modes {
			trials = append(trials, trial{index: len(trials), question: q, mode: mode})
		}
	}

	r.notifyProgress(ProgressEvent{EventType: EventRunStart, TotalTrials: len(trials)})

	rows := make([]models.TrialRow, len(trials))
	if spec.Config.Parallel {
		err = r.runConcurrent(ctx, trials, in, rows)
	} else {
		err = r.runSequential(ctx, trials, in, rows)
	}
	if err != nil {
		return nil, err
	}

	r.notifyProgress(ProgressEvent{EventType: EventRunComplete, TotalTrials: len(trials)})
	return rows, nil
}

func (r *TrialRunner) runSequential(ctx context.Context, trials []trial, in *runInputs, rows []models.TrialRow) error {
	for _, t := range trials {
		if err := ctx.Err(); err != nil {
			return err
		}
		rows[t.index] = r.runTrial(ctx, t, in, len(trials))
	}
	return nil
}

// runConcurrent executes independent trials in parallel. Each trial writes
// only its own row slot, so no lock is needed on the result slice. Run-level
// cancellation stops scheduling; a single trial's timeout is absorbed into
// its row and never cancels siblings.
func (r *TrialRunner) runConcurrent(ctx context.Context, trials []trial, in *runInputs, rows []models.TrialRow) error {
	workers := r.cfg.Spec().Config.Workers
	if workers < 1 {
		workers = 4
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, t := range trials {
		t := t
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rows[t.index] = r.runTrial(gctx, t, in, len(trials))
			return nil
		})
	}
	return g.Wait()
}

func (r *TrialRunner) runTrial(ctx context.Context, t trial, in *runInputs, total int) models.TrialRow {
	r.notifyProgress(ProgressEvent{
		EventType:   EventTrialStart,
		Question:    t.question,
		Mode:        t.mode,
		TrialNum:    t.index + 1,
		TotalTrials: total,
	})

	row := models.TrialRow{Question: t.question, Mode: t.mode, Status: models.StatusOK}

	text, latency, cached, err := r.obtainResponse(ctx, t, in)
	row.Latency = latency
	if err != nil {
		row.Status = models.StatusFailed
		row.ErrorMsg = err.Error()
		slog.Warn("trial failed", "question", t.question, "mode", t.mode, "error", err)
	} else {
		recs := in.extractor.Extract(text)
		result := scoring.Score(recs, in.scoreIn)
		row.Recommended = result.Recommended
		row.PlanScore = result.PlanScore
		row.PersonalScore = result.PersonalScore
		row.Lift = result.Lift
		row.Recall = result.Recall
		row.InvalidTaken = result.InvalidTaken
		row.InvalidOffPlan = result.InvalidOffPlan
	}

	event := EventTrialComplete
	if cached {
		event = EventTrialCached
	}
	r.notifyProgress(ProgressEvent{
		EventType:   event,
		Question:    t.question,
		Mode:        t.mode,
		TrialNum:    t.index + 1,
		TotalTrials: total,
		Status:      row.Status,
		Row:         &row,
	})
	return row
}

// obtainResponse produces the model text for one trial, consulting the cache
// first. The per-trial timeout lives here: it bounds only this generation
// call.
func (r *TrialRunner) obtainResponse(ctx context.Context, t trial, in *runInputs) (string, time.Duration, bool, error) {
	spec := r.cfg.Spec()

	promptText, err := prompt.Build(t.mode, t.question, in.student, in.plan)
	if err != nil {
		return "", 0, false, err
	}

	key := cache.Key(spec.Config.Model, string(t.mode), promptText)
	if r.cache != nil {
		if entry, ok := r.cache.Get(key); ok {
			return entry.Text, entry.Latency, true, nil
		}
	}

	timeout := time.Duration(spec.Config.TimeoutSec) * time.Second
	tctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := r.engine.Generate(tctx, &generation.Request{
		Model:  spec.Config.Model,
		Prompt: promptText,
		Stream: spec.Config.Stream,
	})
	if err != nil {
		var timeoutErr *generation.TimeoutError
		if errors.As(err, &timeoutErr) {
			return "", timeoutErr.Elapsed, false, err
		}
		return "", 0, false, err
	}

	if r.cache != nil {
		if err := r.cache.Put(key, &cache.Entry{Text: resp.Text, Latency: resp.Latency}); err != nil {
			slog.Warn("cache write failed", "error", err)
		}
	}
	return resp.Text, resp.Latency, false, nil
}

func (r *TrialRunner) loadInputs() (*runInputs, error) {
	spec := r.cfg.Spec()

	idx, err := catalog.Load(r.cfg.ResolvePath(spec.Files.Catalog))
	if err != nil {
		return nil, err
	}

	extractOpts, err := extract.DecodeOptions(spec.Config.Extraction)
	if err != nil {
		return nil, err
	}

	store, err := roster.Load(
		r.cfg.ResolvePath(spec.Files.Accounts),
		r.cfg.ResolvePath(spec.Files.Enrollments),
	)
	if err != nil {
		return nil, err
	}
	student, err := store.Lookup(spec.Student)
	if err != nil {
		return nil, err
	}

	plansDir := spec.Files.PlansDir
	if plansDir == "" {
		plansDir = "."
	}
	planCourses, err := catalog.LoadPlan(r.cfg.ResolvePath(student.PlanPath(plansDir)))
	if err != nil {
		return nil, err
	}
	plan := make([]string, len(planCourses))
	planSet := make(map[string]bool, len(planCourses))
	for i, c := range planCourses {
		plan[i] = c.Canonical
		planSet[c.Canonical] = true
	}

	questions, err := dataset.LoadQuestions(r.cfg.ResolvePath(spec.Files.Questions))
	if err != nil {
		return nil, err
	}

	// With personalization off the threshold is the ungraded sentinel, which
	// never compares low, so personal and plan scores coincide.
	threshold := scoring.Ungraded
	if spec.PersonalizedScoring() {
		threshold, err = scoring.ParseGrade(spec.Config.LowGradeThreshold)
		if err != nil {
			return nil, fmt.Errorf("low_grade_threshold: %w", err)
		}
	}

	return &runInputs{
		student:   student,
		plan:      plan,
		questions: questions,
		extractor: extract.New(idx, extractOpts),
		scoreIn: scoring.Input{
			Plan:              planSet,
			Taken:             student.Taken,
			LowGradeThreshold: threshold,
		},
	}, nil
}

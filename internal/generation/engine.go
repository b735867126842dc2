// Package generation abstracts the text-generation backend that answers the
// evaluation prompts.
package generation

import (
	"context"
	"fmt"
	"time"
)

// Engine is the interface for obtaining model output for a prompt.
type Engine interface {
	// Initialize sets up the engine.
	Initialize(ctx context.Context) error

	// Generate produces text for one prompt.
	Generate(ctx context.Context, req *Request) (*Response, error)

	// Shutdown cleans up resources.
	Shutdown(ctx context.Context) error
}

// Request represents one generation call.
type Request struct {
	Model  string
	Prompt string
	Stream bool
}

// Response is the full generated text plus the wall-clock latency of the
// call. Streaming responses are concatenated before being returned here, so
// callers never see partial text.
type Response struct {
	Text    string
	Latency time.Duration
}

// TimeoutError marks a generation call that exceeded its deadline. The
// runner treats it as a single-trial failure rather than a run abort.
type TimeoutError struct {
	Model   string
	Elapsed time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("generation timed out after %s (model %s)", e.Elapsed.Round(time.Millisecond), e.Model)
}

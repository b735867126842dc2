package generation

import (
	"context"
	"fmt"
	"time"
)

// MockEngine is a deterministic in-process engine for tests and dry runs.
// Respond, when set, maps each prompt to a reply; otherwise a canned echo
// response is produced.
type MockEngine struct {
	Respond func(req *Request) (string, error)
	Delay   time.Duration
}

// NewMockEngine creates a mock engine with the canned echo response.
func NewMockEngine() *MockEngine {
	return &MockEngine{}
}

func (m *MockEngine) Initialize(ctx context.Context) error { return nil }

func (m *MockEngine) Shutdown(ctx context.Context) error { return nil }

func (m *MockEngine) Generate(ctx context.Context, req *Request) (*Response, error) {
	start := time.Now()
	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return nil, &TimeoutError{Model: req.Model, Elapsed: time.Since(start)}
		}
	}

	text := fmt.Sprintf("Mock response for: %s", req.Prompt)
	if m.Respond != nil {
		var err error
		text, err = m.Respond(req)
		if err != nil {
			return nil, err
		}
	}
	return &Response{Text: text, Latency: time.Since(start)}, nil
}

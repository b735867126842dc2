package spinner

import (
	"strings"
	"sync"
	"testing"
	"time"
)

// syncWriter guards a strings.Builder for concurrent spinner writes.
type syncWriter struct {
	mu sync.Mutex
	sb strings.Builder
}

func (w *syncWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sb.Write(p)
}

func (w *syncWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sb.String()
}

func TestSpinner_DrawsAndClears(t *testing.T) {
	w := &syncWriter{}
	stop := Start(w, "working")
	time.Sleep(3 * frameInterval)
	stop()

	out := w.String()
	if !strings.Contains(out, "working") {
		t.Fatalf("spinner never drew its message: %q", out)
	}
	if !strings.HasSuffix(out, "\r") {
		t.Fatalf("spinner did not clear the line: %q", out)
	}
}

func TestSpinner_StopIsIdempotent(t *testing.T) {
	w := &syncWriter{}
	stop := Start(w, "working")
	stop()
	stop() // must not panic or block
}

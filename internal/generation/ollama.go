package generation

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// OllamaEngine talks to an Ollama server's /api/generate endpoint.
type OllamaEngine struct {
	baseURL string
	client  *http.Client
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// generateChunk is one body (non-streaming) or one NDJSON fragment
// (streaming) of the Ollama response.
type generateChunk struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// NewOllamaEngine returns an engine for the given base URL. The timeout is
// applied per Generate call via context, not on the underlying client, so a
// single slow trial cannot poison the connection pool settings of others.
func NewOllamaEngine(baseURL string) *OllamaEngine {
	return &OllamaEngine{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{},
	}
}

// Initialize is a no-op; Ollama needs no session setup.
func (e *OllamaEngine) Initialize(ctx context.Context) error { return nil }

// Shutdown closes idle connections.
func (e *OllamaEngine) Shutdown(ctx context.Context) error {
	e.client.CloseIdleConnections()
	return nil
}

// Generate posts the prompt and returns the full response text. In streaming
// mode the NDJSON fragments' response fields are concatenated in arrival
// order; the scored text is identical either way.
func (e *OllamaEngine) Generate(ctx context.Context, req *Request) (*Response, error) {
	body, err := json.Marshal(generateRequest{
		Model:  req.Model,
		Prompt: req.Prompt,
		Stream: req.Stream,
	})
	if err != nil {
		return nil, fmt.Errorf("ollama: marshal request: %w", err)
	}

	start := time.Now()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ollama: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &TimeoutError{Model: req.Model, Elapsed: time.Since(start)}
		}
		return nil, fmt.Errorf("ollama: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("ollama: %s returned %d: %s", e.baseURL, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var text string
	if req.Stream {
		text, err = readStream(resp.Body)
	} else {
		text, err = readSingle(resp.Body)
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &TimeoutError{Model: req.Model, Elapsed: time.Since(start)}
		}
		return nil, err
	}

	latency := time.Since(start)
	slog.Debug("generation complete", "model", req.Model, "stream", req.Stream, "latency", latency)
	return &Response{Text: text, Latency: latency}, nil
}

func readSingle(body io.Reader) (string, error) {
	var chunk generateChunk
	if err := json.NewDecoder(body).Decode(&chunk); err != nil {
		return "", fmt.Errorf("ollama: decode response: %w", err)
	}
	return chunk.Response, nil
}

func readStream(body io.Reader) (string, error) {
	var sb strings.Builder
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var chunk generateChunk
		if err := json.Unmarshal(line, &chunk); err != nil {
			return "", fmt.Errorf("ollama: decode stream fragment: %w", err)
		}
		sb.WriteString(chunk.Response)
		if chunk.Done {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("ollama: read stream: %w", err)
	}
	return sb.String(), nil
}

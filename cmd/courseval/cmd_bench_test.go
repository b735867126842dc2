package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBenchCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/generate", r.URL.Path)
		w.Write([]byte(`{"response": "CPS 2232 then CPS 3440 then machine learning", "done": true}`))
	}))
	defer srv.Close()

	cmd := newBenchCommand()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)
	cmd.SetArgs([]string{"--backend-url", srv.URL, "--model", "test-model"})

	require.NoError(t, cmd.Execute())

	var result benchResult
	require.NoError(t, json.Unmarshal(output.Bytes(), &result))
	assert.Equal(t, "test-model", result.Model)
	assert.Equal(t, 8, result.Tokens)
	assert.Greater(t, result.LatencySec, 0.0)
}

func TestBenchCommand_BackendDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such model", http.StatusNotFound)
	}))
	defer srv.Close()

	cmd := newBenchCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--backend-url", srv.URL})

	assert.Error(t, cmd.Execute())
}

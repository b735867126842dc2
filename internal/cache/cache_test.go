package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey_Distinguishes(t *testing.T) {
	base := Key("m", "full", "prompt")
	assert.Equal(t, base, Key("m", "full", "prompt"))
	assert.NotEqual(t, base, Key("m2", "full", "prompt"))
	assert.NotEqual(t, base, Key("m", "noPlan", "prompt"))
	assert.NotEqual(t, base, Key("m", "full", "prompt2"))
	// Length prefixing keeps adjacent parts from bleeding into each other.
	assert.NotEqual(t, Key("ab", "c", ""), Key("a", "bc", ""))
}

func TestCache_RoundTrip(t *testing.T) {
	c := New(t.TempDir())
	entry := &Entry{Text: "Take CPS 2232: Data Structure", Latency: 1250 * time.Millisecond}
	key := Key("m", "full", "q")

	_, ok := c.Get(key)
	assert.False(t, ok, "expected miss before Put")

	require.NoError(t, c.Put(key, entry))

	got, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, entry, got)
}

func TestCache_DisabledWhenDirEmpty(t *testing.T) {
	c := New("")
	require.NoError(t, c.Put("k", &Entry{Text: "x"}))
	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestCache_CorruptEntryIsMiss(t *testing.T) {
	dir := t.TempDir()
	c := New(dir)
	key := Key("m", "full", "q")
	require.NoError(t, os.WriteFile(filepath.Join(dir, key+".json.gz"), []byte("not gzip"), 0644))

	_, ok := c.Get(key)
	assert.False(t, ok)
}

func TestCache_Clear(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	c := New(dir)
	require.NoError(t, c.Put(Key("m", "full", "q"), &Entry{Text: "x"}))

	require.NoError(t, c.Clear())
	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestCache_ClearRefusesForeignFiles(t *testing.T) {
	dir := t.TempDir()
	c := New(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("keep me"), 0644))

	assert.Error(t, c.Clear())
	_, err := os.Stat(filepath.Join(dir, "notes.txt"))
	assert.NoError(t, err)
}

package profiles

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	cases := map[string]Kind{
		"profiles/default.yaml":        KindProfile,
		"a.YML":                        KindProfile,
		"profiles/scripts/swamp.tengo": KindScript,
		"levels/arena.json":            KindLevel,
		"notes.txt":                    KindOther,
		"noext":                        KindOther,
	}
	for path, want := range cases {
		assert.Equal(t, want, Classify(path), path)
	}
	assert.Equal(t, "script", KindScript.String())
	assert.Equal(t, "other", KindOther.String())
}

func TestWatcherReportsChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644))
	target := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(target, []byte("name: custom\n"), 0o644))

	select {
	case change := <-w.Events:
		assert.Equal(t, target, change.Path)
		assert.Equal(t, KindProfile, change.Kind)
	case <-time.After(3 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatcherCloseClosesChannels(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	select {
	case _, ok := <-w.Events:
		assert.False(t, ok)
	case <-time.After(3 * time.Second):
		t.Fatal("events channel not closed")
	}
}

func TestWatcherMissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

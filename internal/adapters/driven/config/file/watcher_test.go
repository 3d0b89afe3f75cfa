package file

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingPromptStore struct {
	reloads atomic.Int32
}

func (s *countingPromptStore) Load(string) (string, error) { return "", nil }
func (s *countingPromptStore) Reload()                     { s.reloads.Add(1) }

func TestPromptWatcher_HandleFsEvent(t *testing.T) {
	w := NewPromptWatcher(&countingPromptStore{}, "/prompts")

	tests := []struct {
		name     string
		event    fsnotify.Event
		wantName string
		want     bool
	}{
		{"write template", fsnotify.Event{Name: "/prompts/answer.txt", Op: fsnotify.Write}, "answer", true},
		{"create template", fsnotify.Event{Name: "/prompts/custom.txt", Op: fsnotify.Create}, "custom", true},
		{"remove template", fsnotify.Event{Name: "/prompts/answer.txt", Op: fsnotify.Remove}, "answer", true},
		{"rename template", fsnotify.Event{Name: "/prompts/answer.txt", Op: fsnotify.Rename}, "answer", true},
		{"chmod ignored", fsnotify.Event{Name: "/prompts/answer.txt", Op: fsnotify.Chmod}, "", false},
		{"readme ignored", fsnotify.Event{Name: "/prompts/README.md", Op: fsnotify.Write}, "", false},
		{"editor swap ignored", fsnotify.Event{Name: "/prompts/.answer.txt.swp", Op: fsnotify.Create}, "", false},
		{"hidden template ignored", fsnotify.Event{Name: "/prompts/.answer.txt", Op: fsnotify.Write}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, ok := w.handleFsEvent(tt.event)
			assert.Equal(t, tt.want, ok)
			assert.Equal(t, tt.wantName, name)
		})
	}
}

func TestPromptWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	store := &countingPromptStore{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloads, err := NewPromptWatcher(store, dir).Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "answer.txt"), []byte("{context} {question}"), 0600))

	select {
	case name := <-reloads:
		assert.Equal(t, "answer", name)
		assert.GreaterOrEqual(t, store.reloads.Load(), int32(1))
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestPromptWatcher_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	reloads, err := NewPromptWatcher(&countingPromptStore{}, t.TempDir()).Watch(ctx)
	require.NoError(t, err)
	cancel()

	select {
	case _, ok := <-reloads:
		for ok {
			_, ok = <-reloads
		}
	case <-time.After(5 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestPromptWatcher_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "prompts")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := NewPromptWatcher(&countingPromptStore{}, dir).Watch(ctx)
	require.NoError(t, err)

	_, err = os.Stat(dir)
	assert.NoError(t, err)
}

package persist

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordlebot/internal/words"
)

func newTestStore() *words.Store {
	return words.New(
		[]string{"slate", "crane"},
		[]string{"slate", "crane", "adieu"},
	)
}

func TestFlushWritesBothListsSorted(t *testing.T) {
	dir := t.TempDir()
	s := newTestStore()
	w := NewWorker(s, dir, time.Minute, zerolog.Nop())

	require.NoError(t, w.Flush())

	playable, err := os.ReadFile(filepath.Join(dir, words.PlayableOverride))
	require.NoError(t, err)
	assert.Equal(t, "crane\nslate\n", string(playable))

	dictionary, err := os.ReadFile(filepath.Join(dir, words.DictionaryOverride))
	require.NoError(t, err)
	assert.Equal(t, "adieu\ncrane\nslate\n", string(dictionary))
}

// A flush followed by a fresh load from the same directory reproduces both
// sets exactly.
func TestFlushLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := newTestStore()
	s.Edit(words.ActionAdd, []string{"zebra"})
	s.Edit(words.ActionRemove, []string{"slate"})

	w := NewWorker(s, dir, time.Minute, zerolog.Nop())
	require.NoError(t, w.Flush())

	reloaded, err := words.Load(dir)
	require.NoError(t, err)
	wantPlayable, wantDictionary := s.Snapshot()
	gotPlayable, gotDictionary := reloaded.Snapshot()
	assert.Equal(t, wantPlayable, gotPlayable)
	assert.Equal(t, wantDictionary, gotDictionary)
}

func TestFlushIfDirtyConsumesFlag(t *testing.T) {
	dir := t.TempDir()
	s := newTestStore()
	w := NewWorker(s, dir, time.Minute, zerolog.Nop())

	// Clean store: nothing written.
	w.flushIfDirty()
	_, err := os.Stat(filepath.Join(dir, words.PlayableOverride))
	assert.True(t, os.IsNotExist(err))

	s.Edit(words.ActionAdd, []string{"zebra"})
	w.flushIfDirty()
	_, err = os.Stat(filepath.Join(dir, words.PlayableOverride))
	assert.NoError(t, err)
	assert.False(t, s.ConsumeDirty())
}

// A failed write re-arms the dirty flag so the next cycle retries.
func TestFlushFailureRearmsDirty(t *testing.T) {
	s := newTestStore()
	w := NewWorker(s, filepath.Join(t.TempDir(), "missing", "dir"), time.Minute, zerolog.Nop())

	s.Edit(words.ActionAdd, []string{"zebra"})
	w.flushIfDirty()
	assert.True(t, s.ConsumeDirty())
}

// Cancelling the run loop performs one final dirty flush before Done closes.
func TestRunFinalFlushOnShutdown(t *testing.T) {
	dir := t.TempDir()
	s := newTestStore()
	// Interval far beyond the test lifetime: only the shutdown path flushes.
	w := NewWorker(s, dir, time.Hour, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	go w.Run(ctx)

	s.Edit(words.ActionAdd, []string{"zebra"})
	cancel()

	select {
	case <-w.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop")
	}

	reloaded, err := words.Load(dir)
	require.NoError(t, err)
	assert.True(t, reloaded.ContainsInDictionary("zebra"))
}

func TestNewWorkerDefaultsInterval(t *testing.T) {
	w := NewWorker(newTestStore(), t.TempDir(), 0, zerolog.Nop())
	assert.Equal(t, DefaultInterval, w.interval)
}

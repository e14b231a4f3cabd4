// internal/persist/worker.go
//
// Background persistence for the word lists.
// Responsibilities:
//   - Wake on a fixed interval and test-and-clear the word store's dirty flag.
//   - When dirty, serialize both lists to their custom files, one word per
//     line, full overwrite.
//   - Survive write failures: log, re-arm the dirty flag, retry next cycle.
//   - Exit cleanly on shutdown, after one final dirty check so an edit made
//     just before termination is not silently dropped.
//
// The two files are written independently: a failure on one never prevents
// or corrupts the other, and each write replaces the previous file contents
// in full. This is best-effort persistence, not crash-safe journaling.

package persist

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/robalobadob/wordlebot/internal/words"
)

// DefaultInterval is the flush cadence when none is configured.
const DefaultInterval = 2 * time.Minute

// Worker periodically flushes the word store to disk.
type Worker struct {
	store    *words.Store
	dir      string
	interval time.Duration
	log      zerolog.Logger
	done     chan struct{}
}

// NewWorker constructs a Worker flushing store into dir every interval.
// A non-positive interval falls back to DefaultInterval.
func NewWorker(store *words.Store, dir string, interval time.Duration, log zerolog.Logger) *Worker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Worker{
		store:    store,
		dir:      dir,
		interval: interval,
		log:      log,
		done:     make(chan struct{}),
	}
}

// Run executes the flush loop until ctx is cancelled. The owning process
// must wait on Done after cancelling so an in-flight flush completes before
// the process exits.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// Final chance for edits made since the last tick.
			w.flushIfDirty()
			return
		case <-ticker.C:
			w.flushIfDirty()
		}
	}
}

// Done is closed once the loop has observed shutdown and finished its last
// flush.
func (w *Worker) Done() <-chan struct{} { return w.done }

// flushIfDirty runs one flush cycle: consume the dirty flag and, if it was
// set, write both lists. Any write failure re-arms the flag so the next
// cycle retries.
func (w *Worker) flushIfDirty() {
	if !w.store.ConsumeDirty() {
		return
	}
	if err := w.Flush(); err != nil {
		w.store.MarkDirty()
		w.log.Error().Err(err).Msg("flush word lists")
		return
	}
	w.log.Info().Msg("flushed word lists")
}

// Flush writes both lists unconditionally. Exposed so tests and shutdown
// paths can force a write without touching the dirty flag.
func (w *Worker) Flush() error {
	playable, dictionary := w.store.Snapshot()

	var firstErr error
	for _, out := range []struct {
		name string
		list []string
	}{
		{words.PlayableOverride, playable},
		{words.DictionaryOverride, dictionary},
	} {
		if err := writeList(filepath.Join(w.dir, out.name), out.list); err != nil {
			w.log.Warn().Err(err).Str("file", out.name).Msg("write word list")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// writeList overwrites path with one word per line, trailing newline each.
func writeList(path string, list []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	for _, word := range list {
		if _, err := bw.WriteString(word + "\n"); err != nil {
			_ = f.Close()
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

package store_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordlebot/internal/dialogue"
	"github.com/robalobadob/wordlebot/internal/store"
)

func TestUnknownConversationStartsAtStart(t *testing.T) {
	m := store.NewMemoryStore()
	var seen dialogue.State
	err := m.Update(context.Background(), "c1", func(st dialogue.State) dialogue.State {
		seen = st
		return st
	})
	require.NoError(t, err)
	assert.Equal(t, dialogue.Start{}, seen)
}

func TestUpdatePersistsReturnedState(t *testing.T) {
	m := store.NewMemoryStore()
	next := dialogue.Guessing{Answer: "crane"}
	require.NoError(t, m.Update(context.Background(), "c1", func(dialogue.State) dialogue.State {
		return next
	}))

	var seen dialogue.State
	require.NoError(t, m.Update(context.Background(), "c1", func(st dialogue.State) dialogue.State {
		seen = st
		return st
	}))
	assert.Equal(t, dialogue.State(next), seen)

	// A different conversation is unaffected.
	require.NoError(t, m.Update(context.Background(), "c2", func(st dialogue.State) dialogue.State {
		assert.Equal(t, dialogue.Start{}, st)
		return st
	}))
}

// Concurrent updates to one conversation are serialized: every transition
// observes the previous one's result.
func TestUpdateSerializesPerConversation(t *testing.T) {
	m := store.NewMemoryStore()
	const n = 100

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.Update(context.Background(), "c1", func(st dialogue.State) dialogue.State {
				g, _ := st.(dialogue.Guessing)
				g.History = append(g.History, dialogue.Attempt{})
				return g
			})
		}()
	}
	wg.Wait()

	var final dialogue.Guessing
	require.NoError(t, m.Update(context.Background(), "c1", func(st dialogue.State) dialogue.State {
		final = st.(dialogue.Guessing)
		return st
	}))
	assert.Len(t, final.History, n)
}

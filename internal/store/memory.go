// internal/store/memory.go
//
// In-memory implementation of the conversation state Store interface.
// Holds the dialogue state for every active conversation, keyed by the
// channel's stable conversation identifier.
//
// Characteristics:
//   - Each conversation gets its own mutex, so transitions for one
//     conversation are strictly sequential while distinct conversations
//     proceed concurrently.
//   - Unknown conversations start in dialogue.Start{}.
//   - State is lost when the process restarts (the resting state is Start,
//     so a restart simply ends any in-flight games).

package store

import (
	"context"
	"sync"

	"github.com/robalobadob/wordlebot/internal/dialogue"
)

// Store defines persistence for per-conversation dialogue state.
// Implementations may be backed by memory (this package), Redis, SQL, etc.
type Store interface {
	// Update runs fn against the conversation's current state and persists
	// the state fn returns. Calls for the same conversation are serialized;
	// fn must not call back into the Store.
	Update(ctx context.Context, conversationID string, fn func(dialogue.State) dialogue.State) error
}

// session pairs one conversation's state with its transition lock.
type session struct {
	mu    sync.Mutex
	state dialogue.State
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.Mutex          // guards sessions map
	sessions map[string]*session // keyed by conversation ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*session)}
}

// Update locks the conversation's session, applies fn, and stores the result.
func (m *memory) Update(ctx context.Context, conversationID string, fn func(dialogue.State) dialogue.State) error {
	s := m.session(conversationID)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = fn(s.state)
	return nil
}

// session returns the conversation's session, creating it in Start if absent.
func (m *memory) session(id string) *session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		return s
	}
	s := &session{state: dialogue.Start{}}
	m.sessions[id] = s
	return s
}

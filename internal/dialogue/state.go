// internal/dialogue/state.go
//
// Per-conversation dialogue state.
// Defines the two states of the game state machine as a sealed sum type:
//   - Start:    resting state, no game in progress.
//   - Guessing: a game in progress with a fixed secret answer.
//
// Each conversation owns exactly one State value; the engine maps
// (State, message) to (reply, next State) without touching transport.

package dialogue

// State is the sealed interface over the dialogue states. Only Start and
// Guessing implement it.
type State interface {
	isState()
}

// Start is the default and resting state: no game in progress.
type Start struct{}

func (Start) isState() {}

// Attempt is one scored guess kept in a game's history: the rendered tile
// row alongside the word that produced it.
type Attempt struct {
	Rendered string
	Word     string
}

// Guessing is an in-progress game.
type Guessing struct {
	// Answer is the secret word, fixed for the session.
	Answer string
	// History holds the scored attempts so far, oldest first. Its length
	// never exceeds game.MaxGuesses.
	History []Attempt
	// LastInput is the previous message's parsed tokens. It backs the
	// /addword shortcut that re-adds the previous single-word guess.
	LastInput []string
}

func (Guessing) isState() {}

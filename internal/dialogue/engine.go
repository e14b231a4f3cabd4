// internal/dialogue/engine.go
//
// Command dispatch for the game state machine.
// Responsibilities:
//   - Parse an inbound message into whitespace-delimited tokens.
//   - Dispatch on (current state, first token) and produce a reply plus the
//     next state.
//   - Run the guess pipeline: length check, dictionary check, scoring,
//     history, win/continue/lose.
//   - Forward /addword and /removeword to the word store's edit protocol.
//
// Handle is pure with respect to transport: it never sends anything, and a
// failed delivery of its reply must not change the state it returned.
// Command matching is case-sensitive and exact; unrecognized messages
// produce an empty reply, which the channel treats as "do not respond".

package dialogue

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/robalobadob/wordlebot/internal/game"
	"github.com/robalobadob/wordlebot/internal/words"
)

// Engine interprets messages against per-conversation dialogue state.
// One Engine serves all conversations; it holds no per-game state itself.
type Engine struct {
	store *words.Store
	log   zerolog.Logger
}

// NewEngine constructs an Engine backed by the shared word store.
func NewEngine(store *words.Store, log zerolog.Logger) *Engine {
	return &Engine{store: store, log: log}
}

// Handle maps (state, message) to (reply, next state). An empty reply means
// the message was not recognized as a command for this engine and no
// response should be sent.
func (e *Engine) Handle(st State, text string) (string, State) {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return "", st
	}

	switch s := st.(type) {
	case Guessing:
		return e.handleGuessing(s, tokens)
	case Start:
		return e.handleStart(tokens)
	default:
		// A nil State behaves like the initial state.
		return e.handleStart(tokens)
	}
}

// handleStart recognizes only /wordle; everything else rests in Start.
func (e *Engine) handleStart(tokens []string) (string, State) {
	if tokens[0] != "/wordle" {
		return "", Start{}
	}
	answer := e.store.PickRandomPlayable()
	e.log.Debug().Int("letters", game.WordLength).Msg("game started")
	return "Wordle game started - /guess any 5 letter word", Guessing{
		Answer:    answer,
		LastInput: tokens,
	}
}

// handleGuessing dispatches the in-game commands.
func (e *Engine) handleGuessing(st Guessing, tokens []string) (string, State) {
	// next carries the updated LastInput for the commands that record it.
	next := st
	next.LastInput = tokens

	switch tokens[0] {
	case "/addword":
		// Bare /addword after a two-token message (typically a rejected
		// /guess) re-adds that previous word.
		if len(tokens) == 1 && len(st.LastInput) == 2 {
			added := e.store.Edit(words.ActionAdd, st.LastInput[1:])
			return fmt.Sprintf("Added %v", added), next
		}
		added := e.store.Edit(words.ActionAdd, tokens[1:])
		return fmt.Sprintf("Added %v", added), next

	case "/removeword":
		if len(tokens) < 2 {
			return "Usage: /removeword <WORD> [..WORD2]", next
		}
		removed := e.store.Edit(words.ActionRemove, tokens[1:])
		return fmt.Sprintf("Removed %v", removed), next

	case "/exit", "/end", "/stop":
		return fmt.Sprintf("Ending game. Word was %s", st.Answer), Start{}

	case "/guess":
		if len(tokens) != 2 {
			return "Invalid guess", st
		}
		return e.applyGuess(next, tokens[1])

	default:
		// Not meant for us.
		return "", st
	}
}

// applyGuess runs the guess pipeline: length check, dictionary check,
// scoring, history append, then win/continue/lose. st already carries the
// updated LastInput.
func (e *Engine) applyGuess(st Guessing, attempt string) (string, State) {
	attempt = strings.ToLower(attempt)

	if utf8.RuneCountInString(attempt) != game.WordLength {
		return fmt.Sprintf("Guess was not %d characters", game.WordLength), st
	}
	if !e.store.ContainsInDictionary(attempt) {
		return fmt.Sprintf("%s is not in the dictionary. /addword?", attempt), st
	}

	tiles := game.Evaluate(attempt, st.Answer)
	st.History = append(st.History, Attempt{Rendered: game.Render(tiles), Word: attempt})
	tries := len(st.History)
	board := renderHistory(st.History)

	if game.AllCorrect(tiles) {
		return fmt.Sprintf("You won. %d/%d\n%s", tries, game.MaxGuesses, board), Start{}
	}
	if tries < game.MaxGuesses {
		return fmt.Sprintf("%d/%d\n%s", tries, game.MaxGuesses, board), st
	}
	return fmt.Sprintf("You lost. %d/%d\nAnswer was %s\n%s",
		game.MaxGuesses, game.MaxGuesses, st.Answer, board), Start{}
}

// renderHistory joins the rendered tile rows, oldest first.
func renderHistory(history []Attempt) string {
	rows := make([]string, len(history))
	for i, a := range history {
		rows[i] = a.Rendered
	}
	return strings.Join(rows, "\n")
}

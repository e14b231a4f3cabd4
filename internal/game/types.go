// internal/game/types.go
//
// Core type definitions for guess evaluation.
// Defines:
//   - Tile: per-letter result of a guess (correct/present/absent).
//   - Word dimension constants shared by the evaluator and the dialogue engine.

package game

// Tile represents the evaluation result for a single letter in a guess.
// Possible values:
//   - "correct": letter is correct and in the correct position.
//   - "present": letter exists in the answer but in a different position.
//   - "absent":  letter cannot improve the score further.
type Tile string

const (
	TileCorrect Tile = "correct"
	TilePresent Tile = "present"
	TileAbsent  Tile = "absent"
)

// WordLength is the fixed word length, counted in Unicode scalar values.
const WordLength = 5

// MaxGuesses is the number of attempts before a game is lost.
const MaxGuesses = 6

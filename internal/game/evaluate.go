// internal/game/evaluate.go
//
// Guess scoring for a single Wordle attempt.
// Responsibilities:
//   - Score an attempt against an answer using the classic two-pass algorithm.
//   - Render a tile row as the familiar green/yellow/black glyph string.
//   - Decide the win condition (all tiles correct).
//
// Notes:
//   - Words are compared rune-by-rune, so non-ASCII answers work as long as
//     they are exactly WordLength Unicode scalar values.
//   - Evaluate is a pure function: no shared state, safe for concurrent use.

package game

import "strings"

// Evaluate scores attempt against answer and returns one Tile per position.
//
// Pass 1:
//   - Mark exact matches as TileCorrect.
//   - Count the remaining (non-correct) answer letters by rune.
//
// Pass 2:
//   - For each non-correct attempt letter: if the answer still has an unused
//     instance of that letter, mark TilePresent and consume it; otherwise
//     mark TileAbsent.
//
// Consuming letters in both passes keeps duplicate letters honest: an answer
// letter already claimed by an exact match can never also produce a present,
// and two identical attempt letters cannot both claim a single answer letter.
//
// Both inputs must be exactly WordLength runes; the caller validates length.
func Evaluate(attempt, answer string) []Tile {
	attemptRunes := []rune(attempt)
	answerRunes := []rune(answer)
	n := len(attemptRunes)
	tiles := make([]Tile, n)

	// Remaining letter counts for the non-correct answer positions.
	remaining := make(map[rune]int, n)

	for i := 0; i < n; i++ {
		if attemptRunes[i] == answerRunes[i] {
			tiles[i] = TileCorrect
		} else {
			remaining[answerRunes[i]]++
		}
	}

	for i := 0; i < n; i++ {
		if tiles[i] == TileCorrect {
			continue
		}
		if remaining[attemptRunes[i]] > 0 {
			tiles[i] = TilePresent
			remaining[attemptRunes[i]]--
		} else {
			tiles[i] = TileAbsent
		}
	}
	return tiles
}

// AllCorrect reports whether every tile is TileCorrect.
func AllCorrect(tiles []Tile) bool {
	for _, t := range tiles {
		if t != TileCorrect {
			return false
		}
	}
	return true
}

// Glyphs used to render one tile row for chat display.
const (
	glyphCorrect = "🟩"
	glyphPresent = "🟨"
	glyphAbsent  = "⬛"
)

// Render maps a tile row to its positional glyph string.
func Render(tiles []Tile) string {
	var b strings.Builder
	for _, t := range tiles {
		switch t {
		case TileCorrect:
			b.WriteString(glyphCorrect)
		case TilePresent:
			b.WriteString(glyphPresent)
		default:
			b.WriteString(glyphAbsent)
		}
	}
	return b.String()
}

// ParseRendered is the inverse of Render. It exists so tests can assert on
// tile rows instead of raw glyph strings. Unknown runes map to TileAbsent.
func ParseRendered(s string) []Tile {
	var tiles []Tile
	for _, r := range s {
		switch string(r) {
		case glyphCorrect:
			tiles = append(tiles, TileCorrect)
		case glyphPresent:
			tiles = append(tiles, TilePresent)
		default:
			tiles = append(tiles, TileAbsent)
		}
	}
	return tiles
}

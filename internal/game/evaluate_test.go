package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Golden case fixed by a reference run of the two-pass algorithm:
// answer ERASE, attempt SPEED. No position matches, so pass 1 leaves
// e:2 r:1 a:1 s:1 available; pass 2 then consumes S, E and E and runs
// out for P and D.
func TestEvaluateSpeedAgainstErase(t *testing.T) {
	tiles := Evaluate("speed", "erase")
	require.Equal(t, []Tile{
		TilePresent, // s — present elsewhere
		TileAbsent,  // p — not in answer
		TilePresent, // e — first E consumed
		TilePresent, // e — second E consumed
		TileAbsent,  // d — not in answer
	}, tiles)
}

func TestEvaluateAllCorrect(t *testing.T) {
	tiles := Evaluate("abcde", "abcde")
	require.Equal(t, []Tile{TileCorrect, TileCorrect, TileCorrect, TileCorrect, TileCorrect}, tiles)
	assert.True(t, AllCorrect(tiles))
}

// An exact match consumes its answer letter, so a duplicate attempt letter
// cannot also score it as present.
func TestEvaluateExactMatchConsumesLetter(t *testing.T) {
	// answer ABIDE has one E, matched exactly at position 4; the two
	// leading Es in the attempt find nothing left to claim.
	tiles := Evaluate("eexxe", "abide")
	require.Equal(t, []Tile{TileAbsent, TileAbsent, TileAbsent, TileAbsent, TileCorrect}, tiles)
}

// Duplicate answer letters: each unmatched instance can be claimed once.
func TestEvaluateDuplicateAnswerLetters(t *testing.T) {
	// answer ROBOT: O at position 1 is exact; the remaining O is claimed by
	// the attempt's second non-correct O, and B is present elsewhere.
	tiles := Evaluate("books", "robot")
	require.Equal(t, []Tile{TilePresent, TileCorrect, TilePresent, TileAbsent, TileAbsent}, tiles)
}

func TestEvaluateNoCorrectNeverWins(t *testing.T) {
	tiles := Evaluate("slate", "crane")
	assert.False(t, AllCorrect(tiles))
}

func TestRenderRoundTrip(t *testing.T) {
	tiles := []Tile{TileCorrect, TilePresent, TileAbsent, TilePresent, TileCorrect}
	rendered := Render(tiles)
	assert.Equal(t, "🟩🟨⬛🟨🟩", rendered)
	assert.Equal(t, tiles, ParseRendered(rendered))
}

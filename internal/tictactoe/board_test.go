package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_EvaluateOutcome(t *testing.T) {
	t.Run("Winner X on a column", func(t *testing.T) {
		// Given: a board where X owns column 0
		board := Board{
			PlayerX, PlayerO, "",
			PlayerX, PlayerO, "",
			PlayerX, "", "",
		}

		// When: the outcome is evaluated
		outcome := board.EvaluateOutcome()

		// Then: X wins
		require.Equal(t, XWins, outcome)
	})

	t.Run("Winner O on a diagonal", func(t *testing.T) {
		// Given: a board where O owns the anti-diagonal
		board := Board{
			PlayerX, PlayerX, PlayerO,
			"", PlayerO, PlayerX,
			PlayerO, "", "",
		}

		// When: the outcome is evaluated
		outcome := board.EvaluateOutcome()

		// Then: O wins
		require.Equal(t, OWins, outcome)
	})

	t.Run("Ongoing game", func(t *testing.T) {
		// Given: a board with empty cells and no completed line
		board := Board{
			PlayerX, PlayerO, PlayerX,
			"", PlayerO, "",
			PlayerX, "", "",
		}

		// When: the outcome is evaluated
		outcome := board.EvaluateOutcome()

		// Then: the game continues
		require.Equal(t, InProgress, outcome)
	})

	t.Run("Draw on a full board with no line", func(t *testing.T) {
		// Given: all 9 cells filled with no three-in-a-row
		board := Board{
			PlayerO, PlayerX, PlayerO,
			PlayerO, PlayerX, PlayerX,
			PlayerX, PlayerO, PlayerX,
		}

		// When: the outcome is evaluated
		outcome := board.EvaluateOutcome()

		// Then: the game is a draw
		assert.Equal(t, Draw, outcome)
	})

	t.Run("Winning move on the last empty cell is a win, not a draw", func(t *testing.T) {
		// Given: a full board where X completed a line with the final move
		board := Board{
			PlayerX, PlayerX, PlayerX,
			PlayerO, PlayerO, PlayerX,
			PlayerX, PlayerO, PlayerO,
		}

		// When: the outcome is evaluated
		outcome := board.EvaluateOutcome()

		// Then: the line check takes precedence over the full-board check
		require.Equal(t, XWins, outcome)
	})
}

func TestBoard_ApplyUndo(t *testing.T) {
	// Given: a board mid-game
	board := Board{
		PlayerX, "", "",
		"", PlayerO, "",
		"", "", "",
	}
	before := board

	// When: every empty cell is speculatively played and undone, for both marks
	for cell := range board {
		if board[cell] != EmptyCell {
			continue
		}

		for _, mark := range []string{PlayerX, PlayerO} {
			board.ApplyMove(cell, mark)
			require.Equal(t, mark, board[cell])

			board.UndoMove(cell)

			// Then: the board is exactly the prior board
			require.Equal(t, before, board)
		}
	}
}

func TestBoard_IsFull(t *testing.T) {
	// Given: an empty board
	var board Board
	assert.False(t, board.IsFull())

	// When: every cell gets filled
	for cell := range board {
		board.ApplyMove(cell, PlayerX)
	}

	// Then: the board reports full
	assert.True(t, board.IsFull())
}

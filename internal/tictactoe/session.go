package tictactoe

import (
	"errors"
	"fmt"

	"github.com/gridplay/tictactoe-engine/internal/apperror"
)

var (
	ErrInvalidCell      = errors.New("invalid cell index")
	ErrNoAvailableMoves = errors.New("no available moves")
)

// Session owns a single game: the board, whose turn it is, and the derived
// outcome. All mutation goes through SubmitMove so board and turn can never
// desynchronize. It replaces the process-wide game state of earlier versions
// so several games can run side by side.
type Session struct {
	board   Board
	turn    string
	outcome Outcome
}

func NewSession() *Session {
	that := &Session{}
	that.Reset()
	return that
}

// Reset starts a new game: empty board, X to move, in progress.
func (that *Session) Reset() {
	that.board = Board{}
	that.turn = PlayerX
	that.outcome = InProgress
}

// Restore re-creates a session from an externally stored board and turn.
func Restore(board Board, turn string) *Session {
	return &Session{
		board:   board,
		turn:    turn,
		outcome: board.EvaluateOutcome(),
	}
}

// SubmitMove applies a move for mark, recomputes the outcome and returns it.
func (that *Session) SubmitMove(cell int, mark string) (Outcome, error) {
	if that.outcome != InProgress {
		return that.outcome, apperror.ErrGameFinished
	}

	if cell < 0 || cell >= BoardSize {
		return that.outcome, fmt.Errorf("%w: cell %d", ErrInvalidCell, cell)
	}

	if that.turn != mark {
		return that.outcome, apperror.ErrNotYourTurn
	}

	if that.board[cell] != EmptyCell {
		return that.outcome, apperror.ErrCellOccupied
	}

	that.board.ApplyMove(cell, mark)
	that.outcome = that.board.EvaluateOutcome()

	if that.outcome == InProgress {
		that.turn = toggleMark(mark)
	} else {
		that.turn = EmptyCell
	}

	return that.outcome, nil
}

// ComputeAIMove runs move selection for the side to move and returns the
// chosen cell. It never applies the move; the caller commits it through
// SubmitMove. Calling it on a finished or full board is a protocol violation
// and yields an error with the board untouched.
func (that *Session) ComputeAIMove() (int, error) {
	if that.outcome != InProgress {
		return -1, apperror.ErrGameFinished
	}

	cell, ok := BestMove(&that.board, SideOf(that.turn))
	if !ok {
		return -1, ErrNoAvailableMoves
	}

	return cell, nil
}

func (that *Session) CurrentOutcome() Outcome {
	return that.outcome
}

func (that *Session) CellAt(cell int) string {
	return that.board[cell]
}

// SideToMove is the signed side entitled to the next move. Meaningless once
// the game is over.
func (that *Session) SideToMove() Side {
	return SideOf(that.turn)
}

// Turn is the mark entitled to the next move, or empty once the game is over.
func (that *Session) Turn() string {
	return that.turn
}

func (that *Session) Board() Board {
	return that.board
}

func toggleMark(currentMark string) string {
	if currentMark == PlayerX {
		return PlayerO
	}
	return PlayerX
}

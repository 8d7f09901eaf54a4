package tictactoe

// Side is the signed side-to-move used by the search: +1 for X, -1 for O.
type Side int

const (
	SideX Side = 1
	SideO Side = -1
)

// MoveOrder is the preference order candidate cells are tried in: center
// first, then corners, then edges. It is a search-efficiency heuristic and
// never changes the computed value, only how fast a forced line is found.
var MoveOrder = [BoardSize]int{4, 0, 2, 6, 8, 1, 3, 5, 7}

func (that Side) Mark() string {
	if that == SideX {
		return PlayerX
	}
	return PlayerO
}

func (that Side) Opponent() Side {
	return -that
}

// SideOf maps a mark to its signed side.
func SideOf(mark string) Side {
	if mark == PlayerX {
		return SideX
	}
	return SideO
}

// signedWinner maps a completed line to the search frame: +1 when X owns one,
// -1 when O does, 0 when nobody does.
func signedWinner(board *Board) int {
	switch board.Winner() {
	case PlayerX:
		return 1
	case PlayerO:
		return -1
	}
	return 0
}

// Negamax returns the game-theoretic value of the position for the side to
// move: +1 forced win, 0 draw, -1 forced loss. The board is mutated in place
// while exploring and is restored before returning.
func Negamax(board *Board, side Side) int {
	if winner := signedWinner(board); winner != 0 {
		// A decisive line is a win for whoever owns it, expressed
		// relative to the querying side.
		if winner == int(side) {
			return 1
		}
		return -1
	}

	if board.IsFull() {
		return 0
	}

	best := -2
	for _, cell := range MoveOrder {
		if board[cell] != EmptyCell {
			continue
		}

		board.ApplyMove(cell, side.Mark())
		val := -Negamax(board, side.Opponent())
		board.UndoMove(cell)

		if val > best {
			best = val
		}

		// Nothing beats a forced win; the cutoff never changes the result.
		if best == 1 {
			break
		}
	}

	return best
}

// BestMove selects the optimal cell for the side to move. Candidates are
// tried in MoveOrder and only a strictly greater value replaces the running
// best, so ties deterministically go to the earliest cell in the order.
// ok is false when no empty cell exists, which is unreachable under the turn
// protocol and indicates a caller bug.
func BestMove(board *Board, side Side) (int, bool) {
	bestVal := -2
	bestCell := -1

	for _, cell := range MoveOrder {
		if board[cell] != EmptyCell {
			continue
		}

		board.ApplyMove(cell, side.Mark())
		val := -Negamax(board, side.Opponent())
		board.UndoMove(cell)

		if val > bestVal {
			bestVal = val
			bestCell = cell
		}

		if bestVal == 1 {
			break
		}
	}

	if bestCell == -1 {
		return -1, false
	}

	return bestCell, true
}

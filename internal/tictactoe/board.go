package tictactoe

const (
	PlayerX = "X"
	PlayerO = "O"

	EmptyCell = ""

	BoardSize = 9
)

// Outcome is the game-theoretic status of a board, derived purely from its contents.
type Outcome int

const (
	InProgress Outcome = iota
	XWins
	OWins
	Draw
)

func (that Outcome) String() string {
	switch that {
	case XWins:
		return "x_wins"
	case OWins:
		return "o_wins"
	case Draw:
		return "draw"
	default:
		return "in_progress"
	}
}

// WinCombos lists the 8 winning lines in a fixed order: rows, columns, diagonals.
var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board is the 3x3 grid in row-major order. Cells hold PlayerX, PlayerO or EmptyCell.
type Board [BoardSize]string

// ApplyMove places mark on cell. It performs no turn bookkeeping: the search
// routine uses it to explore speculative positions for either side, so
// legality against "whose turn" is enforced by the caller.
func (that *Board) ApplyMove(cell int, mark string) {
	that[cell] = mark
}

// UndoMove clears a cell back to empty, exactly reversing ApplyMove.
func (that *Board) UndoMove(cell int) {
	that[cell] = EmptyCell
}

func (that *Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}
	return true
}

// Winner returns the mark owning a completed line, or EmptyCell if there is none.
func (that *Board) Winner() string {
	for _, combo := range WinCombos {
		a, b, c := that[combo[0]], that[combo[1]], that[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return a
		}
	}
	return EmptyCell
}

// EvaluateOutcome derives the board status. The line check runs before the
// full-board check: a move that fills the last cell and completes a line is a
// win, not a draw.
func (that *Board) EvaluateOutcome() Outcome {
	switch that.Winner() {
	case PlayerX:
		return XWins
	case PlayerO:
		return OWins
	}

	if that.IsFull() {
		return Draw
	}

	return InProgress
}

package entity

import (
	"fmt"
	"math/rand"

	"github.com/gridplay/tictactoe-engine/internal/apperror"
	"github.com/gridplay/tictactoe-engine/internal/tictactoe"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"

	PlayerX   = tictactoe.PlayerX
	PlayerO   = tictactoe.PlayerO
	PlayerTie = "-"

	EmptyCell = tictactoe.EmptyCell
)

const (
	PublicType  = "public"
	PrivateType = "private"
	WithBotType = "bot"
)

// Game is the stored representation of one match. Board, turn and winner stay
// in lockstep because every mutation goes through the core session.
type Game struct {
	ID      string          `json:"id"`
	Board   tictactoe.Board `json:"board"`
	Winner  string          `json:"winner"`
	Status  string          `json:"status"`
	Turn    string          `json:"player_turn"`
	Players []*Player       `json:"players,omitempty"`
	Type    string          `json:"type,omitempty"`
}

func NewGame(id, gameType string) *Game {
	return &Game{
		ID:     id,
		Board:  tictactoe.Board{},
		Turn:   PlayerX,
		Status: StatusWaiting,
		Type:   gameType,
	}
}

// Session rebuilds the core game session from the stored board and turn.
func (that *Game) Session() *tictactoe.Session {
	return tictactoe.Restore(that.Board, that.Turn)
}

// MakeTurn applies one move for playerMark and folds the resulting outcome
// back into the stored state.
func (that *Game) MakeTurn(playerMark string, cell int) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	session := that.Session()

	outcome, err := session.SubmitMove(cell, playerMark)
	if err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	that.Board = session.Board()
	that.Turn = session.Turn()
	that.applyOutcome(outcome)

	return nil
}

func (that *Game) applyOutcome(outcome tictactoe.Outcome) {
	switch outcome {
	case tictactoe.XWins:
		that.Winner = PlayerX
		that.Status = StatusFinished
	case tictactoe.OWins:
		that.Winner = PlayerO
		that.Status = StatusFinished
	case tictactoe.Draw:
		that.Winner = PlayerTie
		that.Status = StatusFinished
	case tictactoe.InProgress:
		that.Status = StatusOngoing
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return apperror.ErrGameFinished
	default:
		return nil
	}
}

func (that *Game) IsPublic() bool {
	return that.Type == PublicType
}

func (that *Game) IsWithBot() bool {
	return that.Type == WithBotType
}

func (that *Game) GetRandomMarks() (string, string) {
	if rand.Intn(2) == 0 { //nolint: gosec // it's ok
		return PlayerX, PlayerO
	}
	return PlayerO, PlayerX
}

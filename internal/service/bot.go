package service

import (
	"errors"
	"fmt"

	"github.com/gridplay/tictactoe-engine/internal/entity"
	"github.com/gridplay/tictactoe-engine/internal/metrics"
	"github.com/gridplay/tictactoe-engine/internal/tictactoe"
)

var (
	ErrBotNotFound      = errors.New("bot player not found")
	ErrNoAvailableMoves = errors.New("no available moves")
)

type BotService interface {
	MakeTurn(game *entity.Game) error
}

type botService struct{}

func NewBotService() BotService {
	return &botService{}
}

// MakeTurn plays one perfect move for the bot player via exhaustive negamax
// search over the current board.
func (that *botService) MakeTurn(game *entity.Game) error {
	var botPlayer *entity.Player
	for _, player := range game.Players {
		if player.IsBot() {
			botPlayer = player
			break
		}
	}

	if botPlayer == nil {
		return ErrBotNotFound
	}

	chosenCell, err := game.Session().ComputeAIMove()
	if err != nil {
		if errors.Is(err, tictactoe.ErrNoAvailableMoves) {
			return ErrNoAvailableMoves
		}
		return fmt.Errorf("bot failed to pick a move: %w", err)
	}

	if err := game.MakeTurn(botPlayer.Mark, chosenCell); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	metrics.BotMoves.Inc()

	return nil
}

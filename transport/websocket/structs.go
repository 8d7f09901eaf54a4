package websocket

import (
	"encoding/json"

	"github.com/gridplay/tictactoe-engine/internal/entity"
	"github.com/gridplay/tictactoe-engine/internal/tictactoe"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Payload carries the request and response body for every action.
type Payload struct {
	Player *entity.Player `json:"player,omitempty"`
	Game   *GameResponse  `json:"game,omitempty"`
	Cell   *int           `json:"cell,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// GameRequest is what clients send when creating or joining a game.
type GameRequest struct {
	ID   string `json:"id,omitempty"`
	Type string `json:"type,omitempty"`
}

// GameResponse is the game state as exposed to clients: no player ids of the
// opponent, just the board and whose mark moves next.
type GameResponse struct {
	ID     string          `json:"id"`
	Board  tictactoe.Board `json:"board"`
	Turn   string          `json:"turn"`
	Winner string          `json:"winner"`
	Status string          `json:"status"`
	Type   string          `json:"type,omitempty"`
}

func maskGameDetails(game *entity.Game) *GameResponse {
	return &GameResponse{
		ID:     game.ID,
		Board:  game.Board,
		Turn:   game.Turn,
		Winner: game.Winner,
		Status: game.Status,
		Type:   game.Type,
	}
}

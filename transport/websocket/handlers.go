package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/gridplay/tictactoe-engine/internal/apperror"
	"github.com/gridplay/tictactoe-engine/internal/entity"
	"github.com/gridplay/tictactoe-engine/internal/tictactoe"
)

type requestPayload struct {
	Player *entity.Player `json:"player,omitempty"`
	Game   *GameRequest   `json:"game,omitempty"`
	Cell   *int           `json:"cell,omitempty"`
}

func (that *Server) handleConnect(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleConnect")

	var payloadReq requestPayload
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
			return fmt.Errorf("failed to unmarshal payload: %w", err)
		}
	}

	playerID := ""
	if payloadReq.Player != nil {
		playerID = payloadReq.Player.ID
	}

	player, err := that.gameUseCase.GetOrCreatePlayer(ctx, playerID)
	if err != nil {
		log.Error("failed to create or get player", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to create a new player")
	}

	that.registerConnection(player.ID, conn)

	payload := Payload{Player: player}

	// A returning player picks their game back up on reconnect.
	if player.GameID != "" {
		game, err := that.gameUseCase.GetOrCreateGame(ctx, player.ID, "")
		if err != nil {
			log.Error("failed to get game for returning player", "gameID", player.GameID, "error", err)
			return that.sendErrorResponse(conn, msg.Action, "failed to get the game")
		}

		payload.Game = maskGameDetails(game)
	}

	if err = that.sendMessage(conn, msg.Action, payload); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("successfully connected player", "playerID", player.ID)

	return nil
}

func (that *Server) handleNewGame(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleNewGame")

	var payloadReq requestPayload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Player == nil {
		log.Error("player is missing in payload")
		return that.sendErrorResponse(conn, msg.Action, "player is required")
	}

	if payloadReq.Game == nil {
		log.Error("game is missing in payload")
		return that.sendErrorResponse(conn, msg.Action, "game is required")
	}

	that.registerConnection(payloadReq.Player.ID, conn)

	var game *entity.Game
	var err error

	if payloadReq.Game.Type == entity.PublicType {
		game, err = that.gameUseCase.CreateOrJoinToPublicGame(ctx, payloadReq.Player.ID)
	} else {
		game, err = that.gameUseCase.GetOrCreateGame(ctx, payloadReq.Player.ID, payloadReq.Game.Type)
	}

	if err != nil {
		log.Error("failed to create or get game", "type", payloadReq.Game.Type, "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to create a new game")
	}

	that.broadcastGame(msg.Action, game)

	log.Info("game ready", "gameID", game.ID, "type", game.Type, "status", game.Status)

	return nil
}

func (that *Server) handleJoinGame(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleJoinGame")

	var payloadReq requestPayload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Player == nil || payloadReq.Game == nil || payloadReq.Game.ID == "" {
		log.Error("player or game id is missing in payload")
		return that.sendErrorResponse(conn, msg.Action, "player and game id are required")
	}

	that.registerConnection(payloadReq.Player.ID, conn)

	game, err := that.gameUseCase.JoinGame(ctx, payloadReq.Game.ID, payloadReq.Player.ID)
	if err != nil {
		log.Error("failed to join game", "gameID", payloadReq.Game.ID, "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to join the game")
	}

	that.broadcastGame(msg.Action, game)

	log.Info("player joined game", "gameID", game.ID, "playerID", payloadReq.Player.ID)

	return nil
}

func (that *Server) handleGameTurn(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleGameTurn")

	var payloadReq requestPayload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Player == nil || payloadReq.Cell == nil {
		log.Error("player or cell is missing in payload")
		return that.sendErrorResponse(conn, msg.Action, "player and cell are required")
	}

	game, err := that.gameUseCase.MakeTurn(ctx, payloadReq.Player.ID, *payloadReq.Cell)

	switch {
	case err == nil:
	case errors.Is(err, apperror.ErrGameFinished) && game != nil:
		// terminal turn: the final state still goes out to both players
	case errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrGameIsNotStarted),
		errors.Is(err, tictactoe.ErrInvalidCell):
		log.Warn("rejected turn", "playerID", payloadReq.Player.ID, "error", err)
		return that.sendErrorResponse(conn, msg.Action, err.Error())
	default:
		log.Error("failed to make turn", "playerID", payloadReq.Player.ID, "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to make turn")
	}

	that.broadcastGame(msg.Action, game)

	return nil
}

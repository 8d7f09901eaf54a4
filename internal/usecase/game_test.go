package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/gridplay/tictactoe-engine/internal/apperror"
	"github.com/gridplay/tictactoe-engine/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errSomeError = errors.New("some error")

type fakePlayerService struct {
	created   *entity.Player
	players   map[string]*entity.Player
	createErr error
}

func (that *fakePlayerService) CreatePlayer(context.Context) (*entity.Player, error) {
	if that.createErr != nil {
		return nil, that.createErr
	}
	return that.created, nil
}

func (that *fakePlayerService) GetPlayerByID(_ context.Context, id string) (*entity.Player, error) {
	player, ok := that.players[id]
	if !ok {
		return nil, errSomeError
	}
	return player, nil
}

func (that *fakePlayerService) UpdatePlayer(context.Context, *entity.Player) error {
	return nil
}

type fakeGamePlayService struct {
	game        *entity.Game
	turnErr     error
	joinErr     error
	cleanedUp   bool
	waitingErr  error
	createdGame bool
}

func (that *fakeGamePlayService) JoinGameByID(context.Context, string, string) (*entity.Game, error) {
	if that.joinErr != nil {
		return nil, that.joinErr
	}
	return that.game, nil
}

func (that *fakeGamePlayService) JoinWaitingPublicGame(context.Context, string) (*entity.Game, error) {
	if that.waitingErr != nil {
		return nil, that.waitingErr
	}
	return that.game, nil
}

func (that *fakeGamePlayService) GetOrCreateGame(context.Context, *entity.Player, string) (*entity.Game, error) {
	that.createdGame = true
	return that.game, nil
}

func (that *fakeGamePlayService) CleanupGame(context.Context, *entity.Game) {
	that.cleanedUp = true
}

func (that *fakeGamePlayService) MakeTurn(context.Context, string, int) (*entity.Game, error) {
	if that.turnErr != nil {
		return that.game, that.turnErr
	}
	return that.game, nil
}

func TestGameUseCase_GetOrCreatePlayer(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates a new player when playerID is empty", func(t *testing.T) {
		// Given: a player service ready to create a player
		players := &fakePlayerService{created: &entity.Player{ID: "fresh"}}
		uc := NewGameUseCase(players, &fakeGamePlayService{})

		// When: GetOrCreatePlayer is called without an id
		player, err := uc.GetOrCreatePlayer(ctx, "")

		// Then: a new player comes back
		require.NoError(t, err)
		assert.Equal(t, "fresh", player.ID)
	})

	t.Run("Returns the existing player", func(t *testing.T) {
		// Given: a known player
		existing := &entity.Player{ID: "player123"}
		players := &fakePlayerService{players: map[string]*entity.Player{"player123": existing}}
		uc := NewGameUseCase(players, &fakeGamePlayService{})

		// When: GetOrCreatePlayer is called with the known id
		player, err := uc.GetOrCreatePlayer(ctx, "player123")

		// Then: the stored player comes back
		require.NoError(t, err)
		assert.Equal(t, existing, player)
	})

	t.Run("Propagates lookup failures", func(t *testing.T) {
		players := &fakePlayerService{players: map[string]*entity.Player{}}
		uc := NewGameUseCase(players, &fakeGamePlayService{})

		_, err := uc.GetOrCreatePlayer(ctx, "missing")
		require.ErrorIs(t, err, errSomeError)
	})
}

func TestGameUseCase_MakeTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("Finished game is cleaned up and reported", func(t *testing.T) {
		// Given: a turn that ends the game
		game := entity.NewGame("g1", entity.WithBotType)
		game.Status = entity.StatusFinished
		game.Winner = entity.PlayerX

		gamePlay := &fakeGamePlayService{game: game}
		uc := NewGameUseCase(&fakePlayerService{}, gamePlay)

		// When: the turn goes through the use case
		result, err := uc.MakeTurn(ctx, "p1", 2)

		// Then: the caller still gets the final state, the game is gone
		require.ErrorIs(t, err, apperror.ErrGameFinished)
		assert.Equal(t, game, result)
		assert.True(t, gamePlay.cleanedUp)
	})

	t.Run("Ongoing game passes through", func(t *testing.T) {
		game := entity.NewGame("g1", entity.PrivateType)
		game.Status = entity.StatusOngoing

		gamePlay := &fakeGamePlayService{game: game}
		uc := NewGameUseCase(&fakePlayerService{}, gamePlay)

		result, err := uc.MakeTurn(ctx, "p1", 2)

		require.NoError(t, err)
		assert.False(t, gamePlay.cleanedUp)
		assert.Equal(t, game, result)
	})

	t.Run("Turn errors are wrapped", func(t *testing.T) {
		gamePlay := &fakeGamePlayService{game: entity.NewGame("g1", entity.PrivateType), turnErr: apperror.ErrNotYourTurn}
		uc := NewGameUseCase(&fakePlayerService{}, gamePlay)

		_, err := uc.MakeTurn(ctx, "p1", 2)
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
	})
}

func TestGameUseCase_CreateOrJoinToPublicGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Joins a waiting game when one exists", func(t *testing.T) {
		// Given: an open public game waiting for an opponent
		game := entity.NewGame("g1", entity.PublicType)
		gamePlay := &fakeGamePlayService{game: game}
		uc := NewGameUseCase(&fakePlayerService{}, gamePlay)

		// When: a player asks for a public game
		result, err := uc.CreateOrJoinToPublicGame(ctx, "p1")

		// Then: the waiting game is joined
		require.NoError(t, err)
		assert.Equal(t, game, result)
	})

	t.Run("Creates a game when none is waiting", func(t *testing.T) {
		// Given: no waiting game and a known player
		game := entity.NewGame("g2", entity.PublicType)
		players := &fakePlayerService{players: map[string]*entity.Player{"p1": {ID: "p1"}}}
		gamePlay := &fakeGamePlayService{game: game, waitingErr: apperror.ErrNoActiveGames}
		uc := NewGameUseCase(players, gamePlay)

		// When: a player asks for a public game
		result, err := uc.CreateOrJoinToPublicGame(ctx, "p1")

		// Then: a fresh game is created instead
		require.NoError(t, err)
		assert.Equal(t, game, result)
		assert.True(t, gamePlay.createdGame)
	})

	t.Run("Storage failures propagate instead of creating a game", func(t *testing.T) {
		// Given: the waiting-game lookup fails for a reason other than
		// there being no waiting game
		players := &fakePlayerService{players: map[string]*entity.Player{"p1": {ID: "p1"}}}
		gamePlay := &fakeGamePlayService{waitingErr: errSomeError}
		uc := NewGameUseCase(players, gamePlay)

		// When: a player asks for a public game
		result, err := uc.CreateOrJoinToPublicGame(ctx, "p1")

		// Then: the failure comes back and no game is opened
		require.ErrorIs(t, err, errSomeError)
		assert.Nil(t, result)
		assert.False(t, gamePlay.createdGame)
	})
}

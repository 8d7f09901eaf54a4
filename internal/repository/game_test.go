package repository

import (
	"testing"

	"github.com/gridplay/tictactoe-engine/internal/apperror"
	"github.com/gridplay/tictactoe-engine/internal/entity"
	"github.com/gridplay/tictactoe-engine/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(st.Storage)

	// Given: a waiting game
	game := entity.NewGame("123", entity.PrivateType)

	// When: CreateOrUpdate is called
	err := gameRepo.CreateOrUpdate(ctx, game)

	// Then: the game is stored without error
	require.NoError(t, err)
}

func TestGameRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// Given: a stored game mid-play
		game := entity.NewGame("123", entity.PrivateType)
		game.Status = entity.StatusOngoing
		game.Board[4] = entity.PlayerX
		game.Turn = entity.PlayerO

		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// When: GetByID is called with the existing id
		retrieved, err := gameRepo.GetByID(ctx, game.ID)

		// Then: the board, turn and status round-trip intact
		require.NoError(t, err)
		require.Equal(t, game.ID, retrieved.ID)
		require.Equal(t, game.Status, retrieved.Status)
		require.Equal(t, game.Board, retrieved.Board)
		require.Equal(t, game.Turn, retrieved.Turn)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// When: GetByID is called with a non-existent id
		retrieved, err := gameRepo.GetByID(ctx, "9999999")

		// Then: ErrGameNotFound is returned
		require.Error(t, err)
		assert.Equal(t, ErrGameNotFound, err)
		assert.Empty(t, retrieved.ID)
	})
}

func TestGameRepository_GetWaitingPublicGame(t *testing.T) {
	t.Run("Finds the waiting public game", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// Given: a private game, an ongoing public game and a waiting public game
		private := entity.NewGame("priv", entity.PrivateType)
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, private))

		running := entity.NewGame("pub-running", entity.PublicType)
		running.Status = entity.StatusOngoing
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, running))

		waiting := entity.NewGame("pub-waiting", entity.PublicType)
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, waiting))

		// When: a waiting public game is requested
		found, err := gameRepo.GetWaitingPublicGame(ctx)

		// Then: only the waiting public one matches
		require.NoError(t, err)
		assert.Equal(t, waiting.ID, found.ID)
	})

	t.Run("Error when nothing is waiting", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		_, err := gameRepo.GetWaitingPublicGame(ctx)
		require.ErrorIs(t, err, apperror.ErrNoActiveGames)
	})
}

func TestGameRepository_DeleteByID(t *testing.T) {
	t.Run("DeleteByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// Given: a stored finished game
		game := entity.NewGame("123", entity.PrivateType)
		game.Status = entity.StatusFinished

		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// When: DeleteByID is called with the existing id
		err := gameRepo.DeleteByID(ctx, game.ID)

		// Then: the game is gone
		require.NoError(t, err)

		_, err = gameRepo.GetByID(ctx, game.ID)
		require.Error(t, err)
		assert.Equal(t, ErrGameNotFound, err)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// When: DeleteByID is called with a non-existent id
		err := gameRepo.DeleteByID(ctx, "9999999")

		// Then: ErrGameNotFound is returned
		require.Error(t, err)
		require.Equal(t, ErrGameNotFound, err)
	})
}

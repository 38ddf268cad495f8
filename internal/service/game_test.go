package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rocketscienceinc/noughts-and-crosses/internal/apperror"
	"github.com/rocketscienceinc/noughts-and-crosses/internal/entity"
	"github.com/rocketscienceinc/noughts-and-crosses/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errRedisDown = errors.New("redis down")

type mockGameRepo struct {
	mock.Mock
}

func (that *mockGameRepo) Save(ctx context.Context, game *entity.Game) error {
	args := that.Called(ctx, game)
	return args.Error(0)
}

func (that *mockGameRepo) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	args := that.Called(ctx, id)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGameRepo) DeleteByID(ctx context.Context, id string) error {
	args := that.Called(ctx, id)
	return args.Error(0)
}

func TestGameService_StartOrResume(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates a new game when none is stored", func(t *testing.T) {
		// Given: an empty store
		repo := repository.NewMemoryGameRepository()
		gameService := NewGameService(discardLogger(), repo)

		// When: starting the session
		game, err := gameService.StartOrResume(ctx, "local", entity.O)
		require.NoError(t, err)

		// Then: a fresh game is created and saved
		assert.Equal(t, entity.NewGame("local", entity.O), game)

		stored, err := repo.GetByID(ctx, "local")
		require.NoError(t, err)
		assert.Equal(t, game, stored)
	})

	t.Run("Resumes an unfinished game with its own marks", func(t *testing.T) {
		// Given: a stored game in progress where the human plays X
		repo := repository.NewMemoryGameRepository()
		existing := entity.NewGame("local", entity.X)
		require.NoError(t, existing.MakeTurn(entity.Move{Row: 0, Col: 0}))
		require.NoError(t, repo.Save(ctx, existing))

		gameService := NewGameService(discardLogger(), repo)

		// When: starting the session asking for O
		game, err := gameService.StartOrResume(ctx, "local", entity.O)
		require.NoError(t, err)

		// Then: the stored game comes back untouched
		assert.Equal(t, existing, game)
	})

	t.Run("Replaces a finished game", func(t *testing.T) {
		// Given: a stored game that X already won
		repo := repository.NewMemoryGameRepository()
		finished := entity.NewGame("local", entity.X)
		finished.State.Board = entity.Board{
			{entity.X, entity.X, entity.X},
			{entity.O, entity.O, entity.Empty},
			{entity.Empty, entity.Empty, entity.Empty},
		}
		finished.State.NextPlayer = entity.O
		require.NoError(t, repo.Save(ctx, finished))

		gameService := NewGameService(discardLogger(), repo)

		// When: starting the session
		game, err := gameService.StartOrResume(ctx, "local", entity.X)
		require.NoError(t, err)

		// Then: a new game replaces it
		assert.Equal(t, entity.NewGameState(), game.State)
	})

	t.Run("Replaces a game stored without a human mark", func(t *testing.T) {
		// Given: a stored game in progress whose human mark was lost
		repo := repository.NewMemoryGameRepository()
		broken := entity.NewGame("local", entity.Empty)
		require.NoError(t, broken.MakeTurn(entity.Move{Row: 1, Col: 1}))
		require.NoError(t, repo.Save(ctx, broken))

		gameService := NewGameService(discardLogger(), repo)

		// When: starting the session
		game, err := gameService.StartOrResume(ctx, "local", entity.O)
		require.NoError(t, err)

		// Then: a fresh game with the requested mark replaces it
		assert.Equal(t, entity.NewGame("local", entity.O), game)

		stored, err := repo.GetByID(ctx, "local")
		require.NoError(t, err)
		assert.Equal(t, game, stored)
	})

	t.Run("Returns error if the store fails", func(t *testing.T) {
		// Given: a store that cannot be reached
		repo := &mockGameRepo{}
		repo.On("GetByID", mock.Anything, "local").Return(nil, errRedisDown).Once()

		gameService := NewGameService(discardLogger(), repo)

		// When: starting the session
		game, err := gameService.StartOrResume(ctx, "local", entity.X)

		// Then: the error is returned and nothing is saved
		require.ErrorIs(t, err, errRedisDown)
		assert.Nil(t, game)
		repo.AssertExpectations(t)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("Error on invalid human mark", func(t *testing.T) {
		repo := repository.NewMemoryGameRepository()
		gameService := NewGameService(discardLogger(), repo)

		_, err := gameService.StartOrResume(ctx, "local", entity.Empty)

		require.ErrorIs(t, err, entity.ErrUnknownMark)
	})
}

func TestGameService_FinishGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Deletes the stored game", func(t *testing.T) {
		// Given: a stored game
		repo := repository.NewMemoryGameRepository()
		game := entity.NewGame("local", entity.X)
		require.NoError(t, repo.Save(ctx, game))

		gameService := NewGameService(discardLogger(), repo)

		// When: finishing it
		gameService.FinishGame(ctx, game)

		// Then: it is gone from the store
		_, err := repo.GetByID(ctx, "local")
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("Store errors are only logged", func(t *testing.T) {
		repo := &mockGameRepo{}
		repo.On("DeleteByID", mock.Anything, "local").Return(errRedisDown).Once()

		gameService := NewGameService(discardLogger(), repo)

		assert.NotPanics(t, func() {
			gameService.FinishGame(ctx, entity.NewGame("local", entity.X))
		})
		repo.AssertExpectations(t)
	})
}

func TestGameService_UpdateGame(t *testing.T) {
	repo := &mockGameRepo{}
	game := entity.NewGame("local", entity.X)
	repo.On("Save", mock.Anything, game).Return(errRedisDown).Once()

	gameService := NewGameService(discardLogger(), repo)

	err := gameService.UpdateGame(context.Background(), game)

	require.ErrorIs(t, err, errRedisDown)
	repo.AssertExpectations(t)
}

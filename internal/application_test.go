package application

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/rocketscienceinc/noughts-and-crosses/internal/apperror"
	"github.com/rocketscienceinc/noughts-and-crosses/internal/config"
	"github.com/rocketscienceinc/noughts-and-crosses/internal/entity"
	"github.com/rocketscienceinc/noughts-and-crosses/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewGameRepository(t *testing.T) {
	ctx := context.Background()
	logger := discardLogger()

	t.Run("Memory storage", func(t *testing.T) {
		// Given: the default storage type
		conf := config.Storage{Type: config.StorageMemory}

		// When: building the repository
		repo, closeRepo, err := newGameRepository(ctx, logger, conf)
		require.NoError(t, err)
		defer closeRepo()

		// Then: an empty in-process store is returned
		_, err = repo.GetByID(ctx, "local")
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("Redis storage", func(t *testing.T) {
		// Given: a running redis
		ctx, st := suite.New(t)
		conf := config.Storage{
			Type:  config.StorageRedis,
			Redis: config.Redis{Host: st.Host, Port: st.Port},
		}

		// When: building the repository
		repo, closeRepo, err := newGameRepository(ctx, logger, conf)
		require.NoError(t, err)
		defer closeRepo()

		// Then: games are written to that redis
		require.NoError(t, repo.Save(ctx, entity.NewGame("local", entity.X)))

		exists, err := st.Storage.Exists(ctx, "game:local").Result()
		require.NoError(t, err)
		assert.Equal(t, int64(1), exists)
	})

	t.Run("Error on unknown storage type", func(t *testing.T) {
		conf := config.Storage{Type: "sqlite"}

		repo, _, err := newGameRepository(ctx, logger, conf)

		require.ErrorIs(t, err, ErrUnknownStorageType)
		assert.Nil(t, repo)
	})
}

func TestWaitForGame(t *testing.T) {
	t.Run("Closed input is a clean exit", func(t *testing.T) {
		playErrCh := make(chan error, 1)
		playErrCh <- errors.Join(errors.New("failed to get move"), apperror.ErrNoInput)

		err := waitForGame(context.Background(), discardLogger(), playErrCh, time.Second)

		require.NoError(t, err)
	})

	t.Run("Game error is returned", func(t *testing.T) {
		playErrCh := make(chan error, 1)
		playErrCh <- apperror.ErrIllegalMove

		err := waitForGame(context.Background(), discardLogger(), playErrCh, time.Second)

		require.ErrorIs(t, err, apperror.ErrIllegalMove)
	})

	t.Run("Cancel waits for the running game", func(t *testing.T) {
		// Given: a canceled run whose game needs a moment to stop
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		playErrCh := make(chan error, 1)
		stopped := make(chan struct{})
		go func() {
			time.Sleep(50 * time.Millisecond)
			close(stopped)
			playErrCh <- context.Canceled
		}()

		// When: waiting with a generous grace period
		err := waitForGame(ctx, discardLogger(), playErrCh, 5*time.Second)

		// Then: it returns only after the game stopped
		require.NoError(t, err)
		select {
		case <-stopped:
		default:
			t.Fatal("returned before the game stopped")
		}
	})

	t.Run("Cancel gives up after the grace period", func(t *testing.T) {
		// Given: a canceled run whose game never returns
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		start := time.Now()

		// When: waiting
		err := waitForGame(ctx, discardLogger(), make(chan error), 20*time.Millisecond)

		// Then: it stops waiting once the grace period is over
		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	})
}

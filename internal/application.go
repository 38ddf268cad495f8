package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/noughts-and-crosses/internal/apperror"
	"github.com/rocketscienceinc/noughts-and-crosses/internal/config"
	"github.com/rocketscienceinc/noughts-and-crosses/internal/entity"
	"github.com/rocketscienceinc/noughts-and-crosses/internal/minimax"
	"github.com/rocketscienceinc/noughts-and-crosses/internal/repository"
	"github.com/rocketscienceinc/noughts-and-crosses/internal/repository/storage"
	"github.com/rocketscienceinc/noughts-and-crosses/internal/service"
	"github.com/rocketscienceinc/noughts-and-crosses/internal/transport/console"
	"github.com/rocketscienceinc/noughts-and-crosses/internal/usecase"
)

const shutdownGrace = time.Second

var (
	ErrAddrNotFound       = errors.New("redis address string is empty")
	ErrUnknownStorageType = errors.New("unknown storage type")
)

// RunApp - runs one game in the terminal.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	humanMark, err := entity.ParseMark(conf.Game.HumanMark)
	if err != nil {
		return fmt.Errorf("invalid human mark: %w", err)
	}

	gameRepo, closeRepo, err := newGameRepository(ctx, log, conf.Storage)
	if err != nil {
		return err
	}
	defer closeRepo()

	gameService := service.NewGameService(logger, gameRepo)
	botService := service.NewBotService(logger, minimax.New(), conf.Game.Verbose)
	human := console.NewHumanPlayer(os.Stdin, os.Stdout)
	display := console.NewDisplay(os.Stdout)

	gameManager := usecase.NewGameManager(logger, gameService, human, botService, display)

	// the human prompt blocks on stdin, so the game runs beside the signal watcher
	playErrCh := make(chan error, 1)
	go func() {
		_, playErr := gameManager.Play(ctx, conf.Game.SessionID, humanMark)
		playErrCh <- playErr
	}()

	return waitForGame(ctx, log, playErrCh, shutdownGrace)
}

// waitForGame - returns once the game ends. After a cancel it still waits up to
// grace for the game to stop, so storage is not closed under a running move.
func waitForGame(ctx context.Context, log *slog.Logger, playErrCh <-chan error, grace time.Duration) error {
	select {
	case err := <-playErrCh:
		switch {
		case err == nil:
			return nil
		case errors.Is(err, apperror.ErrNoInput), errors.Is(err, context.Canceled):
			log.Info("Game interrupted, position saved")
			return nil
		default:
			return fmt.Errorf("game failed: %w", err)
		}
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
	}

	// a game blocked on the human prompt never returns; the process exits after the grace period
	select {
	case <-playErrCh:
	case <-time.After(grace):
		log.Warn("Game still running, exiting without waiting")
	}

	return nil
}

func newGameRepository(ctx context.Context, log *slog.Logger, conf config.Storage) (repository.GameRepository, func(), error) {
	switch conf.Type {
	case config.StorageMemory:
		return repository.NewMemoryGameRepository(), func() {}, nil
	case config.StorageRedis:
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return nil, nil, ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		closeFn := func() {
			if err := redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}

		return repository.NewGameRepository(redisStorage.Connection), closeFn, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownStorageType, conf.Type)
	}
}

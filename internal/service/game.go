package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/noughts-and-crosses/internal/apperror"
	"github.com/rocketscienceinc/noughts-and-crosses/internal/entity"
)

type gameRepo interface {
	Save(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type GameService struct {
	logger   *slog.Logger
	gameRepo gameRepo
}

func NewGameService(logger *slog.Logger, gameRepo gameRepo) *GameService {
	return &GameService{
		logger:   logger.With("component", "game"),
		gameRepo: gameRepo,
	}
}

// StartOrResume - returns the unfinished game stored for sessionID, or a new one.
// A stored game keeps the mark the human picked when it started.
func (that *GameService) StartOrResume(ctx context.Context, sessionID string, humanMark entity.Cell) (*entity.Game, error) {
	log := that.logger.With("method", "StartOrResume", "gameID", sessionID)

	game, err := that.gameRepo.GetByID(ctx, sessionID)

	switch {
	case err == nil && game.IsFinished():
		log.Warn("stored game already finished, starting a new one")
	case err == nil:
		if err = game.Validate(); err != nil {
			log.Warn("stored game is invalid, starting a new one", "error", err)
			break
		}

		log.Info("resuming game", "next", game.State.NextPlayer.String())
		return game, nil
	case !errors.Is(err, apperror.ErrGameNotFound):
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	if !humanMark.IsMark() {
		return nil, fmt.Errorf("%w: %d", entity.ErrUnknownMark, humanMark)
	}

	game = entity.NewGame(sessionID, humanMark)
	if err = that.gameRepo.Save(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	log.Info("new game started", "human", humanMark.String())

	return game, nil
}

func (that *GameService) UpdateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.Save(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

// FinishGame - drops the stored game once it is over.
func (that *GameService) FinishGame(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "FinishGame", "gameID", game.ID)

	if err := that.gameRepo.DeleteByID(ctx, game.ID); err != nil && !errors.Is(err, apperror.ErrGameNotFound) {
		log.Error("failed to delete game", "error", err)
		return
	}

	log.Info("game finished", "outcome", game.Outcome().String())
}

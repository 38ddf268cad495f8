package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/noughts-and-crosses/internal/apperror"
	"github.com/rocketscienceinc/noughts-and-crosses/internal/entity"
)

// maxIllegalMoves bounds how often one side may hand back a rejected move in a row.
const maxIllegalMoves = 3

var ErrTooManyIllegalMoves = errors.New("too many illegal moves")

type moveSource interface {
	NextMove(ctx context.Context, state entity.GameState) (entity.Move, error)
}

type gameService interface {
	StartOrResume(ctx context.Context, sessionID string, humanMark entity.Cell) (*entity.Game, error)
	UpdateGame(ctx context.Context, game *entity.Game) error
	FinishGame(ctx context.Context, game *entity.Game)
}

type display interface {
	ShowBoard(state entity.GameState) error
	ShowComputerMove(move entity.Move) error
	Announce(outcome entity.Outcome, humanMark entity.Cell) error
}

// GameManager runs the game loop between the human and the computer.
type GameManager struct {
	logger *slog.Logger

	gameService gameService
	human       moveSource
	computer    moveSource
	display     display
}

func NewGameManager(logger *slog.Logger, gameService gameService, human, computer moveSource, display display) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameService: gameService,
		human:       human,
		computer:    computer,
		display:     display,
	}
}

// Play - runs the game of sessionID until it is won or drawn.
// The position is saved after every move, so a game stopped by an error can be resumed.
func (that *GameManager) Play(ctx context.Context, sessionID string, humanMark entity.Cell) (entity.Outcome, error) {
	log := that.logger.With("method", "Play", "gameID", sessionID)

	game, err := that.gameService.StartOrResume(ctx, sessionID, humanMark)
	if err != nil {
		return entity.Ongoing, fmt.Errorf("failed to start game: %w", err)
	}

	if err = that.display.ShowBoard(game.State); err != nil {
		return entity.Ongoing, fmt.Errorf("failed to show board: %w", err)
	}

	for !game.IsFinished() {
		if err = that.playTurn(ctx, game); err != nil {
			return entity.Ongoing, err
		}

		if err = that.gameService.UpdateGame(ctx, game); err != nil {
			return entity.Ongoing, fmt.Errorf("failed to save game: %w", err)
		}

		if err = that.display.ShowBoard(game.State); err != nil {
			return entity.Ongoing, fmt.Errorf("failed to show board: %w", err)
		}
	}

	outcome := game.Outcome()

	if err = that.display.Announce(outcome, game.HumanMark); err != nil {
		return outcome, fmt.Errorf("failed to announce result: %w", err)
	}

	that.gameService.FinishGame(ctx, game)

	log.Info("game over", "outcome", outcome.String())

	return outcome, nil
}

func (that *GameManager) playTurn(ctx context.Context, game *entity.Game) error {
	humanTurn := game.IsHumanTurn()
	log := that.logger.With("method", "playTurn", "gameID", game.ID, "human", humanTurn)

	source := that.computer
	if humanTurn {
		source = that.human
	}

	for attempt := 1; ; attempt++ {
		move, err := source.NextMove(ctx, game.State)
		if err != nil {
			return fmt.Errorf("failed to get move: %w", err)
		}

		err = game.MakeTurn(move)
		if errors.Is(err, apperror.ErrIllegalMove) {
			log.Warn("move rejected", "move", move.String(), "error", err)

			if attempt >= maxIllegalMoves {
				return fmt.Errorf("%w: %w", ErrTooManyIllegalMoves, err)
			}

			continue
		}

		if err != nil {
			return fmt.Errorf("failed make turn: %w", err)
		}

		log.Debug("move played", "move", move.String())

		if !humanTurn {
			if err = that.display.ShowComputerMove(move); err != nil {
				return fmt.Errorf("failed to show move: %w", err)
			}
		}

		return nil
	}
}

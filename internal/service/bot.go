package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/noughts-and-crosses/internal/entity"
	"github.com/rocketscienceinc/noughts-and-crosses/internal/minimax"
)

type searcher interface {
	Search(state entity.GameState) (minimax.Result, error)
}

// BotService is the computer side of the game.
type BotService struct {
	logger  *slog.Logger
	agent   searcher
	verbose bool
}

func NewBotService(logger *slog.Logger, agent searcher, verbose bool) *BotService {
	return &BotService{
		logger:  logger.With("component", "bot"),
		agent:   agent,
		verbose: verbose,
	}
}

// NextMove - searches state and returns the best move for the side to play.
func (that *BotService) NextMove(ctx context.Context, state entity.GameState) (entity.Move, error) {
	if err := ctx.Err(); err != nil {
		return entity.Move{}, fmt.Errorf("search canceled: %w", err)
	}

	result, err := that.agent.Search(state)
	if err != nil {
		return entity.Move{}, fmt.Errorf("bot failed to choose a move: %w", err)
	}

	if that.verbose {
		for _, evaluation := range result.Evaluations {
			that.logger.Info("evaluated move", "move", evaluation.Move.String(), "value", evaluation.Value)
		}
	}

	that.logger.Debug("move selected",
		"player", state.NextPlayer.String(),
		"move", result.Move.String(),
		"value", result.Value,
		"nodes", result.Nodes,
	)

	return result.Move, nil
}

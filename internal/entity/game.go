package entity

import (
	"fmt"

	"github.com/rocketscienceinc/noughts-and-crosses/internal/apperror"
)

// Game is a human-versus-computer session: the current position and which mark the human plays.
type Game struct {
	ID        string    `json:"id"`
	State     GameState `json:"state"`
	HumanMark Cell      `json:"human_mark"`
}

func NewGame(id string, humanMark Cell) *Game {
	return &Game{
		ID:        id,
		State:     NewGameState(),
		HumanMark: humanMark,
	}
}

func (that *Game) ComputerMark() Cell {
	return that.HumanMark.Opponent()
}

func (that *Game) IsHumanTurn() bool {
	return that.State.NextPlayer == that.HumanMark
}

func (that *Game) Outcome() Outcome {
	return that.State.EvaluateOutcome()
}

func (that *Game) IsFinished() bool {
	return that.Outcome().IsTerminal()
}

// Validate - checks the human mark and the position.
func (that *Game) Validate() error {
	if !that.HumanMark.IsMark() {
		return fmt.Errorf("%w: human mark %d", ErrUnknownMark, that.HumanMark)
	}

	if err := that.State.Validate(); err != nil {
		return fmt.Errorf("invalid state: %w", err)
	}

	return nil
}

// MakeTurn - applies move for the side to play. The game is left unchanged on error.
func (that *Game) MakeTurn(move Move) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	next, err := that.State.Apply(move)
	if err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	that.State = next

	return nil
}

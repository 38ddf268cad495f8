// Package minimax picks moves by searching the full game tree with alpha-beta pruning.
//
// Values are always scored from the searching player's point of view:
// 1 for a forced win, 0 for a draw, -1 for a forced loss. The tree is small
// enough that every search runs to finished games, so no depth limit or
// heuristic evaluation exists.
package minimax

import (
	"fmt"
	"math"

	"github.com/rocketscienceinc/noughts-and-crosses/internal/apperror"
	"github.com/rocketscienceinc/noughts-and-crosses/internal/entity"
)

const (
	Win  = 1
	Tie  = 0
	Loss = -1

	infinity = math.MaxInt
)

// Evaluation is the value of one root move.
type Evaluation struct {
	Move  entity.Move
	Value int
}

// Result describes a finished root search.
type Result struct {
	Move  entity.Move
	Value int
	// Evaluations holds every root move in LegalMoves order.
	Evaluations []Evaluation
	// Nodes counts positions visited below the root.
	Nodes int
}

type Option func(*Agent)

// WithoutPruning disables the alpha-beta cutoffs and searches every node.
func WithoutPruning() Option {
	return func(agent *Agent) {
		agent.pruning = false
	}
}

// Agent holds only configuration. Every call starts a fresh search.
type Agent struct {
	pruning bool
}

func New(opts ...Option) *Agent {
	agent := &Agent{pruning: true}
	for _, opt := range opts {
		opt(agent)
	}

	return agent
}

// SelectMove - returns the best move for the player to move in state.
func (that *Agent) SelectMove(state entity.GameState) (entity.Move, error) {
	result, err := that.Search(state)
	if err != nil {
		return entity.Move{}, err
	}

	return result.Move, nil
}

// Search evaluates every legal move of state and keeps the first one with the
// strictly greatest value. It fails with apperror.ErrGameFinished on a finished game.
func (that *Agent) Search(state entity.GameState) (Result, error) {
	if outcome := state.EvaluateOutcome(); outcome.IsTerminal() {
		return Result{}, fmt.Errorf("%w: %s", apperror.ErrGameFinished, outcome)
	}

	player := state.NextPlayer
	if !player.IsMark() {
		return Result{}, entity.ErrInvalidPlayer
	}

	s := &search{prune: that.pruning}
	moves := state.LegalMoves()

	result := Result{
		Value:       -infinity,
		Evaluations: make([]Evaluation, 0, len(moves)),
	}

	for _, move := range moves {
		// the opponent replies next, so the child is a minimizing ply
		value := s.value(apply(state, move), player, true, -infinity, infinity)
		result.Evaluations = append(result.Evaluations, Evaluation{Move: move, Value: value})

		if value > result.Value {
			result.Move = move
			result.Value = value
		}
	}

	result.Nodes = s.nodes

	return result, nil
}

// Value returns the alpha-beta value of state for player. minimizing tells
// whether the side to move at state is player's opponent.
func Value(state entity.GameState, player entity.Cell, minimizing bool, alpha, beta int) int {
	s := &search{prune: true}
	return s.value(state, player, minimizing, alpha, beta)
}

// Exhaustive returns the plain minimax value of state for player, visiting every node.
func Exhaustive(state entity.GameState, player entity.Cell, minimizing bool) int {
	s := &search{}
	return s.value(state, player, minimizing, -infinity, infinity)
}

type search struct {
	prune bool
	nodes int
}

func (that *search) value(state entity.GameState, player entity.Cell, minimizing bool, alpha, beta int) int {
	that.nodes++

	if score, ok := terminalScore(state, player); ok {
		return score
	}

	best := -infinity
	if minimizing {
		best = infinity
	}

	for _, move := range state.LegalMoves() {
		value := that.value(apply(state, move), player, !minimizing, alpha, beta)

		if minimizing {
			beta = min(beta, value)
			if that.prune && value <= alpha {
				return value
			}
			best = min(best, value)
		} else {
			alpha = max(alpha, value)
			if that.prune && value >= beta {
				return value
			}
			best = max(best, value)
		}
	}

	return best
}

func terminalScore(state entity.GameState, player entity.Cell) (int, bool) {
	outcome := state.EvaluateOutcome()

	switch winner, won := outcome.Winner(); {
	case won && winner == player:
		return Win, true
	case won:
		return Loss, true
	case outcome == entity.Draw:
		return Tie, true
	default:
		return 0, false
	}
}

// apply plays a move taken from state.LegalMoves, which cannot be rejected.
func apply(state entity.GameState, move entity.Move) entity.GameState {
	next, err := state.Apply(move)
	if err != nil {
		panic(fmt.Errorf("legal move rejected: %w", err))
	}

	return next
}

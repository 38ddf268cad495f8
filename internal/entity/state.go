package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/noughts-and-crosses/internal/apperror"
)

// Size is the board side. Lines, legal moves and rendering all assume a 3x3 board.
const Size = 3

var (
	ErrInvalidPlayer = errors.New("invalid player to move")
	ErrInvalidBoard  = errors.New("board holds an unknown mark")
)

// WinLines lists every line of the board: 3 rows, 3 columns, 2 diagonals.
var WinLines = [8][Size]Move{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

type Board [Size][Size]Cell

// Move is a 0-indexed (row, col) coordinate.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Move) InBounds() bool {
	return that.Row >= 0 && that.Row < Size && that.Col >= 0 && that.Col < Size
}

func (that Move) String() string {
	return fmt.Sprintf("%d,%d", that.Row, that.Col)
}

// GameState is one position of the game. It is a plain value: every method
// works on a copy, and Apply returns a new state instead of changing the receiver.
type GameState struct {
	Board      Board `json:"board"`
	NextPlayer Cell  `json:"next_player"`
}

// NewGameState - returns the opening position: empty board, X to move.
func NewGameState() GameState {
	return GameState{NextPlayer: X}
}

func (that GameState) At(move Move) Cell {
	return that.Board[move.Row][move.Col]
}

// IsLegal reports whether move targets an empty cell on the board.
func (that GameState) IsLegal(move Move) bool {
	return move.InBounds() && that.At(move) == Empty
}

// LegalMoves returns the empty cells in row-major order.
func (that GameState) LegalMoves() []Move {
	moves := make([]Move, 0, Size*Size)

	for row := range Size {
		for col := range Size {
			if that.Board[row][col] == Empty {
				moves = append(moves, Move{Row: row, Col: col})
			}
		}
	}

	return moves
}

func (that GameState) EmptyCells() int {
	count := 0
	for _, row := range that.Board {
		for _, cell := range row {
			if cell == Empty {
				count++
			}
		}
	}

	return count
}

// Apply returns the state after NextPlayer marks move. The receiver is left as is.
func (that GameState) Apply(move Move) (GameState, error) {
	if !that.NextPlayer.IsMark() {
		return that, fmt.Errorf("%w: %w", apperror.ErrIllegalMove, ErrInvalidPlayer)
	}

	if !move.InBounds() {
		return that, fmt.Errorf("%w: %w: %s", apperror.ErrIllegalMove, apperror.ErrInvalidCell, move)
	}

	if that.At(move) != Empty {
		return that, fmt.Errorf("%w: %w: %s", apperror.ErrIllegalMove, apperror.ErrCellOccupied, move)
	}

	next := that
	next.Board[move.Row][move.Col] = that.NextPlayer
	next.NextPlayer = that.NextPlayer.Opponent()

	return next, nil
}

// Validate - checks that every cell and the player to move hold known marks.
// Positions built by Apply always pass; stored or hand-built ones may not.
func (that GameState) Validate() error {
	if !that.NextPlayer.IsMark() {
		return ErrInvalidPlayer
	}

	for row := range Size {
		for col := range Size {
			if cell := that.Board[row][col]; cell != Empty && !cell.IsMark() {
				return fmt.Errorf("%w: %d at %s", ErrInvalidBoard, cell, Move{Row: row, Col: col})
			}
		}
	}

	return nil
}

// EvaluateOutcome - checks all lines for a winner, then the board for a draw.
func (that GameState) EvaluateOutcome() Outcome {
	for _, line := range WinLines {
		a, b, c := that.At(line[0]), that.At(line[1]), that.At(line[2])
		if a.IsMark() && a == b && b == c {
			return WinFor(a)
		}
	}

	// the game goes on while any square is free
	if that.EmptyCells() > 0 {
		return Ongoing
	}

	return Draw
}

package entity

import (
	"errors"
	"fmt"
)

// Cell is the content of one board square. X and O double as the player marks.
type Cell uint8

const (
	Empty Cell = iota
	X
	O
)

var ErrUnknownMark = errors.New("unknown mark")

// ParseMark - parses "X" or "O" into a player mark.
func ParseMark(s string) (Cell, error) {
	switch s {
	case "X", "x":
		return X, nil
	case "O", "o":
		return O, nil
	default:
		return Empty, fmt.Errorf("%w: %q", ErrUnknownMark, s)
	}
}

// Opponent returns the other player's mark. Empty has no opponent.
func (that Cell) Opponent() Cell {
	switch that {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

func (that Cell) IsMark() bool {
	return that == X || that == O
}

// String maps Empty to a blank so the board renders with fixed width.
func (that Cell) String() string {
	switch that {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return " "
	}
}

func (that Cell) MarshalText() ([]byte, error) {
	switch that {
	case Empty:
		return []byte(""), nil
	case X, O:
		return []byte(that.String()), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownMark, that)
	}
}

func (that *Cell) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*that = Empty
		return nil
	}

	mark, err := ParseMark(string(text))
	if err != nil {
		return err
	}

	*that = mark
	return nil
}

// Outcome is the terminal status of a position.
type Outcome uint8

const (
	Ongoing Outcome = iota
	XWins
	OWins
	Draw
)

// WinFor returns the winning outcome for mark.
func WinFor(mark Cell) Outcome {
	switch mark {
	case X:
		return XWins
	case O:
		return OWins
	default:
		return Ongoing
	}
}

// Winner reports the winning mark, if any.
func (that Outcome) Winner() (Cell, bool) {
	switch that {
	case XWins:
		return X, true
	case OWins:
		return O, true
	default:
		return Empty, false
	}
}

func (that Outcome) IsTerminal() bool {
	return that != Ongoing
}

func (that Outcome) String() string {
	switch that {
	case XWins:
		return "X wins"
	case OWins:
		return "O wins"
	case Draw:
		return "draw"
	default:
		return "ongoing"
	}
}

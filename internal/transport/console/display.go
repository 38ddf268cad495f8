package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
	"github.com/rocketscienceinc/noughts-and-crosses/internal/entity"
)

const (
	colorX = "1" // red
	colorO = "4" // blue

	rowSeparator = "  ---+---+---"
	columnHeader = "   0   1   2"
)

// Display prints the board and results. Marks are colored only when the
// writer is a terminal that supports it.
type Display struct {
	out *termenv.Output
}

func NewDisplay(w io.Writer, opts ...termenv.OutputOption) *Display {
	return &Display{
		out: termenv.NewOutput(w, opts...),
	}
}

func (that *Display) ShowBoard(state entity.GameState) error {
	var sb strings.Builder

	sb.WriteString(columnHeader + "\n")

	for row := range entity.Size {
		if row > 0 {
			sb.WriteString(rowSeparator + "\n")
		}

		cells := make([]string, 0, entity.Size)
		for col := range entity.Size {
			cells = append(cells, that.mark(state.Board[row][col]))
		}

		fmt.Fprintf(&sb, "%d  %s\n", row, strings.Join(cells, " | "))
	}

	if _, err := io.WriteString(that.out, sb.String()); err != nil {
		return fmt.Errorf("failed to write board: %w", err)
	}

	return nil
}

func (that *Display) ShowComputerMove(move entity.Move) error {
	if _, err := fmt.Fprintf(that.out, "Computer plays %s\n", move); err != nil {
		return fmt.Errorf("failed to write move: %w", err)
	}

	return nil
}

// Announce - prints the result of a finished game from the human's side.
func (that *Display) Announce(outcome entity.Outcome, humanMark entity.Cell) error {
	var message string

	switch winner, won := outcome.Winner(); {
	case won && winner == humanMark:
		message = "You win!"
	case won:
		message = "The computer wins!"
	case outcome == entity.Draw:
		message = "It's a draw."
	default:
		return nil
	}

	if _, err := fmt.Fprintln(that.out, that.out.String(message).Bold()); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}

	return nil
}

func (that *Display) mark(cell entity.Cell) string {
	switch cell {
	case entity.X:
		return that.out.String(cell.String()).Foreground(that.out.Color(colorX)).Bold().String()
	case entity.O:
		return that.out.String(cell.String()).Foreground(that.out.Color(colorO)).Bold().String()
	default:
		return cell.String()
	}
}

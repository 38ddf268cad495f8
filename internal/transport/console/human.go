package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/noughts-and-crosses/internal/apperror"
	"github.com/rocketscienceinc/noughts-and-crosses/internal/entity"
)

const movePrompt = "What's your next move? In format row,col e.g. 0,1"

var (
	errLineTooLong   = errors.New("the line is too long")
	errMalformedMove = errors.New("expected two numbers separated by a comma")
	errOutOfRange    = fmt.Errorf("row and column indices must be between 0 and %d", entity.Size-1)
	errCellTaken     = errors.New("the selected space is not empty")
)

// HumanPlayer reads moves typed as "row,col", one per line.
type HumanPlayer struct {
	reader *bufio.Reader
	out    io.Writer
}

func NewHumanPlayer(in io.Reader, out io.Writer) *HumanPlayer {
	return &HumanPlayer{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// NextMove - prompts until a legal move for state is entered.
// Rejected input is reported and asked again; only a closed input ends the loop.
func (that *HumanPlayer) NextMove(ctx context.Context, state entity.GameState) (entity.Move, error) {
	for {
		if err := ctx.Err(); err != nil {
			return entity.Move{}, fmt.Errorf("move input canceled: %w", err)
		}

		fmt.Fprintln(that.out, movePrompt)
		fmt.Fprint(that.out, ">")

		line, err := that.readLine()
		if errors.Is(err, io.EOF) {
			return entity.Move{}, apperror.ErrNoInput
		}

		if err != nil && !errors.Is(err, errLineTooLong) {
			return entity.Move{}, fmt.Errorf("failed to read move: %w", err)
		}

		var move entity.Move
		if err == nil {
			move, err = parseMove(line, state)
		}

		if err != nil {
			fmt.Fprintf(that.out, "Invalid input: %v. Please try again.\n", err)
			continue
		}

		return move, nil
	}
}

// readLine returns the next input line. A line longer than the reader's
// buffer is consumed up to its end and reported as errLineTooLong.
func (that *HumanPlayer) readLine() (string, error) {
	line, isPrefix, err := that.reader.ReadLine()
	if err != nil {
		return "", err
	}

	if !isPrefix {
		return string(line), nil
	}

	for isPrefix {
		if _, isPrefix, err = that.reader.ReadLine(); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}

			return "", err
		}
	}

	return "", errLineTooLong
}

func parseMove(input string, state entity.GameState) (entity.Move, error) {
	parts := strings.Split(strings.TrimSpace(input), ",")
	if len(parts) != 2 {
		return entity.Move{}, errMalformedMove
	}

	row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return entity.Move{}, errMalformedMove
	}

	col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return entity.Move{}, errMalformedMove
	}

	move := entity.Move{Row: row, Col: col}
	if !move.InBounds() {
		return entity.Move{}, errOutOfRange
	}

	if !state.IsLegal(move) {
		return entity.Move{}, errCellTaken
	}

	return move, nil
}

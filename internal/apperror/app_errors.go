package apperror

import "errors"

var (
	ErrIllegalMove  = errors.New("illegal move")
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrInvalidCell  = errors.New("invalid cell index")
	ErrGameFinished = errors.New("game is already finished")
	ErrGameNotFound = errors.New("game not found")
	ErrNoInput      = errors.New("no more input")
)

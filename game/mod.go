package game

import "errors"

var (
	// ErrInvalidOperation is returned for an operation that is not one of
	// "+n", "-n" or "*n" with a non-negative integer n.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrArithmeticOverflow is returned when applying an operation leaves the int range.
	ErrArithmeticOverflow = errors.New("arithmetic overflow")
)

// Move transforms one pile size into the next. Implementations must be pure:
// the same size always yields the same result.
type Move interface {
	Apply(size int) (int, error)
	String() string
}

// Rules decides whether a pile size ends the game. Both players share the same
// rules and the same set of moves.
type Rules interface {
	IsWin(size int) bool
}

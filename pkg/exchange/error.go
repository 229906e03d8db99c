package exchange

import "errors"

var (
	ErrInvalidSide     = errors.New("invalid order side")
	ErrEmptySymbol     = errors.New("empty symbol")
	ErrInvalidQuantity = errors.New("order quantity must be positive")
	ErrInvalidPrice    = errors.New("order price must be positive")

	// ErrBookHalted is returned for every submission to a book that
	// detected an invariant violation. The book never resumes.
	ErrBookHalted = errors.New("order book halted after invariant violation")
)

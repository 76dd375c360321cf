package klondike

import "errors"

// Contract violations. A rule rejection (an illegal drop) is never an error;
// these signal that the caller is out of sync with the engine.
var (
	// ErrEmptyStock is returned when drawing from an empty stock.
	ErrEmptyStock = errors.New("stock is empty")

	// ErrInvalidArgument covers out-of-range columns, positions, suits and ranks.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrPreconditionViolated is returned when an operation is called in a
	// state that does not allow it, e.g. picking up from an empty pile.
	ErrPreconditionViolated = errors.New("precondition violated")
)

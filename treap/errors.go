package treap

import "errors"

var (
	// ErrInvalidConfig signals an invalid treap configuration.
	ErrInvalidConfig = errors.New("treap: invalid configuration")
	// ErrIndexOutOfRange signals a position or range outside of a sequence.
	ErrIndexOutOfRange = errors.New("treap: index out of range")
	// ErrInvalidHandle signals a handle which does not reference a live root node.
	ErrInvalidHandle = errors.New("treap: invalid handle")
	// ErrInvariantViolation signals structural corruption detected by Check.
	ErrInvariantViolation = errors.New("treap: invariant violation")
)

package ai

import "errors"

// Decision errors.
var (
	// ErrNoPathFound means no goal is reachable from the start cell. It is
	// recovered from by falling back to the safety heuristic.
	ErrNoPathFound = errors.New("no path to any goal")

	// ErrNoSafeMove means the head has no open neighbour; the snake dies this turn.
	ErrNoSafeMove = errors.New("no open neighbour to move to")

	ErrEmptyGrid       = errors.New("board is empty")
	ErrMissingHead     = errors.New("board has no snake head")
	ErrRaggedBoard     = errors.New("board columns differ in height")
	ErrUnknownStrategy = errors.New("unknown strategy")
)

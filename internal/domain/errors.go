package domain

import "errors"

// Domain-level errors
var (
	ErrUnitNotFound   = errors.New("unit not found")
	ErrGameOver       = errors.New("unit game is over")
	ErrReplayNotFound = errors.New("replay not found")
	ErrInvalidKind    = errors.New("invalid unit kind")
)

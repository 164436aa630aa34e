package editor

import (
	"errors"

	"github.com/tborchert/inkline/buffer"
	"github.com/tborchert/inkline/history"
)

// Errors returned by editor operations. Position and range failures
// reuse the buffer's sentinels and sequence misuse the history's, so
// errors.Is works across package boundaries.
var (
	ErrOutOfBounds     = buffer.ErrOutOfBounds
	ErrInvalidRange    = buffer.ErrInvalidRange
	ErrInvalidBoundary = buffer.ErrInvalidBoundary

	ErrSequenceOpen   = history.ErrSequenceOpen
	ErrNoOpenSequence = history.ErrNoOpenSequence

	// ErrReadOnly indicates a write was attempted on a read-only editor.
	ErrReadOnly = errors.New("editor is read-only")
)

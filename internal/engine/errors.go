package engine

import (
	"errors"

	"github.com/maubry-ortega/Xylux-sub000/internal/engine/history"
)

// Errors returned by engine operations.
var (
	// ErrNothingToUndo indicates the undo stack is empty.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrNothingToRedo indicates the redo stack is empty.
	ErrNothingToRedo = errors.New("nothing to redo")

	// ErrReadOnly indicates an operation was attempted on a read-only engine.
	ErrReadOnly = errors.New("engine is read-only")

	// ErrGroupOpen indicates undo or redo was requested inside an open
	// undo group.
	ErrGroupOpen = history.ErrGroupOpen

	// ErrUnknownMotion indicates a motion name that ParseMotion does not know.
	ErrUnknownMotion = errors.New("unknown motion")
)

package engine

import (
	"fmt"
	"strings"

	"github.com/maubry-ortega/Xylux-sub000/internal/engine/cursor"
)

// Motion names a cursor movement.
type Motion uint8

const (
	MotionLeft Motion = iota
	MotionRight
	MotionUp
	MotionDown
	MotionWordLeft
	MotionWordRight
	MotionLineStart
	MotionLineEnd
	MotionFirstNonBlank
	MotionBufferStart
	MotionBufferEnd
	MotionPageUp
	MotionPageDown
)

var motionNames = [...]string{
	MotionLeft:          "left",
	MotionRight:         "right",
	MotionUp:            "up",
	MotionDown:          "down",
	MotionWordLeft:      "word_left",
	MotionWordRight:     "word_right",
	MotionLineStart:     "line_start",
	MotionLineEnd:       "line_end",
	MotionFirstNonBlank: "first_non_blank",
	MotionBufferStart:   "buffer_start",
	MotionBufferEnd:     "buffer_end",
	MotionPageUp:        "page_up",
	MotionPageDown:      "page_down",
}

// String returns the motion name.
func (m Motion) String() string {
	if int(m) < len(motionNames) {
		return motionNames[m]
	}
	return fmt.Sprintf("Motion(%d)", m)
}

// ParseMotion converts a motion name. Matching ignores case, and dashes
// may stand in for underscores.
func ParseMotion(name string) (Motion, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for m, n := range motionNames {
		if n == key {
			return Motion(m), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMotion, name)
}

// apply moves c according to m.
func (m Motion) apply(c cursor.Cursor, lines []string, lengths []int, pageSize int) cursor.Cursor {
	switch m {
	case MotionLeft:
		return c.MoveLeft(lengths)
	case MotionRight:
		return c.MoveRight(lengths)
	case MotionUp:
		return c.MoveUp(lengths)
	case MotionDown:
		return c.MoveDown(lengths)
	case MotionWordLeft:
		return c.MoveWordLeft(lines)
	case MotionWordRight:
		return c.MoveWordRight(lines)
	case MotionLineStart:
		return c.MoveToLineStart()
	case MotionLineEnd:
		return c.MoveToLineEnd(lengths)
	case MotionFirstNonBlank:
		return c.MoveToFirstNonBlank(lines)
	case MotionBufferStart:
		return c.MoveToBufferStart()
	case MotionBufferEnd:
		return c.MoveToBufferEnd(lengths)
	case MotionPageUp:
		return c.MovePageUp(pageSize, lengths)
	case MotionPageDown:
		return c.MovePageDown(pageSize, lengths)
	default:
		return c
	}
}

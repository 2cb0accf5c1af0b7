package buffer

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffOp classifies a LineDiff.
type DiffOp int

const (
	DiffEqual DiffOp = iota
	DiffInsert
	DiffDelete
)

// String returns the unified diff prefix for the operation.
func (op DiffOp) String() string {
	switch op {
	case DiffInsert:
		return "+"
	case DiffDelete:
		return "-"
	default:
		return " "
	}
}

// LineDiff is one line of a diff between the saved baseline and the current
// content.
type LineDiff struct {
	Op   DiffOp
	Text string
}

// DiffFromBaseline returns a line diff from the saved baseline to the
// current content. Both sides are compared with "\n" terminators.
func (b *Buffer) DiffFromBaseline() []LineDiff {
	return DiffLines(NormalizeNewlines(b.baseline), strings.Join(b.lines, "\n"))
}

// DiffLines computes a line level diff between two texts.
func DiffLines(oldText, newText string) []LineDiff {
	dmp := diffmatchpatch.New()

	chars1, chars2, lineArray := dmp.DiffLinesToChars(terminate(oldText), terminate(newText))
	diffs := dmp.DiffMain(chars1, chars2, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var result []LineDiff
	for _, d := range diffs {
		op := DiffEqual
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			op = DiffInsert
		case diffmatchpatch.DiffDelete:
			op = DiffDelete
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			result = append(result, LineDiff{Op: op, Text: strings.TrimSuffix(line, "\n")})
		}
	}
	return result
}

// UnifiedDiff renders the baseline diff with "+", "-" and " " prefixes.
// Returns "" when the content is unchanged.
func (b *Buffer) UnifiedDiff() string {
	diffs := b.DiffFromBaseline()

	changed := false
	var sb strings.Builder
	for _, d := range diffs {
		if d.Op != DiffEqual {
			changed = true
		}
		sb.WriteString(d.Op.String())
		sb.WriteString(d.Text)
		sb.WriteByte('\n')
	}
	if !changed {
		return ""
	}
	return sb.String()
}

// terminate ensures the last line ends in "\n" so that a change to the final
// line is not reported as a change to its terminator.
func terminate(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

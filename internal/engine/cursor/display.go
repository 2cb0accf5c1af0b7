package cursor

import "github.com/rivo/uniseg"

// DefaultTabWidth is used by VisualColumn when tabWidth is not positive.
const DefaultTabWidth = 4

// VisualColumn returns the zero-based screen cell the cursor occupies on
// line. Tabs advance to the next tab stop and wide characters such as CJK
// or emoji take two cells.
func (c Cursor) VisualColumn(line string, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}

	cells, runes := 0, 0
	g := uniseg.NewGraphemes(line)
	for runes < c.Column && g.Next() {
		cluster := g.Str()
		if cluster == "\t" {
			cells += tabWidth - cells%tabWidth
		} else {
			cells += uniseg.StringWidth(cluster)
		}
		runes += len(g.Runes())
	}
	return cells
}

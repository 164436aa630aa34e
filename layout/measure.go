package layout

import "github.com/tborchert/inkline/segment"

// wrapLookback bounds the backward scan for a word-wrap break point, in
// clusters.
const wrapLookback = 20

// VisualWidth returns the visual cell width of a line, with tabs
// expanded to the next tab stop. Control characters are counted as
// zero width here; only break positions depend on their visibility.
func VisualWidth(text string, tabWidth int) int {
	col := 0
	it := segment.NewIterator(text)
	for it.Next() {
		col += cellWidth(it.Cluster(), col, tabWidth, false)
	}
	return col
}

// cellWidth returns the width of one cluster laid out at column col.
func cellWidth(cluster string, col, tabWidth int, showControl bool) int {
	if cluster == "\t" {
		return tabWidth - col%tabWidth
	}
	if isControlCluster(cluster) {
		if showControl {
			// Caret notation: ^A, ^[ and so on.
			return 2
		}
		return 0
	}
	return segment.ClusterWidth(cluster)
}

func isControlCluster(cluster string) bool {
	if len(cluster) != 1 {
		return false
	}
	c := cluster[0]
	return c < 0x20 || c == 0x7f
}

// firstVisible returns the byte offset within the line of the first
// cluster whose cell lies at or after the given horizontal shift. A
// line entirely left of the shift yields len(text).
func firstVisible(text string, shift, tabWidth int) int {
	if shift <= 0 {
		return 0
	}
	col := 0
	it := segment.NewIterator(text)
	for it.Next() {
		if col >= shift {
			return it.BytePos()
		}
		col += cellWidth(it.Cluster(), col, tabWidth, false)
	}
	return len(text)
}

// wrapBreaks returns the line-relative byte offsets at which new visual
// rows start, excluding the first row. Tab stops restart at each row.
// A cluster wider than the viewport occupies a row by itself.
func wrapBreaks(text string, cfg Config, tabWidth int) []int {
	if !cfg.Wrapping() || cfg.ViewportWidth <= 0 {
		return nil
	}

	clusters := segment.Clusters(text)
	var breaks []int
	col := 0      // cell column within the current row
	rowStart := 0 // index of the first cluster on the current row

	for i := 0; i < len(clusters); i++ {
		w := cellWidth(clusters[i].Text, col, tabWidth, cfg.ShowControl)
		if col > 0 && col+w > cfg.ViewportWidth {
			br := i
			if cfg.Wrap == WrapWord {
				if j := lastSpace(clusters, rowStart, i); j >= 0 {
					br = j + 1
				}
			}
			breaks = append(breaks, clusters[br].BytePos)
			rowStart = br

			// Re-measure carried clusters at their new columns; the
			// tab stops on the new row differ from the old one.
			col = 0
			for k := br; k < i; k++ {
				col += cellWidth(clusters[k].Text, col, tabWidth, cfg.ShowControl)
			}
			w = cellWidth(clusters[i].Text, col, tabWidth, cfg.ShowControl)
		}
		col += w
	}
	return breaks
}

// lastSpace returns the index of the last whitespace cluster in
// clusters[from:to], scanning back at most wrapLookback clusters, or -1.
func lastSpace(clusters []segment.ClusterInfo, from, to int) int {
	low := to - wrapLookback
	if low < from {
		low = from
	}
	for j := to - 1; j >= low; j-- {
		if clusters[j].Text == " " || clusters[j].Text == "\t" {
			return j
		}
	}
	return -1
}

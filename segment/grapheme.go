package segment

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Count returns the number of grapheme clusters in s.
func Count(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// At returns the grapheme cluster at column col. The second return is
// false when col is negative or past the last cluster.
func At(s string, col int) (string, bool) {
	if col < 0 {
		return "", false
	}
	state := -1
	rest := s
	for i := 0; len(rest) > 0; i++ {
		var cluster string
		cluster, rest, _, state = uniseg.StepString(rest, state)
		if i == col {
			return cluster, true
		}
	}
	return "", false
}

// ByteOffset converts a grapheme column to the byte offset of that
// cluster's first byte. Columns past the end clamp to len(s); negative
// columns clamp to zero.
func ByteOffset(s string, col int) int {
	if col <= 0 {
		return 0
	}
	state := -1
	rest := s
	for i := 0; len(rest) > 0; i++ {
		if i == col {
			return len(s) - len(rest)
		}
		_, rest, _, state = uniseg.StepString(rest, state)
	}
	return len(s)
}

// Column converts a byte offset to the grapheme column containing it.
// Offsets inside a cluster map to that cluster's column; offsets past the
// end clamp to Count(s); negative offsets clamp to zero.
func Column(s string, byteOff int) int {
	if byteOff <= 0 {
		return 0
	}
	state := -1
	rest := s
	for i := 0; len(rest) > 0; i++ {
		_, rest, _, state = uniseg.StepString(rest, state)
		if len(s)-len(rest) > byteOff {
			return i
		}
	}
	return Count(s)
}

// IsBoundary reports whether byteOff falls on a grapheme cluster
// boundary. Zero and len(s) are always boundaries.
func IsBoundary(s string, byteOff int) bool {
	if byteOff == 0 || byteOff == len(s) {
		return true
	}
	if byteOff < 0 || byteOff > len(s) {
		return false
	}
	state := -1
	rest := s
	for len(rest) > 0 {
		_, rest, _, state = uniseg.StepString(rest, state)
		pos := len(s) - len(rest)
		if pos == byteOff {
			return true
		}
		if pos > byteOff {
			return false
		}
	}
	return false
}

// Slice returns the substring covering columns [startCol, endCol). Both
// ends clamp to the valid range, and an inverted range yields "".
func Slice(s string, startCol, endCol int) string {
	if startCol < 0 {
		startCol = 0
	}
	if endCol <= startCol {
		return ""
	}
	start := ByteOffset(s, startCol)
	end := ByteOffset(s, endCol)
	return s[start:end]
}

// Width returns the display width of s in terminal cells.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// ClusterWidth returns the display width of a single cluster. Zero-width
// joiners and combining marks contribute nothing, so an emoji family
// still measures 2 cells.
func ClusterWidth(cluster string) int {
	w := runewidth.StringWidth(cluster)
	if w == 0 && cluster != "" {
		// Lone combining marks still occupy a cell when displayed bare.
		return 1
	}
	return w
}

// Truncate returns the longest prefix of s that fits within maxWidth
// display cells without splitting a cluster.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	state := -1
	rest := s
	width := 0
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.StepString(rest, state)
		w := runewidth.StringWidth(cluster)
		if width+w > maxWidth {
			return s[:len(s)-len(rest)-len(cluster)]
		}
		width += w
	}
	return s
}

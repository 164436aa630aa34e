package rope

// maxInlineNewlines is the number of newline positions a NewlineIndex
// stores without allocating.
const maxInlineNewlines = 4

// NewlineIndex records the byte positions of every '\n' inside a chunk so
// line seeks resolve without rescanning the text. Chunks are at most
// MaxChunkSize bytes, so positions fit comfortably in uint16. Up to four
// positions live inline; denser chunks spill to a heap slice.
type NewlineIndex struct {
	inline [maxInlineNewlines]uint16
	count  uint16
	spill  []uint16
}

// computeNewlineIndex scans s and records every newline position.
func computeNewlineIndex(s string) NewlineIndex {
	var idx NewlineIndex

	n := countNewlines(s)
	if n == 0 {
		return idx
	}
	idx.count = uint16(n)
	if n > maxInlineNewlines {
		idx.spill = make([]uint16, 0, n)
	}

	seen := 0
	for i := 0; i < len(s) && seen < n; i++ {
		if s[i] != '\n' {
			continue
		}
		if n > maxInlineNewlines {
			idx.spill = append(idx.spill, uint16(i))
		} else {
			idx.inline[seen] = uint16(i)
		}
		seen++
	}

	return idx
}

// Count returns the number of newlines.
func (idx *NewlineIndex) Count() int {
	return int(idx.count)
}

// Position returns the byte offset of the nth newline (0-indexed),
// or -1 if n is out of range.
func (idx *NewlineIndex) Position(n int) int {
	if n < 0 || n >= int(idx.count) {
		return -1
	}
	return int(idx.positions()[n])
}

// Nth returns the byte offset of the nth newline counting from 1,
// or -1 if the index holds fewer than n newlines.
func (idx *NewlineIndex) Nth(n int) int {
	if n <= 0 {
		return -1
	}
	return idx.Position(n - 1)
}

// Last returns the position of the final newline, or -1 if there is none.
func (idx *NewlineIndex) Last() int {
	return idx.Position(int(idx.count) - 1)
}

// Before returns the position of the last newline strictly before offset,
// or -1 if there is none.
func (idx *NewlineIndex) Before(offset int) int {
	pos := idx.positions()
	for i := len(pos) - 1; i >= 0; i-- {
		if int(pos[i]) < offset {
			return int(pos[i])
		}
	}
	return -1
}

// After returns the position of the first newline at or after offset,
// or -1 if there is none.
func (idx *NewlineIndex) After(offset int) int {
	for _, p := range idx.positions() {
		if int(p) >= offset {
			return int(p)
		}
	}
	return -1
}

// positions returns the recorded positions regardless of storage form.
func (idx *NewlineIndex) positions() []uint16 {
	if int(idx.count) <= maxInlineNewlines {
		return idx.inline[:idx.count]
	}
	return idx.spill
}

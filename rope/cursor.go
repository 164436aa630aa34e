package rope

import "unicode/utf8"

// Cursor walks a rope while remembering the root-to-leaf path, so seeks
// cost O(log n) and stepping to a neighboring rune costs O(1) amortized.
// A cursor observes the rope it was created from; edits produce new ropes
// and invalidate nothing, but the cursor keeps reading the old text.
type Cursor struct {
	rope     Rope
	path     []cursorFrame
	offset   int
	point    Point
	pointSet bool

	leaf     *node
	chunkIdx int
	chunkOff int
}

// cursorFrame records one descent step: the node, which child was taken,
// and the absolute offset and line where that node begins.
type cursorFrame struct {
	node     *node
	childIdx int
	offset   int
	line     int
}

// NewCursor returns a cursor positioned at the start of r.
func NewCursor(r Rope) *Cursor {
	c := &Cursor{
		rope: r,
		path: make([]cursorFrame, 0, 16),
	}
	c.seekToStart()
	return c
}

func (c *Cursor) seekToStart() {
	c.path = c.path[:0]
	c.offset = 0
	c.point = Point{}
	c.pointSet = true

	if c.rope.root == nil {
		c.leaf = nil
		return
	}

	n := c.rope.root
	for !n.isLeaf() {
		c.path = append(c.path, cursorFrame{node: n})
		n = n.children[0]
	}
	c.leaf = n
	c.chunkIdx = 0
	c.chunkOff = 0
}

// Offset returns the current byte offset.
func (c *Cursor) Offset() int {
	return c.offset
}

// Point returns the current line/byte-column position, computing it from
// the path on first use after a seek.
func (c *Cursor) Point() Point {
	if !c.pointSet {
		c.computePoint()
	}
	return c.point
}

func (c *Cursor) computePoint() {
	c.point = Point{}

	for _, frame := range c.path {
		for i := 0; i < frame.childIdx; i++ {
			c.point.Line += frame.node.childSums[i].Lines
		}
	}

	if c.leaf != nil {
		for i := 0; i < c.chunkIdx; i++ {
			c.point.Line += c.leaf.chunks[i].Summary().Lines
		}
		if c.chunkIdx < len(c.leaf.chunks) {
			chunk := c.leaf.chunks[c.chunkIdx]
			c.point.Line += countNewlines(chunk.String()[:c.chunkOff])
		}
	}

	c.point.Col = c.offset - c.LineStartOffset()
	c.pointSet = true
}

// LineStartOffset returns the byte offset where the current line begins.
func (c *Cursor) LineStartOffset() int {
	if c.offset == 0 {
		return 0
	}

	if c.leaf != nil && c.chunkIdx < len(c.leaf.chunks) {
		chunk := c.leaf.chunks[c.chunkIdx]
		if pos := chunk.Newlines().Before(c.chunkOff); pos >= 0 {
			chunkStart := c.offset - c.chunkOff
			return chunkStart + pos + 1
		}

		// Walk earlier chunks in this leaf via their newline indexes.
		chunkStart := c.offset - c.chunkOff
		for i := c.chunkIdx - 1; i >= 0; i-- {
			prev := c.leaf.chunks[i]
			chunkStart -= prev.Len()
			if pos := prev.Newlines().Last(); pos >= 0 {
				return chunkStart + pos + 1
			}
		}

		// The newline lives in an earlier leaf. Byte-wise scan backward;
		// rare, and bounded by the preceding line's length.
		for off := chunkStart; off > 0; off-- {
			b, ok := c.rope.ByteAt(off - 1)
			if !ok {
				break
			}
			if b == '\n' {
				return off
			}
		}
	}

	return 0
}

// SeekOffset positions the cursor at the given byte offset. Offsets inside
// a multi-byte rune are snapped back to the rune start. Returns false when
// the offset is outside [0, Len()].
func (c *Cursor) SeekOffset(offset int) bool {
	if c.rope.root == nil {
		return offset == 0
	}
	if offset < 0 || offset > c.rope.Len() {
		return false
	}

	c.path = c.path[:0]
	c.offset = offset
	c.pointSet = false

	if offset == c.rope.Len() {
		return c.seekToEnd()
	}

	n := c.rope.root
	nodeOffset := 0
	nodeLine := 0

	for !n.isLeaf() {
		childOffset := nodeOffset
		childLine := nodeLine
		descended := false
		for i, sum := range n.childSums {
			if childOffset+sum.Bytes > offset {
				c.path = append(c.path, cursorFrame{
					node:     n,
					childIdx: i,
					offset:   childOffset,
					line:     childLine,
				})
				n = n.children[i]
				nodeOffset = childOffset
				nodeLine = childLine
				descended = true
				break
			}
			childOffset += sum.Bytes
			childLine += sum.Lines
		}
		if !descended {
			return false
		}
	}

	c.leaf = n
	chunkStart := nodeOffset
	for i, chunk := range n.chunks {
		chunkEnd := chunkStart + chunk.Len()
		if chunkEnd > offset {
			c.chunkIdx = i
			c.chunkOff = offset - chunkStart

			// Snap to a rune boundary.
			text := chunk.String()
			for c.chunkOff > 0 && c.chunkOff < len(text) && !isRuneStart(text[c.chunkOff]) {
				c.chunkOff--
				c.offset--
			}
			return true
		}
		chunkStart = chunkEnd
	}

	c.chunkIdx = len(n.chunks) - 1
	if c.chunkIdx >= 0 {
		c.chunkOff = n.chunks[c.chunkIdx].Len()
	} else {
		c.chunkOff = 0
	}
	return true
}

func (c *Cursor) seekToEnd() bool {
	c.path = c.path[:0]
	c.offset = c.rope.Len()
	c.pointSet = false

	if c.rope.root == nil {
		c.leaf = nil
		return true
	}

	n := c.rope.root
	off := 0
	line := 0
	for !n.isLeaf() {
		last := len(n.children) - 1
		for i := 0; i < last; i++ {
			off += n.childSums[i].Bytes
			line += n.childSums[i].Lines
		}
		c.path = append(c.path, cursorFrame{node: n, childIdx: last, offset: off, line: line})
		n = n.children[last]
	}

	c.leaf = n
	if len(n.chunks) > 0 {
		c.chunkIdx = len(n.chunks) - 1
		c.chunkOff = n.chunks[c.chunkIdx].Len()
	} else {
		c.chunkIdx = 0
		c.chunkOff = 0
	}
	return true
}

// SeekLine positions the cursor at the start of the given 0-indexed line.
// Returns false when the line does not exist.
func (c *Cursor) SeekLine(line int) bool {
	if c.rope.root == nil {
		return line == 0
	}
	if line == 0 {
		c.seekToStart()
		return true
	}
	if line < 0 || line >= c.rope.LineCount() {
		return false
	}

	c.path = c.path[:0]
	c.pointSet = false

	n := c.rope.root
	off := 0
	lines := 0

	for !n.isLeaf() {
		descended := false
		for i, sum := range n.childSums {
			if lines+sum.Lines >= line {
				c.path = append(c.path, cursorFrame{node: n, childIdx: i, offset: off, line: lines})
				n = n.children[i]
				descended = true
				break
			}
			off += sum.Bytes
			lines += sum.Lines
		}
		if !descended {
			return false
		}
	}

	c.leaf = n
	remaining := line - lines
	for i, chunk := range n.chunks {
		sum := chunk.Summary()
		if sum.Lines >= remaining {
			pos := chunk.Newlines().Nth(remaining)
			if pos < 0 {
				return false
			}
			c.chunkIdx = i
			c.chunkOff = pos + 1
			c.offset = off + c.chunkOff
			c.point = Point{Line: line}
			c.pointSet = true
			return true
		}
		remaining -= sum.Lines
		off += chunk.Len()
	}
	return false
}

// Rune returns the rune at the cursor, or (0, 0) at the end.
func (c *Cursor) Rune() (rune, int) {
	if c.leaf == nil || c.chunkIdx >= len(c.leaf.chunks) {
		return 0, 0
	}
	chunk := c.leaf.chunks[c.chunkIdx]
	if c.chunkOff >= chunk.Len() {
		return 0, 0
	}
	return utf8.DecodeRuneInString(chunk.String()[c.chunkOff:])
}

// Byte returns the byte at the cursor, or false at the end.
func (c *Cursor) Byte() (byte, bool) {
	if c.leaf == nil || c.chunkIdx >= len(c.leaf.chunks) {
		return 0, false
	}
	chunk := c.leaf.chunks[c.chunkIdx]
	if c.chunkOff >= chunk.Len() {
		return 0, false
	}
	return chunk.String()[c.chunkOff], true
}

// Next advances past the current rune. Returns false at the end.
func (c *Cursor) Next() bool {
	if c.offset >= c.rope.Len() {
		return false
	}

	r, size := c.Rune()
	if size == 0 {
		return false
	}

	c.offset += size
	c.chunkOff += size

	if c.pointSet {
		if r == '\n' {
			c.point.Line++
			c.point.Col = 0
		} else {
			c.point.Col += size
		}
	}

	if c.leaf != nil && c.chunkIdx < len(c.leaf.chunks) &&
		c.chunkOff >= c.leaf.chunks[c.chunkIdx].Len() {
		c.advanceChunk()
	}
	return true
}

func (c *Cursor) advanceChunk() {
	c.chunkIdx++
	c.chunkOff = 0
	if c.chunkIdx >= len(c.leaf.chunks) {
		c.advanceLeaf()
	}
}

func (c *Cursor) advanceLeaf() {
	for len(c.path) > 0 {
		frame := c.path[len(c.path)-1]
		c.path = c.path[:len(c.path)-1]

		next := frame.childIdx + 1
		if next >= len(frame.node.children) {
			continue
		}

		nextOffset := frame.offset + frame.node.childSums[frame.childIdx].Bytes
		nextLine := frame.line + frame.node.childSums[frame.childIdx].Lines
		c.path = append(c.path, cursorFrame{
			node:     frame.node,
			childIdx: next,
			offset:   nextOffset,
			line:     nextLine,
		})

		n := frame.node.children[next]
		for !n.isLeaf() {
			c.path = append(c.path, cursorFrame{node: n, offset: nextOffset, line: nextLine})
			n = n.children[0]
		}
		c.leaf = n
		c.chunkIdx = 0
		c.chunkOff = 0
		return
	}

	c.leaf = nil
	c.chunkIdx = 0
	c.chunkOff = 0
}

// Prev steps back one rune. Returns false at the start.
func (c *Cursor) Prev() bool {
	if c.offset == 0 {
		return false
	}

	prev := c.offset - 1
	for prev > 0 {
		b, ok := c.rope.ByteAt(prev)
		if !ok || isRuneStart(b) {
			break
		}
		prev--
	}
	c.SeekOffset(prev)
	return true
}

// AtEnd reports whether the cursor sits past the final byte.
func (c *Cursor) AtEnd() bool {
	return c.offset >= c.rope.Len()
}

// AtStart reports whether the cursor sits at offset 0.
func (c *Cursor) AtStart() bool {
	return c.offset == 0
}

// Clone returns an independent cursor at the same position.
func (c *Cursor) Clone() *Cursor {
	out := &Cursor{
		rope:     c.rope,
		path:     make([]cursorFrame, len(c.path)),
		offset:   c.offset,
		point:    c.point,
		pointSet: c.pointSet,
		leaf:     c.leaf,
		chunkIdx: c.chunkIdx,
		chunkOff: c.chunkOff,
	}
	copy(out.path, c.path)
	return out
}

package rope

import (
	"io"
	"strings"
)

// Rope is an immutable tree of text chunks. The zero value is usable and
// empty. Operations return new Rope values; the receiver is never changed,
// so old values remain valid snapshots.
type Rope struct {
	root *node
}

// New returns an empty rope.
func New() Rope {
	return Rope{root: newLeaf()}
}

// FromString builds a rope over s.
func FromString(s string) Rope {
	if len(s) == 0 {
		return New()
	}
	return fromChunks(splitIntoChunks(s))
}

// FromReader builds a rope from everything r yields.
func FromReader(r io.Reader) (Rope, error) {
	var b Builder
	if _, err := b.ReadFrom(r); err != nil {
		return Rope{}, err
	}
	return b.Build(), nil
}

func fromChunks(chunks []Chunk) Rope {
	if len(chunks) == 0 {
		return New()
	}

	var leaves []*node
	for i := 0; i < len(chunks); i += MaxChunksPerLeaf {
		end := min(i+MaxChunksPerLeaf, len(chunks))
		group := make([]Chunk, end-i)
		copy(group, chunks[i:end])
		leaves = append(leaves, newLeafWithChunks(group))
	}

	nodes := leaves
	for len(nodes) > 1 {
		var parents []*node
		for i := 0; i < len(nodes); i += MaxChildren {
			end := min(i+MaxChildren, len(nodes))
			group := make([]*node, end-i)
			copy(group, nodes[i:end])
			parents = append(parents, newInternal(group))
		}
		nodes = parents
	}

	return Rope{root: nodes[0]}
}

// Len returns the total byte length.
func (r Rope) Len() int {
	if r.root == nil {
		return 0
	}
	return r.root.length()
}

// LineCount returns the number of lines, which is newlines + 1. An empty
// rope has one (empty) line.
func (r Rope) LineCount() int {
	if r.root == nil {
		return 1
	}
	return r.root.summary.Lines + 1
}

// IsEmpty reports whether the rope holds no text.
func (r Rope) IsEmpty() bool {
	return r.Len() == 0
}

// Summary returns the aggregated metrics for the whole rope.
func (r Rope) Summary() TextSummary {
	if r.root == nil {
		return zeroSummary()
	}
	return r.root.summary
}

// String materializes the full text. Costs O(n); prefer Slice or the
// iterators for large ropes.
func (r Rope) String() string {
	if r.root == nil {
		return ""
	}
	var sb strings.Builder
	sb.Grow(r.Len())
	r.root.appendTo(&sb)
	return sb.String()
}

// Slice returns the text in [start, end), clamped to the rope.
func (r Rope) Slice(start, end int) string {
	if r.root == nil || start >= end || start >= r.Len() {
		return ""
	}
	end = min(end, r.Len())
	start = max(start, 0)

	var sb strings.Builder
	sb.Grow(end - start)
	r.root.appendRange(&sb, start, end)
	return sb.String()
}

// ByteAt returns the byte at offset, or false when out of range.
func (r Rope) ByteAt(offset int) (byte, bool) {
	if r.root == nil || offset < 0 || offset >= r.Len() {
		return 0, false
	}

	n := r.root
	for !n.isLeaf() {
		idx, rel := n.childAt(offset)
		n = n.children[idx]
		offset = rel
	}

	for _, c := range n.chunks {
		if offset < c.Len() {
			return c.String()[offset], true
		}
		offset -= c.Len()
	}
	return 0, false
}

// Insert returns a rope with text inserted at the byte offset.
func (r Rope) Insert(offset int, text string) Rope {
	if len(text) == 0 {
		return r
	}
	if r.root == nil || r.Len() == 0 {
		return FromString(text)
	}
	if offset <= 0 {
		return FromString(text).Concat(r)
	}
	if offset >= r.Len() {
		return r.Concat(FromString(text))
	}

	left, right := r.Split(offset)
	return left.Concat(FromString(text)).Concat(right)
}

// Delete returns a rope with [start, end) removed. The range is clamped.
func (r Rope) Delete(start, end int) Rope {
	if r.root == nil || start >= end {
		return r
	}

	n := r.Len()
	if start >= n {
		return r
	}
	start = max(start, 0)
	end = min(end, n)

	switch {
	case start == 0 && end >= n:
		return New()
	case start == 0:
		_, right := r.Split(end)
		return right
	case end >= n:
		left, _ := r.Split(start)
		return left
	}

	left, rest := r.Split(start)
	_, right := rest.Split(end - start)
	return left.Concat(right)
}

// Replace substitutes [start, end) with text.
func (r Rope) Replace(start, end int, text string) Rope {
	if start >= end {
		return r.Insert(start, text)
	}
	if len(text) == 0 {
		return r.Delete(start, end)
	}
	return r.Delete(start, end).Insert(start, text)
}

// Split divides the rope at offset: the left part holds [0, offset),
// the right holds [offset, Len()).
func (r Rope) Split(offset int) (Rope, Rope) {
	if r.root == nil || offset <= 0 {
		return New(), r
	}
	if offset >= r.Len() {
		return r, New()
	}
	left, right := r.root.split(offset)
	return Rope{root: left}, Rope{root: right}
}

// Concat joins two ropes.
func (r Rope) Concat(other Rope) Rope {
	if r.root == nil || r.Len() == 0 {
		return other
	}
	if other.root == nil || other.Len() == 0 {
		return r
	}
	return Rope{root: concatNodes(r.root, other.root)}
}

// LineStartOffset returns the byte offset where the given 0-indexed line
// begins. Out-of-range lines return Len().
func (r Rope) LineStartOffset(line int) int {
	if r.root == nil || line <= 0 {
		return 0
	}
	if line >= r.LineCount() {
		return r.Len()
	}

	c := NewCursor(r)
	if c.SeekLine(line) {
		return c.Offset()
	}
	return r.Len()
}

// LineEndOffset returns the byte offset just past the given line's text,
// excluding its newline.
func (r Rope) LineEndOffset(line int) int {
	if r.root == nil {
		return 0
	}
	count := r.LineCount()
	if line >= count-1 {
		return r.Len()
	}
	next := r.LineStartOffset(line + 1)
	if next > 0 {
		return next - 1
	}
	return 0
}

// LineText returns the given line's text without its newline.
func (r Rope) LineText(line int) string {
	return r.Slice(r.LineStartOffset(line), r.LineEndOffset(line))
}

// OffsetToPoint converts a byte offset into a line/byte-column point.
// Offsets past the end map to the end point.
func (r Rope) OffsetToPoint(offset int) Point {
	if r.root == nil || offset <= 0 {
		return Point{}
	}
	if offset >= r.Len() {
		last := r.LineCount() - 1
		return Point{Line: last, Col: r.Len() - r.LineStartOffset(last)}
	}

	c := NewCursor(r)
	c.SeekOffset(offset)
	return c.Point()
}

// PointToOffset converts a line/byte-column point into a byte offset,
// clamping the column to the line's length.
func (r Rope) PointToOffset(p Point) int {
	if r.root == nil {
		return 0
	}
	start := r.LineStartOffset(p.Line)
	end := r.LineEndOffset(p.Line)
	if p.Col >= end-start {
		return end
	}
	return start + p.Col
}

// Equals reports whether two ropes hold the same text. Chunk boundaries
// need not match.
func (r Rope) Equals(other Rope) bool {
	if r.Len() != other.Len() {
		return false
	}

	a := r.Chunks()
	b := other.Chunks()
	var sa, sb string
	for {
		if len(sa) == 0 {
			if !a.Next() {
				return len(sb) == 0 && !b.Next()
			}
			sa = a.Chunk().String()
		}
		if len(sb) == 0 {
			if !b.Next() {
				return false
			}
			sb = b.Chunk().String()
		}
		n := min(len(sa), len(sb))
		if sa[:n] != sb[:n] {
			return false
		}
		sa = sa[n:]
		sb = sb[n:]
	}
}

// Height returns the tree height, for balance checks in tests.
func (r Rope) Height() int {
	if r.root == nil {
		return 0
	}
	return int(r.root.height) + 1
}

// ChunkCount returns the number of chunks in the rope.
func (r Rope) ChunkCount() int {
	if r.root == nil {
		return 0
	}
	var count func(*node) int
	count = func(n *node) int {
		if n.isLeaf() {
			return len(n.chunks)
		}
		total := 0
		for _, child := range n.children {
			total += count(child)
		}
		return total
	}
	return count(r.root)
}

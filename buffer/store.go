package buffer

import (
	"strings"

	"github.com/tborchert/inkline/rope"
)

// Store is the storage backend behind a Buffer. Implementations are
// immutable values: Replace returns a new Store and leaves the receiver
// untouched, which is what lets snapshots share storage with a live
// buffer at zero cost.
//
// Query methods clamp their arguments the same way rope.Rope does:
// offsets to [0, Len()], lines to the valid line range, columns to the
// line length.
type Store interface {
	Len() int
	LineCount() int
	String() string
	Slice(start, end int) string
	ByteAt(offset int) (byte, bool)
	LineStartOffset(line int) int
	LineEndOffset(line int) int
	LineText(line int) string
	OffsetToPoint(offset int) rope.Point
	PointToOffset(p rope.Point) int
	Replace(start, end int, text string) Store
}

// ropeStore backs a Buffer with a rope, the default for documents of
// any size.
type ropeStore struct {
	r rope.Rope
}

// NewRopeStore returns a rope-backed store holding s.
func NewRopeStore(s string) Store {
	return ropeStore{r: rope.FromString(s)}
}

// StoreFromRope wraps an existing rope as a store.
func StoreFromRope(r rope.Rope) Store {
	return ropeStore{r: r}
}

func (s ropeStore) Len() int                        { return s.r.Len() }
func (s ropeStore) LineCount() int                  { return s.r.LineCount() }
func (s ropeStore) String() string                  { return s.r.String() }
func (s ropeStore) Slice(start, end int) string     { return s.r.Slice(start, end) }
func (s ropeStore) ByteAt(offset int) (byte, bool)  { return s.r.ByteAt(offset) }
func (s ropeStore) LineStartOffset(line int) int    { return s.r.LineStartOffset(line) }
func (s ropeStore) LineEndOffset(line int) int      { return s.r.LineEndOffset(line) }
func (s ropeStore) LineText(line int) string        { return s.r.LineText(line) }
func (s ropeStore) OffsetToPoint(off int) rope.Point { return s.r.OffsetToPoint(off) }
func (s ropeStore) PointToOffset(p rope.Point) int  { return s.r.PointToOffset(p) }

func (s ropeStore) Replace(start, end int, text string) Store {
	return ropeStore{r: s.r.Replace(start, end, text)}
}

// Rope returns the underlying rope for callers that need structural
// access, such as chunk iteration.
func (s ropeStore) Rope() rope.Rope {
	return s.r
}

// flatPromoteLimit is the content size at which a flat store hands off
// to a rope. Single-line inputs stay far below it; pasting a document
// into one should not leave edits quadratic.
const flatPromoteLimit = 4096

// flatStore backs a Buffer with one contiguous string. Every edit
// copies the whole content, which beats the rope's constant factors for
// the short texts single-line input widgets hold.
type flatStore struct {
	text string
}

// NewFlatStore returns a flat store holding s. Content larger than the
// promotion limit starts out rope-backed instead.
func NewFlatStore(s string) Store {
	if len(s) > flatPromoteLimit {
		return NewRopeStore(s)
	}
	return flatStore{text: s}
}

func (f flatStore) Len() int       { return len(f.text) }
func (f flatStore) String() string { return f.text }

func (f flatStore) LineCount() int {
	return strings.Count(f.text, "\n") + 1
}

func (f flatStore) Slice(start, end int) string {
	if start >= end || start >= len(f.text) {
		return ""
	}
	start = max(start, 0)
	end = min(end, len(f.text))
	return f.text[start:end]
}

func (f flatStore) ByteAt(offset int) (byte, bool) {
	if offset < 0 || offset >= len(f.text) {
		return 0, false
	}
	return f.text[offset], true
}

func (f flatStore) LineStartOffset(line int) int {
	if line <= 0 {
		return 0
	}
	if line >= f.LineCount() {
		return len(f.text)
	}
	pos := 0
	for i := 0; i < line; i++ {
		nl := strings.IndexByte(f.text[pos:], '\n')
		pos += nl + 1
	}
	return pos
}

func (f flatStore) LineEndOffset(line int) int {
	if line >= f.LineCount()-1 {
		return len(f.text)
	}
	next := f.LineStartOffset(line + 1)
	if next > 0 {
		return next - 1
	}
	return 0
}

func (f flatStore) LineText(line int) string {
	return f.Slice(f.LineStartOffset(line), f.LineEndOffset(line))
}

func (f flatStore) OffsetToPoint(offset int) rope.Point {
	if offset <= 0 {
		return rope.Point{}
	}
	if offset >= len(f.text) {
		last := f.LineCount() - 1
		return rope.Point{Line: last, Col: len(f.text) - f.LineStartOffset(last)}
	}
	for offset > 0 && f.text[offset]&0xC0 == 0x80 {
		offset--
	}
	line := strings.Count(f.text[:offset], "\n")
	start := strings.LastIndexByte(f.text[:offset], '\n') + 1
	return rope.Point{Line: line, Col: offset - start}
}

func (f flatStore) PointToOffset(p rope.Point) int {
	start := f.LineStartOffset(p.Line)
	end := f.LineEndOffset(p.Line)
	if p.Col >= end-start {
		return end
	}
	return start + p.Col
}

func (f flatStore) Replace(start, end int, text string) Store {
	n := len(f.text)
	start = min(max(start, 0), n)
	end = min(max(end, start), n)

	out := f.text[:start] + text + f.text[end:]
	if len(out) > flatPromoteLimit {
		return NewRopeStore(out)
	}
	return flatStore{text: out}
}

package buffer

import (
	"errors"
	"io"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/tborchert/inkline/segment"
)

// Errors returned by buffer mutations. Queries never fail; they clamp.
var (
	ErrOutOfBounds     = errors.New("offset out of bounds")
	ErrInvalidRange    = errors.New("invalid range")
	ErrInvalidBoundary = errors.New("offset not on a character boundary")
	ErrEditsOverlap    = errors.New("edits overlap or are not in reverse order")
)

// LineEnding specifies the line ending style.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
)

// String returns the string representation of the line ending.
func (le LineEnding) String() string {
	if le == LineEndingCRLF {
		return "\\r\\n"
	}
	return "\\n"
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	if le == LineEndingCRLF {
		return "\r\n"
	}
	return "\n"
}

// Buffer wraps a Store with coordinate conversion, validation, and
// line-ending handling. It is the primary interface for text
// manipulation. All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	store      Store
	revisionID RevisionID
	lineEnding LineEnding
	tabWidth   int
	strict     bool
}

// New creates an empty buffer.
func New(opts ...Option) *Buffer {
	b := &Buffer{
		store:      NewRopeStore(""),
		revisionID: NewRevisionID(),
		lineEnding: LineEndingLF,
		tabWidth:   4,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// NewFromString creates a buffer with initial content. Line endings in
// the content are normalized to the buffer's style.
func NewFromString(s string, opts ...Option) *Buffer {
	b := New(opts...)
	b.store = b.store.Replace(0, b.store.Len(), b.normalizeLineEndings(s))
	return b
}

// NewFromReader creates a buffer from an io.Reader.
func NewFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	// Read everything first so CRLF pairs split across read boundaries
	// normalize correctly.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewFromString(string(data), opts...), nil
}

// normalizeLineEndings converts all line endings to the buffer's style.
// CR-only endings are treated as line breaks and converted too.
func (b *Buffer) normalizeLineEndings(s string) string {
	if !strings.ContainsRune(s, '\r') && b.lineEnding == LineEndingLF {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	if b.lineEnding == LineEndingCRLF {
		s = strings.ReplaceAll(s, "\n", "\r\n")
	}
	return s
}

// Read operations

// Text returns the full buffer content as a string. For large buffers,
// prefer TextRange or per-line access.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.store.String()
}

// TextRange returns the text in [start, end), clamped to the buffer.
func (b *Buffer) TextRange(start, end int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.store.Slice(start, end)
}

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.store.Len()
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.store.LineCount()
}

// LineText returns the text of a line without its line ending. Under
// CRLF the trailing carriage return is not part of the line.
func (b *Buffer) LineText(line int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return lineContent(b.store, line)
}

// LineLen returns the byte length of a line, excluding its line ending.
func (b *Buffer) LineLen(line int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(lineContent(b.store, line))
}

// ByteAt returns the raw byte at the given offset.
func (b *Buffer) ByteAt(offset int) (byte, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.store.ByteAt(offset)
}

// RuneAt returns the rune starting at the given byte offset. Returns
// utf8.RuneError and size 0 if the offset is out of range.
func (b *Buffer) RuneAt(offset int) (rune, int) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return runeAt(b.store, offset)
}

// GraphemeAt returns the grapheme cluster at a position. The second
// return is false when the clamped position sits at the end of its line.
func (b *Buffer) GraphemeAt(pos Position) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	line := clampLine(b.store, pos.Line)
	return segment.At(lineContent(b.store, line), pos.Col)
}

// Coordinate conversion

// OffsetToPosition converts a byte offset to a line/grapheme-column
// position. Offsets are clamped; an offset inside a cluster maps to
// that cluster's column.
func (b *Buffer) OffsetToPosition(offset int) Position {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return offsetToPosition(b.store, offset)
}

// PositionToOffset converts a position to a byte offset, clamping the
// line and column to the document.
func (b *Buffer) PositionToOffset(pos Position) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return positionToOffset(b.store, pos)
}

// ClampPosition returns the nearest valid position: the line is clamped
// to the document and the column to that line's cluster count.
func (b *Buffer) ClampPosition(pos Position) Position {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return clampPosition(b.store, pos)
}

// OffsetToPointUTF16 converts a byte offset to a UTF-16 line/column.
func (b *Buffer) OffsetToPointUTF16(offset int) PointUTF16 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return offsetToPointUTF16(b.store, offset)
}

// PointUTF16ToOffset converts a UTF-16 line/column to a byte offset.
func (b *Buffer) PointUTF16ToOffset(point PointUTF16) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return pointUTF16ToOffset(b.store, point)
}

// LineStartOffset returns the byte offset where a line begins.
func (b *Buffer) LineStartOffset(line int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.store.LineStartOffset(line)
}

// LineEndOffset returns the byte offset just past a line's content,
// before its line ending.
func (b *Buffer) LineEndOffset(line int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return lineContentEnd(b.store, line)
}

// Write operations

// Insert inserts text at the given byte offset and returns the offset
// just past the inserted text. The offset must lie inside the buffer on
// a character boundary; inserted text is normalized to the buffer's
// line ending style.
func (b *Buffer) Insert(offset int, text string) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkOffsetLocked(offset); err != nil {
		return 0, err
	}

	text = b.normalizeLineEndings(text)
	b.store = b.store.Replace(offset, offset, text)
	b.revisionID = NewRevisionID()

	return offset + len(text), nil
}

// Delete removes the text in [start, end).
func (b *Buffer) Delete(start, end int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkRangeLocked(start, end); err != nil {
		return err
	}

	b.store = b.store.Replace(start, end, "")
	b.revisionID = NewRevisionID()

	return nil
}

// Replace substitutes the text in [start, end) and returns the offset
// just past the replacement.
func (b *Buffer) Replace(start, end int, text string) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkRangeLocked(start, end); err != nil {
		return 0, err
	}

	text = b.normalizeLineEndings(text)
	b.store = b.store.Replace(start, end, text)
	b.revisionID = NewRevisionID()

	return start + len(text), nil
}

// ApplyEdit applies a single edit and reports what changed. The buffer
// is untouched when validation fails.
func (b *Buffer) ApplyEdit(edit Edit) (EditResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkRangeLocked(edit.Range.Start, edit.Range.End); err != nil {
		return EditResult{}, err
	}

	oldText := b.store.Slice(edit.Range.Start, edit.Range.End)
	text := b.normalizeLineEndings(edit.NewText)
	b.store = b.store.Replace(edit.Range.Start, edit.Range.End, text)
	b.revisionID = NewRevisionID()

	return EditResult{
		OldRange: edit.Range,
		NewRange: Range{Start: edit.Range.Start, End: edit.Range.Start + len(text)},
		OldText:  oldText,
		NewText:  text,
		Delta:    len(text) - edit.Range.Len(),
	}, nil
}

// ApplyEdits applies multiple edits atomically. Edits must be in
// reverse order (highest offset first) so earlier entries do not shift
// later ones. No edit is applied unless all validate.
func (b *Buffer) ApplyEdits(edits []Edit) error {
	if len(edits) == 0 {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for i := 1; i < len(edits); i++ {
		if edits[i].Range.End > edits[i-1].Range.Start {
			return ErrEditsOverlap
		}
	}
	for _, edit := range edits {
		if err := b.checkRangeLocked(edit.Range.Start, edit.Range.End); err != nil {
			return err
		}
	}

	for _, edit := range edits {
		text := b.normalizeLineEndings(edit.NewText)
		b.store = b.store.Replace(edit.Range.Start, edit.Range.End, text)
	}

	b.revisionID = NewRevisionID()
	return nil
}

// checkOffsetLocked validates a mutation offset: in bounds, on a UTF-8
// boundary, and on a grapheme boundary when strict checking is on.
func (b *Buffer) checkOffsetLocked(offset int) error {
	if offset < 0 || offset > b.store.Len() {
		return ErrOutOfBounds
	}
	if !b.isBoundaryLocked(offset) {
		return ErrInvalidBoundary
	}
	return nil
}

// checkRangeLocked validates a mutation range.
func (b *Buffer) checkRangeLocked(start, end int) error {
	if start < 0 || end > b.store.Len() {
		return ErrOutOfBounds
	}
	if start > end {
		return ErrInvalidRange
	}
	if !b.isBoundaryLocked(start) || !b.isBoundaryLocked(end) {
		return ErrInvalidBoundary
	}
	return nil
}

func (b *Buffer) isBoundaryLocked(offset int) bool {
	if offset <= 0 || offset >= b.store.Len() {
		return true
	}
	c, _ := b.store.ByteAt(offset)
	if c&0xC0 == 0x80 {
		return false
	}
	prev, _ := b.store.ByteAt(offset - 1)
	if prev == '\r' && c == '\n' {
		return false
	}
	if !b.strict {
		return true
	}
	p := b.store.OffsetToPoint(offset)
	return segment.IsBoundary(b.store.LineText(p.Line), p.Col)
}

// Buffer state

// Revision returns the current revision ID.
func (b *Buffer) Revision() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}

// IsEmpty returns true if the buffer holds no text.
func (b *Buffer) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.store.Len() == 0
}

// LineEnding returns the buffer's line ending style.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// TabWidth returns the buffer's tab width.
func (b *Buffer) TabWidth() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tabWidth
}

// SetLineEnding sets the line ending style for future edits. Existing
// content is not converted; use ConvertLineEndings for that.
func (b *Buffer) SetLineEnding(le LineEnding) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lineEnding = le
}

// ConvertLineEndings rewrites the whole buffer to the given style and
// makes it the style for future edits.
func (b *Buffer) ConvertLineEndings(le LineEnding) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.lineEnding = le
	text := b.normalizeLineEndings(b.store.String())
	if text != b.store.String() {
		b.store = b.store.Replace(0, b.store.Len(), text)
		b.revisionID = NewRevisionID()
	}
}

// SetTabWidth sets the buffer's tab width.
func (b *Buffer) SetTabWidth(width int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if width > 0 {
		b.tabWidth = width
	}
}

// Snapshot returns a read-only view of the current state. Stores are
// immutable, so the snapshot stays valid while the buffer moves on.
func (b *Buffer) Snapshot() *Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return &Snapshot{
		store:      b.store,
		revisionID: b.revisionID,
		lineEnding: b.lineEnding,
		tabWidth:   b.tabWidth,
	}
}

// Shared conversion helpers, used by Buffer and Snapshot alike. All of
// them clamp instead of failing.

func clampLine(st Store, line int) int {
	if line < 0 {
		return 0
	}
	if last := st.LineCount() - 1; line > last {
		return last
	}
	return line
}

// lineContent returns a line's text without its terminator, dropping
// the carriage return a CRLF buffer leaves at the end of the raw line.
func lineContent(st Store, line int) string {
	return strings.TrimSuffix(st.LineText(clampLine(st, line)), "\r")
}

// lineContentEnd returns the offset just past a line's content,
// excluding any trailing carriage return.
func lineContentEnd(st Store, line int) int {
	line = clampLine(st, line)
	end := st.LineEndOffset(line)
	if c, ok := st.ByteAt(end - 1); ok && c == '\r' && end > st.LineStartOffset(line) {
		return end - 1
	}
	return end
}

func runeAt(st Store, offset int) (rune, int) {
	n := st.Len()
	if offset < 0 || offset >= n {
		return utf8.RuneError, 0
	}
	end := min(offset+utf8.UTFMax, n)
	return utf8.DecodeRuneInString(st.Slice(offset, end))
}

func offsetToPosition(st Store, offset int) Position {
	p := st.OffsetToPoint(offset)
	content := lineContent(st, p.Line)
	col := min(p.Col, len(content))
	return Position{Line: p.Line, Col: segment.Column(content, col)}
}

func positionToOffset(st Store, pos Position) int {
	if pos.Line < 0 {
		return 0
	}
	if pos.Line >= st.LineCount() {
		return st.Len()
	}
	content := lineContent(st, pos.Line)
	return st.LineStartOffset(pos.Line) + segment.ByteOffset(content, pos.Col)
}

func clampPosition(st Store, pos Position) Position {
	line := clampLine(st, pos.Line)
	col := pos.Col
	if col < 0 {
		col = 0
	}
	if n := segment.Count(lineContent(st, line)); col > n {
		col = n
	}
	return Position{Line: line, Col: col}
}

func offsetToPointUTF16(st Store, offset int) PointUTF16 {
	p := st.OffsetToPoint(offset)
	start := st.LineStartOffset(p.Line)
	prefix := st.Slice(start, start+min(p.Col, len(lineContent(st, p.Line))))
	return PointUTF16{Line: p.Line, Col: utf16Length(prefix)}
}

func pointUTF16ToOffset(st Store, point PointUTF16) int {
	if point.Line < 0 {
		return 0
	}
	if point.Line >= st.LineCount() {
		return st.Len()
	}
	content := lineContent(st, point.Line)
	return st.LineStartOffset(point.Line) + byteColFromUTF16(content, point.Col)
}

// utf16Length counts UTF-16 code units in s. Runes outside the BMP
// encode as surrogate pairs and count twice.
func utf16Length(s string) int {
	var n int
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// byteColFromUTF16 converts a UTF-16 column to a byte offset within a
// line, clamping to the line's length.
func byteColFromUTF16(line string, utf16Col int) int {
	var col, byteOff int
	for _, r := range line {
		if col >= utf16Col {
			break
		}
		if r >= 0x10000 {
			col += 2
		} else {
			col++
		}
		byteOff += utf8.RuneLen(r)
	}
	return byteOff
}

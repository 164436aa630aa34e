package buffer

import "github.com/tborchert/inkline/segment"

// Snapshot is a read-only view of a buffer at one point in time. It is
// safe for concurrent use and never changes, even as the buffer that
// produced it keeps editing.
type Snapshot struct {
	store      Store
	revisionID RevisionID
	lineEnding LineEnding
	tabWidth   int
}

// Text returns the full snapshot content as a string.
func (s *Snapshot) Text() string {
	return s.store.String()
}

// TextRange returns the text in [start, end), clamped to the snapshot.
func (s *Snapshot) TextRange(start, end int) string {
	return s.store.Slice(start, end)
}

// Len returns the total byte length of the snapshot.
func (s *Snapshot) Len() int {
	return s.store.Len()
}

// LineCount returns the number of lines.
func (s *Snapshot) LineCount() int {
	return s.store.LineCount()
}

// LineText returns the text of a line without its line ending.
func (s *Snapshot) LineText(line int) string {
	return lineContent(s.store, line)
}

// LineLen returns the byte length of a line, excluding its line ending.
func (s *Snapshot) LineLen(line int) int {
	return len(lineContent(s.store, line))
}

// LineGraphemeCount returns the number of grapheme clusters in a line.
func (s *Snapshot) LineGraphemeCount(line int) int {
	return segment.Count(lineContent(s.store, line))
}

// ByteAt returns the raw byte at the given offset.
func (s *Snapshot) ByteAt(offset int) (byte, bool) {
	return s.store.ByteAt(offset)
}

// RuneAt returns the rune starting at the given byte offset.
func (s *Snapshot) RuneAt(offset int) (rune, int) {
	return runeAt(s.store, offset)
}

// OffsetToPosition converts a byte offset to a line/grapheme-column
// position.
func (s *Snapshot) OffsetToPosition(offset int) Position {
	return offsetToPosition(s.store, offset)
}

// PositionToOffset converts a position to a byte offset.
func (s *Snapshot) PositionToOffset(pos Position) int {
	return positionToOffset(s.store, pos)
}

// ClampPosition returns the nearest valid position.
func (s *Snapshot) ClampPosition(pos Position) Position {
	return clampPosition(s.store, pos)
}

// OffsetToPointUTF16 converts a byte offset to a UTF-16 line/column.
func (s *Snapshot) OffsetToPointUTF16(offset int) PointUTF16 {
	return offsetToPointUTF16(s.store, offset)
}

// PointUTF16ToOffset converts a UTF-16 line/column to a byte offset.
func (s *Snapshot) PointUTF16ToOffset(point PointUTF16) int {
	return pointUTF16ToOffset(s.store, point)
}

// LineStartOffset returns the byte offset where a line begins.
func (s *Snapshot) LineStartOffset(line int) int {
	return s.store.LineStartOffset(line)
}

// LineEndOffset returns the byte offset just past a line's content.
func (s *Snapshot) LineEndOffset(line int) int {
	return lineContentEnd(s.store, line)
}

// Revision returns the revision this snapshot was taken at.
func (s *Snapshot) Revision() RevisionID {
	return s.revisionID
}

// IsEmpty returns true if the snapshot holds no text.
func (s *Snapshot) IsEmpty() bool {
	return s.store.Len() == 0
}

// LineEnding returns the snapshot's line ending style.
func (s *Snapshot) LineEnding() LineEnding {
	return s.lineEnding
}

// TabWidth returns the snapshot's tab width.
func (s *Snapshot) TabWidth() int {
	return s.tabWidth
}

package buffer

import "fmt"

// Range is a byte range in the buffer. Start is inclusive, End is
// exclusive: [Start, End).
type Range struct {
	Start int
	End   int
}

// NewRange creates a Range from start and end offsets.
func NewRange(start, end int) Range {
	return Range{Start: start, End: end}
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%d:%d)", r.Start, r.End)
}

// Len returns the length of the range in bytes.
func (r Range) Len() int {
	return r.End - r.Start
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// IsValid returns true if Start <= End.
func (r Range) IsValid() bool {
	return r.Start <= r.End
}

// Contains returns true if the given offset is within the range.
func (r Range) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// ContainsRange returns true if other lies entirely within this range.
func (r Range) ContainsRange(other Range) bool {
	return other.Start >= r.Start && other.End <= r.End
}

// Overlaps returns true if this range overlaps another.
func (r Range) Overlaps(other Range) bool {
	return r.Start < other.End && other.Start < r.End
}

// Intersect returns the overlap of two ranges, or an empty range when
// they are disjoint.
func (r Range) Intersect(other Range) Range {
	start := max(r.Start, other.Start)
	end := min(r.End, other.End)
	if start >= end {
		return Range{Start: start, End: start}
	}
	return Range{Start: start, End: end}
}

// Union returns the smallest range containing both ranges.
func (r Range) Union(other Range) Range {
	return Range{
		Start: min(r.Start, other.Start),
		End:   max(r.End, other.End),
	}
}

// Shift returns the range moved by delta bytes.
func (r Range) Shift(delta int) Range {
	return Range{Start: r.Start + delta, End: r.End + delta}
}

// PositionRange is a range expressed in line/grapheme-column positions.
// Start is inclusive, End exclusive. Selections hand these to the
// engine; Normalize puts an inverted pair in order first.
type PositionRange struct {
	Start Position
	End   Position
}

// NewPositionRange creates a PositionRange from two positions.
func NewPositionRange(start, end Position) PositionRange {
	return PositionRange{Start: start, End: end}
}

// String returns a human-readable representation of the range.
func (r PositionRange) String() string {
	return fmt.Sprintf("[%s:%s)", r.Start, r.End)
}

// Normalize returns the range with Start and End swapped if needed so
// that Start <= End.
func (r PositionRange) Normalize() PositionRange {
	if r.Start.After(r.End) {
		return PositionRange{Start: r.End, End: r.Start}
	}
	return r
}

// IsEmpty returns true if start equals end.
func (r PositionRange) IsEmpty() bool {
	return r.Start.Compare(r.End) == 0
}

// IsValid returns true if Start <= End.
func (r PositionRange) IsValid() bool {
	return r.Start.Compare(r.End) <= 0
}

// Contains returns true if the given position is within the range.
func (r PositionRange) Contains(p Position) bool {
	return p.Compare(r.Start) >= 0 && p.Compare(r.End) < 0
}

// IsSingleLine returns true if the range spans only one line.
func (r PositionRange) IsSingleLine() bool {
	return r.Start.Line == r.End.Line
}

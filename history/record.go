package history

import (
	"time"

	"github.com/tborchert/inkline/buffer"
)

// Record is a single undoable edit. It captures everything needed to
// revert or replay the edit: the modified range in the pre-edit
// document, both texts, and the cursor position on each side.
type Record struct {
	Range   buffer.Range
	OldText string
	NewText string

	// Cursor positions for restore on undo/redo.
	Before buffer.Position
	After  buffer.Position

	Timestamp time.Time
}

// NewRecord creates a record for a replacement.
func NewRecord(r buffer.Range, oldText, newText string) Record {
	return Record{
		Range:     r,
		OldText:   oldText,
		NewText:   newText,
		Timestamp: time.Now(),
	}
}

// NewInsertRecord creates a record for an insertion at offset.
func NewInsertRecord(offset int, text string) Record {
	return NewRecord(buffer.Range{Start: offset, End: offset}, "", text)
}

// NewDeleteRecord creates a record for a deletion.
func NewDeleteRecord(r buffer.Range, deletedText string) Record {
	return NewRecord(r, deletedText, "")
}

// WithPositions sets the cursor positions and returns the record.
func (r Record) WithPositions(before, after buffer.Position) Record {
	r.Before = before
	r.After = after
	return r
}

// IsInsert returns true if this record is a pure insertion.
func (r Record) IsInsert() bool {
	return r.Range.IsEmpty() && r.NewText != ""
}

// IsDelete returns true if this record is a pure deletion.
func (r Record) IsDelete() bool {
	return !r.Range.IsEmpty() && r.NewText == ""
}

// IsReplace returns true if this record replaces text.
func (r Record) IsReplace() bool {
	return !r.Range.IsEmpty() && r.NewText != ""
}

// IsNoop returns true if this record changes nothing.
func (r Record) IsNoop() bool {
	return r.Range.IsEmpty() && r.NewText == ""
}

// Delta returns the change in document length this record caused.
func (r Record) Delta() int {
	return len(r.NewText) - r.Range.Len()
}

// NewRange returns the range the new text occupies after the edit.
func (r Record) NewRange() buffer.Range {
	return buffer.Range{Start: r.Range.Start, End: r.Range.Start + len(r.NewText)}
}

// Invert returns the record that undoes this one. Applying the
// inversion replaces the new text with the old and restores the cursor
// to its pre-edit position.
func (r Record) Invert() Record {
	return Record{
		Range:     r.NewRange(),
		OldText:   r.NewText,
		NewText:   r.OldText,
		Before:    r.After,
		After:     r.Before,
		Timestamp: time.Now(),
	}
}

// Sequence is an ordered run of records that undo and redo as one unit.
type Sequence []Record

// Invert returns the inverse records in reverse order, ready to apply
// for an undo.
func (s Sequence) Invert() Sequence {
	out := make(Sequence, len(s))
	for i, r := range s {
		out[len(s)-1-i] = r.Invert()
	}
	return out
}

// Delta returns the total change in document length.
func (s Sequence) Delta() int {
	total := 0
	for _, r := range s {
		total += r.Delta()
	}
	return total
}

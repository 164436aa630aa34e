package editor

import (
	"strings"

	"github.com/tborchert/inkline/buffer"
	"github.com/tborchert/inkline/history"
	"github.com/tborchert/inkline/layout"
	"github.com/tborchert/inkline/segment"
)

// InsertChar inserts a single character at pos and returns the position
// just past it.
func (e *Editor) InsertChar(pos buffer.Position, ch rune) (buffer.Position, error) {
	return e.InsertString(pos, string(ch))
}

// InsertString inserts text at pos and returns the position just past
// the inserted text. Fails with ErrOutOfBounds when pos does not name
// an existing position.
func (e *Editor) InsertString(pos buffer.Position, text string) (buffer.Position, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return buffer.Position{}, ErrReadOnly
	}
	offset, err := e.resolveLocked(pos)
	if err != nil {
		return buffer.Position{}, err
	}
	if text == "" {
		return pos, nil
	}
	return e.applyLocked(buffer.Range{Start: offset, End: offset}, text, pos, true)
}

// InsertNewline splits the line at pos, inserting the buffer's
// configured separator. The returned position is the start of the new
// line.
func (e *Editor) InsertNewline(pos buffer.Position) (buffer.Position, error) {
	return e.InsertString(pos, "\n")
}

// InsertTab inserts a tab at pos, or spaces up to the next tab stop
// when soft tabs are enabled.
func (e *Editor) InsertTab(pos buffer.Position) (buffer.Position, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return buffer.Position{}, ErrReadOnly
	}
	offset, err := e.resolveLocked(pos)
	if err != nil {
		return buffer.Position{}, err
	}

	text := "\t"
	if e.softTabs {
		tw := e.buf.TabWidth()
		content := e.buf.LineText(pos.Line)
		col := layout.VisualWidth(content[:segment.ByteOffset(content, pos.Col)], tw)
		text = strings.Repeat(" ", tw-col%tw)
	}
	return e.applyLocked(buffer.Range{Start: offset, End: offset}, text, pos, true)
}

// DeleteForward removes the grapheme cluster after pos; at the end of a
// line that is the separator and the next line joins this one. At the
// end of the buffer it is a no-op, not an error.
func (e *Editor) DeleteForward(pos buffer.Position) (buffer.Position, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return buffer.Position{}, ErrReadOnly
	}
	start, err := e.resolveLocked(pos)
	if err != nil {
		return buffer.Position{}, err
	}
	end := e.buf.PositionToOffset(e.buf.NextGrapheme(pos))
	if end == start {
		return pos, nil
	}
	return e.applyLocked(buffer.Range{Start: start, End: end}, "", pos, true)
}

// DeleteBackward removes the grapheme cluster before pos; at the start
// of a line that is the previous line's separator. At the start of the
// buffer it is a no-op, not an error.
func (e *Editor) DeleteBackward(pos buffer.Position) (buffer.Position, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return buffer.Position{}, ErrReadOnly
	}
	end, err := e.resolveLocked(pos)
	if err != nil {
		return buffer.Position{}, err
	}
	start := e.buf.PositionToOffset(e.buf.PrevGrapheme(pos))
	if start == end {
		return pos, nil
	}
	return e.applyLocked(buffer.Range{Start: start, End: end}, "", pos, true)
}

// DeleteRange removes the text in r. A reversed range fails with
// ErrInvalidRange; an empty range is a no-op.
func (e *Editor) DeleteRange(r buffer.PositionRange) (buffer.Position, error) {
	return e.ReplaceRange(r, "")
}

// ReplaceRange substitutes the text in r and returns the position just
// past the replacement.
func (e *Editor) ReplaceRange(r buffer.PositionRange, text string) (buffer.Position, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return buffer.Position{}, ErrReadOnly
	}
	if !r.IsValid() {
		return buffer.Position{}, ErrInvalidRange
	}
	start, err := e.resolveLocked(r.Start)
	if err != nil {
		return buffer.Position{}, err
	}
	end, err := e.resolveLocked(r.End)
	if err != nil {
		return buffer.Position{}, err
	}
	if start == end && text == "" {
		return r.Start, nil
	}
	return e.applyLocked(buffer.Range{Start: start, End: end}, text, r.Start, true)
}

// SetText replaces the whole content and resets history, styles and
// cached layout. This is the bulk entry point for loading a document.
func (e *Editor) SetText(text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	if _, err := e.buf.Replace(0, e.buf.Len(), text); err != nil {
		return err
	}
	e.log.Clear()
	e.styles.Clear()
	e.cache.Clear()
	return nil
}

// Clear removes all content, history, styles and cached layout.
func (e *Editor) Clear() error {
	return e.SetText("")
}

// resolveLocked validates that pos names an existing position — the
// line exists and the column is at most the line's cluster count — and
// returns its byte offset. Edits never clamp; queries do.
func (e *Editor) resolveLocked(pos buffer.Position) (int, error) {
	if pos.Line < 0 || pos.Col < 0 || pos.Line >= e.buf.LineCount() {
		return 0, ErrOutOfBounds
	}
	if pos.Col > e.buf.LineGraphemeCount(pos.Line) {
		return 0, ErrOutOfBounds
	}
	return e.buf.PositionToOffset(pos), nil
}

// applyLocked is the single mutation choke point. Callers resolve
// positions to a validated byte range first; from there every edit runs
// the same pipeline: buffer change, style remap, layout invalidation
// from the start of the edited line, undo record, new caret. The replay
// path for undo and redo passes record=false so the log is untouched.
func (e *Editor) applyLocked(r buffer.Range, text string, before buffer.Position, record bool) (buffer.Position, error) {
	result, err := e.buf.ApplyEdit(buffer.Edit{Range: r, NewText: text})
	if err != nil {
		return buffer.Position{}, err
	}

	if !result.OldRange.IsEmpty() {
		e.styles.ShiftDelete(result.OldRange)
	}
	if len(result.NewText) > 0 {
		e.styles.ShiftInsert(result.OldRange.Start, len(result.NewText))
	}

	// Layout tables are keyed by line start, so the invalidation
	// boundary is the start of the line containing the edit: that
	// line's entries are stale too. The prefix before the edit is
	// unchanged, so the line start is the same in both revisions.
	line := e.buf.OffsetToPosition(result.OldRange.Start).Line
	e.cache.InvalidateFrom(e.buf.LineStartOffset(line))

	after := e.buf.OffsetToPosition(result.NewRange.End)
	if record {
		rec := history.NewRecord(result.OldRange, result.OldText, result.NewText).
			WithPositions(before, after)
		e.log.Push(rec)
	}
	return after, nil
}

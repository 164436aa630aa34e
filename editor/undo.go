package editor

import (
	"github.com/tborchert/inkline/buffer"
	"github.com/tborchert/inkline/history"
)

// BeginSequence opens an atomic undo sequence: every edit until the
// matching EndSequence undoes as one unit. Sequences do not nest; a
// second Begin fails with ErrSequenceOpen.
func (e *Editor) BeginSequence(name string) error {
	return e.log.BeginSequence(name)
}

// EndSequence closes the open sequence. Fails with ErrNoOpenSequence
// when none is open.
func (e *Editor) EndSequence() error {
	return e.log.EndSequence()
}

// CancelSequence abandons the open sequence and reverts the edits made
// inside it.
func (e *Editor) CancelSequence() {
	e.rollback(e.log.CancelSequence())
}

// IsSequenceOpen returns true between BeginSequence and EndSequence.
func (e *Editor) IsSequenceOpen() bool {
	return e.log.IsSequenceOpen()
}

// Transaction runs fn inside an atomic sequence. When fn fails, the
// edits it made are reverted and its error returned.
func (e *Editor) Transaction(name string, fn func() error) error {
	if err := e.BeginSequence(name); err != nil {
		return err
	}
	if err := fn(); err != nil {
		e.CancelSequence()
		return err
	}
	return e.EndSequence()
}

// Undo reverts the most recent atomic sequence and returns the caret
// position from before it. It reports false when there is nothing to
// undo, a sequence is open, or the editor is read-only.
func (e *Editor) Undo() (buffer.Position, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return buffer.Position{}, false
	}
	seq, err := e.log.Undo()
	if err != nil {
		return buffer.Position{}, false
	}
	if err := e.applySequenceLocked(seq.Invert()); err != nil {
		return buffer.Position{}, false
	}
	return e.buf.ClampPosition(seq[0].Before), true
}

// Redo re-applies the most recently undone sequence and returns the
// caret position from after it. It reports false when there is nothing
// to redo, a sequence is open, or the editor is read-only.
func (e *Editor) Redo() (buffer.Position, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return buffer.Position{}, false
	}
	seq, err := e.log.Redo()
	if err != nil {
		return buffer.Position{}, false
	}
	if err := e.applySequenceLocked(seq); err != nil {
		return buffer.Position{}, false
	}
	return e.buf.ClampPosition(seq[len(seq)-1].After), true
}

// CanUndo returns true if undo is available.
func (e *Editor) CanUndo() bool {
	return e.log.CanUndo()
}

// CanRedo returns true if redo is available.
func (e *Editor) CanRedo() bool {
	return e.log.CanRedo()
}

// UndoCount returns the number of undoable sequences.
func (e *Editor) UndoCount() int {
	return e.log.UndoCount()
}

// RedoCount returns the number of redoable sequences.
func (e *Editor) RedoCount() int {
	return e.log.RedoCount()
}

// PeekUndo describes the next undo unit without removing it.
func (e *Editor) PeekUndo() (history.SequenceInfo, bool) {
	return e.log.PeekUndo()
}

// PeekRedo describes the next redo unit without removing it.
func (e *Editor) PeekRedo() (history.SequenceInfo, bool) {
	return e.log.PeekRedo()
}

// ClearHistory drops all undo and redo state. The text is untouched.
func (e *Editor) ClearHistory() {
	e.log.Clear()
}

// Checkpoint marks the current undo depth for UndoToCheckpoint.
func (e *Editor) Checkpoint() history.Checkpoint {
	return e.log.CreateCheckpoint()
}

// UndoToCheckpoint unwinds history until the undo depth matches the
// checkpoint, returning the caret after the last step taken. It reports
// false if nothing was undone.
func (e *Editor) UndoToCheckpoint(cp history.Checkpoint) (buffer.Position, bool) {
	var pos buffer.Position
	undone := false
	for e.log.UndoCount() > cp.Depth() {
		p, ok := e.Undo()
		if !ok {
			break
		}
		pos, undone = p, true
	}
	return pos, undone
}

// applySequenceLocked replays records in order through the choke point
// without touching the log. Records replay against the exact buffer
// state they were captured from; an error aborts the replay.
func (e *Editor) applySequenceLocked(seq history.Sequence) error {
	for _, rec := range seq {
		if _, err := e.applyLocked(rec.Range, rec.NewText, rec.Before, false); err != nil {
			return err
		}
	}
	return nil
}

// rollback reverts discarded records without recording the reversal.
func (e *Editor) rollback(recs history.Sequence) {
	if len(recs) == 0 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	_ = e.applySequenceLocked(recs.Invert())
}

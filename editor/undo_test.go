package editor

import (
	"errors"
	"testing"

	"github.com/tborchert/inkline/buffer"
)

func TestUndoRedoInvertibility(t *testing.T) {
	e := New(WithText("one\ntwo"))
	original := e.Text()

	steps := []func() (buffer.Position, error){
		func() (buffer.Position, error) {
			return e.InsertString(buffer.Position{Line: 0, Col: 3}, "X")
		},
		func() (buffer.Position, error) {
			return e.DeleteBackward(buffer.Position{Line: 1, Col: 2})
		},
		func() (buffer.Position, error) {
			return e.ReplaceRange(buffer.PositionRange{
				Start: buffer.Position{Line: 0, Col: 0},
				End:   buffer.Position{Line: 0, Col: 1},
			}, "ab")
		},
		func() (buffer.Position, error) {
			return e.InsertNewline(buffer.Position{Line: 1, Col: 1})
		},
	}
	for i, step := range steps {
		if _, err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	edited := e.Text()

	for i := range steps {
		if _, ok := e.Undo(); !ok {
			t.Fatalf("undo %d failed", i)
		}
	}
	if got := e.Text(); got != original {
		t.Fatalf("after undos: %q, want %q", got, original)
	}
	if e.CanUndo() {
		t.Error("history should be exhausted")
	}

	for i := range steps {
		if _, ok := e.Redo(); !ok {
			t.Fatalf("redo %d failed", i)
		}
	}
	if got := e.Text(); got != edited {
		t.Fatalf("after redos: %q, want %q", got, edited)
	}
}

func TestAtomicGrouping(t *testing.T) {
	e := New()

	if err := e.BeginSequence("typing"); err != nil {
		t.Fatalf("BeginSequence: %v", err)
	}
	for i, ch := range "abc" {
		if _, err := e.InsertChar(buffer.Position{Line: 0, Col: i}, ch); err != nil {
			t.Fatalf("insert %c: %v", ch, err)
		}
	}
	if err := e.EndSequence(); err != nil {
		t.Fatalf("EndSequence: %v", err)
	}

	if e.UndoCount() != 1 {
		t.Fatalf("UndoCount = %d, want 1", e.UndoCount())
	}
	if info, ok := e.PeekUndo(); !ok || info.Name != "typing" || info.Records != 3 {
		t.Errorf("PeekUndo = %+v, %v", info, ok)
	}

	pos, ok := e.Undo()
	if !ok || e.Text() != "" {
		t.Fatalf("undo: ok=%v text=%q", ok, e.Text())
	}
	if pos != (buffer.Position{}) {
		t.Errorf("cursor = %v, want (0:0)", pos)
	}

	pos, ok = e.Redo()
	if !ok || e.Text() != "abc" {
		t.Fatalf("redo: ok=%v text=%q", ok, e.Text())
	}
	if pos != (buffer.Position{Line: 0, Col: 3}) {
		t.Errorf("cursor = %v, want (0:3)", pos)
	}
}

func TestRedoInvalidation(t *testing.T) {
	e := New(WithText("ab"))

	e.InsertChar(buffer.Position{Line: 0, Col: 2}, 'c')
	if _, ok := e.Undo(); !ok {
		t.Fatal("undo failed")
	}
	if !e.CanRedo() {
		t.Fatal("expected redo to be available")
	}

	if _, err := e.InsertChar(buffer.Position{}, 'z'); err != nil {
		t.Fatal(err)
	}
	if e.CanRedo() {
		t.Error("new edit should discard the redo tail")
	}
	if _, ok := e.Redo(); ok {
		t.Error("redo after a new edit should be a no-op")
	}
	if e.Text() != "zab" {
		t.Errorf("text = %q, want %q", e.Text(), "zab")
	}
}

func TestUndoEmptyNoop(t *testing.T) {
	e := New()

	if _, ok := e.Undo(); ok {
		t.Error("undo on empty history should report false")
	}
	if _, ok := e.Redo(); ok {
		t.Error("redo on empty history should report false")
	}
}

func TestSequenceGuards(t *testing.T) {
	e := New()

	if err := e.BeginSequence("outer"); err != nil {
		t.Fatalf("BeginSequence: %v", err)
	}
	if err := e.BeginSequence("inner"); !errors.Is(err, ErrSequenceOpen) {
		t.Errorf("nested begin: err = %v, want ErrSequenceOpen", err)
	}

	e.InsertChar(buffer.Position{}, 'a')
	if _, ok := e.Undo(); ok {
		t.Error("undo inside an open sequence should report false")
	}

	if err := e.EndSequence(); err != nil {
		t.Fatalf("EndSequence: %v", err)
	}
	if err := e.EndSequence(); !errors.Is(err, ErrNoOpenSequence) {
		t.Errorf("unmatched end: err = %v, want ErrNoOpenSequence", err)
	}

	if _, ok := e.Undo(); !ok || e.Text() != "" {
		t.Errorf("undo after end: text = %q", e.Text())
	}
}

func TestCancelSequenceReverts(t *testing.T) {
	e := New(WithText("base"))

	if err := e.BeginSequence("aborted"); err != nil {
		t.Fatal(err)
	}
	e.InsertString(buffer.Position{Line: 0, Col: 4}, "+one")
	e.InsertString(buffer.Position{Line: 0, Col: 8}, "+two")
	if e.Text() != "base+one+two" {
		t.Fatalf("setup: text = %q", e.Text())
	}

	e.CancelSequence()

	if e.Text() != "base" {
		t.Errorf("cancel should revert edits, text = %q", e.Text())
	}
	if e.IsSequenceOpen() {
		t.Error("cancel should close the sequence")
	}
	if e.UndoCount() != 0 {
		t.Error("cancelled edits should not be undoable")
	}
}

func TestTransaction(t *testing.T) {
	e := New(WithText("hello world"))

	err := e.Transaction("replace word", func() error {
		if _, err := e.DeleteRange(buffer.PositionRange{
			Start: buffer.Position{Line: 0, Col: 0},
			End:   buffer.Position{Line: 0, Col: 5},
		}); err != nil {
			return err
		}
		_, err := e.InsertString(buffer.Position{}, "howdy")
		return err
	})
	if err != nil {
		t.Fatalf("Transaction: %v", err)
	}
	if e.Text() != "howdy world" {
		t.Fatalf("text = %q", e.Text())
	}
	if e.UndoCount() != 1 {
		t.Fatalf("UndoCount = %d, want 1", e.UndoCount())
	}

	if _, ok := e.Undo(); !ok || e.Text() != "hello world" {
		t.Errorf("undo restored %q", e.Text())
	}
}

func TestTransactionError(t *testing.T) {
	e := New(WithText("abc"))
	boom := errors.New("boom")

	err := e.Transaction("failing", func() error {
		if _, err := e.InsertString(buffer.Position{Line: 0, Col: 3}, "def"); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}

	if e.Text() != "abc" {
		t.Errorf("failed transaction should revert, text = %q", e.Text())
	}
	if e.UndoCount() != 0 {
		t.Error("failed transaction should not record")
	}
	if e.IsSequenceOpen() {
		t.Error("failed transaction should close the sequence")
	}
}

func TestCheckpointUnwind(t *testing.T) {
	e := New()

	e.InsertChar(buffer.Position{}, 'a')
	e.InsertChar(buffer.Position{Line: 0, Col: 1}, 'b')
	cp := e.Checkpoint()
	e.InsertChar(buffer.Position{Line: 0, Col: 2}, 'c')
	e.InsertChar(buffer.Position{Line: 0, Col: 3}, 'd')

	pos, ok := e.UndoToCheckpoint(cp)
	if !ok {
		t.Fatal("expected something to undo")
	}
	if e.Text() != "ab" {
		t.Errorf("text = %q, want %q", e.Text(), "ab")
	}
	if pos != (buffer.Position{Line: 0, Col: 2}) {
		t.Errorf("cursor = %v, want (0:2)", pos)
	}
	if e.UndoCount() != 2 {
		t.Errorf("UndoCount = %d, want 2", e.UndoCount())
	}

	// Already at the checkpoint: nothing to do.
	if _, ok := e.UndoToCheckpoint(cp); ok {
		t.Error("second unwind should report false")
	}
}

func TestUndoEviction(t *testing.T) {
	e := New(WithMaxUndo(2))

	for i, ch := range "abcd" {
		if _, err := e.InsertChar(buffer.Position{Line: 0, Col: i}, ch); err != nil {
			t.Fatal(err)
		}
	}
	if e.UndoCount() != 2 {
		t.Fatalf("UndoCount = %d, want 2", e.UndoCount())
	}

	e.Undo()
	e.Undo()
	if _, ok := e.Undo(); ok {
		t.Error("evicted edits should not be undoable")
	}
	if e.Text() != "ab" {
		t.Errorf("text = %q, want the evicted prefix to remain", e.Text())
	}
}

func TestUndoRestoresStyleShifts(t *testing.T) {
	e := New(WithText("0123456789"))
	e.Styles().Add(buffer.Range{Start: 2, End: 6}, 7)

	if _, err := e.InsertString(buffer.Position{Line: 0, Col: 4}, "XX"); err != nil {
		t.Fatal(err)
	}
	entries := e.Styles().Entries()
	if len(entries) != 1 || entries[0].Range != (buffer.Range{Start: 2, End: 8}) {
		t.Fatalf("after insert: %v", entries)
	}

	if _, ok := e.Undo(); !ok {
		t.Fatal("undo failed")
	}
	entries = e.Styles().Entries()
	if len(entries) != 1 || entries[0].Range != (buffer.Range{Start: 2, End: 6}) {
		t.Errorf("after undo: %v, want [2,6)", entries)
	}
}

package history

import (
	"errors"
	"fmt"
	"testing"

	"github.com/tborchert/inkline/buffer"
)

func TestNewRecord(t *testing.T) {
	r := NewRecord(buffer.Range{Start: 5, End: 10}, "hello", "world")

	if r.Range.Start != 5 || r.Range.End != 10 {
		t.Error("wrong range")
	}
	if r.OldText != "hello" || r.NewText != "world" {
		t.Error("wrong text")
	}
	if r.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
}

func TestRecordPredicates(t *testing.T) {
	insert := NewInsertRecord(5, "hello")
	if !insert.IsInsert() || insert.IsDelete() || insert.IsReplace() {
		t.Error("insert predicates wrong")
	}

	del := NewDeleteRecord(buffer.Range{Start: 5, End: 10}, "hello")
	if !del.IsDelete() || del.IsInsert() || del.IsReplace() {
		t.Error("delete predicates wrong")
	}

	replace := NewRecord(buffer.Range{Start: 5, End: 10}, "hello", "world")
	if !replace.IsReplace() || replace.IsInsert() || replace.IsDelete() {
		t.Error("replace predicates wrong")
	}

	if !NewRecord(buffer.Range{Start: 3, End: 3}, "", "").IsNoop() {
		t.Error("empty record should be a noop")
	}
}

func TestRecordDelta(t *testing.T) {
	tests := []struct {
		name     string
		rec      Record
		expected int
	}{
		{"insert", NewInsertRecord(0, "hello"), 5},
		{"delete", NewDeleteRecord(buffer.Range{Start: 0, End: 5}, "hello"), -5},
		{"replace longer", NewRecord(buffer.Range{Start: 0, End: 3}, "abc", "hello"), 2},
		{"replace shorter", NewRecord(buffer.Range{Start: 0, End: 5}, "hello", "hi"), -3},
		{"replace same", NewRecord(buffer.Range{Start: 0, End: 5}, "hello", "world"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.Delta(); got != tt.expected {
				t.Errorf("Delta() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestRecordInvert(t *testing.T) {
	r := NewRecord(buffer.Range{Start: 5, End: 10}, "hello", "planet").
		WithPositions(buffer.Position{Line: 0, Col: 5}, buffer.Position{Line: 0, Col: 11})

	inv := r.Invert()

	if inv.Range != (buffer.Range{Start: 5, End: 11}) {
		t.Errorf("inverted range = %v, want [5:11)", inv.Range)
	}
	if inv.OldText != "planet" || inv.NewText != "hello" {
		t.Error("inverted text wrong")
	}
	if inv.Before != (buffer.Position{Line: 0, Col: 11}) {
		t.Error("inverted Before should be original After")
	}
	if inv.After != (buffer.Position{Line: 0, Col: 5}) {
		t.Error("inverted After should be original Before")
	}

	// Inverting twice restores the original shape.
	back := inv.Invert()
	if back.Range != r.Range || back.OldText != r.OldText || back.NewText != r.NewText {
		t.Error("double inversion should restore the record")
	}
}

func TestSequenceInvert(t *testing.T) {
	seq := Sequence{
		NewInsertRecord(0, "aa"),
		NewInsertRecord(2, "bb"),
		NewInsertRecord(4, "cc"),
	}

	inv := seq.Invert()
	if len(inv) != 3 {
		t.Fatalf("inverted length %d", len(inv))
	}
	// Reverse order: the last insert is undone first.
	if inv[0].Range != (buffer.Range{Start: 4, End: 6}) || !inv[0].IsDelete() {
		t.Errorf("inv[0] = %+v", inv[0])
	}
	if inv[2].Range != (buffer.Range{Start: 0, End: 2}) {
		t.Errorf("inv[2] = %+v", inv[2])
	}

	if seq.Delta() != 6 {
		t.Errorf("sequence delta = %d, want 6", seq.Delta())
	}
}

func TestLogPushUndoRedo(t *testing.T) {
	l := NewLog(10)

	if l.CanUndo() || l.CanRedo() {
		t.Error("fresh log should be empty")
	}

	rec := NewInsertRecord(0, "hello")
	l.Push(rec)

	if !l.CanUndo() || l.UndoCount() != 1 {
		t.Error("push should enable undo")
	}

	seq, err := l.Undo()
	if err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if len(seq) != 1 || seq[0].NewText != "hello" {
		t.Errorf("undo returned %+v", seq)
	}
	if !l.CanRedo() || l.CanUndo() {
		t.Error("undo should move the entry to the redo side")
	}

	seq, err = l.Redo()
	if err != nil {
		t.Fatalf("redo failed: %v", err)
	}
	if len(seq) != 1 || seq[0].NewText != "hello" {
		t.Errorf("redo returned %+v", seq)
	}
	if !l.CanUndo() || l.CanRedo() {
		t.Error("redo should move the entry back")
	}
}

func TestLogUndoEmpty(t *testing.T) {
	l := NewLog(10)

	if _, err := l.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("expected ErrNothingToUndo, got %v", err)
	}
	if _, err := l.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("expected ErrNothingToRedo, got %v", err)
	}
}

func TestLogPushClearsRedo(t *testing.T) {
	l := NewLog(10)

	l.Push(NewInsertRecord(0, "a"))
	l.Push(NewInsertRecord(1, "b"))
	l.Undo()

	if !l.CanRedo() {
		t.Fatal("expected redo available")
	}

	l.Push(NewInsertRecord(1, "c"))
	if l.CanRedo() {
		t.Error("push should clear the redo side")
	}
	if l.UndoCount() != 2 {
		t.Errorf("undo count = %d, want 2", l.UndoCount())
	}
}

func TestLogEviction(t *testing.T) {
	l := NewLog(3)

	for i := 0; i < 5; i++ {
		l.Push(NewInsertRecord(i, fmt.Sprintf("%d", i)))
	}

	if l.UndoCount() != 3 {
		t.Fatalf("undo count = %d, want 3", l.UndoCount())
	}

	// The two oldest sequences fell off; the newest three remain.
	var texts []string
	for l.CanUndo() {
		seq, _ := l.Undo()
		texts = append(texts, seq[0].NewText)
	}
	want := []string{"4", "3", "2"}
	for i := range want {
		if texts[i] != want[i] {
			t.Errorf("undo order %v, want %v", texts, want)
			break
		}
	}
}

func TestLogSequence(t *testing.T) {
	l := NewLog(10)

	if err := l.BeginSequence("typing"); err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	if !l.IsSequenceOpen() {
		t.Error("sequence should be open")
	}

	l.Push(NewInsertRecord(0, "a"))
	l.Push(NewInsertRecord(1, "b"))
	l.Push(NewInsertRecord(2, "c"))

	if l.UndoCount() != 0 {
		t.Error("open sequence should not appear on the undo stack yet")
	}

	if err := l.EndSequence(); err != nil {
		t.Fatalf("end failed: %v", err)
	}
	if l.UndoCount() != 1 {
		t.Errorf("undo count = %d, want 1", l.UndoCount())
	}

	seq, err := l.Undo()
	if err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if len(seq) != 3 {
		t.Errorf("sequence length = %d, want 3", len(seq))
	}
}

func TestLogSequenceGuards(t *testing.T) {
	l := NewLog(10)

	if err := l.BeginSequence("one"); err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	if err := l.BeginSequence("two"); !errors.Is(err, ErrSequenceOpen) {
		t.Errorf("nested begin should fail, got %v", err)
	}

	l.Push(NewInsertRecord(0, "x"))
	if _, err := l.Undo(); !errors.Is(err, ErrSequenceOpen) {
		t.Errorf("undo during open sequence should fail, got %v", err)
	}

	if err := l.EndSequence(); err != nil {
		t.Fatalf("end failed: %v", err)
	}
	if err := l.EndSequence(); !errors.Is(err, ErrNoOpenSequence) {
		t.Errorf("unmatched end should fail, got %v", err)
	}
}

func TestLogEmptySequenceDiscarded(t *testing.T) {
	l := NewLog(10)

	l.BeginSequence("nothing")
	if err := l.EndSequence(); err != nil {
		t.Fatalf("end failed: %v", err)
	}
	if l.UndoCount() != 0 {
		t.Error("empty sequence should not be recorded")
	}
}

func TestLogCancelSequence(t *testing.T) {
	l := NewLog(10)

	l.BeginSequence("aborted")
	l.Push(NewInsertRecord(0, "x"))
	recs := l.CancelSequence()

	if l.IsSequenceOpen() {
		t.Error("cancel should close the sequence")
	}
	if l.UndoCount() != 0 {
		t.Error("cancelled sequence should not be recorded")
	}
	if len(recs) != 1 || recs[0].NewText != "x" {
		t.Errorf("cancel should hand back the discarded records, got %v", recs)
	}
}

func TestLogTransaction(t *testing.T) {
	l := NewLog(10)

	err := l.Transaction("batch", func() error {
		l.Push(NewInsertRecord(0, "a"))
		l.Push(NewInsertRecord(1, "b"))
		return nil
	})
	if err != nil {
		t.Fatalf("transaction failed: %v", err)
	}
	if l.UndoCount() != 1 {
		t.Errorf("undo count = %d, want 1", l.UndoCount())
	}

	failure := errors.New("boom")
	err = l.Transaction("failing", func() error {
		l.Push(NewInsertRecord(0, "x"))
		return failure
	})
	if !errors.Is(err, failure) {
		t.Errorf("transaction should propagate the error, got %v", err)
	}
	if l.UndoCount() != 1 {
		t.Error("failed transaction should not be recorded")
	}
	if l.IsSequenceOpen() {
		t.Error("failed transaction should close the sequence")
	}
}

func TestLogPeekAndInfo(t *testing.T) {
	l := NewLog(10)

	if _, ok := l.PeekUndo(); ok {
		t.Error("peek on empty log should report false")
	}

	l.BeginSequence("rename")
	l.Push(NewRecord(buffer.Range{Start: 0, End: 3}, "foo", "foobar"))
	l.Push(NewRecord(buffer.Range{Start: 10, End: 13}, "foo", "foobar"))
	l.EndSequence()

	info, ok := l.PeekUndo()
	if !ok {
		t.Fatal("expected peek to succeed")
	}
	if info.Name != "rename" || info.Records != 2 || info.Delta != 6 {
		t.Errorf("info = %+v", info)
	}

	all := l.UndoInfo()
	if len(all) != 1 || all[0].Name != "rename" {
		t.Errorf("UndoInfo = %+v", all)
	}
}

func TestLogClear(t *testing.T) {
	l := NewLog(10)

	l.Push(NewInsertRecord(0, "a"))
	l.Undo()
	l.BeginSequence("open")
	l.Clear()

	if l.CanUndo() || l.CanRedo() || l.IsSequenceOpen() {
		t.Error("clear should drop everything")
	}
}

func TestLogSetMaxEntries(t *testing.T) {
	l := NewLog(10)

	for i := 0; i < 10; i++ {
		l.Push(NewInsertRecord(i, "x"))
	}

	l.SetMaxEntries(4)
	if l.UndoCount() != 4 {
		t.Errorf("undo count = %d, want 4", l.UndoCount())
	}
	if l.MaxEntries() != 4 {
		t.Errorf("max entries = %d, want 4", l.MaxEntries())
	}
}

func TestLogCheckpoint(t *testing.T) {
	l := NewLog(10)

	l.Push(NewInsertRecord(0, "a"))
	cp := l.CreateCheckpoint()
	if cp.Depth() != 1 {
		t.Errorf("checkpoint depth = %d, want 1", cp.Depth())
	}

	l.Push(NewInsertRecord(1, "b"))
	l.Push(NewInsertRecord(2, "c"))

	// Unwinding to the checkpoint is two undos.
	for l.UndoCount() > cp.Depth() {
		if _, err := l.Undo(); err != nil {
			t.Fatalf("undo failed: %v", err)
		}
	}
	if l.UndoCount() != 1 {
		t.Errorf("undo count = %d, want 1", l.UndoCount())
	}
}

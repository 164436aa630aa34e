package history

import (
	"errors"
	"sync"
	"time"
)

// Errors returned by log operations.
var (
	ErrNothingToUndo  = errors.New("nothing to undo")
	ErrNothingToRedo  = errors.New("nothing to redo")
	ErrSequenceOpen   = errors.New("a sequence is already open")
	ErrNoOpenSequence = errors.New("no sequence is open")
)

// entry is one undo unit on a stack.
type entry struct {
	name    string
	records Sequence
	at      time.Time
}

// Log is a bounded undo/redo log. It stores sequences of records; it
// never applies them. All methods are safe for concurrent use, though a
// single goroutine normally owns the edit path.
type Log struct {
	mu sync.Mutex

	undo []entry
	redo []entry

	// Open sequence state.
	open     bool
	openName string
	openRecs Sequence

	maxEntries int
}

// DefaultMaxEntries bounds the log when NewLog gets a non-positive
// capacity.
const DefaultMaxEntries = 1000

// NewLog creates a log holding at most maxEntries undo sequences.
func NewLog(maxEntries int) *Log {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Log{maxEntries: maxEntries}
}

// Push records an applied edit. Inside an open sequence the record
// joins it; otherwise it forms a single-record sequence. Pushing always
// discards the redo side: once the document diverges, the old future is
// unreachable.
func (l *Log) Push(rec Record) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.redo = nil

	if l.open {
		l.openRecs = append(l.openRecs, rec)
		return
	}

	l.pushLocked(entry{records: Sequence{rec}, at: rec.Timestamp})
}

func (l *Log) pushLocked(e entry) {
	l.undo = append(l.undo, e)
	l.redo = nil

	if len(l.undo) > l.maxEntries {
		excess := len(l.undo) - l.maxEntries
		l.undo = append([]entry(nil), l.undo[excess:]...)
	}
}

// BeginSequence opens a sequence so that following pushes form one undo
// unit. Returns ErrSequenceOpen if one is already open; sequences do
// not nest.
func (l *Log) BeginSequence(name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.open {
		return ErrSequenceOpen
	}

	l.open = true
	l.openName = name
	l.openRecs = nil
	return nil
}

// EndSequence closes the open sequence and pushes it as one unit. An
// empty sequence is discarded. Returns ErrNoOpenSequence if none is
// open.
func (l *Log) EndSequence() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.open {
		return ErrNoOpenSequence
	}

	l.open = false
	if len(l.openRecs) == 0 {
		l.openRecs = nil
		return nil
	}

	l.pushLocked(entry{name: l.openName, records: l.openRecs, at: time.Now()})
	l.openRecs = nil
	return nil
}

// CancelSequence closes the open sequence without recording it and
// returns the discarded records. The edits themselves stay applied; the
// caller reverts them with the returned sequence if needed.
func (l *Log) CancelSequence() Sequence {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.open = false
	recs := l.openRecs
	l.openRecs = nil
	return recs
}

// IsSequenceOpen returns true while between BeginSequence and
// EndSequence.
func (l *Log) IsSequenceOpen() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.open
}

// Transaction runs fn inside a sequence. On error the sequence is
// cancelled and the error returned; the caller still owns reverting any
// applied records.
func (l *Log) Transaction(name string, fn func() error) error {
	if err := l.BeginSequence(name); err != nil {
		return err
	}
	if err := fn(); err != nil {
		l.CancelSequence()
		return err
	}
	return l.EndSequence()
}

// Undo pops the most recent sequence and moves it to the redo side. The
// caller applies the sequence's inversion to the buffer. Undoing with a
// sequence open is an error: the unit is not complete yet.
func (l *Log) Undo() (Sequence, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.open {
		return nil, ErrSequenceOpen
	}
	if len(l.undo) == 0 {
		return nil, ErrNothingToUndo
	}

	e := l.undo[len(l.undo)-1]
	l.undo = l.undo[:len(l.undo)-1]
	l.redo = append(l.redo, e)
	return e.records, nil
}

// Redo pops the most recently undone sequence and moves it back to the
// undo side. The caller applies the sequence forward.
func (l *Log) Redo() (Sequence, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.open {
		return nil, ErrSequenceOpen
	}
	if len(l.redo) == 0 {
		return nil, ErrNothingToRedo
	}

	e := l.redo[len(l.redo)-1]
	l.redo = l.redo[:len(l.redo)-1]
	l.undo = append(l.undo, e)
	return e.records, nil
}

// CanUndo returns true if undo is available.
func (l *Log) CanUndo() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.undo) > 0
}

// CanRedo returns true if redo is available.
func (l *Log) CanRedo() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.redo) > 0
}

// UndoCount returns the number of undoable sequences.
func (l *Log) UndoCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.undo)
}

// RedoCount returns the number of redoable sequences.
func (l *Log) RedoCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.redo)
}

// Clear drops all history, including any open sequence.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.undo = nil
	l.redo = nil
	l.open = false
	l.openRecs = nil
}

// SequenceInfo describes one undo unit for display.
type SequenceInfo struct {
	Name      string
	Records   int
	Delta     int
	Timestamp time.Time
}

func (e entry) info() SequenceInfo {
	return SequenceInfo{
		Name:      e.name,
		Records:   len(e.records),
		Delta:     e.records.Delta(),
		Timestamp: e.at,
	}
}

// PeekUndo describes the next undo unit without removing it.
func (l *Log) PeekUndo() (SequenceInfo, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.undo) == 0 {
		return SequenceInfo{}, false
	}
	return l.undo[len(l.undo)-1].info(), true
}

// PeekRedo describes the next redo unit without removing it.
func (l *Log) PeekRedo() (SequenceInfo, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.redo) == 0 {
		return SequenceInfo{}, false
	}
	return l.redo[len(l.redo)-1].info(), true
}

// UndoInfo lists all undoable sequences, oldest first.
func (l *Log) UndoInfo() []SequenceInfo {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]SequenceInfo, len(l.undo))
	for i, e := range l.undo {
		out[i] = e.info()
	}
	return out
}

// RedoInfo lists all redoable sequences, oldest first.
func (l *Log) RedoInfo() []SequenceInfo {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]SequenceInfo, len(l.redo))
	for i, e := range l.redo {
		out[i] = e.info()
	}
	return out
}

// SetMaxEntries changes the log's capacity, evicting oldest sequences
// if the stack is over the new bound.
func (l *Log) SetMaxEntries(n int) {
	if n <= 0 {
		n = DefaultMaxEntries
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.maxEntries = n
	if len(l.undo) > n {
		excess := len(l.undo) - n
		l.undo = append([]entry(nil), l.undo[excess:]...)
	}
}

// MaxEntries returns the log's capacity in sequences.
func (l *Log) MaxEntries() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.maxEntries
}

// Checkpoint marks a depth in the undo stack that a caller can unwind
// back to, such as the state before a failed composite operation.
type Checkpoint struct {
	depth int
}

// CreateCheckpoint captures the current undo depth.
func (l *Log) CreateCheckpoint() Checkpoint {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Checkpoint{depth: len(l.undo)}
}

// Depth returns the undo depth the checkpoint was taken at.
func (c Checkpoint) Depth() int {
	return c.depth
}

// Package history provides a bounded undo/redo log for the editing
// engine.
//
// The log stores records, not commands: each Record captures one edit's
// range, old and new text, and the cursor position before and after.
// The engine that owns the buffer replays records (or their inversions)
// through its own mutation path, so the log never touches text itself.
//
// # Records
//
// A Record is one atomic edit with before/after state:
//   - The byte range that was modified
//   - The old and new text
//   - Cursor positions before and after
//
// Invert flips a record so that applying the inversion undoes the edit.
//
// # Sequences
//
// Every undo step is a Sequence of one or more records that apply and
// revert as a unit. Single edits form single-record sequences on Push;
// compound operations bracket their records explicitly:
//
//	log.BeginSequence("replace all")
//	// ... push a record per replacement ...
//	log.EndSequence()
//
// One undo now reverts the whole batch. BeginSequence while a sequence
// is open is an error, as is EndSequence without one; the bracketing is
// strict so a missed End cannot silently glue later edits onto an old
// sequence.
//
// # The log
//
//	log := history.NewLog(1000) // keep at most 1000 sequences
//
//	log.Push(rec)
//	seq, _ := log.Undo() // caller applies seq.Invert() to the buffer
//	seq, _ = log.Redo()  // caller applies seq forward
//
// Pushing a new record discards the redo side, and the oldest sequence
// falls off once the log is full.
package history

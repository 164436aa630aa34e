// Package rope implements an immutable rope for storing and editing text.
//
// The rope is a B+ tree whose leaves hold bounded text chunks and whose
// internal nodes carry aggregated metrics (byte count, newline count, line
// lengths). Edits split and rejoin subtrees rather than moving bytes, so
// insertion and deletion cost O(log n) regardless of document size.
//
// All operations return new Rope values; a Rope is never modified in place.
// Structural sharing between the old and new trees makes snapshots cheap and
// concurrent reads safe without locking.
//
//	r := rope.FromString("hello world")
//	r = r.Insert(5, ",")  // "hello, world"
//	r = r.Delete(0, 6)    // "world"
package rope

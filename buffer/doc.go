// Package buffer provides a thread-safe text buffer over a swappable
// storage backend. It is the primary surface for text access and
// mutation in the editing engine.
//
// The buffer package provides:
//
//   - Thread-safe read/write access via sync.RWMutex
//   - A Store interface with two backends: a rope for documents and a
//     flat string for short single-line inputs
//   - Coordinate conversion between byte offsets, grapheme-column
//     positions, and UTF-16 columns
//   - Read-only snapshots for concurrent access
//   - Line ending detection and normalization (LF and CRLF)
//   - Grapheme and word navigation queries
//   - Revision tracking for cache invalidation
//
// Basic usage:
//
//	buf := buffer.NewFromString("Hello, World!")
//
//	buf.Insert(7, "Beautiful ") // "Hello, Beautiful World!"
//	buf.Delete(0, 7)            // "Beautiful World!"
//
//	snap := buf.Snapshot()
//	go func() {
//	    text := snap.Text()
//	    // Process text...
//	}()
//
// Coordinates:
//
// Three coordinate systems index the same text:
//
//   - Byte offsets: raw positions into the UTF-8 encoding. Mutators take
//     byte offsets and reject positions that would split a UTF-8
//     sequence (or a grapheme cluster under WithStrictBoundaries).
//   - Position: 0-indexed line plus a column counted in grapheme
//     clusters. This is the model cursors and selections use; queries
//     taking a Position clamp it rather than fail.
//   - PointUTF16: line plus UTF-16 code-unit column, for protocol
//     compatibility.
//
// Thread safety:
//
// All Buffer methods are safe for concurrent use. Read operations take a
// read lock, mutations an exclusive lock. For several reads that must
// observe one consistent state, take a Snapshot.
package buffer

// Package stylemap maintains tagged byte ranges over a text buffer.
//
// A Map associates half-open byte ranges with small integer style tags
// (selection ids, search-match ids, syntax classes). Entries may overlap
// freely; a single byte can carry any number of tags. The map is kept
// sorted by range start, so point and range queries stop as soon as no
// later entry can match.
//
// Two query levels exist. ValuesAt and ValuesIn walk the full map.
// ValuesAtPage answers point queries against a cached sub-map restricted
// to the current page window (the on-screen byte range) and only rebuilds
// that sub-map when the window moves or the map changes, which keeps
// per-frame lookups cheap for large documents.
//
// After a buffer edit the map must be brought back in line with the new
// byte offsets: ShiftInsert and ShiftDelete apply the standard endpoint
// arithmetic for insertions and deletions, and Remap accepts an arbitrary
// relocation function. Entries that land entirely inside a deleted span
// are dropped.
//
// The map never reads the buffer; callers are responsible for calling the
// shift operations on every edit, in edit order.
package stylemap

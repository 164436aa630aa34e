package stylemap

import "github.com/tborchert/inkline/buffer"

// RemapFunc relocates one entry after a buffer edit. Returning false
// drops the entry.
type RemapFunc func(r buffer.Range, tag int) (buffer.Range, bool)

// Remap applies fn to every entry. Entries for which fn returns false,
// and entries whose relocated range comes back empty or inverted, are
// dropped. The map is re-sorted afterwards and duplicates produced by
// the relocation are collapsed.
func (m *Map) Remap(fn RemapFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.entries[:0]
	for _, e := range m.entries {
		nr, ok := fn(e.Range, e.Tag)
		if !ok || nr.IsEmpty() || !nr.IsValid() {
			continue
		}
		kept = append(kept, Entry{Range: nr, Tag: e.Tag})
	}
	m.entries = kept
	m.restoreOrderLocked()
	m.page.valid = false
}

// ShiftInsert remaps every entry for an insertion of n bytes at offset
// p. Endpoints before p stay put; endpoints at or after p move right by
// n.
func (m *Map) ShiftInsert(p, n int) {
	if n <= 0 {
		return
	}
	m.Remap(func(r buffer.Range, _ int) (buffer.Range, bool) {
		return buffer.Range{
			Start: shiftForInsert(r.Start, p, n),
			End:   shiftForInsert(r.End, p, n),
		}, true
	})
}

// ShiftDelete remaps every entry for the deletion of the byte range del.
// Endpoints before the deleted span stay put, endpoints inside it
// collapse to its start, and endpoints after it move left by the deleted
// length. Entries lying entirely inside the span are dropped.
func (m *Map) ShiftDelete(del buffer.Range) {
	if del.IsEmpty() || !del.IsValid() {
		return
	}
	m.Remap(func(r buffer.Range, _ int) (buffer.Range, bool) {
		nr := buffer.Range{
			Start: shiftForDelete(r.Start, del),
			End:   shiftForDelete(r.End, del),
		}
		return nr, !nr.IsEmpty()
	})
}

func shiftForInsert(e, p, n int) int {
	if e < p {
		return e
	}
	return e + n
}

func shiftForDelete(e int, del buffer.Range) int {
	switch {
	case e < del.Start:
		return e
	case e < del.End:
		return del.Start
	default:
		return e - del.Len()
	}
}

package stylemap

import "github.com/tborchert/inkline/buffer"

// pageWindow caches the sub-map restricted to the current page range.
// Rebuilt when the window moves or the map mutates; never when the same
// window is queried again.
type pageWindow struct {
	rng     buffer.Range
	entries []Entry
	valid   bool
}

// ValuesAtPage returns the tags at pos, consulting only entries that
// overlap the page window. The window sub-map is cached across calls
// and rebuilt when page differs from the previous call's window, so
// repeated per-frame queries over a stable viewport avoid walking the
// full map.
//
// Tags are appended to out, which may be nil; the (possibly regrown)
// slice is returned, letting render loops reuse one allocation. pos is
// expected to lie within page — positions outside it only see entries
// that happen to overlap the window.
func (m *Map) ValuesAtPage(pos int, page buffer.Range, out []int) []int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.page.valid || m.page.rng != page {
		m.page.rng = page
		m.page.entries = m.valuesInLocked(page, nil)
		m.page.valid = true
	}

	out = out[:0]
	for _, e := range m.page.entries {
		if e.Range.Start > pos {
			break
		}
		if e.Range.Contains(pos) {
			out = append(out, e.Tag)
		}
	}
	return out
}

// PageWindow returns the currently cached page range and whether the
// cache is valid. Mainly useful to render layers deciding when to
// requery.
func (m *Map) PageWindow() (buffer.Range, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.page.rng, m.page.valid
}

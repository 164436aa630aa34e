package stylemap

import (
	"sort"
	"sync"

	"github.com/tborchert/inkline/buffer"
)

// Entry is one tagged byte range.
type Entry struct {
	Range buffer.Range
	Tag   int
}

// Map is an ordered collection of tagged byte ranges. Entries are kept
// sorted by (start, end, tag) and may overlap. The zero value is not
// usable; call New.
type Map struct {
	mu      sync.RWMutex
	entries []Entry
	page    pageWindow
}

// New creates an empty style range map.
func New() *Map {
	return &Map{}
}

// Add inserts an entry for the given range and tag. Empty and inverted
// ranges are ignored, as are exact duplicates of an existing entry.
func (m *Map) Add(r buffer.Range, tag int) {
	if r.IsEmpty() || !r.IsValid() {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.searchLocked(r, tag)
	if i < len(m.entries) && m.entries[i].Range == r && m.entries[i].Tag == tag {
		return
	}

	m.entries = append(m.entries, Entry{})
	copy(m.entries[i+1:], m.entries[i:])
	m.entries[i] = Entry{Range: r, Tag: tag}
	m.page.valid = false
}

// Remove deletes the entry matching both range and tag exactly. It
// reports whether an entry was removed.
func (m *Map) Remove(r buffer.Range, tag int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.searchLocked(r, tag)
	if i >= len(m.entries) || m.entries[i].Range != r || m.entries[i].Tag != tag {
		return false
	}

	m.entries = append(m.entries[:i], m.entries[i+1:]...)
	m.page.valid = false
	return true
}

// RemoveTag deletes every entry carrying the given tag and returns the
// number removed. Used to clear a whole class of marks, such as stale
// search matches.
func (m *Map) RemoveTag(tag int) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.entries[:0]
	removed := 0
	for _, e := range m.entries {
		if e.Tag == tag {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	m.entries = kept
	if removed > 0 {
		m.page.valid = false
	}
	return removed
}

// Clear removes all entries.
func (m *Map) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
	m.page = pageWindow{}
}

// Len returns the number of entries.
func (m *Map) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Entries returns a copy of all entries in map order.
func (m *Map) Entries() []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.entries) == 0 {
		return nil
	}
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// ValuesAt returns the tags of every entry whose range contains the
// given byte position, in map order.
func (m *Map) ValuesAt(pos int) []int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var tags []int
	for _, e := range m.entries {
		if e.Range.Start > pos {
			break
		}
		if e.Range.Contains(pos) {
			tags = append(tags, e.Tag)
		}
	}
	return tags
}

// ValuesIn returns every entry overlapping the given range, in map
// order. Passing one or more tags restricts the result to entries
// carrying any of them.
func (m *Map) ValuesIn(r buffer.Range, tags ...int) []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.valuesInLocked(r, tags)
}

func (m *Map) valuesInLocked(r buffer.Range, tags []int) []Entry {
	var out []Entry
	for _, e := range m.entries {
		if e.Range.Start >= r.End {
			break
		}
		if !e.Range.Overlaps(r) {
			continue
		}
		if len(tags) > 0 && !matchesTag(e.Tag, tags) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func matchesTag(tag int, filter []int) bool {
	for _, t := range filter {
		if t == tag {
			return true
		}
	}
	return false
}

// searchLocked returns the sorted insertion index for (r, tag).
func (m *Map) searchLocked(r buffer.Range, tag int) int {
	return sort.Search(len(m.entries), func(i int) bool {
		e := m.entries[i]
		if e.Range.Start != r.Start {
			return e.Range.Start > r.Start
		}
		if e.Range.End != r.End {
			return e.Range.End > r.End
		}
		return e.Tag >= tag
	})
}

// restoreOrderLocked re-sorts the entries and collapses exact duplicates.
// Needed after a remap, whose relocation function may reorder entries or
// map two of them onto the same range.
func (m *Map) restoreOrderLocked() {
	sort.Slice(m.entries, func(i, j int) bool {
		a, b := m.entries[i], m.entries[j]
		if a.Range.Start != b.Range.Start {
			return a.Range.Start < b.Range.Start
		}
		if a.Range.End != b.Range.End {
			return a.Range.End < b.Range.End
		}
		return a.Tag < b.Tag
	})

	out := m.entries[:0]
	for i, e := range m.entries {
		if i > 0 && e == m.entries[i-1] {
			continue
		}
		out = append(out, e)
	}
	m.entries = out
}

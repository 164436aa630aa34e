package layout

import (
	"hash/fnv"
	"math"
	"sync"
	"sync/atomic"
)

// DefaultMaxEntries bounds each memo table unless overridden.
const DefaultMaxEntries = 1024

type widthEntry struct {
	hash   uint64
	width  int
	access uint64
}

type startEntry struct {
	hash   uint64
	first  int
	access uint64
}

type breakEntry struct {
	hash   uint64
	breaks []int
	access uint64
}

// Cache memoizes per-line layout measurements, keyed by line start byte
// offset and validated against a content hash. See the package comment
// for the invalidation rules.
type Cache struct {
	mu         sync.RWMutex
	cfg        Config
	tabWidth   int
	maxEntries int
	clock      uint64

	widths map[int]*widthEntry
	starts map[int]*startEntry
	breaks map[int]*breakEntry

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// Option configures a Cache.
type Option func(*Cache)

// WithMaxEntries sets the per-table entry limit.
func WithMaxEntries(n int) Option {
	return func(c *Cache) {
		if n > 0 {
			c.maxEntries = n
		}
	}
}

// WithTabWidth sets the tab stop width in cells.
func WithTabWidth(w int) Option {
	return func(c *Cache) {
		if w >= 1 {
			c.tabWidth = w
		}
	}
}

// WithConfig sets the initial rendering configuration.
func WithConfig(cfg Config) Option {
	return func(c *Cache) {
		c.cfg = cfg
	}
}

// NewCache creates an empty layout cache.
func NewCache(opts ...Option) *Cache {
	c := &Cache{
		tabWidth:   4,
		maxEntries: DefaultMaxEntries,
		widths:     make(map[int]*widthEntry),
		starts:     make(map[int]*startEntry),
		breaks:     make(map[int]*breakEntry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Config returns the current rendering configuration.
func (c *Cache) Config() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg
}

// TabWidth returns the tab stop width.
func (c *Cache) TabWidth() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tabWidth
}

// SetTabWidth changes the tab stop width. Tab stops shift every
// measurement, so the whole cache is dropped.
func (c *Cache) SetTabWidth(w int) {
	if w < 1 {
		w = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if w == c.tabWidth {
		return
	}
	c.tabWidth = w
	c.clearLocked()
}

// Validate brings the cache in line with a new configuration and an
// edit at the given byte offset. Entries keyed before editedByte
// survive unless a coarse configuration clear removed their table.
func (c *Cache) Validate(cfg Config, editedByte int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.validateLocked(cfg, editedByte)
}

// SetConfig revalidates against cfg without an edit.
func (c *Cache) SetConfig(cfg Config) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.validateLocked(cfg, math.MaxInt)
}

// InvalidateFrom drops every entry keyed at or after byteOff, keeping
// the configuration as is.
func (c *Cache) InvalidateFrom(byteOff int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.validateLocked(c.cfg, byteOff)
}

// validateLocked runs the coarse configuration clears before the
// byte-position pass. The order matters: entries computed under a
// different wrap mode must not survive just because they sit before
// the edit point.
func (c *Cache) validateLocked(cfg Config, editedByte int) {
	if cfg.Wrap != c.cfg.Wrap {
		c.breaks = make(map[int]*breakEntry)
		c.starts = make(map[int]*startEntry)
	}
	if cfg.Wrap == WrapNone && cfg.Shift != c.cfg.Shift {
		c.starts = make(map[int]*startEntry)
	}
	if cfg.Wrapping() && (cfg.ViewportWidth != c.cfg.ViewportWidth ||
		cfg.ViewportHeight != c.cfg.ViewportHeight ||
		cfg.ShowControl != c.cfg.ShowControl) {
		c.breaks = make(map[int]*breakEntry)
	}

	for off := range c.widths {
		if off >= editedByte {
			delete(c.widths, off)
		}
	}
	for off := range c.starts {
		if off >= editedByte {
			delete(c.starts, off)
		}
	}
	for off := range c.breaks {
		if off >= editedByte {
			delete(c.breaks, off)
		}
	}

	c.cfg = cfg
}

// Clear drops every memoized entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearLocked()
}

func (c *Cache) clearLocked() {
	c.widths = make(map[int]*widthEntry)
	c.starts = make(map[int]*startEntry)
	c.breaks = make(map[int]*breakEntry)
}

// LineWidth returns the visual cell width of the line starting at
// lineStart, computing and memoizing it on a miss.
func (c *Cache) LineWidth(lineStart int, text string) int {
	hash := contentHash(text)

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.widths[lineStart]; ok && e.hash == hash {
		c.clock++
		e.access = c.clock
		c.hits.Add(1)
		return e.width
	}
	c.misses.Add(1)

	width := VisualWidth(text, c.tabWidth)
	c.clock++
	c.widths[lineStart] = &widthEntry{hash: hash, width: width, access: c.clock}
	if len(c.widths) > c.maxEntries {
		c.evictions.Add(evictOldestWidth(c.widths))
	}
	return width
}

// FirstVisible returns the absolute byte offset where rendering of the
// line begins under the current horizontal shift. When wrapping is on
// the shift does not apply and the line start itself is returned.
func (c *Cache) FirstVisible(lineStart int, text string) int {
	hash := contentHash(text)

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.starts[lineStart]; ok && e.hash == hash {
		c.clock++
		e.access = c.clock
		c.hits.Add(1)
		return e.first
	}
	c.misses.Add(1)

	shift := c.cfg.Shift
	if c.cfg.Wrapping() {
		shift = 0
	}
	first := lineStart + firstVisible(text, shift, c.tabWidth)
	c.clock++
	c.starts[lineStart] = &startEntry{hash: hash, first: first, access: c.clock}
	if len(c.starts) > c.maxEntries {
		c.evictions.Add(evictOldestStart(c.starts))
	}
	return first
}

// WrapBreaks returns the line-relative byte offsets at which the line
// wraps onto new rows under the current configuration. Nil when not
// wrapping.
func (c *Cache) WrapBreaks(lineStart int, text string) []int {
	hash := contentHash(text)

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.breaks[lineStart]; ok && e.hash == hash {
		c.clock++
		e.access = c.clock
		c.hits.Add(1)
		return copyBreaks(e.breaks)
	}
	c.misses.Add(1)

	breaks := wrapBreaks(text, c.cfg, c.tabWidth)
	c.clock++
	c.breaks[lineStart] = &breakEntry{hash: hash, breaks: breaks, access: c.clock}
	if len(c.breaks) > c.maxEntries {
		c.evictions.Add(evictOldestBreak(c.breaks))
	}
	return copyBreaks(breaks)
}

// RowCount returns the number of visual rows the line occupies: one
// more than its wrap break count.
func (c *Cache) RowCount(lineStart int, text string) int {
	return len(c.WrapBreaks(lineStart, text)) + 1
}

// WidthIfCached peeks at the width table without computing or counting
// an access.
func (c *Cache) WidthIfCached(lineStart int) (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if e, ok := c.widths[lineStart]; ok {
		return e.width, true
	}
	return 0, false
}

// StartIfCached peeks at the line-start table.
func (c *Cache) StartIfCached(lineStart int) (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if e, ok := c.starts[lineStart]; ok {
		return e.first, true
	}
	return 0, false
}

// BreaksIfCached peeks at the break table.
func (c *Cache) BreaksIfCached(lineStart int) ([]int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if e, ok := c.breaks[lineStart]; ok {
		return copyBreaks(e.breaks), true
	}
	return nil, false
}

// Size returns the total number of entries across all tables.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.widths) + len(c.starts) + len(c.breaks)
}

// Stats holds cache counters.
type Stats struct {
	Widths     int
	Starts     int
	Breaks     int
	MaxEntries int
	Hits       uint64
	Misses     uint64
	Evictions  uint64
	HitRate    float64
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	widths, starts, breaks := len(c.widths), len(c.starts), len(c.breaks)
	maxEntries := c.maxEntries
	c.mu.RUnlock()

	hits := c.hits.Load()
	misses := c.misses.Load()
	total := hits + misses

	var hitRate float64
	if total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return Stats{
		Widths:     widths,
		Starts:     starts,
		Breaks:     breaks,
		MaxEntries: maxEntries,
		Hits:       hits,
		Misses:     misses,
		Evictions:  c.evictions.Load(),
		HitRate:    hitRate,
	}
}

// ResetStats zeroes the hit, miss, and eviction counters.
func (c *Cache) ResetStats() {
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
}

func evictOldestWidth(m map[int]*widthEntry) uint64 {
	oldestKey, oldestAccess := 0, uint64(math.MaxUint64)
	for k, e := range m {
		if e.access < oldestAccess {
			oldestKey, oldestAccess = k, e.access
		}
	}
	delete(m, oldestKey)
	return 1
}

func evictOldestStart(m map[int]*startEntry) uint64 {
	oldestKey, oldestAccess := 0, uint64(math.MaxUint64)
	for k, e := range m {
		if e.access < oldestAccess {
			oldestKey, oldestAccess = k, e.access
		}
	}
	delete(m, oldestKey)
	return 1
}

func evictOldestBreak(m map[int]*breakEntry) uint64 {
	oldestKey, oldestAccess := 0, uint64(math.MaxUint64)
	for k, e := range m {
		if e.access < oldestAccess {
			oldestKey, oldestAccess = k, e.access
		}
	}
	delete(m, oldestKey)
	return 1
}

func copyBreaks(b []int) []int {
	if len(b) == 0 {
		return nil
	}
	out := make([]int, len(b))
	copy(out, b)
	return out
}

// contentHash fingerprints line text for entry validation.
func contentHash(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}

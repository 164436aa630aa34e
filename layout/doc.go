// Package layout memoizes per-line layout measurements for rendering.
//
// A Cache keeps three independent tables, each keyed by the line's start
// byte offset: visual line widths, first-visible byte offsets under
// horizontal scrolling, and wrap break positions. Entries also carry a
// content hash, so a lookup with changed line text is a miss rather than
// a stale answer.
//
// The cache fingerprints a Config (wrap mode, viewport size, horizontal
// shift, control-character visibility). Validate applies the
// invalidation steps in a fixed order: coarse clears for configuration
// changes first — a changed wrap mode empties both wrap tables, a
// changed shift empties the line-start table, a changed viewport or
// control visibility empties the break tables — then the byte-position
// pass drops every entry at or after the edited offset, and finally the
// new configuration is stored. Running the coarse clears first matters:
// entries computed under a different wrap mode must not survive just
// because they sit before the edit point.
//
// The three tables deliberately depend on different configuration
// fields. Widths ignore shift and control visibility, line starts
// ignore the viewport, and only break positions see all of them; the
// Validate steps clear exactly what each configuration change can
// invalidate and nothing more.
//
// Each table is bounded; the least recently used entry is evicted when
// a table outgrows its limit. Hit, miss, and eviction counts are
// available through Stats.
package layout

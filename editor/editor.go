package editor

import (
	"io"
	"sync"

	"github.com/tborchert/inkline/buffer"
	"github.com/tborchert/inkline/history"
	"github.com/tborchert/inkline/layout"
	"github.com/tborchert/inkline/stylemap"
)

// Editor combines a text buffer with its undo log, style range map and
// layout cache into a unified API. All operations are thread-safe,
// though a single goroutine normally drives the edit path.
type Editor struct {
	mu sync.RWMutex

	buf    *buffer.Buffer
	log    *history.Log
	styles *stylemap.Map
	cache  *layout.Cache

	softTabs bool
	readOnly bool

	// Construction state, consumed by New.
	initText  string
	tabWidth  int
	maxUndo   int
	layoutCfg layout.Config
	bufOpts   []buffer.Option
}

// New creates an editor with the given options.
func New(opts ...Option) *Editor {
	e := &Editor{
		tabWidth: DefaultTabWidth,
		maxUndo:  DefaultMaxUndo,
	}

	for _, opt := range opts {
		opt(e)
	}

	bufOpts := append([]buffer.Option{buffer.WithTabWidth(e.tabWidth)}, e.bufOpts...)
	if e.initText != "" {
		e.buf = buffer.NewFromString(e.initText, bufOpts...)
	} else {
		e.buf = buffer.New(bufOpts...)
	}

	e.log = history.NewLog(e.maxUndo)
	e.styles = stylemap.New()
	e.cache = layout.NewCache(
		layout.WithConfig(e.layoutCfg),
		layout.WithTabWidth(e.tabWidth),
	)

	e.initText = ""
	e.bufOpts = nil
	return e
}

// NewFromReader creates an editor with content read from r.
func NewFromReader(r io.Reader, opts ...Option) (*Editor, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return New(append(opts, WithText(string(data)))...), nil
}

// ============================================================================
// Read operations
// ============================================================================

// Text returns the full buffer content.
func (e *Editor) Text() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Text()
}

// Len returns the total byte length of the buffer.
func (e *Editor) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Len()
}

// LineCount returns the number of lines.
func (e *Editor) LineCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.LineCount()
}

// LineText returns the text of a line without its line ending.
func (e *Editor) LineText(line int) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.LineText(line)
}

// LineGraphemeCount returns the number of grapheme clusters in a line.
func (e *Editor) LineGraphemeCount(line int) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.LineGraphemeCount(line)
}

// LineStartOffset returns the byte offset where a line begins.
func (e *Editor) LineStartOffset(line int) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.LineStartOffset(line)
}

// IsEmpty returns true if the buffer holds no text.
func (e *Editor) IsEmpty() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.IsEmpty()
}

// Snapshot returns a read-only view of the current buffer state.
func (e *Editor) Snapshot() *buffer.Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Snapshot()
}

// Revision returns the current buffer revision.
func (e *Editor) Revision() buffer.RevisionID {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Revision()
}

// ============================================================================
// Position queries
// ============================================================================

// OffsetToPosition converts a byte offset to a line/column position.
func (e *Editor) OffsetToPosition(offset int) buffer.Position {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.OffsetToPosition(offset)
}

// PositionToOffset converts a position to a byte offset, clamping to
// the document.
func (e *Editor) PositionToOffset(pos buffer.Position) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.PositionToOffset(pos)
}

// ClampPosition returns the nearest valid position.
func (e *Editor) ClampPosition(pos buffer.Position) buffer.Position {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.ClampPosition(pos)
}

// DocumentEnd returns the position just past the last cluster of the
// last line.
func (e *Editor) DocumentEnd() buffer.Position {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.DocumentEnd()
}

// GraphemeSpan returns the byte range of the grapheme cluster at pos,
// empty at a line end.
func (e *Editor) GraphemeSpan(pos buffer.Position) buffer.Range {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.GraphemeSpan(pos)
}

// NextGrapheme returns the position one cluster to the right.
func (e *Editor) NextGrapheme(pos buffer.Position) buffer.Position {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.NextGrapheme(pos)
}

// PrevGrapheme returns the position one cluster to the left.
func (e *Editor) PrevGrapheme(pos buffer.Position) buffer.Position {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.PrevGrapheme(pos)
}

// NextWordStart returns the start of the next word after pos.
func (e *Editor) NextWordStart(pos buffer.Position) buffer.Position {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.NextWordStart(pos)
}

// NextWordEnd returns the end of the current or next word after pos.
func (e *Editor) NextWordEnd(pos buffer.Position) buffer.Position {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.NextWordEnd(pos)
}

// PrevWordStart returns the start of the word before pos.
func (e *Editor) PrevWordStart(pos buffer.Position) buffer.Position {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.PrevWordStart(pos)
}

// PrevWordEnd returns the end of the word before pos.
func (e *Editor) PrevWordEnd(pos buffer.Position) buffer.Position {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.PrevWordEnd(pos)
}

// ============================================================================
// Auxiliary structures
// ============================================================================

// Styles returns the style range map. Entries added here are shifted
// and dropped automatically as the text is edited.
func (e *Editor) Styles() *stylemap.Map {
	return e.styles
}

// Layout returns the layout cache. The rendering layer queries it
// directly and sets its configuration; edits invalidate it from the
// edited line on.
func (e *Editor) Layout() *layout.Cache {
	return e.cache
}

// LineVisualWidth returns the rendered cell width of a line through the
// layout cache.
func (e *Editor) LineVisualWidth(line int) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cache.LineWidth(e.buf.LineStartOffset(line), e.buf.LineText(line))
}

// LineWrapBreaks returns the wrap break offsets of a line through the
// layout cache. Nil when not wrapping.
func (e *Editor) LineWrapBreaks(line int) []int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cache.WrapBreaks(e.buf.LineStartOffset(line), e.buf.LineText(line))
}

// LineRowCount returns the number of visual rows a line occupies under
// the current wrap configuration.
func (e *Editor) LineRowCount(line int) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cache.RowCount(e.buf.LineStartOffset(line), e.buf.LineText(line))
}

// ============================================================================
// Configuration
// ============================================================================

// LineEnding returns the buffer's separator style.
func (e *Editor) LineEnding() buffer.LineEnding {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.LineEnding()
}

// SetLineEnding sets the separator style for future edits.
func (e *Editor) SetLineEnding(le buffer.LineEnding) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.buf.SetLineEnding(le)
}

// TabWidth returns the tab width.
func (e *Editor) TabWidth() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.TabWidth()
}

// SetTabWidth sets the tab width for the buffer and the layout cache.
func (e *Editor) SetTabWidth(width int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.buf.SetTabWidth(width)
	e.cache.SetTabWidth(width)
}

// LayoutConfig returns the current rendering configuration.
func (e *Editor) LayoutConfig() layout.Config {
	return e.cache.Config()
}

// SetLayoutConfig installs a new rendering configuration, invalidating
// whatever cached layout its changes touch.
func (e *Editor) SetLayoutConfig(cfg layout.Config) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache.SetConfig(cfg)
}

// IsReadOnly returns true if the editor is read-only.
func (e *Editor) IsReadOnly() bool {
	return e.readOnly
}

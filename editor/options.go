package editor

import (
	"github.com/tborchert/inkline/buffer"
	"github.com/tborchert/inkline/history"
	"github.com/tborchert/inkline/layout"
)

// Default configuration values.
const (
	DefaultTabWidth = 4
	DefaultMaxUndo  = history.DefaultMaxEntries
)

// Option configures an Editor during creation.
type Option func(*Editor)

// WithText sets the initial content.
func WithText(text string) Option {
	return func(e *Editor) {
		e.initText = text
	}
}

// WithLineEnding sets the separator style for the underlying buffer.
func WithLineEnding(le buffer.LineEnding) Option {
	return func(e *Editor) {
		e.bufOpts = append(e.bufOpts, buffer.WithLineEnding(le))
	}
}

// WithTabWidth sets the tab width used for editing and layout.
func WithTabWidth(width int) Option {
	return func(e *Editor) {
		if width > 0 {
			e.tabWidth = width
		}
	}
}

// WithMaxUndo bounds the undo log to n atomic sequences.
func WithMaxUndo(n int) Option {
	return func(e *Editor) {
		if n > 0 {
			e.maxUndo = n
		}
	}
}

// WithLayoutConfig sets the initial rendering configuration.
func WithLayoutConfig(cfg layout.Config) Option {
	return func(e *Editor) {
		e.layoutCfg = cfg
	}
}

// WithFlatStore backs the buffer with a contiguous store, which suits
// short single-line inputs better than the rope.
func WithFlatStore() Option {
	return func(e *Editor) {
		e.bufOpts = append(e.bufOpts, buffer.WithFlatStore())
	}
}

// WithStrictBoundaries makes the buffer reject raw edits that would
// split a grapheme cluster.
func WithStrictBoundaries() Option {
	return func(e *Editor) {
		e.bufOpts = append(e.bufOpts, buffer.WithStrictBoundaries())
	}
}

// WithSoftTabs makes InsertTab insert spaces up to the next tab stop
// instead of a tab character.
func WithSoftTabs() Option {
	return func(e *Editor) {
		e.softTabs = true
	}
}

// WithReadOnly creates a read-only editor. Write operations return
// ErrReadOnly; undo and redo report false.
func WithReadOnly() Option {
	return func(e *Editor) {
		e.readOnly = true
	}
}

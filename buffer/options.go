package buffer

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithLineEnding sets the buffer's line ending style.
func WithLineEnding(le LineEnding) Option {
	return func(b *Buffer) {
		b.lineEnding = le
	}
}

// WithLF configures the buffer to use Unix line endings (\n).
func WithLF() Option {
	return WithLineEnding(LineEndingLF)
}

// WithCRLF configures the buffer to use Windows line endings (\r\n).
func WithCRLF() Option {
	return WithLineEnding(LineEndingCRLF)
}

// WithTabWidth sets the buffer's tab width.
func WithTabWidth(width int) Option {
	return func(b *Buffer) {
		if width > 0 {
			b.tabWidth = width
		}
	}
}

// WithStore sets the storage backend. The default is a rope; a flat
// store suits short single-line inputs.
func WithStore(s Store) Option {
	return func(b *Buffer) {
		b.store = s
	}
}

// WithFlatStore backs the buffer with a flat string instead of a rope.
// Content that outgrows a single-line input promotes back to a rope on
// its own.
func WithFlatStore() Option {
	return func(b *Buffer) {
		b.store = NewFlatStore(b.store.String())
	}
}

// WithStrictBoundaries makes byte-level mutations reject offsets inside
// a grapheme cluster, not just inside a UTF-8 sequence. Position-based
// operations are cluster-safe either way.
func WithStrictBoundaries() Option {
	return func(b *Buffer) {
		b.strict = true
	}
}

// DetectLineEnding returns the dominant line ending in the text.
// Lone carriage returns count as LF since they normalize to the
// buffer's style on ingest. Returns LineEndingLF for text without line
// breaks.
func DetectLineEnding(text string) LineEnding {
	var lfCount, crlfCount int

	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				crlfCount++
				i++
			} else {
				lfCount++
			}
		case '\n':
			lfCount++
		}
	}

	if crlfCount > 0 && crlfCount >= lfCount {
		return LineEndingCRLF
	}
	return LineEndingLF
}

// WithDetectedLineEnding sets the line ending style from the content
// about to be loaded.
func WithDetectedLineEnding(text string) Option {
	return WithLineEnding(DetectLineEnding(text))
}

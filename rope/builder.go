package rope

import (
	"io"
	"strings"
)

// Builder accumulates text and assembles a rope in one pass. The zero
// value is ready to use. Writes are buffered and carved into chunks once
// enough bytes accumulate, so building from many small pieces stays cheap.
type Builder struct {
	chunks []Chunk
	buf    strings.Builder
	total  int
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{chunks: make([]Chunk, 0, 64)}
}

// WriteString appends s.
func (b *Builder) WriteString(s string) {
	if len(s) == 0 {
		return
	}
	b.total += len(s)
	b.buf.WriteString(s)
	if b.buf.Len() >= MaxChunkSize*2 {
		b.flush()
	}
}

// Write implements io.Writer.
func (b *Builder) Write(p []byte) (int, error) {
	b.WriteString(string(p))
	return len(p), nil
}

// WriteByte appends a single byte.
func (b *Builder) WriteByte(c byte) error {
	b.total++
	return b.buf.WriteByte(c)
}

// WriteRune appends a single rune.
func (b *Builder) WriteRune(r rune) (int, error) {
	n, err := b.buf.WriteRune(r)
	b.total += n
	return n, err
}

// ReadFrom implements io.ReaderFrom.
func (b *Builder) ReadFrom(r io.Reader) (int64, error) {
	buf := make([]byte, 64*1024)
	var total int64
	for {
		n, err := r.Read(buf)
		if n > 0 {
			b.WriteString(string(buf[:n]))
			total += int64(n)
		}
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

func (b *Builder) flush() {
	if b.buf.Len() == 0 {
		return
	}
	s := b.buf.String()
	b.buf.Reset()
	b.chunks = append(b.chunks, splitIntoChunks(s)...)
}

// Len returns the number of bytes written so far.
func (b *Builder) Len() int {
	return b.total
}

// Reset discards all accumulated text.
func (b *Builder) Reset() {
	b.chunks = b.chunks[:0]
	b.buf.Reset()
	b.total = 0
}

// Build assembles the rope and resets the builder.
func (b *Builder) Build() Rope {
	b.flush()
	if len(b.chunks) == 0 {
		b.Reset()
		return New()
	}
	chunks := b.chunks
	b.Reset()
	return fromChunks(chunks)
}

// FromLines builds a rope from lines, joining them with '\n'.
func FromLines(lines []string) Rope {
	if len(lines) == 0 {
		return New()
	}
	var b Builder
	for i, line := range lines {
		b.WriteString(line)
		if i < len(lines)-1 {
			b.WriteByte('\n')
		}
	}
	return b.Build()
}

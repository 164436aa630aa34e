package rope

// Chunk size bounds. Splitting favors newline boundaries so that line
// seeks tend to land at chunk starts.
const (
	// MinChunkSize is the smallest chunk the splitter aims for.
	MinChunkSize = 128

	// MaxChunkSize is the largest chunk a leaf will hold.
	MaxChunkSize = 256

	// targetChunkSize is the preferred size when carving long strings.
	targetChunkSize = (MinChunkSize + MaxChunkSize) / 2
)

// Chunk is an immutable bounded string with precomputed metrics and a
// newline position index.
type Chunk struct {
	data     string
	summary  TextSummary
	newlines NewlineIndex
}

// NewChunk builds a chunk, computing its summary and newline index eagerly.
func NewChunk(s string) Chunk {
	return Chunk{
		data:     s,
		summary:  ComputeSummary(s),
		newlines: computeNewlineIndex(s),
	}
}

// String returns the chunk text.
func (c Chunk) String() string {
	return c.data
}

// Summary returns the precomputed metrics.
func (c Chunk) Summary() TextSummary {
	return c.summary
}

// Newlines returns the chunk's newline position index.
func (c Chunk) Newlines() *NewlineIndex {
	return &c.newlines
}

// Len returns the byte length.
func (c Chunk) Len() int {
	return len(c.data)
}

// IsEmpty reports whether the chunk holds no text.
func (c Chunk) IsEmpty() bool {
	return len(c.data) == 0
}

// Split divides the chunk at a byte offset. The offset must sit on a
// UTF-8 rune boundary.
func (c Chunk) Split(offset int) (Chunk, Chunk) {
	if offset <= 0 {
		return Chunk{}, c
	}
	if offset >= len(c.data) {
		return c, Chunk{}
	}
	return NewChunk(c.data[:offset]), NewChunk(c.data[offset:])
}

// splitIntoChunks carves a string into chunks within the size bounds.
func splitIntoChunks(s string) []Chunk {
	if len(s) == 0 {
		return nil
	}
	if len(s) <= MaxChunkSize {
		return []Chunk{NewChunk(s)}
	}

	var chunks []Chunk
	rest := s
	for len(rest) > 0 {
		if len(rest) <= MaxChunkSize {
			chunks = append(chunks, NewChunk(rest))
			break
		}
		cut := chunkCutPoint(rest, targetChunkSize)
		chunks = append(chunks, NewChunk(rest[:cut]))
		rest = rest[cut:]
	}
	return chunks
}

// chunkCutPoint picks a split position near target, preferring the byte
// after a nearby newline and always landing on a rune boundary.
func chunkCutPoint(s string, target int) int {
	if target >= len(s) {
		return len(s)
	}
	if target <= 0 {
		return 0
	}

	lo := max(target-MinChunkSize/4, 0)
	hi := min(target+MinChunkSize/4, len(s))

	for i := target; i < hi; i++ {
		if s[i] == '\n' {
			return i + 1
		}
	}
	for i := target - 1; i >= lo; i-- {
		if s[i] == '\n' {
			return i + 1
		}
	}

	pos := target
	for pos < len(s) && !isRuneStart(s[pos]) {
		pos++
	}
	if pos > target+4 || pos >= len(s) {
		pos = target
		for pos > 0 && !isRuneStart(s[pos]) {
			pos--
		}
	}
	return pos
}

// isRuneStart reports whether b begins a UTF-8 sequence. Continuation
// bytes have the form 10xxxxxx.
func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

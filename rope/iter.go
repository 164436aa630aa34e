package rope

// chunkFrame tracks one level of the chunk iterator's descent.
type chunkFrame struct {
	node     *node
	childIdx int
	chunkIdx int
	offset   int
}

// ChunkIterator yields the rope's chunks in document order. Chunks expose
// the underlying storage directly, so iteration never copies text.
type ChunkIterator struct {
	rope       Rope
	stack      []chunkFrame
	started    bool
	chunk      Chunk
	chunkStart int
}

// Chunks returns an iterator over the rope's chunks.
func (r Rope) Chunks() *ChunkIterator {
	return &ChunkIterator{
		rope:  r,
		stack: make([]chunkFrame, 0, 16),
	}
}

// Next advances to the next chunk, returning false when done.
func (it *ChunkIterator) Next() bool {
	if !it.started {
		it.started = true
		if it.rope.root == nil {
			return false
		}
		it.stack = append(it.stack, chunkFrame{node: it.rope.root})
		return it.findNext()
	}

	if len(it.stack) > 0 {
		frame := &it.stack[len(it.stack)-1]
		if frame.node.isLeaf() {
			frame.chunkIdx++
		}
	}
	return it.findNext()
}

func (it *ChunkIterator) findNext() bool {
	for len(it.stack) > 0 {
		frame := &it.stack[len(it.stack)-1]
		n := frame.node

		if n.isLeaf() {
			if frame.chunkIdx < len(n.chunks) {
				off := frame.offset
				for i := 0; i < frame.chunkIdx; i++ {
					off += n.chunks[i].Len()
				}
				it.chunk = n.chunks[frame.chunkIdx]
				it.chunkStart = off
				return true
			}
			it.pop()
			continue
		}

		if frame.childIdx < len(n.children) {
			off := frame.offset
			for i := 0; i < frame.childIdx; i++ {
				off += n.childSums[i].Bytes
			}
			it.stack = append(it.stack, chunkFrame{
				node:   n.children[frame.childIdx],
				offset: off,
			})
			continue
		}
		it.pop()
	}
	return false
}

func (it *ChunkIterator) pop() {
	it.stack = it.stack[:len(it.stack)-1]
	if len(it.stack) > 0 {
		it.stack[len(it.stack)-1].childIdx++
	}
}

// Chunk returns the current chunk.
func (it *ChunkIterator) Chunk() Chunk {
	return it.chunk
}

// Offset returns the byte offset where the current chunk starts.
func (it *ChunkIterator) Offset() int {
	return it.chunkStart
}

// LineIterator yields the rope's lines in order, without their newlines.
type LineIterator struct {
	rope    Rope
	line    int
	start   int
	end     int
	text    string
	started bool
	done    bool
}

// Lines returns an iterator over the rope's lines. An empty rope yields a
// single empty line.
func (r Rope) Lines() *LineIterator {
	return &LineIterator{rope: r}
}

// Next advances to the next line, returning false when done.
func (it *LineIterator) Next() bool {
	if it.done {
		return false
	}

	if !it.started {
		it.started = true
		if it.rope.IsEmpty() {
			it.done = true
			it.text = ""
			return true
		}
	} else {
		it.line++
		if it.line >= it.rope.LineCount() {
			it.done = true
			return false
		}
	}

	it.start = it.rope.LineStartOffset(it.line)
	it.end = it.rope.LineEndOffset(it.line)
	it.text = it.rope.Slice(it.start, it.end)
	return true
}

// Text returns the current line's text.
func (it *LineIterator) Text() string {
	return it.text
}

// Line returns the current 0-indexed line number.
func (it *LineIterator) Line() int {
	return it.line
}

// StartOffset returns the byte offset of the current line's start.
func (it *LineIterator) StartOffset() int {
	return it.start
}

// EndOffset returns the byte offset just past the current line's text.
func (it *LineIterator) EndOffset() int {
	return it.end
}

// RuneIterator yields the rope's runes in order.
type RuneIterator struct {
	cursor  *Cursor
	current rune
	size    int
	offset  int
	started bool
}

// Runes returns an iterator over the rope's runes.
func (r Rope) Runes() *RuneIterator {
	return &RuneIterator{cursor: NewCursor(r)}
}

// Next advances to the next rune, returning false when done.
func (it *RuneIterator) Next() bool {
	if !it.started {
		it.started = true
	} else if !it.cursor.Next() {
		return false
	}

	if it.cursor.AtEnd() {
		return false
	}
	it.offset = it.cursor.Offset()
	it.current, it.size = it.cursor.Rune()
	return it.size > 0
}

// Rune returns the current rune.
func (it *RuneIterator) Rune() rune {
	return it.current
}

// Size returns the current rune's encoded length.
func (it *RuneIterator) Size() int {
	return it.size
}

// Offset returns the current rune's byte offset.
func (it *RuneIterator) Offset() int {
	return it.offset
}

// ByteIterator yields the rope's bytes in order.
type ByteIterator struct {
	chunks  *ChunkIterator
	data    string
	idx     int
	offset  int
	started bool
}

// Bytes returns an iterator over the rope's bytes.
func (r Rope) Bytes() *ByteIterator {
	return &ByteIterator{chunks: r.Chunks()}
}

// Next advances to the next byte, returning false when done.
func (it *ByteIterator) Next() bool {
	if !it.started {
		it.started = true
		if !it.nextChunk() {
			return false
		}
		return len(it.data) > 0
	}

	it.idx++
	it.offset++
	if it.idx >= len(it.data) {
		if !it.nextChunk() {
			return false
		}
		return len(it.data) > 0
	}
	return true
}

func (it *ByteIterator) nextChunk() bool {
	if !it.chunks.Next() {
		return false
	}
	it.data = it.chunks.Chunk().String()
	it.idx = 0
	it.offset = it.chunks.Offset()
	return true
}

// Byte returns the current byte.
func (it *ByteIterator) Byte() byte {
	if it.idx < len(it.data) {
		return it.data[it.idx]
	}
	return 0
}

// Offset returns the current byte's offset.
func (it *ByteIterator) Offset() int {
	return it.offset
}

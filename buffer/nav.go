package buffer

import "github.com/tborchert/inkline/segment"

// Navigation queries. All of them clamp their argument and return a
// valid position; motion at a document edge stays put.

// LineGraphemeCount returns the number of grapheme clusters in a line.
func (b *Buffer) LineGraphemeCount(line int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return segment.Count(lineContent(b.store, line))
}

// LineWidth returns a line's display width in terminal cells, with tabs
// advancing to the next tab stop.
func (b *Buffer) LineWidth(line int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	width := 0
	it := segment.NewIterator(lineContent(b.store, line))
	for it.Next() {
		if it.Cluster() == "\t" {
			width += b.tabWidth - width%b.tabWidth
		} else {
			width += segment.ClusterWidth(it.Cluster())
		}
	}
	return width
}

// DocumentEnd returns the position just past the last cluster of the
// last line.
func (b *Buffer) DocumentEnd() Position {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return documentEnd(b.store)
}

// NextGrapheme returns the position one cluster to the right, wrapping
// to the start of the next line at a line end.
func (b *Buffer) NextGrapheme(pos Position) Position {
	b.mu.RLock()
	defer b.mu.RUnlock()

	pos = clampPosition(b.store, pos)
	if pos.Col < segment.Count(lineContent(b.store, pos.Line)) {
		return Position{Line: pos.Line, Col: pos.Col + 1}
	}
	if pos.Line < b.store.LineCount()-1 {
		return Position{Line: pos.Line + 1, Col: 0}
	}
	return pos
}

// PrevGrapheme returns the position one cluster to the left, wrapping
// to the end of the previous line at a line start.
func (b *Buffer) PrevGrapheme(pos Position) Position {
	b.mu.RLock()
	defer b.mu.RUnlock()

	pos = clampPosition(b.store, pos)
	if pos.Col > 0 {
		return Position{Line: pos.Line, Col: pos.Col - 1}
	}
	if pos.Line > 0 {
		line := pos.Line - 1
		return Position{Line: line, Col: segment.Count(lineContent(b.store, line))}
	}
	return pos
}

// NextWordStart returns the start of the next word after pos, scanning
// across lines. At the last word it returns the document end.
func (b *Buffer) NextWordStart(pos Position) Position {
	b.mu.RLock()
	defer b.mu.RUnlock()

	pos = clampPosition(b.store, pos)
	for line := pos.Line; line < b.store.LineCount(); line++ {
		col := -1
		if line == pos.Line {
			col = pos.Col
		}
		if next := segment.NextWordStart(lineContent(b.store, line), col); next >= 0 {
			return Position{Line: line, Col: next}
		}
	}
	return documentEnd(b.store)
}

// NextWordEnd returns the end of the current or next word after pos,
// scanning across lines. The returned column addresses the word's last
// cluster.
func (b *Buffer) NextWordEnd(pos Position) Position {
	b.mu.RLock()
	defer b.mu.RUnlock()

	pos = clampPosition(b.store, pos)
	for line := pos.Line; line < b.store.LineCount(); line++ {
		col := -1
		if line == pos.Line {
			col = pos.Col
		}
		if next := segment.NextWordEnd(lineContent(b.store, line), col); next >= 0 {
			return Position{Line: line, Col: next}
		}
	}
	return documentEnd(b.store)
}

// PrevWordStart returns the start of the word before pos, scanning
// across lines. Before the first word it returns the document start.
func (b *Buffer) PrevWordStart(pos Position) Position {
	b.mu.RLock()
	defer b.mu.RUnlock()

	pos = clampPosition(b.store, pos)
	for line := pos.Line; line >= 0; line-- {
		content := lineContent(b.store, line)
		col := segment.Count(content)
		if line == pos.Line {
			col = pos.Col
		}
		if prev := segment.PrevWordStart(content, col); prev >= 0 {
			return Position{Line: line, Col: prev}
		}
	}
	return Position{}
}

// PrevWordEnd returns the end of the word before pos, scanning across
// lines.
func (b *Buffer) PrevWordEnd(pos Position) Position {
	b.mu.RLock()
	defer b.mu.RUnlock()

	pos = clampPosition(b.store, pos)
	for line := pos.Line; line >= 0; line-- {
		content := lineContent(b.store, line)
		col := segment.Count(content)
		if line == pos.Line {
			col = pos.Col
		}
		if prev := segment.PrevWordEnd(content, col); prev >= 0 {
			return Position{Line: line, Col: prev}
		}
	}
	return Position{}
}

// GraphemeSpan returns the byte range occupied by the grapheme cluster
// at pos. A column at or past the end of a line yields an empty range
// at that line's content end.
func (b *Buffer) GraphemeSpan(pos Position) Range {
	b.mu.RLock()
	defer b.mu.RUnlock()

	pos = clampPosition(b.store, pos)
	content := lineContent(b.store, pos.Line)
	start := b.store.LineStartOffset(pos.Line) + segment.ByteOffset(content, pos.Col)
	cluster, ok := segment.At(content, pos.Col)
	if !ok {
		return Range{Start: start, End: start}
	}
	return Range{Start: start, End: start + len(cluster)}
}

// WordRangeAt returns the span of the word or whitespace run containing
// pos, for double-click selection. At a line end it returns an empty
// range at that position.
func (b *Buffer) WordRangeAt(pos Position) PositionRange {
	b.mu.RLock()
	defer b.mu.RUnlock()

	pos = clampPosition(b.store, pos)
	start, end, ok := segment.WordRange(lineContent(b.store, pos.Line), pos.Col)
	if !ok {
		return PositionRange{Start: pos, End: pos}
	}
	return PositionRange{
		Start: Position{Line: pos.Line, Col: start},
		End:   Position{Line: pos.Line, Col: end},
	}
}

func documentEnd(st Store) Position {
	last := st.LineCount() - 1
	return Position{Line: last, Col: segment.Count(lineContent(st, last))}
}

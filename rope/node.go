package rope

import "strings"

// Tree fan-out bounds.
const (
	// MinChildren is the minimum fan-out of an internal node below the root.
	MinChildren = 4

	// MaxChildren is the fan-out at which an internal node splits.
	MaxChildren = 8

	// MaxChunksPerLeaf is the number of chunks a leaf holds before splitting.
	MaxChunksPerLeaf = 4
)

// node is one level of the rope tree. Leaves (height 0) carry chunks;
// internal nodes carry children plus a copy of each child's summary so
// seeks never dereference a child just to read its length.
type node struct {
	height  uint8
	summary TextSummary

	children  []*node
	childSums []TextSummary

	chunks []Chunk
}

func newLeaf() *node {
	return &node{chunks: make([]Chunk, 0, MaxChunksPerLeaf)}
}

func newLeafWithChunks(chunks []Chunk) *node {
	n := &node{chunks: chunks}
	n.refreshSummary()
	return n
}

func newInternal(children []*node) *node {
	if len(children) == 0 {
		return newLeaf()
	}

	sums := make([]TextSummary, len(children))
	total := zeroSummary()
	for i, child := range children {
		sums[i] = child.summary
		total = total.Add(child.summary)
	}

	return &node{
		height:    children[0].height + 1,
		summary:   total,
		children:  children,
		childSums: sums,
	}
}

func (n *node) isLeaf() bool {
	return n.height == 0
}

func (n *node) length() int {
	return n.summary.Bytes
}

func (n *node) refreshSummary() {
	n.summary = zeroSummary()
	if n.isLeaf() {
		for _, c := range n.chunks {
			n.summary = n.summary.Add(c.Summary())
		}
		return
	}
	n.childSums = make([]TextSummary, len(n.children))
	for i, child := range n.children {
		n.childSums[i] = child.summary
		n.summary = n.summary.Add(child.summary)
	}
}

func (n *node) clone() *node {
	if n.isLeaf() {
		chunks := make([]Chunk, len(n.chunks))
		copy(chunks, n.chunks)
		return &node{summary: n.summary, chunks: chunks}
	}

	children := make([]*node, len(n.children))
	copy(children, n.children)
	sums := make([]TextSummary, len(n.childSums))
	copy(sums, n.childSums)
	return &node{
		height:    n.height,
		summary:   n.summary,
		children:  children,
		childSums: sums,
	}
}

// appendTo writes the subtree's full text to sb.
func (n *node) appendTo(sb *strings.Builder) {
	if n.isLeaf() {
		for _, c := range n.chunks {
			sb.WriteString(c.String())
		}
		return
	}
	for _, child := range n.children {
		child.appendTo(sb)
	}
}

// appendRange writes the subtree's text within [start, end) to sb.
// Offsets are relative to the subtree.
func (n *node) appendRange(sb *strings.Builder, start, end int) {
	if start >= end {
		return
	}

	if n.isLeaf() {
		off := 0
		for _, c := range n.chunks {
			chunkEnd := off + c.Len()
			if chunkEnd <= start {
				off = chunkEnd
				continue
			}
			if off >= end {
				break
			}
			from := max(start-off, 0)
			to := c.Len()
			if end < chunkEnd {
				to = end - off
			}
			sb.WriteString(c.String()[from:to])
			off = chunkEnd
		}
		return
	}

	off := 0
	for i, child := range n.children {
		childEnd := off + n.childSums[i].Bytes
		if childEnd <= start {
			off = childEnd
			continue
		}
		if off >= end {
			break
		}
		from := max(start-off, 0)
		to := n.childSums[i].Bytes
		if end < childEnd {
			to = end - off
		}
		child.appendRange(sb, from, to)
		off = childEnd
	}
}

// split divides the subtree at offset into two independent trees.
func (n *node) split(offset int) (*node, *node) {
	if offset <= 0 {
		return newLeaf(), n.clone()
	}
	if offset >= n.length() {
		return n.clone(), newLeaf()
	}
	if n.isLeaf() {
		return n.splitLeaf(offset)
	}
	return n.splitInternal(offset)
}

func (n *node) splitLeaf(offset int) (*node, *node) {
	var left, right []Chunk
	off := 0
	for _, c := range n.chunks {
		switch {
		case off+c.Len() <= offset:
			left = append(left, c)
		case off >= offset:
			right = append(right, c)
		default:
			l, r := c.Split(offset - off)
			if !l.IsEmpty() {
				left = append(left, l)
			}
			if !r.IsEmpty() {
				right = append(right, r)
			}
		}
		off += c.Len()
	}
	return newLeafWithChunks(left), newLeafWithChunks(right)
}

func (n *node) splitInternal(offset int) (*node, *node) {
	var left, right []*node
	off := 0
	for i, child := range n.children {
		childLen := n.childSums[i].Bytes
		switch {
		case off+childLen <= offset:
			left = append(left, child)
		case off >= offset:
			right = append(right, child)
		default:
			l, r := child.split(offset - off)
			if l.length() > 0 {
				left = append(left, l)
			}
			if r.length() > 0 {
				right = append(right, r)
			}
		}
		off += childLen
	}
	return buildFromNodes(left), buildFromNodes(right)
}

// buildFromNodes assembles a balanced tree over the given subtrees.
func buildFromNodes(children []*node) *node {
	switch {
	case len(children) == 0:
		return newLeaf()
	case len(children) == 1:
		return children[0]
	case len(children) <= MaxChildren:
		return newInternal(children)
	}

	var parents []*node
	for i := 0; i < len(children); i += MaxChildren {
		end := min(i+MaxChildren, len(children))
		parents = append(parents, newInternal(children[i:end]))
	}
	return buildFromNodes(parents)
}

// concatNodes joins two subtrees, rebalancing as needed.
func concatNodes(left, right *node) *node {
	if left == nil || left.length() == 0 {
		if right == nil {
			return newLeaf()
		}
		return right
	}
	if right == nil || right.length() == 0 {
		return left
	}

	if left.isLeaf() && right.isLeaf() {
		return concatLeaves(left, right)
	}

	for left.height < right.height {
		left = newInternal([]*node{left})
	}
	for right.height < left.height {
		right = newInternal([]*node{right})
	}

	if left.isLeaf() {
		return concatLeaves(left, right)
	}

	merged := make([]*node, 0, len(left.children)+len(right.children))
	merged = append(merged, left.children...)
	merged = append(merged, right.children...)
	if len(merged) <= MaxChildren {
		return newInternal(merged)
	}
	return buildFromNodes(merged)
}

func concatLeaves(left, right *node) *node {
	total := len(left.chunks) + len(right.chunks)
	if total <= MaxChunksPerLeaf {
		chunks := make([]Chunk, 0, total)
		chunks = append(chunks, left.chunks...)
		chunks = append(chunks, right.chunks...)
		return newLeafWithChunks(chunks)
	}
	return newInternal([]*node{left.clone(), right.clone()})
}

// childAt locates the child containing offset. Returns the child index
// and the offset relative to that child.
func (n *node) childAt(offset int) (int, int) {
	if n.isLeaf() {
		return -1, 0
	}

	off := 0
	for i, sum := range n.childSums {
		if off+sum.Bytes > offset {
			return i, offset - off
		}
		off += sum.Bytes
	}

	last := len(n.children) - 1
	return last, offset - (n.summary.Bytes - n.childSums[last].Bytes)
}

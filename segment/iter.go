package segment

import "github.com/rivo/uniseg"

// Iterator walks the grapheme clusters of a string from left to right.
// The zero value is not usable; construct with NewIterator.
type Iterator struct {
	original string
	rest     string
	state    int
	cluster  string
	bytePos  int
	col      int
	started  bool
}

// NewIterator returns an iterator positioned before the first cluster
// of s.
func NewIterator(s string) *Iterator {
	return &Iterator{
		original: s,
		rest:     s,
		state:    -1,
		col:      -1,
	}
}

// Next advances to the next cluster and reports whether one was found.
func (it *Iterator) Next() bool {
	if len(it.rest) == 0 {
		return false
	}
	if it.started {
		it.bytePos += len(it.cluster)
	}
	it.started = true
	it.cluster, it.rest, _, it.state = uniseg.StepString(it.rest, it.state)
	it.col++
	return true
}

// Cluster returns the current grapheme cluster. Only valid after a
// successful Next.
func (it *Iterator) Cluster() string {
	return it.cluster
}

// BytePos returns the byte offset of the current cluster's first byte.
func (it *Iterator) BytePos() int {
	return it.bytePos
}

// Col returns the zero-based column of the current cluster.
func (it *Iterator) Col() int {
	return it.col
}

// Reset rewinds the iterator to before the first cluster.
func (it *Iterator) Reset() {
	it.rest = it.original
	it.state = -1
	it.cluster = ""
	it.bytePos = 0
	it.col = -1
	it.started = false
}

// ClusterInfo describes one grapheme cluster within a string.
type ClusterInfo struct {
	Text    string
	BytePos int
	Col     int
}

// Clusters materializes every cluster of s. Intended for short strings
// such as single lines, where backward scans need random access.
func Clusters(s string) []ClusterInfo {
	var out []ClusterInfo
	it := NewIterator(s)
	for it.Next() {
		out = append(out, ClusterInfo{Text: it.Cluster(), BytePos: it.BytePos(), Col: it.Col()})
	}
	return out
}

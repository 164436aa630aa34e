package segment

import (
	"unicode"
	"unicode/utf8"
)

// Class partitions grapheme clusters into the three run kinds used by
// word motions: whitespace, word characters, and punctuation.
type Class int

const (
	ClassSpace Class = iota
	ClassWord
	ClassPunct
)

// Classify returns the run class of a cluster, decided by its first rune.
// Letters, digits, and underscore form words; whitespace separates; every
// other symbol is punctuation.
func Classify(cluster string) Class {
	if cluster == "" {
		return ClassSpace
	}
	r, _ := utf8.DecodeRuneInString(cluster)
	switch {
	case r == ' ' || r == '\t' || r == '\n' || r == '\r' || unicode.IsSpace(r):
		return ClassSpace
	case r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r):
		return ClassWord
	default:
		return ClassPunct
	}
}

// A column is a word start when it begins a word or punctuation run, and
// a word end when it closes one. Adjacent runs of different classes
// count as separate words, so "foo.bar" holds three.

func isWordStart(cs []ClusterInfo, i int) bool {
	c := Classify(cs[i].Text)
	if c == ClassSpace {
		return false
	}
	return i == 0 || Classify(cs[i-1].Text) != c
}

func isWordEnd(cs []ClusterInfo, i int) bool {
	c := Classify(cs[i].Text)
	if c == ClassSpace {
		return false
	}
	return i == len(cs)-1 || Classify(cs[i+1].Text) != c
}

// NextWordStart returns the column of the first word start strictly
// after col, or -1 when the rest of the line holds none.
func NextWordStart(s string, col int) int {
	cs := Clusters(s)
	if col < -1 {
		col = -1
	}
	for i := col + 1; i < len(cs); i++ {
		if isWordStart(cs, i) {
			return i
		}
	}
	return -1
}

// NextWordEnd returns the column of the first word end strictly after
// col, or -1 when the rest of the line holds none.
func NextWordEnd(s string, col int) int {
	cs := Clusters(s)
	if col < -1 {
		col = -1
	}
	for i := col + 1; i < len(cs); i++ {
		if isWordEnd(cs, i) {
			return i
		}
	}
	return -1
}

// PrevWordStart returns the column of the last word start strictly
// before col, or -1 when none precedes it. Columns past the end of the
// line clamp to one past the last cluster.
func PrevWordStart(s string, col int) int {
	cs := Clusters(s)
	if col > len(cs) {
		col = len(cs)
	}
	for i := col - 1; i >= 0; i-- {
		if isWordStart(cs, i) {
			return i
		}
	}
	return -1
}

// PrevWordEnd returns the column of the last word end strictly before
// col, or -1 when none precedes it.
func PrevWordEnd(s string, col int) int {
	cs := Clusters(s)
	if col > len(cs) {
		col = len(cs)
	}
	for i := col - 1; i >= 0; i-- {
		if isWordEnd(cs, i) {
			return i
		}
	}
	return -1
}

// WordRange returns the column span [start, end) of the word or
// punctuation run containing col, for double-click style selection.
// Whitespace columns select their whitespace run. The second return is
// false when col lies outside the line.
func WordRange(s string, col int) (int, int, bool) {
	cs := Clusters(s)
	if col < 0 || col >= len(cs) {
		return 0, 0, false
	}
	c := Classify(cs[col].Text)
	start := col
	for start > 0 && Classify(cs[start-1].Text) == c {
		start--
	}
	end := col + 1
	for end < len(cs) && Classify(cs[end].Text) == c {
		end++
	}
	return start, end, true
}

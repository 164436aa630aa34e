// Package search finds literal and regexp matches in document text by
// byte offset. Functions take the text as a string (Buffer.Text or a
// snapshot's Text) and return ranges in the same coordinate space the
// rest of the engine uses, so results can go straight into a style map
// or a position conversion.
package search

import (
	"regexp"
	"strings"

	"github.com/tborchert/inkline/buffer"
	"github.com/tborchert/inkline/stylemap"
)

// Forward finds the first occurrence of needle starting at or after
// from. With wrap set, a miss retries from the top of the text. To
// continue past a previous match, pass its End as from. An empty
// needle never matches.
func Forward(text, needle string, from int, wrap bool) (buffer.Range, bool) {
	if needle == "" {
		return buffer.Range{}, false
	}
	from = clampOffset(from, len(text))

	if i := strings.Index(text[from:], needle); i >= 0 {
		return matchRange(from+i, needle), true
	}
	if wrap {
		if i := strings.Index(text, needle); i >= 0 {
			return matchRange(i, needle), true
		}
	}
	return buffer.Range{}, false
}

// Backward finds the last occurrence of needle contained in text
// before from. With wrap set, a miss retries from the end of the text.
// To continue past a previous match, pass its Start as from.
func Backward(text, needle string, from int, wrap bool) (buffer.Range, bool) {
	if needle == "" {
		return buffer.Range{}, false
	}
	from = clampOffset(from, len(text))

	if i := strings.LastIndex(text[:from], needle); i >= 0 {
		return matchRange(i, needle), true
	}
	if wrap {
		if i := strings.LastIndex(text, needle); i >= 0 {
			return matchRange(i, needle), true
		}
	}
	return buffer.Range{}, false
}

// All finds every non-overlapping occurrence of needle within the
// given byte range, in order. The range is clamped to the text.
func All(text, needle string, within buffer.Range) []buffer.Range {
	if needle == "" {
		return nil
	}
	within = clampRange(within, len(text))

	var out []buffer.Range
	for at := within.Start; at+len(needle) <= within.End; {
		i := strings.Index(text[at:within.End], needle)
		if i < 0 {
			break
		}
		out = append(out, matchRange(at+i, needle))
		at += i + len(needle)
	}
	return out
}

// ForwardRegexp finds the first match of re at or after from. Anchors
// and word boundaries are evaluated against the searched slice, not
// the full text.
func ForwardRegexp(text string, re *regexp.Regexp, from int, wrap bool) (buffer.Range, bool) {
	from = clampOffset(from, len(text))

	if loc := re.FindStringIndex(text[from:]); loc != nil {
		return buffer.Range{Start: from + loc[0], End: from + loc[1]}, true
	}
	if wrap {
		if loc := re.FindStringIndex(text); loc != nil {
			return buffer.Range{Start: loc[0], End: loc[1]}, true
		}
	}
	return buffer.Range{}, false
}

// BackwardRegexp finds the last match of re contained in text before
// from.
func BackwardRegexp(text string, re *regexp.Regexp, from int, wrap bool) (buffer.Range, bool) {
	from = clampOffset(from, len(text))

	if loc := lastMatch(text[:from], re); loc != nil {
		return buffer.Range{Start: loc[0], End: loc[1]}, true
	}
	if wrap {
		if loc := lastMatch(text, re); loc != nil {
			return buffer.Range{Start: loc[0], End: loc[1]}, true
		}
	}
	return buffer.Range{}, false
}

// AllRegexp finds every match of re within the given byte range, in
// order. The range is clamped to the text.
func AllRegexp(text string, re *regexp.Regexp, within buffer.Range) []buffer.Range {
	within = clampRange(within, len(text))
	if within.IsEmpty() {
		return nil
	}

	locs := re.FindAllStringIndex(text[within.Start:within.End], -1)
	if len(locs) == 0 {
		return nil
	}
	out := make([]buffer.Range, len(locs))
	for i, loc := range locs {
		out[i] = buffer.Range{Start: within.Start + loc[0], End: within.Start + loc[1]}
	}
	return out
}

// MarkMatches records matches as style map entries under the given
// tag and returns how many were added. Clearing the marks later is
// the map's RemoveTag.
func MarkMatches(dst *stylemap.Map, matches []buffer.Range, tag int) int {
	n := 0
	for _, r := range matches {
		if r.IsEmpty() || !r.IsValid() {
			continue
		}
		dst.Add(r, tag)
		n++
	}
	return n
}

func matchRange(start int, needle string) buffer.Range {
	return buffer.Range{Start: start, End: start + len(needle)}
}

func clampOffset(off, max int) int {
	if off < 0 {
		return 0
	}
	if off > max {
		return max
	}
	return off
}

func clampRange(r buffer.Range, max int) buffer.Range {
	r.Start = clampOffset(r.Start, max)
	r.End = clampOffset(r.End, max)
	if r.End < r.Start {
		r.End = r.Start
	}
	return r
}

// lastMatch returns the final match of re in text, or nil. Matches are
// enumerated forward; reversing text and pattern instead garbles
// semantics for most patterns.
func lastMatch(text string, re *regexp.Regexp) []int {
	locs := re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}
	return locs[len(locs)-1]
}

package rope

import "unicode/utf8"

// Point is a line/column position. Both fields are 0-indexed and the
// column is measured in bytes from the start of the line.
type Point struct {
	Line int
	Col  int
}

// TextFlags mark cheap-to-test text properties used for fast paths.
type TextFlags uint8

const (
	// FlagASCII is set when every byte is < 128.
	FlagASCII TextFlags = 1 << iota

	// FlagHasNewlines is set when the text contains at least one '\n'.
	FlagHasNewlines

	// FlagHasTabs is set when the text contains at least one '\t'.
	FlagHasTabs
)

// TextSummary aggregates metrics for a span of text. Summaries combine
// with Add, which lets the tree answer length and line queries without
// touching the text itself.
type TextSummary struct {
	// Bytes is the UTF-8 encoded length.
	Bytes int

	// UTF16Units is the UTF-16 code unit count, kept for protocol
	// coordinates that speak UTF-16.
	UTF16Units int

	// Lines is the number of newline characters, not logical lines.
	Lines int

	// LongestLine is the byte length of the longest line.
	LongestLine int

	// FirstLineLen is the byte length of the first line, excluding
	// any trailing newline.
	FirstLineLen int

	// LastLineLen is the byte length of the text after the final
	// newline. Equals FirstLineLen when the text has no newlines.
	LastLineLen int

	Flags TextFlags
}

// Add combines two adjacent summaries. The empty summary is the identity.
func (s TextSummary) Add(other TextSummary) TextSummary {
	if s.Bytes == 0 {
		return other
	}
	if other.Bytes == 0 {
		return s
	}

	out := TextSummary{
		Bytes:      s.Bytes + other.Bytes,
		UTF16Units: s.UTF16Units + other.UTF16Units,
		Lines:      s.Lines + other.Lines,
	}

	if other.Lines > 0 {
		out.LongestLine = max(s.LongestLine, other.LongestLine)
		// The join line spans s's tail and other's head.
		out.LongestLine = max(out.LongestLine, s.LastLineLen+other.FirstLineLen)
		out.FirstLineLen = s.FirstLineLen
		if s.Lines == 0 {
			out.FirstLineLen = s.LastLineLen + other.FirstLineLen
		}
		out.LastLineLen = other.LastLineLen
	} else {
		joined := s.LastLineLen + other.LastLineLen
		out.LongestLine = max(s.LongestLine, joined)
		out.FirstLineLen = s.FirstLineLen
		if s.Lines == 0 {
			out.FirstLineLen = joined
		}
		out.LastLineLen = joined
	}

	if s.Flags&FlagASCII != 0 && other.Flags&FlagASCII != 0 {
		out.Flags |= FlagASCII
	}
	if (s.Flags|other.Flags)&FlagHasNewlines != 0 {
		out.Flags |= FlagHasNewlines
	}
	if (s.Flags|other.Flags)&FlagHasTabs != 0 {
		out.Flags |= FlagHasTabs
	}

	return out
}

// IsZero reports whether the summary describes empty text.
func (s TextSummary) IsZero() bool {
	return s.Bytes == 0
}

// zeroSummary is the identity element.
func zeroSummary() TextSummary {
	return TextSummary{Flags: FlagASCII}
}

// ComputeSummary scans a string and returns its metrics.
func ComputeSummary(s string) TextSummary {
	if len(s) == 0 {
		return zeroSummary()
	}

	sum := TextSummary{
		Bytes: len(s),
		Flags: FlagASCII,
	}

	lineLen := 0
	for _, r := range s {
		if r <= 0xFFFF {
			sum.UTF16Units++
		} else {
			sum.UTF16Units += 2
		}
		if r > 127 {
			sum.Flags &^= FlagASCII
		}

		if r == '\n' {
			sum.Lines++
			if lineLen > sum.LongestLine {
				sum.LongestLine = lineLen
			}
			if sum.Lines == 1 {
				sum.FirstLineLen = lineLen
			}
			lineLen = 0
			sum.Flags |= FlagHasNewlines
			continue
		}

		if r == '\t' {
			sum.Flags |= FlagHasTabs
		}
		lineLen += utf8.RuneLen(r)
	}

	sum.LastLineLen = lineLen
	if sum.Lines == 0 {
		sum.FirstLineLen = lineLen
		sum.LongestLine = lineLen
	} else if lineLen > sum.LongestLine {
		sum.LongestLine = lineLen
	}

	return sum
}

// countNewlines returns the number of '\n' bytes in s.
func countNewlines(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
		}
	}
	return n
}

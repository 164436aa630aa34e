package rope

import (
	"strings"
	"testing"
	"testing/quick"
)

func TestComputeSummary(t *testing.T) {
	tests := []struct {
		name  string
		input string
		bytes int
		lines int
		ascii bool
	}{
		{"empty", "", 0, 0, true},
		{"ascii", "hello", 5, 0, true},
		{"trailing newline", "hello\n", 6, 1, true},
		{"unicode", "世界", 6, 0, false},
		{"mixed", "hello 世界", 12, 0, false},
		{"tabs", "a\tb", 3, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sum := ComputeSummary(tt.input)
			if sum.Bytes != tt.bytes {
				t.Errorf("Bytes = %d, want %d", sum.Bytes, tt.bytes)
			}
			if sum.Lines != tt.lines {
				t.Errorf("Lines = %d, want %d", sum.Lines, tt.lines)
			}
			if got := sum.Flags&FlagASCII != 0; got != tt.ascii {
				t.Errorf("ASCII flag = %v, want %v", got, tt.ascii)
			}
		})
	}

	if ComputeSummary("a\tb").Flags&FlagHasTabs == 0 {
		t.Error("tab flag not set")
	}
	if ComputeSummary("a\nb").Flags&FlagHasNewlines == 0 {
		t.Error("newline flag not set")
	}
}

func TestSummaryLineLengths(t *testing.T) {
	sum := ComputeSummary("ab\ncdef\ng")
	if sum.FirstLineLen != 2 {
		t.Errorf("FirstLineLen = %d, want 2", sum.FirstLineLen)
	}
	if sum.LastLineLen != 1 {
		t.Errorf("LastLineLen = %d, want 1", sum.LastLineLen)
	}
	if sum.LongestLine != 4 {
		t.Errorf("LongestLine = %d, want 4", sum.LongestLine)
	}
}

func TestSummaryAdd(t *testing.T) {
	s1 := ComputeSummary("hello\n")
	s2 := ComputeSummary("world")
	sum := s1.Add(s2)

	if sum.Bytes != 11 {
		t.Errorf("Bytes = %d, want 11", sum.Bytes)
	}
	if sum.Lines != 1 {
		t.Errorf("Lines = %d, want 1", sum.Lines)
	}
	if sum.LastLineLen != 5 {
		t.Errorf("LastLineLen = %d, want 5", sum.LastLineLen)
	}
}

func TestSummaryAddJoinLine(t *testing.T) {
	// The line spanning the join must be counted as one line.
	left := ComputeSummary("ab\nlongtail")
	right := ComputeSummary("longhead\ncd")
	sum := left.Add(right)

	if sum.LongestLine != len("longtail")+len("longhead") {
		t.Errorf("LongestLine = %d, want %d", sum.LongestLine, len("longtail")+len("longhead"))
	}

	// Left side without newlines folds entirely into right's first line.
	sum = ComputeSummary("abc").Add(ComputeSummary("def\nx"))
	if sum.FirstLineLen != 6 {
		t.Errorf("FirstLineLen = %d, want 6", sum.FirstLineLen)
	}
}

func TestSummaryAddMatchesCompute(t *testing.T) {
	f := func(a, b string) bool {
		got := ComputeSummary(a).Add(ComputeSummary(b))
		want := ComputeSummary(a + b)
		return got == want
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestSummaryAddAssociative(t *testing.T) {
	parts := []string{"", "a", "ab\n", "\n\n", "x\ty\n z", strings.Repeat("q\n", 10)}
	for _, a := range parts {
		for _, b := range parts {
			for _, c := range parts {
				sa, sb, sc := ComputeSummary(a), ComputeSummary(b), ComputeSummary(c)
				left := sa.Add(sb).Add(sc)
				right := sa.Add(sb.Add(sc))
				if left != right {
					t.Fatalf("Add not associative for %q %q %q: %+v vs %+v", a, b, c, left, right)
				}
			}
		}
	}
}

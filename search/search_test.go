package search

import (
	"regexp"
	"testing"

	"github.com/tborchert/inkline/buffer"
	"github.com/tborchert/inkline/stylemap"
)

func TestForward(t *testing.T) {
	text := "abc abc abc"

	r, ok := Forward(text, "abc", 0, false)
	if !ok || r != (buffer.Range{Start: 0, End: 3}) {
		t.Fatalf("from 0: %v, %v", r, ok)
	}

	r, ok = Forward(text, "abc", r.End, false)
	if !ok || r != (buffer.Range{Start: 4, End: 7}) {
		t.Fatalf("continued: %v, %v", r, ok)
	}

	if _, ok := Forward(text, "abc", 9, false); ok {
		t.Error("no match after offset 9 without wrap")
	}
	r, ok = Forward(text, "abc", 9, true)
	if !ok || r != (buffer.Range{Start: 0, End: 3}) {
		t.Errorf("wrapped: %v, %v", r, ok)
	}

	if _, ok := Forward(text, "", 0, true); ok {
		t.Error("empty needle should never match")
	}
	if _, ok := Forward(text, "zzz", 0, true); ok {
		t.Error("absent needle should miss even with wrap")
	}
}

func TestBackward(t *testing.T) {
	text := "abc abc abc"

	r, ok := Backward(text, "abc", len(text), false)
	if !ok || r != (buffer.Range{Start: 8, End: 11}) {
		t.Fatalf("from end: %v, %v", r, ok)
	}

	r, ok = Backward(text, "abc", r.Start, false)
	if !ok || r != (buffer.Range{Start: 4, End: 7}) {
		t.Fatalf("continued: %v, %v", r, ok)
	}

	if _, ok := Backward(text, "abc", 0, false); ok {
		t.Error("nothing before offset 0 without wrap")
	}
	r, ok = Backward(text, "abc", 0, true)
	if !ok || r != (buffer.Range{Start: 8, End: 11}) {
		t.Errorf("wrapped: %v, %v", r, ok)
	}
}

func TestForwardOffsetsAreBytes(t *testing.T) {
	text := "日本語 x 日本語"

	r, ok := Forward(text, "語", 0, false)
	if !ok || r != (buffer.Range{Start: 6, End: 9}) {
		t.Fatalf("first: %v, %v", r, ok)
	}
	r, ok = Forward(text, "語", r.End, false)
	if !ok || r != (buffer.Range{Start: 18, End: 21}) {
		t.Fatalf("second: %v, %v", r, ok)
	}
}

func TestClampedOffsets(t *testing.T) {
	text := "abc"

	if r, ok := Forward(text, "abc", -10, false); !ok || r.Start != 0 {
		t.Errorf("negative from: %v, %v", r, ok)
	}
	if _, ok := Forward(text, "abc", 100, false); ok {
		t.Error("from past the end finds nothing forward")
	}
	if r, ok := Backward(text, "abc", 100, false); !ok || r.Start != 0 {
		t.Errorf("backward from past the end: %v, %v", r, ok)
	}
}

func TestAll(t *testing.T) {
	text := "aaa aa"

	got := All(text, "aa", buffer.Range{Start: 0, End: len(text)})
	want := []buffer.Range{{Start: 0, End: 2}, {Start: 4, End: 6}}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("All = %v, want %v", got, want)
	}

	got = All(text, "aa", buffer.Range{Start: 1, End: len(text)})
	want = []buffer.Range{{Start: 1, End: 3}, {Start: 4, End: 6}}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("windowed All = %v, want %v", got, want)
	}

	if got := All(text, "aa", buffer.Range{Start: -5, End: 99}); len(got) != 2 {
		t.Errorf("clamped window: %v", got)
	}
	if got := All(text, "", buffer.Range{Start: 0, End: len(text)}); got != nil {
		t.Errorf("empty needle: %v", got)
	}
}

func TestRegexp(t *testing.T) {
	text := "a1 b22 c333"
	re := regexp.MustCompile(`\d+`)

	r, ok := ForwardRegexp(text, re, 0, false)
	if !ok || r != (buffer.Range{Start: 1, End: 2}) {
		t.Fatalf("first: %v, %v", r, ok)
	}
	r, ok = ForwardRegexp(text, re, r.End, false)
	if !ok || r != (buffer.Range{Start: 4, End: 6}) {
		t.Fatalf("second: %v, %v", r, ok)
	}

	r, ok = BackwardRegexp(text, re, len(text), false)
	if !ok || r != (buffer.Range{Start: 8, End: 11}) {
		t.Fatalf("backward: %v, %v", r, ok)
	}
	r, ok = BackwardRegexp(text, re, 8, false)
	if !ok || r != (buffer.Range{Start: 4, End: 6}) {
		t.Fatalf("backward continued: %v, %v", r, ok)
	}

	r, ok = ForwardRegexp(text, re, len(text), true)
	if !ok || r != (buffer.Range{Start: 1, End: 2}) {
		t.Errorf("wrapped: %v, %v", r, ok)
	}
}

func TestAllRegexp(t *testing.T) {
	text := "a1 b22 c333"
	re := regexp.MustCompile(`\d+`)

	got := AllRegexp(text, re, buffer.Range{Start: 0, End: len(text)})
	want := []buffer.Range{{Start: 1, End: 2}, {Start: 4, End: 6}, {Start: 8, End: 11}}
	if len(got) != 3 {
		t.Fatalf("AllRegexp = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("match %d = %v, want %v", i, got[i], want[i])
		}
	}

	got = AllRegexp(text, re, buffer.Range{Start: 3, End: 7})
	if len(got) != 1 || got[0] != (buffer.Range{Start: 4, End: 6}) {
		t.Errorf("windowed AllRegexp = %v", got)
	}
}

func TestMarkMatches(t *testing.T) {
	text := "aaa aa"
	m := stylemap.New()
	const tag = 700

	n := MarkMatches(m, All(text, "aa", buffer.Range{Start: 0, End: len(text)}), tag)
	if n != 2 {
		t.Fatalf("marked %d matches, want 2", n)
	}
	found := false
	for _, v := range m.ValuesAt(0) {
		if v == tag {
			found = true
		}
	}
	if !found {
		t.Error("mark missing at first match")
	}
	for _, v := range m.ValuesAt(3) {
		if v == tag {
			t.Error("mark present outside matches")
		}
	}

	if removed := m.RemoveTag(tag); removed != 2 {
		t.Errorf("RemoveTag removed %d, want 2", removed)
	}
}

func TestSearchSnapshot(t *testing.T) {
	buf := buffer.NewFromString("hello world\nhello go")
	snap := buf.Snapshot()

	r, ok := Forward(snap.Text(), "hello", 1, false)
	if !ok || r != (buffer.Range{Start: 12, End: 17}) {
		t.Fatalf("Forward = %v, %v", r, ok)
	}
	if pos := snap.OffsetToPosition(r.Start); pos != (buffer.Position{Line: 1, Col: 0}) {
		t.Errorf("match position = %v, want (1:0)", pos)
	}
}

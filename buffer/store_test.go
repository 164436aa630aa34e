package buffer

import (
	"strings"
	"testing"

	"github.com/tborchert/inkline/rope"
)

// Both stores must answer every query identically; the buffer treats
// them as interchangeable.
func TestStoreParity(t *testing.T) {
	text := "first\nsecond line\nthird\n\nfifth"
	stores := map[string]Store{
		"rope": NewRopeStore(text),
		"flat": flatStore{text: text},
	}

	for name, st := range stores {
		t.Run(name, func(t *testing.T) {
			if st.Len() != len(text) {
				t.Errorf("Len = %d, want %d", st.Len(), len(text))
			}
			if st.LineCount() != 5 {
				t.Errorf("LineCount = %d, want 5", st.LineCount())
			}
			if st.String() != text {
				t.Errorf("String = %q", st.String())
			}
			if got := st.Slice(6, 12); got != "second" {
				t.Errorf("Slice(6, 12) = %q", got)
			}
			if got := st.Slice(-5, 900); got != text {
				t.Errorf("clamped Slice = %q", got)
			}
			if got := st.LineText(3); got != "" {
				t.Errorf("LineText(3) = %q, want empty", got)
			}
			if got := st.LineStartOffset(4); got != 25 {
				t.Errorf("LineStartOffset(4) = %d, want 25", got)
			}
			if got := st.LineStartOffset(99); got != len(text) {
				t.Errorf("LineStartOffset(99) = %d, want %d", got, len(text))
			}
			if got := st.LineEndOffset(0); got != 5 {
				t.Errorf("LineEndOffset(0) = %d, want 5", got)
			}
			if b, ok := st.ByteAt(6); !ok || b != 's' {
				t.Errorf("ByteAt(6) = %q, %v", b, ok)
			}
			if _, ok := st.ByteAt(len(text)); ok {
				t.Error("ByteAt(len) should be false")
			}
			if got := st.OffsetToPoint(8); got != (rope.Point{Line: 1, Col: 2}) {
				t.Errorf("OffsetToPoint(8) = %v", got)
			}
			if got := st.OffsetToPoint(999); got != (rope.Point{Line: 4, Col: 5}) {
				t.Errorf("OffsetToPoint(999) = %v", got)
			}
			if got := st.PointToOffset(rope.Point{Line: 1, Col: 2}); got != 8 {
				t.Errorf("PointToOffset = %d, want 8", got)
			}
			if got := st.PointToOffset(rope.Point{Line: 0, Col: 99}); got != 5 {
				t.Errorf("clamped PointToOffset = %d, want 5", got)
			}
		})
	}
}

func TestStoreParityUnicode(t *testing.T) {
	text := "a世b\n日本"
	stores := map[string]Store{
		"rope": NewRopeStore(text),
		"flat": flatStore{text: text},
	}

	for name, st := range stores {
		t.Run(name, func(t *testing.T) {
			// Offset 2 is inside 世; both stores snap to the rune start.
			if got := st.OffsetToPoint(2); got != (rope.Point{Line: 0, Col: 1}) {
				t.Errorf("OffsetToPoint(2) = %v, want (0,1)", got)
			}
			if got := st.LineText(1); got != "日本" {
				t.Errorf("LineText(1) = %q", got)
			}
		})
	}
}

func TestStoreReplace(t *testing.T) {
	st := Store(flatStore{text: "hello world"})

	st2 := st.Replace(6, 11, "go")
	if st2.String() != "hello go" {
		t.Errorf("Replace result = %q", st2.String())
	}
	if st.String() != "hello world" {
		t.Error("Replace must not mutate the receiver")
	}
}

func TestFlatStorePromotion(t *testing.T) {
	st := Store(flatStore{text: "short"})

	st = st.Replace(5, 5, strings.Repeat("x", flatPromoteLimit))
	if _, ok := st.(ropeStore); !ok {
		t.Fatalf("store should promote to rope past the limit, got %T", st)
	}
	if st.Len() != 5+flatPromoteLimit {
		t.Errorf("promoted store lost content: len %d", st.Len())
	}
}

func TestNewFlatStoreLargeInput(t *testing.T) {
	big := strings.Repeat("line\n", 2000)
	st := NewFlatStore(big)
	if _, ok := st.(ropeStore); !ok {
		t.Fatalf("oversized flat store should start as rope, got %T", st)
	}
}

func TestStoreFromRope(t *testing.T) {
	r := rope.FromString("shared")
	st := StoreFromRope(r)
	if st.String() != "shared" {
		t.Errorf("StoreFromRope = %q", st.String())
	}
}

func TestBufferWithFlatStore(t *testing.T) {
	b := NewFromString("type here", WithFlatStore())

	if _, err := b.Insert(4, "d"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if b.Text() != "typed here" {
		t.Errorf("expected 'typed here', got %q", b.Text())
	}
	if got := b.OffsetToPosition(7); got != (Position{Line: 0, Col: 7}) {
		t.Errorf("OffsetToPosition(7) = %v", got)
	}
}

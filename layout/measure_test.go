package layout

import "testing"

func TestVisualWidth(t *testing.T) {
	tests := []struct {
		text     string
		tabWidth int
		want     int
	}{
		{"", 4, 0},
		{"abc", 4, 3},
		{"a\tb", 4, 5},
		{"a\tb", 8, 9},
		{"\t\t", 4, 8},
		{"世界", 4, 4},
		{"世\tb", 4, 5},
		{"a\x01b", 4, 2},
	}

	for _, tt := range tests {
		if got := VisualWidth(tt.text, tt.tabWidth); got != tt.want {
			t.Errorf("VisualWidth(%q, %d) = %d, want %d", tt.text, tt.tabWidth, got, tt.want)
		}
	}
}

func TestCellWidth(t *testing.T) {
	if got := cellWidth("\t", 2, 4, false); got != 2 {
		t.Errorf("tab at col 2 = %d, want 2", got)
	}
	if got := cellWidth("\t", 4, 4, false); got != 4 {
		t.Errorf("tab at stop = %d, want 4", got)
	}
	if got := cellWidth("\x01", 0, 4, false); got != 0 {
		t.Errorf("hidden control = %d, want 0", got)
	}
	if got := cellWidth("\x01", 0, 4, true); got != 2 {
		t.Errorf("shown control = %d, want 2", got)
	}
	if got := cellWidth("世", 0, 4, false); got != 2 {
		t.Errorf("wide rune = %d, want 2", got)
	}
}

func TestFirstVisible(t *testing.T) {
	tests := []struct {
		text     string
		shift    int
		tabWidth int
		want     int
	}{
		{"hello", 0, 4, 0},
		{"hello", 2, 4, 2},
		{"hello", 99, 4, 5},
		{"世界abc", 1, 4, 3}, // straddled wide rune is skipped
		{"世界abc", 2, 4, 3},
		{"a\tb", 1, 4, 1},
		{"a\tb", 3, 4, 2},
	}

	for _, tt := range tests {
		if got := firstVisible(tt.text, tt.shift, tt.tabWidth); got != tt.want {
			t.Errorf("firstVisible(%q, %d, %d) = %d, want %d",
				tt.text, tt.shift, tt.tabWidth, got, tt.want)
		}
	}
}

func TestWrapBreaksChar(t *testing.T) {
	cfg := Config{Wrap: WrapChar, ViewportWidth: 4}

	got := wrapBreaks("abcdef", cfg, 4)
	if len(got) != 1 || got[0] != 4 {
		t.Errorf("breaks = %v, want [4]", got)
	}

	cfg.ViewportWidth = 3
	got = wrapBreaks("世界世", cfg, 4)
	if len(got) != 2 || got[0] != 3 || got[1] != 6 {
		t.Errorf("wide-rune breaks = %v, want [3 6]", got)
	}

	if got := wrapBreaks("abc", cfg, 4); got != nil {
		t.Errorf("line narrower than viewport wrapped: %v", got)
	}

	cfg.ViewportWidth = 0
	if got := wrapBreaks("abcdef", cfg, 4); got != nil {
		t.Errorf("zero-width viewport wrapped: %v", got)
	}

	if got := wrapBreaks("abcdef", Config{Wrap: WrapNone, ViewportWidth: 4}, 4); got != nil {
		t.Errorf("no-wrap mode wrapped: %v", got)
	}
}

func TestWrapBreaksWord(t *testing.T) {
	cfg := Config{Wrap: WrapWord, ViewportWidth: 10}

	got := wrapBreaks("hello world foo", cfg, 4)
	if len(got) != 1 || got[0] != 6 {
		t.Errorf("word breaks = %v, want [6]", got)
	}

	// No whitespace falls back to a hard break.
	cfg.ViewportWidth = 4
	got = wrapBreaks("abcdefghij", cfg, 4)
	if len(got) != 2 || got[0] != 4 || got[1] != 8 {
		t.Errorf("fallback breaks = %v, want [4 8]", got)
	}
}

func TestWrapBreaksControlVisibility(t *testing.T) {
	hidden := Config{Wrap: WrapChar, ViewportWidth: 3}
	shown := Config{Wrap: WrapChar, ViewportWidth: 3, ShowControl: true}

	text := "a\x01bcd"

	got := wrapBreaks(text, hidden, 4)
	if len(got) != 1 || got[0] != 4 {
		t.Errorf("hidden-control breaks = %v, want [4]", got)
	}

	got = wrapBreaks(text, shown, 4)
	if len(got) != 1 || got[0] != 2 {
		t.Errorf("shown-control breaks = %v, want [2]", got)
	}
}

func TestWrapBreaksOversizeCluster(t *testing.T) {
	cfg := Config{Wrap: WrapChar, ViewportWidth: 1}

	// Each wide rune overflows a 1-cell viewport; one per row, no loop.
	got := wrapBreaks("世界", cfg, 4)
	if len(got) != 1 || got[0] != 3 {
		t.Errorf("breaks = %v, want [3]", got)
	}
}

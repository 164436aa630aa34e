package layout

// WrapMode selects how lines wider than the viewport are presented.
type WrapMode int

const (
	// WrapNone scrolls long lines horizontally instead of wrapping.
	WrapNone WrapMode = iota

	// WrapChar breaks a line at the viewport edge, mid-word if needed.
	WrapChar

	// WrapWord prefers breaking after the last whitespace before the
	// viewport edge, falling back to a hard break.
	WrapWord
)

// String returns the mode name.
func (m WrapMode) String() string {
	switch m {
	case WrapNone:
		return "none"
	case WrapChar:
		return "char"
	case WrapWord:
		return "word"
	default:
		return "unknown"
	}
}

// Config is the rendering configuration the cache fingerprints. Two
// configs are the same fingerprint exactly when they are equal.
type Config struct {
	// Wrap selects the wrapping mode.
	Wrap WrapMode

	// ViewportWidth and ViewportHeight are the visible area in cells.
	ViewportWidth  int
	ViewportHeight int

	// Shift is the horizontal scroll offset in cells, used only when
	// Wrap is WrapNone.
	Shift int

	// ShowControl renders control characters in caret notation instead
	// of hiding them. Affects where wrapped lines break.
	ShowControl bool
}

// Wrapping reports whether the config calls for line wrapping.
func (c Config) Wrapping() bool {
	return c.Wrap != WrapNone
}

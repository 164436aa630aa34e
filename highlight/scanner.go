// Package highlight scans document text with chroma lexers and records
// the results as style map entries. The scanner picks a lexer from an
// explicit language name, the document's filename, or the content
// itself, and collapses chroma's token types onto a compact tag space
// shared with the rest of the engine.
package highlight

import (
	"path/filepath"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/go-enry/go-enry/v2"

	"github.com/tborchert/inkline/buffer"
	"github.com/tborchert/inkline/stylemap"
)

// Scanner tokenizes document text into style map entries. Methods are
// safe for concurrent use; the resolved lexer is cached until the
// language or filename changes.
type Scanner struct {
	mu       sync.Mutex
	language string
	filename string
	lexer    chroma.Lexer
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithLanguage fixes the lexer by language name or alias ("go",
// "python", "Markdown"). An unknown name falls back to detection.
func WithLanguage(name string) Option {
	return func(s *Scanner) { s.language = name }
}

// WithFilename sets the filename used for language detection.
func WithFilename(name string) Option {
	return func(s *Scanner) { s.filename = name }
}

// NewScanner creates a scanner. Without options the language is
// detected from the first scanned content.
func NewScanner(opts ...Option) *Scanner {
	s := &Scanner{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetLanguage changes the language and discards the resolved lexer.
func (s *Scanner) SetLanguage(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.language = name
	s.lexer = nil
}

// SetFilename changes the detection filename and discards the resolved
// lexer.
func (s *Scanner) SetFilename(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filename = name
	s.lexer = nil
}

// Language returns the resolved lexer's name, or the configured
// language while no lexer has been resolved yet.
func (s *Scanner) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lexer != nil {
		return s.lexer.Config().Name
	}
	return s.language
}

// Scan tokenizes the whole text and replaces all scanner-owned entries
// in dst with the new results. Entries under caller-owned tags are left
// alone. On a tokenization error dst is unchanged.
func (s *Scanner) Scan(text string, dst *stylemap.Map) error {
	tokens, err := s.tokenize(text)
	if err != nil {
		return err
	}
	clearScanTags(dst)
	emitTokens(tokens, buffer.Range{Start: 0, End: len(text)}, len(text), dst)
	return nil
}

// ScanRange tokenizes the whole text but only rewrites entries for
// tokens that intersect window, leaving results outside it in place.
// Tokenization always starts from the top: lexer state for a window is
// not knowable without the text before it.
func (s *Scanner) ScanRange(text string, window buffer.Range, dst *stylemap.Map) error {
	if !window.IsValid() {
		return buffer.ErrInvalidRange
	}
	tokens, err := s.tokenize(text)
	if err != nil {
		return err
	}
	removeScanEntries(dst, window)
	emitTokens(tokens, window, len(text), dst)
	return nil
}

func (s *Scanner) tokenize(text string) ([]chroma.Token, error) {
	lexer := s.lexerFor(text)
	// Offsets must map back into the document, so CRLF is not rewritten
	// to LF for the lexer.
	return chroma.Tokenise(lexer, &chroma.TokeniseOptions{State: "root"}, text)
}

// lexerFor returns the cached lexer, resolving it on first use. A
// resolution against empty text learns nothing from content and is not
// cached unless a language or filename pins the choice anyway.
func (s *Scanner) lexerFor(text string) chroma.Lexer {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lexer != nil {
		return s.lexer
	}
	lexer := chroma.Coalesce(selectLexer(s.language, s.filename, text))
	if s.language != "" || s.filename != "" || text != "" {
		s.lexer = lexer
	}
	return lexer
}

// selectLexer resolves a lexer: explicit language name, then enry
// detection over filename and content, then chroma's own filename match
// and content analysis, then plain text.
func selectLexer(language, filename, text string) chroma.Lexer {
	if language != "" {
		if l := lexers.Get(language); l != nil {
			return l
		}
	}

	base := filename
	if base != "" {
		base = filepath.Base(base)
	}
	if name := enry.GetLanguage(base, []byte(text)); name != enry.OtherLanguage {
		if l := lexers.Get(name); l != nil {
			return l
		}
	}
	if base != "" {
		if l := lexers.Match(base); l != nil {
			return l
		}
	}
	if l := lexers.Analyse(text); l != nil {
		return l
	}
	return lexers.Fallback
}

// emitTokens adds one entry per styled token intersecting window.
// Token ranges are clamped to the document: lexers configured with
// EnsureNL tokenize one synthetic trailing newline.
func emitTokens(tokens []chroma.Token, window buffer.Range, docLen int, dst *stylemap.Map) {
	off := 0
	for _, tok := range tokens {
		if tok.Type == chroma.EOFType {
			break
		}
		r := buffer.Range{Start: off, End: off + len(tok.Value)}
		off = r.End
		if r.Start >= window.End || r.Start >= docLen {
			break
		}
		if r.End > docLen {
			r.End = docLen
		}
		if r.IsEmpty() || !r.Overlaps(window) {
			continue
		}
		if tag := tagFor(tok.Type); tag != TagNone {
			dst.Add(r, int(tag))
		}
	}
}

func clearScanTags(dst *stylemap.Map) {
	for t := TagNone + 1; t < tagCount; t++ {
		dst.RemoveTag(int(t))
	}
}

// removeScanEntries drops scanner-owned entries overlapping window.
func removeScanEntries(dst *stylemap.Map, window buffer.Range) {
	for _, e := range dst.Entries() {
		if IsScanTag(e.Tag) && e.Range.Overlaps(window) {
			dst.Remove(e.Range, e.Tag)
		}
	}
}

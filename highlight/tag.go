package highlight

import "github.com/alecthomas/chroma/v2"

// Tag is a compact style class written into the style map. The scanner
// owns the values between TagNone and the end of this block; callers
// storing unrelated tags in the same map should pick values outside it.
type Tag int

const (
	TagNone Tag = iota

	TagKeyword
	TagName
	TagFunction
	TagType
	TagConstant

	TagString
	TagEscape
	TagNumber

	TagOperator
	TagPunctuation

	TagComment
	TagPreproc

	// Markup
	TagTag
	TagAttribute
	TagHeading
	TagEmphasis
	TagStrong
	TagDeleted
	TagInserted

	TagError

	tagCount
)

// tagNames maps tags to their string names.
var tagNames = []string{
	TagNone:        "none",
	TagKeyword:     "keyword",
	TagName:        "name",
	TagFunction:    "function",
	TagType:        "type",
	TagConstant:    "constant",
	TagString:      "string",
	TagEscape:      "escape",
	TagNumber:      "number",
	TagOperator:    "operator",
	TagPunctuation: "punctuation",
	TagComment:     "comment",
	TagPreproc:     "preproc",
	TagTag:         "tag",
	TagAttribute:   "attribute",
	TagHeading:     "heading",
	TagEmphasis:    "emphasis",
	TagStrong:      "strong",
	TagDeleted:     "deleted",
	TagInserted:    "inserted",
	TagError:       "error",
}

// String returns the string representation of a tag.
func (t Tag) String() string {
	if t >= 0 && int(t) < len(tagNames) {
		return tagNames[t]
	}
	return "unknown"
}

// IsScanTag reports whether a style map tag value is one the scanner
// writes. Useful for separating scan results from caller-owned entries
// sharing the map.
func IsScanTag(tag int) bool {
	return tag > int(TagNone) && tag < int(tagCount)
}

// tagFor collapses a chroma token type onto the compact tag space.
// Specific types are matched first, then the literal sub-categories,
// then whole categories. Text, whitespace, and terminal-output types
// map to TagNone and produce no entry.
func tagFor(t chroma.TokenType) Tag {
	switch t {
	case chroma.Error:
		return TagError
	case chroma.KeywordType:
		return TagType
	case chroma.KeywordConstant:
		return TagConstant
	case chroma.OperatorWord:
		return TagKeyword
	case chroma.NameFunction:
		return TagFunction
	case chroma.NameClass, chroma.NameNamespace, chroma.NameException:
		return TagType
	case chroma.NameConstant:
		return TagConstant
	case chroma.NameTag:
		return TagTag
	case chroma.NameAttribute:
		return TagAttribute
	case chroma.LiteralStringEscape:
		return TagEscape
	case chroma.CommentPreproc, chroma.CommentPreprocFile:
		return TagPreproc
	case chroma.GenericHeading, chroma.GenericSubheading:
		return TagHeading
	case chroma.GenericEmph:
		return TagEmphasis
	case chroma.GenericStrong:
		return TagStrong
	case chroma.GenericDeleted:
		return TagDeleted
	case chroma.GenericInserted:
		return TagInserted
	case chroma.GenericError, chroma.GenericTraceback:
		return TagError
	}

	if t < 0 {
		// Formatter-level types (Background, Line, ...) never label text.
		return TagNone
	}

	switch t.SubCategory() {
	case chroma.LiteralString:
		return TagString
	case chroma.LiteralNumber:
		return TagNumber
	}

	switch t.Category() {
	case chroma.Keyword:
		return TagKeyword
	case chroma.Name:
		return TagName
	case chroma.Literal:
		return TagConstant
	case chroma.Operator:
		return TagOperator
	case chroma.Punctuation:
		return TagPunctuation
	case chroma.Comment:
		return TagComment
	}
	return TagNone
}

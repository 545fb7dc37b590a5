package wrap

import "unicode/utf8"

// Config holds the options that control how an import statement is wrapped
type Config struct {
	MultiLineOutput      Mode   // layout strategy used for multi-line output
	Indent               string // prepended to continuation lines
	LineLength           int    // maximum physical line length
	WrapLength           int    // overrides LineLength for wrapping when nonzero
	CommentPrefix        string // inserted before a trailing comment
	IncludeTrailingComma bool   // add a trailing comma to wrapped groups
	IgnoreComments       bool   // strip comments from the rendered statement
	BalancedWrapping     bool   // shrink the width until the last line is not ragged
	UseParentheses       bool   // continue lines with parentheses instead of a backslash
}

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig() Config {
	return Config{
		MultiLineOutput: Grid,
		Indent:          "    ",
		LineLength:      79,
		CommentPrefix:   "  #",
	}
}

// width returns the budget used when wrapping
func (c Config) width() int {
	if c.WrapLength != 0 {
		return c.WrapLength
	}
	return c.LineLength
}

// textLen counts code points, not bytes.
func textLen(s string) int {
	return utf8.RuneCountInString(s)
}

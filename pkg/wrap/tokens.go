package wrap

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// Delimiters a long line may be split at, in order of preference.
const (
	importDelimiter = "import "
	attrDelimiter   = "."
	aliasDelimiter  = "as "
)

var delimiters = []string{importDelimiter, attrDelimiter, aliasDelimiter}

var (
	lineLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `#[^\n]*`},
		{Name: "String", Pattern: `"(?:\\.|[^"\\])*"|'(?:\\.|[^'\\])*'`},
		{Name: "Word", Pattern: `[\p{L}\p{N}_]+`},
		{Name: "Whitespace", Pattern: `\s+`},
		{Name: "Other", Pattern: `.`},
	})

	commentToken    = mustTokenType("Comment")
	wordToken       = mustTokenType("Word")
	whitespaceToken = mustTokenType("Whitespace")
	otherToken      = mustTokenType("Other")
)

func mustTokenType(name string) lexer.TokenType {
	t, ok := lineLexer.Symbols()[name]
	if !ok {
		panic("unknown token " + name)
	}
	return t
}

// span is a byte range [start, end) within a line
type span struct {
	start int
	end   int
}

// scannedLine is a line split into its code and trailing comment
type scannedLine struct {
	code       string
	comment    string // text after the '#'
	hasComment bool
	tokens     []lexer.Token // tokens of code only
}

// scanLine tokenizes text. Quoted strings are single tokens, so neither a
// '#' nor a delimiter inside them is ever seen.
func scanLine(text string) (scannedLine, error) {
	lex, err := lineLexer.LexString("", text)
	if err != nil {
		return scannedLine{}, err
	}
	tokens, err := lexer.ConsumeAll(lex)
	if err != nil {
		return scannedLine{}, err
	}

	result := scannedLine{code: text}
	for i, tok := range tokens {
		if tok.EOF() {
			result.tokens = tokens[:i]
			break
		}
		if tok.Type == commentToken {
			result.code = text[:tok.Pos.Offset]
			result.comment = text[tok.Pos.Offset+1:]
			result.hasComment = true
			result.tokens = tokens[:i]
			break
		}
	}
	return result, nil
}

// delimiterSpans returns the positions of delimiter in the code tokens.
// Every delimiter must sit between two words: "import " and "as " are a
// whole word followed by exactly one space, "." joins two words directly.
func (s scannedLine) delimiterSpans(delimiter string) []span {
	var spans []span
	tokens := s.tokens
	isWord := func(i int) bool {
		return i >= 0 && i < len(tokens) && tokens[i].Type == wordToken
	}

	for i, tok := range tokens {
		switch delimiter {
		case attrDelimiter:
			if tok.Type == otherToken && tok.Value == "." && isWord(i-1) && isWord(i+1) {
				spans = append(spans, span{tok.Pos.Offset, tok.Pos.Offset + 1})
			}
		default:
			keyword := strings.TrimSuffix(delimiter, " ")
			if tok.Type != wordToken || tok.Value != keyword {
				continue
			}
			if i+1 < len(tokens) && tokens[i+1].Type == whitespaceToken && tokens[i+1].Value == " " && isWord(i+2) {
				spans = append(spans, span{tok.Pos.Offset, tokens[i+1].Pos.Offset + 1})
			}
		}
	}
	return spans
}

// splitAt cuts the code around every span
func (s scannedLine) splitAt(spans []span) []string {
	parts := make([]string, 0, len(spans)+1)
	start := 0
	for _, sp := range spans {
		parts = append(parts, s.code[start:sp.start])
		start = sp.end
	}
	return append(parts, s.code[start:])
}

// chooseDelimiter picks the first delimiter that occurs in the code and
// that the code does not start with.
func (s scannedLine) chooseDelimiter() (string, []span, bool) {
	trimmed := strings.TrimSpace(s.code)
	for _, delimiter := range delimiters {
		spans := s.delimiterSpans(delimiter)
		if len(spans) == 0 || strings.HasPrefix(trimmed, delimiter) {
			continue
		}
		return delimiter, spans, true
	}
	return "", nil, false
}

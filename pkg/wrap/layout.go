package wrap

import "strings"

// Layout is the input of a layout strategy
type Layout struct {
	Statement            string   // prefix, e.g. "from pkg import "
	Imports              []string // names in output order, never modified
	WhiteSpace           string   // alignment under the opening parenthesis
	Indent               string   // configured continuation indent
	LineLength           int
	Comments             []string
	LineSeparator        string
	CommentPrefix        string
	IncludeTrailingComma bool
	RemoveComments       bool
}

// FormatFunc renders an import statement, possibly over several lines
type FormatFunc func(Layout) string

func (l Layout) comma() string {
	if l.IncludeTrailingComma {
		return ","
	}
	return ""
}

func (l Layout) withComments(comments []string, line string) string {
	return addToLine(comments, line, l.RemoveComments, l.CommentPrefix)
}

func grid(l Layout) string {
	if len(l.Imports) == 0 {
		return ""
	}

	statement := l.Statement + "(" + l.Imports[0]
	comments := l.Comments
	for _, next := range l.Imports[1:] {
		nextStatement := l.withComments(comments, statement+", "+next)
		if lastLineLen(nextStatement, l.LineSeparator)+1 <= l.LineLength {
			statement += ", " + next
			continue
		}

		// An alias that does not fit is split over lines at its spaces.
		words := strings.Split(next, " ")
		lines := []string{l.WhiteSpace + words[0]}
		for _, part := range words[1:] {
			newLine := lines[len(lines)-1] + " " + part
			if textLen(newLine)+1 > l.LineLength {
				lines = append(lines, l.WhiteSpace+part)
			} else {
				lines[len(lines)-1] = newLine
			}
		}
		statement = l.withComments(comments, statement+",") + l.LineSeparator + strings.Join(lines, l.LineSeparator)
		comments = nil
	}

	return l.withComments(comments, statement+l.comma()+")")
}

func vertical(l Layout) string {
	if len(l.Imports) == 0 {
		return ""
	}

	first := l.withComments(l.Comments, l.Imports[0]+",") + l.LineSeparator + l.WhiteSpace
	rest := strings.Join(l.Imports[1:], ","+l.LineSeparator+l.WhiteSpace)
	return l.Statement + "(" + first + rest + l.comma() + ")"
}

func hangingIndentEndLine(line string) string {
	if !strings.HasSuffix(line, " ") {
		line += " "
	}
	return line + "\\"
}

func hangingIndent(l Layout) string {
	if len(l.Imports) == 0 {
		return ""
	}

	limit := l.LineLength - 3
	statement := l.Statement + l.Imports[0]
	if textLen(statement) > limit {
		statement = hangingIndentEndLine(l.Statement) + l.LineSeparator + l.Indent + l.Imports[0]
	}
	for _, next := range l.Imports[1:] {
		nextStatement := statement + ", " + next
		if lastLineLen(nextStatement, l.LineSeparator) > limit {
			nextStatement = hangingIndentEndLine(statement+",") + l.LineSeparator + l.Indent + next
		}
		statement = nextStatement
	}

	if len(l.Comments) == 0 {
		return statement
	}
	commented := l.withComments(l.Comments, statement)
	if lastLineLen(commented, l.LineSeparator) <= limit+2 {
		return commented
	}
	// Comments that do not fit get a continuation line of their own.
	return hangingIndentEndLine(statement) + l.LineSeparator +
		addToLine(l.Comments, l.Indent, l.RemoveComments, strings.TrimLeft(l.CommentPrefix, " \t"))
}

func backslashGrid(l Layout) string {
	if l.WhiteSpace != "" {
		l.Indent = l.WhiteSpace[:len(l.WhiteSpace)-1]
	}
	return hangingIndent(l)
}

func verticalHangingIndent(l Layout) string {
	if len(l.Imports) == 0 {
		return ""
	}

	opening := l.withComments(l.Comments, "")
	names := strings.Join(l.Imports, ","+l.LineSeparator+l.Indent)
	return l.Statement + "(" + opening + l.LineSeparator + l.Indent + names + l.comma() + l.LineSeparator + ")"
}

func verticalHangingIndentBracket(l Layout) string {
	if len(l.Imports) == 0 {
		return ""
	}
	statement := verticalHangingIndent(l)
	return statement[:len(statement)-1] + l.Indent + ")"
}

func verticalGridCommon(l Layout, needTrailingChar bool) string {
	statement := l.Statement + l.withComments(l.Comments, "(") + l.LineSeparator + l.Indent + l.Imports[0]
	rest := l.Imports[1:]
	for i, next := range rest {
		nextStatement := statement + ", " + next
		current := lastLineLen(nextStatement, l.LineSeparator)
		last := i == len(rest)-1
		if !last || l.IncludeTrailingComma {
			// room for the comma after this name
			current++
		}
		if last && needTrailingChar {
			// room for the closing parenthesis
			current++
		}
		if current > l.LineLength {
			nextStatement = statement + "," + l.LineSeparator + l.Indent + next
		}
		statement = nextStatement
	}
	return statement + l.comma()
}

func verticalGrid(l Layout) string {
	if len(l.Imports) == 0 {
		return ""
	}
	return verticalGridCommon(l, true) + ")"
}

func verticalGridGrouped(l Layout) string {
	if len(l.Imports) == 0 {
		return ""
	}
	return verticalGridCommon(l, false) + l.LineSeparator + ")"
}

func noqa(l Layout) string {
	if len(l.Imports) == 0 {
		return ""
	}

	statement := l.Statement + strings.Join(l.Imports, ", ")
	if len(l.Comments) == 0 {
		if textLen(statement) <= l.LineLength {
			return statement
		}
		return statement + l.CommentPrefix + " NOQA"
	}

	comments := strings.Join(l.Comments, " ")
	if textLen(statement)+textLen(l.CommentPrefix)+1+textLen(comments) <= l.LineLength {
		return statement + l.CommentPrefix + " " + comments
	}
	for _, comment := range l.Comments {
		// a comment this mode wrote earlier reads back as "NOQA ..."
		if comment == "NOQA" || strings.HasPrefix(comment, "NOQA ") {
			return statement + l.CommentPrefix + " " + comments
		}
	}
	return statement + l.CommentPrefix + " NOQA " + comments
}

func verticalPrefixFromModuleImport(l Layout) string {
	if len(l.Imports) == 0 {
		return ""
	}

	output := l.Statement + l.Imports[0]
	comments := l.Comments
	statement := output
	for _, next := range l.Imports[1:] {
		statement += ", " + next
		if lastLineLen(l.withComments(comments, statement), l.LineSeparator)+1 > l.LineLength {
			// Start a new statement with the same prefix.
			statement = l.withComments(comments, output) + l.LineSeparator + l.Statement + next
			comments = nil
		}
		output = statement
	}
	return l.withComments(comments, output)
}

func hangingIndentWithParentheses(l Layout) string {
	if len(l.Imports) == 0 {
		return ""
	}

	limit := l.LineLength - 1
	opening := l.Statement + "("
	comments := l.Comments
	statement := opening + l.Imports[0]
	if textLen(statement) > limit {
		statement = l.withComments(comments, opening) + l.LineSeparator + l.Indent + l.Imports[0]
		comments = nil
	}
	for _, next := range l.Imports[1:] {
		candidate := statement + ", " + next
		if lastLineLen(l.withComments(comments, candidate), l.LineSeparator) > limit {
			statement = l.withComments(comments, statement+",") + l.LineSeparator + l.Indent + next
			comments = nil
			continue
		}
		statement = candidate
	}

	// Comments that never forced a break follow the closing parenthesis.
	return l.withComments(comments, statement+l.comma()+")")
}

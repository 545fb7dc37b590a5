package formatter

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/siyuan-infoblox/importwrap/pkg/wrap"
)

// Statement represents a single `from module import names` statement
type Statement struct {
	Module   string   // module path, relative dots included
	Names    []string // imported names, "name as alias" kept together
	Comments []string // comments found on any line of the statement
	Start    int      // index of the first source line
	End      int      // index one past the last source line
}

func (s Statement) prefix() string {
	return "from " + s.Module + " import "
}

// singleLine joins the whole statement onto one line
func (s Statement) singleLine(cfg wrap.Config) string {
	line := s.prefix() + strings.Join(s.Names, ", ")
	if len(s.Comments) > 0 && !cfg.IgnoreComments {
		line += cfg.CommentPrefix + " " + strings.Join(s.Comments, "; ")
	}
	return line
}

// Render returns the statement on one line when it fits, otherwise wrapped
// with the configured layout. A layout that still yields a single line, such
// as GRID with one name, is replaced by splitting the flat line itself.
func (s Statement) Render(cfg wrap.Config, lineSeparator string) string {
	line := s.singleLine(cfg)
	if utf8.RuneCountInString(line) <= cfg.LineLength {
		return line
	}
	rendered := wrap.ImportStatement(s.prefix(), s.Names, s.Comments, cfg, lineSeparator)
	if cfg.MultiLineOutput != wrap.NOQA && !strings.Contains(rendered, lineSeparator) {
		return wrap.Line(line, lineSeparator, cfg)
	}
	return rendered
}

func (s *Statement) addComment(comment string) {
	if comment != "" && !slices.Contains(s.Comments, comment) {
		s.Comments = append(s.Comments, comment)
	}
}

// splitComment separates the code of an import line from its comment. Import
// statements hold no string literals so the first '#' starts the comment.
func splitComment(line string) (string, string) {
	code, comment, _ := strings.Cut(line, "#")
	return code, strings.TrimSpace(comment)
}

// parseFromImport collects the from-import starting at lines[start], following
// parenthesized and backslash continuations. Star imports and anything that
// is not a plain list of names are rejected.
func parseFromImport(lines []string, start int) (Statement, bool) {
	code, comment := splitComment(lines[start])
	rest, ok := strings.CutPrefix(code, "from ")
	if !ok {
		return Statement{}, false
	}
	module, names, ok := strings.Cut(rest, " import ")
	module = strings.TrimSpace(module)
	if !ok || !isModule(module) {
		return Statement{}, false
	}

	stmt := Statement{Module: module, Start: start}
	stmt.addComment(comment)

	var body []string
	end := start + 1
	text := strings.TrimSpace(names)
	if strings.HasPrefix(text, "(") {
		text = text[1:]
		for {
			before, after, closed := strings.Cut(text, ")")
			if closed {
				if strings.TrimSpace(after) != "" {
					return Statement{}, false
				}
				body = append(body, before)
				break
			}
			body = append(body, text)
			if end >= len(lines) {
				return Statement{}, false
			}
			text, comment = splitComment(lines[end])
			stmt.addComment(comment)
			end++
		}
	} else {
		for strings.HasSuffix(text, "\\") {
			body = append(body, strings.TrimSuffix(text, "\\"))
			if end >= len(lines) {
				return Statement{}, false
			}
			text, comment = splitComment(lines[end])
			text = strings.TrimSpace(text)
			stmt.addComment(comment)
			end++
		}
		body = append(body, text)
	}

	for _, name := range strings.Split(strings.Join(body, " "), ",") {
		name = strings.Join(strings.Fields(name), " ")
		if name == "" {
			continue
		}
		if !isImportName(name) {
			return Statement{}, false
		}
		stmt.Names = append(stmt.Names, name)
	}
	if len(stmt.Names) == 0 {
		return Statement{}, false
	}

	stmt.End = end
	return stmt, true
}

// isModule accepts dotted names with optional leading dots, or dots alone
func isModule(module string) bool {
	name := strings.TrimLeft(module, ".")
	if name == "" {
		return module != ""
	}
	for _, part := range strings.Split(name, ".") {
		if !isIdentifier(part) {
			return false
		}
	}
	return true
}

// isImportName accepts "name" and "name as alias"
func isImportName(name string) bool {
	fields := strings.Fields(name)
	switch len(fields) {
	case 1:
		return isIdentifier(fields[0])
	case 3:
		return fields[1] == "as" && isIdentifier(fields[0]) && isIdentifier(fields[2])
	default:
		return false
	}
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}

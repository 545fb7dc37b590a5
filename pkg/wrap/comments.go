package wrap

import (
	"slices"
	"strings"
)

// stripComment returns the text before the first '#'
func stripComment(line string) string {
	code, _, _ := strings.Cut(line, "#")
	return code
}

// addToLine replaces any comment on line with the given comments joined by "; "
func addToLine(comments []string, line string, removed bool, commentPrefix string) string {
	if len(comments) == 0 || removed {
		return line
	}

	unique := make([]string, 0, len(comments))
	for _, comment := range comments {
		if !slices.Contains(unique, comment) {
			unique = append(unique, comment)
		}
	}
	return stripComment(line) + commentPrefix + " " + strings.Join(unique, "; ")
}

// closeBeforeComment moves a closing parenthesis that ended up after a
// comment on the last physical line in front of that comment.
func closeBeforeComment(text, lineSeparator, commentPrefix string) string {
	if commentPrefix == "" || lineSeparator == "" {
		return text
	}
	lines := strings.Split(text, lineSeparator)
	last := lines[len(lines)-1]
	if !strings.Contains(last, commentPrefix) || !strings.HasSuffix(last, ")") {
		return text
	}
	code, comment, _ := strings.Cut(last, commentPrefix)
	lines[len(lines)-1] = code + ")" + commentPrefix + strings.TrimSuffix(comment, ")")
	return strings.Join(lines, lineSeparator)
}

// lastLineLen returns the length of the final physical line in text
func lastLineLen(text, lineSeparator string) int {
	if i := strings.LastIndex(text, lineSeparator); i >= 0 && lineSeparator != "" {
		return textLen(text[i+len(lineSeparator):])
	}
	return textLen(text)
}

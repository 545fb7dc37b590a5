package wrap

import (
	"slices"
	"strings"
)

const (
	// minBalancedWidth is the smallest width the balanced search will try
	minBalancedWidth = 10

	// commentMarker re-attaches a comment while a line is being split
	commentMarker = "  #"
)

// ImportStatement renders prefix followed by names over as many lines as the
// configured layout needs. names and comments are never modified.
func ImportStatement(prefix string, names, comments []string, cfg Config, lineSeparator string) string {
	format := cfg.MultiLineOutput.Formatter()
	layout := Layout{
		Statement:            prefix,
		WhiteSpace:           strings.Repeat(" ", textLen(prefix)+1),
		Indent:               cfg.Indent,
		LineLength:           cfg.width(),
		Comments:             comments,
		LineSeparator:        lineSeparator,
		CommentPrefix:        cfg.CommentPrefix,
		IncludeTrailingComma: cfg.IncludeTrailingComma,
		RemoveComments:       cfg.IgnoreComments,
	}
	render := func(width int) string {
		l := layout
		l.Imports = slices.Clone(names)
		l.LineLength = width
		return format(l)
	}

	statement := render(layout.LineLength)
	if cfg.BalancedWrapping {
		statement = balance(statement, layout.LineLength, lineSeparator, render)
	}

	if strings.Count(statement, lineSeparator) == 0 {
		return Line(statement, lineSeparator, cfg)
	}
	return statement
}

// balance narrows the width one column at a time while the last line stays
// shorter than every other line and the line count does not change. It
// returns the last rendering accepted before the loop stopped, so it always
// lags one step behind the rendering that ended the search.
func balance(statement string, width int, lineSeparator string, render func(int) string) string {
	if lineSeparator == "" {
		return statement
	}
	lines := strings.Split(statement, lineSeparator)
	lineCount := len(lines)
	minimum := 0
	if lineCount > 1 {
		minimum = textLen(lines[0])
		for _, line := range lines[1 : lineCount-1] {
			minimum = min(minimum, textLen(line))
		}
	}

	candidate := statement
	for textLen(lines[len(lines)-1]) < minimum && len(lines) == lineCount && width > minBalancedWidth {
		statement = candidate
		width--
		candidate = render(width)
		lines = strings.Split(candidate, lineSeparator)
	}
	return statement
}

// Line wraps a single line that is longer than the configured line length by
// breaking it at "import ", "." or "as ", in that order of preference. A line
// that fits, or that offers no usable delimiter, is returned unchanged.
func Line(text, lineSeparator string, cfg Config) string {
	if textLen(text) <= cfg.LineLength {
		return text
	}

	if cfg.MultiLineOutput == NOQA {
		if strings.Contains(text, "# NOQA") {
			return text
		}
		return text + cfg.CommentPrefix + " NOQA"
	}

	scanned, err := scanLine(text)
	if err != nil {
		return text
	}
	delimiter, spans, ok := scanned.chooseDelimiter()
	if !ok {
		return text
	}

	parts := scanned.splitAt(spans)
	if scanned.hasComment {
		last := strings.TrimSpace(parts[len(parts)-1])
		if cfg.IncludeTrailingComma {
			last += ","
		}
		parts[len(parts)-1] = last + commentMarker + scanned.comment
	}

	// Move trailing parts to the continuation until the head fits.
	width := cfg.width()
	kept := len(parts)
	head := text
	for textLen(head)+2 > width && kept > 0 {
		kept--
		head = strings.Join(parts[:kept], delimiter)
	}
	if kept == len(parts) {
		return text
	}
	if head == "" {
		head = parts[kept]
		kept++
	}
	if kept == len(parts) {
		return text
	}

	continuation := Line(cfg.Indent+strings.TrimLeft(strings.Join(parts[kept:], delimiter), " \t"), lineSeparator, cfg)
	if !cfg.UseParentheses {
		return head + delimiter + "\\" + lineSeparator + continuation
	}

	var output string
	if delimiter == aliasDelimiter {
		output = head + delimiter + strings.TrimLeft(continuation, " \t")
	} else {
		comma := ""
		if cfg.IncludeTrailingComma && !scanned.hasComment {
			comma = ","
		}
		closingLine := ""
		if cfg.MultiLineOutput.hangsVertically() {
			closingLine = lineSeparator
		}
		output = head + delimiter + "(" + lineSeparator + continuation + comma + closingLine + ")"
	}
	return closeBeforeComment(output, lineSeparator, cfg.CommentPrefix)
}

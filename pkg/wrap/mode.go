package wrap

import (
	"fmt"
	"strconv"
	"strings"
)

// Mode selects the layout strategy used to render a multi-line import
type Mode int

const (
	Grid Mode = iota
	Vertical
	HangingIndent
	VerticalHangingIndent
	VerticalGrid
	VerticalGridGrouped
	VerticalGridGroupedNoComma // deprecated, behaves like VerticalGridGrouped
	NOQA
	VerticalHangingIndentBracket
	VerticalPrefixFromModuleImport
	HangingIndentWithParentheses
	BackslashGrid
)

var modeNames = [...]string{
	Grid:                           "GRID",
	Vertical:                       "VERTICAL",
	HangingIndent:                  "HANGING_INDENT",
	VerticalHangingIndent:          "VERTICAL_HANGING_INDENT",
	VerticalGrid:                   "VERTICAL_GRID",
	VerticalGridGrouped:            "VERTICAL_GRID_GROUPED",
	VerticalGridGroupedNoComma:     "VERTICAL_GRID_GROUPED_NO_COMMA",
	NOQA:                           "NOQA",
	VerticalHangingIndentBracket:   "VERTICAL_HANGING_INDENT_BRACKET",
	VerticalPrefixFromModuleImport: "VERTICAL_PREFIX_FROM_MODULE_IMPORT",
	HangingIndentWithParentheses:   "HANGING_INDENT_WITH_PARENTHESES",
	BackslashGrid:                  "BACKSLASH_GRID",
}

// Modes returns every mode in numeric order
func Modes() []Mode {
	modes := make([]Mode, len(modeNames))
	for i := range modeNames {
		modes[i] = Mode(i)
	}
	return modes
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode resolves a mode by name (case-insensitive, '-' and '_' are
// interchangeable) or by its number.
func ParseMode(s string) (Mode, error) {
	value := strings.TrimSpace(s)
	if n, err := strconv.Atoi(value); err == nil {
		if n < 0 || n >= len(modeNames) {
			return 0, fmt.Errorf("unknown multi line output mode %d", n)
		}
		return normalize(Mode(n)), nil
	}

	name := strings.ToUpper(strings.ReplaceAll(value, "-", "_"))
	for i, candidate := range modeNames {
		if candidate == name {
			return normalize(Mode(i)), nil
		}
	}
	return 0, fmt.Errorf("unknown multi line output mode %q", s)
}

func normalize(m Mode) Mode {
	if m == VerticalGridGroupedNoComma {
		return VerticalGridGrouped
	}
	return m
}

// hangsVertically reports whether the closing parenthesis goes on its own line
func (m Mode) hangsVertically() bool {
	switch m {
	case VerticalHangingIndent, VerticalGridGrouped, VerticalGridGroupedNoComma:
		return true
	default:
		return false
	}
}

// Formatter returns the layout function for the mode. Unknown values fall
// back to Grid.
func (m Mode) Formatter() FormatFunc {
	switch m {
	case Grid:
		return grid
	case Vertical:
		return vertical
	case HangingIndent:
		return hangingIndent
	case VerticalHangingIndent:
		return verticalHangingIndent
	case VerticalGrid:
		return verticalGrid
	case VerticalGridGrouped, VerticalGridGroupedNoComma:
		return verticalGridGrouped
	case NOQA:
		return noqa
	case VerticalHangingIndentBracket:
		return verticalHangingIndentBracket
	case VerticalPrefixFromModuleImport:
		return verticalPrefixFromModuleImport
	case HangingIndentWithParentheses:
		return hangingIndentWithParentheses
	case BackslashGrid:
		return backslashGrid
	default:
		return grid
	}
}

package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	errmsg "github.com/siyuan-infoblox/importwrap/pkg/errors"
	"github.com/siyuan-infoblox/importwrap/pkg/wrap"
)

// MultiLineOutput is a layout mode given by name or by number.
type MultiLineOutput struct {
	wrap.Mode
}

// UnmarshalTOML accepts both `multi_line_output = 3` and
// `multi_line_output = "VERTICAL_HANGING_INDENT"`.
func (m *MultiLineOutput) UnmarshalTOML(value any) error {
	switch v := value.(type) {
	case string:
		return m.Set(v)
	case int64:
		return m.Set(strconv.FormatInt(v, 10))
	default:
		return errors.Errorf("%s: %v", errmsg.ErrMsgInvalidMultiLineOutput, value)
	}
}

// UnmarshalYAML accepts a scalar name or number.
func (m *MultiLineOutput) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return errors.Errorf("%s: line %d: expected a name or a number", errmsg.ErrMsgInvalidMultiLineOutput, node.Line)
	}
	return m.Set(node.Value)
}

// Set parses a mode name or number
func (m *MultiLineOutput) Set(value string) error {
	mode, err := wrap.ParseMode(value)
	if err != nil {
		return errors.Wrap(err, errmsg.ErrMsgInvalidMultiLineOutput)
	}
	m.Mode = mode
	return nil
}

// Settings holds everything a settings file may configure.
type Settings struct {
	MultiLineOutput      MultiLineOutput `toml:"multi_line_output" yaml:"multi_line_output"`
	Indent               string          `toml:"indent" yaml:"indent"`
	LineLength           int             `toml:"line_length" yaml:"line_length"`
	WrapLength           int             `toml:"wrap_length" yaml:"wrap_length"`
	CommentPrefix        string          `toml:"comment_prefix" yaml:"comment_prefix"`
	IncludeTrailingComma bool            `toml:"include_trailing_comma" yaml:"include_trailing_comma"`
	IgnoreComments       bool            `toml:"ignore_comments" yaml:"ignore_comments"`
	BalancedWrapping     bool            `toml:"balanced_wrapping" yaml:"balanced_wrapping"`
	UseParentheses       bool            `toml:"use_parentheses" yaml:"use_parentheses"`
	LineSeparator        string          `toml:"line_separator" yaml:"line_separator"` // empty means detect per file

	Path string `toml:"-" yaml:"-"` // file the settings were loaded from
}

// Default returns the settings used when no file is found.
func Default() Settings {
	cfg := wrap.DefaultConfig()
	return Settings{
		MultiLineOutput: MultiLineOutput{cfg.MultiLineOutput},
		Indent:          cfg.Indent,
		LineLength:      cfg.LineLength,
		WrapLength:      cfg.WrapLength,
		CommentPrefix:   cfg.CommentPrefix,
	}
}

// Load reads a TOML or YAML settings file on top of the defaults.
func Load(path string) (Settings, error) {
	settings := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return settings, errors.Wrap(err, errmsg.ErrMsgFailedToReadSettings)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		meta, err := toml.Decode(string(data), &settings)
		if err != nil {
			return settings, errors.Wrap(err, errmsg.ErrMsgFailedToParseSettings)
		}
		var keys []string
		for _, key := range meta.Undecoded() {
			// decoded by MultiLineOutput.UnmarshalTOML
			if key.String() == "multi_line_output" {
				continue
			}
			keys = append(keys, key.String())
		}
		if len(keys) > 0 {
			sort.Strings(keys)
			return settings, errors.Errorf("%s: unknown keys %s", errmsg.ErrMsgFailedToParseSettings, strings.Join(keys, ", "))
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&settings); err != nil && !errors.Is(err, io.EOF) {
			return settings, errors.Wrap(err, errmsg.ErrMsgFailedToParseSettings)
		}
	default:
		return settings, errors.Errorf(errmsg.ErrMsgUnsupportedSettings, ext)
	}

	settings.Path = path
	if err := settings.Validate(); err != nil {
		return settings, errors.Wrapf(err, "%s", path)
	}
	return settings, nil
}

// Validate checks the numeric budgets
func (s Settings) Validate() error {
	if s.LineLength <= 0 {
		return errors.Errorf(errmsg.ErrMsgInvalidLineLength, s.LineLength)
	}
	if s.WrapLength < 0 || s.WrapLength > s.LineLength {
		return errors.Errorf(errmsg.ErrMsgInvalidWrapLength, s.LineLength, s.WrapLength)
	}
	return nil
}

// Separator resolves the configured line separator. Besides literal values
// "lf", "crlf" and "cr" are understood.
func (s Settings) Separator() string {
	switch strings.ToLower(s.LineSeparator) {
	case "lf":
		return "\n"
	case "crlf":
		return "\r\n"
	case "cr":
		return "\r"
	default:
		return s.LineSeparator
	}
}

// WrapConfig converts the settings into the wrapping configuration
func (s Settings) WrapConfig() wrap.Config {
	return wrap.Config{
		MultiLineOutput:      s.MultiLineOutput.Mode,
		Indent:               normalizeIndent(s.Indent),
		LineLength:           s.LineLength,
		WrapLength:           s.WrapLength,
		CommentPrefix:        s.CommentPrefix,
		IncludeTrailingComma: s.IncludeTrailingComma,
		IgnoreComments:       s.IgnoreComments,
		BalancedWrapping:     s.BalancedWrapping,
		UseParentheses:       s.UseParentheses,
	}
}

// normalizeIndent turns "4" into four spaces and "tab" into a tab. Quotes
// around the value are dropped.
func normalizeIndent(indent string) string {
	indent = strings.Trim(indent, `"'`)
	if n, err := strconv.Atoi(indent); err == nil && n >= 0 {
		return strings.Repeat(" ", n)
	}
	if strings.EqualFold(indent, "tab") {
		return "\t"
	}
	return indent
}

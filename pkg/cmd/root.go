package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/siyuan-infoblox/importwrap/pkg/config"
	"github.com/siyuan-infoblox/importwrap/pkg/errors"
	"github.com/siyuan-infoblox/importwrap/pkg/formatter"
	"github.com/siyuan-infoblox/importwrap/pkg/utils"
	"github.com/siyuan-infoblox/importwrap/pkg/version"
)

const (
	UseDescription   = "iwrap [flags] PATH"
	ShortDescription = "Import wrapper - A tool to wrap long Python import statements"
	LongDescription  = `iwrap is a command-line tool that wraps Python import statements
that are longer than the configured line length.

"from" imports are rendered with one of twelve layouts (--multi-line):
0 GRID, 1 VERTICAL, 2 HANGING_INDENT, 3 VERTICAL_HANGING_INDENT,
4 VERTICAL_GRID, 5 VERTICAL_GRID_GROUPED, 6 VERTICAL_GRID_GROUPED_NO_COMMA,
7 NOQA, 8 VERTICAL_HANGING_INDENT_BRACKET, 9 VERTICAL_PREFIX_FROM_MODULE_IMPORT,
10 HANGING_INDENT_WITH_PARENTHESES, 11 BACKSLASH_GRID.
Other long import lines are split at "import ", "." or "as ".

Settings are read from the nearest .importwrap.toml, .importwrap.yaml or
.importwrap.yml above PATH, or from --settings-path. Flags override settings.

PATH can be either a single Python file or a directory. When a directory is
specified, all .py and .pyi files in the directory and subdirectories will be
processed recursively.`
)

var versionStr string

// options holds the flag values of one command instance
type options struct {
	settingsPath   string
	multiLine      string
	lineLength     int
	wrapLength     int
	indent         string
	commentPrefix  string
	trailingComma  bool
	ignoreComments bool
	balanced       bool
	useParentheses bool
	lineSeparator  string
	inPlace        bool
	check          bool
	jobs           int
	colorMode      string
	verbose        bool
	showVersion    bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:          UseDescription,
		Short:        ShortDescription,
		Long:         LongDescription,
		Args:         opts.validateArgs,
		RunE:         opts.run,
		SilenceUsage: true,
	}

	defaults := config.Default()
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.settingsPath, "settings-path", "", "Settings file to use instead of searching above PATH")
	flags.StringVarP(&opts.multiLine, "multi-line", "m", defaults.MultiLineOutput.String(), "Layout of wrapped imports, by name or number")
	flags.IntVarP(&opts.lineLength, "line-length", "l", defaults.LineLength, "Maximum line length")
	flags.IntVar(&opts.wrapLength, "wrap-length", defaults.WrapLength, "Length used for wrapping, 0 means --line-length")
	flags.StringVar(&opts.indent, "indent", defaults.Indent, `Continuation indent: spaces, a number of spaces or "tab"`)
	flags.StringVar(&opts.commentPrefix, "comment-prefix", defaults.CommentPrefix, "Text placed before a trailing comment")
	flags.BoolVar(&opts.trailingComma, "trailing-comma", false, "Add a trailing comma to wrapped imports")
	flags.BoolVar(&opts.ignoreComments, "ignore-comments", false, "Drop comments from wrapped imports")
	flags.BoolVar(&opts.balanced, "balanced", false, "Balance the length of wrapped lines")
	flags.BoolVar(&opts.useParentheses, "use-parentheses", false, "Continue split lines with parentheses instead of a backslash")
	flags.StringVar(&opts.lineSeparator, "line-separator", "", "Output line separator: lf, crlf or cr (default: same as the file)")
	flags.BoolVar(&opts.inPlace, "in-place", false, "Modify the file in place instead of printing to stdout")
	flags.BoolVar(&opts.check, "check", false, "Report files that would be changed and fail without writing them")
	flags.IntVar(&opts.jobs, "jobs", 0, "Number of files formatted at once (default: number of CPUs)")
	flags.StringVar(&opts.colorMode, "color", "auto", "Colorize output (auto|on|off)")
	flags.BoolVar(&opts.verbose, "verbose", false, "Print the settings file and every processed file")
	flags.BoolVarP(&opts.showVersion, "version", "v", false, "Show version information")

	return rootCmd
}

func (o *options) validateArgs(cmd *cobra.Command, args []string) error {
	// If version flag is set, we don't need file arguments
	if o.showVersion {
		return nil
	}
	return cobra.ExactArgs(1)(cmd, args)
}

func (o *options) run(cmd *cobra.Command, args []string) error {
	if err := applyColorMode(o.colorMode); err != nil {
		return err
	}

	if o.showVersion {
		fmt.Fprintln(cmd.OutOrStdout(), version.Get(versionStr))
		return nil
	}

	path := args[0]
	settings, err := o.settings(cmd, path)
	if err != nil {
		return err
	}
	if o.verbose {
		source := settings.Path
		if source == "" {
			source = "defaults"
		}
		fmt.Fprintf(cmd.ErrOrStderr(), errors.InfoMsgSettingsFile+"\n", source)
	}

	g := formatter.New(formatter.FormatterConfig{
		Wrap:          settings.WrapConfig(),
		LineSeparator: settings.Separator(),
		InPlace:       o.inPlace,
		Check:         o.check,
		Verbose:       o.verbose,
		Jobs:          o.jobs,
		Stdout:        cmd.OutOrStdout(),
		Stderr:        cmd.ErrOrStderr(),
	})
	return g.ProcessPath(cmd.Context(), path)
}

// settings loads the settings file for path and applies the flags that were
// set explicitly on top of it.
func (o *options) settings(cmd *cobra.Command, path string) (config.Settings, error) {
	settings := config.Default()

	file := o.settingsPath
	if file == "" {
		found, err := utils.FindSettingsFile(path)
		if err != nil {
			return settings, fmt.Errorf("%s: %w", errors.ErrMsgFailedToFindSettings, err)
		}
		file = found
	}
	if file != "" {
		loaded, err := config.Load(file)
		if err != nil {
			return settings, err
		}
		settings = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("multi-line") {
		if err := settings.MultiLineOutput.Set(o.multiLine); err != nil {
			return settings, err
		}
	}
	if flags.Changed("line-length") {
		settings.LineLength = o.lineLength
	}
	if flags.Changed("wrap-length") {
		settings.WrapLength = o.wrapLength
	}
	if flags.Changed("indent") {
		settings.Indent = o.indent
	}
	if flags.Changed("comment-prefix") {
		settings.CommentPrefix = o.commentPrefix
	}
	if flags.Changed("trailing-comma") {
		settings.IncludeTrailingComma = o.trailingComma
	}
	if flags.Changed("ignore-comments") {
		settings.IgnoreComments = o.ignoreComments
	}
	if flags.Changed("balanced") {
		settings.BalancedWrapping = o.balanced
	}
	if flags.Changed("use-parentheses") {
		settings.UseParentheses = o.useParentheses
	}
	if flags.Changed("line-separator") {
		settings.LineSeparator = o.lineSeparator
	}

	return settings, settings.Validate()
}

// applyColorMode sets the global color switch for the auto, on and off modes
func applyColorMode(mode string) error {
	switch mode {
	case "auto":
		color.NoColor = os.Getenv("NO_COLOR") != "" || !term.IsTerminal(int(os.Stdout.Fd()))
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		return fmt.Errorf(errors.ErrMsgInvalidColorMode, mode)
	}
	return nil
}

func Execute(moduleVersion string) error {
	versionStr = moduleVersion
	return newRootCmd().Execute()
}

package formatter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/sync/errgroup"

	"github.com/siyuan-infoblox/importwrap/pkg/errors"
	"github.com/siyuan-infoblox/importwrap/pkg/utils"
	"github.com/siyuan-infoblox/importwrap/pkg/wrap"
)

// overflowPreview is the display width of a line quoted in a report
const overflowPreview = 60

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	failColor = color.New(color.FgRed, color.Bold)
)

type FormatterConfig struct {
	Wrap          wrap.Config // wrapping options
	LineSeparator string      // output line separator, detected per file when empty
	InPlace       bool        // whether to modify files in place
	Check         bool        // report files that would change without writing them
	Verbose       bool        // also report unchanged files
	Jobs          int         // files formatted at once, GOMAXPROCS when not positive
	Stdout        io.Writer   // formatted source and status lines, os.Stdout when nil
	Stderr        io.Writer   // line length reports, os.Stderr when nil
}

// Overflow is a rendered import line that is still longer than the line length
type Overflow struct {
	Line  int    // 1-based line number in the formatted output
	Width int    // display width of the line
	Text  string // the line, truncated for display
}

// fileResult is the outcome of formatting one file
type fileResult struct {
	path      string
	output    []byte
	changed   bool
	overflows []Overflow
	err       error
}

// formatter rewrites the import statements of Python source files
type formatter struct {
	config FormatterConfig
}

// New creates a new formatter
func New(config FormatterConfig) *formatter {
	return &formatter{config: config}
}

func (g *formatter) stdout() io.Writer {
	if g.config.Stdout == nil {
		return os.Stdout
	}
	return g.config.Stdout
}

func (g *formatter) stderr() io.Writer {
	if g.config.Stderr == nil {
		return os.Stderr
	}
	return g.config.Stderr
}

// writesFiles reports whether changed files are written back
func (g *formatter) writesFiles() bool {
	return g.config.InPlace && !g.config.Check
}

// lineSeparator returns the configured separator or the one src uses
func (g *formatter) lineSeparator(src []byte) string {
	if g.config.LineSeparator != "" {
		return g.config.LineSeparator
	}
	if bytes.Contains(src, []byte("\r\n")) {
		return "\r\n"
	}
	return "\n"
}

// FormatSource rewrites every from-import and every overlong plain import
// found at the start of a line. Everything else is copied as is.
func (g *formatter) FormatSource(src []byte) ([]byte, []Overflow) {
	cfg := g.config.Wrap
	sep := g.lineSeparator(src)

	// plain imports cannot be parenthesized
	plain := cfg
	plain.UseParentheses = false

	lines := strings.Split(string(src), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	var (
		out       []string
		overflows []Overflow
		quote     string // open triple quote, if any
	)
	emit := func(rendered string) {
		for _, line := range strings.Split(rendered, sep) {
			out = append(out, line)
			if utf8.RuneCountInString(line) > cfg.LineLength && !strings.Contains(line, "NOQA") {
				overflows = append(overflows, Overflow{
					Line:  len(out),
					Width: runewidth.StringWidth(line),
					Text:  runewidth.Truncate(line, overflowPreview, "..."),
				})
			}
		}
	}

	for i := 0; i < len(lines); {
		line := lines[i]
		if quote == "" {
			if strings.HasPrefix(line, "from ") {
				if stmt, ok := parseFromImport(lines, i); ok {
					emit(stmt.Render(cfg, sep))
					i = stmt.End
					continue
				}
			} else if strings.HasPrefix(line, "import ") && !strings.HasSuffix(strings.TrimRight(line, " \t"), "\\") {
				emit(wrap.Line(line, sep, plain))
				i++
				continue
			}
		}
		quote = scanTripleQuotes(line, quote)
		out = append(out, line)
		i++
	}

	return []byte(strings.Join(out, sep)), overflows
}

// scanTripleQuotes tracks whether a triple-quoted string is still open at the
// end of line. open is the quote that was open at its start.
func scanTripleQuotes(line, open string) string {
	for {
		if open != "" {
			idx := strings.Index(line, open)
			if idx < 0 {
				return open
			}
			line = line[idx+3:]
			open = ""
			continue
		}

		double, single := strings.Index(line, `"""`), strings.Index(line, `'''`)
		switch {
		case double < 0 && single < 0:
			return ""
		case single < 0 || (double >= 0 && double < single):
			open, line = `"""`, line[double+3:]
		default:
			open, line = `'''`, line[single+3:]
		}
	}
}

// processFile formats one file and writes it back when configured to
func (g *formatter) processFile(ctx context.Context, path string) fileResult {
	result := fileResult{path: path}
	if err := ctx.Err(); err != nil {
		result.err = err
		return result
	}

	src, err := os.ReadFile(path)
	if err != nil {
		result.err = fmt.Errorf("%s: %w", errors.ErrMsgFailedToReadFile, err)
		return result
	}

	result.output, result.overflows = g.FormatSource(src)
	result.changed = !bytes.Equal(src, result.output)

	if result.changed && g.writesFiles() {
		info, err := os.Stat(path)
		if err != nil {
			result.err = fmt.Errorf("%s: %w", errors.ErrMsgFailedToWriteFile, err)
			return result
		}
		if err := os.WriteFile(path, result.output, info.Mode().Perm()); err != nil {
			result.err = fmt.Errorf("%s: %w", errors.ErrMsgFailedToWriteFile, err)
		}
	}
	return result
}

func (g *formatter) reportOverflows(result fileResult) {
	for _, o := range result.overflows {
		warnColor.Fprintf(g.stderr(), errors.InfoMsgLineTooLong+"\n",
			result.path, o.Line, g.config.Wrap.LineLength, o.Width, o.Text)
	}
}

// ProcessFile formats a single Python source file. Without --in-place or
// --check the formatted source is printed.
func (g *formatter) ProcessFile(ctx context.Context, path string) error {
	result := g.processFile(ctx, path)
	if result.err != nil {
		return result.err
	}
	g.reportOverflows(result)

	switch {
	case g.config.Check:
		if result.changed {
			warnColor.Fprintf(g.stdout(), errors.InfoMsgWouldReformat+"\n", path)
			return fmt.Errorf(errors.ErrMsgFilesWouldBeReformated, 1)
		}
		if g.config.Verbose {
			fmt.Fprintf(g.stdout(), errors.InfoMsgUnchanged+"\n", path)
		}
	case g.config.InPlace:
		if g.config.Verbose {
			if result.changed {
				okColor.Fprintf(g.stdout(), errors.InfoMsgProcessedFiles+"\n", path)
			} else {
				fmt.Fprintf(g.stdout(), errors.InfoMsgUnchanged+"\n", path)
			}
		}
	default:
		if _, err := g.stdout().Write(result.output); err != nil {
			return fmt.Errorf("%s: %w", errors.ErrMsgFailedToWriteFile, err)
		}
	}
	return nil
}

// ProcessFiles formats several files concurrently and reports the results in
// the order the paths were given.
func (g *formatter) ProcessFiles(ctx context.Context, filePaths []string) error {
	jobs := g.config.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]fileResult, len(filePaths))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(max(1, min(jobs, len(filePaths))))
	for i, path := range filePaths {
		i, path := i, path
		eg.Go(func() error {
			results[i] = g.processFile(egCtx, path)
			return egCtx.Err()
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	processedCount, errorCount, reformatCount := 0, 0, 0
	for _, result := range results {
		if result.err != nil {
			failColor.Fprintf(g.stdout(), errors.InfoMsgErrorProcessing+"\n", result.path, result.err)
			errorCount++
			continue
		}
		processedCount++
		g.reportOverflows(result)

		switch {
		case result.changed && g.writesFiles():
			okColor.Fprintf(g.stdout(), errors.InfoMsgProcessedFiles+"\n", result.path)
		case result.changed:
			warnColor.Fprintf(g.stdout(), errors.InfoMsgWouldReformat+"\n", result.path)
			reformatCount++
		case g.config.Verbose:
			fmt.Fprintf(g.stdout(), errors.InfoMsgUnchanged+"\n", result.path)
		}
	}

	fmt.Fprintf(g.stdout(), errors.InfoMsgProcessedCount, processedCount)
	if errorCount > 0 {
		fmt.Fprintf(g.stdout(), errors.InfoMsgErrorCount, errorCount)
	}
	fmt.Fprintln(g.stdout())

	if errorCount > 0 {
		return fmt.Errorf(errors.ErrMsgFilesFailedToProcess, errorCount)
	}
	if g.config.Check && reformatCount > 0 {
		return fmt.Errorf(errors.ErrMsgFilesWouldBeReformated, reformatCount)
	}
	return nil
}

// ProcessPath processes a file or directory path
func (g *formatter) ProcessPath(ctx context.Context, path string) error {
	isDir, err := utils.IsDirectory(path)
	if err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToCheckPath, err)
	}

	if !isDir {
		return g.ProcessFile(ctx, path)
	}

	// Directories are never printed to stdout
	if !g.config.InPlace && !g.config.Check {
		warnColor.Fprintf(g.stdout(), errors.WarnMsgProcessingDirWithoutInPlace+"\n")
		fmt.Fprintf(g.stdout(), errors.InfoMsgUseInPlaceFlag+"\n\n")
	}

	pyFiles, err := utils.FindPythonFiles(path)
	if err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToFindPyFiles, err)
	}

	if len(pyFiles) == 0 {
		fmt.Fprintf(g.stdout(), errors.InfoMsgNoPyFilesFound+"\n", path)
		return nil
	}

	fmt.Fprintf(g.stdout(), errors.InfoMsgFoundPyFiles+"\n\n", len(pyFiles), path)
	return g.ProcessFiles(ctx, pyFiles)
}

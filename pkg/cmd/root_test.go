package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const longImport = "from mod import alpha, beta, gamma, delta\n"

// execute runs a fresh root command and returns what it printed
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd := newRootCmd()
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append([]string{"--color", "off"}, args...))
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeProject(t *testing.T, settingsName, settings string) string {
	t.Helper()
	dir := t.TempDir()
	if settingsName != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, settingsName), []byte(settings), 0644))
	}
	path := filepath.Join(dir, "pkg", "a.py")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(longImport), 0644))
	return path
}

func TestRoot_version(t *testing.T) {
	req := require.New(t)
	stdout, _, err := execute(t, "--version")
	req.NoError(err)
	req.Contains(stdout, "iwrap version ")
	req.Contains(stdout, "Go version: ")
}

func TestRoot_args(t *testing.T) {
	req := require.New(t)
	_, _, err := execute(t)
	req.Error(err)

	_, _, err = execute(t, "a.py", "b.py")
	req.Error(err)
}

func TestRoot_settings(t *testing.T) {
	const vertical = "\n    alpha,\n    beta,\n    gamma,\n    delta\n)\n"

	t.Run("settings file found above the path", func(t *testing.T) {
		req := require.New(t)
		path := writeProject(t, ".importwrap.toml", "multi_line_output = 3\nline_length = 30\n")
		stdout, _, err := execute(t, path)
		req.NoError(err)
		req.Equal("from mod import ("+vertical, stdout)
	})

	t.Run("flags override the settings file", func(t *testing.T) {
		req := require.New(t)
		path := writeProject(t, ".importwrap.toml", "multi_line_output = 3\nline_length = 30\n")
		stdout, _, err := execute(t, "--line-length", "79", path)
		req.NoError(err)
		req.Equal(longImport, stdout)

		stdout, _, err = execute(t, "-m", "vertical-hanging-indent-bracket", path)
		req.NoError(err)
		req.Equal("from mod import (\n    alpha,\n    beta,\n    gamma,\n    delta\n    )\n", stdout)
	})

	t.Run("explicit settings path", func(t *testing.T) {
		req := require.New(t)
		path := writeProject(t, "", "")
		settingsPath := filepath.Join(t.TempDir(), "custom.yaml")
		req.NoError(os.WriteFile(settingsPath, []byte("multi_line_output: VERTICAL_HANGING_INDENT\nline_length: 30\ninclude_trailing_comma: true\n"), 0644))

		stdout, stderr, err := execute(t, "--settings-path", settingsPath, "--verbose", path)
		req.NoError(err)
		req.Equal("from mod import (\n    alpha,\n    beta,\n    gamma,\n    delta,\n)\n", stdout)
		req.Contains(stderr, "Settings: "+settingsPath)
	})

	t.Run("flags without a settings file", func(t *testing.T) {
		req := require.New(t)
		path := writeProject(t, "", "")
		stdout, _, err := execute(t, "-m", "3", "-l", "30", "--indent", "2", path)
		req.NoError(err)
		req.Equal("from mod import (\n  alpha,\n  beta,\n  gamma,\n  delta\n)\n", stdout)
	})
}

func TestRoot_errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"unknown mode", []string{"-m", "zigzag"}, "invalid multi_line_output"},
		{"zero line length", []string{"-l", "0"}, "line_length must be positive"},
		{"wrap length above line length", []string{"-l", "40", "--wrap-length", "50"}, "wrap_length must be between 0 and line_length (40), got 50"},
		{"unknown color mode", []string{"--color", "sometimes"}, `invalid --color value "sometimes"`},
		{"missing settings file", []string{"--settings-path", "/non/existent/.importwrap.toml"}, "failed to read settings file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			path := writeProject(t, "", "")
			_, _, err := execute(t, append(tt.args, path)...)
			req.Error(err)
			req.Contains(err.Error(), tt.wantErr)
		})
	}
}

func TestRoot_check(t *testing.T) {
	req := require.New(t)
	path := writeProject(t, ".importwrap.yml", "line_length: 30\nmulti_line_output: VERTICAL\n")

	stdout, _, err := execute(t, "--check", filepath.Dir(path))
	req.Error(err)
	req.Equal("1 files would be reformatted", err.Error())
	req.Contains(stdout, "Would reformat: "+path)

	_, _, err = execute(t, "--in-place", filepath.Dir(path))
	req.NoError(err)
	content, err := os.ReadFile(path)
	req.NoError(err)
	req.Equal("from mod import (alpha,\n                 beta,\n                 gamma,\n                 delta)\n", string(content))

	_, _, err = execute(t, "--check", path)
	req.NoError(err)
}

package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// SettingsFileNames are looked up in every directory, in this order
var SettingsFileNames = []string{".importwrap.toml", ".importwrap.yaml", ".importwrap.yml"}

// maxSettingsDepth bounds the walk towards the filesystem root
const maxSettingsDepth = 20

// FindSettingsFile walks up from path looking for a settings file. It returns
// an empty string when none is found.
func FindSettingsFile(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	dir := absPath
	if isDir, err := IsDirectory(absPath); err != nil || !isDir {
		dir = filepath.Dir(absPath)
	}

	for i := 0; i < maxSettingsDepth; i++ {
		for _, name := range SettingsFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", nil
}

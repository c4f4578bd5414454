package pathutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// SanitizeOutputPath cleans path, makes it absolute and rejects it when it
// names a symlink. A path that does not exist yet is accepted.
func SanitizeOutputPath(path string) (string, error) {
	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("pathutil: cannot resolve absolute path: %w", err)
	}

	info, err := os.Lstat(abs)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return "", fmt.Errorf("pathutil: cannot stat path: %w", err)
	case info.Mode()&os.ModeSymlink != 0:
		return "", fmt.Errorf("pathutil: refusing to write to symlink: %s", abs)
	}
	return abs, nil
}

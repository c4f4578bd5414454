package compiler

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/induct/apiary/apiaryerrors"
	"github.com/induct/apiary/internal/fileutil"
)

// Write persists the artifact at its location. Missing parent directories
// are created. An existing file is never replaced: the returned
// *apiaryerrors.GenerationError then has Exists set and matches
// apiaryerrors.ErrTargetExists.
func Write(a *Artifact) error {
	dir := filepath.Dir(a.Path)
	if err := os.MkdirAll(dir, fileutil.DirPerm); err != nil {
		return &apiaryerrors.GenerationError{Op: "mkdir", Path: dir, Message: "failed to create package directory", Cause: err}
	}

	f, err := fileutil.CreateExclusive(a.Path)
	if err != nil {
		return &apiaryerrors.GenerationError{
			Op:     "write",
			Path:   a.Path,
			Exists: errors.Is(err, fs.ErrExist),
			Cause:  err,
		}
	}

	if _, err := f.Write(a.Source); err != nil {
		_ = f.Close()
		return &apiaryerrors.GenerationError{Op: "write", Path: a.Path, Message: "failed to write source", Cause: err}
	}
	if err := f.Close(); err != nil {
		return &apiaryerrors.GenerationError{Op: "write", Path: a.Path, Message: "failed to close file", Cause: err}
	}
	return nil
}

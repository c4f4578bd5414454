// Package fileutil holds the permission modes used for generated output.
package fileutil

import "os"

// DirPerm is the mode for directories created under the output root.
const DirPerm os.FileMode = 0o755

// ReadableByAll is the file permission mode for generated source code
// files intended to be read by build tools and other users.
const ReadableByAll os.FileMode = 0o644

// CreateExclusive opens path for writing only if it does not exist yet.
// The returned error satisfies os.IsExist when the file is already present.
func CreateExclusive(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, ReadableByAll) //nolint:gosec // G304: path is derived from a validated import path
}

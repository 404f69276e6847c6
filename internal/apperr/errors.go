// Package apperr defines the shared sentinel errors of the application.
package apperr

import "errors"

var (
	// ErrNotFound is returned when a recipe cannot be located in any search root.
	ErrNotFound = errors.New("recipe not found")
	// ErrInvalidPath is returned when a path has no derivable file stem.
	ErrInvalidPath = errors.New("invalid recipe path")
	// ErrDirectoryNotFound is returned when a scan root does not exist.
	ErrDirectoryNotFound = errors.New("directory does not exist")
	// ErrNotADirectory is returned when a scan root exists but is not a directory.
	ErrNotADirectory = errors.New("path is not a directory")
	// ErrPathOutsideRoot is returned when a discovered recipe path cannot be
	// relativized against the scanned root.
	ErrPathOutsideRoot = errors.New("path is outside the scanned root")
)

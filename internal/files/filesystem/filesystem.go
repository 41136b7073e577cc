package filesystem

import (
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// File is one entry met while walking a directory.
type File interface {
	// Path returns the absolute path to the file
	Path() string

	// RelativePath returns the slash-separated path relative to the walked root
	RelativePath() string

	// Info returns file metadata
	Info() FileInfo

	// ReadContent returns the file's content
	ReadContent() ([]byte, error)
}

// Directory is a directory that can be traversed to discover files.
type Directory interface {
	// Path returns the absolute path to the directory
	Path() string

	// Walk visits the directory tree in lexical order, calling fn for each
	// file and directory. Walking stops at the first error fn returns.
	Walk(fn func(File, error) error) error
}

// Provider is the filesystem collaborator used by the scanner and the CLI.
type Provider interface {
	// Open opens a directory at the specified path
	Open(path string) (Directory, error)

	// ReadFile reads a specific file at the given path
	ReadFile(path string) ([]byte, error)

	// WriteFile creates or replaces a file, creating parent directories
	WriteFile(path string, data []byte) error

	// Stat returns file information for the given path
	Stat(path string) (FileInfo, error)
}

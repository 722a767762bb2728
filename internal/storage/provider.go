// Package storage defines the content-directory file-system abstraction.
package storage

import "time"

// Entry is the metadata for one markdown file found in a scan.
type Entry struct {
	// RelPath is slash-separated and relative to the provider root.
	RelPath string
	ModTime time.Time
}

// Provider is the interface for content file operations. All paths are
// relative to the provider root.
type Provider interface {
	// Root returns the absolute root directory.
	Root() string
	// List returns metadata for every .md file under the root.
	List() ([]Entry, error)
	// Read returns the raw bytes of the file at rel.
	Read(rel string) ([]byte, error)
	// Write atomically writes content to rel, creating parent directories.
	Write(rel string, content []byte) error
	// Exists reports whether a regular file exists at rel.
	Exists(rel string) bool
}

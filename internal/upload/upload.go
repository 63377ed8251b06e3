// Package upload validates and names incoming image files and derives
// the URLs they are served back under.
package upload

import (
	"errors"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

// ErrDisallowedType rejects files without an extension or with one
// outside the allow-list.
var ErrDisallowedType = errors.New("invalid file format, expected png, jpg, jpeg or gif")

var allowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// AllowedFile reports whether filename carries an allowed image
// extension (case-insensitive).
func AllowedFile(filename string) bool {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return false
	}
	return allowedExtensions[strings.ToLower(filename[idx+1:])]
}

// SecureFilename strips directory components and replaces characters
// outside [A-Za-z0-9_.-] with underscores. Uploads with the same
// sanitized name overwrite each other; last write wins.
func SecureFilename(name string) string {
	name = filepath.Base(filepath.ToSlash(name))
	name = path.Base(name)
	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	return name
}

// Store resolves filesystem destinations and store-relative paths for
// accepted uploads.
type Store struct {
	dir        string // filesystem directory uploads land in
	publicBase string // URL prefix the parent of dir is served under
}

func NewStore(dir, publicBase string) *Store {
	return &Store{dir: dir, publicBase: strings.TrimSuffix(publicBase, "/")}
}

// Accept validates and sanitizes filename, returning the cleaned name.
func (s *Store) Accept(filename string) (string, error) {
	if filename == "" || !AllowedFile(filename) {
		return "", ErrDisallowedType
	}
	clean := SecureFilename(filename)
	if clean == "" || !AllowedFile(clean) {
		return "", ErrDisallowedType
	}
	return clean, nil
}

// DestPath is the filesystem path an accepted file is written to.
func (s *Store) DestPath(clean string) string {
	return filepath.Join(s.dir, clean)
}

// RelativePath is the store-relative path recorded on the row,
// e.g. "uploads/chair.png" for a store dir of "static/uploads".
func (s *Store) RelativePath(clean string) string {
	return path.Join(filepath.Base(filepath.ToSlash(s.dir)), clean)
}

// ServeURL rewrites a stored relative path into one the static file
// handler resolves.
func (s *Store) ServeURL(relative string) string {
	return s.publicBase + "/" + filepath.ToSlash(relative)
}

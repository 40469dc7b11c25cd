// Package discover finds the source files that declare remotely callable classes.
//
// Files are located by a base-name glob under a root directory. Each file's
// record path is derived from its location below the "View" directory:
//
//	src/Services/View/Admin/UserView.php -> Admin/UserView
package discover

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"
)

// DefaultPattern matches PHP class files.
const DefaultPattern = "*.php"

// viewDir is the directory whose descendants form the record path.
const viewDir = "View"

// skipDirs are never descended into.
var skipDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
}

// File is a discovered source file.
type File struct {
	// Path is the file path as found (OS separators).
	Path string

	// Rel is the slash-separated path relative to the search root.
	Rel string

	// RecordPath is the slash-separated record path, without extension.
	RecordPath string
}

// Find walks root and returns files whose base name matches pattern,
// in lexical order. Hidden directories, vendor and node_modules are skipped.
func Find(root, pattern string) ([]File, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	var files []File
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != root && SkipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if ok, _ := filepath.Match(pattern, d.Name()); !ok {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		files = append(files, File{
			Path:       p,
			Rel:        rel,
			RecordPath: RecordPath(filepath.ToSlash(p), rel),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return files, nil
}

// SkipDir reports whether a directory with the given base name is excluded
// from discovery: hidden directories, vendor and node_modules.
func SkipDir(name string) bool {
	return (strings.HasPrefix(name, ".") && name != "." && name != "..") || skipDirs[name]
}

// RecordPath returns the record path for a file: the segments after the
// first "View" directory of full, with the extension removed. If full has
// no "View" directory, rel without its extension is used.
func RecordPath(full, rel string) string {
	if p := ViewPath(full); p != "" {
		return p
	}
	return strings.TrimSuffix(rel, path.Ext(rel))
}

// ViewPath returns the segments of a slash-separated path that follow the
// first "View" segment, extension removed, or "" if there is none.
func ViewPath(p string) string {
	parts := strings.Split(p, "/")
	for i, part := range parts {
		if part == viewDir {
			rest := strings.Join(parts[i+1:], "/")
			return strings.TrimSuffix(rest, path.Ext(rest))
		}
	}
	return ""
}

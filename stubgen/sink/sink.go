// Package sink provides output destinations for generated stub files.
package sink

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// ErrInvalidPath is returned (wrapped) by sinks for paths rejected by ValidatePath.
var ErrInvalidPath = errors.New("invalid path")

// OutputSink receives generated file content.
// Implementations MUST be safe for concurrent calls.
type OutputSink interface {
	// WriteFile writes content to the specified path.
	// The path is relative and slash-separated; the sink determines the actual location.
	WriteFile(ctx context.Context, path string, content []byte) error
}

// FilesystemSink writes to a directory on the local filesystem.
type FilesystemSink struct {
	// Root is the base directory for all writes.
	Root string

	// Mode is the file permission mode (default: 0644).
	Mode os.FileMode

	// SkipUnchanged leaves files alone whose content already matches,
	// so their modification time (and any watcher) is not disturbed.
	SkipUnchanged bool
}

// NewFilesystemSink creates a new FilesystemSink writing to the specified root directory.
func NewFilesystemSink(root string) *FilesystemSink {
	return &FilesystemSink{
		Root:          root,
		Mode:          0644,
		SkipUnchanged: true,
	}
}

// WriteFile writes content to path below Root, creating parent directories.
// The write is atomic: content lands in a hidden temp file that is renamed
// over the target, so a watcher or bundler never sees a partial module.
func (s *FilesystemSink) WriteFile(ctx context.Context, path string, content []byte) error {
	target, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.SkipUnchanged {
		if same, err := s.Current(path, content); err == nil && same {
			return nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}

	tmp, err := s.stage(filepath.Dir(target), content)
	if err != nil {
		return fmt.Errorf("stage %s: %w", path, err)
	}
	if err := ctx.Err(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// stage writes content to a new ".stubgen-*.tmp" file in dir with the sink's
// mode and returns its name. On error nothing is left behind.
func (s *FilesystemSink) stage(dir string, content []byte) (_ string, err error) {
	f, err := os.CreateTemp(dir, ".stubgen-*.tmp")
	if err != nil {
		return "", err
	}
	name := f.Name()
	defer func() {
		if err != nil {
			os.Remove(name)
		}
	}()

	if _, err = f.Write(content); err != nil {
		f.Close()
		return "", err
	}
	if err = f.Close(); err != nil {
		return "", err
	}

	mode := s.Mode
	if mode == 0 {
		mode = 0o644
	}
	if err = os.Chmod(name, mode); err != nil {
		return "", err
	}
	return name, nil
}

// Current reports whether the file at path exists with exactly content.
// A missing file is not an error.
func (s *FilesystemSink) Current(path string, content []byte) (bool, error) {
	fullPath, err := s.resolve(path)
	if err != nil {
		return false, err
	}
	existing, err := os.ReadFile(fullPath)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return bytes.Equal(existing, content), nil
}

// resolve validates path and joins it to the root, rejecting escapes.
func (s *FilesystemSink) resolve(path string) (string, error) {
	if err := ValidatePath(path); err != nil {
		return "", fmt.Errorf("%w %q: %v", ErrInvalidPath, path, err)
	}

	fullPath := filepath.Join(s.Root, filepath.FromSlash(path))

	absRoot, err := filepath.Abs(s.Root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve root directory: %w", err)
	}
	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}
	if !strings.HasPrefix(absPath, absRoot+string(filepath.Separator)) {
		return "", fmt.Errorf("%w %q: escapes root directory", ErrInvalidPath, path)
	}
	return fullPath, nil
}

// MemorySink stores generated files in memory.
// All operations are thread-safe.
type MemorySink struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemorySink creates a new MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{
		files: make(map[string][]byte),
	}
}

// WriteFile stores a copy of content under path.
func (s *MemorySink) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := ValidatePath(path); err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidPath, path, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.files[path] = bytes.Clone(content)
	return nil
}

// Files returns a copy of all written files.
func (s *MemorySink) Files() map[string][]byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string][]byte, len(s.files))
	for path, content := range s.files {
		result[path] = bytes.Clone(content)
	}
	return result
}

// Paths returns the written paths in sorted order.
func (s *MemorySink) Paths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	paths := make([]string, 0, len(s.files))
	for p := range s.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Get returns the content of a single file, or nil if not found.
func (s *MemorySink) Get(path string) []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	content, ok := s.files[path]
	if !ok {
		return nil
	}
	return bytes.Clone(content)
}

// ValidatePath checks if a path is valid for output.
// Paths MUST be relative (no leading /), use / as separator,
// not contain .. components, and be clean (no ./, duplicate /).
func ValidatePath(path string) error {
	if path == "" {
		return errors.New("path is empty")
	}

	if filepath.IsAbs(path) || strings.HasPrefix(path, "/") {
		return errors.New("absolute paths not allowed")
	}

	// Windows drive letters (C:, D:, ...) are rejected on every platform.
	if len(path) >= 2 && path[1] == ':' && ((path[0] >= 'A' && path[0] <= 'Z') || (path[0] >= 'a' && path[0] <= 'z')) {
		return errors.New("absolute paths not allowed")
	}

	if strings.Contains(path, `\`) {
		return errors.New("backslash separators not allowed")
	}

	for _, seg := range strings.Split(path, "/") {
		if seg == ".." {
			return errors.New("path traversal not allowed")
		}
	}

	cleaned := filepath.ToSlash(filepath.Clean(path))
	if cleaned != path {
		return fmt.Errorf("path is not clean (expected %q, got %q)", cleaned, path)
	}
	return nil
}

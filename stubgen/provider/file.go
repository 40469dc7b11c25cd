package provider

import (
	"context"
	"fmt"
	"os"
)

// FileProvider decodes a pre-serialized signature document (.json, .yaml, .yml).
type FileProvider struct {
	Path string
}

// Name returns "file".
func (p *FileProvider) Name() string { return "file" }

// Records reads and decodes the file.
func (p *FileProvider) Records(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, fmt.Errorf("read signatures: %w", err)
	}
	return Decode(data, FormatFromPath(p.Path), p.Path)
}

package provider

import (
	"context"
	"fmt"
	"os"

	"github.com/broady/stubgen/internal/discover"
	"github.com/broady/stubgen/stubgen/ir"
)

// DefaultSourceDir is where the PHP provider looks for view classes.
const DefaultSourceDir = "src/Services/View"

// PHPProvider scans PHP source files directly, without running PHP.
//
// Each matching file contributes the first class it declares. Native type
// hints, default values and the preceding doc comment of every public
// method are reported as signals. Inherited methods are not visible.
type PHPProvider struct {
	// Dir is the directory searched recursively. Empty means DefaultSourceDir.
	Dir string

	// Pattern matches file base names. Empty means discover.DefaultPattern.
	Pattern string
}

// Name returns "php".
func (p *PHPProvider) Name() string { return "php" }

// Records scans every matching file under Dir.
func (p *PHPProvider) Records(ctx context.Context) (*Result, error) {
	dir := p.Dir
	if dir == "" {
		dir = DefaultSourceDir
	}

	files, err := discover.Find(dir, p.Pattern)
	if err != nil {
		return nil, fmt.Errorf("find sources: %w", err)
	}

	res := &Result{Records: make([]Record, 0, len(files))}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rec, w, err := scanFile(f)
		if err != nil {
			return nil, err
		}
		if w != nil {
			res.Warnings = append(res.Warnings, *w)
			continue
		}
		res.Records = append(res.Records, rec)
	}
	return res, nil
}

func scanFile(f discover.File) (Record, *ir.Warning, error) {
	fh, err := os.Open(f.Path)
	if err != nil {
		return Record{}, nil, fmt.Errorf("open %s: %w", f.Path, err)
	}
	defer fh.Close()

	class, err := scanPHP(f.Path, fh)
	if err != nil {
		return Record{}, &ir.Warning{
			Code:    ir.WarnInvalidRecord,
			Message: fmt.Sprintf("cannot tokenize: %v", err),
			Source:  &ir.Source{File: f.Path},
		}, nil
	}
	if class == nil {
		return Record{}, &ir.Warning{
			Code:    ir.WarnNoClass,
			Message: "no class declared",
			Source:  &ir.Source{File: f.Path},
		}, nil
	}

	return Record{
		Name:    class.Name,
		Path:    f.RecordPath,
		Methods: class.Methods,
		Source:  &ir.Source{File: f.Path, Line: class.Line},
	}, nil, nil
}

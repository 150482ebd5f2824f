// Package materialize writes a rendered scaffold to disk.
//
// Work is split into operations that are all validated before any of them
// runs, so conflicts are reported before the first write. There is no
// rollback: a write failure keeps whatever was already written.
package materialize

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// ExecuteOptions configures execution behavior
type ExecuteOptions struct {
	DryRun bool
	Diff   bool      // Print a diff for every file that would be overwritten
	Writer io.Writer // Where to write output (defaults to os.Stdout)
}

// Execute runs operations with validation
func Execute(ctx context.Context, ops []Operation, opts ExecuteOptions) error {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	// Phase 1: Validate all operations
	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("cancelled before validating %s: %w", op.Target(), err)
		}
		if err := op.Validate(ctx); err != nil {
			return err
		}
	}

	// Phase 2: Execute or report
	width := writerWidth(opts.Writer)
	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("cancelled before writing %s: %w", op.Target(), err)
		}

		if opts.DryRun {
			fmt.Fprintf(opts.Writer, "✓ [DRY RUN] %s\n", op.Description())
		} else {
			if err := op.Execute(ctx); err != nil {
				return err
			}
			fmt.Fprintf(opts.Writer, "✓ %s\n", op.Description())
		}

		if w, ok := op.(*WriteFileOp); ok && opts.Diff {
			if d := w.Diff(width); d != "" {
				fmt.Fprint(opts.Writer, d)
			}
		}
	}

	return nil
}

// File is one rendered file ready to be written.
type File struct {
	Path       string // relative to the root, slash separated
	Role       string
	Content    []byte
	Executable bool
}

// FileResult is the outcome for one written file.
type FileResult struct {
	Path       string `json:"path" yaml:"path"`
	Role       string `json:"role" yaml:"role"`
	Status     Status `json:"status" yaml:"status"`
	Bytes      int    `json:"bytes" yaml:"bytes"`
	Executable bool   `json:"executable" yaml:"executable"`
}

// Report summarizes a Materialize call.
type Report struct {
	Root  string       `json:"root" yaml:"root"`
	Files []FileResult `json:"files" yaml:"files"`
}

// Materialize creates root and every parent directory the files need, then
// writes the files in order.
func Materialize(ctx context.Context, root string, files []File, opts ExecuteOptions) (*Report, error) {
	ops := []Operation{&MkdirOp{Path: root}}

	seen := map[string]bool{".": true}
	for _, f := range files {
		dir := path.Dir(f.Path)
		if seen[dir] {
			continue
		}
		seen[dir] = true
		ops = append(ops, &MkdirOp{Path: filepath.Join(root, filepath.FromSlash(dir))})
	}

	writes := make([]*WriteFileOp, len(files))
	for i, f := range files {
		writes[i] = &WriteFileOp{
			Path:    filepath.Join(root, filepath.FromSlash(f.Path)),
			Role:    f.Role,
			Content: f.Content,
			Mode:    FileMode(f.Executable),
		}
		ops = append(ops, writes[i])
	}

	if err := Execute(ctx, ops, opts); err != nil {
		return nil, err
	}

	report := &Report{Root: root}
	for i, f := range files {
		report.Files = append(report.Files, FileResult{
			Path:       f.Path,
			Role:       f.Role,
			Status:     writes[i].Status(),
			Bytes:      len(f.Content),
			Executable: f.Executable,
		})
	}
	return report, nil
}

// FileMode returns the permissions for a planned file.
func FileMode(executable bool) fs.FileMode {
	if executable {
		return 0o755
	}
	return 0o644
}

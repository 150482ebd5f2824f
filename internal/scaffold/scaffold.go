// Package scaffold ties the planner, renderer and materializer together into
// one create operation.
//
// A run is a single linear pass: the name is validated and the whole file set
// is planned and rendered in memory before the filesystem is touched, so a
// bad name or a template defect never leaves a half-written module behind.
package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hyhieu/easy-pybind/internal/catalog"
	"github.com/hyhieu/easy-pybind/internal/materialize"
	"github.com/hyhieu/easy-pybind/internal/output"
	"github.com/hyhieu/easy-pybind/internal/planner"
	"github.com/hyhieu/easy-pybind/internal/render"
)

// Options configures a scaffold run.
type Options struct {
	ModuleName string
	TargetDir  string // parent directory of the module root (defaults to ".")
	Flags      planner.Flags
	DryRun     bool
	Diff       bool
	Writer     io.Writer // operation log (defaults to os.Stdout)
}

// Result describes a completed run.
type Result struct {
	Root   string                   `json:"root" yaml:"root"`
	Plan   *planner.Plan            `json:"plan" yaml:"plan"`
	Files  []materialize.FileResult `json:"files" yaml:"files"`
	Stale  []string                 `json:"stale,omitempty" yaml:"stale,omitempty"`
	DryRun bool                     `json:"dryRun" yaml:"dryRun"`
}

// Scaffolder creates module directories from a catalog.
type Scaffolder struct {
	catalog *catalog.Catalog

	// plan is planner.Build; tests replace it to inject defective plans.
	plan func(string, planner.Flags) (*planner.Plan, error)
}

// New creates a Scaffolder that renders templates from cat.
func New(cat *catalog.Catalog) *Scaffolder {
	return &Scaffolder{
		catalog: cat,
		plan:    planner.Build,
	}
}

// Plan computes the file set for opts without rendering or writing anything.
func (s *Scaffolder) Plan(opts Options) (*planner.Plan, error) {
	return s.plan(opts.ModuleName, opts.Flags)
}

// Render produces the content of every planned file, in plan order.
// It fails on the first template that cannot be rendered.
func (s *Scaffolder) Render(plan *planner.Plan) ([]materialize.File, error) {
	files := make([]materialize.File, 0, len(plan.Entries))
	for _, e := range plan.Entries {
		tmpl, err := s.catalog.Get(e.Role, e.Variant)
		if err != nil {
			return nil, err
		}

		content, err := render.Render(tmpl.Body, e.Params)
		if err != nil {
			return nil, err
		}

		files = append(files, materialize.File{
			Path:       e.Path,
			Role:       string(e.Role),
			Content:    content,
			Executable: e.Executable,
		})
	}
	return files, nil
}

// Run validates, plans, renders and writes one module.
func (s *Scaffolder) Run(ctx context.Context, opts Options) (*Result, error) {
	plan, err := s.Plan(opts)
	if err != nil {
		return nil, err
	}
	output.Debug("planned module", "name", plan.Root, "files", len(plan.Entries), "flags", fmt.Sprintf("%+v", opts.Flags))

	files, err := s.Render(plan)
	if err != nil {
		return nil, err
	}

	targetDir := opts.TargetDir
	if targetDir == "" {
		targetDir = "."
	}
	root := filepath.Join(targetDir, plan.Root)
	output.Debug("materializing", "root", root, "dryRun", opts.DryRun)

	report, err := materialize.Materialize(ctx, root, files, materialize.ExecuteOptions{
		DryRun: opts.DryRun,
		Diff:   opts.Diff,
		Writer: opts.Writer,
	})
	if err != nil {
		return nil, err
	}

	stale, err := staleFiles(root, plan.Excluded)
	if err != nil {
		return nil, err
	}

	return &Result{
		Root:   root,
		Plan:   plan,
		Files:  report.Files,
		Stale:  stale,
		DryRun: opts.DryRun,
	}, nil
}

// staleFiles returns the excluded paths that exist under root. They are
// leftovers of a run with different flags and are reported, never removed.
func staleFiles(root string, excluded []string) ([]string, error) {
	var stale []string
	for _, rel := range excluded {
		_, err := os.Lstat(filepath.Join(root, filepath.FromSlash(rel)))
		switch {
		case err == nil:
			stale = append(stale, rel)
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("checking %s: %w", rel, err)
		}
	}
	return stale, nil
}

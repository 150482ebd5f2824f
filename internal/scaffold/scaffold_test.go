package scaffold

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/hyhieu/easy-pybind/internal/catalog"
	apperrors "github.com/hyhieu/easy-pybind/internal/errors"
	"github.com/hyhieu/easy-pybind/internal/materialize"
	"github.com/hyhieu/easy-pybind/internal/planner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, s *Scaffolder, opts Options) (*Result, error) {
	t.Helper()
	if opts.Writer == nil {
		opts.Writer = &bytes.Buffer{}
	}
	return s.Run(context.Background(), opts)
}

// listTree returns every file under root as slash-separated relative paths.
func listTree(t *testing.T, root string) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			rel, _ := filepath.Rel(root, path)
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	require.NoError(t, err)
	sort.Strings(files)
	return files
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func perm(t *testing.T, path string) os.FileMode {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	return info.Mode().Perm()
}

func TestRun_WidgetScenario(t *testing.T) {
	dir := t.TempDir()
	s := New(catalog.MustNew())

	result, err := run(t, s, Options{
		ModuleName: "widget",
		TargetDir:  dir,
		Flags:      planner.Flags{IgnoreFile: true, TestStub: true},
	})
	require.NoError(t, err)

	root := filepath.Join(dir, "widget")
	assert.Equal(t, root, result.Root)
	assert.Equal(t, []string{
		".gitignore",
		"build.sh",
		"clean.sh",
		"src/widget.cc",
		"src/widget_impl.cc",
		"src/widget_impl.h",
		"widget_test.py",
	}, listTree(t, root))

	assert.Equal(t, os.FileMode(0o755), perm(t, filepath.Join(root, "build.sh")))
	assert.Equal(t, os.FileMode(0o755), perm(t, filepath.Join(root, "clean.sh")))
	assert.Equal(t, os.FileMode(0o644), perm(t, filepath.Join(root, "src", "widget.cc")))
	assert.Equal(t, os.FileMode(0o644), perm(t, filepath.Join(root, ".gitignore")))

	assert.Contains(t, readFile(t, filepath.Join(root, "src", "widget.cc")), "PYBIND11_MODULE(widget, m)")
	assert.Contains(t, readFile(t, filepath.Join(root, "src", "widget_impl.h")), "#ifndef WIDGET_IMPL_H_")
	assert.Contains(t, readFile(t, filepath.Join(root, "build.sh")), "src/widget_impl.cc")
	assert.Contains(t, readFile(t, filepath.Join(root, "widget_test.py")), "import widget")

	for _, f := range result.Files {
		assert.Equal(t, materialize.StatusCreated, f.Status, f.Path)
	}
	assert.Empty(t, result.Stale)
}

func TestRun_FastmathScenario(t *testing.T) {
	dir := t.TempDir()
	s := New(catalog.MustNew())

	_, err := run(t, s, Options{
		ModuleName: "fastmath",
		TargetDir:  dir,
		Flags:      planner.Flags{Accelerator: true},
	})
	require.NoError(t, err)

	root := filepath.Join(dir, "fastmath")
	assert.Equal(t, []string{
		"build.sh",
		"clean.sh",
		"src/fastmath.cc",
		"src/fastmath_impl.cu",
		"src/fastmath_impl.h",
	}, listTree(t, root))

	build := readFile(t, filepath.Join(root, "build.sh"))
	assert.Contains(t, build, "nvcc")
	assert.Contains(t, build, "src/fastmath_impl.cu")
	assert.NotContains(t, build, "g++")

	assert.Contains(t, readFile(t, filepath.Join(root, "src", "fastmath_impl.cu")), "__global__")
}

func TestRun_CasePreserved(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, New(catalog.MustNew()), Options{ModuleName: "FastMath", TargetDir: dir})
	require.NoError(t, err)

	root := filepath.Join(dir, "FastMath")
	binding := readFile(t, filepath.Join(root, "src", "FastMath.cc"))
	assert.Contains(t, binding, "PYBIND11_MODULE(FastMath, m)")
	assert.Contains(t, binding, `#include "FastMath_impl.h"`)
	assert.Contains(t, readFile(t, filepath.Join(root, "src", "FastMath_impl.h")), "FASTMATH_IMPL_H_")
}

func TestRun_Idempotent(t *testing.T) {
	dir := t.TempDir()
	s := New(catalog.MustNew())
	opts := Options{
		ModuleName: "widget",
		TargetDir:  dir,
		Flags:      planner.Flags{IgnoreFile: true, TestStub: true, DemoEntryPoint: true},
	}
	root := filepath.Join(dir, "widget")

	_, err := run(t, s, opts)
	require.NoError(t, err)

	snapshot := map[string]string{}
	for _, f := range listTree(t, root) {
		snapshot[f] = readFile(t, filepath.Join(root, f))
	}

	// Second run: byte-identical, nothing rewritten.
	result, err := run(t, s, opts)
	require.NoError(t, err)
	for _, f := range result.Files {
		assert.Equal(t, materialize.StatusUnchanged, f.Status, f.Path)
	}
	for f, want := range snapshot {
		assert.Equal(t, want, readFile(t, filepath.Join(root, f)), f)
	}

	// Third run after a manual edit: the edit is overwritten.
	buildPath := filepath.Join(root, "build.sh")
	require.NoError(t, os.WriteFile(buildPath, []byte("echo edited\n"), 0o600))

	result, err = run(t, s, opts)
	require.NoError(t, err)
	assert.Equal(t, snapshot["build.sh"], readFile(t, buildPath))
	assert.Equal(t, os.FileMode(0o755), perm(t, buildPath))
	assert.Equal(t, materialize.StatusUpdated, result.Files[0].Status)
}

func TestRun_StaleFilesKeptAndReported(t *testing.T) {
	dir := t.TempDir()
	s := New(catalog.MustNew())
	root := filepath.Join(dir, "widget")

	_, err := run(t, s, Options{
		ModuleName: "widget",
		TargetDir:  dir,
		Flags:      planner.Flags{IgnoreFile: true, DemoEntryPoint: true},
	})
	require.NoError(t, err)

	result, err := run(t, s, Options{
		ModuleName: "widget",
		TargetDir:  dir,
		Flags:      planner.Flags{Accelerator: true},
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"src/widget_impl.cc", ".gitignore", "main.py"}, result.Stale)

	// Stale files stay on disk next to the new variant.
	for _, f := range []string{"src/widget_impl.cc", "src/widget_impl.cu", ".gitignore", "main.py"} {
		_, err := os.Stat(filepath.Join(root, filepath.FromSlash(f)))
		assert.NoError(t, err, f)
	}
}

func TestRun_InvalidNameWritesNothing(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"", "my-module", "2fast", "../escape", "import"} {
		_, err := run(t, New(catalog.MustNew()), Options{ModuleName: name, TargetDir: dir})
		require.Error(t, err, name)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidModuleName), name)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRun_MissingParameterWritesNothing(t *testing.T) {
	dir := t.TempDir()
	s := New(catalog.MustNew())
	s.plan = func(name string, flags planner.Flags) (*planner.Plan, error) {
		p, err := planner.Build(name, flags)
		if err != nil {
			return nil, err
		}
		// Break the last entry only, so earlier entries would render fine.
		last := &p.Entries[len(p.Entries)-1]
		params := planner.Params(name, flags)
		delete(params, catalog.ParamModuleName)
		last.Params = params
		return p, nil
	}

	_, err := run(t, s, Options{ModuleName: "widget", TargetDir: dir, Flags: planner.Flags{TestStub: true}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrMissingParameter))
	assert.True(t, apperrors.IsInternal(err))

	var de *apperrors.DetailError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, catalog.ParamModuleName, de.Key)

	_, err = os.Stat(filepath.Join(dir, "widget"))
	assert.True(t, os.IsNotExist(err), "no directory may be created when rendering fails")
}

func TestRun_TargetConflict(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "widget"), []byte("a file"), 0o644))

	_, err := run(t, New(catalog.MustNew()), Options{ModuleName: "widget", TargetDir: dir})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrTargetConflict))
	assert.Equal(t, apperrors.ExitTargetConflict, apperrors.ExitCodeFor(err))
}

func TestRun_DryRun(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer

	result, err := run(t, New(catalog.MustNew()), Options{
		ModuleName: "widget",
		TargetDir:  dir,
		DryRun:     true,
		Writer:     &buf,
	})
	require.NoError(t, err)
	assert.True(t, result.DryRun)
	assert.Len(t, result.Files, len(result.Plan.Entries))

	_, err = os.Stat(filepath.Join(dir, "widget"))
	assert.True(t, os.IsNotExist(err))
	assert.Equal(t, len(result.Plan.Entries)+2, strings.Count(buf.String(), "[DRY RUN]"))
}

func TestRun_DefaultTargetDir(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	result, err := run(t, New(catalog.MustNew()), Options{ModuleName: "widget"})
	require.NoError(t, err)
	assert.Equal(t, "widget", result.Root)

	_, err = os.Stat(filepath.Join(dir, "widget", "build.sh"))
	assert.NoError(t, err)
}

func TestRender_AllFlagCombinations(t *testing.T) {
	s := New(catalog.MustNew())

	for i := 0; i < 16; i++ {
		flags := planner.Flags{
			Accelerator:    i&1 != 0,
			IgnoreFile:     i&2 != 0,
			TestStub:       i&4 != 0,
			DemoEntryPoint: i&8 != 0,
		}
		plan, err := s.Plan(Options{ModuleName: "widget", Flags: flags})
		require.NoError(t, err)

		files, err := s.Render(plan)
		require.NoError(t, err)
		require.Len(t, files, len(plan.Entries))

		for _, f := range files {
			// No placeholder survives rendering.
			assert.NotContains(t, string(f.Content), "{{", f.Path)
		}
	}
}

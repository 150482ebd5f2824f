// Package planner decides which files a scaffold contains.
//
// Build is a pure function of the module name and the feature flags: it never
// touches the filesystem, and all flag-combination logic lives here.
package planner

import (
	"maps"
	"path"
	"strings"

	"github.com/hyhieu/easy-pybind/internal/catalog"
	"github.com/hyhieu/easy-pybind/internal/render"
)

// SourceDir is the subdirectory holding source-role files.
const SourceDir = "src"

// Flags are the orthogonal feature switches of a scaffold run.
type Flags struct {
	Accelerator    bool `json:"accelerator" yaml:"accelerator"`       // CUDA implementation instead of C++
	IgnoreFile     bool `json:"ignoreFile" yaml:"ignoreFile"`         // .gitignore
	TestStub       bool `json:"testStub" yaml:"testStub"`             // pytest smoke test
	DemoEntryPoint bool `json:"demoEntryPoint" yaml:"demoEntryPoint"` // main.py
}

// Entry is one file the scaffold will produce.
type Entry struct {
	Path       string          `json:"path" yaml:"path"` // relative to Plan.Root, slash separated
	Role       catalog.Role    `json:"role" yaml:"role"`
	Variant    catalog.Variant `json:"variant" yaml:"variant"`
	Params     render.Params   `json:"params" yaml:"params"`
	Executable bool            `json:"executable" yaml:"executable"`
}

// Plan is the ordered file set for one module.
type Plan struct {
	// Root is the directory (named after the module) every entry lives under.
	Root string `json:"root" yaml:"root"`

	// Entries are the files to write, in write order.
	Entries []Entry `json:"entries" yaml:"entries"`

	// Excluded lists files a differently-flagged run would have produced.
	// They are reported when present on disk but never deleted.
	Excluded []string `json:"excluded,omitempty" yaml:"excluded,omitempty"`
}

// Paths returns the entry paths in plan order.
func (p *Plan) Paths() []string {
	out := make([]string, len(p.Entries))
	for i, e := range p.Entries {
		out[i] = e.Path
	}
	return out
}

// Params derives the substitution parameters shared by every file of a module.
func Params(name string, flags Flags) render.Params {
	return render.Params{
		catalog.ParamModuleName:  name,
		catalog.ParamHeaderGuard: strings.ToUpper(name) + "_IMPL_H_",
		catalog.ParamImplSource:  implFileName(name, flags.Accelerator),
	}
}

// Build computes the file set for name under flags.
// The name is validated first; an invalid name yields no plan.
func Build(name string, flags Flags) (*Plan, error) {
	if err := ValidateModuleName(name); err != nil {
		return nil, err
	}

	params := Params(name, flags)
	variant := catalog.VariantDefault
	if flags.Accelerator {
		variant = catalog.VariantAccelerator
	}

	p := &Plan{Root: name}
	add := func(rel string, role catalog.Role, v catalog.Variant, exec bool) {
		p.Entries = append(p.Entries, Entry{
			Path:       rel,
			Role:       role,
			Variant:    v,
			Params:     maps.Clone(params),
			Executable: exec,
		})
	}

	add("build.sh", catalog.RoleBuildScript, variant, true)
	add("clean.sh", catalog.RoleCleanScript, catalog.VariantDefault, true)
	add(path.Join(SourceDir, name+".cc"), catalog.RoleBindingSource, catalog.VariantDefault, false)
	add(path.Join(SourceDir, name+"_impl.h"), catalog.RoleImplHeader, catalog.VariantDefault, false)
	add(path.Join(SourceDir, implFileName(name, flags.Accelerator)), catalog.RoleImplSource, variant, false)

	// The alternate implementation is stale output of a run with the other variant.
	p.Excluded = append(p.Excluded, path.Join(SourceDir, implFileName(name, !flags.Accelerator)))

	optional := []struct {
		enabled bool
		rel     string
		role    catalog.Role
	}{
		{flags.IgnoreFile, ".gitignore", catalog.RoleIgnoreFile},
		{flags.TestStub, name + "_test.py", catalog.RoleTestStub},
		{flags.DemoEntryPoint, "main.py", catalog.RoleDemoEntryPoint},
	}
	for _, o := range optional {
		if o.enabled {
			add(o.rel, o.role, catalog.VariantDefault, false)
		} else {
			p.Excluded = append(p.Excluded, o.rel)
		}
	}

	return p, nil
}

func implFileName(name string, accelerator bool) string {
	if accelerator {
		return name + "_impl.cu"
	}
	return name + "_impl.cc"
}

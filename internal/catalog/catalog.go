// Package catalog holds the template bodies easy-pybind renders, keyed by
// file role and variant.
//
// The catalog is built once by New, never mutated afterwards, and passed to
// the code that renders it. Each body may only reference placeholders from
// the closed vocabulary (ParamModuleName, ParamHeaderGuard, ParamImplSource);
// New rejects a body that uses anything else.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"

	apperrors "github.com/hyhieu/easy-pybind/internal/errors"
	"github.com/hyhieu/easy-pybind/internal/render"
)

//go:embed templates/*/*.tmpl
var templateFS embed.FS

// Role is the logical purpose of a generated file, independent of its filename.
type Role string

const (
	RoleBuildScript    Role = "build-script"
	RoleCleanScript    Role = "clean-script"
	RoleBindingSource  Role = "binding-source"
	RoleImplHeader     Role = "impl-header"
	RoleImplSource     Role = "impl-source"
	RoleIgnoreFile     Role = "ignore-file"
	RoleTestStub       Role = "test-stub"
	RoleDemoEntryPoint Role = "demo-entry-point"
)

// Variant selects between the default and the GPU flavour of a role.
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantAccelerator Variant = "accelerator"
)

// Placeholder vocabulary shared by every template.
const (
	ParamModuleName  = "ModuleName"
	ParamHeaderGuard = "HeaderGuard"
	ParamImplSource  = "ImplSource"
)

// Vocabulary returns the placeholder names a template may use.
func Vocabulary() []string {
	return []string{ParamModuleName, ParamHeaderGuard, ParamImplSource}
}

// Registration binds a role/variant pair to a template file.
type Registration struct {
	Role        Role
	Variant     Variant
	Source      string // path inside the template filesystem
	Description string
}

// defaultRegistrations is the built-in role table.
var defaultRegistrations = []Registration{
	{RoleBuildScript, VariantDefault, "templates/default/build.sh.tmpl", "g++ build script"},
	{RoleBuildScript, VariantAccelerator, "templates/accelerator/build.sh.tmpl", "nvcc build script"},
	{RoleCleanScript, VariantDefault, "templates/default/clean.sh.tmpl", "removes build artifacts"},
	{RoleBindingSource, VariantDefault, "templates/default/binding.cc.tmpl", "pybind11 module entry point"},
	{RoleImplHeader, VariantDefault, "templates/default/impl.h.tmpl", "implementation declarations"},
	{RoleImplSource, VariantDefault, "templates/default/impl.cc.tmpl", "C++ implementation"},
	{RoleImplSource, VariantAccelerator, "templates/accelerator/impl.cu.tmpl", "CUDA implementation"},
	{RoleIgnoreFile, VariantDefault, "templates/default/gitignore.tmpl", "keeps build outputs out of git"},
	{RoleTestStub, VariantDefault, "templates/default/test.py.tmpl", "pytest smoke test"},
	{RoleDemoEntryPoint, VariantDefault, "templates/default/main.py.tmpl", "demo entry point"},
}

// DefaultRegistrations returns a copy of the built-in role table.
func DefaultRegistrations() []Registration {
	return slices.Clone(defaultRegistrations)
}

// Template is a registered, parsed template body.
type Template struct {
	Role        Role
	Variant     Variant
	Source      string
	Description string
	Body        *render.Template
}

// Placeholders returns the placeholders the body references.
func (t Template) Placeholders() []string {
	return t.Body.Placeholders()
}

type key struct {
	role    Role
	variant Variant
}

// Catalog maps (role, variant) to template bodies.
type Catalog struct {
	templates map[key]Template
	order     []key
}

// New builds the catalog from the embedded templates.
func New() (*Catalog, error) {
	return NewFromFS(templateFS, defaultRegistrations)
}

// MustNew is like New but panics on error. The embedded catalog is fixed at
// build time, so a failure here is a packaging defect.
func MustNew() *Catalog {
	c, err := New()
	if err != nil {
		panic(err)
	}
	return c
}

// NewFromFS builds a catalog from an arbitrary filesystem and role table.
func NewFromFS(fsys fs.FS, registrations []Registration) (*Catalog, error) {
	allowed := make(map[string]bool)
	for _, p := range Vocabulary() {
		allowed[p] = true
	}

	c := &Catalog{templates: make(map[key]Template, len(registrations))}

	for _, reg := range registrations {
		k := key{reg.Role, reg.Variant}
		if _, dup := c.templates[k]; dup {
			return nil, fmt.Errorf("duplicate template registration for %s/%s", reg.Role, reg.Variant)
		}

		content, err := fs.ReadFile(fsys, reg.Source)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", reg.Source, err)
		}

		body, err := render.Parse(string(reg.Role), string(content))
		if err != nil {
			return nil, err
		}

		for _, p := range body.Placeholders() {
			if !allowed[p] {
				return nil, fmt.Errorf("template %s uses undeclared placeholder %q", path.Base(reg.Source), p)
			}
		}

		c.templates[k] = Template{
			Role:        reg.Role,
			Variant:     reg.Variant,
			Source:      reg.Source,
			Description: reg.Description,
			Body:        body,
		}
		c.order = append(c.order, k)
	}

	return c, nil
}

// Get returns the template registered for role and variant.
func (c *Catalog) Get(role Role, variant Variant) (Template, error) {
	t, ok := c.templates[key{role, variant}]
	if !ok {
		return Template{}, apperrors.NewUnknownRoleError(string(role), string(variant))
	}
	return t, nil
}

// Templates returns every registered template in registration order.
func (c *Catalog) Templates() []Template {
	out := make([]Template, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, c.templates[k])
	}
	return out
}

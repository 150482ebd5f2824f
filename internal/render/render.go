// Package render turns catalog templates into file content.
//
// Templates use text/template syntax restricted to field references on the
// parameter map ({{.ModuleName}}). A template's placeholders are extracted
// from its parse tree when it is parsed, so that a missing parameter is
// reported by name before execution instead of surfacing as an execution
// error halfway through the output.
package render

import (
	"bytes"
	"fmt"
	"text/template"
	"text/template/parse"

	apperrors "github.com/hyhieu/easy-pybind/internal/errors"
)

// Params maps placeholder names to their substitution values.
type Params map[string]string

// Template is a parsed template body together with its placeholder set.
type Template struct {
	name         string
	tmpl         *template.Template
	placeholders []string
}

// Parse parses body and records the placeholders it references.
func Parse(name, body string) (*Template, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template '%s': %w", name, err)
	}

	seen := make(map[string]bool)
	var placeholders []string
	if tmpl.Tree != nil {
		collectFields(tmpl.Tree.Root, func(field string) {
			if !seen[field] {
				seen[field] = true
				placeholders = append(placeholders, field)
			}
		})
	}

	return &Template{name: name, tmpl: tmpl, placeholders: placeholders}, nil
}

// Placeholders returns the placeholder names in order of first use.
func (t *Template) Placeholders() []string {
	out := make([]string, len(t.placeholders))
	copy(out, t.placeholders)
	return out
}

// Render substitutes params into t.
// Every placeholder of t must be present in params; extra params are ignored.
// Substituted values are written verbatim and never expanded again.
func Render(t *Template, params Params) ([]byte, error) {
	for _, key := range t.placeholders {
		if _, ok := params[key]; !ok {
			return nil, apperrors.NewMissingParameterError(t.name, key)
		}
	}

	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, map[string]string(params)); err != nil {
		return nil, fmt.Errorf("failed to render template '%s': %w", t.name, err)
	}
	return buf.Bytes(), nil
}

// collectFields walks a parse tree and reports the first identifier of every
// field reference ({{.Foo}} and {{.Foo.Bar}} both report "Foo").
func collectFields(node parse.Node, fn func(string)) {
	switch n := node.(type) {
	case nil:
		return
	case *parse.ListNode:
		if n == nil {
			return
		}
		for _, child := range n.Nodes {
			collectFields(child, fn)
		}
	case *parse.ActionNode:
		collectFields(n.Pipe, fn)
	case *parse.PipeNode:
		if n == nil {
			return
		}
		for _, cmd := range n.Cmds {
			collectFields(cmd, fn)
		}
	case *parse.CommandNode:
		for _, arg := range n.Args {
			collectFields(arg, fn)
		}
	case *parse.FieldNode:
		if len(n.Ident) > 0 {
			fn(n.Ident[0])
		}
	case *parse.ChainNode:
		collectFields(n.Node, fn)
	case *parse.IfNode:
		collectBranch(&n.BranchNode, fn)
	case *parse.RangeNode:
		collectBranch(&n.BranchNode, fn)
	case *parse.WithNode:
		collectBranch(&n.BranchNode, fn)
	case *parse.TemplateNode:
		collectFields(n.Pipe, fn)
	}
}

func collectBranch(b *parse.BranchNode, fn func(string)) {
	collectFields(b.Pipe, fn)
	collectFields(b.List, fn)
	collectFields(b.ElseList, fn)
}

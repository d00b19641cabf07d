// Package docgen renders parameterized JSON and YAML document templates.
// Templates reference variables as {{name}} placeholders inside string
// leaves; an optional _template metadata block declares required names,
// default values, and tolerance for unresolved placeholders. Strict
// rendering fails loudly instead of emitting literal placeholder text.
package docgen

import (
	"context"

	"github.com/goliatone/go-docgen/pkg/orchestrator"
	"github.com/goliatone/go-docgen/pkg/render"
	pkgtemplate "github.com/goliatone/go-docgen/pkg/template"
)

// Value re-exports the parsed document representation for convenience.
type Value = pkgtemplate.Value

// Metadata aliases the template metadata block.
type Metadata = render.Metadata

// RenderOptions aliases the strict render options.
type RenderOptions = render.Options

// Request aliases the orchestrator request for callers using the root entry
// points.
type Request = orchestrator.Request

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Generate loads the template source, validates and resolves the supplied
// variables, and returns the rendered document. It is the simplest entry
// point for callers that want one call from source to output.
func Generate(ctx context.Context, source pkgtemplate.Source, variables pkgtemplate.Value, allowUnresolved bool, options ...orchestrator.Option) (pkgtemplate.Value, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Source:          source,
		Variables:       variables,
		AllowUnresolved: allowUnresolved,
	})
}

// Render applies the strict pipeline to an already-parsed template value,
// bypassing the loader stage entirely.
func Render(doc pkgtemplate.Value, variables any, opts RenderOptions) (pkgtemplate.Value, error) {
	return render.Render(doc, variables, opts)
}

// Package orchestrator coordinates the full pipeline from template source to
// rendered document: load, parse, metadata extraction, optional variable
// schema validation, strict rendering, and optional interactive fill for
// missing variables.
package orchestrator

import (
	"context"
	"errors"

	internalLoader "github.com/goliatone/go-docgen/internal/template/loader"
	"github.com/goliatone/go-docgen/pkg/prompt"
	"github.com/goliatone/go-docgen/pkg/render"
	pkgtemplate "github.com/goliatone/go-docgen/pkg/template"
	"github.com/goliatone/go-docgen/pkg/validation"
	"github.com/goliatone/go-docgen/pkg/vars"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom template loader.
func WithLoader(loader pkgtemplate.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithSchemaValidation toggles validation of the caller variable document
// against the template metadata schema. Enabled by default.
func WithSchemaValidation(enabled bool) Option {
	return func(o *Orchestrator) {
		o.validateSchema = enabled
	}
}

// WithPrompter registers an interactive filler consulted when a strict
// render fails with missing variables. The render is retried once with the
// prompted values merged underneath the caller's.
func WithPrompter(filler *prompt.Filler) Option {
	return func(o *Orchestrator) {
		o.prompter = filler
	}
}

// Orchestrator wires the pipeline stages together. Missing dependencies are
// initialised with the built-in implementations so callers can start with a
// single constructor call.
type Orchestrator struct {
	loader         pkgtemplate.Loader
	validateSchema bool
	prompter       *prompt.Filler
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{validateSchema: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	if o.loader == nil {
		o.loader = internalLoader.New(pkgtemplate.NewLoaderOptions())
	}
	return o
}

// Request describes the inputs required to render a template.
type Request struct {
	// Source identifies where the template document lives. Optional when
	// Document is supplied.
	Source pkgtemplate.Source

	// Document allows callers to bypass the loader when they already have the
	// raw payload.
	Document *pkgtemplate.Document

	// Variables is the parsed caller variable document; the zero value means
	// no variables were supplied. Ignored when VariablesSource is set.
	Variables pkgtemplate.Value

	// VariablesSource loads the variable document through the loader.
	VariablesSource pkgtemplate.Source

	// AllowUnresolved downgrades missing and unresolved variable failures to
	// a best-effort render keeping literal placeholder text.
	AllowUnresolved bool
}

// Generate executes the loader → parser → validation → renderer sequence and
// returns the rendered value. All four error kinds (parse, validation,
// missing variables, unresolved placeholders) are terminal: no partial
// output is ever returned.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (pkgtemplate.Value, error) {
	if ctx == nil {
		return pkgtemplate.Value{}, errors.New("orchestrator: context is required")
	}

	var (
		doc pkgtemplate.Document
		err error
	)
	switch {
	case req.Document != nil:
		doc = *req.Document
	case req.Source != nil:
		doc, err = o.loader.Load(ctx, req.Source)
		if err != nil {
			return pkgtemplate.Value{}, err
		}
	default:
		return pkgtemplate.Value{}, errors.New("orchestrator: request requires a source or document")
	}

	tpl, err := pkgtemplate.Parse(doc)
	if err != nil {
		return pkgtemplate.Value{}, err
	}

	variables := req.Variables
	if req.VariablesSource != nil {
		varsDoc, err := o.loader.Load(ctx, req.VariablesSource)
		if err != nil {
			return pkgtemplate.Value{}, err
		}
		variables, err = pkgtemplate.Parse(varsDoc)
		if err != nil {
			return pkgtemplate.Value{}, err
		}
	}

	meta, payload := render.ExtractMetadata(tpl)

	if o.validateSchema {
		if result := validation.ValidateVariables(meta.Schema, variables); !result.Valid {
			return pkgtemplate.Value{}, result.Err()
		}
	}

	opts := render.Options{AllowUnresolved: req.AllowUnresolved}
	rendered, err := render.RenderPayload(meta, payload, variables, opts)
	if err == nil {
		return rendered, nil
	}

	var missing render.MissingVariablesError
	if o.prompter == nil || !errors.As(err, &missing) {
		return pkgtemplate.Value{}, err
	}

	defaults, derr := vars.Normalize(meta.Defaults)
	if derr != nil {
		return pkgtemplate.Value{}, derr
	}
	supplied, perr := o.prompter.Fill(ctx, missing.Names, defaults)
	if perr != nil {
		return pkgtemplate.Value{}, perr
	}
	caller, nerr := vars.Normalize(variables)
	if nerr != nil {
		return pkgtemplate.Value{}, nerr
	}

	return render.RenderPayload(meta, payload, vars.Merge(supplied, caller), opts)
}

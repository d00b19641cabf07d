package render

import (
	"sort"

	"github.com/goliatone/go-docgen/pkg/template"
	"github.com/goliatone/go-docgen/pkg/vars"
)

// Options control strict rendering behaviour.
type Options struct {
	// AllowUnresolved downgrades MissingVariablesError and
	// UnresolvedPlaceholdersError to a best-effort render containing literal
	// placeholder text. The template metadata can enable the same behaviour
	// via its allow_unresolved field; either switch suffices. The two failure
	// classes intentionally share one toggle.
	AllowUnresolved bool
}

// Render executes the strict pipeline over a parsed template value:
// metadata extraction, variable normalization with defaults merged
// underneath caller values, required-set enforcement, interpolation, and a
// post-render scan for surviving placeholders. The input trees are never
// mutated; the rendered value is freshly allocated. On failure no partial
// output is returned.
//
// The variables document may be nil (absent), a template.Value object, or a
// plain Go map; see vars.Normalize.
func Render(doc template.Value, variables any, opts Options) (template.Value, error) {
	meta, payload := ExtractMetadata(doc)
	return RenderPayload(meta, payload, variables, opts)
}

// RenderPayload renders a payload whose metadata block was already
// extracted. Callers that inspected the metadata (catalog enrichment,
// schema validation) can avoid a second extraction pass.
func RenderPayload(meta Metadata, payload template.Value, variables any, opts Options) (template.Value, error) {
	callerSet, err := vars.Normalize(variables)
	if err != nil {
		return template.Value{}, err
	}
	defaults, err := vars.Normalize(meta.Defaults)
	if err != nil {
		return template.Value{}, err
	}
	effective := vars.Merge(defaults, callerSet)

	var required []string
	if meta.RequiredDeclared {
		required = meta.Required
	} else {
		required = Placeholders(payload)
	}

	tolerant := opts.AllowUnresolved || meta.AllowUnresolved

	if missing := missingNames(required, effective); len(missing) > 0 && !tolerant {
		return template.Value{}, MissingVariablesError{Names: missing}
	}

	rendered := Interpolate(payload, effective)

	if leftover := Placeholders(rendered); len(leftover) > 0 && !tolerant {
		return template.Value{}, UnresolvedPlaceholdersError{Names: leftover}
	}
	return rendered, nil
}

func missingNames(required []string, resolved vars.Set) []string {
	seen := make(map[string]struct{}, len(required))
	var missing []string
	for _, name := range required {
		if resolved.Has(name) {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		missing = append(missing, name)
	}
	sort.Strings(missing)
	return missing
}

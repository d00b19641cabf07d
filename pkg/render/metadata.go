package render

import (
	"github.com/goliatone/go-docgen/pkg/template"
)

// MetadataKey is the reserved top-level key carrying out-of-band template
// directives. The block is stripped from the payload before rendering and is
// never part of the output.
const MetadataKey = "_template"

// Metadata is the optional sidecar block a template can declare under
// MetadataKey. All fields are optional; an absent block behaves like the zero
// value.
type Metadata struct {
	// Name and Description identify the template in catalog listings.
	Name        string
	Description string

	// Required lists the variable names that must resolve before a strict
	// render succeeds. RequiredDeclared distinguishes an explicit empty list
	// from an absent field: when the field is absent, every placeholder found
	// in the payload is implicitly required.
	Required         []string
	RequiredDeclared bool

	// Defaults maps variable names to scalar fallback values. Caller-supplied
	// variables override defaults on name collision, never the reverse.
	Defaults template.Value

	// AllowUnresolved downgrades missing and unresolved variable failures to
	// a best-effort render keeping literal placeholder text.
	AllowUnresolved bool

	// Schema optionally describes the caller variable document as an
	// OpenAPI-style schema, validated before normalization.
	Schema template.Value
}

// ExtractMetadata splits the reserved metadata block from the template value
// and returns the payload with the block stripped. Metadata is advisory:
// wrong-typed blocks or fields are ignored rather than failing the render,
// and non-string entries in the required list are dropped.
func ExtractMetadata(doc template.Value) (Metadata, template.Value) {
	raw, ok := doc.Field(MetadataKey)
	if !ok {
		return Metadata{}, doc
	}

	payload := doc.WithoutField(MetadataKey)
	if raw.Kind() != template.KindObject {
		return Metadata{}, payload
	}

	var meta Metadata
	for _, m := range raw.Members() {
		switch m.Key {
		case "name":
			if m.Value.Kind() == template.KindString {
				meta.Name = m.Value.Text()
			}
		case "description":
			if m.Value.Kind() == template.KindString {
				meta.Description = m.Value.Text()
			}
		case "required":
			if m.Value.Kind() != template.KindArray {
				continue
			}
			meta.RequiredDeclared = true
			for _, item := range m.Value.Items() {
				if item.Kind() == template.KindString {
					meta.Required = append(meta.Required, item.Text())
				}
			}
		case "defaults":
			if m.Value.Kind() == template.KindObject {
				meta.Defaults = m.Value
			}
		case "allow_unresolved":
			if m.Value.Kind() == template.KindBool {
				meta.AllowUnresolved = m.Value.Bool()
			}
		case "schema":
			if m.Value.Kind() == template.KindObject {
				meta.Schema = m.Value
			}
		}
	}
	return meta, payload
}

package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-docgen/pkg/template"
)

func mustParse(t *testing.T, raw string) template.Value {
	t.Helper()
	val, err := template.ParseJSON([]byte(raw))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return val
}

func TestExtractMetadata_SplitsBlockFromPayload(t *testing.T) {
	doc := mustParse(t, `{
		"greeting": "Hello, {{name}}!",
		"_template": {
			"name": "Greeting",
			"description": "Says hello",
			"required": ["name"],
			"defaults": {"tone": "formal"},
			"allow_unresolved": true
		}
	}`)

	meta, payload := ExtractMetadata(doc)

	if meta.Name != "Greeting" || meta.Description != "Says hello" {
		t.Fatalf("unexpected identity fields: %+v", meta)
	}
	if !meta.RequiredDeclared {
		t.Fatalf("required list should be marked declared")
	}
	if diff := cmp.Diff([]string{"name"}, meta.Required); diff != "" {
		t.Fatalf("unexpected required (-want +got):\n%s", diff)
	}
	if !meta.AllowUnresolved {
		t.Fatalf("allow_unresolved not read")
	}
	if tone, ok := meta.Defaults.Field("tone"); !ok || tone.Text() != "formal" {
		t.Fatalf("defaults not read: %+v", meta.Defaults)
	}

	if _, ok := payload.Field(MetadataKey); ok {
		t.Fatalf("metadata key must be stripped from payload")
	}
	if _, ok := payload.Field("greeting"); !ok {
		t.Fatalf("payload member lost")
	}
}

func TestExtractMetadata_AbsentBlock(t *testing.T) {
	doc := mustParse(t, `{"msg": "hi"}`)

	meta, payload := ExtractMetadata(doc)
	if meta.RequiredDeclared || meta.AllowUnresolved || meta.Required != nil {
		t.Fatalf("expected zero metadata, got %+v", meta)
	}
	if !payload.Equal(doc) {
		t.Fatalf("payload should be the document unchanged")
	}
}

func TestExtractMetadata_NonObjectDocument(t *testing.T) {
	doc := template.Array(template.String("{{x}}"))

	meta, payload := ExtractMetadata(doc)
	if meta.RequiredDeclared {
		t.Fatalf("expected zero metadata for non-object document")
	}
	if !payload.Equal(doc) {
		t.Fatalf("non-object documents pass through unchanged")
	}
}

func TestExtractMetadata_MalformedBlockIsAdvisory(t *testing.T) {
	doc := mustParse(t, `{"msg": "hi", "_template": "not an object"}`)

	meta, payload := ExtractMetadata(doc)
	if meta.RequiredDeclared || meta.AllowUnresolved {
		t.Fatalf("malformed metadata must behave as empty, got %+v", meta)
	}
	if _, ok := payload.Field(MetadataKey); ok {
		t.Fatalf("malformed metadata key must still be stripped")
	}
}

func TestExtractMetadata_IgnoresNonStringRequiredEntries(t *testing.T) {
	doc := mustParse(t, `{"msg": "hi", "_template": {"required": ["name", 42, null, "topic"]}}`)

	meta, _ := ExtractMetadata(doc)
	if diff := cmp.Diff([]string{"name", "topic"}, meta.Required); diff != "" {
		t.Fatalf("unexpected required (-want +got):\n%s", diff)
	}
}

func TestExtractMetadata_ExplicitEmptyRequired(t *testing.T) {
	doc := mustParse(t, `{"msg": "{{x}}", "_template": {"required": []}}`)

	meta, _ := ExtractMetadata(doc)
	if !meta.RequiredDeclared {
		t.Fatalf("an explicit empty list still counts as declared")
	}
	if len(meta.Required) != 0 {
		t.Fatalf("expected no required names, got %v", meta.Required)
	}
}

func TestExtractMetadata_WrongTypedFieldsIgnored(t *testing.T) {
	doc := mustParse(t, `{"msg": "hi", "_template": {
		"required": "name",
		"defaults": ["x"],
		"allow_unresolved": "yes"
	}}`)

	meta, _ := ExtractMetadata(doc)
	if meta.RequiredDeclared || meta.AllowUnresolved {
		t.Fatalf("wrong-typed fields must be ignored: %+v", meta)
	}
	if meta.Defaults.Kind() == template.KindObject {
		t.Fatalf("wrong-typed defaults must be ignored")
	}
}

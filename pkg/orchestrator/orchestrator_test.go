package orchestrator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	internalLoader "github.com/goliatone/go-docgen/internal/template/loader"
	"github.com/goliatone/go-docgen/pkg/prompt"
	"github.com/goliatone/go-docgen/pkg/render"
	pkgtemplate "github.com/goliatone/go-docgen/pkg/template"
)

func fsLoader(fsys fstest.MapFS) pkgtemplate.Loader {
	return internalLoader.New(pkgtemplate.LoaderOptions{FileSystem: fsys})
}

func mustParse(t *testing.T, raw string) pkgtemplate.Value {
	t.Helper()
	val, err := pkgtemplate.ParseJSON([]byte(raw))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return val
}

func TestGenerate_EndToEnd(t *testing.T) {
	fsys := fstest.MapFS{
		"greeting.json": {Data: []byte(`{
			"greeting": "Hello, {{name}}!",
			"_template": {"required": ["name"]}
		}`)},
	}

	gen := New(WithLoader(fsLoader(fsys)))
	got, err := gen.Generate(context.Background(), Request{
		Source:    pkgtemplate.SourceFromFS("greeting.json"),
		Variables: mustParse(t, `{"name": "Ada"}`),
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !got.Equal(mustParse(t, `{"greeting": "Hello, Ada!"}`)) {
		t.Fatalf("unexpected output: %#v", got)
	}
}

func TestGenerate_VariablesFromSource(t *testing.T) {
	fsys := fstest.MapFS{
		"tpl.yaml":  {Data: []byte("msg: '{{who}} ahoy'\n")},
		"vars.yaml": {Data: []byte("who: Crew\n")},
	}

	gen := New(WithLoader(fsLoader(fsys)))
	got, err := gen.Generate(context.Background(), Request{
		Source:          pkgtemplate.SourceFromFS("tpl.yaml"),
		VariablesSource: pkgtemplate.SourceFromFS("vars.yaml"),
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !got.Equal(mustParse(t, `{"msg": "Crew ahoy"}`)) {
		t.Fatalf("unexpected output: %#v", got)
	}
}

func TestGenerate_ParseErrorNamesSource(t *testing.T) {
	fsys := fstest.MapFS{
		"broken.json": {Data: []byte(`{"msg":`)},
	}

	gen := New(WithLoader(fsLoader(fsys)))
	_, err := gen.Generate(context.Background(), Request{
		Source: pkgtemplate.SourceFromFS("broken.json"),
	})

	var parseErr pkgtemplate.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if !strings.Contains(parseErr.Error(), "broken.json") {
		t.Fatalf("error should identify the source: %v", parseErr)
	}
}

func TestGenerate_MissingVariables(t *testing.T) {
	fsys := fstest.MapFS{
		"tpl.json": {Data: []byte(`{"msg": "{{a}} {{b}}"}`)},
	}

	gen := New(WithLoader(fsLoader(fsys)))
	_, err := gen.Generate(context.Background(), Request{
		Source: pkgtemplate.SourceFromFS("tpl.json"),
	})

	var missing render.MissingVariablesError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingVariablesError, got %v", err)
	}
}

func TestGenerate_AllowUnresolved(t *testing.T) {
	fsys := fstest.MapFS{
		"tpl.json": {Data: []byte(`{"msg": "{{a}}"}`)},
	}

	gen := New(WithLoader(fsLoader(fsys)))
	got, err := gen.Generate(context.Background(), Request{
		Source:          pkgtemplate.SourceFromFS("tpl.json"),
		AllowUnresolved: true,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !got.Equal(mustParse(t, `{"msg": "{{a}}"}`)) {
		t.Fatalf("unexpected output: %#v", got)
	}
}

func TestGenerate_SchemaValidation(t *testing.T) {
	fsys := fstest.MapFS{
		"tpl.json": {Data: []byte(`{
			"msg": "{{name}}",
			"_template": {
				"schema": {
					"type": "object",
					"required": ["name"],
					"properties": {"name": {"type": "string"}}
				}
			}
		}`)},
	}

	gen := New(WithLoader(fsLoader(fsys)))

	_, err := gen.Generate(context.Background(), Request{
		Source:    pkgtemplate.SourceFromFS("tpl.json"),
		Variables: mustParse(t, `{"name": 42}`),
	})
	if err == nil || !strings.Contains(err.Error(), "validation:") {
		t.Fatalf("expected schema validation failure, got %v", err)
	}

	// The same request passes once validation is disabled.
	relaxed := New(WithLoader(fsLoader(fsys)), WithSchemaValidation(false))
	if _, err := relaxed.Generate(context.Background(), Request{
		Source:    pkgtemplate.SourceFromFS("tpl.json"),
		Variables: mustParse(t, `{"name": 42}`),
	}); err != nil {
		t.Fatalf("Generate without validation: %v", err)
	}
}

type stubDriver struct {
	answers map[string]string
}

func (d *stubDriver) Input(_ context.Context, cfg prompt.InputConfig) (string, error) {
	return d.answers[cfg.Message], nil
}

func TestGenerate_PrompterFillsMissing(t *testing.T) {
	fsys := fstest.MapFS{
		"tpl.json": {Data: []byte(`{"msg": "Hi {{name}}, {{greeting}}"}`)},
	}

	filler := prompt.NewFiller(&stubDriver{answers: map[string]string{"name": "Ada"}})
	gen := New(WithLoader(fsLoader(fsys)), WithPrompter(filler))

	got, err := gen.Generate(context.Background(), Request{
		Source:    pkgtemplate.SourceFromFS("tpl.json"),
		Variables: mustParse(t, `{"greeting": "welcome"}`),
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !got.Equal(mustParse(t, `{"msg": "Hi Ada, welcome"}`)) {
		t.Fatalf("unexpected output: %#v", got)
	}
}

func TestGenerate_RequiresSourceOrDocument(t *testing.T) {
	gen := New()
	if _, err := gen.Generate(context.Background(), Request{}); err == nil {
		t.Fatalf("expected error for empty request")
	}
}

func TestGenerate_DocumentBypassesLoader(t *testing.T) {
	doc := pkgtemplate.MustNewDocument(pkgtemplate.SourceFromFS("inline.json"), []byte(`{"msg": "hi"}`))

	gen := New()
	got, err := gen.Generate(context.Background(), Request{Document: &doc})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !got.Equal(mustParse(t, `{"msg": "hi"}`)) {
		t.Fatalf("unexpected output: %#v", got)
	}
}

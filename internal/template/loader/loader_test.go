package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	pkgtemplate "github.com/goliatone/go-docgen/pkg/template"
)

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "greeting.json")
	if err := os.WriteFile(path, []byte(`{"msg": "hi"}`), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	ldr := New(pkgtemplate.LoaderOptions{})
	doc, err := ldr.Load(context.Background(), pkgtemplate.SourceFromFile(path))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(doc.Raw()) != `{"msg": "hi"}` {
		t.Fatalf("unexpected payload: %s", doc.Raw())
	}
}

func TestLoad_FromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"nested/tpl.yaml": {Data: []byte("msg: hi\n")},
	}

	ldr := New(pkgtemplate.LoaderOptions{FileSystem: fsys})
	doc, err := ldr.Load(context.Background(), pkgtemplate.SourceFromFS("nested/tpl.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.Location() != "nested/tpl.yaml" {
		t.Fatalf("unexpected location: %s", doc.Location())
	}
}

func TestLoad_FSNotConfigured(t *testing.T) {
	ldr := New(pkgtemplate.LoaderOptions{})
	if _, err := ldr.Load(context.Background(), pkgtemplate.SourceFromFS("tpl.json")); err == nil {
		t.Fatalf("expected error when filesystem is missing")
	}
}

func TestLoad_HTTPDisabledByDefault(t *testing.T) {
	ldr := New(pkgtemplate.LoaderOptions{})
	if _, err := ldr.Load(context.Background(), pkgtemplate.SourceFromURL("http://127.0.0.1:1/tpl.json")); err == nil {
		t.Fatalf("expected error when http support is disabled")
	}
}

func TestLoad_HTTPFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"msg": "hi"}`))
	}))
	defer server.Close()

	ldr := New(pkgtemplate.LoaderOptions{AllowHTTPFallback: true})
	doc, err := ldr.Load(context.Background(), pkgtemplate.SourceFromURL(server.URL))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(doc.Raw()) == 0 {
		t.Fatalf("expected payload")
	}
}

func TestLoad_HTTPStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	ldr := New(pkgtemplate.LoaderOptions{AllowHTTPFallback: true})
	if _, err := ldr.Load(context.Background(), pkgtemplate.SourceFromURL(server.URL)); err == nil {
		t.Fatalf("expected error for non-2xx response")
	}
}

func TestLoad_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ldr := New(pkgtemplate.LoaderOptions{FileSystem: fstest.MapFS{}})
	if _, err := ldr.Load(ctx, pkgtemplate.SourceFromFS("tpl.json")); err == nil {
		t.Fatalf("expected context error")
	}
}

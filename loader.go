package docgen

import (
	internalLoader "github.com/goliatone/go-docgen/internal/template/loader"
	pkgtemplate "github.com/goliatone/go-docgen/pkg/template"
)

// NewLoader constructs a loader using the internal implementation while
// keeping the concrete type hidden from consumers.
func NewLoader(options ...pkgtemplate.LoaderOption) pkgtemplate.Loader {
	cfg := pkgtemplate.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

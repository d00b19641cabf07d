// Package catalog discovers template documents under a directory root and
// produces stable descriptors for listings: the ID is the path relative to
// the root with its extension removed, the category is the first path segment
// when the template sits in a subdirectory.
package catalog

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-docgen/pkg/render"
	"github.com/goliatone/go-docgen/pkg/template"
)

// DefaultCategory is assigned to templates that live directly under the
// discovery root.
const DefaultCategory = "general"

// Descriptor identifies a discoverable template. Name and Description are
// populated from the template metadata block when enrichment is enabled.
type Descriptor struct {
	ID          string `json:"id"`
	Path        string `json:"path"`
	Category    string `json:"category"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// Options configure discovery.
type Options struct {
	// Metadata enables reading each template's metadata block to fill the
	// descriptor Name and Description fields. Descriptions are stripped of
	// markup before they reach listings.
	Metadata bool
}

// Option mutates Options prior to discovery.
type Option func(*Options)

// WithMetadata enables descriptor enrichment from template metadata.
func WithMetadata() Option {
	return func(opts *Options) {
		opts.Metadata = true
	}
}

// Discover walks the directory root on the operating system filesystem and
// returns descriptors ordered by ID. A missing root yields an empty list, not
// an error, so callers can probe conventional locations.
func Discover(root string, options ...Option) ([]Descriptor, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, &fs.PathError{Op: "discover", Path: root, Err: fs.ErrInvalid}
	}

	descriptors, err := DiscoverFS(os.DirFS(root), options...)
	if err != nil {
		return nil, err
	}
	for i := range descriptors {
		descriptors[i].Path = filepath.Join(root, filepath.FromSlash(descriptors[i].Path))
	}
	return descriptors, nil
}

// DiscoverFS walks an abstract filesystem and returns descriptors ordered by
// ID. Descriptor paths are slash-separated and relative to the filesystem
// root.
func DiscoverFS(fsys fs.FS, options ...Option) ([]Descriptor, error) {
	opts := Options{}
	for _, opt := range options {
		opt(&opts)
	}

	var descriptors []Descriptor
	err := fs.WalkDir(fsys, ".", func(p string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		if !isTemplateFile(p) {
			return nil
		}

		desc := Descriptor{
			ID:       strings.TrimSuffix(p, path.Ext(p)),
			Path:     p,
			Category: categoryFor(p),
		}
		if opts.Metadata {
			enrich(fsys, p, &desc)
		}
		descriptors = append(descriptors, desc)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(descriptors, func(i, j int) bool {
		return descriptors[i].ID < descriptors[j].ID
	})
	return descriptors, nil
}

func isTemplateFile(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func categoryFor(p string) string {
	if segments := strings.Split(p, "/"); len(segments) > 1 {
		return segments[0]
	}
	return DefaultCategory
}

// enrich reads the template metadata block to fill in the descriptor name and
// description. A template that fails to parse still appears in the listing,
// just without the optional fields.
func enrich(fsys fs.FS, p string, desc *Descriptor) {
	data, err := fs.ReadFile(fsys, p)
	if err != nil || len(data) == 0 {
		return
	}

	doc, err := template.Parse(template.MustNewDocument(template.SourceFromFS(p), data))
	if err != nil {
		return
	}

	meta, _ := render.ExtractMetadata(doc)
	desc.Name = strings.TrimSpace(meta.Name)
	desc.Description = sanitizeDescription(meta.Description)
}

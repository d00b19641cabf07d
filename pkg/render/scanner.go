package render

import (
	"regexp"
	"sort"

	"github.com/goliatone/go-docgen/pkg/template"
)

// placeholderPattern matches {{name}} tokens: exactly two braces on each
// side, optional interior whitespace, names drawn from [A-Za-z0-9_].
// Anything else (unbalanced braces, empty names, stray characters) is not a
// placeholder and flows through untouched.
var placeholderPattern = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_]+)\s*\}\}`)

// Placeholders returns the distinct placeholder names referenced by the
// string leaves of the value, sorted lexicographically. Objects are searched
// through their values only, never their keys. Scanning a rendered value
// yields exactly the names that interpolation left unresolved.
func Placeholders(v template.Value) []string {
	seen := make(map[string]struct{})
	eachStringLeaf(v, func(s string) {
		for _, match := range placeholderPattern.FindAllStringSubmatch(s, -1) {
			seen[match[1]] = struct{}{}
		}
	})
	if len(seen) == 0 {
		return nil
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// eachStringLeaf visits every string leaf of the value tree. The single walk
// function keeps the scanner and the interpolator symmetric over the same
// traversal.
func eachStringLeaf(v template.Value, visit func(string)) {
	switch v.Kind() {
	case template.KindString:
		visit(v.Text())
	case template.KindArray:
		for _, item := range v.Items() {
			eachStringLeaf(item, visit)
		}
	case template.KindObject:
		for _, m := range v.Members() {
			eachStringLeaf(m.Value, visit)
		}
	}
}

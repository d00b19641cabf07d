package render

import (
	"strings"

	"github.com/goliatone/go-docgen/pkg/template"
	"github.com/goliatone/go-docgen/pkg/vars"
)

// Interpolate returns a new value tree of identical shape where every
// well-formed placeholder whose name is resolved in the set has been replaced
// by its value. Unresolved placeholders stay byte-for-byte intact, delimiters
// included. Substitution is single-pass per leaf: replacement text is never
// rescanned, so a value containing {{...}} does not trigger further
// substitution.
func Interpolate(v template.Value, set vars.Set) template.Value {
	return mapStringLeaves(v, func(s string) string {
		return substitute(s, set)
	})
}

func substitute(s string, set vars.Set) string {
	if !strings.Contains(s, "{{") {
		return s
	}
	return placeholderPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := strings.TrimSpace(match[2 : len(match)-2])
		if value, ok := set[name]; ok {
			return value
		}
		return match
	})
}

// mapStringLeaves rebuilds the value tree, applying fn to every string leaf.
// Containers keep their element counts and member order.
func mapStringLeaves(v template.Value, fn func(string) string) template.Value {
	switch v.Kind() {
	case template.KindString:
		return template.String(fn(v.Text()))
	case template.KindArray:
		items := make([]template.Value, v.Len())
		for i, item := range v.Items() {
			items[i] = mapStringLeaves(item, fn)
		}
		return template.Array(items...)
	case template.KindObject:
		members := make([]template.Member, v.Len())
		for i, m := range v.Members() {
			members[i] = template.Member{Key: m.Key, Value: mapStringLeaves(m.Value, fn)}
		}
		return template.Object(members...)
	default:
		return v
	}
}

// Package vars normalizes caller-supplied variable documents into the flat
// name→string mapping the interpolation engine consumes. Scalars stringify
// deterministically (booleans as true/false, numbers by their literal text,
// null as the empty string); anything nested is rejected.
package vars

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/goliatone/go-docgen/pkg/template"
)

// Set is a resolved variable mapping. Absent names are unresolved.
type Set map[string]string

// Has reports whether the named variable is resolved.
func (s Set) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Names returns the resolved variable names in lexicographic order.
func (s Set) Names() []string {
	if len(s) == 0 {
		return nil
	}
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Merge layers override on top of base: on a name collision the override
// value wins. Neither input is mutated.
func Merge(base, override Set) Set {
	merged := make(Set, len(base)+len(override))
	for name, value := range base {
		merged[name] = value
	}
	for name, value := range override {
		merged[name] = value
	}
	return merged
}

// Normalize converts a parsed variable document into a Set. It accepts nil
// (treated as empty), a template.Value object, or plain Go maps so
// programmatic callers can pass decoded data directly. Non-string keys and
// non-scalar values fail with ValidationError; rendering never proceeds on a
// partially normalized set.
func Normalize(doc any) (Set, error) {
	switch t := doc.(type) {
	case nil:
		return Set{}, nil
	case Set:
		copied := make(Set, len(t))
		for name, value := range t {
			copied[name] = value
		}
		return copied, nil
	case template.Value:
		return normalizeValue(t)
	case map[string]any:
		return normalizeStringMap(t)
	case map[any]any:
		return normalizeAnyMap(t)
	default:
		return nil, ValidationError{Message: fmt.Sprintf("variables must be an object, got %T", doc)}
	}
}

func normalizeValue(doc template.Value) (Set, error) {
	switch doc.Kind() {
	case template.KindNull:
		return Set{}, nil
	case template.KindObject:
	default:
		return nil, ValidationError{Message: "variables must be an object, got " + doc.Kind().String()}
	}

	set := make(Set, doc.Len())
	for _, m := range doc.Members() {
		if m.Key == "" {
			return nil, ValidationError{Message: "variable name must not be empty"}
		}
		text, err := Stringify(m.Value)
		if err != nil {
			return nil, ValidationError{Name: m.Key, Message: err.Error()}
		}
		set[m.Key] = text
	}
	return set, nil
}

func normalizeStringMap(doc map[string]any) (Set, error) {
	keys := make([]string, 0, len(doc))
	for key := range doc {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	set := make(Set, len(doc))
	for _, key := range keys {
		if key == "" {
			return nil, ValidationError{Message: "variable name must not be empty"}
		}
		text, err := stringifyGo(doc[key])
		if err != nil {
			return nil, ValidationError{Name: key, Message: err.Error()}
		}
		set[key] = text
	}
	return set, nil
}

func normalizeAnyMap(doc map[any]any) (Set, error) {
	flat := make(map[string]any, len(doc))
	for key, value := range doc {
		name, ok := key.(string)
		if !ok {
			return nil, ValidationError{Message: fmt.Sprintf("variable key %v is %T, expected string", key, key)}
		}
		flat[name] = value
	}
	return normalizeStringMap(flat)
}

// Stringify converts a scalar template.Value into its canonical text form.
// Containers are rejected.
func Stringify(v template.Value) (string, error) {
	switch v.Kind() {
	case template.KindNull:
		return "", nil
	case template.KindBool:
		return strconv.FormatBool(v.Bool()), nil
	case template.KindNumber:
		return v.Number().String(), nil
	case template.KindString:
		return v.Text(), nil
	default:
		return "", fmt.Errorf("must be a scalar value, got %s", v.Kind())
	}
}

func stringifyGo(value any) (string, error) {
	switch t := value.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case bool:
		return strconv.FormatBool(t), nil
	case json.Number:
		return t.String(), nil
	case int:
		return strconv.FormatInt(int64(t), 10), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64), nil
	case template.Value:
		return Stringify(t)
	default:
		return "", fmt.Errorf("must be a scalar value, got %T", value)
	}
}

package template

import (
	"fmt"
	"path"
	"strings"
)

// ParseError reports a template or variable document that is not valid
// structured data. Source identifies where the offending document came from.
type ParseError struct {
	Source string
	Err    error
}

func (e ParseError) Error() string {
	src := strings.TrimSpace(e.Source)
	if src == "" {
		return fmt.Sprintf("template: parse document: %v", e.Err)
	}
	return fmt.Sprintf("template: parse %s: %v", src, e.Err)
}

func (e ParseError) Unwrap() error {
	return e.Err
}

// Parse decodes a loaded Document into a Value. The format is chosen by the
// source extension: .yaml and .yml decode as YAML, everything else as JSON.
func Parse(doc Document) (Value, error) {
	raw := doc.Raw()
	location := doc.Location()

	var (
		val Value
		err error
	)
	if isYAMLPath(location) {
		val, err = ParseYAML(raw)
	} else {
		val, err = ParseJSON(raw)
	}
	if err != nil {
		return Value{}, ParseError{Source: location, Err: err}
	}
	return val, nil
}

func isYAMLPath(location string) bool {
	switch strings.ToLower(path.Ext(location)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

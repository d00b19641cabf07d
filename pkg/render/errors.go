package render

import "strings"

// MissingVariablesError reports required variables with no resolved value.
// Names carries the complete sorted list so a caller can fix every omission
// in a single correction cycle.
type MissingVariablesError struct {
	Names []string
}

func (e MissingVariablesError) Error() string {
	return "render: missing required variables: " + strings.Join(e.Names, ", ")
}

// UnresolvedPlaceholdersError reports placeholders that survived
// interpolation without being flagged as missing, typically a typoed name or
// an explicit required list that omits a placeholder the template uses.
// Names carries the complete sorted list.
type UnresolvedPlaceholdersError struct {
	Names []string
}

func (e UnresolvedPlaceholdersError) Error() string {
	return "render: unresolved placeholders: " + strings.Join(e.Names, ", ")
}

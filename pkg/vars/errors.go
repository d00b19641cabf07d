package vars

import (
	"fmt"
	"strings"
)

// ValidationError reports a variable document whose shape violates the
// normalizer contract: a non-object document, a non-string key, or a value
// that is not a scalar.
type ValidationError struct {
	Name    string
	Message string
}

func (e ValidationError) Error() string {
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = "invalid variable document"
	}
	if strings.TrimSpace(e.Name) == "" {
		return "vars: " + msg
	}
	return fmt.Sprintf("vars: variable %q: %s", e.Name, msg)
}

package prompt

import (
	"context"
	"errors"

	"github.com/goliatone/go-docgen/pkg/vars"
)

// Filler asks the user for values of missing variables, one prompt per name.
type Filler struct {
	driver Driver
}

// NewFiller constructs a Filler. A nil driver falls back to the survey
// implementation.
func NewFiller(driver Driver) *Filler {
	if driver == nil {
		driver = NewSurveyDriver()
	}
	return &Filler{driver: driver}
}

// Fill prompts for each name in order and returns the collected Set. Names
// already present in the defaults set seed the prompt's default answer.
func (f *Filler) Fill(ctx context.Context, names []string, defaults vars.Set) (vars.Set, error) {
	if f == nil || f.driver == nil {
		return nil, errors.New("prompt: driver is not configured")
	}

	collected := make(vars.Set, len(names))
	for _, name := range names {
		value, err := f.driver.Input(ctx, InputConfig{
			Message: name,
			Default: defaults[name],
			Help:    "value for {{" + name + "}}",
		})
		if err != nil {
			return nil, err
		}
		collected[name] = value
	}
	return collected, nil
}

package api

import (
	"gitlab.com/tozd/go/errors"
)

// ErrInvalidOptions is returned when a required option is missing.
var ErrInvalidOptions = errors.Base("invalid options")

// Options are supplied by the caller of a resolve run.
type Options struct {
	// Project names the build target. It is spliced into "dist" copy
	// destinations and exported as the __PROJECT constant.
	Project string `json:"project" yaml:"project" hcl:"project,optional"`
	// Sass is the default style resource prepended to the resource list.
	Sass string `json:"sass" yaml:"sass" hcl:"sass,optional"`
	// WorkDir is the directory copy destinations are made relative to.
	// Empty means the process working directory.
	WorkDir string `json:"workdir,omitempty" yaml:"workdir,omitempty" hcl:"workdir,optional"`
}

// Validate reports whether the options can drive a resolve run.
func (o Options) Validate() error {
	if o.Project == "" {
		return errors.Errorf("%w: project is required", ErrInvalidOptions)
	}
	if o.Sass == "" {
		return errors.Errorf("%w: sass is required", ErrInvalidOptions)
	}
	return nil
}

// Result holds the three regenerated source fragments.
type Result struct {
	// Requires lists modules the Resource fragment references. It is only
	// populated when a dynamic default resource was injected.
	Requires []string `json:"requires"`
	// Patterns is an array literal of copy pattern objects.
	Patterns string `json:"patterns"`
	// Resource is an array literal of style resource paths.
	Resource string `json:"resource"`
	// DefineConstants is an object literal of compile-time constants.
	DefineConstants string `json:"defineConstants"`
}

// Fields returns the result as a plain map, the shape used for JSON output
// and JSONPath selection.
func (r *Result) Fields() map[string]any {
	requires := make([]any, len(r.Requires))
	for i, m := range r.Requires {
		requires[i] = m
	}
	return map[string]any{
		"requires":        requires,
		"patterns":        r.Patterns,
		"resource":        r.Resource,
		"defineConstants": r.DefineConstants,
	}
}

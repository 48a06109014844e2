// Package output renders resolve results for the command line.
package output

import (
	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"gitlab.com/tozd/go/errors"

	"github.com/agentic-research/resolvecfg/api"
)

// ErrNoMatch is returned when a selector matches nothing in the result.
var ErrNoMatch = errors.Base("selector matched nothing")

var jsonOptions = ojg.Options{Indent: 2, Sort: true, HTMLUnsafe: true}

// JSON renders the whole result as indented JSON with sorted keys.
func JSON(res *api.Result) string {
	return oj.JSON(res.Fields(), &jsonOptions)
}

// Select evaluates a JSONPath selector such as "$.resource" against the
// result. A single string match is returned as is, so a fragment can be
// piped straight into another tool; anything else is rendered as JSON.
func Select(res *api.Result, selector string) (string, error) {
	x, err := jp.ParseString(selector)
	if err != nil {
		return "", errors.Errorf("invalid jsonpath '%s': %w", selector, err)
	}

	results := x.Get(res.Fields())
	switch len(results) {
	case 0:
		return "", errors.Errorf("%w: %s", ErrNoMatch, selector)
	case 1:
		if s, ok := results[0].(string); ok {
			return s, nil
		}
		return oj.JSON(results[0], &ojg.Options{HTMLUnsafe: true}), nil
	}
	return oj.JSON(results, &ojg.Options{HTMLUnsafe: true}), nil
}

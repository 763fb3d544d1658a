package parser_test

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// Snapshot the expression tree's source-like String() rendering for a
// handful of representative programs exercising the fold (binary and
// leading-unary operators), function definitions with a filter, and
// property access — so a change in `foldOperators`'s shape shows up as
// a reviewable diff.
func TestExpressionTreeSnapshots(t *testing.T) {
	programs := map[string]string{
		"binary_precedence": `1 + 2 * 3`,
		"leading_unary":     `-x + y`,
		"function_literal":  `(x) \ x > 0 |-> x`,
		"property_access":   `point->x + point->y`,
		"nested_call":       `f(g(1, 2), 3)`,
	}

	for name, src := range programs {
		name, src := name, src
		t.Run(name, func(t *testing.T) {
			expr := parse(t, src)
			snaps.MatchSnapshot(t, name, expr.String())
		})
	}
}

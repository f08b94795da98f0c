package fit

import (
	"fmt"
	"math"

	"github.com/Knetic/govaluate"

	"github.com/AUSAXS/AUSAXS-sub011/ausaxserr"
)

// defaultAuxiliaryFunctions mirrors the exp/log/log10 function set the
// teacher registers for its own govaluate-driven output expressions
// (internal/inmapref/io.go's NewOutputter), made available to any
// user-defined auxiliary dataset expression.
func defaultAuxiliaryFunctions() map[string]govaluate.ExpressionFunction {
	return map[string]govaluate.ExpressionFunction{
		"exp": func(arg ...interface{}) (interface{}, error) {
			if len(arg) != 1 {
				return nil, fmt.Errorf("fit: got %d arguments for function 'exp', but need 1", len(arg))
			}
			return math.Exp(arg[0].(float64)), nil
		},
		"log": func(arg ...interface{}) (interface{}, error) {
			if len(arg) != 1 {
				return nil, fmt.Errorf("fit: got %d arguments for function 'log', but need 1", len(arg))
			}
			return math.Log(arg[0].(float64)), nil
		},
		"log10": func(arg ...interface{}) (interface{}, error) {
			if len(arg) != 1 {
				return nil, fmt.Errorf("fit: got %d arguments for function 'log10', but need 1", len(arg))
			}
			return math.Log10(arg[0].(float64)), nil
		},
	}
}

// AuxiliaryExpression is a user-defined derived output column over a
// profile's (q, I) pairs, per spec.md §6's "Optional auxiliary
// datasets" — the same govaluate-powered derived-column mechanism the
// teacher offers for its own per-cell output variables.
type AuxiliaryExpression struct {
	expr *govaluate.EvaluableExpression
}

// NewAuxiliaryExpression compiles expression against the variables "q"
// and "I" plus the default function set, extended by extraFunctions.
func NewAuxiliaryExpression(expression string, extraFunctions map[string]govaluate.ExpressionFunction) (*AuxiliaryExpression, error) {
	funcs := defaultAuxiliaryFunctions()
	for k, v := range extraFunctions {
		funcs[k] = v
	}
	expr, err := govaluate.NewEvaluableExpressionWithFunctions(expression, funcs)
	if err != nil {
		return nil, fmt.Errorf("fit: invalid auxiliary expression %q: %w", expression, ausaxserr.ErrConfigurationError)
	}
	return &AuxiliaryExpression{expr: expr}, nil
}

// Evaluate maps the expression over every point of profile, binding "q"
// and "I" to each point's coordinates.
func (a *AuxiliaryExpression) Evaluate(profile []XY) ([]XY, error) {
	out := make([]XY, len(profile))
	for i, p := range profile {
		v, err := a.expr.Evaluate(map[string]interface{}{"q": p.X, "I": p.Y})
		if err != nil {
			return nil, fmt.Errorf("fit: auxiliary expression evaluation failed at point %d: %w", i, ausaxserr.ErrInvalidInput)
		}
		f, ok := v.(float64)
		if !ok {
			return nil, fmt.Errorf("fit: auxiliary expression must evaluate to a number: %w", ausaxserr.ErrInvalidInput)
		}
		out[i] = XY{X: p.X, Y: f}
	}
	return out, nil
}

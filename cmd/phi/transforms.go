// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"philang/pkg/phisys"
)

// hostTransform pairs a built-in implementation with its arity.
type hostTransform struct {
	arity int
	fn    phisys.ApplyFunc
}

// hostTransforms are the implementations available to `def` declarations.
// A declared transformation whose name and arity match an entry is bound
// automatically after parsing.
var hostTransforms = map[string]hostTransform{
	"add":          {arity: 2, fn: numeric2(func(a, b float64) float64 { return a + b })},
	"subtract":     {arity: 2, fn: numeric2(func(a, b float64) float64 { return a - b })},
	"multiply":     {arity: 2, fn: numeric2(func(a, b float64) float64 { return a * b })},
	"divide":       {arity: 2, fn: divideHost},
	"negate":       {arity: 1, fn: numeric1(func(a float64) float64 { return -a })},
	"mat_multiply": {arity: 2, fn: matMultiplyHost},
}

// bindHostTransforms attaches implementations to every declared
// transformation a host function exists for. Declarations without a host
// match stay unbound; invoking them yields an operation error, not a load
// failure.
func bindHostTransforms(sys *phisys.System) error {
	for _, m := range sys.Modules() {
		for _, tr := range m.Transformations() {
			if tr.Apply != nil {
				continue
			}
			host, ok := hostTransforms[tr.Name]
			if !ok || host.arity != tr.Arity {
				continue
			}
			if err := m.BindTransformation(tr.Name, tr.Arity, host.fn); err != nil {
				return fmt.Errorf("binding %s.%s: %w", m.Name(), tr.Name, err)
			}
		}
	}
	return nil
}

func numeric1(f func(float64) float64) phisys.ApplyFunc {
	return func(operands []phisys.Value) (phisys.Value, error) {
		a, err := asNumber(operands[0])
		if err != nil {
			return nil, err
		}
		return f(a), nil
	}
}

func numeric2(f func(a, b float64) float64) phisys.ApplyFunc {
	return func(operands []phisys.Value) (phisys.Value, error) {
		a, err := asNumber(operands[0])
		if err != nil {
			return nil, err
		}
		b, err := asNumber(operands[1])
		if err != nil {
			return nil, err
		}
		return f(a, b), nil
	}
}

// divideHost performs plain IEEE division: a zero divisor yields ±Inf
// rather than an error, so a module's nonzero axiom decides whether the
// invocation stands. Malformed operands still error.
func divideHost(operands []phisys.Value) (phisys.Value, error) {
	a, err := asNumber(operands[0])
	if err != nil {
		return nil, err
	}
	b, err := asNumber(operands[1])
	if err != nil {
		return nil, err
	}
	return a / b, nil
}

func matMultiplyHost(operands []phisys.Value) (phisys.Value, error) {
	a, err := asMatrix(operands[0])
	if err != nil {
		return nil, err
	}
	b, err := asMatrix(operands[1])
	if err != nil {
		return nil, err
	}
	if a.Cols() != b.Rows() {
		return nil, fmt.Errorf("shape mismatch: %dx%d times %dx%d", a.Rows(), a.Cols(), b.Rows(), b.Cols())
	}

	out := make(phisys.Matrix, a.Rows())
	for i := range out {
		out[i] = make([]float64, b.Cols())
		for j := range out[i] {
			for k := 0; k < a.Cols(); k++ {
				out[i][j] += a[i][k] * b[k][j]
			}
		}
	}
	return out, nil
}

func asNumber(v phisys.Value) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("expected a number, got %T", v)
	}
}

func asMatrix(v phisys.Value) (phisys.Matrix, error) {
	m, ok := v.(phisys.Matrix)
	if !ok {
		return nil, fmt.Errorf("expected a matrix, got %T", v)
	}
	return m, nil
}

// SPDX-License-Identifier: MPL-2.0

package phiexpr

import (
	"math"
	"testing"

	"philang/pkg/phisys"
)

// fakeProbe replays a canned transformation for builtin predicate tests.
type fakeProbe struct {
	fn    func(operands []phisys.Value) (phisys.Value, error)
	calls int
}

func (p *fakeProbe) Invoke(_ string, operands []phisys.Value) (phisys.Value, error) {
	p.calls++
	return p.fn(operands)
}

func TestExprPredicate_Nonzero(t *testing.T) {
	t.Parallel()
	pred, err := New("b != 0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	inv := &phisys.Invocation{
		Transformation: "divide",
		Operands:       []phisys.Value{10, 0},
		Result:         nil,
		Module:         "Finance",
	}
	ok, err := pred.Satisfied(nil, inv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("b != 0 should be violated for divisor 0")
	}

	inv.Operands = []phisys.Value{10, 2}
	inv.Result = 5
	ok, err = pred.Satisfied(nil, inv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("b != 0 should hold for divisor 2")
	}
}

func TestExprPredicate_ResultBinding(t *testing.T) {
	t.Parallel()
	pred, err := New("result > 0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	inv := &phisys.Invocation{
		Transformation: "divide",
		Operands:       []phisys.Value{10, 2},
		Result:         5.0,
	}
	ok, err := pred.Satisfied(nil, inv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("result > 0 should hold for result 5")
	}
}

func TestExprPredicate_ArgsBinding(t *testing.T) {
	t.Parallel()
	pred, err := New("len(args) == 2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ok, err := pred.Satisfied(nil, &phisys.Invocation{Operands: []phisys.Value{1, 2}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("len(args) == 2 should hold")
	}
}

func TestExprPredicate_InfiniteResultStaysEvaluable(t *testing.T) {
	t.Parallel()
	pred, err := New("b != 0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Plain IEEE division by zero yields +Inf. The result binding must not
	// make the scope unencodable: the rule over b still evaluates and is
	// violated.
	inv := &phisys.Invocation{
		Transformation: "divide",
		Operands:       []phisys.Value{10.0, 0.0},
		Result:         math.Inf(1),
	}
	ok, err := pred.Satisfied(nil, inv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("b != 0 should be violated for divisor 0")
	}
}

func TestExprPredicate_SyntaxError(t *testing.T) {
	t.Parallel()
	if _, err := New("b !="); err == nil {
		t.Error("expected syntax error for incomplete expression")
	}
	if _, err := New(""); err == nil {
		t.Error("expected error for empty expression")
	}
}

func TestExprPredicate_MissingOperand(t *testing.T) {
	t.Parallel()
	pred, err := New("b != 0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Only one operand: the expression refers to b, which is unbound.
	_, err = pred.Satisfied(nil, &phisys.Invocation{Operands: []phisys.Value{10}})
	if err == nil {
		t.Error("expected evaluation error for unbound operand name")
	}
}

func TestCommutativity(t *testing.T) {
	t.Parallel()
	pred, ok := Builtin("commutativity")
	if !ok {
		t.Fatal("commutativity builtin missing")
	}

	a := phisys.Matrix{{1, 0}, {0, 0}}
	b := phisys.Matrix{{0, 1}, {0, 0}}

	// Non-commutative probe: returns a different matrix for swapped input.
	probe := &fakeProbe{fn: func(ops []phisys.Value) (phisys.Value, error) {
		return matMul(ops[0].(phisys.Matrix), ops[1].(phisys.Matrix)), nil
	}}

	inv := &phisys.Invocation{
		Transformation: "mat_multiply",
		Operands:       []phisys.Value{a, b},
		Result:         matMul(a, b),
	}
	got, err := pred.Satisfied(probe, inv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got {
		t.Error("2x2 matrix multiplication should not be commutative for these operands")
	}
	if probe.calls != 1 {
		t.Errorf("expected exactly one probe call, got %d", probe.calls)
	}

	// Commutative case: integers.
	probe = &fakeProbe{fn: func(ops []phisys.Value) (phisys.Value, error) {
		return ops[0].(int) * ops[1].(int), nil
	}}
	inv = &phisys.Invocation{
		Transformation: "multiply",
		Operands:       []phisys.Value{3, 4},
		Result:         12,
	}
	got, err = pred.Satisfied(probe, inv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got {
		t.Error("integer multiplication should be commutative")
	}
}

func TestCommutativity_WrongArity(t *testing.T) {
	t.Parallel()
	pred, _ := Builtin("commutativity")
	_, err := pred.Satisfied(&fakeProbe{}, &phisys.Invocation{Operands: []phisys.Value{1}})
	if err == nil {
		t.Error("expected arity error")
	}
}

func TestDeterminism(t *testing.T) {
	t.Parallel()
	pred, ok := Builtin("determinism")
	if !ok {
		t.Fatal("determinism builtin missing")
	}

	probe := &fakeProbe{fn: func(ops []phisys.Value) (phisys.Value, error) {
		return ops[0].(int) + ops[1].(int), nil
	}}
	inv := &phisys.Invocation{
		Transformation: "add",
		Operands:       []phisys.Value{2, 3},
		Result:         5,
	}
	got, err := pred.Satisfied(probe, inv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got {
		t.Error("deterministic transformation should satisfy determinism")
	}
}

func TestBuiltinNames(t *testing.T) {
	t.Parallel()
	names := BuiltinNames()
	if len(names) != 3 {
		t.Fatalf("expected 3 builtins, got %v", names)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("names not sorted: %v", names)
		}
	}
}

// matMul multiplies two same-shape square matrices (test helper).
func matMul(a, b phisys.Matrix) phisys.Matrix {
	n := a.Rows()
	out := make(phisys.Matrix, n)
	for i := range n {
		out[i] = make([]float64, n)
		for j := range n {
			for k := range n {
				out[i][j] += a[i][k] * b[k][j]
			}
		}
	}
	return out
}

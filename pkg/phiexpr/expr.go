// SPDX-License-Identifier: MPL-2.0

package phiexpr

import (
	"fmt"
	"math"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/parser"

	"philang/pkg/cueutil"
	"philang/pkg/phisys"
)

// operandNames are the positional binding names an expression can refer to.
// An invocation with more operands than this can still be constrained
// through the args list.
const operandNames = "abcdefgh"

// ExprPredicate is a rule predicate backed by a CUE boolean expression.
// The expression sees each operand under its positional name (a, b, ...),
// the full operand list as args, and the transformation's output as result.
//
// The zero value is not usable; construct with New.
type ExprPredicate struct {
	src string
}

// New validates the expression's syntax and returns the predicate.
// Evaluation errors (e.g. referring to an operand the invocation does not
// have) surface at Satisfied time, not here.
func New(src string) (*ExprPredicate, error) {
	if src == "" {
		return nil, fmt.Errorf("predicate expression cannot be empty")
	}
	if _, err := parser.ParseExpr("<rule>", src); err != nil {
		return nil, cueutil.FormatError(err, "<rule>")
	}
	return &ExprPredicate{src: src}, nil
}

// Satisfied evaluates the expression against the invocation. The Probe is
// unused: expression predicates are pure functions of the invocation record.
//
// A non-boolean or non-evaluable expression returns an error; the validator
// decides how to report it.
func (p *ExprPredicate) Satisfied(_ phisys.Probe, inv *phisys.Invocation) (bool, error) {
	ctx := cuecontext.New()

	scope := ctx.Encode(bindings(inv))
	if scope.Err() != nil {
		return false, fmt.Errorf("encode invocation bindings: %w", scope.Err())
	}

	v := ctx.CompileString(p.src, cue.Scope(scope), cue.InferBuiltins(true), cue.Filename("<rule>"))
	if v.Err() != nil {
		return false, cueutil.FormatError(v.Err(), "<rule>")
	}

	ok, err := v.Bool()
	if err != nil {
		return false, cueutil.FormatError(err, "<rule>")
	}
	return ok, nil
}

// String returns the expression source, the predicate's identity for
// diagnostics and conflict detection.
func (p *ExprPredicate) String() string { return p.src }

// bindings builds the evaluation scope for one invocation.
func bindings(inv *phisys.Invocation) map[string]any {
	args := make([]any, len(inv.Operands))
	for i, op := range inv.Operands {
		args[i] = encodable(op)
	}
	scope := map[string]any{
		"args":   args,
		"result": encodable(inv.Result),
	}
	for i, op := range inv.Operands {
		if i >= len(operandNames) {
			break
		}
		scope[string(operandNames[i])] = encodable(op)
	}
	return scope
}

// encodable maps values CUE cannot represent to null. CUE numbers have no
// infinite or NaN forms, and one such value (a division by zero, say) must
// not make the whole scope unencodable for predicates over other bindings.
func encodable(v phisys.Value) any {
	switch n := v.(type) {
	case float64:
		if math.IsInf(n, 0) || math.IsNaN(n) {
			return nil
		}
	case float32:
		f := float64(n)
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return nil
		}
	}
	return v
}

// SPDX-License-Identifier: MPL-2.0

package phiexpr

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"philang/pkg/phisys"
)

type (
	// commutativity checks T(a, b) == T(b, a) by re-invoking the
	// transformation with swapped operands.
	commutativity struct{}

	// identity checks that the first operand equals itself. Trivially true
	// for well-formed values; useful as a smoke-test axiom.
	identity struct{}

	// determinism checks that re-invoking the transformation with the same
	// operands reproduces the recorded result.
	determinism struct{}
)

// builtins maps source-level predicate names to probe-based predicates.
// Builtins are stateless; one shared instance is enough.
var builtins = map[string]phisys.Predicate{
	"commutativity": commutativity{},
	"identity":      identity{},
	"determinism":   determinism{},
}

// Builtin looks up a probe-based predicate by its source-level name.
func Builtin(name string) (phisys.Predicate, bool) {
	p, ok := builtins[name]
	return p, ok
}

// BuiltinNames returns the known builtin predicate names, sorted.
func BuiltinNames() []string {
	names := maps.Keys(builtins)
	slices.Sort(names)
	return names
}

func (commutativity) Satisfied(p phisys.Probe, inv *phisys.Invocation) (bool, error) {
	if len(inv.Operands) != 2 {
		return false, fmt.Errorf("commutativity applies to 2 operands, got %d", len(inv.Operands))
	}
	swapped, err := p.Invoke(inv.Transformation, []phisys.Value{inv.Operands[1], inv.Operands[0]})
	if err != nil {
		return false, fmt.Errorf("probe %s with swapped operands: %w", inv.Transformation, err)
	}
	return phisys.ValueEqual(inv.Result, swapped), nil
}

func (commutativity) String() string { return "commutativity" }

func (identity) Satisfied(_ phisys.Probe, inv *phisys.Invocation) (bool, error) {
	if len(inv.Operands) == 0 {
		return false, fmt.Errorf("identity applies to at least 1 operand")
	}
	return phisys.ValueEqual(inv.Operands[0], inv.Operands[0]), nil
}

func (identity) String() string { return "identity" }

func (determinism) Satisfied(p phisys.Probe, inv *phisys.Invocation) (bool, error) {
	again, err := p.Invoke(inv.Transformation, inv.Operands)
	if err != nil {
		return false, fmt.Errorf("probe %s with original operands: %w", inv.Transformation, err)
	}
	return phisys.ValueEqual(inv.Result, again), nil
}

func (determinism) String() string { return "determinism" }

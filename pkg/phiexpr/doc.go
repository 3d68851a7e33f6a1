// SPDX-License-Identifier: MPL-2.0

// Package phiexpr implements rule predicates: the boolean constraints a
// rule evaluates against a transformation invocation.
//
// Two predicate families exist. Expression predicates compile a CUE boolean
// expression over named operand bindings (a, b, c, ... plus args and
// result), covering pointwise constraints like `b != 0`. Built-in algebraic
// predicates (commutativity, identity, determinism) instead re-invoke the
// transformation through the bounded Probe capability to test properties
// the result alone cannot reveal.
package phiexpr

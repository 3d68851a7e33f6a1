// SPDX-License-Identifier: MPL-2.0

// Package phifile parses Phi source text into an unfinalized rule system.
//
// The surface language is line-oriented. A file is a sequence of module
// blocks:
//
//	// Financial calculations on top of core arithmetic.
//	module Finance {
//	    import CoreMath
//
//	    data Ledger
//
//	    def divide : Number -> Number -> Number
//
//	    axiom nonzero : hard (b != 0)
//	    axiom commutative : soft (commutativity)
//	}
//
// Inside a block, `import` wires a dependency, `data` declares a generator,
// `def` declares a transformation whose arity is the number of arrows in its
// signature, and `axiom` declares a rule. An axiom body that names a builtin
// predicate binds it; any other body is compiled as a constraint expression
// over the operand bindings a, b, c, ... and result.
//
// Parsing builds structure only. Transformation implementations are bound by
// the host after parsing, and the caller finalizes the system when every
// file has been read.
package phifile

// SPDX-License-Identifier: MPL-2.0

package phisys

import "fmt"

const (
	// KindHard marks a rule that can never be deactivated: a violation
	// rejects the invocation outright.
	KindHard RuleKind = "hard"
	// KindSoft marks a negotiable rule: a violation may be resolved by
	// deactivating the rule for the current invocation only.
	KindSoft RuleKind = "soft"
)

type (
	// RuleKind is the closed negotiability tag of a rule. The kind is fixed
	// at creation; there are exactly two variants.
	RuleKind string

	// Rule is an immutable constraint over a transformation invocation,
	// scoped to the module that declared it. Rules carry no activation
	// state: deactivation of a soft rule is recorded per invocation in the
	// Verdict, never on the Rule itself.
	Rule struct {
		// ID is the rule name, unique within the owning module.
		ID string
		// Kind tags the rule hard or soft.
		Kind RuleKind
		// Predicate decides whether an invocation satisfies the rule.
		Predicate Predicate
		// Module names the declaring module, kept for attribution even when
		// the rule is inherited through multiple import hops.
		Module string
		// Description is optional human-readable documentation.
		Description string
	}

	// RuleRef identifies a rule across modules by (module, id).
	RuleRef struct {
		Module string
		ID     string
	}

	// ResolvedRule is one entry of a module's effective rule set: the rule
	// plus the module it was inherited from.
	ResolvedRule struct {
		Rule *Rule
		// Source is the declaring module (equal to Rule.Module; carried
		// separately so verdict records stay self-contained).
		Source string
	}

	// Invocation is the ephemeral record a predicate is evaluated against.
	// It is created per validation call and carries no persistent identity.
	Invocation struct {
		// Transformation is the invoked transformation id.
		Transformation string
		// Operands are the generator values passed to the transformation,
		// in call order.
		Operands []Value
		// Result is the value the transformation produced.
		Result Value
		// Module is the originating module of the call.
		Module string
	}

	// Probe lets a predicate re-invoke transformations with permuted or
	// substituted operands to test algebraic properties. Implementations
	// bound the number of nested invocations; a predicate cannot reach the
	// validator through a Probe.
	Probe interface {
		Invoke(transformation string, operands []Value) (Value, error)
	}

	// Predicate is a pure function of an invocation. Satisfied reports
	// whether the rule holds; an error means the predicate itself could not
	// be evaluated (not a violation).
	Predicate interface {
		Satisfied(p Probe, inv *Invocation) (bool, error)

		// String returns the predicate's source form. Two rules with the
		// same id agree only if their kinds and String() forms agree; it is
		// also what diagnostics print.
		String() string
	}
)

// IsValid reports whether the kind is one of the two closed variants.
func (k RuleKind) IsValid() bool {
	return k == KindHard || k == KindSoft
}

// Ref returns the cross-module reference for this rule.
func (r *Rule) Ref() RuleRef {
	return RuleRef{Module: r.Module, ID: r.ID}
}

// conflictsWith reports whether another declaration of the same bare id
// disagrees on kind or predicate. Declarations that agree on both are
// treated as one rule restated.
func (r *Rule) conflictsWith(other *Rule) bool {
	if r.Kind != other.Kind {
		return true
	}
	return r.Predicate.String() != other.Predicate.String()
}

func (ref RuleRef) String() string {
	return fmt.Sprintf("%s.%s", ref.Module, ref.ID)
}

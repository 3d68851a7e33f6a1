// SPDX-License-Identifier: MPL-2.0

package validate

import (
	"errors"
	"fmt"

	"philang/pkg/phisys"
)

const (
	// StatusAccept means the invocation is admissible, possibly after
	// deactivating soft rules.
	StatusAccept Status = "accept"
	// StatusReject means at least one hard rule was violated or upheld.
	StatusReject Status = "reject"
	// StatusError means the invoked operation itself failed before any rule
	// was evaluated; see Verdict.Err.
	StatusError Status = "error"
)

// ErrOperation is the sentinel error wrapped by OperationError.
var ErrOperation = errors.New("operation failed")

type (
	// Status is the overall outcome of one validation call.
	Status string

	// Violation records one unsatisfied rule with full attribution, in
	// resolution order.
	Violation struct {
		RuleID string
		// Source is the module that declared the rule, even when inherited
		// through multiple import hops.
		Source string
		Kind   phisys.RuleKind
	}

	// Adaptation records the invocation-scoped deactivation of a soft rule.
	Adaptation struct {
		RuleID string
		Source string
	}

	// OperationError reports that the invoked transformation itself failed
	// (malformed operands, missing implementation, host error). It is a
	// distinct outcome, never conflated with a rule violation.
	OperationError struct {
		Transformation string
		Module         string
		Err            error
	}

	// Verdict is the ephemeral result of one validation call. It is the only
	// place a soft-rule deactivation is recorded; the system itself is never
	// mutated.
	Verdict struct {
		Status Status
		// Violations lists every unsatisfied rule in resolution order,
		// hard and soft alike.
		Violations []Violation
		// Adaptations lists every soft rule the policy deactivated for this
		// invocation, in resolution order.
		Adaptations []Adaptation
		// Trail is the human-readable diagnostic record of the call.
		Trail []string
		// Invocation is the record the rules were evaluated against.
		Invocation *phisys.Invocation
		// Err carries the operation failure when Status is StatusError.
		Err *OperationError
	}
)

func (e *OperationError) Error() string {
	return fmt.Sprintf("transformation %q failed in module %q: %v", e.Transformation, e.Module, e.Err)
}

func (e *OperationError) Unwrap() error { return ErrOperation }

// Rejected reports whether the verdict rejects the invocation.
func (v *Verdict) Rejected() bool { return v.Status == StatusReject }

// HardViolations returns the hard entries of Violations, preserving order.
func (v *Verdict) HardViolations() []Violation {
	var out []Violation
	for _, viol := range v.Violations {
		if viol.Kind == phisys.KindHard {
			out = append(out, viol)
		}
	}
	return out
}

// SoftViolations returns the soft entries of Violations, preserving order.
func (v *Verdict) SoftViolations() []Violation {
	var out []Violation
	for _, viol := range v.Violations {
		if viol.Kind == phisys.KindSoft {
			out = append(out, viol)
		}
	}
	return out
}

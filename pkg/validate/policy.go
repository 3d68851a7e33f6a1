// SPDX-License-Identifier: MPL-2.0

package validate

import "philang/pkg/phisys"

const (
	// ResolutionDeactivate suspends the violated soft rule for the current
	// invocation only.
	ResolutionDeactivate Resolution = iota
	// ResolutionUphold keeps the rule in force; the invocation is rejected
	// as if the rule were hard. No built-in policy returns this; it exists
	// so stricter policies can be plugged in without changing the
	// validator's control flow.
	ResolutionUphold
)

type (
	// Resolution is the outcome a conflict-resolution policy picks for one
	// soft violation.
	Resolution int

	// Policy decides what to do with a violated soft rule. Implementations
	// must be pure functions of the violation and invocation and must not
	// retain state across calls; the validator may invoke them from
	// concurrent validation calls.
	Policy interface {
		Resolve(v Violation, inv *phisys.Invocation) Resolution
	}

	// DeactivatePolicy is the default policy: every violated soft rule is
	// unconditionally deactivated for the current invocation.
	DeactivatePolicy struct{}
)

// Resolve implements Policy.
func (DeactivatePolicy) Resolve(Violation, *phisys.Invocation) Resolution {
	return ResolutionDeactivate
}

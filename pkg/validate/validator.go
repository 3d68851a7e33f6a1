// SPDX-License-Identifier: MPL-2.0

package validate

import (
	"errors"
	"fmt"
	"log/slog"

	"philang/pkg/phisys"
)

// DefaultMaxProbeDepth bounds nested probe invocations per predicate
// evaluation when no override is configured.
const DefaultMaxProbeDepth = 4

// ErrNotFinalized is returned when validation is attempted against a system
// still in its building phase.
var ErrNotFinalized = errors.New("system is not finalized")

type (
	// Validator evaluates transformation invocations against a finalized
	// system. A Validator holds no mutable state between calls and is safe
	// for concurrent use.
	Validator struct {
		sys           *phisys.System
		policy        Policy
		maxProbeDepth int
		logger        *slog.Logger
	}

	// Option configures a Validator.
	Option func(*Validator)
)

// WithPolicy overrides the conflict-resolution policy for violated soft
// rules. The default is DeactivatePolicy.
func WithPolicy(p Policy) Option {
	return func(v *Validator) { v.policy = p }
}

// WithMaxProbeDepth overrides the nested-invocation budget each predicate
// evaluation receives. Values below one are ignored.
func WithMaxProbeDepth(n int) Option {
	return func(v *Validator) {
		if n >= 1 {
			v.maxProbeDepth = n
		}
	}
}

// WithLogger overrides the logger used for debug traces. The default is
// slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) { v.logger = l }
}

// New builds a Validator over a system. The system should be finalized
// before the first Validate call; Validate refuses unfinalized systems.
func New(sys *phisys.System, opts ...Option) *Validator {
	v := &Validator{
		sys:           sys,
		policy:        DeactivatePolicy{},
		maxProbeDepth: DefaultMaxProbeDepth,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate runs one transformation invocation through the validation loop:
// resolve the transformation, apply it, evaluate the module's effective
// rules against the outcome, and settle violations under the hard/soft
// protocol.
//
// A non-nil error reports a structural problem (unknown module or
// transformation, ambiguous inherited rules, unfinalized system). Failures
// of the invoked operation itself are not errors in this sense: they yield
// a Verdict with StatusError carrying an OperationError. A predicate that
// cannot be evaluated does not fail the call either; the rule is skipped
// and the skip is recorded in the trail.
func (v *Validator) Validate(module, transformation string, operands []phisys.Value) (*Verdict, error) {
	if !v.sys.Finalized() {
		return nil, ErrNotFinalized
	}
	if _, err := v.sys.Module(module); err != nil {
		return nil, err
	}

	tr, err := v.sys.ResolveTransformation(module, transformation)
	if err != nil {
		return nil, err
	}

	rules, err := v.sys.EffectiveRules(module)
	if err != nil {
		return nil, err
	}

	verdict := &Verdict{
		Trail: []string{fmt.Sprintf("module %s: invoke %s with %d operand(s)", module, transformation, len(operands))},
	}

	result, err := apply(tr, operands)
	if err != nil {
		verdict.Status = StatusError
		verdict.Err = &OperationError{Transformation: transformation, Module: module, Err: err}
		verdict.Trail = append(verdict.Trail,
			fmt.Sprintf("operation failed: %v", err),
			"verdict: error")
		v.logger.Debug("operation failed", "module", module, "transformation", transformation, "err", err)
		return verdict, nil
	}

	inv := &phisys.Invocation{
		Transformation: transformation,
		Operands:       operands,
		Result:         result,
		Module:         module,
	}
	verdict.Invocation = inv

	// Evaluate every effective rule exactly once, in resolution order. Each
	// predicate gets a fresh probe budget.
	for _, rr := range rules {
		ok, perr := rr.Rule.Predicate.Satisfied(&probe{sys: v.sys, module: module, remaining: v.maxProbeDepth}, inv)
		if perr != nil {
			verdict.Trail = append(verdict.Trail,
				fmt.Sprintf("skipped rule %s from module %s: %v", rr.Rule.ID, rr.Source, perr))
			v.logger.Debug("predicate skipped", "rule", rr.Rule.Ref().String(), "err", perr)
			continue
		}
		if ok {
			continue
		}
		verdict.Violations = append(verdict.Violations, Violation{
			RuleID: rr.Rule.ID,
			Source: rr.Source,
			Kind:   rr.Rule.Kind,
		})
		verdict.Trail = append(verdict.Trail,
			fmt.Sprintf("violated %s rule %s from module %s", kindLabel(rr.Rule.Kind), rr.Rule.ID, rr.Source))
	}

	hard := verdict.HardViolations()

	// Soft violations are put to the policy only when no hard violation has
	// already settled the outcome; a deactivation would be meaningless on a
	// rejected invocation.
	upheld := false
	if len(hard) == 0 {
		for _, viol := range verdict.SoftViolations() {
			switch v.policy.Resolve(viol, inv) {
			case ResolutionDeactivate:
				verdict.Adaptations = append(verdict.Adaptations, Adaptation{RuleID: viol.RuleID, Source: viol.Source})
				verdict.Trail = append(verdict.Trail,
					fmt.Sprintf("deactivated SOFT rule %s from module %s", viol.RuleID, viol.Source))
			case ResolutionUphold:
				upheld = true
				verdict.Trail = append(verdict.Trail,
					fmt.Sprintf("upheld SOFT rule %s from module %s", viol.RuleID, viol.Source))
			}
		}
	}

	if len(hard) > 0 || upheld {
		verdict.Status = StatusReject
		verdict.Trail = append(verdict.Trail, "verdict: reject")
	} else {
		verdict.Status = StatusAccept
		verdict.Trail = append(verdict.Trail, "verdict: accept")
	}

	v.logger.Debug("validation settled",
		"module", module,
		"transformation", transformation,
		"status", verdict.Status,
		"violations", len(verdict.Violations),
		"adaptations", len(verdict.Adaptations))
	return verdict, nil
}

func kindLabel(k phisys.RuleKind) string {
	if k == phisys.KindHard {
		return "HARD"
	}
	return "SOFT"
}

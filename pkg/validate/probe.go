// SPDX-License-Identifier: MPL-2.0

package validate

import (
	"errors"
	"fmt"

	"philang/pkg/phisys"
)

// ErrProbeDepthExceeded is returned when a predicate exhausts its nested
// invocation budget.
var ErrProbeDepthExceeded = errors.New("probe depth exceeded")

// probe is the bounded transformation-invocation capability handed to
// predicates. Each predicate evaluation gets a fresh budget, so one greedy
// predicate cannot starve the others. A probe deliberately exposes nothing
// but Invoke: a predicate cannot re-enter the validator.
type probe struct {
	sys       *phisys.System
	module    string
	remaining int
}

func (p *probe) Invoke(transformation string, operands []phisys.Value) (phisys.Value, error) {
	if p.remaining <= 0 {
		return nil, fmt.Errorf("invoking %q: %w", transformation, ErrProbeDepthExceeded)
	}
	p.remaining--

	tr, err := p.sys.ResolveTransformation(p.module, transformation)
	if err != nil {
		return nil, err
	}
	return apply(tr, operands)
}

// apply runs a transformation implementation with arity checking. Shared by
// the validator's primary call and predicate probes.
func apply(tr *phisys.Transformation, operands []phisys.Value) (phisys.Value, error) {
	if tr.Apply == nil {
		return nil, fmt.Errorf("transformation %q has no bound implementation", tr.Name)
	}
	if tr.Arity > 0 && len(operands) != tr.Arity {
		return nil, fmt.Errorf("transformation %q expects %d operands, got %d", tr.Name, tr.Arity, len(operands))
	}
	return tr.Apply(operands)
}

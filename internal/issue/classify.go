// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"

	"philang/pkg/phifile"
	"philang/pkg/phisys"
	"philang/pkg/validate"
)

// Classify maps a domain error to the issue describing it. The second
// return is false when the error has no catalog entry.
func Classify(err error) (*Issue, bool) {
	switch {
	case errors.Is(err, phifile.ErrParse):
		return Get(ProgramParseErrorId), true
	case errors.Is(err, phisys.ErrUnknownModule):
		return Get(ModuleNotFoundId), true
	case errors.Is(err, phisys.ErrUnknownTransformation):
		return Get(TransformationNotFoundId), true
	case errors.Is(err, phisys.ErrCyclicImport):
		return Get(CyclicImportId), true
	case errors.Is(err, phisys.ErrAmbiguousRule):
		return Get(AmbiguousRuleId), true
	case errors.Is(err, phisys.ErrSystemFinalized):
		return Get(SystemFinalizedId), true
	case errors.Is(err, validate.ErrOperation):
		return Get(OperationFailedId), true
	default:
		return nil, false
	}
}

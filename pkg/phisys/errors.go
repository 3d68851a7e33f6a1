// SPDX-License-Identifier: MPL-2.0

package phisys

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateModule is the sentinel error wrapped by DuplicateModuleError.
	ErrDuplicateModule = errors.New("duplicate module")
	// ErrUnknownModule is the sentinel error wrapped by UnknownModuleError.
	ErrUnknownModule = errors.New("unknown module")
	// ErrCyclicImport is the sentinel error wrapped by CyclicImportError.
	ErrCyclicImport = errors.New("cyclic import")
	// ErrAmbiguousRule is the sentinel error wrapped by AmbiguousRuleError.
	ErrAmbiguousRule = errors.New("ambiguous rule")
	// ErrSystemFinalized is the sentinel error wrapped by SystemFinalizedError.
	ErrSystemFinalized = errors.New("system finalized")
	// ErrUnknownTransformation is the sentinel error wrapped by UnknownTransformationError.
	ErrUnknownTransformation = errors.New("unknown transformation")
)

type (
	// DuplicateModuleError is returned when defining a module whose name is
	// already taken in the system.
	DuplicateModuleError struct {
		Name string
	}

	// UnknownModuleError is returned when a module name has no definition
	// in the system.
	UnknownModuleError struct {
		Name string
	}

	// CyclicImportError is returned when adding an import edge would close
	// a cycle in the composition graph.
	CyclicImportError struct {
		// Module is the importing module.
		Module string
		// Import is the dependency whose addition would close the cycle.
		Import string
	}

	// AmbiguousRuleError is returned when the same bare rule id reaches a
	// module from two distinct declarations that disagree on kind or
	// predicate.
	AmbiguousRuleError struct {
		ID string
		// First and Second attribute the conflicting declarations.
		First  RuleRef
		Second RuleRef
	}

	// SystemFinalizedError is returned when a mutation is attempted on a
	// finalized system.
	SystemFinalizedError struct {
		// Op names the rejected operation, e.g. "define module".
		Op string
	}

	// UnknownTransformationError is returned when a transformation id has no
	// definition visible to the given module, neither locally nor through
	// its imports.
	UnknownTransformationError struct {
		Name   string
		Module string
	}
)

func (e *DuplicateModuleError) Error() string {
	return fmt.Sprintf("module %q is already defined", e.Name)
}

func (e *DuplicateModuleError) Unwrap() error { return ErrDuplicateModule }

func (e *UnknownModuleError) Error() string {
	return fmt.Sprintf("module %q is not defined", e.Name)
}

func (e *UnknownModuleError) Unwrap() error { return ErrUnknownModule }

func (e *CyclicImportError) Error() string {
	return fmt.Sprintf("importing %q into %q would create an import cycle", e.Import, e.Module)
}

func (e *CyclicImportError) Unwrap() error { return ErrCyclicImport }

func (e *AmbiguousRuleError) Error() string {
	return fmt.Sprintf("rule %q is inherited with conflicting definitions from %q and %q",
		e.ID, e.First.Module, e.Second.Module)
}

func (e *AmbiguousRuleError) Unwrap() error { return ErrAmbiguousRule }

func (e *SystemFinalizedError) Error() string {
	return fmt.Sprintf("cannot %s: system is finalized", e.Op)
}

func (e *SystemFinalizedError) Unwrap() error { return ErrSystemFinalized }

func (e *UnknownTransformationError) Error() string {
	return fmt.Sprintf("transformation %q is not visible to module %q", e.Name, e.Module)
}

func (e *UnknownTransformationError) Unwrap() error { return ErrUnknownTransformation }

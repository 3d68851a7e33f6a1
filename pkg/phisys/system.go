// SPDX-License-Identifier: MPL-2.0

package phisys

import (
	"errors"

	"philang/internal/dag"
)

// System is the registry of all modules, keyed by unique name. It owns all
// modules and rules transitively.
//
// A System starts in the building phase, where modules, imports, and rules
// may be added by a single writer. Finalize freezes it exactly once; after
// that every mutation fails with SystemFinalizedError and the system is safe
// for any number of concurrent readers.
type System struct {
	modules   map[string]*Module
	order     []string
	finalized bool
}

// NewSystem creates an empty system in the building phase.
func NewSystem() *System {
	return &System{
		modules: make(map[string]*Module),
	}
}

// DefineModule creates a new empty module under the given name.
func (s *System) DefineModule(name string) (*Module, error) {
	if s.finalized {
		return nil, &SystemFinalizedError{Op: "define module"}
	}
	if name == "" {
		return nil, errors.New("module name cannot be empty")
	}
	if _, ok := s.modules[name]; ok {
		return nil, &DuplicateModuleError{Name: name}
	}
	m := newModule(name, s)
	s.modules[name] = m
	s.order = append(s.order, name)
	return m, nil
}

// Module looks up a module by name.
func (s *System) Module(name string) (*Module, error) {
	m, ok := s.modules[name]
	if !ok {
		return nil, &UnknownModuleError{Name: name}
	}
	return m, nil
}

// Modules returns all modules in definition order.
func (s *System) Modules() []*Module {
	out := make([]*Module, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.modules[name])
	}
	return out
}

// Finalized reports whether the system has been frozen.
func (s *System) Finalized() bool { return s.finalized }

// Finalize freezes the system. It re-verifies that the composition graph is
// acyclic; on failure the system stays in the building phase so the caller
// can repair it, never half-finalized.
func (s *System) Finalize() error {
	if s.finalized {
		return &SystemFinalizedError{Op: "finalize"}
	}
	if _, err := s.graph().TopologicalSort(); err != nil {
		return err
	}
	s.finalized = true
	return nil
}

// ImportOrder returns a deterministic topological listing of the composition
// graph: importers before the modules they import.
func (s *System) ImportOrder() ([]string, error) {
	return s.graph().TopologicalSort()
}

// graph builds the current import graph. Rebuilt on demand during
// construction; cheap relative to construction-time call rates.
func (s *System) graph() *dag.Graph {
	g := dag.New()
	for _, name := range s.order {
		g.AddNode(name)
		for _, imp := range s.modules[name].imports {
			g.AddEdge(name, imp)
		}
	}
	return g
}

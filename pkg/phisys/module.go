// SPDX-License-Identifier: MPL-2.0

package phisys

import "fmt"

type (
	// Generator is a named data type owned by a module: the "reality" a
	// transformation operates on (a number, a matrix, ...). The engine only
	// tracks the declaration; concrete values are host-supplied.
	Generator struct {
		Name        string
		Description string
	}

	// ApplyFunc is the host-supplied implementation of a transformation.
	ApplyFunc func(operands []Value) (Value, error)

	// Transformation is a pure operation over generator values. The
	// declaration (name and arity) comes from the module source; the
	// implementation is bound by the host before the system is finalized.
	Transformation struct {
		Name  string
		Arity int
		// Apply executes the transformation. Nil until the host binds an
		// implementation.
		Apply ApplyFunc
	}

	// Module is a named scope owning local generators, transformations, and
	// rules, plus an ordered list of imports. Imports are non-owning
	// references by module name; the System resolves them.
	Module struct {
		name string
		sys  *System

		generators map[string]Generator
		genOrder   []string

		transformations map[string]*Transformation
		transOrder      []string

		rules     map[string]*Rule
		ruleOrder []string

		imports []string
	}
)

func newModule(name string, sys *System) *Module {
	return &Module{
		name:            name,
		sys:             sys,
		generators:      make(map[string]Generator),
		transformations: make(map[string]*Transformation),
		rules:           make(map[string]*Rule),
	}
}

// Name returns the module name, unique within its system.
func (m *Module) Name() string { return m.name }

// Imports returns the module's import list in declaration order.
func (m *Module) Imports() []string {
	out := make([]string, len(m.imports))
	copy(out, m.imports)
	return out
}

// AddImport appends a dependency edge to the module. The dependency must
// already be defined, and the edge must not close a cycle in the
// composition graph.
func (m *Module) AddImport(dependency string) error {
	if m.sys.finalized {
		return &SystemFinalizedError{Op: "add import"}
	}
	if _, ok := m.sys.modules[dependency]; !ok {
		return &UnknownModuleError{Name: dependency}
	}
	if dependency == m.name {
		return &CyclicImportError{Module: m.name, Import: dependency}
	}
	// The edge m -> dependency closes a cycle iff m is already reachable
	// from the dependency.
	if m.sys.graph().HasPath(dependency, m.name) {
		return &CyclicImportError{Module: m.name, Import: dependency}
	}
	for _, imp := range m.imports {
		if imp == dependency {
			// Restating an import is a no-op.
			return nil
		}
	}
	m.imports = append(m.imports, dependency)
	return nil
}

// AddRule registers a local rule. Rule ids are unique within the module;
// restating an identical rule is a silent no-op, while re-registering an id
// with a different kind or predicate fails with AmbiguousRuleError.
func (m *Module) AddRule(r Rule) error {
	if m.sys.finalized {
		return &SystemFinalizedError{Op: "add rule"}
	}
	if r.ID == "" {
		return fmt.Errorf("rule id cannot be empty")
	}
	if !r.Kind.IsValid() {
		return fmt.Errorf("rule %q: invalid kind %q", r.ID, r.Kind)
	}
	if r.Predicate == nil {
		return fmt.Errorf("rule %q: predicate cannot be nil", r.ID)
	}
	r.Module = m.name

	if existing, ok := m.rules[r.ID]; ok {
		if existing.conflictsWith(&r) {
			return &AmbiguousRuleError{ID: r.ID, First: existing.Ref(), Second: r.Ref()}
		}
		return nil
	}

	stored := r
	m.rules[r.ID] = &stored
	m.ruleOrder = append(m.ruleOrder, r.ID)
	return nil
}

// Rule looks up a local rule by id.
func (m *Module) Rule(id string) (*Rule, bool) {
	r, ok := m.rules[id]
	return r, ok
}

// Rules returns the module's local rules in declaration order.
func (m *Module) Rules() []*Rule {
	out := make([]*Rule, 0, len(m.ruleOrder))
	for _, id := range m.ruleOrder {
		out = append(out, m.rules[id])
	}
	return out
}

// AddGenerator registers a local generator declaration. Restating a name
// overwrites the description, matching the source-level "extend a module"
// behavior.
func (m *Module) AddGenerator(g Generator) error {
	if m.sys.finalized {
		return &SystemFinalizedError{Op: "add generator"}
	}
	if g.Name == "" {
		return fmt.Errorf("generator name cannot be empty")
	}
	if _, ok := m.generators[g.Name]; !ok {
		m.genOrder = append(m.genOrder, g.Name)
	}
	m.generators[g.Name] = g
	return nil
}

// Generators returns the module's local generators in declaration order.
func (m *Module) Generators() []Generator {
	out := make([]Generator, 0, len(m.genOrder))
	for _, name := range m.genOrder {
		out = append(out, m.generators[name])
	}
	return out
}

// DeclareTransformation registers a transformation declaration without an
// implementation. The host binds the implementation later with
// BindTransformation.
func (m *Module) DeclareTransformation(name string, arity int) error {
	if m.sys.finalized {
		return &SystemFinalizedError{Op: "declare transformation"}
	}
	if name == "" {
		return fmt.Errorf("transformation name cannot be empty")
	}
	if _, ok := m.transformations[name]; !ok {
		m.transOrder = append(m.transOrder, name)
	}
	m.transformations[name] = &Transformation{Name: name, Arity: arity}
	return nil
}

// BindTransformation attaches the host implementation to a declared
// transformation. Declares the transformation implicitly if needed, so hosts
// can register capabilities without a source-level `def`.
func (m *Module) BindTransformation(name string, arity int, fn ApplyFunc) error {
	if m.sys.finalized {
		return &SystemFinalizedError{Op: "bind transformation"}
	}
	if fn == nil {
		return fmt.Errorf("transformation %q: implementation cannot be nil", name)
	}
	if existing, ok := m.transformations[name]; ok {
		existing.Apply = fn
		existing.Arity = arity
		return nil
	}
	m.transOrder = append(m.transOrder, name)
	m.transformations[name] = &Transformation{Name: name, Arity: arity, Apply: fn}
	return nil
}

// Transformation looks up a local transformation by name.
func (m *Module) Transformation(name string) (*Transformation, bool) {
	t, ok := m.transformations[name]
	return t, ok
}

// Transformations returns the module's local transformations in declaration
// order.
func (m *Module) Transformations() []*Transformation {
	out := make([]*Transformation, 0, len(m.transOrder))
	for _, name := range m.transOrder {
		out = append(out, m.transformations[name])
	}
	return out
}

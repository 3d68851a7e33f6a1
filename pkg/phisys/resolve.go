// SPDX-License-Identifier: MPL-2.0

package phisys

// EffectiveRules resolves the ordered rule set visible to a module: its
// local rules followed by rules inherited transitively through imports.
//
// The walk is a pre-order depth-first traversal of the import graph,
// visiting imports in declaration order. Each module contributes its local
// rules the first time it is visited, so diamond imports contribute exactly
// once and the traversal terminates even on graphs a caller has not
// finalized yet. Every entry keeps attribution to its declaring module.
//
// If the same bare rule id reaches the module from two distinct declarations
// that disagree on kind or predicate, resolution fails with
// AmbiguousRuleError. Identical restatements are deduplicated by the
// visited-set.
func (s *System) EffectiveRules(moduleName string) ([]ResolvedRule, error) {
	root, ok := s.modules[moduleName]
	if !ok {
		return nil, &UnknownModuleError{Name: moduleName}
	}

	var (
		resolved []ResolvedRule
		visited  = make(map[string]bool, len(s.modules))
		// seen maps bare rule ids to the first declaration encountered,
		// for conflict detection across modules.
		seen = make(map[string]*Rule)
	)

	var walk func(m *Module) error
	walk = func(m *Module) error {
		if visited[m.name] {
			return nil
		}
		visited[m.name] = true

		for _, id := range m.ruleOrder {
			r := m.rules[id]
			if first, ok := seen[id]; ok {
				if first.conflictsWith(r) {
					return &AmbiguousRuleError{ID: id, First: first.Ref(), Second: r.Ref()}
				}
			} else {
				seen[id] = r
			}
			resolved = append(resolved, ResolvedRule{Rule: r, Source: r.Module})
		}

		for _, imp := range m.imports {
			dep, ok := s.modules[imp]
			if !ok {
				return &UnknownModuleError{Name: imp}
			}
			if err := walk(dep); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(root); err != nil {
		return nil, err
	}
	return resolved, nil
}

// ResolveTransformation finds the transformation definition visible to a
// module: the module's own declaration wins, then imports are searched in
// the same depth-first order EffectiveRules uses.
func (s *System) ResolveTransformation(moduleName, transformation string) (*Transformation, error) {
	root, ok := s.modules[moduleName]
	if !ok {
		return nil, &UnknownModuleError{Name: moduleName}
	}

	visited := make(map[string]bool, len(s.modules))

	var walk func(m *Module) *Transformation
	walk = func(m *Module) *Transformation {
		if visited[m.name] {
			return nil
		}
		visited[m.name] = true

		if t, ok := m.transformations[transformation]; ok {
			return t
		}
		for _, imp := range m.imports {
			if dep, ok := s.modules[imp]; ok {
				if t := walk(dep); t != nil {
					return t
				}
			}
		}
		return nil
	}

	if t := walk(root); t != nil {
		return t, nil
	}
	return nil, &UnknownTransformationError{Name: transformation, Module: moduleName}
}

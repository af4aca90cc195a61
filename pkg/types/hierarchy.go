package types

import (
	"fmt"
	"slices"
)

var ErrCycleDetected = fmt.Errorf("cycle detected")

type decl struct {
	name   string
	params []string
	supers []Type
}

// Hierarchy is a declared nominal subtype graph. It implements Subtyper:
// IsSubtype is reflexive and transitive over the declared supertype edges,
// with invariant type arguments and unification against type parameters.
type Hierarchy struct {
	decls map[string]*decl
}

func NewHierarchy() *Hierarchy {
	return &Hierarchy{
		decls: make(map[string]*decl),
	}
}

func (h *Hierarchy) Declare(name string, params []string, supers ...Type) error {
	if _, ok := h.decls[name]; ok {
		return fmt.Errorf("type %s is already declared", name)
	}

	h.decls[name] = &decl{
		name:   name,
		params: params,
		supers: supers,
	}

	return nil
}

// Validate checks that every named supertype is declared and that the
// supertype graph is acyclic.
func (h *Hierarchy) Validate() error {
	for _, d := range sortedDecls(h.decls) {
		for _, super := range d.supers {
			if super.IsParam() {
				return fmt.Errorf("type %s: supertype %s is a type parameter", d.name, super)
			}

			if _, ok := h.decls[super.Name()]; !ok {
				return fmt.Errorf("type %s: supertype %s is not declared", d.name, super.Name())
			}
		}
	}

	return h.checkAcyclic()
}

// checkAcyclic runs a Kahn-style elimination over the supertype edges. Any
// declarations left with unresolved dependencies afterwards form a cycle.
func (h *Hierarchy) checkAcyclic() error {
	dependencies := make(map[string]map[string]struct{})
	dependents := make(map[string]map[string]struct{})

	for name, d := range h.decls {
		for _, super := range d.supers {
			superName := super.Name()
			if dependencies[name] == nil {
				dependencies[name] = make(map[string]struct{})
			}
			dependencies[name][superName] = struct{}{}

			if dependents[superName] == nil {
				dependents[superName] = make(map[string]struct{})
			}
			dependents[superName][name] = struct{}{}
		}
	}

	var ready []string
	for name := range h.decls {
		if len(dependencies[name]) == 0 {
			ready = append(ready, name)
		}
	}
	slices.Sort(ready)

	for len(ready) > 0 {
		var name string
		name, ready = ready[0], ready[1:]

		for _, dep := range sortedKeys(dependents[name]) {
			delete(dependencies[dep], name)
			if len(dependencies[dep]) == 0 {
				delete(dependencies, dep)
				ready = append(ready, dep)
			}
		}
	}

	for name, deps := range dependencies {
		if len(deps) > 0 {
			return fmt.Errorf("type %s: %w", name, ErrCycleDetected)
		}
	}

	return nil
}

// IsSubtype reports whether a is a subtype of b. Type parameters in b bind
// to whatever they first match against, consistently within one match
// attempt; each attempt against a (or one of its substituted supertypes)
// starts from fresh bindings.
func (h *Hierarchy) IsSubtype(a, b Type) bool {
	if h.unify(a, b, make(map[string]Type)) {
		return true
	}

	d, ok := h.decls[a.Name()]
	if !ok || a.IsParam() {
		return false
	}

	declBindings := make(map[string]Type, len(d.params))
	for i, param := range d.params {
		if i < len(a.Args()) {
			declBindings[param] = a.Args()[i]
		}
	}

	for _, super := range d.supers {
		if h.IsSubtype(Substitute(super, declBindings), b) {
			return true
		}
	}

	return false
}

func (h *Hierarchy) unify(a, b Type, bindings map[string]Type) bool {
	if b.IsParam() {
		if bound, ok := bindings[b.Name()]; ok {
			return Equal(a, bound)
		}

		bindings[b.Name()] = a

		return true
	}

	if a.IsParam() {
		return false
	}

	if a.Name() != b.Name() || len(a.Args()) != len(b.Args()) {
		return false
	}

	for i := range a.Args() {
		if !h.unify(a.Args()[i], b.Args()[i], bindings) {
			return false
		}
	}

	return true
}

func sortedDecls(decls map[string]*decl) []*decl {
	out := make([]*decl, 0, len(decls))
	for _, name := range sortedKeys(decls) {
		out = append(out, decls[name])
	}

	return out
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

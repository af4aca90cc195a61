package resolver

// OverloadSet is every declaration visible under one call-site name. Each is
// resolved independently; the resolved candidates are then compared by
// specificity.
type OverloadSet struct {
	Name         string
	Declarations []*Declaration
}

func (s *OverloadSet) Add(decl *Declaration) {
	s.Declarations = append(s.Declarations, decl)
}

// ResolveCall resolves an overload set at a call site. Zero resolved
// candidates yield NotApplicable with a NoApplicableDeclarationError; a
// unique most-specific candidate wins; otherwise the verdict is Ambiguous
// with an AmbiguousOverloadError listing the competitors.
func (r *Resolver) ResolveCall(set *OverloadSet, stack *ReceiverStack, call CallSite) (Verdict, error) {
	var resolved []*Binding
	for _, decl := range set.Declarations {
		verdict := r.Resolve(decl, stack, call)
		if verdict.Kind == VerdictResolved {
			resolved = append(resolved, verdict.Binding)
		}
	}

	switch len(resolved) {
	case 0:
		return NotApplicable(), NoApplicableDeclarationError{
			Name:     call.Name,
			Explicit: call.Explicit.Type,
		}
	case 1:
		return Resolved(resolved[0]), nil
	}

	if winner := r.mostSpecific(resolved); winner != nil {
		r.logger.Debug("picked most specific overload", "call", call.Name, "declaration", winner.Declaration.Site, "candidates", len(resolved))
		return Resolved(winner), nil
	}

	return Ambiguous(resolved), AmbiguousOverloadError{
		Name:      call.Name,
		Competing: resolved,
	}
}

// mostSpecific returns the unique binding more specific than every other
// resolved binding, or nil when none dominates.
func (r *Resolver) mostSpecific(bindings []*Binding) *Binding {
	for _, candidate := range bindings {
		dominates := true
		for _, other := range bindings {
			if candidate == other {
				continue
			}

			if !r.moreSpecific(candidate, other) {
				dominates = false
				break
			}
		}

		if dominates {
			return candidate
		}
	}

	return nil
}

// moreSpecific reports whether b1's declared receiver types are subtypes of
// b2's at every position, strictly at least once. Bindings with different
// receiver counts are incomparable.
func (r *Resolver) moreSpecific(b1, b2 *Binding) bool {
	r1 := b1.Declaration.Receivers
	r2 := b2.Declaration.Receivers
	if len(r1) != len(r2) {
		return false
	}

	strict := false
	for i := range r1 {
		if !r.sub.IsSubtype(r1[i], r2[i]) {
			return false
		}

		if !r.sub.IsSubtype(r2[i], r1[i]) {
			strict = true
		}
	}

	return strict
}

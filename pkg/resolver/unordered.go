package resolver

// resolveUnordered binds a set-style receiver list against the flattened
// context list: global and file contexts at the bottom, then every entered
// receiver in entry order. A fresh call-site explicit receiver joins the
// list as its innermost entry; an ambient explicit receiver is already in
// it. Receivers are processed in textual declaration order for determinism;
// each scans the list innermost-first independently, so two receivers may
// bind the same frame when one value satisfies both types. Any receiver with
// no match makes the declaration inapplicable.
func (r *Resolver) resolveUnordered(decl *Declaration, frames []ContextFrame, call CallSite) Verdict {
	contexts := frames
	if !call.Explicit.Type.IsZero() && call.ExplicitPos == 0 {
		contexts = append(frames[:len(frames):len(frames)], call.Explicit)
	}

	positions := make([]int, len(decl.Receivers))
	bound := make([]ContextFrame, len(decl.Receivers))

	for i, recv := range decl.Receivers {
		j := len(contexts) - 1
		for ; j >= 0; j-- {
			if r.sub.IsSubtype(contexts[j].Type, recv) {
				break
			}
		}

		if j < 0 {
			return NotApplicable()
		}

		positions[i] = j
		bound[i] = contexts[j]
	}

	return Resolved(&Binding{
		Declaration: decl,
		Positions:   positions,
		Frames:      bound,
	})
}

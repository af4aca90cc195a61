package resolver

// resolveOrdered matches a positional receiver list against the stack. The
// explicit (last declared) receiver must accept the call-site receiver; each
// implicit receiver then binds to a stack frame so that declared order and
// stack order agree (strictly monotonic positions). When the explicit
// receiver is itself an ambient frame, every implicit receiver must bind
// strictly outside it.
//
// Among all monotonic assignments the canonical one is the lexicographically
// last: each implicit receiver claims the innermost frame it can without
// blocking earlier receivers from a strictly outer one. The greedy backward
// scan constructs it in O(n·m): bind T[n-1] scanning from the innermost
// eligible frame outward, then T[n-2] strictly outside that, and so on.
// Exhausting a scan means no monotonic assignment exists, so the declaration
// is inapplicable at this call site.
func (r *Resolver) resolveOrdered(decl *Declaration, frames []ContextFrame, call CallSite) Verdict {
	if call.Explicit.Type.IsZero() || !r.sub.IsSubtype(call.Explicit.Type, decl.Explicit()) {
		return NotApplicable()
	}

	implicit := decl.Implicit()

	positions := make([]int, len(decl.Receivers))
	bound := make([]ContextFrame, len(decl.Receivers))

	upper := len(frames)
	if call.ExplicitPos > 0 {
		upper = call.ExplicitPos - 1
		positions[len(positions)-1] = call.ExplicitPos - 1
	} else {
		positions[len(positions)-1] = PositionCallSite
	}
	bound[len(bound)-1] = call.Explicit

	for i := len(implicit) - 1; i >= 0; i-- {
		j := upper - 1
		for ; j >= 0; j-- {
			if r.sub.IsSubtype(frames[j].Type, implicit[i]) {
				break
			}
		}

		if j < 0 {
			return NotApplicable()
		}

		positions[i] = j
		bound[i] = frames[j]
		upper = j
	}

	return Resolved(&Binding{
		Declaration: decl,
		Positions:   positions,
		Frames:      bound,
	})
}

package resolver

import (
	"fmt"
	"strings"
)

// Binding is the resolved correspondence between a declaration's receiver
// types and ambient context frames. Positions index the stack (ordered mode)
// or the context list (unordered mode), outermost first; entries follow
// declared receiver order. In ordered mode positions are strictly increasing
// in declared index order; in unordered mode two receivers may share one
// position.
type Binding struct {
	Declaration *Declaration
	Positions   []int
	Frames      []ContextFrame
}

// PositionCallSite marks a receiver bound to the call-site explicit frame
// rather than to an ambient position.
const PositionCallSite = -1

func (b *Binding) String() string {
	parts := make([]string, len(b.Frames))
	for i, frame := range b.Frames {
		parts[i] = fmt.Sprintf("%s↦%s", b.Declaration.Receivers[i], frame)
	}

	return fmt.Sprintf("%s {%s}", b.Declaration, strings.Join(parts, ", "))
}

type VerdictKind int

const (
	VerdictNotApplicable VerdictKind = iota
	VerdictResolved
	VerdictAmbiguous
)

func (k VerdictKind) String() string {
	switch k {
	case VerdictResolved:
		return "resolved"
	case VerdictNotApplicable:
		return "not applicable"
	case VerdictAmbiguous:
		return "ambiguous"
	default:
		return "<unknown>"
	}
}

// Verdict is the outcome of resolving one declaration or one overload set
// against a stack snapshot. NotApplicable carries no data; Resolved carries
// the chosen binding; Ambiguous carries the competing bindings for
// diagnostics. A verdict is definitive for the given snapshot.
type Verdict struct {
	Kind      VerdictKind
	Binding   *Binding
	Competing []*Binding
}

func NotApplicable() Verdict {
	return Verdict{Kind: VerdictNotApplicable}
}

func Resolved(binding *Binding) Verdict {
	return Verdict{
		Kind:    VerdictResolved,
		Binding: binding,
	}
}

func Ambiguous(competing []*Binding) Verdict {
	return Verdict{
		Kind:      VerdictAmbiguous,
		Competing: competing,
	}
}

package resolver

import (
	"log/slog"

	"github.com/calyx-lang/calyx/pkg/types"
)

// Resolver decides whether declarations apply at call sites and binds their
// receiver types to ambient context frames. It holds no mutable state beyond
// the injected subtype predicate and may be shared across goroutines as long
// as each traversal owns its own ReceiverStack.
type Resolver struct {
	logger *slog.Logger
	sub    types.Subtyper
}

func New(logger *slog.Logger, sub types.Subtyper) *Resolver {
	return &Resolver{
		logger: logger,
		sub:    sub,
	}
}

// CallSite is the input a traversal driver supplies per call: the callable
// name and the explicit receiver, if the call has one syntactically.
//
// ExplicitPos distinguishes the two shapes an explicit receiver takes. Zero
// means the receiver is a fresh call-site value (x.f() on a local x).
// A positive value is the 1-based stack position, outermost first, of the
// ambient frame the receiver refers to (f() inside that frame's scope, or a
// call on the frame's value); implicit receivers must then bind strictly
// outside that frame.
type CallSite struct {
	Name        string
	Explicit    ContextFrame
	ExplicitPos int
	Site        string
}

// Resolve runs the matching algorithm for the declaration's mode against a
// snapshot of the stack. The verdict is definitive for that snapshot; it
// never mutates the stack.
func (r *Resolver) Resolve(decl *Declaration, stack *ReceiverStack, call CallSite) Verdict {
	frames := stack.Frames()

	switch decl.Mode {
	case ModeOrdered:
		return r.resolveOrdered(decl, frames, call)
	case ModeUnordered:
		return r.resolveUnordered(decl, frames, call)
	default:
		return NotApplicable()
	}
}

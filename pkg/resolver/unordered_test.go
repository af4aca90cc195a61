package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/calyx-lang/calyx/pkg/resolver"
)

// Context list [G, Shape, Shape]: a single Shape receiver binds the
// innermost of the two Shape entries.
func TestUnordered_InnermostOfDuplicates(t *testing.T) {
	r := require.New(t)
	res := newTestResolver(t)

	stack := stackOf(
		frame("Any", "G"),
		frame("Shape", "outer"),
		frame("Shape", "inner"),
	)
	decl := unordered("area", "Shape")

	verdict := res.Resolve(decl, stack, resolver.CallSite{Name: "area"})
	r.Equal(resolver.VerdictResolved, verdict.Kind)
	r.Equal([]int{2}, verdict.Binding.Positions)
	r.Equal("inner", verdict.Binding.Frames[0].Value)
}

// Two declared receivers both satisfied by one innermost value bind to that
// same frame; there is no artificial distinctness requirement.
func TestUnordered_SharedFrame(t *testing.T) {
	r := require.New(t)
	res := newTestResolver(t)

	stack := stackOf(
		frame("Widget", "w"),
		frame("AdminSession", "admin"),
	)
	decl := unordered("audit", "Session", "Any")

	verdict := res.Resolve(decl, stack, resolver.CallSite{Name: "audit"})
	r.Equal(resolver.VerdictResolved, verdict.Kind)
	r.Equal([]int{1, 1}, verdict.Binding.Positions)
	r.Equal("admin", verdict.Binding.Frames[0].Value)
	r.Equal("admin", verdict.Binding.Frames[1].Value)
}

// Declared order does not have to agree with entry order.
func TestUnordered_EntryOrderIrrelevant(t *testing.T) {
	r := require.New(t)
	res := newTestResolver(t)

	stack := stackOf(frame("Session", "s"), frame("Widget", "w"))
	decl := unordered("render", "Widget", "Session")

	verdict := res.Resolve(decl, stack, resolver.CallSite{Name: "render"})
	r.Equal(resolver.VerdictResolved, verdict.Kind)
	r.Equal([]int{1, 0}, verdict.Binding.Positions)
}

func TestUnordered_MissingReceiverNotApplicable(t *testing.T) {
	r := require.New(t)
	res := newTestResolver(t)

	stack := stackOf(frame("Widget", "w"))
	decl := unordered("render", "Widget", "Session")

	verdict := res.Resolve(decl, stack, resolver.CallSite{Name: "render"})
	r.Equal(resolver.VerdictNotApplicable, verdict.Kind)
}

// A fresh call-site receiver is the innermost context entry.
func TestUnordered_CallSiteReceiverInnermost(t *testing.T) {
	r := require.New(t)
	res := newTestResolver(t)

	stack := stackOf(frame("Shape", "ambient"))
	decl := unordered("draw", "Shape")

	verdict := res.Resolve(decl, stack, callOn("draw", frame("Circle", "fresh")))
	r.Equal(resolver.VerdictResolved, verdict.Kind)
	r.Equal("fresh", verdict.Binding.Frames[0].Value)
}

// An ambient explicit receiver is already in the context list and must not
// be appended a second time.
func TestUnordered_AmbientExplicitNotDuplicated(t *testing.T) {
	r := require.New(t)
	res := newTestResolver(t)

	stack := stackOf(frame("Shape", "outer"), frame("Shape", "inner"))
	decl := unordered("draw", "Shape")

	verdict := res.Resolve(decl, stack, ambientCall("draw", frame("Shape", "outer"), 1))
	r.Equal(resolver.VerdictResolved, verdict.Kind)
	r.Equal([]int{1}, verdict.Binding.Positions)
}

// m = 1 with a call-site receiver behaves like classical single-receiver
// extension lookup: the receiver itself wins over any enclosing context.
func TestUnordered_SingleReceiverCompatibility(t *testing.T) {
	r := require.New(t)
	res := newTestResolver(t)

	decl := unordered("double", "Int")

	verdict := res.Resolve(decl, stackOf(), callOn("double", frame("Int", 7)))
	r.Equal(resolver.VerdictResolved, verdict.Kind)
	r.Equal(7, verdict.Binding.Frames[0].Value)
}

func TestUnordered_Deterministic(t *testing.T) {
	r := require.New(t)
	res := newTestResolver(t)

	stack := stackOf(
		frame("AdminSession", "admin"),
		frame("Widget", "w"),
	)
	decl := unordered("render", "Any", "Session", "Widget")
	call := resolver.CallSite{Name: "render"}

	first := res.Resolve(decl, stack, call)
	second := res.Resolve(decl, stack, call)

	r.Equal(resolver.VerdictResolved, first.Kind)
	r.Equal(first.Binding.Positions, second.Binding.Positions)

	// Receivers are processed in textual declaration order; each scans
	// independently from the innermost entry.
	r.Equal([]int{1, 0, 1}, first.Binding.Positions)
}

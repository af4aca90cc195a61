package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/calyx-lang/calyx/pkg/resolver"
)

func TestOverload_SingleWinner(t *testing.T) {
	r := require.New(t)
	res := newTestResolver(t)

	set := &resolver.OverloadSet{Name: "render"}
	set.Add(ordered("render", "Widget", "Int"))
	set.Add(ordered("render", "Session", "Int"))

	stack := stackOf(frame("Widget", "w"))

	verdict, err := res.ResolveCall(set, stack, callOn("render", frame("Int", 0)))
	r.NoError(err)
	r.Equal(resolver.VerdictResolved, verdict.Kind)
	r.Equal("Widget", verdict.Binding.Declaration.Receivers[0].Name())
}

func TestOverload_MostSpecificWins(t *testing.T) {
	r := require.New(t)
	res := newTestResolver(t)

	set := &resolver.OverloadSet{Name: "audit"}
	set.Add(ordered("audit", "Session", "Int"))
	set.Add(ordered("audit", "AdminSession", "Int"))

	stack := stackOf(frame("AdminSession", "admin"))

	verdict, err := res.ResolveCall(set, stack, callOn("audit", frame("Int", 0)))
	r.NoError(err)
	r.Equal(resolver.VerdictResolved, verdict.Kind)
	r.Equal("AdminSession", verdict.Binding.Declaration.Receivers[0].Name())
}

// Two unordered declarations listing the same receiver types in different
// textual order are equally specific: neither dominates, so the call is
// ambiguous and both candidates are reported.
func TestOverload_AmbiguousPermutations(t *testing.T) {
	r := require.New(t)
	res := newTestResolver(t)

	declAB := unordered("f", "A", "B")
	declBA := unordered("f", "B", "A")

	set := &resolver.OverloadSet{Name: "f"}
	set.Add(declAB)
	set.Add(declBA)

	stack := stackOf(frame("A", "a"), frame("B", "b"))

	verdict, err := res.ResolveCall(set, stack, resolver.CallSite{Name: "f"})
	r.Equal(resolver.VerdictAmbiguous, verdict.Kind)
	r.Len(verdict.Competing, 2)

	var ambiguous resolver.AmbiguousOverloadError
	r.ErrorAs(err, &ambiguous)
	r.Len(ambiguous.Competing, 2)
	r.Equal("f", ambiguous.Name)
}

func TestOverload_NoApplicableDeclaration(t *testing.T) {
	r := require.New(t)
	res := newTestResolver(t)

	set := &resolver.OverloadSet{Name: "render"}
	set.Add(ordered("render", "Widget", "Session"))

	stack := stackOf(frame("Shape", "sh"))

	verdict, err := res.ResolveCall(set, stack, callOn("render", frame("Session", "s")))
	r.Equal(resolver.VerdictNotApplicable, verdict.Kind)

	var noApplicable resolver.NoApplicableDeclarationError
	r.ErrorAs(err, &noApplicable)
	r.Equal("render", noApplicable.Name)
}

// Candidates with different receiver counts are incomparable, so when both
// resolve the call stays ambiguous.
func TestOverload_DifferentArityIncomparable(t *testing.T) {
	r := require.New(t)
	res := newTestResolver(t)

	set := &resolver.OverloadSet{Name: "g"}
	set.Add(ordered("g", "Int"))
	set.Add(ordered("g", "Widget", "Int"))

	stack := stackOf(frame("Widget", "w"))

	verdict, err := res.ResolveCall(set, stack, callOn("g", frame("Int", 0)))
	r.Error(err)
	r.Equal(resolver.VerdictAmbiguous, verdict.Kind)
}

func TestBoundCall_ThisReferences(t *testing.T) {
	r := require.New(t)
	res := newTestResolver(t)

	stack := stackOf(frame("Widget", "w"), frame("Session", "s"))
	decl := ordered("render", "Widget", "Session", "Int")

	verdict := res.Resolve(decl, stack, callOn("render", frame("Int", 9)))
	r.Equal(resolver.VerdictResolved, verdict.Kind)

	call := resolver.NewBoundCall(verdict.Binding)

	// Positional arguments follow declared receiver order.
	r.Len(call.Args, 3)
	r.Equal("w", call.Args[0].Value)
	r.Equal("s", call.Args[1].Value)
	r.Equal(9, call.Args[2].Value)

	// The default this is the innermost/explicit receiver.
	r.Equal(9, call.This().Value)

	widget, ok := call.ThisAt("Widget")
	r.True(ok)
	r.Equal("w", widget.Value)

	_, ok = call.ThisAt("Shape")
	r.False(ok)
}

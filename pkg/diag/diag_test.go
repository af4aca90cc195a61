package diag_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/calyx-lang/calyx/pkg/checker"
	"github.com/calyx-lang/calyx/pkg/diag"
	"github.com/calyx-lang/calyx/pkg/resolver"
	"github.com/calyx-lang/calyx/pkg/types"
)

func TestRenderer_Resolved(t *testing.T) {
	r := require.New(t)

	decl := &resolver.Declaration{
		Name:      "render",
		Receivers: []types.Type{types.New("Widget"), types.New("Session")},
		Site:      "ui.cx:12",
	}
	binding := &resolver.Binding{
		Declaration: decl,
		Positions:   []int{0, resolver.PositionCallSite},
		Frames: []resolver.ContextFrame{
			{Type: types.New("Widget"), Value: "w"},
			{Type: types.New("Session"), Value: "s"},
		},
	}

	var out strings.Builder
	renderer := diag.NewRenderer(&out, false)
	renderer.Result(checker.Result{
		Unit:    "main",
		Call:    resolver.CallSite{Name: "render", Site: "main.cx:3"},
		Verdict: resolver.Resolved(binding),
		Bound:   resolver.NewBoundCall(binding),
	})

	r.Contains(out.String(), "ok main.cx:3")
	r.Contains(out.String(), "render(w: Widget, s: Session)")
}

func TestRenderer_Ambiguous(t *testing.T) {
	r := require.New(t)

	declA := &resolver.Declaration{
		Name:      "f",
		Receivers: []types.Type{types.New("A"), types.New("B")},
		Site:      "a.cx:1",
	}
	declB := &resolver.Declaration{
		Name:      "f",
		Receivers: []types.Type{types.New("B"), types.New("A")},
		Site:      "b.cx:1",
	}

	competing := []*resolver.Binding{
		{Declaration: declA},
		{Declaration: declB},
	}

	var out strings.Builder
	renderer := diag.NewRenderer(&out, false)
	renderer.Result(checker.Result{
		Call:    resolver.CallSite{Name: "f", Site: "main.cx:9"},
		Verdict: resolver.Ambiguous(competing),
	})

	r.Contains(out.String(), "ambiguous call to f")
	r.Contains(out.String(), "(A, B).f")
	r.Contains(out.String(), "(B, A).f")
}

func TestRenderer_ErrorSet(t *testing.T) {
	r := require.New(t)

	errs := resolver.NewErrorSet()
	errs.Add(resolver.FileError{File: "a.yaml", Err: resolver.NoApplicableDeclarationError{Name: "f", Explicit: types.New("Int")}})
	errs.Add(resolver.FileError{File: "b.yaml", Err: resolver.NoApplicableDeclarationError{Name: "g", Explicit: types.New("Int")}})

	var out strings.Builder
	renderer := diag.NewRenderer(&out, false)
	renderer.Error(errs.Defer(nil))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	r.Len(lines, 2)
	r.Contains(lines[0], "a.yaml")
	r.Contains(lines[1], "b.yaml")
}

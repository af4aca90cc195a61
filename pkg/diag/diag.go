// Package diag renders checker results and resolution errors for terminals.
package diag

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/calyx-lang/calyx/pkg/checker"
	"github.com/calyx-lang/calyx/pkg/resolver"
)

// ColorEnabled reports whether stdout wants colored output.
func ColorEnabled() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

type Renderer struct {
	w io.Writer

	ok   *color.Color
	fail *color.Color
	dim  *color.Color
}

func NewRenderer(w io.Writer, colored bool) *Renderer {
	ok := color.New(color.FgGreen)
	fail := color.New(color.FgRed, color.Bold)
	dim := color.New(color.Faint)

	if !colored {
		ok.DisableColor()
		fail.DisableColor()
		dim.DisableColor()
	}

	return &Renderer{
		w:    w,
		ok:   ok,
		fail: fail,
		dim:  dim,
	}
}

func (r *Renderer) Result(res checker.Result) {
	site := res.Call.Site
	if site == "" {
		site = res.Unit
	}

	switch res.Verdict.Kind {
	case resolver.VerdictResolved:
		fmt.Fprintf(r.w, "%s %s %s\n", r.ok.Sprint("ok"), site, res.Bound)
		r.dim.Fprintf(r.w, "   binding %s\n", res.Verdict.Binding)
	case resolver.VerdictAmbiguous:
		fmt.Fprintf(r.w, "%s %s ambiguous call to %s\n", r.fail.Sprint("error"), site, res.Call.Name)
		for _, binding := range res.Verdict.Competing {
			r.dim.Fprintf(r.w, "   candidate %s\n", binding)
		}
	default:
		fmt.Fprintf(r.w, "%s %s %v\n", r.fail.Sprint("error"), site, res.Err)
	}
}

func (r *Renderer) Error(err error) {
	var errs *resolver.ErrorSet
	if !errors.As(err, &errs) {
		fmt.Fprintf(r.w, "%s %v\n", r.fail.Sprint("error"), err)
		return
	}

	for _, sub := range errs.Unwrap() {
		fmt.Fprintf(r.w, "%s %v\n", r.fail.Sprint("error"), sub)
	}
}

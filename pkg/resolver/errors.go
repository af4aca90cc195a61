package resolver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/calyx-lang/calyx/pkg/types"
)

// DuplicateReceiverTypeError reports a declaration listing the same
// post-substitution receiver type twice. Detected at definition time; the
// declaration never reaches resolution.
type DuplicateReceiverTypeError struct {
	Declaration *Declaration
	Type        types.Type
}

func (e DuplicateReceiverTypeError) Error() string {
	return fmt.Sprintf("%s: duplicate receiver type %s in declaration of %s", e.Declaration.Site, e.Type, e.Declaration.Name)
}

// SimpleNameClashError reports two receiver types in one declaration sharing
// a simple name, which makes this@Name addressing impossible in the body.
// Detected at definition time.
type SimpleNameClashError struct {
	Declaration *Declaration
	SimpleName  string
}

func (e SimpleNameClashError) Error() string {
	return fmt.Sprintf("%s: receiver types of %s share the simple name %s; this@%s would be ambiguous", e.Declaration.Site, e.Declaration.Name, e.SimpleName, e.SimpleName)
}

// NoApplicableDeclarationError surfaces when every candidate in an overload
// set is inapplicable at a call site.
type NoApplicableDeclarationError struct {
	Name     string
	Explicit types.Type
}

func (e NoApplicableDeclarationError) Error() string {
	return fmt.Sprintf("no applicable declaration of %s for receiver %s", e.Name, e.Explicit)
}

// AmbiguousOverloadError reports multiple resolved declarations with no
// unique most-specific winner. The competing bindings are attached for
// diagnostics.
type AmbiguousOverloadError struct {
	Name      string
	Competing []*Binding
}

func (e AmbiguousOverloadError) Error() string {
	sites := make([]string, len(e.Competing))
	for i, binding := range e.Competing {
		sites[i] = binding.Declaration.Site
	}

	return fmt.Sprintf("ambiguous call to %s: candidates declared at %s", e.Name, strings.Join(sites, ", "))
}

type FileError struct {
	File string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e FileError) Unwrap() error {
	return e.Err
}

// ErrorSet accumulates user-facing errors so one bad declaration or call
// site does not stop the rest of the pass.
type ErrorSet struct {
	Errs []error
}

func NewErrorSet() *ErrorSet {
	return new(ErrorSet)
}

func (e *ErrorSet) Add(err error) {
	var subErrs *ErrorSet
	if errors.As(err, &subErrs) {
		e.Errs = append(e.Errs, subErrs.Unwrap()...)
	} else {
		e.Errs = append(e.Errs, err)
	}
}

func (e ErrorSet) Error() string {
	return errors.Join(e.Errs...).Error()
}

func (e ErrorSet) Unwrap() []error {
	return e.Errs
}

func (e *ErrorSet) Defer(err error) error {
	if err != nil && e != err {
		e.Add(err)
	}

	if len(e.Errs) == 0 {
		return nil
	}

	return e
}

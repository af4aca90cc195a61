package resolver

import (
	"fmt"
	"strings"

	"github.com/calyx-lang/calyx/pkg/types"
)

type Mode int

const (
	ModeOrdered Mode = iota
	ModeUnordered
)

func (m Mode) String() string {
	switch m {
	case ModeOrdered:
		return "ordered"
	case ModeUnordered:
		return "unordered"
	default:
		return "<unknown>"
	}
}

// Declaration is one callable with a receiver-type list. Receivers holds the
// declared types in textual order; the last one is the explicit receiver
// supplied syntactically at the call, the rest are implicit. TypeParams are
// scoped to the declaration.
type Declaration struct {
	Name       string
	Receivers  []types.Type
	Mode       Mode
	TypeParams []string
	Site       string
}

func (d *Declaration) Explicit() types.Type {
	return d.Receivers[len(d.Receivers)-1]
}

func (d *Declaration) Implicit() []types.Type {
	return d.Receivers[:len(d.Receivers)-1]
}

func (d *Declaration) String() string {
	recvs := make([]string, len(d.Receivers))
	for i, recv := range d.Receivers {
		recvs[i] = recv.String()
	}

	return fmt.Sprintf("(%s).%s", strings.Join(recvs, ", "), d.Name)
}

// Validate checks the definition-time invariants: a declaration must have at
// least one receiver, no two receiver types may be identical after parameter
// substitution, and no two receiver types may share a simple name. Validation
// runs once when the declaration is parsed; the resolver assumes it passed.
func (d *Declaration) Validate() error {
	errs := NewErrorSet()

	if len(d.Receivers) == 0 {
		errs.Add(fmt.Errorf("%s: declaration of %s has no receiver types", d.Site, d.Name))
		return errs.Defer(nil)
	}

	seen := make(map[string]struct{}, len(d.Receivers))
	simple := make(map[string]struct{}, len(d.Receivers))
	for _, recv := range d.Receivers {
		key := receiverKey(recv)
		if _, ok := seen[key]; ok {
			errs.Add(DuplicateReceiverTypeError{
				Declaration: d,
				Type:        recv,
			})
		}
		seen[key] = struct{}{}

		if _, ok := simple[recv.SimpleName()]; ok {
			errs.Add(SimpleNameClashError{
				Declaration: d,
				SimpleName:  recv.SimpleName(),
			})
		}
		simple[recv.SimpleName()] = struct{}{}
	}

	return errs.Defer(nil)
}

// receiverKey canonicalizes a receiver type for the duplicate check. Type
// parameters are rewritten to positional placeholders by first occurrence,
// so two receivers that become identical under some substitution of the
// declaration's parameters produce the same key.
func receiverKey(t types.Type) string {
	var b strings.Builder
	params := make(map[string]int)
	writeKey(&b, t, params)
	return b.String()
}

func writeKey(b *strings.Builder, t types.Type, params map[string]int) {
	if t.IsParam() {
		idx, ok := params[t.Name()]
		if !ok {
			idx = len(params)
			params[t.Name()] = idx
		}
		fmt.Fprintf(b, "$%d", idx)
		return
	}

	b.WriteString(t.Name())
	if len(t.Args()) == 0 {
		return
	}

	b.WriteByte('[')
	for i, arg := range t.Args() {
		if i > 0 {
			b.WriteByte(',')
		}
		writeKey(b, arg, params)
	}
	b.WriteByte(']')
}

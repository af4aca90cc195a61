package types

import (
	"fmt"
	"strings"
)

// Type is an immutable nominal type: a name plus an ordered list of type
// arguments. A Type may instead be a type parameter, in which case it has a
// name but no arguments and unifies with any concrete type during a subtype
// query.
type Type struct {
	name  string
	args  []Type
	param bool
}

func New(name string, args ...Type) Type {
	return Type{
		name: name,
		args: args,
	}
}

func Param(name string) Type {
	return Type{
		name:  name,
		param: true,
	}
}

func (t Type) Name() string {
	return t.name
}

// SimpleName is the bare identifier used as a disambiguation key at call
// sites (this@Name). Type arguments are erased.
func (t Type) SimpleName() string {
	return t.name
}

func (t Type) Args() []Type {
	return t.args
}

func (t Type) IsParam() bool {
	return t.param
}

func (t Type) IsZero() bool {
	return t.name == ""
}

func (t Type) String() string {
	if len(t.args) == 0 {
		return t.name
	}

	args := make([]string, len(t.args))
	for i, arg := range t.args {
		args[i] = arg.String()
	}

	return fmt.Sprintf("%s[%s]", t.name, strings.Join(args, ", "))
}

func Equal(t1, t2 Type) bool {
	if t1.param != t2.param || t1.name != t2.name {
		return false
	}

	if len(t1.args) != len(t2.args) {
		return false
	}

	for i := range t1.args {
		if !Equal(t1.args[i], t2.args[i]) {
			return false
		}
	}

	return true
}

// Substitute replaces every type parameter in t that has a binding with the
// bound type. Parameters without a binding are left in place.
func Substitute(t Type, bindings map[string]Type) Type {
	if t.param {
		if bound, ok := bindings[t.name]; ok {
			return bound
		}

		return t
	}

	if len(t.args) == 0 {
		return t
	}

	args := make([]Type, len(t.args))
	for i, arg := range t.args {
		args[i] = Substitute(arg, bindings)
	}

	return Type{
		name: t.name,
		args: args,
	}
}

// Subtyper is the predicate the resolver consumes. Implementations must be
// safe for concurrent use by read-only callers.
type Subtyper interface {
	IsSubtype(a, b Type) bool
}

package resolver

import (
	"fmt"
	"strings"
)

// BoundCall is the synthetic positional invocation constructed from a
// winning binding: the bound context values in declared receiver order.
// Inside the callable body each receiver is addressable by its simple type
// name (this@Name); the last declared receiver is the default this.
type BoundCall struct {
	Binding *Binding
	Args    []ContextFrame

	byName map[string]int
}

func NewBoundCall(binding *Binding) *BoundCall {
	byName := make(map[string]int, len(binding.Frames))
	for i, recv := range binding.Declaration.Receivers {
		byName[recv.SimpleName()] = i
	}

	return &BoundCall{
		Binding: binding,
		Args:    binding.Frames,
		byName:  byName,
	}
}

// This returns the default receiver: the innermost/explicit declared one.
func (c *BoundCall) This() ContextFrame {
	return c.Args[len(c.Args)-1]
}

// ThisAt resolves a this@name reference to its bound frame.
func (c *BoundCall) ThisAt(name string) (ContextFrame, bool) {
	i, ok := c.byName[name]
	if !ok {
		return ContextFrame{}, false
	}

	return c.Args[i], true
}

func (c *BoundCall) String() string {
	args := make([]string, len(c.Args))
	for i, arg := range c.Args {
		args[i] = arg.String()
	}

	return fmt.Sprintf("%s(%s)", c.Binding.Declaration.Name, strings.Join(args, ", "))
}

package resolver_test

import (
	"testing"

	"github.com/neilotoole/slogt"
	"github.com/stretchr/testify/require"

	"github.com/calyx-lang/calyx/pkg/resolver"
	"github.com/calyx-lang/calyx/pkg/types"
)

func newTestHierarchy(t *testing.T) *types.Hierarchy {
	t.Helper()

	r := require.New(t)
	h := types.NewHierarchy()

	r.NoError(h.Declare("Any", nil))
	r.NoError(h.Declare("Widget", nil, types.New("Any")))
	r.NoError(h.Declare("Session", nil, types.New("Any")))
	r.NoError(h.Declare("AdminSession", nil, types.New("Session")))
	r.NoError(h.Declare("Shape", nil, types.New("Any")))
	r.NoError(h.Declare("Circle", nil, types.New("Shape")))
	r.NoError(h.Declare("A", nil, types.New("Any")))
	r.NoError(h.Declare("B", nil, types.New("Any")))
	r.NoError(h.Declare("Int", nil, types.New("Any")))
	r.NoError(h.Validate())

	return h
}

func newTestResolver(t *testing.T) *resolver.Resolver {
	t.Helper()

	return resolver.New(slogt.New(t), newTestHierarchy(t))
}

func frame(name string, value any) resolver.ContextFrame {
	return resolver.ContextFrame{
		Type:  types.New(name),
		Value: value,
	}
}

func stackOf(frames ...resolver.ContextFrame) *resolver.ReceiverStack {
	return resolver.NewReceiverStack(frames...)
}

func ordered(name string, receivers ...string) *resolver.Declaration {
	return declOf(name, resolver.ModeOrdered, receivers...)
}

func unordered(name string, receivers ...string) *resolver.Declaration {
	return declOf(name, resolver.ModeUnordered, receivers...)
}

func declOf(name string, mode resolver.Mode, receivers ...string) *resolver.Declaration {
	recvs := make([]types.Type, len(receivers))
	for i, recv := range receivers {
		recvs[i] = types.New(recv)
	}

	return &resolver.Declaration{
		Name:      name,
		Receivers: recvs,
		Mode:      mode,
		Site:      "test.cx:1",
	}
}

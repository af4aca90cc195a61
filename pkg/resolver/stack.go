package resolver

import (
	"fmt"

	"github.com/calyx-lang/calyx/pkg/types"
)

// ContextFrame is one ambient receiver context: the type it was entered at
// and an opaque reference to the value occupying it.
type ContextFrame struct {
	Type  types.Type
	Value any
}

func (f ContextFrame) String() string {
	if f.Value == nil {
		return f.Type.String()
	}

	return fmt.Sprintf("%v: %s", f.Value, f.Type)
}

// FrameHandle identifies a pushed frame. Pop must receive handles in strict
// reverse order of Push.
type FrameHandle int

// ReceiverStack is the ordered tower of ambient contexts visible at a call
// site, outermost first. Mutation is single-writer and stack-disciplined:
// it follows the sequential traversal of lexical scope entry and exit within
// one compilation context. Give each concurrent traversal its own stack.
type ReceiverStack struct {
	frames []ContextFrame
}

func NewReceiverStack(bottom ...ContextFrame) *ReceiverStack {
	return &ReceiverStack{
		frames: bottom,
	}
}

func (s *ReceiverStack) Push(typ types.Type, value any) FrameHandle {
	s.frames = append(s.frames, ContextFrame{
		Type:  typ,
		Value: value,
	})

	return FrameHandle(len(s.frames) - 1)
}

// Pop removes the innermost frame. Popping with a handle that is not the
// innermost frame's is a bug in the traversal driver, not in user code, and
// aborts the resolution pass.
func (s *ReceiverStack) Pop(handle FrameHandle) {
	if int(handle) != len(s.frames)-1 {
		panic(fmt.Sprintf("receiver stack discipline violation: pop of frame %d with %d frames on the stack", handle, len(s.frames)))
	}

	s.frames = s.frames[:len(s.frames)-1]
}

// WithFrame pushes a frame, runs fn, and pops on every exit path.
func (s *ReceiverStack) WithFrame(typ types.Type, value any, fn func() error) error {
	handle := s.Push(typ, value)
	defer s.Pop(handle)

	return fn()
}

func (s *ReceiverStack) Len() int {
	return len(s.frames)
}

// Frames returns a snapshot of the stack, outermost first. The snapshot is
// not aliased by later pushes and pops.
func (s *ReceiverStack) Frames() []ContextFrame {
	frames := make([]ContextFrame, len(s.frames))
	copy(frames, s.frames)
	return frames
}

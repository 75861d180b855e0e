package stack

import (
	"fmt"

	"github.com/cbodonnell/melange/pkg/kinematic"
)

// Stack is the LIFO list of pending actions. Only the top element may be
// inspected or mutated; later-pushed actions always complete before earlier
// ones resume.
type Stack struct {
	actions []Action
}

func New() *Stack {
	return &Stack{}
}

// Push places an action on top of the stack.
func (s *Stack) Push(action Action) {
	s.actions = append(s.actions, action)
}

// Pop removes and returns the top action. Popping an empty stack is not an
// error; it is the gate condition for the phase machine to advance.
func (s *Stack) Pop() (Action, bool) {
	if len(s.actions) == 0 {
		return nil, false
	}
	action := s.actions[len(s.actions)-1]
	s.actions = s.actions[:len(s.actions)-1]
	return action, true
}

// Peek returns the top action without removing it.
func (s *Stack) Peek() (Action, bool) {
	if len(s.actions) == 0 {
		return nil, false
	}
	return s.actions[len(s.actions)-1], true
}

// ReplaceTop swaps the top action for another, used when a Choice resolves
// to one of its options.
func (s *Stack) ReplaceTop(action Action) error {
	if len(s.actions) == 0 {
		return fmt.Errorf("stack is empty")
	}
	s.actions[len(s.actions)-1] = action
	return nil
}

func (s *Stack) Len() int {
	return len(s.actions)
}

func (s *Stack) IsEmpty() bool {
	return len(s.actions) == 0
}

// Advance evaluates the top action once for a tick of dt seconds. The
// camera transform is read and written by CameraMotion actions.
//
// CameraMotion is advanced in place: the first frame captures the current
// transform as the motion source without consuming time, subsequent frames
// interpolate with an eased parameter and decrement the remaining time, and
// a motion whose time has run out snaps to its destination and pops. A
// motion whose destination already equals the current transform pops
// immediately.
//
// Every other variant is popped unconditionally: the stack treats actions
// it does not specially interpret as instantly satisfied, and the input
// collaborator is expected to intercept blocking actions before the
// generic pop runs. Simultaneous batches expand onto the stack instead.
func (s *Stack) Advance(dt float64, camera *kinematic.Transform) {
	top, ok := s.Peek()
	if !ok {
		return
	}

	switch action := top.(type) {
	case *CameraMotion:
		s.advanceCameraMotion(action, dt, camera)
	case *Simultaneous:
		s.Pop()
		for i := len(action.Actions) - 1; i >= 0; i-- {
			s.Push(action.Actions[i])
		}
	default:
		s.Pop()
	}
}

func (s *Stack) advanceCameraMotion(motion *CameraMotion, dt float64, camera *kinematic.Transform) {
	if motion.RemainingTime <= 0 {
		*camera = motion.Dest
		s.Pop()
		return
	}

	if motion.Src == nil {
		if camera.Equal(motion.Dest) {
			// Zero-distance motion, nothing to animate.
			s.Pop()
			return
		}
		src := *camera
		motion.Src = &src
		return
	}

	t := kinematic.EaseInOut(motion.TotalTime-motion.RemainingTime, motion.TotalTime)
	*camera = motion.Src.Lerp(motion.Dest, t)
	motion.RemainingTime -= dt
}

package stack

import (
	"testing"

	"github.com/cbodonnell/melange/pkg/kinematic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStack_LIFO(t *testing.T) {
	s := New()
	assert.True(t, s.IsEmpty())

	first := &ButtonPress{}
	second := &PickTraitors{}
	s.Push(first)
	s.Push(second)
	assert.Equal(t, 2, s.Len())

	top, ok := s.Peek()
	require.True(t, ok)
	assert.Same(t, Action(second), top)

	popped, ok := s.Pop()
	require.True(t, ok)
	assert.Same(t, Action(second), popped)

	popped, ok = s.Pop()
	require.True(t, ok)
	assert.Same(t, Action(first), popped)

	_, ok = s.Pop()
	assert.False(t, ok)
}

func TestStack_ReplaceTop(t *testing.T) {
	s := New()
	err := s.ReplaceTop(&ButtonPress{})
	assert.Error(t, err)

	s.Push(&Choice{Player: 0, Options: []Action{&ButtonPress{}}})
	require.NoError(t, s.ReplaceTop(&ButtonPress{}))

	top, ok := s.Peek()
	require.True(t, ok)
	assert.IsType(t, &ButtonPress{}, top)
	assert.Equal(t, 1, s.Len())
}

func TestStack_Advance_PopsGenericActions(t *testing.T) {
	tests := []struct {
		name   string
		action Action
	}{
		{name: "button press", action: &ButtonPress{}},
		{name: "pick traitors", action: &PickTraitors{}},
		{name: "make prediction", action: &MakePrediction{Player: 1}},
		{name: "place free troops", action: &PlaceFreeTroops{Player: 2, Num: 10}},
		{name: "place troops", action: &PlaceTroops{Player: 0, Num: 3}},
		{name: "play prompt", action: &PlayPrompt{Player: 1, Card: "Family Atomics"}},
		{name: "choice", action: &Choice{Player: 0, Options: []Action{&ButtonPress{}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.Push(tt.action)
			camera := kinematic.Transform{}
			s.Advance(0.1, &camera)
			assert.True(t, s.IsEmpty())
		})
	}
}

func TestStack_Advance_SimultaneousExpandsInOrder(t *testing.T) {
	s := New()
	a := &MakePrediction{Player: 0}
	b := &PickTraitors{}
	c := &ButtonPress{}
	s.Push(&Simultaneous{Actions: []Action{a, b, c}})

	camera := kinematic.Transform{}
	s.Advance(0.1, &camera)
	require.Equal(t, 3, s.Len())

	// The first element of the batch resolves first.
	top, ok := s.Pop()
	require.True(t, ok)
	assert.Same(t, Action(a), top)
	top, ok = s.Pop()
	require.True(t, ok)
	assert.Same(t, Action(b), top)
	top, ok = s.Pop()
	require.True(t, ok)
	assert.Same(t, Action(c), top)
}

func TestStack_Advance_CameraMotion(t *testing.T) {
	dest := kinematic.Transform{
		Position: kinematic.Vector3{X: 10, Y: 0, Z: 0},
	}

	t.Run("first frame captures source without consuming time", func(t *testing.T) {
		s := New()
		motion := NewCameraMotion(dest, 0.5)
		s.Push(motion)

		camera := kinematic.Transform{}
		s.Advance(0.1, &camera)

		require.NotNil(t, motion.Src)
		assert.Equal(t, kinematic.Transform{}, *motion.Src)
		assert.Equal(t, 0.5, motion.RemainingTime)
		assert.Equal(t, kinematic.Transform{}, camera)
		assert.Equal(t, 1, s.Len())
	})

	t.Run("zero distance motion pops immediately", func(t *testing.T) {
		s := New()
		s.Push(NewCameraMotion(dest, 0.5))

		camera := dest
		s.Advance(0.1, &camera)
		assert.True(t, s.IsEmpty())
		assert.Equal(t, dest, camera)
	})

	t.Run("motion converges and snaps to destination", func(t *testing.T) {
		s := New()
		s.Push(NewCameraMotion(dest, 0.5))

		camera := kinematic.Transform{}
		prev := camera.Position.X
		for i := 0; i < 100 && !s.IsEmpty(); i++ {
			s.Advance(0.1, &camera)
			// Eased interpolation along a straight line never overshoots
			// or backtracks.
			assert.GreaterOrEqual(t, camera.Position.X, prev)
			assert.LessOrEqual(t, camera.Position.X, dest.Position.X)
			prev = camera.Position.X
		}
		assert.True(t, s.IsEmpty())
		assert.Equal(t, dest, camera)
	})

	t.Run("motion suspends actions below it", func(t *testing.T) {
		s := New()
		below := &ButtonPress{}
		s.Push(below)
		s.Push(NewCameraMotion(dest, 0.5))

		camera := kinematic.Transform{}
		s.Advance(0.1, &camera)
		assert.Equal(t, 2, s.Len())
	})
}

func TestEaseInOut_Midpoint(t *testing.T) {
	assert.InDelta(t, 0.0, kinematic.EaseInOut(0, 1), 1e-9)
	assert.InDelta(t, 0.5, kinematic.EaseInOut(0.5, 1), 1e-9)
	assert.InDelta(t, 1.0, kinematic.EaseInOut(1, 1), 1e-9)

	// The eased curve starts and ends slower than linear time.
	assert.Less(t, kinematic.EaseInOut(0.1, 1), 0.1)
	assert.Greater(t, kinematic.EaseInOut(0.9, 1), 0.9)
}

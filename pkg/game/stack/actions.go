// Package stack implements the LIFO scheduler of pending game actions.
// The stack top is always the currently active unit of work; the phase
// machine only advances once the stack drains.
package stack

import (
	"github.com/cbodonnell/melange/pkg/kinematic"
)

// Action is a schedulable unit of game work. Blocking variants are resolved
// by an input collaborator; CameraMotion is resolved by elapsed time.
type Action interface {
	isAction()
}

// Choice is a pending decision with an enumerated set of sub-actions. The
// input collaborator resolves it by replacing it with one of its options.
type Choice struct {
	Player  int
	Options []Action
}

// Simultaneous is a batch of actions that must all complete before play
// continues. Advancing it expands the batch onto the stack.
type Simultaneous struct {
	Actions []Action
}

// MakePrediction asks the Bene Gesserit player for a win prediction.
type MakePrediction struct {
	Player int
}

// PlaceFreeTroops asks a player to place their free starting troops.
type PlaceFreeTroops struct {
	Player    int
	Num       int
	Locations []string
}

// PlaceTroops asks a player to place troops from reserve.
type PlaceTroops struct {
	Player    int
	Num       int
	Locations []string
}

// PickTraitors asks each player to keep one of their dealt traitor cards.
type PickTraitors struct{}

// PlayPrompt asks a player whether to play the named treachery card.
type PlayPrompt struct {
	Player int
	Card   string
}

// ButtonPress waits for an acknowledgement press.
type ButtonPress struct{}

// CameraMotion is a time-suspending action. It carries its own resumable
// progress: Src is captured on the first advanced frame and RemainingTime
// counts down across ticks until the motion terminates.
type CameraMotion struct {
	Src           *kinematic.Transform
	Dest          kinematic.Transform
	RemainingTime float64
	TotalTime     float64
}

// NewCameraMotion schedules a motion toward dest taking total seconds.
func NewCameraMotion(dest kinematic.Transform, total float64) *CameraMotion {
	return &CameraMotion{
		Dest:          dest,
		RemainingTime: total,
		TotalTime:     total,
	}
}

func (*Choice) isAction()          {}
func (*Simultaneous) isAction()    {}
func (*MakePrediction) isAction()  {}
func (*PlaceFreeTroops) isAction() {}
func (*PlaceTroops) isAction()     {}
func (*PickTraitors) isAction()    {}
func (*PlayPrompt) isAction()      {}
func (*ButtonPress) isAction()     {}
func (*CameraMotion) isAction()    {}

// Package session holds the client-local screen state machine and the
// reducer that applies inbound wire messages to it.
package session

import (
	"fmt"

	"github.com/cbodonnell/melange/pkg/messages"
)

// Screen is the client-local UI/session state.
type Screen int

const (
	ScreenMainMenu Screen = iota
	ScreenServer
	ScreenJoin
	ScreenLoading
	ScreenHostingGame
	ScreenJoinedGame
)

func (s Screen) String() string {
	switch s {
	case ScreenMainMenu:
		return "Main Menu"
	case ScreenServer:
		return "Server"
	case ScreenJoin:
		return "Join"
	case ScreenLoading:
		return "Loading"
	case ScreenHostingGame:
		return "Hosting Game"
	case ScreenJoinedGame:
		return "Joined Game"
	}
	return "Unknown"
}

// Transition records one applied screen change.
type Transition struct {
	From Screen
	To   Screen
}

// Session is one endpoint's screen machine plus its cached roster.
// Transitions are queued during the state-change stage and applied by
// Flush during the response stage, so a transition and its side effects
// never interleave within one tick.
type Session struct {
	screen  Screen
	next    *Screen
	players []string
}

// New creates a session in the main menu.
func New() *Session {
	return &Session{
		screen: ScreenMainMenu,
	}
}

// Screen returns the current screen.
func (s *Session) Screen() Screen {
	return s.screen
}

// Players returns the cached roster of display names.
func (s *Session) Players() []string {
	return append([]string(nil), s.players...)
}

// SetNext queues a screen transition. It fails if a transition is already
// queued; use OverwriteNext to override an in-flight transition.
func (s *Session) SetNext(screen Screen) error {
	if s.next != nil {
		return fmt.Errorf("transition to %s already queued", *s.next)
	}
	s.next = &screen
	return nil
}

// OverwriteNext queues a screen transition, discarding any queued one.
func (s *Session) OverwriteNext(screen Screen) {
	s.next = &screen
}

// Flush applies the queued transition, if any. Callers run enter/exit side
// effects on the returned transition during the response stage.
func (s *Session) Flush() (Transition, bool) {
	if s.next == nil {
		return Transition{}, false
	}
	transition := Transition{From: s.screen, To: *s.next}
	s.screen = *s.next
	s.next = nil
	return transition, true
}

// Apply reduces one inbound message into the session. Messages arrive
// FIFO and each is applied exactly once.
func (s *Session) Apply(msg *messages.Message) error {
	switch msg.Type {
	case messages.MessageTypeLoad:
		s.OverwriteNext(ScreenLoading)
	case messages.MessageTypeServerInfo:
		if msg.ServerInfo == nil {
			return fmt.Errorf("server info message has no roster")
		}
		s.players = append([]string(nil), msg.ServerInfo.Players...)
	case messages.MessageTypeLoaded:
		// Host-side only; the lobby tracks readiness before the reducer.
	default:
		return fmt.Errorf("unhandled message type: %s", msg.Type)
	}
	return nil
}

// Reset returns the session to the main menu and clears the roster. Called
// when leaving a hosted or joined game.
func (s *Session) Reset() {
	s.screen = ScreenMainMenu
	s.next = nil
	s.players = nil
}

package state

import (
	"context"

	"github.com/cbodonnell/melange/pkg/game/types"
)

// Status is a read-only view of a game session published once per tick.
// Consumers (the API server, the snapshot worker) never see the live
// simulation objects, only copies.
type Status struct {
	SessionID string           `json:"sessionId"`
	Screen    string           `json:"screen"`
	Phase     string           `json:"phase,omitempty"`
	SubPhase  string           `json:"subPhase,omitempty"`
	Turn      int              `json:"turn"`
	Players   []string         `json:"players"`
	GameState *types.GameState `json:"gameState,omitempty"`
}

// Copy returns a deep copy of the status.
func (s *Status) Copy() *Status {
	c := &Status{
		SessionID: s.SessionID,
		Screen:    s.Screen,
		Phase:     s.Phase,
		SubPhase:  s.SubPhase,
		Turn:      s.Turn,
		Players:   make([]string, len(s.Players)),
	}
	copy(c.Players, s.Players)
	if s.GameState != nil {
		c.GameState = s.GameState.Copy()
	}
	return c
}

// StateManager is an interface for publishing and reading session state.
type StateManager interface {
	// Get returns the last published status, or nil if nothing has been
	// published yet.
	Get(ctx context.Context) (*Status, error)
	// Set publishes a new status.
	Set(ctx context.Context, status *Status) error
}

package types

// Storm is the shared storm marker position. Sector wraps in [0, 18).
type Storm struct {
	Sector int `json:"sector"`
}

// GameState is the authoritative state of one game session, passed
// explicitly into each phase-advance call. It is owned by the game loop
// goroutine; no other goroutine mutates it.
type GameState struct {
	// Timestamp is the time at which the game state was last advanced
	Timestamp int64 `json:"timestamp"`
	// Turn is the current game turn. Turn 0 is setup.
	Turn int `json:"turn"`
	// Players holds the player registry in play order
	Players []*PlayerState `json:"players"`
	// ActivePlayer indexes Players for turn rotation
	ActivePlayer int `json:"activePlayer"`
	// Storm is the shared storm marker
	Storm Storm `json:"storm"`
}

func NewGameState() *GameState {
	return &GameState{}
}

// FactionsInPlay returns the factions of the registered players in play order.
func (g *GameState) FactionsInPlay() []Faction {
	factions := make([]Faction, len(g.Players))
	for i, p := range g.Players {
		factions[i] = p.Faction
	}
	return factions
}

// PlayerByFaction returns the player holding the given faction, or nil.
func (g *GameState) PlayerByFaction(faction Faction) (int, *PlayerState) {
	for i, p := range g.Players {
		if p.Faction == faction {
			return i, p
		}
	}
	return -1, nil
}

// AdvanceActivePlayer rotates the active player through the play order.
func (g *GameState) AdvanceActivePlayer() {
	if len(g.Players) == 0 {
		return
	}
	g.ActivePlayer = (g.ActivePlayer + 1) % len(g.Players)
}

func (g *GameState) Copy() *GameState {
	newGameState := &GameState{
		Timestamp:    g.Timestamp,
		Turn:         g.Turn,
		ActivePlayer: g.ActivePlayer,
		Storm:        g.Storm,
	}
	for _, player := range g.Players {
		newGameState.Players = append(newGameState.Players, player.Copy())
	}
	return newGameState
}

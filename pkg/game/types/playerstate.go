package types

// PlayerState is one entry in the player registry. Created once per faction
// at game start and mutated by phase logic for the rest of the session.
type PlayerState struct {
	Faction        Faction         `json:"faction"`
	Leaders        []Leader        `json:"leaders"`
	TraitorCards   []TraitorCard   `json:"traitorCards"`
	TreacheryCards []TreacheryCard `json:"treacheryCards"`
	Spice          SpiceHoldings   `json:"spice"`
	TotalSpice     int             `json:"totalSpice"`
	ReserveTroops  int             `json:"reserveTroops"`
	// Prediction holds the Bene Gesserit win prediction once made.
	Prediction *Prediction `json:"prediction,omitempty"`
}

// Prediction is the Bene Gesserit guess of which faction wins on which turn.
type Prediction struct {
	Faction *Faction `json:"faction,omitempty"`
	Turn    *int     `json:"turn,omitempty"`
}

// NewPlayerState creates a player for the given faction, owning the subset
// of leaders belonging to that faction.
func NewPlayerState(faction Faction, leaders []Leader) *PlayerState {
	p := &PlayerState{
		Faction: faction,
	}
	for _, leader := range leaders {
		if leader.Faction == faction {
			p.Leaders = append(p.Leaders, leader)
		}
	}
	if faction == FactionBeneGesserit {
		p.Prediction = &Prediction{}
	}
	return p
}

// AddSpice credits the player with n spice, keeping the itemized
// denominations in step with the aggregate total.
func (p *PlayerState) AddSpice(n int) {
	p.TotalSpice += n
	p.Spice = DivideSpice(p.TotalSpice)
}

func (p *PlayerState) Copy() *PlayerState {
	copied := *p
	copied.Leaders = append([]Leader(nil), p.Leaders...)
	copied.TraitorCards = append([]TraitorCard(nil), p.TraitorCards...)
	copied.TreacheryCards = append([]TreacheryCard(nil), p.TreacheryCards...)
	if p.Prediction != nil {
		prediction := *p.Prediction
		copied.Prediction = &prediction
	}
	return &copied
}

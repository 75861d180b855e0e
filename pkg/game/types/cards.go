package types

// Leader is a leader token belonging to a faction.
type Leader struct {
	Name     string  `json:"name" yaml:"name"`
	Faction  Faction `json:"faction" yaml:"-"`
	Strength int     `json:"strength" yaml:"strength"`
}

// Location is a named board territory spanning one or more storm sectors.
type Location struct {
	Name    string `json:"name" yaml:"name"`
	Sectors []int  `json:"sectors" yaml:"sectors"`
	// Spice is true for territories where spice blows can land.
	Spice bool `json:"spice" yaml:"spice"`
}

// TreacheryCard is a card in the treachery deck.
type TreacheryCard struct {
	Name string `json:"name" yaml:"name"`
	Kind string `json:"kind" yaml:"kind"`
}

// TraitorCard names a leader that may betray its owner.
type TraitorCard struct {
	Leader Leader `json:"leader"`
}

// SpiceCard is a card in the spice deck. Shai-Hulud cards have no location.
type SpiceCard struct {
	Name     string `json:"name" yaml:"name"`
	Location string `json:"location,omitempty" yaml:"location,omitempty"`
	Amount   int    `json:"amount,omitempty" yaml:"amount,omitempty"`
}

// StormCard moves the storm by Val sectors.
type StormCard struct {
	Val int `json:"val"`
}

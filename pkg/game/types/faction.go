package types

import "fmt"

// Faction is one of the six fixed player identities.
type Faction int

const (
	FactionAtreides Faction = iota
	FactionBeneGesserit
	FactionEmperor
	FactionFremen
	FactionHarkonnen
	FactionSpacingGuild
)

// Factions lists every faction in a stable order.
var Factions = []Faction{
	FactionAtreides,
	FactionBeneGesserit,
	FactionEmperor,
	FactionFremen,
	FactionHarkonnen,
	FactionSpacingGuild,
}

func (f Faction) String() string {
	switch f {
	case FactionAtreides:
		return "Atreides"
	case FactionBeneGesserit:
		return "Bene Gesserit"
	case FactionEmperor:
		return "Emperor"
	case FactionFremen:
		return "Fremen"
	case FactionHarkonnen:
		return "Harkonnen"
	case FactionSpacingGuild:
		return "Spacing Guild"
	}
	return "Unknown"
}

// Code returns the short faction code used by rule data and asset names.
func (f Faction) Code() string {
	switch f {
	case FactionAtreides:
		return "at"
	case FactionBeneGesserit:
		return "bg"
	case FactionEmperor:
		return "em"
	case FactionFremen:
		return "fr"
	case FactionHarkonnen:
		return "hk"
	case FactionSpacingGuild:
		return "sg"
	}
	return ""
}

// ParseFaction parses a short faction code.
func ParseFaction(code string) (Faction, error) {
	for _, f := range Factions {
		if f.Code() == code {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown faction code: %s", code)
}

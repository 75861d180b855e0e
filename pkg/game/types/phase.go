package types

// Phase is the outer level of the turn state machine.
type Phase int

const (
	PhaseSetup Phase = iota
	PhaseStorm
	PhaseSpiceBlow
	PhaseNexus
	PhaseBidding
	PhaseRevival
	PhaseMovement
	PhaseBattle
	PhaseCollection
	PhaseControl
	PhaseEndGame
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "Setup"
	case PhaseStorm:
		return "Storm"
	case PhaseSpiceBlow:
		return "Spice Blow"
	case PhaseNexus:
		return "Nexus"
	case PhaseBidding:
		return "Bidding"
	case PhaseRevival:
		return "Revival"
	case PhaseMovement:
		return "Movement"
	case PhaseBattle:
		return "Battle"
	case PhaseCollection:
		return "Collection"
	case PhaseControl:
		return "Control"
	case PhaseEndGame:
		return "End Game"
	}
	return "Unknown"
}

// SubPhase is the inner level of the turn state machine. Phases without
// internal structure use SubPhaseNone.
type SubPhase int

const (
	SubPhaseNone SubPhase = iota

	// Setup sub-phases, in order.
	SubPhaseChooseFactions
	SubPhasePrediction
	SubPhaseAtStart
	SubPhaseDealTraitors
	SubPhasePickTraitors
	SubPhaseDealTreachery

	// Storm sub-phases, in order.
	SubPhaseReveal
	SubPhaseWeatherControl
	SubPhaseFamilyAtomics
	SubPhaseMoveStorm
)

func (s SubPhase) String() string {
	switch s {
	case SubPhaseNone:
		return "None"
	case SubPhaseChooseFactions:
		return "Choose Factions"
	case SubPhasePrediction:
		return "Prediction"
	case SubPhaseAtStart:
		return "At Start"
	case SubPhaseDealTraitors:
		return "Deal Traitors"
	case SubPhasePickTraitors:
		return "Pick Traitors"
	case SubPhaseDealTreachery:
		return "Deal Treachery"
	case SubPhaseReveal:
		return "Reveal"
	case SubPhaseWeatherControl:
		return "Weather Control"
	case SubPhaseFamilyAtomics:
		return "Family Atomics"
	case SubPhaseMoveStorm:
		return "Move Storm"
	}
	return "Unknown"
}

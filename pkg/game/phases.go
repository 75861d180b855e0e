package game

import (
	"fmt"
	"math/rand"

	"github.com/cbodonnell/melange/pkg/game/constants"
	"github.com/cbodonnell/melange/pkg/game/data"
	"github.com/cbodonnell/melange/pkg/game/decks"
	"github.com/cbodonnell/melange/pkg/game/stack"
	"github.com/cbodonnell/melange/pkg/game/types"
	"github.com/cbodonnell/melange/pkg/log"
)

// Presenter receives presentation side effects from phase transitions.
// The rendering collaborator implements it; the engine only flips flags.
type Presenter interface {
	// SetFactionVisibility marks a faction's owned pieces visible to
	// their owner only.
	SetFactionVisibility(faction types.Faction, visible bool)
}

// NopPresenter ignores all presentation side effects.
type NopPresenter struct{}

func (NopPresenter) SetFactionVisibility(types.Faction, bool) {}

// StormEffects applies the board effects of storm movement: casualties,
// spice removal along the storm path, first-player reassignment. The rules
// for these are an extension point, not part of the core engine.
type StormEffects interface {
	Apply(oldSector int, newSector int) error
}

// NopStormEffects moves the storm marker with no board effects.
type NopStormEffects struct{}

func (NopStormEffects) Apply(int, int) error { return nil }

// PhaseMachine drives the turn structure. It advances only when the action
// stack is empty; sub-phase transitions are strictly forward.
type PhaseMachine struct {
	phase    types.Phase
	subPhase types.SubPhase

	ruleData     *data.RuleData
	rng          *rand.Rand
	presenter    Presenter
	stormEffects StormEffects

	// requested guards blocking sub-phases against pushing their pending
	// decisions again on re-entry after the first push drains.
	requested bool
	// promptCount tracks how many players have been prompted in the
	// current prompt rotation.
	promptCount int
	// placementScheduled marks players whose initial placement (and spice
	// credit) has been scheduled, so out-of-turn scheduling in the
	// Bene Gesserit branch never double-credits.
	placementScheduled []bool
	placementsDone     int
}

type NewPhaseMachineOptions struct {
	RuleData     *data.RuleData
	Rand         *rand.Rand
	Presenter    Presenter
	StormEffects StormEffects
}

func NewPhaseMachine(opts NewPhaseMachineOptions) *PhaseMachine {
	presenter := opts.Presenter
	if presenter == nil {
		presenter = NopPresenter{}
	}
	stormEffects := opts.StormEffects
	if stormEffects == nil {
		stormEffects = NopStormEffects{}
	}
	return &PhaseMachine{
		phase:        types.PhaseSetup,
		subPhase:     types.SubPhaseChooseFactions,
		ruleData:     opts.RuleData,
		rng:          opts.Rand,
		presenter:    presenter,
		stormEffects: stormEffects,
	}
}

// Phase returns the current phase and sub-phase.
func (pm *PhaseMachine) Phase() (types.Phase, types.SubPhase) {
	return pm.phase, pm.subPhase
}

// Advance runs one dispatch of the phase machine. The caller must only
// invoke it when the action stack is empty.
func (pm *PhaseMachine) Advance(gs *types.GameState, pools *decks.Pools, st *stack.Stack) error {
	if !st.IsEmpty() {
		return fmt.Errorf("phase machine advanced with %d pending actions", st.Len())
	}
	if len(gs.Players) == 0 {
		return fmt.Errorf("phase machine advanced with no players registered")
	}
	if gs.ActivePlayer < 0 || gs.ActivePlayer >= len(gs.Players) {
		return fmt.Errorf("active player %d out of range for %d players", gs.ActivePlayer, len(gs.Players))
	}

	switch pm.phase {
	case types.PhaseSetup:
		return pm.advanceSetup(gs, pools, st)
	case types.PhaseStorm:
		return pm.advanceStorm(gs, pools, st)
	case types.PhaseEndGame:
		// Terminal.
		return nil
	default:
		return pm.advanceStub(gs, st)
	}
}

func (pm *PhaseMachine) advanceSetup(gs *types.GameState, pools *decks.Pools, st *stack.Stack) error {
	switch pm.subPhase {
	case types.SubPhaseChooseFactions:
		player := gs.Players[gs.ActivePlayer]
		pm.presenter.SetFactionVisibility(player.Faction, true)
		pm.enterSubPhase(types.SubPhasePrediction)
	case types.SubPhasePrediction:
		if !pm.requested {
			pm.requested = true
			pushed := false
			for i, player := range gs.Players {
				if player.Faction == types.FactionBeneGesserit {
					st.Push(&stack.MakePrediction{Player: i})
					pushed = true
				}
			}
			if pushed {
				return nil
			}
		}
		pm.enterSubPhase(types.SubPhaseAtStart)
	case types.SubPhaseAtStart:
		if pm.placementScheduled == nil {
			pm.placementScheduled = make([]bool, len(gs.Players))
		}
		if pm.placementsDone >= len(gs.Players) {
			pm.enterSubPhase(types.SubPhaseDealTraitors)
			return nil
		}
		return pm.resolveInitialPlacement(gs, st)
	case types.SubPhaseDealTraitors:
		need := constants.TraitorDealRounds * len(gs.Players)
		if pools.Traitor.Len() < need {
			return fmt.Errorf("traitor deck has %d cards, need %d", pools.Traitor.Len(), need)
		}
		for round := 0; round < constants.TraitorDealRounds; round++ {
			for _, player := range gs.Players {
				card, err := pools.Traitor.Draw()
				if err != nil {
					return fmt.Errorf("failed to deal traitor card: %v", err)
				}
				player.TraitorCards = append(player.TraitorCards, card)
			}
		}
		pm.enterSubPhase(types.SubPhasePickTraitors)
	case types.SubPhasePickTraitors:
		if !pm.requested {
			pm.requested = true
			st.Push(&stack.PickTraitors{})
			return nil
		}
		pm.enterSubPhase(types.SubPhaseDealTreachery)
	case types.SubPhaseDealTreachery:
		for _, player := range gs.Players {
			count := constants.TreacheryDealCount
			if player.Faction == types.FactionHarkonnen {
				count = constants.HarkonnenTreacheryDealCount
			}
			for i := 0; i < count; i++ {
				card, err := pools.Treachery.Draw()
				if err != nil {
					return fmt.Errorf("failed to deal treachery card: %v", err)
				}
				player.TreacheryCards = append(player.TreacheryCards, card)
			}
		}
		pm.enterPhase(gs, st, types.PhaseStorm, types.SubPhaseReveal)
	default:
		return fmt.Errorf("unhandled setup sub-phase: %s", pm.subPhase)
	}
	return nil
}

func (pm *PhaseMachine) advanceStorm(gs *types.GameState, pools *decks.Pools, st *stack.Stack) error {
	switch pm.subPhase {
	case types.SubPhaseReveal:
		// No weather plays on the first turn.
		if gs.Turn == 0 {
			pm.enterSubPhase(types.SubPhaseMoveStorm)
		} else {
			pm.enterSubPhase(types.SubPhaseWeatherControl)
		}
	case types.SubPhaseWeatherControl:
		pm.promptCardPlay(gs, st, "Weather Control", types.SubPhaseFamilyAtomics)
	case types.SubPhaseFamilyAtomics:
		pm.promptCardPlay(gs, st, "Family Atomics", types.SubPhaseMoveStorm)
	case types.SubPhaseMoveStorm:
		oldSector := gs.Storm.Sector
		if gs.Turn == 0 {
			gs.Storm.Sector = pm.rng.Intn(constants.StormSectors)
		} else {
			card, err := pools.Storm.Draw()
			if err != nil {
				return fmt.Errorf("failed to draw storm card: %v", err)
			}
			gs.Storm.Sector = (gs.Storm.Sector + card.Val) % constants.StormSectors
			pools.Storm.Discard(card)
			pools.Storm.Reshuffle(pm.rng)
		}
		log.Debug("Storm moved from sector %d to sector %d", oldSector, gs.Storm.Sector)
		if err := pm.stormEffects.Apply(oldSector, gs.Storm.Sector); err != nil {
			return fmt.Errorf("failed to apply storm effects: %v", err)
		}
		pm.enterPhase(gs, st, types.PhaseSpiceBlow, types.SubPhaseNone)
	default:
		return fmt.Errorf("unhandled storm sub-phase: %s", pm.subPhase)
	}
	return nil
}

// advanceStub moves through the phases whose rules are not implemented
// yet. Transitions stay strictly forward; Control wraps the turn.
func (pm *PhaseMachine) advanceStub(gs *types.GameState, st *stack.Stack) error {
	log.Debug("Phase %s is not implemented, advancing", pm.phase)
	switch pm.phase {
	case types.PhaseControl:
		gs.Turn++
		if gs.Turn > constants.MaxTurns {
			pm.enterPhase(gs, st, types.PhaseEndGame, types.SubPhaseNone)
			return nil
		}
		pm.enterPhase(gs, st, types.PhaseStorm, types.SubPhaseReveal)
	default:
		pm.enterPhase(gs, st, pm.phase+1, types.SubPhaseNone)
	}
	return nil
}

// promptCardPlay asks each player in turn order whether to play the named
// card, one prompt per dispatch, then advances to next.
func (pm *PhaseMachine) promptCardPlay(gs *types.GameState, st *stack.Stack, card string, next types.SubPhase) {
	if pm.promptCount >= len(gs.Players) {
		pm.enterSubPhase(next)
		return
	}
	st.Push(&stack.PlayPrompt{Player: gs.ActivePlayer, Card: card})
	pm.promptCount++
	gs.AdvanceActivePlayer()
}

// enterSubPhase moves forward within the current phase and resets the
// per-sub-phase guards.
func (pm *PhaseMachine) enterSubPhase(next types.SubPhase) {
	log.Debug("Phase %s entering sub-phase %s", pm.phase, next)
	pm.subPhase = next
	pm.requested = false
	pm.promptCount = 0
	pm.placementScheduled = nil
	pm.placementsDone = 0
}

// enterPhase moves to a new outer phase and schedules the camera focus for
// it. The pushed motion blocks further phase logic until it completes.
func (pm *PhaseMachine) enterPhase(gs *types.GameState, st *stack.Stack, next types.Phase, sub types.SubPhase) {
	log.Info("Entering phase %s", next)
	pm.phase = next
	pm.enterSubPhase(sub)

	if node, ok := phaseCameraNodes[next]; ok {
		dest, err := pm.ruleData.CameraNode(node)
		if err != nil {
			log.Warn("No camera node for phase %s: %v", next, err)
			return
		}
		st.Push(stack.NewCameraMotion(dest, constants.CameraMotionTime))
	}
}

// phaseCameraNodes maps phases to the camera node focused on entry.
var phaseCameraNodes = map[types.Phase]string{
	types.PhaseStorm:     "storm",
	types.PhaseSpiceBlow: "spice",
	types.PhaseBidding:   "treachery",
	types.PhaseEndGame:   "board",
}

package game

import (
	"fmt"

	"github.com/cbodonnell/melange/pkg/game/stack"
	"github.com/cbodonnell/melange/pkg/game/types"
)

// resolveInitialPlacement schedules the initial troop placement for the
// current active player, applying the Bene Gesserit / Fremen priority rule:
// when the Bene Gesserit come before the Fremen in play order, the Fremen
// placement is pushed first and the Bene Gesserit placement on top of it,
// so the Bene Gesserit action resolves first. When the Fremen come first,
// each of the two factions is handled on its own turn.
//
// Scheduling a placement credits that player's starting spice exactly once,
// regardless of how the placement actions are later ordered or interleaved.
func (pm *PhaseMachine) resolveInitialPlacement(gs *types.GameState, st *stack.Stack) error {
	idx := gs.ActivePlayer
	defer gs.AdvanceActivePlayer()

	if pm.placementScheduled[idx] {
		// Already scheduled out of turn by the Bene Gesserit branch.
		return nil
	}

	faction := gs.Players[idx].Faction
	if faction != types.FactionBeneGesserit && faction != types.FactionFremen {
		return pm.schedulePlacement(gs, st, idx)
	}

	first := firstOfFactions(gs, types.FactionBeneGesserit, types.FactionFremen)
	if first != types.FactionBeneGesserit {
		return pm.schedulePlacement(gs, st, idx)
	}

	// Fremen placement below, Bene Gesserit on top of it.
	if fremenIdx, fremen := gs.PlayerByFaction(types.FactionFremen); fremen != nil && !pm.placementScheduled[fremenIdx] {
		if err := pm.schedulePlacement(gs, st, fremenIdx); err != nil {
			return err
		}
	}
	if bgIdx, bg := gs.PlayerByFaction(types.FactionBeneGesserit); bg != nil && !pm.placementScheduled[bgIdx] {
		if err := pm.schedulePlacement(gs, st, bgIdx); err != nil {
			return err
		}
	}
	return nil
}

// schedulePlacement pushes the player's free placement action and credits
// their starting spice. The spice credit happens at scheduling time, never
// at resolution time.
func (pm *PhaseMachine) schedulePlacement(gs *types.GameState, st *stack.Stack, idx int) error {
	player := gs.Players[idx]
	values, err := pm.ruleData.InitialValues(player.Faction)
	if err != nil {
		return fmt.Errorf("failed to resolve initial values: %v", err)
	}

	st.Push(&stack.PlaceFreeTroops{
		Player:    idx,
		Num:       values.Troops,
		Locations: append([]string(nil), values.Locations...),
	})
	player.AddSpice(values.Spice)
	pm.placementScheduled[idx] = true
	pm.placementsDone++
	return nil
}

// firstOfFactions returns whichever of the given factions appears first in
// play order.
func firstOfFactions(gs *types.GameState, factions ...types.Faction) types.Faction {
	for _, player := range gs.Players {
		for _, faction := range factions {
			if player.Faction == faction {
				return faction
			}
		}
	}
	return -1
}

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDivideSpice(t *testing.T) {
	tests := []struct {
		total int
		want  SpiceHoldings
	}{
		{total: 0, want: SpiceHoldings{}},
		{total: 1, want: SpiceHoldings{Ones: 1}},
		{total: 4, want: SpiceHoldings{Twos: 2}},
		{total: 7, want: SpiceHoldings{Fives: 1, Twos: 1}},
		{total: 10, want: SpiceHoldings{Tens: 1}},
		{total: 38, want: SpiceHoldings{Tens: 3, Fives: 1, Twos: 1, Ones: 1}},
		{total: -3, want: SpiceHoldings{}},
	}
	for _, tt := range tests {
		got := DivideSpice(tt.total)
		assert.Equal(t, tt.want, got, "total %d", tt.total)
		if tt.total > 0 {
			assert.Equal(t, tt.total, got.Total())
		}
	}
}

func TestPlayerState_AddSpice(t *testing.T) {
	p := NewPlayerState(FactionAtreides, nil)
	p.AddSpice(10)
	p.AddSpice(7)
	assert.Equal(t, 17, p.TotalSpice)
	assert.Equal(t, 17, p.Spice.Total())
}

func TestNewPlayerState(t *testing.T) {
	leaders := []Leader{
		{Name: "Duncan Idaho", Faction: FactionAtreides, Strength: 2},
		{Name: "Stilgar", Faction: FactionFremen, Strength: 7},
		{Name: "Gurney Halleck", Faction: FactionAtreides, Strength: 4},
	}

	p := NewPlayerState(FactionAtreides, leaders)
	require.Len(t, p.Leaders, 2)
	for _, leader := range p.Leaders {
		assert.Equal(t, FactionAtreides, leader.Faction)
	}
	assert.Nil(t, p.Prediction)

	bg := NewPlayerState(FactionBeneGesserit, leaders)
	assert.Empty(t, bg.Leaders)
	require.NotNil(t, bg.Prediction)
	assert.Nil(t, bg.Prediction.Faction)
	assert.Nil(t, bg.Prediction.Turn)
}

func TestGameState_AdvanceActivePlayer(t *testing.T) {
	gs := NewGameState()
	gs.AdvanceActivePlayer()
	assert.Equal(t, 0, gs.ActivePlayer)

	gs.Players = []*PlayerState{
		NewPlayerState(FactionAtreides, nil),
		NewPlayerState(FactionHarkonnen, nil),
	}
	gs.AdvanceActivePlayer()
	assert.Equal(t, 1, gs.ActivePlayer)
	gs.AdvanceActivePlayer()
	assert.Equal(t, 0, gs.ActivePlayer)
}

func TestGameState_Copy(t *testing.T) {
	gs := NewGameState()
	gs.Turn = 3
	gs.Storm.Sector = 12
	gs.Players = []*PlayerState{
		NewPlayerState(FactionBeneGesserit, nil),
	}
	gs.Players[0].AddSpice(5)

	copied := gs.Copy()
	require.Len(t, copied.Players, 1)
	assert.Equal(t, gs.Turn, copied.Turn)
	assert.Equal(t, gs.Storm, copied.Storm)

	copied.Players[0].AddSpice(5)
	copied.Players[0].Prediction.Turn = new(int)
	assert.Equal(t, 5, gs.Players[0].TotalSpice)
	assert.Nil(t, gs.Players[0].Prediction.Turn)
}

func TestParseFaction(t *testing.T) {
	for _, faction := range Factions {
		parsed, err := ParseFaction(faction.Code())
		require.NoError(t, err)
		assert.Equal(t, faction, parsed)
	}
	_, err := ParseFaction("zz")
	assert.Error(t, err)
}

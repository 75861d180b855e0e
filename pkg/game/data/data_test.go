package data

import (
	"strings"
	"testing"

	"github.com/cbodonnell/melange/pkg/game/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	d, err := Default()
	require.NoError(t, err)

	// Five leaders per faction.
	perFaction := make(map[types.Faction]int)
	for _, leader := range d.Leaders {
		perFaction[leader.Faction]++
		assert.Greater(t, leader.Strength, 0, "strength for %s", leader.Name)
	}
	for _, faction := range types.Factions {
		assert.Equal(t, 5, perFaction[faction], "leaders for %s", faction)
	}

	assert.NotEmpty(t, d.Locations)
	assert.NotEmpty(t, d.TreacheryCards)
	assert.NotEmpty(t, d.SpiceCards)
	assert.NotEmpty(t, d.StormCards)

	// Every spice card territory must exist on the board.
	for _, card := range d.SpiceCards {
		if card.Location == "" {
			continue
		}
		_, err := d.LocationByName(card.Location)
		assert.NoError(t, err, "spice card %s", card.Name)
	}

	for _, faction := range types.Factions {
		values, err := d.InitialValues(faction)
		require.NoError(t, err, "initial values for %s", faction)
		assert.GreaterOrEqual(t, values.Troops, 0)
		assert.GreaterOrEqual(t, values.Spice, 0)
		for _, loc := range values.Locations {
			_, err := d.LocationByName(loc)
			assert.NoError(t, err, "start location for %s", faction)
		}
	}

	for _, node := range []string{"board", "shield", "treachery", "traitor", "spice", "storm"} {
		_, err := d.CameraNode(node)
		assert.NoError(t, err, "camera node %s", node)
	}
	_, err = d.CameraNode("nope")
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		rules string
	}{
		{
			name:  "not yaml",
			rules: "{{{",
		},
		{
			name: "unknown faction code",
			rules: `
leaders:
  zz:
    - name: Nobody
      strength: 1
`,
		},
		{
			name: "missing factions",
			rules: `
factions:
  at:
    troops: 10
    spice: 10
`,
		},
		{
			name: "unknown start location",
			rules: `
factions:
  at:
    troops: 10
    spice: 10
    locations: [Atlantis]
`,
		},
		{
			name: "non-positive storm value",
			rules: `
storm: [1, 0]
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.rules))
			assert.Error(t, err)
		})
	}
}

package decks

import (
	"math/rand"

	"github.com/cbodonnell/melange/pkg/game/data"
	"github.com/cbodonnell/melange/pkg/game/types"
)

const (
	// SpiceBankTokens is the number of spice tokens in the shared bank.
	SpiceBankTokens = 200
)

// Pools holds the shared resource pools for one game session.
type Pools struct {
	Treachery *Deck[types.TreacheryCard]
	Traitor   *Deck[types.TraitorCard]
	Spice     *Deck[types.SpiceCard]
	Storm     *Deck[types.StormCard]
	SpiceBank int
}

// NewPools builds the four decks from the rule tables and shuffles each.
// The traitor deck contains one card per leader.
func NewPools(d *data.RuleData, rng *rand.Rand) *Pools {
	traitorCards := make([]types.TraitorCard, 0, len(d.Leaders))
	for _, leader := range d.Leaders {
		traitorCards = append(traitorCards, types.TraitorCard{Leader: leader})
	}

	p := &Pools{
		Treachery: NewDeck(d.TreacheryCards),
		Traitor:   NewDeck(traitorCards),
		Spice:     NewDeck(d.SpiceCards),
		Storm:     NewDeck(d.StormCards),
		SpiceBank: SpiceBankTokens,
	}
	p.Treachery.Shuffle(rng)
	p.Traitor.Shuffle(rng)
	p.Spice.Shuffle(rng)
	p.Storm.Shuffle(rng)
	return p
}

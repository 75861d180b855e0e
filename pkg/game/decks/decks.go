// Package decks holds the shared card pools: deck/discard pairs and the
// spice token bank. A card lives in exactly one of deck, discard, or a
// player's hand at any time.
package decks

import (
	"fmt"
	"math/rand"
)

// Deck is a deck/discard pair. Drawing pops from the end of the deck.
type Deck[C any] struct {
	cards    []C
	discards []C
}

// NewDeck creates a deck from the given cards. The caller shuffles.
func NewDeck[C any](cards []C) *Deck[C] {
	return &Deck[C]{
		cards: append([]C(nil), cards...),
	}
}

// Shuffle shuffles the remaining deck cards in place.
func (d *Deck[C]) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns the top card of the deck. Drawing from an empty
// deck is an invariant violation surfaced as an error.
func (d *Deck[C]) Draw() (C, error) {
	var zero C
	if len(d.cards) == 0 {
		return zero, fmt.Errorf("deck is empty")
	}
	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card, nil
}

// Discard places a card on the discard pile.
func (d *Deck[C]) Discard(card C) {
	d.discards = append(d.discards, card)
}

// Reshuffle returns the discard pile to the deck and shuffles.
func (d *Deck[C]) Reshuffle(rng *rand.Rand) {
	d.cards = append(d.cards, d.discards...)
	d.discards = nil
	d.Shuffle(rng)
}

// Len returns the number of cards remaining in the deck.
func (d *Deck[C]) Len() int {
	return len(d.cards)
}

// DiscardLen returns the number of cards in the discard pile.
func (d *Deck[C]) DiscardLen() int {
	return len(d.discards)
}

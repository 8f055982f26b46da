package game

import "golang.org/x/exp/rand"

// Deck is the ordered draw pile. Cards are drawn from the top and returned
// to the bottom, so a challenged claimant never sees their returned card
// again until the pile cycles.
type Deck struct {
	cards []Card
}

// NewDeck builds the fixed 15-card multiset and shuffles it with the
// supplied source.
func NewDeck(rng *rand.Rand) *Deck {
	cards := make([]Card, 0, DeckSize)
	for _, c := range Characters() {
		for i := 0; i < CopiesPerCard; i++ {
			cards = append(cards, c)
		}
	}
	d := &Deck{cards: cards}
	d.Shuffle(rng)
	return d
}

// Shuffle randomizes the draw order in place.
func (d *Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns the top card. Drawing from an empty deck is a
// programmer error: the engine's player-count bound guarantees capacity.
func (d *Deck) Draw() Card {
	if len(d.cards) == 0 {
		panic("draw from empty deck")
	}
	c := d.cards[0]
	d.cards = d.cards[1:]
	return c
}

// DealHand draws the top two cards as a starting hand.
func (d *Deck) DealHand() [2]Card {
	return [2]Card{d.Draw(), d.Draw()}
}

// ReturnToBottom places a card under the pile.
func (d *Deck) ReturnToBottom(c Card) {
	d.cards = append(d.cards, c)
}

// Len returns the number of cards remaining in the pile.
func (d *Deck) Len() int {
	return len(d.cards)
}

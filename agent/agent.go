// Package agent implements the automated player: a belief estimator over
// hidden hands and a utility-driven policy parameterized by a trainable
// Strategy.
package agent

import (
	"golang.org/x/exp/rand"

	"github.com/hobbsbros/contessa/game"
)

// StartingCoins is every player's balance at the start of a game.
const StartingCoins = 2

// Agent is an automated game.Player. Each agent owns its random source so
// parallel games stay uncorrelated.
type Agent struct {
	id        int
	opponents int
	hand      [2]game.Card
	coins     int
	strategy  Strategy
	perceived []game.PerceivedHand
	rng       *rand.Rand
}

// New creates an agent for the given seat. opponents is the number of other
// seats in the game.
func New(id, opponents int, strategy Strategy, rng *rand.Rand) *Agent {
	return &Agent{
		id:        id,
		opponents: opponents,
		coins:     StartingCoins,
		strategy:  strategy,
		rng:       rng,
	}
}

// ID returns this agent's seat index.
func (a *Agent) ID() int {
	return a.id
}

// Strategy returns the agent's parameter set.
func (a *Agent) Strategy() Strategy {
	return a.strategy
}

// Hand exposes the hidden hand for inspection outside of play.
func (a *Agent) Hand() [2]game.Card {
	return a.hand
}

// Deal sets the starting hand.
func (a *Agent) Deal(hand [2]game.Card) {
	a.hand = hand
}

// Check reports whether the hand contains the given card.
func (a *Agent) Check(c game.Card) bool {
	return a.hand[0] == c || a.hand[1] == c
}

// Replace swaps one hand slot from old to new. The caller guarantees old is
// present.
func (a *Agent) Replace(old, new game.Card) {
	if a.hand[0] == old {
		a.hand[0] = new
	} else {
		a.hand[1] = new
	}
}

// Exchange returns the drawn cards unchanged, keeping the current hand.
// Strategic retention is a deliberate extension point; the trained
// parameters carry no signal for it yet.
func (a *Agent) Exchange(drawn []game.Card) []game.Card {
	return drawn
}

// Coins returns the current balance.
func (a *Agent) Coins() int {
	return a.coins
}

// GainCoins credits the balance.
func (a *Agent) GainCoins(n int) {
	a.coins += n
}

// LoseCoins debits up to n, clamped at the available balance, and returns
// the amount actually moved.
func (a *Agent) LoseCoins(n int) int {
	if n > a.coins {
		n = a.coins
	}
	a.coins -= n
	return n
}

// LoseInfluence discards one influence and returns the revealed card. When
// both slots still hold real cards the discard is a uniform coin flip.
func (a *Agent) LoseInfluence() game.Card {
	var slot int
	switch {
	case a.hand[0] == game.NoCard && a.hand[1] == game.NoCard:
		return game.NoCard
	case a.hand[0] == game.NoCard:
		slot = 1
	case a.hand[1] == game.NoCard:
		slot = 0
	default:
		slot = a.rng.Intn(2)
	}
	c := a.hand[slot]
	a.hand[slot] = game.NoCard
	return c
}

// IsEliminated reports whether both influence slots are gone.
func (a *Agent) IsEliminated() bool {
	return a.hand[0] == game.NoCard && a.hand[1] == game.NoCard
}

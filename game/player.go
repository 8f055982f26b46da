package game

import "fmt"

// PerceivedHand maps each character to the estimated probability that a
// player holds at least one copy. Values are independent per-card marginals
// in [0,1], not a normalized distribution.
type PerceivedHand map[Card]float64

// Prob looks up the belief for a character. Asking about a card outside the
// five-type universe is a programmer error.
func (h PerceivedHand) Prob(c Card) float64 {
	p, ok := h[c]
	if !ok {
		panic(fmt.Sprintf("no belief for card %v", c))
	}
	return p
}

// Player is the capability contract every participant implements, whether
// automated or interactive. The engine drives the game exclusively through
// this interface; implementations own their hidden hand and coin state.
type Player interface {
	// ID returns this player's seat index.
	ID() int

	// Check reports whether the hand contains the given card.
	Check(c Card) bool

	// Replace swaps one hand slot from old to new. The caller guarantees
	// old is present.
	Replace(old, new Card)

	// Exchange offers drawn cards alongside the current hand. The player
	// keeps two cards total and returns the overflow, which goes back
	// under the deck.
	Exchange(drawn []Card) []Card

	// Coins returns the current balance.
	Coins() int

	// GainCoins credits the balance.
	GainCoins(n int)

	// LoseCoins debits up to n, clamped at the available balance, and
	// returns the amount actually moved.
	LoseCoins(n int) int

	// LoseInfluence discards one influence and returns the revealed card,
	// or NoCard when the player is already eliminated.
	LoseInfluence() Card

	// ComputeHands refreshes beliefs from the public kill ledger.
	ComputeHands(killed []Card)

	// Deal sets the starting hand.
	Deal(hand [2]Card)

	// CheckChallenge asks whether this player challenges the claimant's
	// claim to hold the given card.
	CheckChallenge(claimant int, claimed Card) bool

	// CheckBlock asks whether this player blocks the pending action, and
	// with which claimed card.
	CheckBlock(a Action) (bool, Card)

	// IsEliminated reports whether both influence slots are gone.
	IsEliminated() bool

	// SelectAction picks this turn's action given the currently
	// eliminated seat indices.
	SelectAction(eliminated []int) Action
}

package agent

import "github.com/hobbsbros/contessa/game"

// cardPool tracks a pool of unseen cards: its total size and the remaining
// copies of each character.
type cardPool struct {
	size   float64
	counts map[game.Card]float64
}

func newCardPool() *cardPool {
	counts := make(map[game.Card]float64, len(game.Characters()))
	for _, c := range game.Characters() {
		counts[c] = game.CopiesPerCard
	}
	return &cardPool{size: game.DeckSize, counts: counts}
}

// remove takes one card out of the pool. A NoCard slot still shrinks the
// pool (the slot is seen to be empty) without touching any count.
func (p *cardPool) remove(c game.Card) {
	p.size--
	if c != game.NoCard {
		p.counts[c]--
	}
}

// holdsProbability is the chance that a specific two-card hand drawn from
// this pool contains at least one copy of c: the complement of drawing zero
// copies in two draws without replacement.
func (p *cardPool) holdsProbability(c game.Card) float64 {
	k := p.counts[c]
	n := p.size
	return 1 - ((n-k)/n)*((n-1-k)/(n-1))
}

// perceived materializes the pool into per-card beliefs.
func (p *cardPool) perceived() game.PerceivedHand {
	h := make(game.PerceivedHand, len(game.Characters()))
	for _, c := range game.Characters() {
		h[c] = p.holdsProbability(c)
	}
	return h
}

// ComputeHands refreshes the per-seat beliefs from the public kill ledger.
// Two pools are kept: the private pool additionally excludes the agent's
// own two slots and estimates what opponents hold; the public pool uses
// only public information and estimates how convincing the agent's own
// claims look to everyone else. The two answer different questions and must
// not be merged.
func (a *Agent) ComputeHands(killed []game.Card) {
	private := newCardPool()
	public := newCardPool()

	for _, c := range killed {
		private.remove(c)
		public.remove(c)
	}
	private.remove(a.hand[0])
	private.remove(a.hand[1])

	hands := make([]game.PerceivedHand, a.opponents+1)
	for i := range hands {
		if i == a.id {
			hands[i] = public.perceived()
		} else {
			hands[i] = private.perceived()
		}
	}
	a.perceived = hands
}

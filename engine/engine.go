// Package engine owns one game: the deck, the public kill ledger and the
// seated players. It drives the claim / challenge / block /
// counter-challenge protocol for each turn and decides the winner.
package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"github.com/hobbsbros/contessa/game"
)

const (
	// MinPlayers is the smallest playable game.
	MinPlayers = 2

	// MaxPlayers is bounded by deck capacity: after dealing two cards per
	// seat the deck must still cover an exchange's two draws, so
	// 15 - 2p >= 2.
	MaxPlayers = 6

	// DefaultMaxTurns caps a game so self-play always terminates.
	DefaultMaxTurns = 1000
)

// Option configures an Engine before the deal.
type Option func(e *Engine)

// WithSeed seeds the engine's random source, which controls the shuffle.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// WithMaxTurns overrides the turn cap.
func WithMaxTurns(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxTurns = n
		}
	}
}

// Engine holds one game's state. It has exclusive ownership of the deck and
// kill ledger; players only ever see the ledger as a read-only view passed
// to ComputeHands.
type Engine struct {
	deck     *game.Deck
	players  []game.Player
	killed   []game.Card
	active   int
	maxTurns int
	rng      *rand.Rand
}

// New seats the players, shuffles and deals. Player counts outside the deck
// capacity bound fail before any card moves.
func New(players []game.Player, options ...Option) (*Engine, error) {
	if len(players) < MinPlayers {
		return nil, fmt.Errorf("need at least %d players, got %d", MinPlayers, len(players))
	}
	if len(players) > MaxPlayers {
		return nil, fmt.Errorf("deck supports at most %d players, got %d", MaxPlayers, len(players))
	}

	e := &Engine{
		players:  players,
		maxTurns: DefaultMaxTurns,
		rng:      rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
	for _, option := range options {
		option(e)
	}

	e.deck = game.NewDeck(e.rng)
	for _, p := range players {
		p.Deal(e.deck.DealHand())
		p.ComputeHands(nil)
	}
	return e, nil
}

// KilledCards returns a copy of the public kill ledger.
func (e *Engine) KilledCards() []game.Card {
	killed := make([]game.Card, len(e.killed))
	copy(killed, e.killed)
	return killed
}

// DeckLen returns the number of cards left in the draw pile.
func (e *Engine) DeckLen() int {
	return e.deck.Len()
}

// ActivePlayer returns the seat whose turn comes next.
func (e *Engine) ActivePlayer() int {
	return e.active
}

// Turn runs one full turn for the active player and rotates. It returns the
// winning seat and true once exactly one player remains.
func (e *Engine) Turn() (int, bool) {
	eliminated := []int{}
	for i, p := range e.players {
		p.ComputeHands(e.killed)
		if p.IsEliminated() {
			eliminated = append(eliminated, i)
		}
	}

	action := e.players[e.active].SelectAction(eliminated)
	log.Debug().Msgf("player %d selects %s", e.active, action)

	prevented := false

	// Challenge phase: only actions that carry a claim can be contested.
	if claim := action.ClaimedCard(); claim != game.NoCard {
		if challenger, ok := e.findChallenger(e.active, claim); ok {
			log.Debug().Msgf("player %d challenges %s", challenger, action)
			prevented = !e.settleChallenge(e.active, challenger, claim)
		}
	}

	// Block phase: skipped entirely when a failed claim already stopped
	// the action, and never run for unblockable actions.
	if !prevented && action.Blockable() {
		if blocker, card, ok := e.findBlocker(action); ok {
			log.Debug().Msgf("player %d blocks %s claiming %s", blocker, action, card)
			prevented = e.resolveBlock(blocker, card)
		}
	}

	if !prevented {
		log.Debug().Msgf("player %d performs %s", e.active, action)
		e.execute(action)
	}

	e.active = (e.active + 1) % len(e.players)

	return e.winner()
}

// Play runs turns until a winner emerges or the turn cap is hit, in which
// case seat 0 wins by default. Returns the winning seat.
func (e *Engine) Play() int {
	for turn := 0; turn < e.maxTurns; turn++ {
		if winner, over := e.Turn(); over {
			log.Debug().Msgf("player %d wins after %d turns", winner, turn+1)
			return winner
		}
	}
	log.Debug().Msgf("turn cap %d reached without a winner", e.maxTurns)
	return 0
}

// findChallenger polls every surviving seat but the claimant, in ascending
// order; the first yes wins.
func (e *Engine) findChallenger(claimant int, claimed game.Card) (int, bool) {
	for i, p := range e.players {
		if i != claimant && !p.IsEliminated() && p.CheckChallenge(claimant, claimed) {
			return i, true
		}
	}
	return 0, false
}

// findBlocker polls every surviving seat but the active player, in
// ascending order; the first yes wins, carrying the claimed blocking card.
func (e *Engine) findBlocker(action game.Action) (int, game.Card, bool) {
	for i, p := range e.players {
		if i == e.active || p.IsEliminated() {
			continue
		}
		if blocks, card := p.CheckBlock(action); blocks {
			return i, card, true
		}
	}
	return 0, game.NoCard, false
}

// settleChallenge inspects the claimant's hand. A truthful claimant costs
// the challenger an influence and trades the exposed card for a fresh draw;
// a liar loses an influence instead. Returns whether the claim held.
func (e *Engine) settleChallenge(claimant, challenger int, claimed game.Card) bool {
	if e.players[claimant].Check(claimed) {
		e.discardInfluence(challenger)
		e.deck.ReturnToBottom(claimed)
		e.players[claimant].Replace(claimed, e.deck.Draw())
		return true
	}
	e.discardInfluence(claimant)
	return false
}

// resolveBlock runs the counter-challenge sub-phase with the blocker as
// claimant; the original active player is eligible to challenge. Returns
// whether the action ends up prevented.
func (e *Engine) resolveBlock(blocker int, card game.Card) bool {
	challenger, ok := e.findChallenger(blocker, card)
	if !ok {
		// Unchallenged blocks stand.
		return true
	}
	log.Debug().Msgf("player %d challenges player %d's block", challenger, blocker)
	return e.settleChallenge(blocker, challenger, card)
}

// discardInfluence makes a player reveal one influence and records it on
// the public ledger.
func (e *Engine) discardInfluence(player int) {
	if c := e.players[player].LoseInfluence(); c != game.NoCard {
		log.Debug().Msgf("player %d loses influence, revealing %s", player, c)
		e.killed = append(e.killed, c)
	}
}

// execute applies the action's effect. Coup and Assassinate spend coins via
// the clamped LoseCoins, so an over-spend can never go negative.
func (e *Engine) execute(action game.Action) {
	active := e.players[e.active]
	switch action.Kind {
	case game.Income:
		active.GainCoins(1)
	case game.ForeignAid:
		active.GainCoins(2)
	case game.Coup:
		active.LoseCoins(7)
		e.discardInfluence(action.Target)
	case game.Tax:
		active.GainCoins(3)
	case game.Assassinate:
		active.LoseCoins(3)
		e.discardInfluence(action.Target)
	case game.Exchange:
		drawn := []game.Card{e.deck.Draw(), e.deck.Draw()}
		for _, c := range active.Exchange(drawn) {
			e.deck.ReturnToBottom(c)
		}
	case game.Steal:
		stolen := e.players[action.Target].LoseCoins(2)
		active.GainCoins(stolen)
	case game.Pass:
	}
}

// winner reports the sole surviving seat once all others are eliminated.
func (e *Engine) winner() (int, bool) {
	winner, survivors := 0, 0
	for i, p := range e.players {
		if !p.IsEliminated() {
			winner = i
			survivors++
		}
	}
	if survivors == 1 {
		return winner, true
	}
	return 0, false
}

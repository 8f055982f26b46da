package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/hobbsbros/contessa/agent"
	"github.com/hobbsbros/contessa/game"
)

// scriptedPlayer is a deterministic game.Player for exercising the turn
// protocol: its actions come from a queue and its challenge/block answers
// from plugged-in functions. It records how often it was polled.
type scriptedPlayer struct {
	id    int
	hand  [2]game.Card
	coins int

	actions   []game.Action
	challenge func(claimant int, claimed game.Card) bool
	block     func(a game.Action) (bool, game.Card)

	challengesAsked int
	blocksAsked     int
	replaced        []game.Card
}

func (p *scriptedPlayer) ID() int { return p.id }

func (p *scriptedPlayer) Check(c game.Card) bool {
	return p.hand[0] == c || p.hand[1] == c
}

func (p *scriptedPlayer) Replace(old, new game.Card) {
	p.replaced = append(p.replaced, old)
	if p.hand[0] == old {
		p.hand[0] = new
	} else {
		p.hand[1] = new
	}
}

func (p *scriptedPlayer) Exchange(drawn []game.Card) []game.Card { return drawn }

func (p *scriptedPlayer) Coins() int      { return p.coins }
func (p *scriptedPlayer) GainCoins(n int) { p.coins += n }

func (p *scriptedPlayer) LoseCoins(n int) int {
	if n > p.coins {
		n = p.coins
	}
	p.coins -= n
	return n
}

func (p *scriptedPlayer) LoseInfluence() game.Card {
	for i, c := range p.hand {
		if c != game.NoCard {
			p.hand[i] = game.NoCard
			return c
		}
	}
	return game.NoCard
}

func (p *scriptedPlayer) ComputeHands(killed []game.Card) {}
func (p *scriptedPlayer) Deal(hand [2]game.Card)          { p.hand = hand }

func (p *scriptedPlayer) CheckChallenge(claimant int, claimed game.Card) bool {
	p.challengesAsked++
	if p.challenge == nil {
		return false
	}
	return p.challenge(claimant, claimed)
}

func (p *scriptedPlayer) CheckBlock(a game.Action) (bool, game.Card) {
	p.blocksAsked++
	if p.block == nil {
		return false, game.NoCard
	}
	return p.block(a)
}

func (p *scriptedPlayer) IsEliminated() bool {
	return p.hand[0] == game.NoCard && p.hand[1] == game.NoCard
}

func (p *scriptedPlayer) SelectAction(eliminated []int) game.Action {
	if len(p.actions) == 0 {
		return game.Action{Kind: game.Pass}
	}
	a := p.actions[0]
	p.actions = p.actions[1:]
	return a
}

func newScripted(n int) []*scriptedPlayer {
	players := make([]*scriptedPlayer, n)
	for i := range players {
		players[i] = &scriptedPlayer{id: i, coins: 2}
	}
	return players
}

func asPlayers(scripted []*scriptedPlayer) []game.Player {
	players := make([]game.Player, len(scripted))
	for i, p := range scripted {
		players[i] = p
	}
	return players
}

func TestNew(t *testing.T) {
	t.Run("rejects too few players", func(t *testing.T) {
		_, err := New(asPlayers(newScripted(1)))
		require.Error(t, err, "One player is not a game")
	})

	t.Run("rejects player counts beyond deck capacity", func(t *testing.T) {
		_, err := New(asPlayers(newScripted(7)))
		require.Error(t, err, "Seven hands would starve the deck")
	})

	t.Run("deals two cards to every seat", func(t *testing.T) {
		scripted := newScripted(4)
		e, err := New(asPlayers(scripted), WithSeed(42))
		require.NoError(t, err)

		require.Equal(t, game.DeckSize-8, e.DeckLen(), "Four hands consume eight cards")
		for _, p := range scripted {
			require.NotEqual(t, game.NoCard, p.hand[0])
			require.NotEqual(t, game.NoCard, p.hand[1])
		}
	})
}

func TestTurnCoup(t *testing.T) {
	// A coup carries no claim: neither the challenge nor the block phase
	// may run, the seven coins are spent, and the target loses influence
	// unconditionally.
	scripted := newScripted(2)
	e, err := New(asPlayers(scripted), WithSeed(42))
	require.NoError(t, err)

	p0, p1 := scripted[0], scripted[1]
	p0.coins = 7
	p0.actions = []game.Action{{Kind: game.Coup, Target: 1}}
	p1.hand = [2]game.Card{game.Duke, game.NoCard}
	p1.challenge = func(int, game.Card) bool { return true }
	p1.block = func(game.Action) (bool, game.Card) { return true, game.Contessa }

	winner, over := e.Turn()

	require.Equal(t, 0, p0.coins, "Coup should cost exactly seven coins")
	require.True(t, p1.IsEliminated(), "Target loses influence unconditionally")
	require.Zero(t, p1.challengesAsked, "Coup is unchallengeable")
	require.Zero(t, p1.blocksAsked, "Coup is unblockable")
	require.Equal(t, []game.Card{game.Duke}, e.KilledCards())
	require.True(t, over, "Only one player remains")
	require.Equal(t, 0, winner)
}

func TestTurnChallengeSurvivesBluffHunt(t *testing.T) {
	// The claimant truthfully holds the Duke: the challenger pays an
	// influence, the exposed Duke is traded for a fresh draw, and the tax
	// still lands.
	scripted := newScripted(3)
	e, err := New(asPlayers(scripted), WithSeed(42))
	require.NoError(t, err)

	p0, p1 := scripted[0], scripted[1]
	p0.actions = []game.Action{{Kind: game.Tax}}
	p0.hand = [2]game.Card{game.Duke, game.Contessa}
	p1.hand = [2]game.Card{game.Captain, game.Ambassador}
	p1.challenge = func(claimant int, claimed game.Card) bool {
		return claimant == 0 && claimed == game.Duke
	}

	deckBefore := e.DeckLen()
	_, over := e.Turn()

	require.False(t, over)
	require.Equal(t, 5, p0.coins, "Tax should still execute for three coins")
	require.Equal(t, []game.Card{game.Duke}, p0.replaced,
		"The exposed Duke is swapped for a fresh draw")
	require.Equal(t, []game.Card{game.Captain}, e.KilledCards(),
		"The challenger reveals one influence")
	require.Equal(t, deckBefore, e.DeckLen(),
		"Return-to-bottom plus draw leaves the deck size unchanged")
}

func TestTurnFailedClaim(t *testing.T) {
	// A caught bluff costs the claimant an influence, prevents the
	// action, and skips the block phase entirely.
	scripted := newScripted(3)
	e, err := New(asPlayers(scripted), WithSeed(42))
	require.NoError(t, err)

	p0, p1, p2 := scripted[0], scripted[1], scripted[2]
	p0.actions = []game.Action{{Kind: game.Steal, Target: 2}}
	p0.hand = [2]game.Card{game.Duke, game.Contessa}
	p1.challenge = func(int, game.Card) bool { return true }
	p2.block = func(game.Action) (bool, game.Card) { return true, game.Captain }

	e.Turn()

	require.Equal(t, 2, p0.coins, "Prevented steal must not move coins")
	require.Equal(t, 2, p2.coins)
	require.Equal(t, []game.Card{game.Duke}, e.KilledCards(),
		"The liar reveals one influence")
	require.Zero(t, p2.blocksAsked, "Block phase is skipped after a failed claim")
}

func TestTurnBlock(t *testing.T) {
	t.Run("unchallenged block prevents the action", func(t *testing.T) {
		scripted := newScripted(2)
		e, err := New(asPlayers(scripted), WithSeed(42))
		require.NoError(t, err)

		p0, p1 := scripted[0], scripted[1]
		p0.actions = []game.Action{{Kind: game.Steal, Target: 1}}
		p0.hand = [2]game.Card{game.Captain, game.Contessa}
		p1.block = func(a game.Action) (bool, game.Card) {
			return a.Kind == game.Steal && a.Target == 1, game.Captain
		}

		e.Turn()

		require.Equal(t, 2, p0.coins, "Blocked steal moves no coins")
		require.Equal(t, 2, p1.coins)
		require.Empty(t, e.KilledCards(), "An unchallenged block costs nobody anything")
	})

	t.Run("counter-challenged lying blocker loses influence and the action proceeds", func(t *testing.T) {
		scripted := newScripted(2)
		e, err := New(asPlayers(scripted), WithSeed(42))
		require.NoError(t, err)

		p0, p1 := scripted[0], scripted[1]
		p0.actions = []game.Action{{Kind: game.Steal, Target: 1}}
		p0.hand = [2]game.Card{game.Captain, game.Contessa}
		p0.challenge = func(claimant int, claimed game.Card) bool {
			return claimant == 1 // The active player counter-challenges the block.
		}
		p1.hand = [2]game.Card{game.Duke, game.Assassin}
		p1.coins = 1
		p1.block = func(game.Action) (bool, game.Card) { return true, game.Captain }

		e.Turn()

		require.Equal(t, []game.Card{game.Duke}, e.KilledCards(),
			"The lying blocker reveals one influence")
		require.Equal(t, 3, p0.coins, "Steal proceeds for min(2, target's balance)")
		require.Equal(t, 0, p1.coins)
	})

	t.Run("truthful blocker survives the counter-challenge and the block stands", func(t *testing.T) {
		scripted := newScripted(2)
		e, err := New(asPlayers(scripted), WithSeed(42))
		require.NoError(t, err)

		p0, p1 := scripted[0], scripted[1]
		p0.actions = []game.Action{{Kind: game.Steal, Target: 1}}
		p0.hand = [2]game.Card{game.Contessa, game.Captain}
		p0.challenge = func(claimant int, claimed game.Card) bool { return claimant == 1 }
		p1.hand = [2]game.Card{game.Captain, game.Assassin}
		p1.block = func(game.Action) (bool, game.Card) { return true, game.Captain }

		e.Turn()

		require.Equal(t, []game.Card{game.Contessa}, e.KilledCards(),
			"The failed counter-challenger reveals one influence")
		require.Equal(t, []game.Card{game.Captain}, p1.replaced,
			"The vindicated blocker trades the exposed Captain for a fresh draw")
		require.Equal(t, 2, p0.coins, "The surviving block still prevents the steal")
		require.Equal(t, 2, p1.coins)
	})
}

func TestTurnSteal(t *testing.T) {
	// Steal transfers min(2, target's balance).
	cases := []struct {
		name         string
		targetCoins  int
		wantTransfer int
	}{
		{"two coins available", 5, 2},
		{"one coin available", 1, 1},
		{"broke target", 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			scripted := newScripted(2)
			e, err := New(asPlayers(scripted), WithSeed(42))
			require.NoError(t, err)

			p0, p1 := scripted[0], scripted[1]
			p0.actions = []game.Action{{Kind: game.Steal, Target: 1}}
			p0.hand = [2]game.Card{game.Captain, game.Contessa}
			p1.coins = tc.targetCoins

			e.Turn()

			require.Equal(t, 2+tc.wantTransfer, p0.coins)
			require.Equal(t, tc.targetCoins-tc.wantTransfer, p1.coins)
		})
	}
}

func TestTurnExchange(t *testing.T) {
	scripted := newScripted(2)
	e, err := New(asPlayers(scripted), WithSeed(42))
	require.NoError(t, err)

	p0 := scripted[0]
	p0.actions = []game.Action{{Kind: game.Exchange}}
	p0.hand = [2]game.Card{game.Ambassador, game.Contessa}

	deckBefore := e.DeckLen()
	e.Turn()

	require.Equal(t, deckBefore, e.DeckLen(),
		"Two drawn and two returned leaves the deck size unchanged")
	require.Equal(t, [2]game.Card{game.Ambassador, game.Contessa}, p0.hand,
		"The scripted player keeps its hand and returns the drawn cards")
}

func TestTurnRotation(t *testing.T) {
	scripted := newScripted(3)
	e, err := New(asPlayers(scripted), WithSeed(42))
	require.NoError(t, err)

	require.Equal(t, 0, e.ActivePlayer())
	e.Turn()
	require.Equal(t, 1, e.ActivePlayer())
	e.Turn()
	e.Turn()
	require.Equal(t, 0, e.ActivePlayer(), "Rotation wraps back to seat 0")
}

func TestPlayTurnCap(t *testing.T) {
	// Scripted players pass forever, so the cap decides: seat 0 wins by
	// default.
	scripted := newScripted(4)
	e, err := New(asPlayers(scripted), WithSeed(42), WithMaxTurns(25))
	require.NoError(t, err)

	require.Equal(t, 0, e.Play(), "Hitting the cap should default to seat 0")
}

func TestWinCondition(t *testing.T) {
	// Three seats, one already eliminated: the turn that eliminates the
	// second-to-last player must immediately report the survivor.
	scripted := newScripted(3)
	e, err := New(asPlayers(scripted), WithSeed(42))
	require.NoError(t, err)

	p0, p1, p2 := scripted[0], scripted[1], scripted[2]
	p0.coins = 7
	p0.actions = []game.Action{{Kind: game.Coup, Target: 1}}
	p1.hand = [2]game.Card{game.Duke, game.NoCard}
	p2.hand = [2]game.Card{game.NoCard, game.NoCard}

	winner, over := e.Turn()
	require.True(t, over, "Exactly one survivor should end the game")
	require.Equal(t, 0, winner)
}

func TestFullAgentGame(t *testing.T) {
	// An end-to-end game between four agents, checking the conservation
	// and monotonicity invariants after every turn.
	rng := rand.New(rand.NewSource(99))
	agents := make([]*agent.Agent, 4)
	players := make([]game.Player, 4)
	for i := range agents {
		agents[i] = agent.New(i, 3, agent.RandomStrategy(rng), rand.New(rand.NewSource(rng.Uint64())))
		players[i] = agents[i]
	}

	e, err := New(players, WithSeed(rng.Uint64()))
	require.NoError(t, err)

	countCards := func() int {
		total := e.DeckLen() + len(e.KilledCards())
		for _, a := range agents {
			for _, c := range a.Hand() {
				if c != game.NoCard {
					total++
				}
			}
		}
		return total
	}
	require.Equal(t, game.DeckSize, countCards(), "Conservation must hold after the deal")

	eliminated := make([]bool, 4)
	winner, over := 0, false
	for turn := 0; turn < DefaultMaxTurns && !over; turn++ {
		winner, over = e.Turn()

		require.Equal(t, game.DeckSize, countCards(),
			"Conservation must hold after every turn")
		for i, a := range agents {
			if eliminated[i] {
				require.True(t, a.IsEliminated(), "Elimination must be monotonic")
			}
			eliminated[i] = a.IsEliminated()
			require.GreaterOrEqual(t, a.Coins(), 0, "Coins never go negative")
		}
	}

	if over {
		require.False(t, agents[winner].IsEliminated(), "The winner must have survived")
		survivors := 0
		for _, a := range agents {
			if !a.IsEliminated() {
				survivors++
			}
		}
		require.Equal(t, 1, survivors, "A win means a sole survivor")
	}
}

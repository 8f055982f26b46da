package agent

import (
	"slices"

	"github.com/hobbsbros/contessa/game"
)

// SelectAction scores every available action by its utility weight and
// returns the best one. Ties keep the first-enumerated action so selection
// is stable; with nothing available the agent passes.
func (a *Agent) SelectAction(eliminated []int) game.Action {
	actions := a.availableActions(eliminated)

	best := game.Action{Kind: game.Pass}
	bestUtility := 0.0
	chosen := false
	for _, act := range actions {
		u := a.utility(act)
		if !chosen || u > bestUtility {
			best = act
			bestUtility = u
			chosen = true
		}
	}
	return best
}

// availableActions enumerates the legal actions, including bluffs the agent
// believes it can pull off.
func (a *Agent) availableActions(eliminated []int) []game.Action {
	if a.IsEliminated() {
		return []game.Action{{Kind: game.Pass}}
	}

	// At 10 coins or more the coup is forced.
	if a.coins >= 10 {
		return a.targeted(game.Coup, eliminated, nil)
	}

	actions := []game.Action{{Kind: game.Income}, {Kind: game.ForeignAid}}

	if a.coins >= 7 {
		actions = a.targeted(game.Coup, eliminated, actions)
	}

	// Truthful claims, one per card actually held.
	if a.Check(game.Duke) {
		actions = append(actions, game.Action{Kind: game.Tax})
	}
	if a.Check(game.Captain) {
		actions = a.targeted(game.Steal, eliminated, actions)
	}
	if a.Check(game.Ambassador) {
		actions = append(actions, game.Action{Kind: game.Exchange})
	}
	if a.Check(game.Assassin) && a.coins >= 3 {
		actions = a.targeted(game.Assassinate, eliminated, actions)
	}

	// Bluffs: claims the agent does not hold but believes look plausible
	// enough from public information alone.
	self := a.perceived[a.id]
	if !a.Check(game.Duke) && self.Prob(game.Duke) > a.strategy.LyingCutoff {
		actions = append(actions, game.Action{Kind: game.Tax})
	}
	if !a.Check(game.Captain) && self.Prob(game.Captain) > a.strategy.LyingCutoff {
		actions = a.targeted(game.Steal, eliminated, actions)
	}
	if !a.Check(game.Ambassador) && self.Prob(game.Ambassador) > a.strategy.LyingCutoff {
		actions = append(actions, game.Action{Kind: game.Exchange})
	}
	if !a.Check(game.Assassin) && self.Prob(game.Assassin) > a.strategy.LyingCutoff && a.coins >= 3 {
		actions = a.targeted(game.Assassinate, eliminated, actions)
	}

	return actions
}

// targeted appends one action of the given kind per surviving opponent, in
// ascending seat order.
func (a *Agent) targeted(kind game.ActionKind, eliminated []int, actions []game.Action) []game.Action {
	for i := 0; i <= a.opponents; i++ {
		if i != a.id && !slices.Contains(eliminated, i) {
			actions = append(actions, game.Action{Kind: kind, Target: i})
		}
	}
	return actions
}

// utility looks up the action's weight and applies the two risk discounts:
// foreign aid is worthless when someone probably holds a Duke, and stealing
// from a likely Captain or Ambassador invites a block.
func (a *Agent) utility(act game.Action) float64 {
	u := a.strategy.Utilities.ForKind(act.Kind)

	switch act.Kind {
	case game.ForeignAid:
		for i, hand := range a.perceived {
			if i != a.id && hand.Prob(game.Duke) > a.strategy.LiarCutoff {
				u = 0
			}
		}
	case game.Steal:
		target := a.perceived[act.Target]
		if target.Prob(game.Captain) > a.strategy.LiarCutoff ||
			target.Prob(game.Ambassador) > a.strategy.LiarCutoff {
			u = 0
		}
	}

	return u
}

// CheckChallenge challenges a claim when the claimant's perceived chance of
// holding the card falls below the liar cutoff. Claimless actions and
// eliminated challengers never challenge.
func (a *Agent) CheckChallenge(claimant int, claimed game.Card) bool {
	if claimed == game.NoCard || a.IsEliminated() {
		return false
	}
	return a.perceived[claimant].Prob(claimed) < a.strategy.LiarCutoff
}

// CheckBlock decides whether to block the pending action and with which
// claimed card. The agent is selfish: it only blocks attacks aimed at
// itself, plus foreign aid, which anyone may contest with a Duke claim. A
// block is only worth claiming when the agent's own claim looks convincing
// enough from public information.
func (a *Agent) CheckBlock(act game.Action) (bool, game.Card) {
	if a.IsEliminated() {
		return false, game.NoCard
	}

	self := a.perceived[a.id]
	switch act.Kind {
	case game.ForeignAid:
		return self.Prob(game.Duke) > a.strategy.LyingCutoff, game.Duke
	case game.Assassinate:
		if act.Target != a.id {
			return false, game.NoCard
		}
		return self.Prob(game.Contessa) > a.strategy.LyingCutoff, game.Contessa
	case game.Steal:
		if act.Target != a.id {
			return false, game.NoCard
		}
		captain := self.Prob(game.Captain)
		ambassador := self.Prob(game.Ambassador)
		if captain > ambassador {
			return captain > a.strategy.LyingCutoff, game.Captain
		}
		return ambassador > a.strategy.LyingCutoff, game.Ambassador
	default:
		return false, game.NoCard
	}
}

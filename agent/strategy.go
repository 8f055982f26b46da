package agent

import (
	"golang.org/x/exp/rand"

	"github.com/hobbsbros/contessa/game"
)

// ActionUtilities holds one scalar weight per action kind. Pass always
// scores zero and has no weight.
type ActionUtilities struct {
	Income      float64 `json:"income"`
	ForeignAid  float64 `json:"foreignAid"`
	Coup        float64 `json:"coup"`
	Tax         float64 `json:"tax"`
	Assassinate float64 `json:"assassinate"`
	Exchange    float64 `json:"exchange"`
	Steal       float64 `json:"steal"`
}

// ForKind returns the weight for an action kind.
func (u ActionUtilities) ForKind(k game.ActionKind) float64 {
	switch k {
	case game.Income:
		return u.Income
	case game.ForeignAid:
		return u.ForeignAid
	case game.Coup:
		return u.Coup
	case game.Tax:
		return u.Tax
	case game.Assassinate:
		return u.Assassinate
	case game.Exchange:
		return u.Exchange
	case game.Steal:
		return u.Steal
	default:
		return 0
	}
}

// Strategy is the trainable parameter set of an automated player.
// LiarCutoff gates disbelief of others' claims; LyingCutoff gates the
// self-confidence needed to bluff or block.
type Strategy struct {
	LiarCutoff  float64         `json:"liarCutoff"`
	LyingCutoff float64         `json:"lyingCutoff"`
	Utilities   ActionUtilities `json:"utilities"`
}

// RandomStrategy draws fresh parameters uniformly from [0,1).
func RandomStrategy(rng *rand.Rand) Strategy {
	return Strategy{
		LiarCutoff:  rng.Float64(),
		LyingCutoff: rng.Float64(),
		Utilities: ActionUtilities{
			Income:      rng.Float64(),
			ForeignAid:  rng.Float64(),
			Coup:        rng.Float64(),
			Tax:         rng.Float64(),
			Assassinate: rng.Float64(),
			Exchange:    rng.Float64(),
			Steal:       rng.Float64(),
		},
	}
}

// Mutate returns a perturbed copy: cutoffs move by uniform noise in
// [-0.01,+0.01], each utility weight by uniform noise in [0,0.1). The
// utility noise is non-negative on purpose; selection only ever compares
// relative weights.
func (s Strategy) Mutate(rng *rand.Rand) Strategy {
	return Strategy{
		LiarCutoff:  s.LiarCutoff + 0.01*(2*rng.Float64()-1),
		LyingCutoff: s.LyingCutoff + 0.01*(2*rng.Float64()-1),
		Utilities: ActionUtilities{
			Income:      s.Utilities.Income + 0.1*rng.Float64(),
			ForeignAid:  s.Utilities.ForeignAid + 0.1*rng.Float64(),
			Coup:        s.Utilities.Coup + 0.1*rng.Float64(),
			Tax:         s.Utilities.Tax + 0.1*rng.Float64(),
			Assassinate: s.Utilities.Assassinate + 0.1*rng.Float64(),
			Exchange:    s.Utilities.Exchange + 0.1*rng.Float64(),
			Steal:       s.Utilities.Steal + 0.1*rng.Float64(),
		},
	}
}

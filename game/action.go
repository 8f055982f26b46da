package game

import "fmt"

// ActionKind enumerates the actions available on a turn.
type ActionKind int

const (
	Income ActionKind = iota
	ForeignAid
	Coup
	Tax
	Assassinate
	Exchange
	Steal
	Pass
)

// Action is one turn's declared action. Target is the seat index of the
// affected player and is only meaningful for Coup, Assassinate and Steal.
type Action struct {
	Kind   ActionKind
	Target int
}

// ClaimedCard returns the character the active player implicitly claims to
// hold by taking this action, or NoCard for actions that carry no claim
// (Income, ForeignAid, Coup and Pass are unchallengeable).
func (a Action) ClaimedCard() Card {
	switch a.Kind {
	case Tax:
		return Duke
	case Assassinate:
		return Assassin
	case Exchange:
		return Ambassador
	case Steal:
		return Captain
	default:
		return NoCard
	}
}

// Blockable reports whether any rival claim can nullify this action.
// Coup in particular can be neither challenged nor blocked.
func (a Action) Blockable() bool {
	switch a.Kind {
	case ForeignAid, Assassinate, Steal:
		return true
	default:
		return false
	}
}

// HasTarget reports whether the action is aimed at another player.
func (a Action) HasTarget() bool {
	switch a.Kind {
	case Coup, Assassinate, Steal:
		return true
	default:
		return false
	}
}

func (k ActionKind) String() string {
	switch k {
	case Income:
		return "Income"
	case ForeignAid:
		return "ForeignAid"
	case Coup:
		return "Coup"
	case Tax:
		return "Tax"
	case Assassinate:
		return "Assassinate"
	case Exchange:
		return "Exchange"
	case Steal:
		return "Steal"
	case Pass:
		return "Pass"
	default:
		return "Unknown"
	}
}

func (a Action) String() string {
	if a.HasTarget() {
		return fmt.Sprintf("%s(%d)", a.Kind, a.Target)
	}
	return a.Kind.String()
}

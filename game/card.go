package game

// Card identifies one of the five character types. The zero value NoCard
// marks an empty hand slot (lost influence) and doubles as the "no claim"
// marker for untestable actions.
type Card int

const (
	NoCard Card = iota
	Duke
	Captain
	Ambassador
	Assassin
	Contessa
)

const (
	// CopiesPerCard is the number of copies of each character in the deck.
	CopiesPerCard = 3

	// DeckSize is the total number of cards in play.
	DeckSize = 15
)

// Characters returns the five real character types, excluding NoCard.
func Characters() []Card {
	return []Card{Duke, Captain, Ambassador, Assassin, Contessa}
}

func (c Card) String() string {
	switch c {
	case Duke:
		return "Duke"
	case Captain:
		return "Captain"
	case Ambassador:
		return "Ambassador"
	case Assassin:
		return "Assassin"
	case Contessa:
		return "Contessa"
	case NoCard:
		return "None"
	default:
		return "Unknown"
	}
}

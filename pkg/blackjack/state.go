package blackjack

import (
	"blackjack-server/pkg/deck"
)

// VisibleCard is a card as a client sees it. A concealed card has
// Hidden set and no card attached.
type VisibleCard struct {
	Card   *deck.Card `json:"card,omitempty"`
	Hidden bool       `json:"hidden,omitempty"`
}

// ParticipantState is one seat's view within a game state update
type ParticipantState struct {
	ID   Seat   `json:"id"`
	Name string `json:"name"`
	// Chips is omitted for the dealer
	Chips *int          `json:"chips,omitempty"`
	Hand  []VisibleCard `json:"hand"`
	// Points is nil while the hand is concealed
	Points       *int   `json:"points,omitempty"`
	CurrentBet   int    `json:"currentBet"`
	IsDone       bool   `json:"isDone"`
	IsBust       bool   `json:"isBust"`
	HasBlackjack bool   `json:"hasBlackjack"`
	Message      string `json:"message"`
}

// GameState is the full session view broadcast after every transition
type GameState struct {
	GameID  string            `json:"gameId"`
	Phase   string            `json:"gamePhase"`
	SeatOne *ParticipantState `json:"seatOne"`
	SeatTwo *ParticipantState `json:"seatTwo,omitempty"`
	Dealer  *ParticipantState `json:"dealer"`
	// CurrentTurn is set only during a turn phase
	CurrentTurn string `json:"currentTurn,omitempty"`
}

// State builds the view of the game that is safe to send to every seat.
// Human hands are always revealed; the dealer's hand stays concealed
// behind its first card until the dealer is done, has blackjack, or the
// round is over.
func (g *Game) State() *GameState {
	revealDealer := g.dealer.isDone || g.dealer.hasBlackjack || g.phase == PhaseRoundOver

	gs := &GameState{
		GameID:  g.id,
		Phase:   g.phase.String(),
		SeatOne: g.seatOne.state(true),
		Dealer:  g.dealer.state(revealDealer),
	}

	if g.seatTwo != nil {
		gs.SeatTwo = g.seatTwo.state(true)
	}

	switch g.phase {
	case PhaseSeatOneTurn, PhaseSeatTwoTurn, PhaseDealerTurn:
		gs.CurrentTurn = g.phase.String()
	}

	return gs
}

func (p *Participant) state(reveal bool) *ParticipantState {
	hand := make([]VisibleCard, 0, len(p.hand))
	if reveal {
		for _, card := range p.hand {
			hand = append(hand, VisibleCard{Card: card})
		}
	} else if len(p.hand) > 0 {
		hand = append(hand, VisibleCard{Card: p.hand[0]})
		if len(p.hand) > 1 {
			hand = append(hand, VisibleCard{Hidden: true})
		}
	}

	st := &ParticipantState{
		ID:           p.seat,
		Name:         p.name,
		Hand:         hand,
		CurrentBet:   p.bet,
		IsDone:       p.isDone,
		IsBust:       p.isBust,
		HasBlackjack: p.hasBlackjack,
		Message:      p.statusMessage,
	}

	if p.seat != SeatDealer {
		chips := p.chips
		st.Chips = &chips
	}

	if reveal {
		points := p.HandValue()
		st.Points = &points
	}

	return st
}

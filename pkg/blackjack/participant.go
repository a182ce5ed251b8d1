package blackjack

import (
	"fmt"

	"blackjack-server/pkg/deck"
)

// Seat identifies a position at the table
type Seat string

// seat constants
const (
	SeatOne    Seat = "seat1"
	SeatTwo    Seat = "seat2"
	SeatDealer Seat = "dealer"
)

// Participant is the per-seat mutable state within a game.
// The hand value is never cached; it is recomputed from the hand on every call.
type Participant struct {
	seat          Seat
	name          string
	chips         int
	hand          []*deck.Card
	bet           int
	isDone        bool
	isBust        bool
	hasBlackjack  bool
	statusMessage string
}

func newParticipant(seat Seat, name string, chips int) *Participant {
	return &Participant{
		seat:  seat,
		name:  name,
		chips: chips,
		hand:  make([]*deck.Card, 0, 8),
	}
}

// AddCard appends a card to the hand and refreshes the status flags
func (p *Participant) AddCard(card *deck.Card) {
	p.hand = append(p.hand, card)
	p.updateStatus()
}

// HandValue computes the blackjack value of the hand.
// Face cards count 10 and aces count 11; aces are demoted to 1 one at a
// time while the total exceeds 21 and a demotable ace remains.
func (p *Participant) HandValue() int {
	value, aces := 0, 0
	for _, card := range p.hand {
		switch {
		case card.Rank == deck.Ace:
			value += 11
			aces++
		case card.Rank >= 10:
			value += 10
		default:
			value += card.Rank
		}
	}

	for value > 21 && aces > 0 {
		value -= 10
		aces--
	}

	return value
}

func (p *Participant) updateStatus() {
	value := p.HandValue()
	p.isBust = value > 21
	p.hasBlackjack = value == 21 && len(p.hand) == 2
	if p.isBust {
		p.isDone = true
	}
}

// placeBet deducts the amount from the balance and records the bet.
// An invalid amount leaves both the balance and the bet untouched.
func (p *Participant) placeBet(amount int) error {
	if amount <= 0 || amount > p.chips {
		return ErrInvalidBet
	}

	p.chips -= amount
	p.bet = amount
	p.statusMessage = fmt.Sprintf("Bet %d", amount)

	return nil
}

// winBet returns the stake plus winnings. A blackjack pays 3:2, truncated.
func (p *Participant) winBet(blackjack bool) {
	winnings := p.bet
	if blackjack {
		winnings = p.bet * 3 / 2
	}

	p.chips += p.bet + winnings
}

// pushBet returns the stake with no gain or loss
func (p *Participant) pushBet() {
	p.chips += p.bet
}

// resetForNewRound clears the hand, bet, flags and message. Chips carry over.
func (p *Participant) resetForNewRound() {
	p.hand = make([]*deck.Card, 0, 8)
	p.bet = 0
	p.isDone = false
	p.isBust = false
	p.hasBlackjack = false
	p.statusMessage = ""
}

// Hand returns a shallow copy of the participant's hand
func (p *Participant) Hand() []*deck.Card {
	return append([]*deck.Card{}, p.hand...)
}

// Chips returns the current chip balance
func (p *Participant) Chips() int {
	return p.chips
}

// Bet returns the current bet
func (p *Participant) Bet() int {
	return p.bet
}

// IsDone returns true once the participant has no further action this round
func (p *Participant) IsDone() bool {
	return p.isDone
}

// IsBust returns true if the hand value exceeds 21
func (p *Participant) IsBust() bool {
	return p.isBust
}

// HasBlackjack returns true for a two-card 21
func (p *Participant) HasBlackjack() bool {
	return p.hasBlackjack
}

// Name returns the participant's display name
func (p *Participant) Name() string {
	return p.name
}

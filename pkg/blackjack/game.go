package blackjack

import (
	"fmt"

	"blackjack-server/pkg/deck"

	"github.com/sirupsen/logrus"
)

// CardSource deals cards one at a time. A card source never fails to
// produce a card.
type CardSource interface {
	Draw() *deck.Card
}

// Phase represents the current phase of the game
type Phase int

const (
	// PhaseWaitingForSeatTwo is before the second player has joined
	PhaseWaitingForSeatTwo Phase = iota
	// PhaseBetting is when seats place their bets
	PhaseBetting
	// PhaseSeatOneTurn is the first seat's turn
	PhaseSeatOneTurn
	// PhaseSeatTwoTurn is the second seat's turn
	PhaseSeatTwoTurn
	// PhaseDealerTurn is when the automated dealer plays out its hand
	PhaseDealerTurn
	// PhaseRoundOver is after settlement, awaiting a new-round request
	PhaseRoundOver
)

func (p Phase) String() string {
	switch p {
	case PhaseWaitingForSeatTwo:
		return "WAITING_FOR_SEAT2"
	case PhaseBetting:
		return "BETTING"
	case PhaseSeatOneTurn:
		return "SEAT1_TURN"
	case PhaseSeatTwoTurn:
		return "SEAT2_TURN"
	case PhaseDealerTurn:
		return "DEALER_TURN"
	case PhaseRoundOver:
		return "ROUND_OVER"
	}

	panic(fmt.Sprintf("unknown phase: %d", int(p)))
}

// Options configures a new game
type Options struct {
	// StartingChips is each seat's initial balance
	StartingChips int
	// Decks is the number of logical decks in the shoe
	Decks int
}

// DefaultOptions returns the default game options
func DefaultOptions() Options {
	return Options{
		StartingChips: 100,
		Decks:         1,
	}
}

// Game is a single two-seat blackjack session.
// A game is not safe for concurrent use; the room serializes all calls
// through its run loop.
type Game struct {
	id         string
	options    Options
	shoe       CardSource
	seatOne    *Participant
	seatTwo    *Participant
	dealer     *Participant
	phase      Phase
	betsPlaced map[Seat]bool

	logger logrus.FieldLogger
}

// NewGame creates a game with the first seat filled, waiting for a second player
func NewGame(id, seatOneName string, options Options) *Game {
	if options.StartingChips <= 0 {
		options.StartingChips = DefaultOptions().StartingChips
	}

	if options.Decks < 1 {
		options.Decks = DefaultOptions().Decks
	}

	g := &Game{
		id:         id,
		options:    options,
		shoe:       deck.NewShoe(options.Decks),
		seatOne:    newParticipant(SeatOne, seatOneName, options.StartingChips),
		dealer:     newParticipant(SeatDealer, "Dealer", 0),
		phase:      PhaseWaitingForSeatTwo,
		betsPlaced: make(map[Seat]bool),
		logger:     logrus.WithField("game", id),
	}

	g.logger.WithField("seatOne", seatOneName).Info("game created, waiting for opponent")
	return g
}

// ID returns the game's opaque identifier
func (g *Game) ID() string {
	return g.id
}

// Phase returns the current phase
func (g *Game) Phase() Phase {
	return g.phase
}

// Participant returns the participant in the given seat, or nil
func (g *Game) Participant(seat Seat) *Participant {
	switch seat {
	case SeatOne:
		return g.seatOne
	case SeatTwo:
		return g.seatTwo
	case SeatDealer:
		return g.dealer
	}

	return nil
}

// AddSeatTwo fills the second seat and opens betting
func (g *Game) AddSeatTwo(name string) error {
	if g.phase != PhaseWaitingForSeatTwo {
		return ErrGameFull
	}

	g.seatTwo = newParticipant(SeatTwo, name, g.options.StartingChips)
	g.phase = PhaseBetting

	g.logger.WithField("seatTwo", name).Info("second seat filled, betting open")
	return nil
}

// PlaceBet places a bet for the seat. Once every occupied seat has bet,
// the initial cards are dealt.
func (g *Game) PlaceBet(seat Seat, amount int) error {
	if g.phase != PhaseBetting {
		return ErrNotBettingPhase
	}

	p := g.humanParticipant(seat)
	if p == nil {
		return ErrNoSuchSeat
	}

	if err := p.placeBet(amount); err != nil {
		return err
	}

	g.betsPlaced[seat] = true
	g.logger.WithFields(logrus.Fields{
		"seat":   seat,
		"amount": amount,
	}).Info("bet placed")

	if g.allBetsPlaced() {
		g.dealInitialCards()
	}

	return nil
}

// PlayerAction performs a HIT or STAND for the seat whose turn it is
func (g *Game) PlayerAction(seat Seat, action Action) error {
	p := g.humanParticipant(seat)
	if p == nil {
		return ErrNoSuchSeat
	}

	if g.phase != turnPhase(seat) || p.isDone {
		return ErrNotYourTurn
	}

	switch action {
	case ActionHit:
		p.AddCard(g.shoe.Draw())
		value := p.HandValue()

		switch {
		case p.isBust:
			// the bet was deducted at placement; a bust simply forfeits it
			p.statusMessage = fmt.Sprintf("Bust (%d). Lose.", value)
		case value == 21:
			p.isDone = true
			p.statusMessage = "21. Standing."
		default:
			p.statusMessage = fmt.Sprintf("Hit. Points: %d", value)
		}
	case ActionStand:
		p.isDone = true
		p.statusMessage = fmt.Sprintf("Stand (%d).", p.HandValue())
	default:
		return ErrUnknownAction
	}

	g.logger.WithFields(logrus.Fields{
		"seat":   seat,
		"action": action,
	}).Info("player action")

	if p.isDone {
		g.advanceTurn()
	}

	return nil
}

// StartNewRound resets the table for another round in the same session.
// Chips carry over; hands, bets and flags are cleared and a fresh
// shuffled shoe is issued.
func (g *Game) StartNewRound() error {
	if g.phase != PhaseRoundOver {
		return ErrRoundNotOver
	}

	for _, p := range g.participants() {
		p.resetForNewRound()
	}

	g.shoe = deck.NewShoe(g.options.Decks)
	g.betsPlaced = make(map[Seat]bool)
	g.phase = PhaseBetting

	g.logger.Info("new round started, betting open")
	return nil
}

// dealInitialCards deals two passes of one card each to seat one, seat
// two (if present) and the dealer, resolves blackjacks, and decides the
// next phase.
func (g *Game) dealInitialCards() {
	for pass := 0; pass < 2; pass++ {
		for _, p := range g.participants() {
			p.AddCard(g.shoe.Draw())
		}
	}

	g.logger.Info("initial cards dealt")

	dealerBlackjack := g.dealer.hasBlackjack
	for _, p := range g.humanSeats() {
		switch {
		case p.hasBlackjack && !dealerBlackjack:
			p.isDone = true
			p.winBet(true)
			p.statusMessage = "Blackjack!"
		case p.hasBlackjack && dealerBlackjack:
			p.isDone = true
			p.pushBet()
			p.statusMessage = "Blackjack push"
		case dealerBlackjack:
			p.isDone = true
			p.statusMessage = "Lose (dealer blackjack)"
		}
	}

	switch {
	case g.allSeatsDone():
		if dealerBlackjack || g.allSeatsBustOrBlackjack() {
			g.phase = PhaseRoundOver
			g.finalizeRound()
		} else {
			g.phase = PhaseDealerTurn
			g.dealerTurn()
		}
	case !g.seatOne.isDone:
		g.phase = PhaseSeatOneTurn
	default:
		g.phase = PhaseSeatTwoTurn
	}
}

// advanceTurn moves play to the next not-done seat, or to the dealer
func (g *Game) advanceTurn() {
	switch g.phase {
	case PhaseSeatOneTurn:
		if g.seatTwo != nil && !g.seatTwo.isDone {
			g.phase = PhaseSeatTwoTurn
			return
		}

		g.phase = PhaseDealerTurn
	case PhaseSeatTwoTurn:
		g.phase = PhaseDealerTurn
	}

	if g.phase == PhaseDealerTurn {
		g.dealerTurn()
	}
}

// dealerTurn plays out the automated dealer.
// When every human seat is already bust or has blackjack, the dealer
// wins by default and stands without drawing, even on a total below 17.
// Otherwise the dealer draws to 17 and stands.
func (g *Game) dealerTurn() {
	g.dealer.isDone = false

	if g.allSeatsBustOrBlackjack() && !g.dealer.hasBlackjack {
		g.dealer.isDone = true
		g.dealer.statusMessage = "Dealer wins (everyone bust or blackjack)"
	} else {
		for g.dealer.HandValue() < 17 && !g.dealer.isBust {
			g.dealer.AddCard(g.shoe.Draw())
		}

		g.dealer.isDone = true
		if g.dealer.isBust {
			g.dealer.statusMessage = fmt.Sprintf("Dealer busts (%d)", g.dealer.HandValue())
		} else {
			g.dealer.statusMessage = fmt.Sprintf("Dealer stands (%d)", g.dealer.HandValue())
		}
	}

	g.logger.WithField("dealer", g.dealer.HandValue()).Info("dealer turn complete")

	g.phase = PhaseRoundOver
	g.finalizeRound()
}

// finalizeRound settles every seat that was not already resolved by a
// blackjack or a bust during the deal or its own turn.
func (g *Game) finalizeRound() {
	dealerValue := g.dealer.HandValue()
	dealerBust := g.dealer.isBust

	for _, p := range g.humanSeats() {
		if p.hasBlackjack || p.isBust {
			continue
		}

		value := p.HandValue()
		switch {
		case dealerBust:
			p.winBet(false)
			p.statusMessage = fmt.Sprintf("Win %d vs dealer bust", value)
		case value > dealerValue:
			p.winBet(false)
			p.statusMessage = fmt.Sprintf("Win %d vs %d", value, dealerValue)
		case value < dealerValue:
			p.statusMessage = fmt.Sprintf("Lose %d vs %d", value, dealerValue)
		default:
			p.pushBet()
			p.statusMessage = fmt.Sprintf("Push %d vs %d", value, dealerValue)
		}
	}

	g.logger.Info("round settled")
}

// participants returns all active participants in deal order
func (g *Game) participants() []*Participant {
	participants := make([]*Participant, 0, 3)
	participants = append(participants, g.seatOne)
	if g.seatTwo != nil {
		participants = append(participants, g.seatTwo)
	}

	return append(participants, g.dealer)
}

// humanSeats returns the occupied human seats in order
func (g *Game) humanSeats() []*Participant {
	seats := make([]*Participant, 0, 2)
	seats = append(seats, g.seatOne)
	if g.seatTwo != nil {
		seats = append(seats, g.seatTwo)
	}

	return seats
}

func (g *Game) humanParticipant(seat Seat) *Participant {
	switch seat {
	case SeatOne:
		return g.seatOne
	case SeatTwo:
		return g.seatTwo
	}

	return nil
}

func (g *Game) allSeatsDone() bool {
	for _, p := range g.humanSeats() {
		if !p.isDone {
			return false
		}
	}

	return true
}

func (g *Game) allSeatsBustOrBlackjack() bool {
	for _, p := range g.humanSeats() {
		if !p.isBust && !p.hasBlackjack {
			return false
		}
	}

	return true
}

func (g *Game) allBetsPlaced() bool {
	if !g.betsPlaced[SeatOne] {
		return false
	}

	return g.seatTwo == nil || g.betsPlaced[SeatTwo]
}

func turnPhase(seat Seat) Phase {
	if seat == SeatTwo {
		return PhaseSeatTwoTurn
	}

	return PhaseSeatOneTurn
}

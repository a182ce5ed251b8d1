package room

import (
	"encoding/json"
	"fmt"

	"blackjack-server/pkg/blackjack"
	"blackjack-server/pkg/token"

	"github.com/sirupsen/logrus"
)

const gameIDLength = 8

// session ties a game to the clients seated at it
type session struct {
	game    *blackjack.Game
	clients map[blackjack.Seat]*Client
}

type seatAssignment struct {
	session *session
	seat    blackjack.Seat
}

type inboundMessage struct {
	client *Client
	msg    *Message
}

// PitBoss pairs connected players into games and routes their messages.
// All registry and game mutation happens on the run loop goroutine, so
// no two operations on the same game ever interleave.
type PitBoss struct {
	options blackjack.Options

	clients  map[*Client]bool
	sessions map[string]*session
	seats    map[*Client]*seatAssignment
	pending  *session

	connect    chan *Client
	disconnect chan *Client
	inbound    chan inboundMessage
	close      chan bool
}

// NewPitBoss returns a new dispatch object
func NewPitBoss(options blackjack.Options) *PitBoss {
	return &PitBoss{
		options:    options,
		clients:    make(map[*Client]bool),
		sessions:   make(map[string]*session),
		seats:      make(map[*Client]*seatAssignment),
		connect:    make(chan *Client, 256),
		disconnect: make(chan *Client, 256),
		inbound:    make(chan inboundMessage, 256),
		close:      make(chan bool),
	}
}

// StartShift starts the PitBoss run loop
func (p *PitBoss) StartShift() {
	go p.runLoop()
}

// EndShift terminates the run loop
func (p *PitBoss) EndShift() {
	close(p.close)
}

func (p *PitBoss) runLoop() {
	for {
		select {
		case client := <-p.connect:
			p.handleConnect(client)
		case client := <-p.disconnect:
			p.handleDisconnect(client)
		case in := <-p.inbound:
			p.handleMessage(in.client, in.msg)
		case <-p.close:
			logrus.Debug("terminating pit boss run loop")
			return
		}
	}
}

// ClientConnected is called when a client connects to the server
func (p *PitBoss) ClientConnected(client *Client) {
	p.connect <- client
}

// ClientDisconnected is called when a client disconnects from the server
func (p *PitBoss) ClientDisconnected(client *Client) {
	p.disconnect <- client
}

// ReceivedMessage is called when a client sends a message to the server
func (p *PitBoss) ReceivedMessage(client *Client, msg *Message) {
	p.inbound <- inboundMessage{client: client, msg: msg}
}

// NOTE: must only be called from the run loop
func (p *PitBoss) handleConnect(client *Client) {
	client.pitBoss = p
	p.clients[client] = true

	logrus.WithField("client", client.String()).Debug("client connected")

	client.Send(newWelcome(client))
}

// NOTE: must only be called from the run loop
func (p *PitBoss) handleDisconnect(client *Client) {
	delete(p.clients, client)

	assignment, seated := p.seats[client]
	if !seated {
		logrus.WithField("client", client.String()).Debug("client disconnected")
		return
	}

	delete(p.seats, client)

	s := assignment.session
	for _, other := range s.clients {
		if other == client {
			continue
		}

		// the surviving player is unseated but stays connected,
		// free to request a new game
		delete(p.seats, other)
		if !other.Send(newOpponentLeft()) {
			logrus.WithField("client", other.String()).Warn("dropped opponent-left notice")
		}
	}

	delete(p.sessions, s.game.ID())
	if p.pending == s {
		p.pending = nil
	}

	logrus.WithFields(logrus.Fields{
		"client": client.String(),
		"game":   s.game.ID(),
	}).Info("client disconnected, game destroyed")
}

// NOTE: must only be called from the run loop
func (p *PitBoss) handleMessage(client *Client, msg *Message) {
	defer func() {
		if r := recover(); r != nil {
			logrus.WithFields(logrus.Fields{
				"client": client.String(),
				"msg":    msg.Type,
				"panic":  r,
			}).Error("recovered from panic handling message")
		}
	}()

	switch msg.Type {
	case MessageTypeJoinGame:
		p.handleJoin(client)
	case MessageTypePlaceBet:
		var payload PlaceBetPayload
		if !p.decodePayload(client, msg, &payload) {
			return
		}

		s, seat, ok := p.resolveSeat(client, payload.GameID)
		if !ok {
			return
		}

		if err := s.game.PlaceBet(seat, payload.Amount); err != nil {
			client.Send(newErrorResponse(err.Error()))
			return
		}

		p.broadcastState(s)
	case MessageTypePlayerAction:
		var payload PlayerActionPayload
		if !p.decodePayload(client, msg, &payload) {
			return
		}

		s, seat, ok := p.resolveSeat(client, payload.GameID)
		if !ok {
			return
		}

		action, err := blackjack.ActionFromString(payload.Action)
		if err != nil {
			client.Send(newErrorResponse(err.Error()))
			return
		}

		if err := s.game.PlayerAction(seat, action); err != nil {
			client.Send(newErrorResponse(err.Error()))
			return
		}

		p.broadcastState(s)
	case MessageTypeStartNewRound:
		var payload StartNewRoundPayload
		if !p.decodePayload(client, msg, &payload) {
			return
		}

		s, _, ok := p.resolveSeat(client, payload.GameID)
		if !ok {
			return
		}

		if err := s.game.StartNewRound(); err != nil {
			client.Send(newErrorResponse(err.Error()))
			return
		}

		p.broadcastState(s)
	default:
		logrus.WithFields(logrus.Fields{
			"client": client.String(),
			"msg":    msg.Type,
		}).Warn("unknown message type")
		client.Send(newErrorResponse(fmt.Sprintf("unrecognized message type: %s", msg.Type)))
	}
}

// NOTE: must only be called from the run loop
func (p *PitBoss) handleJoin(client *Client) {
	if assignment, seated := p.seats[client]; seated {
		client.Send(newErrorResponse(fmt.Sprintf("already in game %s", assignment.session.game.ID())))
		return
	}

	if p.pending == nil {
		id, err := token.Generate(gameIDLength)
		if err != nil {
			logrus.WithError(err).Error("could not generate game id")
			client.Send(newErrorResponse("could not create game"))
			return
		}

		game := blackjack.NewGame(id, client.Name(), p.options)
		s := &session{
			game: game,
			clients: map[blackjack.Seat]*Client{
				blackjack.SeatOne: client,
			},
		}

		p.sessions[id] = s
		p.seats[client] = &seatAssignment{session: s, seat: blackjack.SeatOne}
		p.pending = s

		client.Send(newGameCreated(id, client))
		p.broadcastState(s)
		return
	}

	s := p.pending
	if err := s.game.AddSeatTwo(client.Name()); err != nil {
		client.Send(newErrorResponse(err.Error()))
		return
	}

	s.clients[blackjack.SeatTwo] = client
	p.seats[client] = &seatAssignment{session: s, seat: blackjack.SeatTwo}
	p.pending = nil

	client.Send(newJoinedGame(s.game.ID(), client))
	if seatOne := s.clients[blackjack.SeatOne]; seatOne != nil {
		seatOne.Send(newOpponentJoined(client))
	}

	p.broadcastState(s)
}

func (p *PitBoss) decodePayload(client *Client, msg *Message, payload interface{}) bool {
	if err := json.Unmarshal(msg.Payload, payload); err != nil {
		logrus.WithFields(logrus.Fields{
			"client": client.String(),
			"msg":    msg.Type,
		}).WithError(err).Warn("malformed payload")

		client.Send(newErrorResponse("malformed payload"))
		return false
	}

	return true
}

// resolveSeat verifies the client holds a seat in the named game
func (p *PitBoss) resolveSeat(client *Client, gameID string) (*session, blackjack.Seat, bool) {
	assignment, seated := p.seats[client]
	if !seated || assignment.session.game.ID() != gameID {
		client.Send(newErrorResponse("no such game or seat"))
		return nil, "", false
	}

	return assignment.session, assignment.seat, true
}

// broadcastState sends the full session view to every seated client.
// A failed send is discarded, never retried.
func (p *PitBoss) broadcastState(s *session) {
	env := newGameState(s.game.State())
	for _, client := range s.clients {
		if !client.Send(env) {
			logrus.WithField("client", client.String()).Warn("dropped state update")
		}
	}
}

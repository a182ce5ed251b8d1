package room

import (
	"fmt"

	"blackjack-server/internal/util"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Client is a player connected to the server via websockets
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	id   string
	name string
	send chan *Envelope

	pitBoss *PitBoss
}

// NewClient returns a new client object with a fresh id and display name
func NewClient(conn *websocket.Conn) *Client {
	return &Client{
		Conn:  conn,
		Close: make(chan string),
		id:    uuid.New().String(),
		name:  util.GetRandomName(),
		send:  make(chan *Envelope, 256),
	}
}

// Send queues a message for delivery to the web client.
// A false return means the outbound buffer was full and the message was
// dropped; sends are fire-and-forget and never retried.
func (c *Client) Send(msg *Envelope) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// SendChan returns a read-only channel of outbound messages
func (c *Client) SendChan() <-chan *Envelope {
	return c.send
}

// ID returns the client's server-assigned player id
func (c *Client) ID() string {
	return c.id
}

// Name returns the client's display name
func (c *Client) Name() string {
	return c.name
}

// String returns a traceable identifier for the client
func (c *Client) String() string {
	return fmt.Sprintf("%s (%s)", c.id, c.name)
}

// ReceivedMessage is called when the server receives a message from a connected client
func (c *Client) ReceivedMessage(msg *Message) {
	if c.pitBoss == nil {
		logrus.WithField("msg", msg.Type).Warn("received message, but client is not registered")
		return
	}

	c.pitBoss.ReceivedMessage(c, msg)
}

package room

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"blackjack-server/pkg/blackjack"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expectEnvelope(t *testing.T, c *Client, msgType string) *Envelope {
	t.Helper()

	select {
	case env := <-c.SendChan():
		require.Equal(t, msgType, env.Type)
		return env
	default:
		t.Fatalf("expected a %s message but the queue is empty", msgType)
		return nil
	}
}

func expectNoEnvelope(t *testing.T, c *Client) {
	t.Helper()

	select {
	case env := <-c.SendChan():
		t.Fatalf("expected no message, got %s", env.Type)
	default:
	}
}

func drainClient(c *Client) {
	for {
		select {
		case <-c.SendChan():
		default:
			return
		}
	}
}

// pairedGame connects two clients and matches them into a game.
// Both client queues are drained before returning.
func pairedGame(t *testing.T, p *PitBoss) (c1, c2 *Client, gameID string) {
	t.Helper()

	c1 = NewClient(nil)
	p.handleConnect(c1)
	p.handleMessage(c1, &Message{Type: MessageTypeJoinGame})

	drainClient(c1)

	require.NotNil(t, p.pending)
	gameID = p.pending.game.ID()

	c2 = NewClient(nil)
	p.handleConnect(c2)
	p.handleMessage(c2, &Message{Type: MessageTypeJoinGame})

	drainClient(c1)
	drainClient(c2)

	require.Nil(t, p.pending)
	return c1, c2, gameID
}

func rawPayload(t *testing.T, format string, a ...interface{}) json.RawMessage {
	t.Helper()
	return json.RawMessage(fmt.Sprintf(format, a...))
}

func TestPitBoss_Matchmaking(t *testing.T) {
	p := NewPitBoss(blackjack.DefaultOptions())

	c1 := NewClient(nil)
	p.handleConnect(c1)
	welcome := expectEnvelope(t, c1, MessageTypeServerWelcome)
	assert.Equal(t, c1.ID(), welcome.Payload.(welcomePayload).PlayerID)

	p.handleMessage(c1, &Message{Type: MessageTypeJoinGame})
	created := expectEnvelope(t, c1, MessageTypeGameCreated)
	payload := created.Payload.(seatAssignedPayload)
	assert.Equal(t, blackjack.SeatOne, payload.Seat)
	assert.Equal(t, gameIDLength, len(payload.GameID))

	state := expectEnvelope(t, c1, MessageTypeGameStateUpdate)
	assert.Equal(t, "WAITING_FOR_SEAT2", state.Payload.(*blackjack.GameState).Phase)

	// a seated player cannot request another game
	p.handleMessage(c1, &Message{Type: MessageTypeJoinGame})
	expectEnvelope(t, c1, MessageTypeError)

	c2 := NewClient(nil)
	p.handleConnect(c2)
	expectEnvelope(t, c2, MessageTypeServerWelcome)

	p.handleMessage(c2, &Message{Type: MessageTypeJoinGame})
	joined := expectEnvelope(t, c2, MessageTypeJoinedGame)
	assert.Equal(t, payload.GameID, joined.Payload.(seatAssignedPayload).GameID)
	assert.Equal(t, blackjack.SeatTwo, joined.Payload.(seatAssignedPayload).Seat)

	opponent := expectEnvelope(t, c1, MessageTypeOpponentJoined)
	assert.Equal(t, c2.Name(), opponent.Payload.(opponentJoinedPayload).OpponentName)

	expectEnvelope(t, c1, MessageTypeGameStateUpdate)
	state = expectEnvelope(t, c2, MessageTypeGameStateUpdate)
	assert.Equal(t, "BETTING", state.Payload.(*blackjack.GameState).Phase)

	assert.Nil(t, p.pending)
}

func TestPitBoss_PlaceBetRouting(t *testing.T) {
	p := NewPitBoss(blackjack.DefaultOptions())
	c1, c2, gameID := pairedGame(t, p)

	// rule violations are private errors with no broadcast
	p.handleMessage(c1, &Message{
		Type:    MessageTypePlaceBet,
		Payload: rawPayload(t, `{"gameId":%q,"amount":0}`, gameID),
	})
	expectEnvelope(t, c1, MessageTypeError)
	expectNoEnvelope(t, c2)

	// unroutable game id
	p.handleMessage(c1, &Message{
		Type:    MessageTypePlaceBet,
		Payload: rawPayload(t, `{"gameId":"bogus","amount":10}`),
	})
	expectEnvelope(t, c1, MessageTypeError)

	// malformed payload
	p.handleMessage(c1, &Message{
		Type:    MessageTypePlaceBet,
		Payload: rawPayload(t, `{"gameId":%q,"amount":"ten"}`, gameID),
	})
	expectEnvelope(t, c1, MessageTypeError)

	// a valid bet is broadcast to both seats
	p.handleMessage(c1, &Message{
		Type:    MessageTypePlaceBet,
		Payload: rawPayload(t, `{"gameId":%q,"amount":10}`, gameID),
	})
	state := expectEnvelope(t, c1, MessageTypeGameStateUpdate)
	assert.Equal(t, "BETTING", state.Payload.(*blackjack.GameState).Phase)
	expectEnvelope(t, c2, MessageTypeGameStateUpdate)

	// once the second seat bets, cards are dealt and betting closes
	p.handleMessage(c2, &Message{
		Type:    MessageTypePlaceBet,
		Payload: rawPayload(t, `{"gameId":%q,"amount":10}`, gameID),
	})
	state = expectEnvelope(t, c2, MessageTypeGameStateUpdate)
	gs := state.Payload.(*blackjack.GameState)
	assert.NotEqual(t, "BETTING", gs.Phase)
	assert.Equal(t, 2, len(gs.SeatOne.Hand))
	expectEnvelope(t, c1, MessageTypeGameStateUpdate)
}

func TestPitBoss_NewRoundBeforeRoundOver(t *testing.T) {
	p := NewPitBoss(blackjack.DefaultOptions())
	c1, c2, gameID := pairedGame(t, p)

	p.handleMessage(c1, &Message{
		Type:    MessageTypeStartNewRound,
		Payload: rawPayload(t, `{"gameId":%q}`, gameID),
	})
	env := expectEnvelope(t, c1, MessageTypeError)
	assert.Equal(t, blackjack.ErrRoundNotOver.Error(), env.Payload.(errorPayload).Message)
	expectNoEnvelope(t, c2)
}

func TestPitBoss_UnknownMessageType(t *testing.T) {
	p := NewPitBoss(blackjack.DefaultOptions())

	c := NewClient(nil)
	p.handleConnect(c)
	drainClient(c)

	p.handleMessage(c, &Message{Type: "TELEPORT"})
	env := expectEnvelope(t, c, MessageTypeError)
	assert.Equal(t, "unrecognized message type: TELEPORT", env.Payload.(errorPayload).Message)
}

func TestPitBoss_Disconnect(t *testing.T) {
	p := NewPitBoss(blackjack.DefaultOptions())
	c1, c2, _ := pairedGame(t, p)

	p.handleDisconnect(c2)

	expectEnvelope(t, c1, MessageTypeOpponentLeft)
	assert.Equal(t, 0, len(p.sessions))
	assert.Nil(t, p.pending)
	assert.False(t, p.clients[c2])

	// the surviving player can request a fresh game
	p.handleMessage(c1, &Message{Type: MessageTypeJoinGame})
	expectEnvelope(t, c1, MessageTypeGameCreated)
	assert.NotNil(t, p.pending)
}

func TestPitBoss_DisconnectClearsPending(t *testing.T) {
	p := NewPitBoss(blackjack.DefaultOptions())

	c1 := NewClient(nil)
	p.handleConnect(c1)
	p.handleMessage(c1, &Message{Type: MessageTypeJoinGame})
	drainClient(c1)
	require.NotNil(t, p.pending)

	p.handleDisconnect(c1)
	assert.Nil(t, p.pending)
	assert.Equal(t, 0, len(p.sessions))
	assert.Equal(t, 0, len(p.seats))
}

func TestPitBoss_RunLoop(t *testing.T) {
	p := NewPitBoss(blackjack.DefaultOptions())
	p.StartShift()
	defer p.EndShift()

	c := NewClient(nil)
	p.ClientConnected(c)

	select {
	case env := <-c.SendChan():
		assert.Equal(t, MessageTypeServerWelcome, env.Type)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for welcome")
	}

	c.ReceivedMessage(&Message{Type: MessageTypeJoinGame})

	select {
	case env := <-c.SendChan():
		assert.Equal(t, MessageTypeGameCreated, env.Type)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for game created")
	}

	p.ClientDisconnected(c)
}

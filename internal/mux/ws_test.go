package mux

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"blackjack-server/pkg/blackjack"
	"blackjack-server/pkg/room"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnvelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func wsURL(ts *httptest.Server) string {
	return "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
}

func readEnvelope(t *testing.T, conn *websocket.Conn) *testEnvelope {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second*2)))

	var env testEnvelope
	require.NoError(t, conn.ReadJSON(&env))
	return &env
}

func TestWebSocket_MatchmakingFlow(t *testing.T) {
	ts := httptest.NewServer(NewMux("test", blackjack.DefaultOptions()))
	defer ts.Close()

	conn1, _, err := websocket.DefaultDialer.Dial(wsURL(ts), nil)
	require.NoError(t, err)
	defer conn1.Close()

	assert.Equal(t, room.MessageTypeServerWelcome, readEnvelope(t, conn1).Type)

	require.NoError(t, conn1.WriteJSON(room.Message{Type: room.MessageTypeJoinGame}))

	env := readEnvelope(t, conn1)
	require.Equal(t, room.MessageTypeGameCreated, env.Type)

	var created struct {
		GameID string `json:"gameId"`
		Seat   string `json:"seat"`
	}
	require.NoError(t, json.Unmarshal(env.Payload, &created))
	assert.Equal(t, "seat1", created.Seat)
	assert.NotEmpty(t, created.GameID)

	env = readEnvelope(t, conn1)
	require.Equal(t, room.MessageTypeGameStateUpdate, env.Type)

	var state struct {
		GamePhase string `json:"gamePhase"`
	}
	require.NoError(t, json.Unmarshal(env.Payload, &state))
	assert.Equal(t, "WAITING_FOR_SEAT2", state.GamePhase)

	conn2, _, err := websocket.DefaultDialer.Dial(wsURL(ts), nil)
	require.NoError(t, err)
	defer conn2.Close()

	assert.Equal(t, room.MessageTypeServerWelcome, readEnvelope(t, conn2).Type)

	require.NoError(t, conn2.WriteJSON(room.Message{Type: room.MessageTypeJoinGame}))

	env = readEnvelope(t, conn2)
	require.Equal(t, room.MessageTypeJoinedGame, env.Type)

	assert.Equal(t, room.MessageTypeOpponentJoined, readEnvelope(t, conn1).Type)
	assert.Equal(t, room.MessageTypeGameStateUpdate, readEnvelope(t, conn1).Type)

	env = readEnvelope(t, conn2)
	require.Equal(t, room.MessageTypeGameStateUpdate, env.Type)
	require.NoError(t, json.Unmarshal(env.Payload, &state))
	assert.Equal(t, "BETTING", state.GamePhase)

	// closing one side destroys the game and notifies the survivor
	require.NoError(t, conn2.Close())
	assert.Equal(t, room.MessageTypeOpponentLeft, readEnvelope(t, conn1).Type)
}

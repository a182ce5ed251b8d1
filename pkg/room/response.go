package room

import (
	"blackjack-server/pkg/blackjack"
)

// outbound message types
const (
	MessageTypeServerWelcome   = "SERVER_WELCOME"
	MessageTypeGameCreated     = "GAME_CREATED"
	MessageTypeJoinedGame      = "JOINED_GAME"
	MessageTypeOpponentJoined  = "OPPONENT_JOINED"
	MessageTypeOpponentLeft    = "OPPONENT_LEFT"
	MessageTypeGameStateUpdate = "GAME_STATE_UPDATE"
	MessageTypeError           = "ERROR"
)

// Envelope wraps every outbound message
type Envelope struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

type welcomePayload struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Message  string `json:"message"`
}

func newWelcome(client *Client) *Envelope {
	return &Envelope{
		Type: MessageTypeServerWelcome,
		Payload: welcomePayload{
			PlayerID: client.ID(),
			Name:     client.Name(),
			Message:  "Connected. Send JOIN_GAME_REQUEST to find a game.",
		},
	}
}

type seatAssignedPayload struct {
	GameID   string         `json:"gameId"`
	Seat     blackjack.Seat `json:"seat"`
	PlayerID string         `json:"playerId"`
}

func newGameCreated(gameID string, client *Client) *Envelope {
	return &Envelope{
		Type: MessageTypeGameCreated,
		Payload: seatAssignedPayload{
			GameID:   gameID,
			Seat:     blackjack.SeatOne,
			PlayerID: client.ID(),
		},
	}
}

func newJoinedGame(gameID string, client *Client) *Envelope {
	return &Envelope{
		Type: MessageTypeJoinedGame,
		Payload: seatAssignedPayload{
			GameID:   gameID,
			Seat:     blackjack.SeatTwo,
			PlayerID: client.ID(),
		},
	}
}

type opponentJoinedPayload struct {
	OpponentID   string `json:"opponentId"`
	OpponentName string `json:"opponentName"`
}

func newOpponentJoined(opponent *Client) *Envelope {
	return &Envelope{
		Type: MessageTypeOpponentJoined,
		Payload: opponentJoinedPayload{
			OpponentID:   opponent.ID(),
			OpponentName: opponent.Name(),
		},
	}
}

type opponentLeftPayload struct {
	Message string `json:"message"`
}

func newOpponentLeft() *Envelope {
	return &Envelope{
		Type: MessageTypeOpponentLeft,
		Payload: opponentLeftPayload{
			Message: "Your opponent left the game.",
		},
	}
}

func newGameState(state *blackjack.GameState) *Envelope {
	return &Envelope{
		Type:    MessageTypeGameStateUpdate,
		Payload: state,
	}
}

type errorPayload struct {
	Message string `json:"message"`
}

func newErrorResponse(message string) *Envelope {
	return &Envelope{
		Type: MessageTypeError,
		Payload: errorPayload{
			Message: message,
		},
	}
}

package room

import "encoding/json"

// inbound message types
const (
	MessageTypeJoinGame      = "JOIN_GAME_REQUEST"
	MessageTypePlaceBet      = "PLACE_BET"
	MessageTypePlayerAction  = "PLAYER_ACTION"
	MessageTypeStartNewRound = "START_NEW_ROUND_REQUEST"
)

// Message is the envelope for every inbound client message.
// The payload is decoded into its typed form once the type is known;
// an unrecognized or malformed payload is a protocol error.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// PlaceBetPayload accompanies a PLACE_BET message
type PlaceBetPayload struct {
	GameID string `json:"gameId"`
	Amount int    `json:"amount"`
}

// PlayerActionPayload accompanies a PLAYER_ACTION message
type PlayerActionPayload struct {
	GameID string `json:"gameId"`
	Action string `json:"action"`
}

// StartNewRoundPayload accompanies a START_NEW_ROUND_REQUEST message
type StartNewRoundPayload struct {
	GameID string `json:"gameId"`
}

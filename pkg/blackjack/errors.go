package blackjack

import "errors"

// ErrGameFull is returned when a second seat is added to a game that is not waiting for one
var ErrGameFull = errors.New("the game already has two players")

// ErrNotBettingPhase is returned when a bet arrives outside the betting phase
var ErrNotBettingPhase = errors.New("bets are not being accepted right now")

// ErrInvalidBet is returned for a non-positive bet or a bet above the seat's balance
var ErrInvalidBet = errors.New("invalid bet")

// ErrNotYourTurn is returned when a player acts outside their turn
var ErrNotYourTurn = errors.New("not your turn")

// ErrUnknownAction is returned for an unrecognized player action
var ErrUnknownAction = errors.New("unknown action")

// ErrRoundNotOver is returned when a new round is requested before the round is over
var ErrRoundNotOver = errors.New("the round is not over yet")

// ErrNoSuchSeat is returned when an operation names a seat that is not in the game
var ErrNoSuchSeat = errors.New("no such seat in this game")

package blackjack

import "strings"

// Action is a turn decision made by a player
type Action string

// player actions
const (
	ActionHit   Action = "HIT"
	ActionStand Action = "STAND"
)

// ActionFromString parses a player action from its wire form
func ActionFromString(s string) (Action, error) {
	switch Action(strings.ToUpper(s)) {
	case ActionHit:
		return ActionHit, nil
	case ActionStand:
		return ActionStand, nil
	}

	return "", ErrUnknownAction
}

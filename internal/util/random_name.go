package util

import (
	"fmt"
	"math/rand"
)

var adjectives = []string{
	"Lucky", "Bold", "Quiet", "Sly", "Steady", "Reckless", "Cool", "Sharp",
	"Patient", "Daring", "Smiling", "Stoic", "Crafty", "Brash", "Canny",
	"Gutsy", "Icy", "Swift", "Subtle", "Fearless",
}

var nouns = []string{
	"Ace", "Deuce", "Joker", "Shark", "Whale", "Dealer", "Gambler",
	"HighRoller", "CardCounter", "Bluffer", "Croupier", "Spade", "Club",
	"Diamond", "Heart", "Shoe", "Stack", "Cutter", "Pitboss", "Hand",
}

// GetRandomName returns a random display name by combining an adjective with a noun
func GetRandomName() string {
	adjectivesIndex := rand.Intn(len(adjectives))
	nounsIndex := rand.Intn(len(nouns))

	return fmt.Sprintf("%s %s", adjectives[adjectivesIndex], nouns[nounsIndex])
}

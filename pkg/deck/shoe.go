package deck

import (
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
)

// Shoe is a draw source built from one or more logical 52-card decks.
// Drawing from an empty shoe rebuilds the full multiset and reshuffles,
// so Draw never fails.
type Shoe struct {
	cards    []*Card
	numDecks int
	seed     int64
	rng      *rand.Rand
}

// NewShoe returns a shuffled shoe containing numDecks standard decks.
// A numDecks below 1 is treated as 1.
func NewShoe(numDecks int) *Shoe {
	if numDecks < 1 {
		numDecks = 1
	}

	s := &Shoe{numDecks: numDecks}
	s.rebuild()
	s.Shuffle(0)

	return s
}

func (s *Shoe) rebuild() {
	cards := make([]*Card, 0, 52*s.numDecks)
	for i := 0; i < s.numDecks; i++ {
		for _, suit := range []Suit{Clubs, Diamonds, Hearts, Spades} {
			for rank := 2; rank <= 14; rank++ {
				cards = append(cards, &Card{
					Rank: rank,
					Suit: suit,
				})
			}
		}
	}

	s.cards = cards
}

// SetSeed will set the seed
// This should only be used by tests. Setting the seed is normally handled when you call Shuffle()
func (s *Shoe) SetSeed(seed int64) {
	s.seed = seed
	s.rng = rand.New(rand.NewSource(seed))
}

// Shuffle will shuffle the cards currently in the shoe.
// You can manually specify the seed, or you can leave it as 0 for a time-based seed.
func (s *Shoe) Shuffle(seed int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s.SetSeed(seed)
	s.shuffle()
}

func (s *Shoe) shuffle() {
	for j := len(s.cards) - 1; j > 0; j-- {
		i := s.rng.Intn(j + 1)

		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}
}

// GetSeed returns the seed used to shuffle the shoe
func (s *Shoe) GetSeed() int64 {
	return s.seed
}

// Draw deals the next card.
// When the shoe is exhausted it starts over with a freshly built,
// reshuffled multiset; previously dealt cards are not remembered.
func (s *Shoe) Draw() *Card {
	if len(s.cards) == 0 {
		logrus.WithField("decks", s.numDecks).Warn("shoe exhausted, rebuilding")
		s.rebuild()
		s.shuffle()
	}

	card := s.cards[0]
	s.cards = s.cards[1:]

	return card
}

// CardsLeft returns the number of cards left in the shoe
func (s *Shoe) CardsLeft() int {
	return len(s.cards)
}

// NumDecks returns the number of logical decks the shoe was built from
func (s *Shoe) NumDecks() int {
	return s.numDecks
}

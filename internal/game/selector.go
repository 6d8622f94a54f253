package game

import (
	"math/rand"
	"time"
)

// SelectedQuestion is one catalog question bound to a specific turn,
// carrying its randomized answer order.
type SelectedQuestion struct {
	// QuestionIndex is the index into the catalog.
	QuestionIndex int

	// AnswerShuffleIndices maps presentation slot to answer identity:
	// slot i shows Answers[AnswerShuffleIndices[i]].
	AnswerShuffleIndices []int

	// CorrectAnswerIndex is the 0-based slot the player must name.
	// Equal to AnswerShuffleIndices[0] by construction.
	CorrectAnswerIndex int

	// QuestionNum is the 1-based ordinal of this question in the game.
	QuestionNum int
}

// Selector draws game question orderings and per-question answer
// shuffles from the bank.
type Selector struct {
	bank *Bank
	rng  *rand.Rand
}

// NewSelector creates a Selector. A nil rng gets a time-seeded source;
// tests inject a fixed seed for determinism. Cross-call determinism is
// not required, so a non-cryptographic generator is fine here.
func NewSelector(bank *Bank, rng *rand.Rand) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Selector{bank: bank, rng: rng}
}

// PickGameQuestions returns gameLength distinct catalog indices in draw
// order, drawn uniformly without replacement by rejection sampling.
// Rejection has no iteration bound, but gameLength (5) is far below the
// catalog size (~30); revisit if gameLength ever becomes configurable
// anywhere near Bank.Len().
func (s *Selector) PickGameQuestions(gameLength int) []int {
	indices := make([]int, 0, gameLength)

	for len(indices) < gameLength {
		candidate := s.rng.Intn(s.bank.Len())

		duplicate := false
		for _, prev := range indices {
			if prev == candidate {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}

		indices = append(indices, candidate)
	}

	return indices
}

// Select builds the turn-bound selection for a catalog question: a
// uniformly random permutation of the answer slots, with the slot drawn
// first recorded as the one the player must name.
func (s *Selector) Select(questionIndex, questionNum int) SelectedQuestion {
	unplaced := make([]int, AnswerCount)
	for i := range unplaced {
		unplaced[i] = i
	}

	shuffle := make([]int, AnswerCount)

	// Slot 0 first: its value doubles as the correct slot number.
	pick := s.rng.Intn(len(unplaced))
	correct := unplaced[pick]
	shuffle[0] = correct
	unplaced = append(unplaced[:pick], unplaced[pick+1:]...)

	for i := 1; i < AnswerCount; i++ {
		pick = s.rng.Intn(len(unplaced))
		shuffle[i] = unplaced[pick]
		unplaced = append(unplaced[:pick], unplaced[pick+1:]...)
	}

	return SelectedQuestion{
		QuestionIndex:        questionIndex,
		AnswerShuffleIndices: shuffle,
		CorrectAnswerIndex:   correct,
		QuestionNum:          questionNum,
	}
}

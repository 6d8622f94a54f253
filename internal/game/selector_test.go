package game

import (
	"math/rand"
	"testing"
)

func testBank(t *testing.T) *Bank {
	t.Helper()
	bank, err := LoadBank()
	if err != nil {
		t.Fatalf("LoadBank: %v", err)
	}
	return bank
}

func TestPickGameQuestionsDistinctAndInRange(t *testing.T) {
	bank := testBank(t)
	sel := NewSelector(bank, rand.New(rand.NewSource(1)))

	for n := 1; n <= bank.Len(); n++ {
		indices := sel.PickGameQuestions(n)

		if len(indices) != n {
			t.Fatalf("PickGameQuestions(%d) returned %d indices", n, len(indices))
		}

		seen := make(map[int]bool, n)
		for _, idx := range indices {
			if idx < 0 || idx >= bank.Len() {
				t.Fatalf("PickGameQuestions(%d): index %d out of range", n, idx)
			}
			if seen[idx] {
				t.Fatalf("PickGameQuestions(%d): duplicate index %d", n, idx)
			}
			seen[idx] = true
		}
	}
}

func TestSelectShuffleIsAnchoredPermutation(t *testing.T) {
	bank := testBank(t)
	sel := NewSelector(bank, rand.New(rand.NewSource(2)))

	for i := 0; i < 200; i++ {
		selection := sel.Select(i%bank.Len(), 1+i%GameLength)

		if len(selection.AnswerShuffleIndices) != AnswerCount {
			t.Fatalf("shuffle length = %d, want %d", len(selection.AnswerShuffleIndices), AnswerCount)
		}

		var seen [AnswerCount]bool
		for _, v := range selection.AnswerShuffleIndices {
			if v < 0 || v >= AnswerCount {
				t.Fatalf("shuffle value %d out of range", v)
			}
			if seen[v] {
				t.Fatalf("shuffle %v is not a permutation", selection.AnswerShuffleIndices)
			}
			seen[v] = true
		}

		if selection.AnswerShuffleIndices[0] != selection.CorrectAnswerIndex {
			t.Fatalf("shuffle[0] = %d but CorrectAnswerIndex = %d",
				selection.AnswerShuffleIndices[0], selection.CorrectAnswerIndex)
		}
	}
}

func TestSelectCoversAllCorrectSlots(t *testing.T) {
	bank := testBank(t)
	sel := NewSelector(bank, rand.New(rand.NewSource(3)))

	seen := make(map[int]bool)
	for i := 0; i < 200 && len(seen) < AnswerCount; i++ {
		seen[sel.Select(0, 1).CorrectAnswerIndex] = true
	}

	if len(seen) != AnswerCount {
		t.Errorf("correct slot only ever landed on %d of %d positions", len(seen), AnswerCount)
	}
}

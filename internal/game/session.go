package game

import "encoding/json"

// Session blob keys. These are part of the external contract and must
// round-trip unchanged through whatever store the adapter uses.
const (
	keyCurrentQuestion = "CurrentQuestion"
	keyQuestionIndices = "QuestionIndices"
	keyScore           = "Score"

	keyQuestionIndex        = "questionIndex"
	keyAnswerShuffleIndices = "answerShuffleIndices"
	keyCorrectAnswerIndex   = "correctAnswerIndex"
	keyQuestionNum          = "questionNum"
)

// Session is the typed view over the externally persisted state blob.
// A nil CurrentQuestion means no game is in progress and the remaining
// fields are meaningless.
type Session struct {
	CurrentQuestion *SelectedQuestion
	QuestionIndices []int
	Score           int
}

// InProgress reports whether a game is underway.
func (s *Session) InProgress() bool {
	return s.CurrentQuestion != nil
}

// Values flattens the session back into its blob representation.
// Only call with a game in progress.
func (s *Session) Values() map[string]any {
	return map[string]any{
		keyCurrentQuestion: map[string]any{
			keyQuestionIndex:        s.CurrentQuestion.QuestionIndex,
			keyAnswerShuffleIndices: s.CurrentQuestion.AnswerShuffleIndices,
			keyCorrectAnswerIndex:   s.CurrentQuestion.CorrectAnswerIndex,
			keyQuestionNum:          s.CurrentQuestion.QuestionNum,
		},
		keyQuestionIndices: s.QuestionIndices,
		keyScore:           s.Score,
	}
}

// DecodeSession reconstructs a Session from a state blob. Every field
// is type- and range-checked against the bank; numbers may arrive
// widened (float64 from JSON, int64 from other codecs) and are narrowed
// here. Any malformed or inconsistent blob decodes to "no game in
// progress" so the state machine stays total.
func DecodeSession(values map[string]any, bank *Bank) *Session {
	if values == nil {
		return &Session{}
	}

	raw, ok := values[keyCurrentQuestion]
	if !ok {
		return &Session{}
	}
	fields, ok := raw.(map[string]any)
	if !ok {
		return &Session{}
	}

	current := SelectedQuestion{}
	if current.QuestionIndex, ok = asInt(fields[keyQuestionIndex]); !ok {
		return &Session{}
	}
	if current.AnswerShuffleIndices, ok = asIntSlice(fields[keyAnswerShuffleIndices]); !ok {
		return &Session{}
	}
	if current.CorrectAnswerIndex, ok = asInt(fields[keyCorrectAnswerIndex]); !ok {
		return &Session{}
	}
	if current.QuestionNum, ok = asInt(fields[keyQuestionNum]); !ok {
		return &Session{}
	}

	indices, ok := asIntSlice(values[keyQuestionIndices])
	if !ok {
		return &Session{}
	}
	score, ok := asInt(values[keyScore])
	if !ok {
		return &Session{}
	}

	sess := &Session{
		CurrentQuestion: &current,
		QuestionIndices: indices,
		Score:           score,
	}
	if !sess.valid(bank) {
		return &Session{}
	}
	return sess
}

// valid enforces the session invariants: shuffle is a permutation of
// the answer slots anchored at the correct slot, all question indices
// are distinct and within the catalog, and the ordinal fits the game.
func (s *Session) valid(bank *Bank) bool {
	q := s.CurrentQuestion

	if q.QuestionIndex < 0 || q.QuestionIndex >= bank.Len() {
		return false
	}
	if len(q.AnswerShuffleIndices) != AnswerCount {
		return false
	}
	var seen [AnswerCount]bool
	for _, v := range q.AnswerShuffleIndices {
		if v < 0 || v >= AnswerCount || seen[v] {
			return false
		}
		seen[v] = true
	}
	if q.AnswerShuffleIndices[0] != q.CorrectAnswerIndex {
		return false
	}

	if len(s.QuestionIndices) == 0 {
		return false
	}
	used := make(map[int]bool, len(s.QuestionIndices))
	for _, idx := range s.QuestionIndices {
		if idx < 0 || idx >= bank.Len() || used[idx] {
			return false
		}
		used[idx] = true
	}

	if q.QuestionNum < 1 || q.QuestionNum > len(s.QuestionIndices) {
		return false
	}
	return s.Score >= 0
}

// asInt narrows a dynamically typed numeric value to int. JSON decoding
// yields float64; other transports may hand over int64 or json.Number.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		if int64(int(n)) != n {
			return 0, false
		}
		return int(n), true
	case float64:
		i := int(n)
		if float64(i) != n {
			return 0, false
		}
		return i, true
	case json.Number:
		i64, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return asInt(i64)
	default:
		return 0, false
	}
}

func asIntSlice(v any) ([]int, bool) {
	switch s := v.(type) {
	case []int:
		out := make([]int, len(s))
		copy(out, s)
		return out, true
	case []any:
		out := make([]int, len(s))
		for i, item := range s {
			n, ok := asInt(item)
			if !ok {
				return nil, false
			}
			out[i] = n
		}
		return out, true
	default:
		return nil, false
	}
}

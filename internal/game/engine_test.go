package game

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func newTestEngine(t *testing.T, seed int64) (*Engine, *Bank) {
	t.Helper()
	bank := testBank(t)
	sel := NewSelector(bank, rand.New(rand.NewSource(seed)))
	return NewEngine(bank, sel, zerolog.Nop()), bank
}

func answerArgs(value string) []Argument {
	return []Argument{{Name: "Answer", Value: value}}
}

func TestExecuteLaunchGame(t *testing.T) {
	engine, bank := newTestEngine(t, 1)

	resp, err := engine.Execute(RequestLaunchGame, nil, nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if !strings.Contains(resp.SpokenResponse, "Let's begin") {
		t.Errorf("spoken response %q missing welcome", resp.SpokenResponse)
	}
	if resp.EndSession {
		t.Error("launch ended the session")
	}
	if resp.CardTitle != CardTitle {
		t.Errorf("card title = %q, want %q", resp.CardTitle, CardTitle)
	}

	sess := DecodeSession(resp.SessionValues, bank)
	if !sess.InProgress() {
		t.Fatal("no session persisted after launch")
	}
	if sess.Score != 0 {
		t.Errorf("score = %d, want 0", sess.Score)
	}
	if sess.CurrentQuestion.QuestionNum != 1 {
		t.Errorf("question num = %d, want 1", sess.CurrentQuestion.QuestionNum)
	}
	if len(sess.QuestionIndices) != GameLength {
		t.Errorf("%d question indices, want %d", len(sess.QuestionIndices), GameLength)
	}
}

func TestExecuteEndGame(t *testing.T) {
	engine, _ := newTestEngine(t, 1)

	resp, err := engine.Execute(RequestEndGame, nil, sampleSession().Values())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if !strings.Contains(resp.SpokenResponse, "Good bye") {
		t.Errorf("spoken response %q missing farewell", resp.SpokenResponse)
	}
	if !resp.EndSession {
		t.Error("end game did not end the session")
	}
	if len(resp.SessionValues) != 0 {
		t.Error("end game persisted session values")
	}
	if resp.CardTitle != "" {
		t.Error("farewell should not carry a card")
	}
}

func TestExecuteCorrectAnswer(t *testing.T) {
	engine, bank := newTestEngine(t, 1)
	prior := sampleSession()

	resp, err := engine.Execute(RequestAnswerGeneric, answerArgs("Three"), prior.Values())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if !strings.Contains(resp.SpokenResponse, "Correct") {
		t.Errorf("spoken response %q missing Correct", resp.SpokenResponse)
	}

	sess := DecodeSession(resp.SessionValues, bank)
	if !sess.InProgress() {
		t.Fatal("session not persisted")
	}
	if sess.Score != prior.Score+1 {
		t.Errorf("score = %d, want %d", sess.Score, prior.Score+1)
	}
	if sess.CurrentQuestion.QuestionNum != 5 {
		t.Errorf("question num = %d, want 5", sess.CurrentQuestion.QuestionNum)
	}
	// The next question must come from the persisted index list.
	if sess.CurrentQuestion.QuestionIndex != prior.QuestionIndices[4] {
		t.Errorf("next question index = %d, want %d",
			sess.CurrentQuestion.QuestionIndex, prior.QuestionIndices[4])
	}
}

func TestExecuteIncorrectAnswer(t *testing.T) {
	engine, bank := newTestEngine(t, 1)
	prior := sampleSession()

	resp, err := engine.Execute(RequestAnswerGeneric, answerArgs("One"), prior.Values())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if !strings.Contains(resp.SpokenResponse, "Incorrect") {
		t.Errorf("spoken response %q missing Incorrect", resp.SpokenResponse)
	}
	if !strings.Contains(resp.SpokenResponse, "The correct answer was 3") {
		t.Errorf("spoken response %q missing correct slot number", resp.SpokenResponse)
	}

	sess := DecodeSession(resp.SessionValues, bank)
	if sess.Score != prior.Score {
		t.Errorf("score = %d, want unchanged %d", sess.Score, prior.Score)
	}
	if sess.CurrentQuestion.QuestionNum != 5 {
		t.Errorf("question num = %d, want 5", sess.CurrentQuestion.QuestionNum)
	}
}

func TestExecuteOutOfRangeAnswer(t *testing.T) {
	engine, bank := newTestEngine(t, 1)
	prior := sampleSession()

	resp, err := engine.Execute(RequestAnswerGeneric, answerArgs("Five"), prior.Values())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if !strings.Contains(resp.SpokenResponse, "must be a number between") {
		t.Errorf("spoken response %q missing range message", resp.SpokenResponse)
	}
	if resp.EndSession {
		t.Error("range error ended the session")
	}

	sess := DecodeSession(resp.SessionValues, bank)
	assertSessionEqual(t, sess, prior)
}

func TestExecuteFinalQuestionAnswered(t *testing.T) {
	engine, _ := newTestEngine(t, 1)
	prior := sampleSession()
	prior.CurrentQuestion.QuestionNum = GameLength
	prior.CurrentQuestion.QuestionIndex = prior.QuestionIndices[GameLength-1]

	resp, err := engine.Execute(RequestAnswerGeneric, answerArgs("Three"), prior.Values())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if !strings.Contains(resp.SpokenResponse, "Thank you for playing!") {
		t.Errorf("spoken response %q missing closing tally", resp.SpokenResponse)
	}
	if !resp.EndSession {
		t.Error("game over did not end the session")
	}
	if len(resp.SessionValues) != 0 {
		t.Error("game over persisted session values")
	}
	if resp.FinalScore == nil {
		t.Fatal("game over did not report a final score")
	}
	if want := prior.Score + 1; *resp.FinalScore != want {
		t.Errorf("final score = %d, want %d", *resp.FinalScore, want)
	}
}

func TestExecuteAnswerWithoutGameStartsNewGame(t *testing.T) {
	engine, bank := newTestEngine(t, 1)

	resp, err := engine.Execute(RequestAnswerGeneric, answerArgs("One"), nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if !strings.Contains(resp.SpokenResponse, "Let's begin") {
		t.Errorf("spoken response %q is not a fresh welcome", resp.SpokenResponse)
	}
	sess := DecodeSession(resp.SessionValues, bank)
	if !sess.InProgress() || sess.CurrentQuestion.QuestionNum != 1 {
		t.Error("answering without a game did not start one")
	}
}

func TestExecuteRepeatIsIdempotent(t *testing.T) {
	engine, bank := newTestEngine(t, 1)
	prior := sampleSession()

	first, err := engine.Execute(RequestAnswerRepeat, nil, prior.Values())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	second, err := engine.Execute(RequestAnswerRepeat, nil, first.SessionValues)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if first.SpokenResponse != second.SpokenResponse {
		t.Error("repeat changed the prompt text")
	}
	if first.SpokenResponse != first.SpokenReprompt {
		t.Error("repeat prompt and reprompt differ")
	}
	if !strings.Contains(first.SpokenResponse, "Question 4. ") {
		t.Errorf("repeat prompt %q is not the current question", first.SpokenResponse)
	}

	assertSessionEqual(t, DecodeSession(second.SessionValues, bank), prior)
}

func TestExecuteRepeatWithoutGameStartsNewGame(t *testing.T) {
	engine, _ := newTestEngine(t, 1)

	resp, err := engine.Execute(RequestAnswerRepeat, nil, nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(resp.SpokenResponse, "Let's begin") {
		t.Errorf("spoken response %q is not a fresh welcome", resp.SpokenResponse)
	}
}

func TestExecuteHelp(t *testing.T) {
	engine, bank := newTestEngine(t, 1)
	prior := sampleSession()

	resp, err := engine.Execute(RequestAnswerHelp, nil, prior.Values())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if !strings.Contains(resp.SpokenResponse, "multiple choice questions") {
		t.Errorf("spoken response %q missing help text", resp.SpokenResponse)
	}
	if resp.EndSession {
		t.Error("help ended the session")
	}
	assertSessionEqual(t, DecodeSession(resp.SessionValues, bank), prior)
}

func TestExecuteHelpWithoutGame(t *testing.T) {
	engine, _ := newTestEngine(t, 1)

	resp, err := engine.Execute(RequestAnswerHelp, nil, nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(resp.SessionValues) != 0 {
		t.Error("help without a game persisted session values")
	}
}

func TestExecuteUnknownRequestType(t *testing.T) {
	engine, _ := newTestEngine(t, 1)

	_, err := engine.Execute(RequestType(99), nil, nil)
	if !errors.Is(err, ErrUnknownRequest) {
		t.Fatalf("err = %v, want ErrUnknownRequest", err)
	}
}

func TestParseRequestType(t *testing.T) {
	for typ, name := range requestNames {
		got, ok := ParseRequestType(name)
		if !ok || got != typ {
			t.Errorf("ParseRequestType(%q) = %v, %v", name, got, ok)
		}
	}
	if _, ok := ParseRequestType("SessionEnded"); ok {
		t.Error("ParseRequestType accepted an unknown name")
	}
}

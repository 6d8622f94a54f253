package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

const (
	// GameLength is the number of questions asked per game.
	GameLength = 5

	// CardTitle is the title of the display card shown on screens.
	CardTitle = "Reindeer Games"
)

// ErrUnknownRequest reports a request type the engine has no handler
// for. This is a contract violation by the adapter, not a player error.
var ErrUnknownRequest = errors.New("unknown request type")

// Engine is the game state machine. It is stateless across invocations:
// every call receives the prior session blob and returns the next one.
type Engine struct {
	bank *Bank
	sel  *Selector
	log  zerolog.Logger
}

// NewEngine creates an Engine over the given bank and selector.
func NewEngine(bank *Bank, sel *Selector, log zerolog.Logger) *Engine {
	return &Engine{
		bank: bank,
		sel:  sel,
		log:  log.With().Str("component", "game_engine").Logger(),
	}
}

// Execute runs one turn: dispatch on the request type, consult the
// prior session state, and assemble the outgoing response. Recoverable
// conditions (bad answers, missing state) always produce a guiding
// Response; only an unrecognized request type returns an error.
func (e *Engine) Execute(request RequestType, arguments []Argument, sessionValues map[string]any) (*Response, error) {
	sess := DecodeSession(sessionValues, e.bank)

	switch request {
	case RequestLaunchGame:
		return e.launch(), nil

	case RequestEndGame:
		return e.finish(), nil

	case RequestAnswerYes, RequestAnswerNo, RequestAnswerDontKnow, RequestAnswerGeneric:
		return e.processAnswer(sess, arguments), nil

	case RequestAnswerRepeat:
		return e.repeat(sess), nil

	case RequestAnswerHelp:
		return e.help(sess), nil

	default:
		e.log.Error().Stringer("request", request).Msg("Unexpected request type")
		return nil, fmt.Errorf("%w: %s", ErrUnknownRequest, request)
	}
}

// launch starts a fresh game and asks the first question.
func (e *Engine) launch() *Response {
	e.log.Debug().Msg("Starting a new game")

	var speech strings.Builder
	fmt.Fprintf(&speech,
		"I will ask you %d questions, try to get as many right as you can. Just say the number of the answer. Let's begin. ",
		GameLength)

	indices := e.sel.PickGameQuestions(GameLength)
	first := e.sel.Select(indices[0], 1)
	questionText := e.promptText(first)
	speech.WriteString(questionText)

	sess := &Session{
		CurrentQuestion: &first,
		QuestionIndices: indices,
		Score:           0,
	}

	return newResponse(speech.String(), questionText, sess.Values()).withCard(CardTitle)
}

// finish says goodbye and closes the conversation. No session values
// are returned, so the next call observes a fresh conversation.
func (e *Engine) finish() *Response {
	e.log.Debug().Msg("Finishing game")

	resp := newResponse("Good bye!", "", nil)
	resp.EndSession = true
	return resp
}

// repeat re-asks the current question, or starts a new game when none
// is in progress.
func (e *Engine) repeat(sess *Session) *Response {
	if !sess.InProgress() {
		return e.launch()
	}

	questionText := e.promptText(*sess.CurrentQuestion)
	return newResponse(questionText, questionText, sess.Values())
}

// help explains the rules. The session, if any, rides along unchanged.
func (e *Engine) help(sess *Session) *Response {
	message := fmt.Sprintf(
		"I will ask you %d multiple choice questions. Respond with the number of the answer. "+
			"For example, say one, two, three, or four. To start a new game at any time, say, start game. "+
			"To repeat the last question, say, repeat. Would you like to keep playing?",
		GameLength)

	const reprompt = "To give an answer to a question, respond with the number of the answer. Would you like to keep playing?"

	values := map[string]any{}
	if sess.InProgress() {
		values = sess.Values()
	}
	return newResponse(message, reprompt, values)
}

// processAnswer scores the player's answer and moves to the next
// question or ends the game.
func (e *Engine) processAnswer(sess *Session, arguments []Argument) *Response {
	// No game to answer against: silently start one instead of erroring.
	if !sess.InProgress() {
		e.log.Debug().Msg("Game not in progress, starting a new one")
		return e.launch()
	}

	answer, ok := answerNumber(arguments, AnswerCount)
	if !ok {
		e.log.Debug().Msg("Answer not valid, prompting for a number in range")

		questionText := e.promptText(*sess.CurrentQuestion)
		message := fmt.Sprintf("Your answer must be a number between 1 and %d. %s", AnswerCount, questionText)
		return newResponse(message, questionText, sess.Values()).withCard(CardTitle)
	}

	var speech strings.Builder
	speech.WriteString(e.scoreAnswer(sess, answer))

	next, ok := e.nextQuestion(sess)
	if !ok {
		e.log.Debug().Int("score", sess.Score).Msg("No more questions, game over")

		fmt.Fprintf(&speech, "You got %d out of %d questions correct. Thank you for playing!", sess.Score, GameLength)
		finalScore := sess.Score

		resp := newResponse(speech.String(), "", nil).withCard(CardTitle)
		resp.EndSession = true
		resp.FinalScore = &finalScore
		return resp
	}

	sess.CurrentQuestion = &next
	fmt.Fprintf(&speech, "Your score is %d. ", sess.Score)
	questionText := e.promptText(next)
	speech.WriteString(questionText)

	return newResponse(speech.String(), questionText, sess.Values()).withCard(CardTitle)
}

// scoreAnswer tallies the answer against the current question and
// returns the feedback prefix.
func (e *Engine) scoreAnswer(sess *Session, answer int) string {
	current := sess.CurrentQuestion
	correctNumber := current.CorrectAnswerIndex + 1

	if answer == correctNumber {
		sess.Score++
		return "Correct. "
	}

	// Speak back the text the player heard at the slot reported correct.
	answerText := e.bank.Question(current.QuestionIndex).Answers[current.AnswerShuffleIndices[current.CorrectAnswerIndex]]
	return fmt.Sprintf("Incorrect. The correct answer was %d. %s. ", correctNumber, answerText)
}

// nextQuestion selects the next question of the game, or reports that
// the game is over. QuestionNum is 1-based, so the current ordinal is
// exactly the 0-based index of the next question.
func (e *Engine) nextQuestion(sess *Session) (SelectedQuestion, bool) {
	nextOrdinal := sess.CurrentQuestion.QuestionNum
	if nextOrdinal >= len(sess.QuestionIndices) {
		return SelectedQuestion{}, false
	}

	questionIndex := sess.QuestionIndices[nextOrdinal]
	return e.sel.Select(questionIndex, sess.CurrentQuestion.QuestionNum+1), true
}

// promptText renders the spoken prompt for a selected question: the
// ordinal, the question itself, then each shuffled answer by number.
func (e *Engine) promptText(selection SelectedQuestion) string {
	var b strings.Builder
	question := e.bank.Question(selection.QuestionIndex)

	fmt.Fprintf(&b, "Question %d. ", selection.QuestionNum)
	b.WriteString(question.Text)
	b.WriteString(" ")

	for i, answerIdx := range selection.AnswerShuffleIndices {
		fmt.Fprintf(&b, "%d. %s. ", i+1, question.Answers[answerIdx])
	}

	return b.String()
}

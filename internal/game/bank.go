// Package game implements the trivia game engine: the question catalog,
// randomized question selection, answer parsing, session state and the
// request dispatch state machine. It performs no I/O; hosting, transport
// and session persistence live in the surrounding packages.
package game

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// AnswerCount is the fixed number of answers per question. The spoken
// answer vocabulary (one..four) is tied to this value.
const AnswerCount = 4

//go:embed questions.yaml
var questionsYAML []byte

// Question is a single catalog entry. Answers[0] is always the correct
// answer; presentation order is shuffled per turn by the Selector.
type Question struct {
	Text    string   `yaml:"text"`
	Answers []string `yaml:"answers"`
}

// Bank is the immutable, process-wide question catalog. Load it once at
// startup and share it freely; it is never mutated afterwards.
type Bank struct {
	questions []Question
}

type catalogFile struct {
	Questions []Question `yaml:"questions"`
}

// LoadBank parses the embedded catalog and validates every entry.
func LoadBank() (*Bank, error) {
	var file catalogFile
	if err := yaml.Unmarshal(questionsYAML, &file); err != nil {
		return nil, fmt.Errorf("parse question catalog: %w", err)
	}

	if len(file.Questions) == 0 {
		return nil, fmt.Errorf("question catalog is empty")
	}

	for i, q := range file.Questions {
		if q.Text == "" {
			return nil, fmt.Errorf("question %d: empty text", i)
		}
		if len(q.Answers) != AnswerCount {
			return nil, fmt.Errorf("question %d: has %d answers, want %d", i, len(q.Answers), AnswerCount)
		}
	}

	return &Bank{questions: file.Questions}, nil
}

// Question returns the catalog entry at index i. Indices are always
// produced by the Selector, so i is expected to be in range.
func (b *Bank) Question(i int) Question {
	return b.questions[i]
}

// Len returns the number of questions in the catalog.
func (b *Bank) Len() int {
	return len(b.questions)
}

// AnswerCount returns the number of answers per question.
func (b *Bank) AnswerCount() int {
	return AnswerCount
}

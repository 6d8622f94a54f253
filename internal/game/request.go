package game

import "fmt"

// RequestType identifies what the player asked for, as decoded by the
// transport adapter.
type RequestType int

const (
	RequestLaunchGame RequestType = iota
	RequestEndGame
	RequestAnswerYes
	RequestAnswerNo
	RequestAnswerDontKnow
	RequestAnswerHelp
	RequestAnswerRepeat
	RequestAnswerGeneric
)

var requestNames = map[RequestType]string{
	RequestLaunchGame:     "LaunchGame",
	RequestEndGame:        "EndGame",
	RequestAnswerYes:      "AnswerYes",
	RequestAnswerNo:       "AnswerNo",
	RequestAnswerDontKnow: "AnswerDontKnow",
	RequestAnswerHelp:     "AnswerHelp",
	RequestAnswerRepeat:   "AnswerRepeat",
	RequestAnswerGeneric:  "AnswerGeneric",
}

func (t RequestType) String() string {
	if name, ok := requestNames[t]; ok {
		return name
	}
	return fmt.Sprintf("RequestType(%d)", int(t))
}

// ParseRequestType maps the wire name of a request type to its enum
// value. Used at the adapter boundary so unknown names are rejected
// there instead of aborting the engine.
func ParseRequestType(name string) (RequestType, bool) {
	for t, n := range requestNames {
		if n == name {
			return t, true
		}
	}
	return 0, false
}

// Argument is one name/value pair from the player's utterance. The
// argument set is an unordered bag keyed by name.
type Argument struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

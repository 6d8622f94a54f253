package game

import (
	"strconv"
	"strings"
)

// slotAnswer is the argument name carrying the player's answer,
// matched case-insensitively.
const slotAnswer = "ANSWER"

// answerWords maps spoken number words to their numeric value. Only
// goes up to AnswerCount, so table hits never need a range check.
var answerWords = map[string]int{
	"ONE":   1,
	"TWO":   2,
	"THREE": 3,
	"FOUR":  4,
}

// answerNumber extracts the 1-based answer number from the argument
// bag. Missing slot, blank value, unparseable text and out-of-range
// numbers all collapse to ok=false; the engine reports one generic
// range message for every failure.
func answerNumber(arguments []Argument, answerCount int) (int, bool) {
	var value string
	for _, arg := range arguments {
		if strings.ToUpper(arg.Name) == slotAnswer {
			value = arg.Value
			break
		}
	}

	if strings.TrimSpace(value) == "" {
		return 0, false
	}

	if n, ok := answerWords[strings.ToUpper(value)]; ok {
		return n, true
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}

	if n > 0 && n <= answerCount {
		return n, true
	}

	return 0, false
}

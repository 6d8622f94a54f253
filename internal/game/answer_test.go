package game

import "testing"

func TestAnswerNumber(t *testing.T) {
	tests := []struct {
		name      string
		arguments []Argument
		want      int
		wantOK    bool
	}{
		{
			name:      "word answer",
			arguments: []Argument{{Name: "Answer", Value: "Three"}},
			want:      3,
			wantOK:    true,
		},
		{
			name:      "upper case word",
			arguments: []Argument{{Name: "ANSWER", Value: "ONE"}},
			want:      1,
			wantOK:    true,
		},
		{
			name:      "numeric answer",
			arguments: []Argument{{Name: "answer", Value: "4"}},
			want:      4,
			wantOK:    true,
		},
		{
			name:      "slot name matched among others",
			arguments: []Argument{{Name: "Locale", Value: "en-US"}, {Name: "Answer", Value: "2"}},
			want:      2,
			wantOK:    true,
		},
		{
			name:      "no arguments",
			arguments: nil,
			wantOK:    false,
		},
		{
			name:      "missing slot",
			arguments: []Argument{{Name: "Locale", Value: "en-US"}},
			wantOK:    false,
		},
		{
			name:      "blank value",
			arguments: []Argument{{Name: "Answer", Value: "   "}},
			wantOK:    false,
		},
		{
			name:      "word out of vocabulary",
			arguments: []Argument{{Name: "Answer", Value: "Five"}},
			wantOK:    false,
		},
		{
			name:      "number above range",
			arguments: []Argument{{Name: "Answer", Value: "5"}},
			wantOK:    false,
		},
		{
			name:      "zero",
			arguments: []Argument{{Name: "Answer", Value: "0"}},
			wantOK:    false,
		},
		{
			name:      "negative",
			arguments: []Argument{{Name: "Answer", Value: "-1"}},
			wantOK:    false,
		},
		{
			name:      "free text",
			arguments: []Argument{{Name: "Answer", Value: "the first one"}},
			wantOK:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := answerNumber(tt.arguments, AnswerCount)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Fatalf("answer = %d, want %d", got, tt.want)
			}
		})
	}
}

package game

// Response is the outcome of one engine invocation. The transport
// adapter encodes it into the platform's wire format.
type Response struct {
	// SpokenResponse is the text spoken to the player.
	SpokenResponse string

	// SpokenReprompt is spoken if the player does not respond promptly.
	SpokenReprompt string

	// CardTitle and CardText describe an optional display card. Both
	// empty means no card for this turn.
	CardTitle string
	CardText  string

	// EndSession tells the caller to close the conversation.
	EndSession bool

	// SessionValues is the state blob to persist for the next turn. An
	// empty map means the caller should not persist any session.
	SessionValues map[string]any

	// FinalScore is set only on the turn that concludes a game, for
	// callers that record finished games.
	FinalScore *int
}

func newResponse(spoken, reprompt string, values map[string]any) *Response {
	if values == nil {
		values = map[string]any{}
	}
	return &Response{
		SpokenResponse: spoken,
		SpokenReprompt: reprompt,
		SessionValues:  values,
	}
}

// withCard attaches the display card, using the spoken text as card body.
func (r *Response) withCard(title string) *Response {
	r.CardTitle = title
	r.CardText = r.SpokenResponse
	return r
}

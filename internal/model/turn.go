// Package model defines the wire payloads of the turn API.
package model

// TurnArgument is one name/value pair from the player's utterance,
// e.g. the "Answer" slot.
type TurnArgument struct {
	Name  string `json:"name" binding:"required,max=64"`
	Value string `json:"value" binding:"max=256"`
}

// TurnRequest is the payload for executing one game turn.
type TurnRequest struct {
	// Request is the wire name of the request type, e.g. "LaunchGame",
	// "AnswerGeneric", "EndGame".
	Request   string         `json:"request" binding:"required,max=32"`
	Arguments []TurnArgument `json:"arguments" binding:"omitempty,dive"`
	// StateToken carries the prior session state on the stateless
	// endpoint. Ignored by the server-side session endpoint.
	StateToken string `json:"state_token,omitempty"`
}

// TurnResponse is the engine's answer to one turn.
type TurnResponse struct {
	SpokenResponse string `json:"spoken_response"`
	SpokenReprompt string `json:"spoken_reprompt"`
	CardTitle      string `json:"card_title,omitempty"`
	CardText       string `json:"card_text,omitempty"`
	EndSession     bool   `json:"end_session"`
	// SessionID echoes the conversation ID on the session endpoint.
	SessionID string `json:"session_id,omitempty"`
	// StateToken carries the new session state on the stateless
	// endpoint; absent when no session should persist.
	StateToken string `json:"state_token,omitempty"`
}

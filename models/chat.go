package models

// Sender identifies who authored a chat message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// ChatMessage is one entry in a session transcript. The transcript is
// append-only; a message is never edited after creation.
type ChatMessage struct {
	ID               string                 `json:"id"`
	Sender           Sender                 `json:"sender"`
	Text             string                 `json:"text"`
	MultiCityFlights []MultiCityFlightGroup `json:"multiCityFlights,omitempty"`
}

// SendMessageRequest is the payload for posting a user turn.
type SendMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

// SessionResponse is returned when a chat session is created.
type SessionResponse struct {
	SessionID string      `json:"sessionId"`
	Greeting  ChatMessage `json:"greeting"`
}

// TurnResponse is returned for a completed user turn.
type TurnResponse struct {
	Message ChatMessage `json:"message"`
}

package assistant

import (
	"context"

	"skybook/models"
)

// TurnOutcome is what the reasoning service produced for one turn:
// either a plain natural-language reply or a request to invoke a tool.
// Callers type-switch on the concrete variant.
type TurnOutcome interface {
	isTurnOutcome()
}

// PlainReply is a turn that came back as text only.
type PlainReply struct {
	Text string
}

// ToolInvocation is a turn that asked the host to run a declared tool
// and report its result.
type ToolInvocation struct {
	Name string
	Args map[string]any
}

func (PlainReply) isTurnOutcome()     {}
func (ToolInvocation) isTurnOutcome() {}

// OracleSession is one conversational session with the reasoning
// service. A session carries its own memory across turns; turns on the
// same session must never be interleaved.
type OracleSession interface {
	SendText(ctx context.Context, text string) (TurnOutcome, error)
	SendToolResult(ctx context.Context, name string, result map[string]any) (TurnOutcome, error)
}

// Oracle opens conversational sessions with the reasoning service.
type Oracle interface {
	StartSession(ctx context.Context) (OracleSession, error)
}

// TranscriptStore persists the append-only message log of a session.
type TranscriptStore interface {
	Append(ctx context.Context, sessionID string, msgs ...models.ChatMessage) error
	History(ctx context.Context, sessionID string) ([]models.ChatMessage, error)
	Reset(ctx context.Context, sessionID string, greeting models.ChatMessage) error
}

// TurnResult is the combined outcome of one user turn: the assistant's
// reply and, when a flight search ran, the itinerary groups it found.
type TurnResult struct {
	ReplyText string
	Groups    []models.MultiCityFlightGroup
}

// ConversationService manages chat sessions and drives the tool-call
// protocol for each user turn.
type ConversationService interface {
	CreateSession(ctx context.Context) (string, models.ChatMessage, error)
	SubmitTurn(ctx context.Context, sessionID, text string) (*TurnResult, error)
	History(ctx context.Context, sessionID string) ([]models.ChatMessage, error)
	ResetConversation(ctx context.Context, sessionID string) (models.ChatMessage, error)
}

package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"skybook/models"
	"skybook/services/search"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

var (
	// ErrSessionNotFound is returned for an unknown or expired session.
	ErrSessionNotFound = errors.New("chat session not found")
	// ErrTurnInFlight is returned when a second turn is submitted while
	// one is still outstanding on the same session.
	ErrTurnInFlight = errors.New("a turn is already in progress for this session")
)

// DefaultConversationService implements ConversationService. It owns
// one oracle session per chat session and serializes turns on each with
// a busy gate, because the oracle protocol does not tolerate
// interleaved tool-call sequences.
type DefaultConversationService struct {
	Oracle      Oracle
	SearchSvc   search.SearchService
	Transcript  TranscriptStore
	Logger      *zap.Logger
	TurnTimeout time.Duration

	mu       sync.RWMutex
	sessions map[string]*chatSession
}

type chatSession struct {
	oracle OracleSession
	busy   atomic.Bool
}

func NewDefaultConversationService(
	oracle Oracle,
	searchSvc search.SearchService,
	transcript TranscriptStore,
	logger *zap.Logger,
	turnTimeout time.Duration,
) *DefaultConversationService {
	return &DefaultConversationService{
		Oracle:      oracle,
		SearchSvc:   searchSvc,
		Transcript:  transcript,
		Logger:      logger,
		TurnTimeout: turnTimeout,
		sessions:    make(map[string]*chatSession),
	}
}

// CreateSession opens a fresh oracle session and seeds the transcript
// with the assistant's greeting.
func (s *DefaultConversationService) CreateSession(ctx context.Context) (string, models.ChatMessage, error) {
	oracleSess, err := s.Oracle.StartSession(ctx)
	if err != nil {
		return "", models.ChatMessage{}, fmt.Errorf("start oracle session: %w", err)
	}

	sessionID := uuid.New().String()
	greeting := models.ChatMessage{
		ID:     uuid.New().String(),
		Sender: models.SenderBot,
		Text:   greetingText,
	}
	if err := s.Transcript.Reset(ctx, sessionID, greeting); err != nil {
		return "", models.ChatMessage{}, fmt.Errorf("seed transcript: %w", err)
	}

	s.mu.Lock()
	s.sessions[sessionID] = &chatSession{oracle: oracleSess}
	s.mu.Unlock()

	s.Logger.Info("Chat session created", zap.String("sessionID", sessionID))
	return sessionID, greeting, nil
}

// SubmitTurn runs one user turn end to end: user text to the oracle, an
// optional findFlights tool execution, the function result back to the
// same oracle session, and the final reply. Oracle or tool failures do
// not poison the session; they surface as a single apology reply and
// the session stays usable.
func (s *DefaultConversationService) SubmitTurn(ctx context.Context, sessionID, text string) (*TurnResult, error) {
	sess := s.lookup(sessionID)
	if sess == nil {
		return nil, ErrSessionNotFound
	}
	if !sess.busy.CompareAndSwap(false, true) {
		return nil, ErrTurnInFlight
	}
	defer sess.busy.Store(false)

	if s.TurnTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.TurnTimeout)
		defer cancel()
	}

	userMsg := models.ChatMessage{ID: uuid.New().String(), Sender: models.SenderUser, Text: text}
	if err := s.Transcript.Append(ctx, sessionID, userMsg); err != nil {
		s.Logger.Warn("Failed to record user message", zap.String("sessionID", sessionID), zap.Error(err))
	}

	result := s.runTurn(ctx, sessionID, sess, text)

	botMsg := models.ChatMessage{
		ID:               uuid.New().String(),
		Sender:           models.SenderBot,
		Text:             result.ReplyText,
		MultiCityFlights: result.Groups,
	}
	if err := s.Transcript.Append(ctx, sessionID, botMsg); err != nil {
		s.Logger.Warn("Failed to record bot message", zap.String("sessionID", sessionID), zap.Error(err))
	}
	return result, nil
}

func (s *DefaultConversationService) runTurn(ctx context.Context, sessionID string, sess *chatSession, text string) *TurnResult {
	outcome, err := sess.oracle.SendText(ctx, text)
	if err != nil {
		s.Logger.Error("Oracle turn failed", zap.String("sessionID", sessionID), zap.Error(err))
		return &TurnResult{ReplyText: apologyText}
	}

	switch o := outcome.(type) {
	case PlainReply:
		return &TurnResult{ReplyText: o.Text}

	case ToolInvocation:
		if o.Name != FindFlightsToolName {
			s.Logger.Error("Oracle requested unknown tool",
				zap.String("sessionID", sessionID), zap.String("tool", o.Name))
			return &TurnResult{ReplyText: apologyText}
		}

		legs, err := decodeLegs(o.Args)
		if err != nil {
			s.Logger.Error("Rejecting malformed findFlights call",
				zap.String("sessionID", sessionID), zap.Error(err))
			return &TurnResult{ReplyText: apologyText}
		}

		groups, err := s.SearchSvc.Search(ctx, legs)
		if err != nil {
			s.Logger.Error("Flight search failed", zap.String("sessionID", sessionID), zap.Error(err))
			return &TurnResult{ReplyText: apologyText}
		}

		payload, err := toolResultPayload(groups)
		if err != nil {
			s.Logger.Error("Failed to encode tool result", zap.String("sessionID", sessionID), zap.Error(err))
			return &TurnResult{ReplyText: apologyText}
		}

		final, err := sess.oracle.SendToolResult(ctx, o.Name, payload)
		if err != nil {
			s.Logger.Error("Oracle rejected tool result", zap.String("sessionID", sessionID), zap.Error(err))
			return &TurnResult{ReplyText: apologyText}
		}

		return &TurnResult{ReplyText: replyTextOf(final), Groups: groups}

	default:
		return &TurnResult{ReplyText: apologyText}
	}
}

// History returns the session's transcript in order.
func (s *DefaultConversationService) History(ctx context.Context, sessionID string) ([]models.ChatMessage, error) {
	if s.lookup(sessionID) == nil {
		return nil, ErrSessionNotFound
	}
	return s.Transcript.History(ctx, sessionID)
}

// ResetConversation replaces the transcript with a fresh greeting. The
// oracle session is kept, so the assistant retains its memory of the
// trip discussed so far.
func (s *DefaultConversationService) ResetConversation(ctx context.Context, sessionID string) (models.ChatMessage, error) {
	if s.lookup(sessionID) == nil {
		return models.ChatMessage{}, ErrSessionNotFound
	}
	greeting := models.ChatMessage{
		ID:     uuid.New().String(),
		Sender: models.SenderBot,
		Text:   returnGreetingText,
	}
	if err := s.Transcript.Reset(ctx, sessionID, greeting); err != nil {
		return models.ChatMessage{}, fmt.Errorf("reset transcript: %w", err)
	}
	return greeting, nil
}

func (s *DefaultConversationService) lookup(sessionID string) *chatSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[sessionID]
}

type findFlightsArgs struct {
	Legs []models.FlightLeg `mapstructure:"legs"`
}

// decodeLegs validates the tool arguments before any search runs.
// Partial legs are a turn failure, never a partial search.
func decodeLegs(args map[string]any) ([]models.FlightLeg, error) {
	var payload findFlightsArgs
	if err := mapstructure.Decode(args, &payload); err != nil {
		return nil, fmt.Errorf("decode findFlights args: %w", err)
	}
	if len(payload.Legs) == 0 {
		return nil, fmt.Errorf("findFlights call carried no legs")
	}
	for i, leg := range payload.Legs {
		if leg.Origin == "" || leg.Destination == "" || leg.DepartureDate == "" {
			return nil, fmt.Errorf("leg %d is missing required fields", i+1)
		}
	}
	return payload.Legs, nil
}

// toolResultPayload flattens the groups into plain JSON values, which
// is what the oracle's function-response channel accepts.
func toolResultPayload(groups []models.MultiCityFlightGroup) (map[string]any, error) {
	b, err := json.Marshal(groups)
	if err != nil {
		return nil, err
	}
	var flights any
	if err := json.Unmarshal(b, &flights); err != nil {
		return nil, err
	}
	return map[string]any{"flights": flights}, nil
}

func replyTextOf(outcome TurnOutcome) string {
	if reply, ok := outcome.(PlainReply); ok {
		return reply.Text
	}
	// A second tool call in the same user turn is out of contract.
	return apologyText
}

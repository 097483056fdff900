package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiOracle opens Gemini chat sessions with the findFlights tool and
// the assistant's system instruction attached.
type GeminiOracle struct {
	client *genai.Client
	model  string
	now    func() time.Time
}

func NewGeminiOracle(ctx context.Context, apiKey, model string) (*GeminiOracle, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}
	return &GeminiOracle{client: client, model: model, now: time.Now}, nil
}

func (g *GeminiOracle) StartSession(ctx context.Context) (OracleSession, error) {
	model := g.client.GenerativeModel(g.model)
	model.Tools = []*genai.Tool{findFlightsTool()}
	currentDate := g.now().Format("2006-01-02")
	model.SystemInstruction = genai.NewUserContent(genai.Text(systemInstruction(currentDate)))
	return &geminiSession{chat: model.StartChat()}, nil
}

// Close releases the underlying API client.
func (g *GeminiOracle) Close() error {
	return g.client.Close()
}

func findFlightsTool() *genai.Tool {
	legSchema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"origin": {
				Type:        genai.TypeString,
				Description: `The departure city or airport for this leg, e.g., "New York" or "JFK".`,
			},
			"destination": {
				Type:        genai.TypeString,
				Description: `The arrival city or airport for this leg, e.g., "London" or "LHR".`,
			},
			"departureDate": {
				Type:        genai.TypeString,
				Description: "The desired date of departure for this leg, in YYYY-MM-DD format.",
			},
		},
		Required: []string{"origin", "destination", "departureDate"},
	}

	return &genai.Tool{
		FunctionDeclarations: []*genai.FunctionDeclaration{
			{
				Name:        FindFlightsToolName,
				Description: "Finds available flights based on a series of flight legs provided by the user for one-way, round-trip, or multi-city journeys.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"legs": {
							Type:        genai.TypeArray,
							Description: "An array of flight legs for the journey. For a simple one-way trip, this will have one leg. For a round trip, it will have two legs.",
							Items:       legSchema,
						},
					},
					Required: []string{"legs"},
				},
			},
		},
	}
}

type geminiSession struct {
	chat *genai.ChatSession
}

func (s *geminiSession) SendText(ctx context.Context, text string) (TurnOutcome, error) {
	resp, err := s.chat.SendMessage(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("gemini send message: %w", err)
	}
	return outcomeFromResponse(resp), nil
}

func (s *geminiSession) SendToolResult(ctx context.Context, name string, result map[string]any) (TurnOutcome, error) {
	resp, err := s.chat.SendMessage(ctx, genai.FunctionResponse{
		Name:     name,
		Response: result,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini send function response: %w", err)
	}
	return outcomeFromResponse(resp), nil
}

// outcomeFromResponse collapses a Gemini response into a TurnOutcome.
// Only the first function call of a response is honored.
func outcomeFromResponse(resp *genai.GenerateContentResponse) TurnOutcome {
	var sb strings.Builder
	var call *genai.FunctionCall

	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			switch p := part.(type) {
			case genai.Text:
				sb.WriteString(string(p))
			case genai.FunctionCall:
				if call == nil {
					fc := p
					call = &fc
				}
			}
		}
	}

	if call != nil {
		return ToolInvocation{Name: call.Name, Args: call.Args}
	}
	return PlainReply{Text: sb.String()}
}

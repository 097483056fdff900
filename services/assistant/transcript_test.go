package assistant

import (
	"context"
	"testing"
	"time"

	"skybook/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *RedisTranscriptStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisTranscriptStore(client, 30*time.Minute)
}

func TestTranscriptAppendAndHistory(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	history, err := store.History(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, history)

	msgs := []models.ChatMessage{
		{ID: "1", Sender: models.SenderBot, Text: "hello"},
		{ID: "2", Sender: models.SenderUser, Text: "hi"},
	}
	require.NoError(t, store.Append(ctx, "s1", msgs...))
	require.NoError(t, store.Append(ctx, "s1", models.ChatMessage{ID: "3", Sender: models.SenderBot, Text: "how can I help?"}))

	history, err = store.History(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "1", history[0].ID)
	assert.Equal(t, "3", history[2].ID)
}

func TestTranscriptRoundTripsFlightGroups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	msg := models.ChatMessage{
		ID:     "1",
		Sender: models.SenderBot,
		Text:   "found these",
		MultiCityFlights: []models.MultiCityFlightGroup{
			{
				Leg: models.FlightLeg{Origin: "JFK", Destination: "LHR", DepartureDate: "2026-09-10"},
				Flights: []models.FlightDetails{
					{
						Airline:      "Gemini Airlines",
						FlightNumber: "GA-450",
						Origin:       models.Endpoint{City: "New York", Code: "JFK", Time: "10:00"},
						Destination:  models.Endpoint{City: "London", Code: "LHR", Time: "23:30"},
						Duration:     570,
						Price:        550,
						Date:         "2026-09-10",
						Stops:        models.WithStops(1, models.Layover{Duration: "1h 30m", Airport: "CDG"}),
					},
				},
			},
		},
	}
	require.NoError(t, store.Append(ctx, "s1", msg))

	history, err := store.History(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, history, 1)

	got := history[0].MultiCityFlights[0].Flights[0]
	assert.Equal(t, 1, got.Stops.Count())
	layover, ok := got.Stops.Layover()
	require.True(t, ok)
	assert.Equal(t, "CDG", layover.Airport)
}

func TestTranscriptReset(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "s1",
		models.ChatMessage{ID: "1", Sender: models.SenderBot, Text: "hello"},
		models.ChatMessage{ID: "2", Sender: models.SenderUser, Text: "hi"},
	))

	greeting := models.ChatMessage{ID: "3", Sender: models.SenderBot, Text: "How else can I help you?"}
	require.NoError(t, store.Reset(ctx, "s1", greeting))

	history, err := store.History(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, greeting, history[0])
}

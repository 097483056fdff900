package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStopInfoVariants(t *testing.T) {
	direct := Direct()
	assert.True(t, direct.IsDirect())
	assert.Zero(t, direct.Count())
	_, ok := direct.Layover()
	assert.False(t, ok)

	oneStop := WithStops(1, Layover{Duration: "1h 30m", Airport: "CDG"})
	assert.False(t, oneStop.IsDirect())
	assert.Equal(t, 1, oneStop.Count())
	layover, ok := oneStop.Layover()
	require.True(t, ok)
	assert.Equal(t, "CDG", layover.Airport)
}

func TestFlightDetailsWireFormat(t *testing.T) {
	f := FlightDetails{
		Airline:      "Gemini Airlines",
		FlightNumber: "GA-450",
		Origin:       Endpoint{City: "New York", Code: "JFK", Time: "10:00"},
		Destination:  Endpoint{City: "London", Code: "LHR", Time: "23:30"},
		Duration:     570,
		Price:        550,
		Date:         "2026-09-10",
		Stops:        WithStops(1, Layover{Duration: "1h 30m", Airport: "CDG"}),
	}

	b, err := json.Marshal(f)
	require.NoError(t, err)

	var wire map[string]any
	require.NoError(t, json.Unmarshal(b, &wire))
	assert.EqualValues(t, 1, wire["stops"])
	require.Contains(t, wire, "layover")

	var back FlightDetails
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, f, back)
}

func TestFlightDetailsDirectOmitsLayover(t *testing.T) {
	f := FlightDetails{FlightNumber: "GA-780", Stops: Direct()}

	b, err := json.Marshal(f)
	require.NoError(t, err)

	var wire map[string]any
	require.NoError(t, json.Unmarshal(b, &wire))
	assert.EqualValues(t, 0, wire["stops"])
	assert.NotContains(t, wire, "layover")
}

func TestFlightDetailsRejectsStopsWithoutLayover(t *testing.T) {
	var f FlightDetails
	err := json.Unmarshal([]byte(`{"flightNumber":"XX-1","stops":1}`), &f)
	assert.Error(t, err)
}

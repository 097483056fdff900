package search

import (
	"context"
	"fmt"

	"skybook/models"

	"go.uber.org/zap"
)

// MockSearchService synthesizes itinerary options in place of a real
// inventory system. Results are deterministic: each leg gets the same
// three options, varied only by the leg's position in the trip
// (price +50 per leg index, duration +15 minutes per leg index), so the
// same request always reproduces the same flights.
type MockSearchService struct {
	Logger *zap.Logger
}

func NewMockSearchService(logger *zap.Logger) *MockSearchService {
	return &MockSearchService{Logger: logger}
}

func (s *MockSearchService) Search(ctx context.Context, legs []models.FlightLeg) ([]models.MultiCityFlightGroup, error) {
	if len(legs) == 0 {
		return nil, fmt.Errorf("search: no legs provided")
	}
	if s.Logger != nil {
		s.Logger.Info("Searching flights", zap.Int("legs", len(legs)))
	}

	groups := make([]models.MultiCityFlightGroup, 0, len(legs))
	for i, leg := range legs {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		groups = append(groups, models.MultiCityFlightGroup{
			Leg:     leg,
			Flights: optionsForLeg(leg, i),
		})
	}
	return groups, nil
}

// optionsForLeg builds the three canned options for one leg. The spread
// is deliberate: two nonstop flights at different times of day and one
// cheaper one-stop flight, so downstream filters have something to cut.
func optionsForLeg(leg models.FlightLeg, index int) []models.FlightDetails {
	priceOffset := 50 * index
	durationOffset := 15 * index

	return []models.FlightDetails{
		{
			Airline:          "Gemini Airlines",
			FlightNumber:     fmt.Sprintf("GA-78%d", index),
			Origin:           models.Endpoint{City: leg.Origin, Code: "JFK", Time: "08:30"},
			Destination:      models.Endpoint{City: leg.Destination, Code: "LHR", Time: "20:30"},
			Duration:         480 + durationOffset,
			Price:            675 + priceOffset,
			Date:             leg.DepartureDate,
			Stops:            models.Direct(),
			BaggageAllowance: "1 carry-on, 1 checked bag",
			AirlineRating:    4.7,
			AircraftType:     "Boeing 787",
		},
		{
			Airline:          "React Airways",
			FlightNumber:     fmt.Sprintf("RA-12%d", index),
			Origin:           models.Endpoint{City: leg.Origin, Code: "JFK", Time: "14:00"},
			Destination:      models.Endpoint{City: leg.Destination, Code: "LHR", Time: "02:00"},
			Duration:         480 + durationOffset,
			Price:            720 + priceOffset,
			Date:             leg.DepartureDate,
			Stops:            models.Direct(),
			BaggageAllowance: "1 carry-on",
			AirlineRating:    4.5,
			AircraftType:     "Airbus A320",
		},
		{
			Airline:          "Gemini Airlines",
			FlightNumber:     fmt.Sprintf("GA-45%d", index),
			Origin:           models.Endpoint{City: leg.Origin, Code: "JFK", Time: "10:00"},
			Destination:      models.Endpoint{City: leg.Destination, Code: "LHR", Time: "23:30"},
			Duration:         570 + durationOffset,
			Price:            550 + priceOffset,
			Date:             leg.DepartureDate,
			Stops:            models.WithStops(1, models.Layover{Duration: "1h 30m", Airport: "CDG"}),
			BaggageAllowance: "1 carry-on",
			AirlineRating:    4.2,
			AircraftType:     "Boeing 737",
		},
	}
}

package models

import (
	"encoding/json"
	"fmt"
)

// FlightLeg is one directed origin→destination search request for a
// specific date. Legs are immutable once produced for a tool call.
type FlightLeg struct {
	Origin        string `json:"origin" mapstructure:"origin"`
	Destination   string `json:"destination" mapstructure:"destination"`
	DepartureDate string `json:"departureDate" mapstructure:"departureDate"` // YYYY-MM-DD
}

// Endpoint is one end of a flight segment.
type Endpoint struct {
	City string `json:"city"`
	Code string `json:"code"`
	Time string `json:"time"` // HH:MM, 24h clock
}

// Layover describes the connection of a non-direct flight.
type Layover struct {
	Duration string `json:"duration"` // display label, e.g. "1h 30m"
	Airport  string `json:"airport"`  // IATA code
}

// StopInfo couples the stop count to its layover so that a flight with
// stops can never exist without one, and a direct flight can never
// carry one.
type StopInfo struct {
	count   int
	layover *Layover
}

// Direct returns the StopInfo of a nonstop flight.
func Direct() StopInfo {
	return StopInfo{}
}

// WithStops returns the StopInfo of a flight with one or more stops.
func WithStops(count int, layover Layover) StopInfo {
	if count < 1 {
		count = 1
	}
	return StopInfo{count: count, layover: &layover}
}

// Count returns the number of stops.
func (s StopInfo) Count() int {
	return s.count
}

// IsDirect reports whether the flight is nonstop.
func (s StopInfo) IsDirect() bool {
	return s.count == 0
}

// Layover returns the layover and whether one exists.
func (s StopInfo) Layover() (Layover, bool) {
	if s.layover == nil {
		return Layover{}, false
	}
	return *s.layover, true
}

// FlightDetails is a single itinerary option. It is a value object with
// no identity beyond its fields and is never mutated after creation.
type FlightDetails struct {
	Airline          string   `json:"airline"`
	FlightNumber     string   `json:"flightNumber"`
	Origin           Endpoint `json:"origin"`
	Destination      Endpoint `json:"destination"`
	Duration         int      `json:"duration"` // minutes
	Price            int      `json:"price"`
	Date             string   `json:"date"`
	Stops            StopInfo `json:"-"`
	BaggageAllowance string   `json:"baggageAllowance"`
	AirlineRating    float64  `json:"airlineRating"`
	AircraftType     string   `json:"aircraftType,omitempty"`
}

// The wire format keeps the flat stops/layover shape the frontend expects.

func (f FlightDetails) MarshalJSON() ([]byte, error) {
	type alias FlightDetails
	out := struct {
		alias
		Stops   int      `json:"stops"`
		Layover *Layover `json:"layover,omitempty"`
	}{alias: alias(f), Stops: f.Stops.Count()}
	if lay, ok := f.Stops.Layover(); ok {
		out.Layover = &lay
	}
	return json.Marshal(out)
}

func (f *FlightDetails) UnmarshalJSON(data []byte) error {
	type alias FlightDetails
	aux := struct {
		*alias
		Stops   int      `json:"stops"`
		Layover *Layover `json:"layover"`
	}{alias: (*alias)(f)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Stops <= 0 {
		f.Stops = Direct()
		return nil
	}
	if aux.Layover == nil {
		return fmt.Errorf("flight %s: %d stops without a layover", f.FlightNumber, aux.Stops)
	}
	f.Stops = WithStops(aux.Stops, *aux.Layover)
	return nil
}

// MultiCityFlightGroup is the set of candidate flights returned for one
// leg. Groups are positionally correlated with the requested legs.
type MultiCityFlightGroup struct {
	Leg     FlightLeg       `json:"leg"`
	Flights []FlightDetails `json:"flights"`
}

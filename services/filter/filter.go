// Package filter narrows itinerary groups without re-querying the
// inventory. All functions are pure; callers recompute on every filter
// change rather than caching results.
package filter

import (
	"strconv"
	"strings"

	"skybook/models"
)

// StopsFilter buckets flights by stop count.
type StopsFilter string

const (
	StopsAny         StopsFilter = "Any"
	StopsDirect      StopsFilter = "Direct"
	StopsOneStopPlus StopsFilter = "1 Stop+"
)

// TimeOfDayFilter buckets flights by departure hour.
type TimeOfDayFilter string

const (
	TimeAny       TimeOfDayFilter = "Any"
	TimeMorning   TimeOfDayFilter = "Morning"
	TimeAfternoon TimeOfDayFilter = "Afternoon"
	TimeEvening   TimeOfDayFilter = "Evening"
)

// State is one message's filter settings. Each bot message carrying
// flights owns an independent State.
type State struct {
	MaxPrice      int             `json:"maxPrice"`
	Stops         StopsFilter     `json:"stops"`
	DepartureTime TimeOfDayFilter `json:"departureTime"`
	MaxDuration   int             `json:"maxDuration"` // minutes
}

// Bounds holds the slider ceilings derived from an unfiltered flight
// set. They are computed once per message and never recomputed after
// the user adjusts a filter.
type Bounds struct {
	InitialMaxPrice    int `json:"initialMaxPrice"`
	InitialMaxDuration int `json:"initialMaxDuration"`
}

const (
	defaultMaxPrice    = 1000
	defaultMaxDuration = 1440 // 24h in minutes
)

// Unbounded returns a State that keeps every flight.
func Unbounded(b Bounds) State {
	return State{
		MaxPrice:      b.InitialMaxPrice,
		Stops:         StopsAny,
		DepartureTime: TimeAny,
		MaxDuration:   b.InitialMaxDuration,
	}
}

// DeriveBounds computes slider ceilings from the unfiltered groups:
// price rounded up to the nearest 100, duration to the exact ceiling.
func DeriveBounds(groups []models.MultiCityFlightGroup) Bounds {
	maxPrice, maxDuration := 0, 0
	seen := false
	for _, g := range groups {
		for _, f := range g.Flights {
			seen = true
			if f.Price > maxPrice {
				maxPrice = f.Price
			}
			if f.Duration > maxDuration {
				maxDuration = f.Duration
			}
		}
	}
	if !seen {
		return Bounds{InitialMaxPrice: defaultMaxPrice, InitialMaxDuration: defaultMaxDuration}
	}
	return Bounds{
		InitialMaxPrice:    ((maxPrice + 99) / 100) * 100,
		InitialMaxDuration: maxDuration,
	}
}

// TimeOfDay buckets an HH:MM departure time: [5,12) is Morning, [12,18)
// is Afternoon, everything else (including the small hours) is Evening.
func TimeOfDay(departure string) TimeOfDayFilter {
	hourStr, _, _ := strings.Cut(departure, ":")
	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return TimeEvening
	}
	switch {
	case hour >= 5 && hour < 12:
		return TimeMorning
	case hour >= 12 && hour < 18:
		return TimeAfternoon
	default:
		return TimeEvening
	}
}

// Apply returns the groups with each flight list narrowed to the
// flights satisfying every predicate in the State. Surviving flights
// keep their original order, and a group is kept even when every one of
// its flights is filtered out, so "no flights match for this leg" stays
// renderable.
func Apply(groups []models.MultiCityFlightGroup, state State) []models.MultiCityFlightGroup {
	out := make([]models.MultiCityFlightGroup, 0, len(groups))
	for _, g := range groups {
		kept := make([]models.FlightDetails, 0, len(g.Flights))
		for _, f := range g.Flights {
			if matches(f, state) {
				kept = append(kept, f)
			}
		}
		out = append(out, models.MultiCityFlightGroup{Leg: g.Leg, Flights: kept})
	}
	return out
}

func matches(f models.FlightDetails, state State) bool {
	if f.Price > state.MaxPrice {
		return false
	}
	switch state.Stops {
	case StopsDirect:
		if !f.Stops.IsDirect() {
			return false
		}
	case StopsOneStopPlus:
		if f.Stops.IsDirect() {
			return false
		}
	}
	if state.DepartureTime != TimeAny && TimeOfDay(f.Origin.Time) != state.DepartureTime {
		return false
	}
	return f.Duration <= state.MaxDuration
}

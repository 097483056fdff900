package search

import (
	"context"

	"skybook/models"
)

// SearchService finds itinerary options for an ordered list of legs.
// Implementations must return exactly one non-empty group per leg, in
// leg order. This is the seam a real inventory backend plugs into.
type SearchService interface {
	Search(ctx context.Context, legs []models.FlightLeg) ([]models.MultiCityFlightGroup, error)
}

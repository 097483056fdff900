package search

import (
	"context"
	"fmt"
	"testing"

	"skybook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testLegs(n int) []models.FlightLeg {
	legs := make([]models.FlightLeg, 0, n)
	for i := 0; i < n; i++ {
		legs = append(legs, models.FlightLeg{
			Origin:        fmt.Sprintf("City-%d", i),
			Destination:   fmt.Sprintf("City-%d", i+1),
			DepartureDate: fmt.Sprintf("2026-09-%02d", i+1),
		})
	}
	return legs
}

func TestSearchReturnsOneGroupPerLegInOrder(t *testing.T) {
	svc := NewMockSearchService(zap.NewNop())

	for _, n := range []int{1, 2, 5} {
		legs := testLegs(n)
		groups, err := svc.Search(context.Background(), legs)
		require.NoError(t, err)
		require.Len(t, groups, n)

		for i, group := range groups {
			assert.Equal(t, legs[i], group.Leg, "group %d should carry leg %d", i, i)
			assert.NotEmpty(t, group.Flights, "group %d must not be empty", i)
			for _, f := range group.Flights {
				assert.Equal(t, legs[i].Origin, f.Origin.City)
				assert.Equal(t, legs[i].Destination, f.Destination.City)
				assert.Equal(t, legs[i].DepartureDate, f.Date)
			}
		}
	}
}

func TestSearchIsDeterministic(t *testing.T) {
	svc := NewMockSearchService(zap.NewNop())
	legs := testLegs(3)

	first, err := svc.Search(context.Background(), legs)
	require.NoError(t, err)
	second, err := svc.Search(context.Background(), legs)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSearchVariesByLegIndex(t *testing.T) {
	svc := NewMockSearchService(zap.NewNop())
	groups, err := svc.Search(context.Background(), testLegs(3))
	require.NoError(t, err)

	for i, group := range groups {
		// First option: base price 675, base duration 480.
		assert.Equal(t, 675+50*i, group.Flights[0].Price)
		assert.Equal(t, 480+15*i, group.Flights[0].Duration)
	}
}

func TestSearchStopsAndLayoverAreConsistent(t *testing.T) {
	svc := NewMockSearchService(zap.NewNop())
	groups, err := svc.Search(context.Background(), testLegs(4))
	require.NoError(t, err)

	for _, group := range groups {
		for _, f := range group.Flights {
			_, hasLayover := f.Stops.Layover()
			assert.Equal(t, f.Stops.Count() > 0, hasLayover,
				"flight %s: layover must be present iff stops > 0", f.FlightNumber)
		}
	}
}

func TestSearchRejectsEmptyLegs(t *testing.T) {
	svc := NewMockSearchService(zap.NewNop())
	_, err := svc.Search(context.Background(), nil)
	assert.Error(t, err)
}

func TestSearchHonorsContextCancellation(t *testing.T) {
	svc := NewMockSearchService(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Search(ctx, testLegs(2))
	assert.ErrorIs(t, err, context.Canceled)
}

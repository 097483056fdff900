package handlers

import (
	"net/http"

	"skybook/models"
	"skybook/services/filter"
	"skybook/utils"

	"github.com/gin-gonic/gin"
)

// FilterFlightsRequest carries a message's itinerary groups together
// with the filter settings to apply. Filters are omitted on the first
// call to obtain the derived slider bounds.
type FilterFlightsRequest struct {
	Groups  []models.MultiCityFlightGroup `json:"groups" binding:"required"`
	Filters *filter.State                 `json:"filters"`
}

// FilterFlightsResponse returns the narrowed groups plus the bounds
// derived from the unfiltered set.
type FilterFlightsResponse struct {
	Groups []models.MultiCityFlightGroup `json:"groups"`
	Bounds filter.Bounds                 `json:"bounds"`
}

// FilterFlightsHandler is a stateless convenience endpoint for thin
// clients: it recomputes the filtered view from the raw groups on every
// call, never caching between requests.
func FilterFlightsHandler(c *gin.Context) {
	var req FilterFlightsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid filter request", err.Error())
		return
	}

	bounds := filter.DeriveBounds(req.Groups)
	state := filter.Unbounded(bounds)
	if req.Filters != nil {
		state = *req.Filters
	}

	c.JSON(http.StatusOK, FilterFlightsResponse{
		Groups: filter.Apply(req.Groups, state),
		Bounds: bounds,
	})
}

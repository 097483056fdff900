package models

// BookingDetails carries the passenger and payment fields collected
// before a booking is completed. No charge is ever made against the
// card fields; they are only validated for shape.
type BookingDetails struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	CardNumber string `json:"cardNumber"`
	ExpiryDate string `json:"expiryDate"`
	CVV        string `json:"cvv"`
}

// FieldErrors maps a details field name to its validation message.
type FieldErrors map[string]string

// SelectFlightRequest is the payload for choosing an itinerary option.
type SelectFlightRequest struct {
	Flight FlightDetails `json:"flight" binding:"required"`
}

// EditDetailRequest updates a single details field while the form is open.
type EditDetailRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// BookingStateResponse is the externally visible booking flow state.
type BookingStateResponse struct {
	Step    string         `json:"step"`
	Flight  *FlightDetails `json:"flight,omitempty"`
	Details BookingDetails `json:"details"`
	Errors  FieldErrors    `json:"errors,omitempty"`
}

package bookingflow

import (
	"regexp"
	"strings"

	"skybook/models"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// ValidateDetails checks the passenger and payment fields. All five
// fields are required; the email must additionally look like an email.
func ValidateDetails(d models.BookingDetails) models.FieldErrors {
	errs := models.FieldErrors{}
	if strings.TrimSpace(d.FullName) == "" {
		errs["fullName"] = "Full name is required."
	}
	if strings.TrimSpace(d.Email) == "" {
		errs["email"] = "Email is required."
	} else if !emailPattern.MatchString(d.Email) {
		errs["email"] = "Email is invalid."
	}
	if strings.TrimSpace(d.CardNumber) == "" {
		errs["cardNumber"] = "Card number is required."
	}
	if strings.TrimSpace(d.ExpiryDate) == "" {
		errs["expiryDate"] = "Expiry date is required."
	}
	if strings.TrimSpace(d.CVV) == "" {
		errs["cvv"] = "CVV is required."
	}
	return errs
}

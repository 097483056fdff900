// Package bookingflow sequences the user journey from browsing flight
// options to a completed booking.
package bookingflow

import (
	"errors"
	"fmt"
	"sync"

	"skybook/models"
)

// Step is a booking flow state.
type Step string

const (
	StepBrowsing        Step = "browsing"
	StepConfirming      Step = "confirming"
	StepEnteringDetails Step = "enteringDetails"
	StepSuccess         Step = "success"
)

// ErrInvalidTransition is returned when an action is not legal in the
// flow's current step.
var ErrInvalidTransition = errors.New("action not allowed in current booking step")

// Flow is the booking state machine for one chat session. Every step
// except Browsing carries the selected flight; the selection is cleared
// whenever the flow returns to Browsing.
type Flow struct {
	mu        sync.Mutex
	step      Step
	selection *models.FlightDetails
	details   models.BookingDetails
	errs      models.FieldErrors
}

func NewFlow() *Flow {
	return &Flow{step: StepBrowsing}
}

// SelectFlight moves Browsing → Confirming with the chosen flight.
func (f *Flow) SelectFlight(flight models.FlightDetails) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepBrowsing {
		return fmt.Errorf("%w: select from %s", ErrInvalidTransition, f.step)
	}
	f.selection = &flight
	f.step = StepConfirming
	return nil
}

// Confirm moves Confirming → EnteringDetails.
func (f *Flow) Confirm() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepConfirming {
		return fmt.Errorf("%w: confirm from %s", ErrInvalidTransition, f.step)
	}
	f.step = StepEnteringDetails
	return nil
}

// Cancel moves Confirming → Browsing and clears the selection.
func (f *Flow) Cancel() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepConfirming {
		return fmt.Errorf("%w: cancel from %s", ErrInvalidTransition, f.step)
	}
	f.reset()
	return nil
}

// Back moves EnteringDetails → Confirming. The details draft survives
// so the user does not retype it.
func (f *Flow) Back() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepEnteringDetails {
		return fmt.Errorf("%w: back from %s", ErrInvalidTransition, f.step)
	}
	f.step = StepConfirming
	return nil
}

// EditDetail updates one details field and clears any validation error
// previously recorded against it.
func (f *Flow) EditDetail(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepEnteringDetails {
		return fmt.Errorf("%w: edit details from %s", ErrInvalidTransition, f.step)
	}
	if err := setDetailField(&f.details, field, value); err != nil {
		return err
	}
	delete(f.errs, field)
	if len(f.errs) == 0 {
		f.errs = nil
	}
	return nil
}

// SubmitDetails validates the draft. On a clean form it moves
// EnteringDetails → Success; otherwise the flow stays in place and the
// per-field errors are recorded for inline display.
func (f *Flow) SubmitDetails() (models.FieldErrors, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepEnteringDetails {
		return nil, fmt.Errorf("%w: submit details from %s", ErrInvalidTransition, f.step)
	}
	errs := ValidateDetails(f.details)
	if len(errs) > 0 {
		f.errs = errs
		return errs, nil
	}
	f.errs = nil
	f.step = StepSuccess
	return nil, nil
}

// Return moves Success → Browsing and clears the selection and draft.
func (f *Flow) Return() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepSuccess {
		return fmt.Errorf("%w: return from %s", ErrInvalidTransition, f.step)
	}
	f.reset()
	return nil
}

func (f *Flow) reset() {
	f.step = StepBrowsing
	f.selection = nil
	f.details = models.BookingDetails{}
	f.errs = nil
}

// State returns a snapshot of the flow for rendering.
func (f *Flow) State() models.BookingStateResponse {
	f.mu.Lock()
	defer f.mu.Unlock()
	resp := models.BookingStateResponse{
		Step:    string(f.step),
		Details: f.details,
	}
	if f.selection != nil {
		sel := *f.selection
		resp.Flight = &sel
	}
	if len(f.errs) > 0 {
		errs := make(models.FieldErrors, len(f.errs))
		for k, v := range f.errs {
			errs[k] = v
		}
		resp.Errors = errs
	}
	return resp
}

func setDetailField(d *models.BookingDetails, field, value string) error {
	switch field {
	case "fullName":
		d.FullName = value
	case "email":
		d.Email = value
	case "cardNumber":
		d.CardNumber = value
	case "expiryDate":
		d.ExpiryDate = value
	case "cvv":
		d.CVV = value
	default:
		return fmt.Errorf("unknown details field %q", field)
	}
	return nil
}

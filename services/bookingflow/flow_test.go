package bookingflow

import (
	"testing"

	"skybook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFlight() models.FlightDetails {
	return models.FlightDetails{
		Airline:      "Gemini Airlines",
		FlightNumber: "GA-780",
		Origin:       models.Endpoint{City: "New York", Code: "JFK", Time: "08:30"},
		Destination:  models.Endpoint{City: "London", Code: "LHR", Time: "20:30"},
		Duration:     480,
		Price:        675,
		Date:         "2026-09-10",
		Stops:        models.Direct(),
	}
}

func fillValidDetails(t *testing.T, f *Flow) {
	t.Helper()
	for field, value := range map[string]string{
		"fullName":   "Ada Lovelace",
		"email":      "ada@example.com",
		"cardNumber": "4111111111111111",
		"expiryDate": "12 / 27",
		"cvv":        "123",
	} {
		require.NoError(t, f.EditDetail(field, value))
	}
}

func TestSelectThenCancelClearsSelection(t *testing.T) {
	f := NewFlow()
	require.NoError(t, f.SelectFlight(testFlight()))
	assert.Equal(t, string(StepConfirming), f.State().Step)
	require.NotNil(t, f.State().Flight)

	require.NoError(t, f.Cancel())
	state := f.State()
	assert.Equal(t, string(StepBrowsing), state.Step)
	assert.Nil(t, state.Flight)
}

func TestHappyPathToSuccess(t *testing.T) {
	f := NewFlow()
	require.NoError(t, f.SelectFlight(testFlight()))
	require.NoError(t, f.Confirm())
	assert.Equal(t, string(StepEnteringDetails), f.State().Step)

	fillValidDetails(t, f)
	errs, err := f.SubmitDetails()
	require.NoError(t, err)
	assert.Empty(t, errs)

	state := f.State()
	assert.Equal(t, string(StepSuccess), state.Step)
	require.NotNil(t, state.Flight)
	assert.Equal(t, "GA-780", state.Flight.FlightNumber)
}

func TestSubmitBlockedOnInvalidDetails(t *testing.T) {
	f := NewFlow()
	require.NoError(t, f.SelectFlight(testFlight()))
	require.NoError(t, f.Confirm())

	require.NoError(t, f.EditDetail("fullName", "Ada Lovelace"))
	require.NoError(t, f.EditDetail("email", "not-an-email"))

	errs, err := f.SubmitDetails()
	require.NoError(t, err)
	assert.Equal(t, "Email is invalid.", errs["email"])
	assert.Contains(t, errs, "cardNumber")
	assert.Contains(t, errs, "expiryDate")
	assert.Contains(t, errs, "cvv")
	assert.NotContains(t, errs, "fullName")

	// No forward progress on invalid input.
	assert.Equal(t, string(StepEnteringDetails), f.State().Step)
}

func TestEditingFieldClearsItsError(t *testing.T) {
	f := NewFlow()
	require.NoError(t, f.SelectFlight(testFlight()))
	require.NoError(t, f.Confirm())

	_, err := f.SubmitDetails()
	require.NoError(t, err)
	require.Contains(t, f.State().Errors, "email")

	require.NoError(t, f.EditDetail("email", "ada@example.com"))
	state := f.State()
	assert.NotContains(t, state.Errors, "email")
	assert.Contains(t, state.Errors, "fullName", "other errors stay until their fields are edited")
}

func TestBackReturnsToConfirmation(t *testing.T) {
	f := NewFlow()
	require.NoError(t, f.SelectFlight(testFlight()))
	require.NoError(t, f.Confirm())
	require.NoError(t, f.EditDetail("fullName", "Ada Lovelace"))

	require.NoError(t, f.Back())
	assert.Equal(t, string(StepConfirming), f.State().Step)

	// The draft survives the round trip.
	require.NoError(t, f.Confirm())
	assert.Equal(t, "Ada Lovelace", f.State().Details.FullName)
}

func TestReturnFromSuccessResetsFlow(t *testing.T) {
	f := NewFlow()
	require.NoError(t, f.SelectFlight(testFlight()))
	require.NoError(t, f.Confirm())
	fillValidDetails(t, f)
	_, err := f.SubmitDetails()
	require.NoError(t, err)

	require.NoError(t, f.Return())
	state := f.State()
	assert.Equal(t, string(StepBrowsing), state.Step)
	assert.Nil(t, state.Flight)
	assert.Empty(t, state.Details.FullName)
}

func TestIllegalTransitionsAreRejected(t *testing.T) {
	f := NewFlow()

	assert.ErrorIs(t, f.Confirm(), ErrInvalidTransition)
	assert.ErrorIs(t, f.Cancel(), ErrInvalidTransition)
	assert.ErrorIs(t, f.Back(), ErrInvalidTransition)
	assert.ErrorIs(t, f.Return(), ErrInvalidTransition)
	assert.ErrorIs(t, f.EditDetail("email", "x"), ErrInvalidTransition)
	_, err := f.SubmitDetails()
	assert.ErrorIs(t, err, ErrInvalidTransition)

	require.NoError(t, f.SelectFlight(testFlight()))
	assert.ErrorIs(t, f.SelectFlight(testFlight()), ErrInvalidTransition)
}

func TestEditDetailRejectsUnknownField(t *testing.T) {
	f := NewFlow()
	require.NoError(t, f.SelectFlight(testFlight()))
	require.NoError(t, f.Confirm())
	assert.Error(t, f.EditDetail("nickname", "x"))
}

func TestValidateDetailsRequiresAllFields(t *testing.T) {
	errs := ValidateDetails(models.BookingDetails{})
	assert.Len(t, errs, 5)

	errs = ValidateDetails(models.BookingDetails{
		FullName:   "Ada Lovelace",
		Email:      "ada@example.com",
		CardNumber: "4111111111111111",
		ExpiryDate: "12 / 27",
		CVV:        "123",
	})
	assert.Empty(t, errs)
}

func TestManagerScopesFlowsPerSession(t *testing.T) {
	m := NewManager()
	a := m.Flow("a")
	b := m.Flow("b")
	assert.NotSame(t, a, b)
	assert.Same(t, a, m.Flow("a"))

	m.Drop("a")
	assert.NotSame(t, a, m.Flow("a"))
}

package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newOpenDialog(balance, limit, price int64) *Dialog {
	d := NewDialog(Envelope{Balance: balance, Limit: limit}, price)
	d.Open()
	return d
}

func TestDialogLifecycle(t *testing.T) {
	d := NewDialog(Envelope{Balance: 1000, Limit: 0}, 500)
	assert.Equal(t, StateClosed, d.State())

	d.Open()
	assert.Equal(t, StateOpen, d.State())

	// Opening again is a no-op.
	d.Open()
	assert.Equal(t, StateOpen, d.State())

	assert.NoError(t, d.Begin())
	assert.Equal(t, StateSubmitting, d.State())

	d.Finish(true)
	assert.Equal(t, StateClosed, d.State())
}

func TestDialogBeginRequiresOpen(t *testing.T) {
	d := NewDialog(Envelope{Balance: 1000, Limit: 0}, 500)
	assert.ErrorIs(t, d.Begin(), ErrDialogClosed)
}

func TestDialogBeginBlocksSecondSubmission(t *testing.T) {
	d := newOpenDialog(1000, 0, 500)
	assert.NoError(t, d.Begin())
	assert.ErrorIs(t, d.Begin(), ErrSubmissionInFlight)
}

func TestDialogBeginEnforcesEnvelope(t *testing.T) {
	d := newOpenDialog(0, 100, 101)
	assert.False(t, d.Allowed())
	assert.ErrorIs(t, d.Begin(), ErrInsufficientCredit)
	assert.Equal(t, StateOpen, d.State())
}

func TestDialogFailureReopens(t *testing.T) {
	d := newOpenDialog(1000, 0, 500)
	assert.NoError(t, d.Begin())

	d.Finish(false)
	assert.Equal(t, StateOpen, d.State())

	// Confirm is usable again after a failed submission.
	assert.NoError(t, d.Begin())
}

func TestDialogDismiss(t *testing.T) {
	d := newOpenDialog(1000, 0, 500)
	d.Dismiss()
	assert.Equal(t, StateClosed, d.State())

	// A dialog mid submission cannot be dismissed.
	d.Open()
	assert.NoError(t, d.Begin())
	d.Dismiss()
	assert.Equal(t, StateSubmitting, d.State())
}

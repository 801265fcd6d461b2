package checkout

import (
	"errors"
	"sync"
)

// DialogState is the checkout confirmation dialog's position in its lifecycle.
type DialogState int

const (
	StateClosed DialogState = iota
	StateOpen
	StateSubmitting
)

func (s DialogState) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateSubmitting:
		return "submitting"
	default:
		return "closed"
	}
}

var (
	ErrDialogClosed       = errors.New("dialog is not open")
	ErrSubmissionInFlight = errors.New("submission already in flight")
)

// Dialog models the checkout confirmation flow:
//
//	closed → open → submitting → closed   (success)
//	                submitting → open     (failure)
//
// Submitting is reachable only from open and only when the envelope allows
// the price. Disabling confirm while a submission is in flight is the sole
// concurrency guard; the dialog does not deduplicate beyond that.
type Dialog struct {
	mu    sync.Mutex
	state DialogState
	env   Envelope
	price int64
}

func NewDialog(env Envelope, price int64) *Dialog {
	return &Dialog{state: StateClosed, env: env, price: price}
}

func (d *Dialog) State() DialogState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Envelope returns the balance/limit pair the dialog renders. The UI shows
// balance, limit and price; it never derives a separate deficit figure.
func (d *Dialog) Envelope() Envelope {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.env
}

func (d *Dialog) Price() int64 {
	return d.price
}

// Allowed reports whether confirm should be enabled at all.
func (d *Dialog) Allowed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.env.Allowed(d.price)
}

// Open shows the dialog. Opening an already-open dialog is a no-op.
func (d *Dialog) Open() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == StateClosed {
		d.state = StateOpen
	}
}

// Dismiss closes the dialog from open without side effects. A dialog mid
// submission cannot be dismissed.
func (d *Dialog) Dismiss() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == StateOpen {
		d.state = StateClosed
	}
}

// Begin moves open → submitting. It fails when the dialog is not open, when a
// submission is already in flight, or when the envelope does not cover the
// price. The precondition is checked here so no request is wasted.
func (d *Dialog) Begin() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch d.state {
	case StateSubmitting:
		return ErrSubmissionInFlight
	case StateClosed:
		return ErrDialogClosed
	}
	if err := d.env.Check(d.price); err != nil {
		return err
	}
	d.state = StateSubmitting
	return nil
}

// Finish resolves the in-flight submission: success closes the dialog,
// failure re-opens it with confirm enabled again. Finish outside of a
// submission is a no-op.
func (d *Dialog) Finish(success bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != StateSubmitting {
		return
	}
	if success {
		d.state = StateClosed
	} else {
		d.state = StateOpen
	}
}

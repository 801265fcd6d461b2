package checkout

import "errors"

// DefaultCreditLimit applies when an account carries no explicit limit.
const DefaultCreditLimit = 150000

// ErrInsufficientCredit blocks a purchase that would push the balance below
// the negative-credit floor. Computed locally, before any network or SQL work.
var ErrInsufficientCredit = errors.New("insufficient credit")

// Envelope is the spending envelope of an account: its balance and the
// negative-credit limit. The balance may never end below -Limit.
type Envelope struct {
	Balance int64
	Limit   int64
}

// NewEnvelope builds an envelope from an account's balance and limit. A nil
// limit means the platform default. The guard's invariant assumes Limit >= 0;
// nothing upstream guarantees it, so a negative limit is clamped to zero here
// rather than letting Allowed and MaxSpendable disagree.
func NewEnvelope(balance int64, limit *int64) Envelope {
	l := int64(DefaultCreditLimit)
	if limit != nil {
		l = *limit
	}
	if l < 0 {
		l = 0
	}
	return Envelope{Balance: balance, Limit: l}
}

// MaxSpendable is the most the account can spend and land exactly at -Limit.
func (e Envelope) MaxSpendable() int64 {
	return e.Balance + e.Limit
}

// Allowed reports whether paying price keeps the balance at or above -Limit.
// Equivalent to price <= MaxSpendable(); the boundary is inclusive.
func (e Envelope) Allowed(price int64) bool {
	return e.Balance-price >= -e.Limit
}

// Check returns ErrInsufficientCredit when the purchase is not allowed.
func (e Envelope) Check(price int64) error {
	if !e.Allowed(price) {
		return ErrInsufficientCredit
	}
	return nil
}

package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvelopeAllowed(t *testing.T) {
	tests := []struct {
		name    string
		balance int64
		limit   int64
		price   int64
		allowed bool
	}{
		{"zero balance spends up to the limit", 0, 150000, 150000, true},
		{"one over the limit is blocked", 0, 150000, 150001, false},
		{"negative balance can keep spending inside the envelope", -100000, 150000, 50000, true},
		{"at the floor nothing more is allowed", -150000, 150000, 1, false},
		{"free listing always allowed", -150000, 150000, 0, true},
		{"positive balance, zero limit", 500, 0, 500, true},
		{"positive balance, zero limit, over", 500, 0, 501, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := Envelope{Balance: tt.balance, Limit: tt.limit}
			assert.Equal(t, tt.allowed, env.Allowed(tt.price))
			if tt.allowed {
				assert.NoError(t, env.Check(tt.price))
			} else {
				assert.ErrorIs(t, env.Check(tt.price), ErrInsufficientCredit)
			}
		})
	}
}

func TestEnvelopeMaxSpendable(t *testing.T) {
	env := Envelope{Balance: -100000, Limit: 150000}
	assert.Equal(t, int64(50000), env.MaxSpendable())

	// Allowed(price) must agree with price <= MaxSpendable() at the boundary.
	assert.True(t, env.Allowed(env.MaxSpendable()))
	assert.False(t, env.Allowed(env.MaxSpendable()+1))
}

func TestNewEnvelope(t *testing.T) {
	env := NewEnvelope(1000, nil)
	assert.Equal(t, int64(DefaultCreditLimit), env.Limit)

	custom := int64(20000)
	env = NewEnvelope(1000, &custom)
	assert.Equal(t, custom, env.Limit)

	negative := int64(-5)
	env = NewEnvelope(1000, &negative)
	assert.Equal(t, int64(0), env.Limit)
	assert.Equal(t, int64(1000), env.MaxSpendable())
}

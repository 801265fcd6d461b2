package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatIX(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "0 IX"},
		{500, "500 IX"},
		{1500, "1.500 IX"},
		{150000, "150.000 IX"},
		{1234567, "1.234.567 IX"},
		{-4500, "-4.500 IX"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatIX(tt.amount))
	}
}

func TestFormatIXSigned(t *testing.T) {
	assert.Equal(t, "-4.500 IX", FormatIXSigned(4500, "purchase"))
	assert.Equal(t, "+4.500 IX", FormatIXSigned(4500, "sale"))
}

func TestFormatDistance(t *testing.T) {
	assert.Equal(t, "750 m", FormatDistance(0.75))
	assert.Equal(t, "1.5 km", FormatDistance(1.5))
	assert.Equal(t, "12.3 km", FormatDistance(12.34))
}

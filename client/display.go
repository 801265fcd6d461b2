package client

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatIX renders an integer credit amount as "1.500 IX" using the
// dot-grouped style the marketplace uses everywhere.
func FormatIX(amount int64) string {
	return groupThousands(amount) + " IX"
}

// FormatIXSigned renders transaction amounts with an explicit sign, purchases
// negative and sales positive.
func FormatIXSigned(amount int64, direction string) string {
	if direction == "purchase" {
		return "-" + FormatIX(amount)
	}
	return "+" + FormatIX(amount)
}

// FormatDistance renders a computed distance as shown on listing cards.
func FormatDistance(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%d m", int(km*1000))
	}
	return fmt.Sprintf("%.1f km", km)
}

func groupThousands(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteByte('.')
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteByte('.')
		}
	}
	return b.String()
}

package bank

import (
	"fmt"
	"math"

	"golang.org/x/text/message"
)

// maxCents bounds the working range of Amount: ±90,000,000,000,000.00 euros.
// Values this large still convert to float64 euros without losing cents.
const maxCents int64 = 9_000_000_000_000_000

// Amount is a euro money value held as integer cents. It is immutable;
// arithmetic returns a fresh Amount and re-applies the range check.
type Amount struct {
	cents int64
}

// Zero is the neutral Amount.
var Zero = Amount{}

// MaxValue returns the largest representable Amount.
func MaxValue() Amount { return Amount{cents: maxCents} }

// MinValue returns the smallest representable Amount.
func MinValue() Amount { return Amount{cents: -maxCents} }

// RangeError reports an amount outside [MinValue, MaxValue].
type RangeError struct {
	Euros float64
}

func (e RangeError) Error() string {
	return fmt.Sprintf("amount of %.2f euros is out of range", e.Euros)
}

// NewAmount builds an Amount from whole euros and cents.
// Both parts carry the sign, as in NewAmount(-1000, 0).
func NewAmount(euros, cents int64) (Amount, error) {
	// Bound both parts before combining so euros*100+cents cannot wrap.
	if euros > maxCents/100 || euros < -maxCents/100 || cents > maxCents || cents < -maxCents {
		return Amount{}, RangeError{Euros: float64(euros) + float64(cents)/100.0}
	}
	return AmountFromCents(euros*100 + cents)
}

// AmountFromCents builds an Amount from raw cents.
func AmountFromCents(cents int64) (Amount, error) {
	if cents < -maxCents || cents > maxCents {
		return Amount{}, RangeError{Euros: float64(cents) / 100.0}
	}
	return Amount{cents: cents}, nil
}

// AmountFromEuros rounds the given euro value to the nearest cent.
func AmountFromEuros(euros float64) (Amount, error) {
	cents := math.Round(euros * 100.0)
	if math.IsNaN(cents) || cents < float64(-maxCents) || cents > float64(maxCents) {
		return Amount{}, RangeError{Euros: euros}
	}
	return Amount{cents: int64(cents)}, nil
}

// Cents returns the exact cent representation.
func (a Amount) Cents() int64 { return a.cents }

// Euros returns the value in euros, for display and interchange only.
// Comparisons and equality always go through the cent representation.
func (a Amount) Euros() float64 { return float64(a.cents) / 100.0 }

// Plus returns a + other, range-checked.
func (a Amount) Plus(other Amount) (Amount, error) {
	return AmountFromEuros(a.Euros() + other.Euros())
}

// Minus returns a - other, range-checked.
func (a Amount) Minus(other Amount) (Amount, error) {
	return AmountFromEuros(a.Euros() - other.Euros())
}

// Times returns a scaled by factor, rounded to the nearest cent and
// range-checked.
func (a Amount) Times(factor float64) (Amount, error) {
	return AmountFromEuros(a.Euros() * factor)
}

// Cmp compares by cents: -1 if a < other, 0 if equal, +1 if a > other.
func (a Amount) Cmp(other Amount) int {
	switch {
	case a.cents < other.cents:
		return -1
	case a.cents > other.cents:
		return 1
	default:
		return 0
	}
}

// String renders the canonical two-decimal form with a dot separator,
// computed from cents so no floating drift can show up.
func (a Amount) String() string {
	cents := a.cents
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// Format renders two decimals using the printer's locale conventions.
// The locale is an explicit parameter here, never process-global state.
func (a Amount) Format(p *message.Printer) string {
	return p.Sprintf("%.2f", a.Euros())
}

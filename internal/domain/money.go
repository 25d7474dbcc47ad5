package domain

import "math"

// Cents converts a float amount (e.g. 19.99 from a JSON body) to integer
// cents, rounding half away from zero.
func Cents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// Amount converts integer cents back to a float amount for JSON responses.
func Amount(cents int64) float64 {
	return float64(cents) / 100
}

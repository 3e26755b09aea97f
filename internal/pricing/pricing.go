// Package pricing computes line totals for basket and order rows.
package pricing

// LineTotal returns quantity * unitPrice * (1 - discountPercent/100).
//
// Pure float64 arithmetic, no rounding. Callers needing currency-safe
// rounding must wrap this. Inputs are expected to be pre-validated:
// quantity > 0, unitPrice >= 0, discountPercent in [0, 100).
func LineTotal(quantity int, unitPrice, discountPercent float64) float64 {
	return float64(quantity) * unitPrice * (1 - discountPercent/100)
}

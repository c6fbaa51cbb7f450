// Package pricing derives the amounts shown for a cart. Amounts are whole
// currency units; nothing here is cached on the cart.
package pricing

import "overcooked-storefront/ordering/domain"

const (
	// FreeDeliveryThreshold is exclusive: a subtotal of exactly 200 still pays the fee.
	FreeDeliveryThreshold int64 = 200
	DeliveryFee           int64 = 30
	TaxPercent            int64 = 5
)

type Breakdown struct {
	Subtotal    int64 `json:"subtotal"`
	DeliveryFee int64 `json:"delivery_fee"`
	Tax         int64 `json:"tax"`
	Total       int64 `json:"total"`
}

func Calculate(lines []domain.CartLine) Breakdown {
	subtotal := Subtotal(lines)
	fee := DeliveryFeeFor(subtotal)
	tax := TaxFor(subtotal)
	return Breakdown{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Tax:         tax,
		Total:       subtotal + fee + tax,
	}
}

func Subtotal(lines []domain.CartLine) int64 {
	var subtotal int64
	for _, line := range lines {
		subtotal += line.LineTotal()
	}
	return subtotal
}

func DeliveryFeeFor(subtotal int64) int64 {
	if subtotal > FreeDeliveryThreshold {
		return 0
	}
	return DeliveryFee
}

// TaxFor rounds half-up on the fractional unit, in integer arithmetic.
func TaxFor(subtotal int64) int64 {
	return roundPercent(subtotal, TaxPercent)
}

func roundPercent(amount, percent int64) int64 {
	scaled := amount * percent
	if scaled < 0 {
		return -((-scaled + 50) / 100)
	}
	return (scaled + 50) / 100
}

package invoice

import "math"

// LineTotal returns quantity × unit price. A quantity or price that is not a
// finite number counts as zero.
func LineTotal(item LineItem) float64 {
	return finite(item.Quantity) * finite(item.UnitPrice)
}

// SubTotal sums the line totals of items.
func SubTotal(items []LineItem) float64 {
	var sum float64
	for _, item := range items {
		sum += LineTotal(item)
	}
	return sum
}

// RecomputeTotals refreshes every derived amount on the invoice: each item's
// Total, the subtotal, and the total amount. No tax, discount or shipping
// adjustment is applied, so TotalAmount always equals SubTotal.
func (inv *Invoice) RecomputeTotals() {
	inv.ClampAmounts()
	for i := range inv.Details.Items {
		inv.Details.Items[i].Total = LineTotal(inv.Details.Items[i])
	}
	inv.Details.SubTotal = SubTotal(inv.Details.Items)
	inv.Details.TotalAmount = inv.Details.SubTotal
}

// ClampAmounts replaces every NaN or infinite amount on the invoice with 0.
// JSON cannot carry such values, so a clamped invoice can always be
// validated, saved and sent.
func (inv *Invoice) ClampAmounts() {
	d := &inv.Details
	for i := range d.Items {
		it := &d.Items[i]
		it.Quantity = finite(it.Quantity)
		it.UnitPrice = finite(it.UnitPrice)
		it.Total = finite(it.Total)
	}
	d.SubTotal = finite(d.SubTotal)
	d.TotalAmount = finite(d.TotalAmount)
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

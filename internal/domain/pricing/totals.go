package pricing

import "math"

// LineItem is an immutable snapshot of a priced order line at
// totals-computation time
type LineItem struct {
	Description    string
	UnitPricePaise int64
	Quantity       int
}

// ChargeSet holds the tier-derived surcharges for an order, already
// multiplied out to totals at the order quantity
type ChargeSet struct {
	PackagingForwardingPaise int64
	PrintingPaise            int64
}

// Total returns the combined surcharge amount
func (c ChargeSet) Total() int64 {
	return c.PackagingForwardingPaise + c.PrintingPaise
}

// Totals is the full monetary breakdown of an order. All amounts are paise.
// Derived on demand from its inputs; never stored independently of the order
// it was computed for.
type Totals struct {
	ItemsSubtotal int64 `json:"items_subtotal"`
	ChargesTotal  int64 `json:"charges_total"`
	TaxableValue  int64 `json:"taxable_value"`
	TaxAmount     int64 `json:"tax_amount"`
	GrandTotal    int64 `json:"grand_total"`
	RoundOff      int64 `json:"round_off"`
	FinalTotal    int64 `json:"final_total"`
}

// ItemsSubtotal sums unit price times quantity over all line items
func ItemsSubtotal(items []LineItem) int64 {
	var subtotal int64
	for _, item := range items {
		subtotal += item.UnitPricePaise * int64(item.Quantity)
	}
	return subtotal
}

// ComputeTotals assembles the final invoice breakdown from an items subtotal,
// a charge set and a tax classification. Pure: no mutation, no storage, no
// network.
//
// The rounding policy rounds the grand total UP to the next whole rupee;
// round-off is never a discount.
func ComputeTotals(itemsSubtotalPaise int64, charges ChargeSet, tax Classification) Totals {
	chargesTotal := charges.Total()
	taxableValue := itemsSubtotalPaise + chargesTotal
	taxAmount := int64(math.Round(float64(taxableValue) * tax.TotalRate() / 100))
	grandTotal := taxableValue + taxAmount
	finalTotal := ceilToRupee(grandTotal)

	return Totals{
		ItemsSubtotal: itemsSubtotalPaise,
		ChargesTotal:  chargesTotal,
		TaxableValue:  taxableValue,
		TaxAmount:     taxAmount,
		GrandTotal:    grandTotal,
		RoundOff:      finalTotal - grandTotal,
		FinalTotal:    finalTotal,
	}
}

// ceilToRupee rounds paise up to the next multiple of 100
func ceilToRupee(paise int64) int64 {
	if paise%100 == 0 {
		return paise
	}
	return (paise/100 + 1) * 100
}

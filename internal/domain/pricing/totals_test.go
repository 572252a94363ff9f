package pricing

import (
	"testing"

	"github.com/printsetu/printsetu-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
)

func TestItemsSubtotal(t *testing.T) {
	items := []LineItem{
		{Description: "Visiting cards", UnitPricePaise: 10000, Quantity: 45},
		{Description: "Letterheads", UnitPricePaise: 2500, Quantity: 10},
	}

	assert.Equal(t, int64(475000), ItemsSubtotal(items))
	assert.Zero(t, ItemsSubtotal(nil))
}

func TestComputeTotals(t *testing.T) {
	t.Run("intrastate order of 45 units", func(t *testing.T) {
		// 45 units at ₹100: subtotal ₹4500, packaging ₹12/unit,
		// printing ₹15/unit, CGST 2.5% + SGST 2.5%.
		charges := ChargeSet{
			PackagingForwardingPaise: 1200 * 45,
			PrintingPaise:            1500 * 45,
		}
		tax := Classification{
			Regime:   enum.TaxRegimeIntrastate,
			CGSTRate: 2.5,
			SGSTRate: 2.5,
		}

		totals := ComputeTotals(450000, charges, tax)

		assert.Equal(t, int64(450000), totals.ItemsSubtotal)
		assert.Equal(t, int64(121500), totals.ChargesTotal)
		assert.Equal(t, int64(571500), totals.TaxableValue)
		assert.Equal(t, int64(28575), totals.TaxAmount)
		assert.Equal(t, int64(600075), totals.GrandTotal)
		assert.Equal(t, int64(25), totals.RoundOff)
		assert.Equal(t, int64(600100), totals.FinalTotal)
	})

	t.Run("exact rupee grand total has zero round off", func(t *testing.T) {
		totals := ComputeTotals(100000, ChargeSet{}, Classification{})

		assert.Equal(t, int64(100000), totals.GrandTotal)
		assert.Zero(t, totals.RoundOff)
		assert.Equal(t, totals.GrandTotal, totals.FinalTotal)
	})

	t.Run("round off is never a discount", func(t *testing.T) {
		tax := Classification{Regime: enum.TaxRegimeInterstate, IGSTRate: 5}

		for _, subtotal := range []int64{1, 99, 10001, 333333, 571500} {
			totals := ComputeTotals(subtotal, ChargeSet{}, tax)
			assert.GreaterOrEqual(t, totals.RoundOff, int64(0))
			assert.Less(t, totals.RoundOff, int64(100))
			assert.Equal(t, totals.GrandTotal+totals.RoundOff, totals.FinalTotal)
			assert.Zero(t, totals.FinalTotal%100)
		}
	})

	t.Run("zero subtotal and charges", func(t *testing.T) {
		totals := ComputeTotals(0, ChargeSet{}, Classification{})

		assert.Zero(t, totals.TaxableValue)
		assert.Zero(t, totals.TaxAmount)
		assert.Zero(t, totals.FinalTotal)
	})
}

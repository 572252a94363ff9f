package pricing

import (
	"errors"
	"math"
	"testing"

	"github.com/printsetu/printsetu-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestValidateTiers(t *testing.T) {
	tests := []struct {
		name    string
		raw     []RawTier
		kind    enum.ChargeKind
		wantErr string
	}{
		{
			name: "valid cost table",
			raw: []RawTier{
				{MinQty: 1, MaxQty: 50, Cost: f(12)},
				{MinQty: 51, MaxQty: 200, Cost: f(10)},
			},
			kind: enum.ChargeKindPackagingForwarding,
		},
		{
			name: "valid percent table",
			raw: []RawTier{
				{MinQty: 1, MaxQty: 1000000, Percent: f(5)},
			},
			kind: enum.ChargeKindTax,
		},
		{
			name:    "empty list",
			raw:     nil,
			kind:    enum.ChargeKindPrinting,
			wantErr: "tier list cannot be empty",
		},
		{
			name: "fractional min_qty",
			raw: []RawTier{
				{MinQty: 1.5, MaxQty: 50, Cost: f(12)},
			},
			kind:    enum.ChargeKindPrinting,
			wantErr: "tier 0: min_qty must be a whole number",
		},
		{
			name: "min_qty below one",
			raw: []RawTier{
				{MinQty: 0, MaxQty: 50, Cost: f(12)},
			},
			kind:    enum.ChargeKindPrinting,
			wantErr: "tier 0: min_qty must be at least 1",
		},
		{
			name: "max_qty below min_qty",
			raw: []RawTier{
				{MinQty: 10, MaxQty: 5, Cost: f(12)},
			},
			kind:    enum.ChargeKindPrinting,
			wantErr: "tier 0: max_qty must be greater than or equal to min_qty",
		},
		{
			name: "cost missing on per-unit table",
			raw: []RawTier{
				{MinQty: 1, MaxQty: 50, Percent: f(5)},
			},
			kind:    enum.ChargeKindPackagingForwarding,
			wantErr: "tier 0: cost is required",
		},
		{
			name: "percent missing on tax table",
			raw: []RawTier{
				{MinQty: 1, MaxQty: 50, Cost: f(12)},
			},
			kind:    enum.ChargeKindTax,
			wantErr: "tier 0: percent is required",
		},
		{
			name: "negative cost",
			raw: []RawTier{
				{MinQty: 1, MaxQty: 50, Cost: f(-1)},
			},
			kind:    enum.ChargeKindPrinting,
			wantErr: "tier 0: cost must not be negative",
		},
		{
			name: "non-finite cost",
			raw: []RawTier{
				{MinQty: 1, MaxQty: 50, Cost: f(math.NaN())},
			},
			kind:    enum.ChargeKindPrinting,
			wantErr: "tier 0: cost must be a finite number",
		},
		{
			name: "shared boundary is an overlap",
			raw: []RawTier{
				{MinQty: 1, MaxQty: 50, Cost: f(12)},
				{MinQty: 50, MaxQty: 200, Cost: f(10)},
			},
			kind:    enum.ChargeKindPackagingForwarding,
			wantErr: "tier 1 overlaps previous tier: min_qty 50 must be greater than previous max_qty 50",
		},
		{
			name: "adjacent ranges do not overlap",
			raw: []RawTier{
				{MinQty: 1, MaxQty: 50, Cost: f(12)},
				{MinQty: 51, MaxQty: 200, Cost: f(10)},
			},
			kind: enum.ChargeKindPackagingForwarding,
		},
		{
			name: "gap between tiers is allowed",
			raw: []RawTier{
				{MinQty: 1, MaxQty: 50, Cost: f(12)},
				{MinQty: 100, MaxQty: 200, Cost: f(10)},
			},
			kind: enum.ChargeKindPackagingForwarding,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := ValidateTiers(tt.raw, tt.kind)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.kind, table.Kind)
			assert.Len(t, table.Tiers, len(tt.raw))
		})
	}
}

func TestValidateTiersSortsByMinQty(t *testing.T) {
	table, err := ValidateTiers([]RawTier{
		{MinQty: 201, MaxQty: 1000, Cost: f(8)},
		{MinQty: 1, MaxQty: 50, Cost: f(12)},
		{MinQty: 51, MaxQty: 200, Cost: f(10)},
	}, enum.ChargeKindPackagingForwarding)

	require.NoError(t, err)
	require.Len(t, table.Tiers, 3)
	assert.Equal(t, 1, table.Tiers[0].MinQty)
	assert.Equal(t, 51, table.Tiers[1].MinQty)
	assert.Equal(t, 201, table.Tiers[2].MinQty)
}

func TestValidateTiersConvertsRupeesToPaise(t *testing.T) {
	table, err := ValidateTiers([]RawTier{
		{MinQty: 1, MaxQty: 50, Cost: f(12.505)},
	}, enum.ChargeKindPrinting)

	require.NoError(t, err)
	assert.Equal(t, int64(1251), table.Tiers[0].CostPaise)
}

func TestValidateTiersOverlapErrorClass(t *testing.T) {
	_, err := ValidateTiers([]RawTier{
		{MinQty: 1, MaxQty: 100, Cost: f(12)},
		{MinQty: 50, MaxQty: 200, Cost: f(10)},
	}, enum.ChargeKindPackagingForwarding)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTierOverlap))
}

func TestTierTableLookup(t *testing.T) {
	table, err := ValidateTiers([]RawTier{
		{MinQty: 1, MaxQty: 50, Cost: f(12)},
		{MinQty: 51, MaxQty: 200, Cost: f(10)},
		{MinQty: 301, MaxQty: 1000, Cost: f(8)},
	}, enum.ChargeKindPackagingForwarding)
	require.NoError(t, err)

	tests := []struct {
		name      string
		quantity  int
		wantPaise int64
		wantMiss  bool
	}{
		{name: "lower boundary inclusive", quantity: 1, wantPaise: 1200},
		{name: "upper boundary inclusive", quantity: 50, wantPaise: 1200},
		{name: "next tier lower boundary", quantity: 51, wantPaise: 1000},
		{name: "inside range", quantity: 45, wantPaise: 1200},
		{name: "gap between tiers", quantity: 250, wantMiss: true},
		{name: "below lowest tier", quantity: 0, wantMiss: true},
		{name: "above highest tier", quantity: 1001, wantMiss: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier, err := table.Lookup(tt.quantity)
			if tt.wantMiss {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrNoMatchingTier))
				var miss *NoMatchingTierError
				require.True(t, errors.As(err, &miss))
				assert.Equal(t, tt.quantity, miss.Quantity)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPaise, tier.CostPaise)
		})
	}
}

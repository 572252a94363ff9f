package service

import (
	"context"
	"testing"

	"github.com/printsetu/printsetu-api/internal/domain/entity"
	"github.com/printsetu/printsetu-api/internal/domain/enum"
	"github.com/printsetu/printsetu-api/internal/domain/pricing"
	"github.com/printsetu/printsetu-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRatePlanRepo is an in-memory RatePlanRepository for service tests
type fakeRatePlanRepo struct {
	plan *entity.RatePlan
}

func (r *fakeRatePlanRepo) GetPlan(ctx context.Context) (*entity.RatePlan, error) {
	return r.plan, nil
}

func (r *fakeRatePlanRepo) ReplaceTable(ctx context.Context, table pricing.TierTable) (*entity.RatePlan, error) {
	if err := r.plan.SetTable(table); err != nil {
		return nil, err
	}
	return r.plan, nil
}

func testRatePlan() *entity.RatePlan {
	return &entity.RatePlan{
		PackagingTiers: entity.TierList{
			{MinQty: 1, MaxQty: 50, CostPaise: 1200},
			{MinQty: 51, MaxQty: 200, CostPaise: 1000},
			{MinQty: 201, MaxQty: 1000, CostPaise: 800},
		},
		PrintingTiers: entity.TierList{
			{MinQty: 1, MaxQty: 50, CostPaise: 1500},
			{MinQty: 51, MaxQty: 200, CostPaise: 1200},
			{MinQty: 201, MaxQty: 1000, CostPaise: 900},
		},
		TaxTiers: entity.TierList{
			{MinQty: 1, MaxQty: 1000000, Percent: 5},
		},
	}
}

func newTestPricingService() (*PricingService, *fakeRatePlanRepo) {
	repo := &fakeRatePlanRepo{plan: testRatePlan()}
	classifier := pricing.NewClassifier("Chhattisgarh")
	return NewPricingService(repo, classifier), repo
}

func TestGetQuoteIntrastate(t *testing.T) {
	svc, _ := newTestPricingService()

	quote, err := svc.GetQuote(context.Background(), &QuoteInput{
		Quantity:      45,
		ItemsSubtotal: 4500,
		BuyerState:    "Chhattisgarh",
		BuyerCountry:  "India",
	})

	require.NoError(t, err)
	assert.Equal(t, 45, quote.Quantity)
	assert.Equal(t, int64(1200), quote.PackagingRatePaise)
	assert.Equal(t, int64(1500), quote.PrintingRatePaise)
	assert.Equal(t, int64(54000), quote.Charges.PackagingForwardingPaise)
	assert.Equal(t, int64(67500), quote.Charges.PrintingPaise)

	assert.Equal(t, enum.TaxRegimeIntrastate, quote.Classification.Regime)
	assert.Equal(t, 2.5, quote.Classification.CGSTRate)
	assert.Equal(t, 2.5, quote.Classification.SGSTRate)

	assert.Equal(t, int64(571500), quote.Totals.TaxableValue)
	assert.Equal(t, int64(28575), quote.Totals.TaxAmount)
	assert.Equal(t, int64(600075), quote.Totals.GrandTotal)
	assert.Equal(t, int64(25), quote.Totals.RoundOff)
	assert.Equal(t, int64(600100), quote.Totals.FinalTotal)
}

func TestGetQuoteInterstateAndInternational(t *testing.T) {
	svc, _ := newTestPricingService()

	interstate, err := svc.GetQuote(context.Background(), &QuoteInput{
		Quantity:      45,
		ItemsSubtotal: 4500,
		BuyerState:    "Maharashtra",
		BuyerCountry:  "India",
	})
	require.NoError(t, err)
	assert.Equal(t, enum.TaxRegimeInterstate, interstate.Classification.Regime)
	assert.Equal(t, 5.0, interstate.Classification.IGSTRate)
	// Same taxable value and total rate as intrastate, so the same total
	assert.Equal(t, int64(600100), interstate.Totals.FinalTotal)

	international, err := svc.GetQuote(context.Background(), &QuoteInput{
		Quantity:      45,
		ItemsSubtotal: 4500,
		BuyerState:    "",
		BuyerCountry:  "United States",
	})
	require.NoError(t, err)
	assert.Equal(t, enum.TaxRegimeInternational, international.Classification.Regime)
	assert.Equal(t, pricing.DefaultInternationalRate, international.Classification.FlatRate)
	// taxable 571500, 1% tax 5715, grand 577215, ceil to 577300
	assert.Equal(t, int64(5715), international.Totals.TaxAmount)
	assert.Equal(t, int64(577300), international.Totals.FinalTotal)
}

func TestGetQuoteTierBoundaries(t *testing.T) {
	svc, _ := newTestPricingService()

	tests := []struct {
		quantity      int
		wantPackaging int64
		wantPrinting  int64
	}{
		{quantity: 50, wantPackaging: 1200, wantPrinting: 1500},
		{quantity: 51, wantPackaging: 1000, wantPrinting: 1200},
		{quantity: 200, wantPackaging: 1000, wantPrinting: 1200},
		{quantity: 201, wantPackaging: 800, wantPrinting: 900},
	}

	for _, tt := range tests {
		quote, err := svc.GetQuote(context.Background(), &QuoteInput{
			Quantity:      tt.quantity,
			ItemsSubtotal: 1000,
			BuyerState:    "Chhattisgarh",
			BuyerCountry:  "India",
		})
		require.NoError(t, err)
		assert.Equal(t, tt.wantPackaging, quote.PackagingRatePaise, "quantity %d", tt.quantity)
		assert.Equal(t, tt.wantPrinting, quote.PrintingRatePaise, "quantity %d", tt.quantity)
	}
}

func TestGetQuoteValidation(t *testing.T) {
	svc, _ := newTestPricingService()

	_, err := svc.GetQuote(context.Background(), &QuoteInput{
		Quantity:      0,
		ItemsSubtotal: -1,
	})

	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 422, appErr.Code)
	assert.Len(t, appErr.Errors, 2)
}

func TestGetQuoteQuantityOutsideTables(t *testing.T) {
	svc, _ := newTestPricingService()

	_, err := svc.GetQuote(context.Background(), &QuoteInput{
		Quantity:      5000,
		ItemsSubtotal: 1000,
		BuyerState:    "Chhattisgarh",
		BuyerCountry:  "India",
	})

	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 422, appErr.Code)
	assert.Contains(t, appErr.Message, "no tier covers quantity 5000")
}

func TestReplaceTable(t *testing.T) {
	svc, repo := newTestPricingService()
	cost := 20.0

	plan, err := svc.ReplaceTable(context.Background(), enum.ChargeKindPrinting, []pricing.RawTier{
		{MinQty: 1, MaxQty: 100, Cost: &cost},
	})

	require.NoError(t, err)
	require.Len(t, plan.PrintingTiers, 1)
	assert.Equal(t, int64(2000), plan.PrintingTiers[0].CostPaise)

	// Subsequent quotes price against the replaced table
	quote, err := svc.GetQuote(context.Background(), &QuoteInput{
		Quantity:      45,
		ItemsSubtotal: 1000,
		BuyerState:    "Chhattisgarh",
		BuyerCountry:  "India",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2000), quote.PrintingRatePaise)
	assert.Same(t, repo.plan, plan)
}

func TestReplaceTableRejectsInvalidTiers(t *testing.T) {
	svc, repo := newTestPricingService()
	before := len(repo.plan.PackagingTiers)
	cost := 10.0

	_, err := svc.ReplaceTable(context.Background(), enum.ChargeKindPackagingForwarding, []pricing.RawTier{
		{MinQty: 1, MaxQty: 100, Cost: &cost},
		{MinQty: 100, MaxQty: 200, Cost: &cost},
	})

	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 422, appErr.Code)
	assert.Len(t, repo.plan.PackagingTiers, before)
}

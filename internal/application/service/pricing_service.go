package service

import (
	"context"
	"errors"
	"math"

	"github.com/printsetu/printsetu-api/internal/domain/entity"
	"github.com/printsetu/printsetu-api/internal/domain/enum"
	"github.com/printsetu/printsetu-api/internal/domain/pricing"
	"github.com/printsetu/printsetu-api/internal/domain/repository"
	"github.com/printsetu/printsetu-api/pkg/apperror"
)

// PricingService prices orders against the active rate plan. The plan is
// fetched once per computation and passed by value through the pure pricing
// functions; nothing here calls back into storage mid-calculation.
type PricingService struct {
	ratePlanRepo repository.RatePlanRepository
	classifier   pricing.Classifier
}

// NewPricingService creates a new pricing service
func NewPricingService(ratePlanRepo repository.RatePlanRepository, classifier pricing.Classifier) *PricingService {
	return &PricingService{
		ratePlanRepo: ratePlanRepo,
		classifier:   classifier,
	}
}

// QuoteInput represents a totals request for a prospective order
type QuoteInput struct {
	Quantity      int
	ItemsSubtotal float64 // rupees
	BuyerState    string
	BuyerCountry  string
}

// Quote is the full pricing breakdown for a quantity and buyer location
type Quote struct {
	Quantity           int
	PackagingRatePaise int64 // per unit
	PrintingRatePaise  int64 // per unit
	Charges            pricing.ChargeSet
	Classification     pricing.Classification
	Totals             pricing.Totals
}

// GetQuote validates the request and prices it against the active rate plan
func (s *PricingService) GetQuote(ctx context.Context, input *QuoteInput) (*Quote, error) {
	var fieldErrors []apperror.FieldError
	if input.Quantity < 1 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "quantity", Message: "must be at least 1"})
	}
	if math.IsNaN(input.ItemsSubtotal) || math.IsInf(input.ItemsSubtotal, 0) || input.ItemsSubtotal < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "items_subtotal", Message: "must be a non-negative number"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	subtotalPaise := int64(math.Round(input.ItemsSubtotal * 100))
	return s.QuoteAt(ctx, input.Quantity, subtotalPaise, input.BuyerState, input.BuyerCountry)
}

// QuoteAt prices an order of the given quantity and items subtotal. Used by
// GetQuote and by order creation, which snapshots the result on the order.
func (s *PricingService) QuoteAt(ctx context.Context, quantity int, itemsSubtotalPaise int64, buyerState, buyerCountry string) (*Quote, error) {
	plan, err := s.ratePlanRepo.GetPlan(ctx)
	if err != nil {
		return nil, err
	}

	packagingTier, err := plan.Table(enum.ChargeKindPackagingForwarding).Lookup(quantity)
	if err != nil {
		return nil, mapPricingError(err)
	}
	printingTier, err := plan.Table(enum.ChargeKindPrinting).Lookup(quantity)
	if err != nil {
		return nil, mapPricingError(err)
	}
	taxTier, err := plan.Table(enum.ChargeKindTax).Lookup(quantity)
	if err != nil {
		return nil, mapPricingError(err)
	}

	classification := s.classifier.Classify(buyerState, buyerCountry, taxTier.Percent)
	charges := pricing.ChargeSet{
		PackagingForwardingPaise: packagingTier.CostPaise * int64(quantity),
		PrintingPaise:            printingTier.CostPaise * int64(quantity),
	}

	return &Quote{
		Quantity:           quantity,
		PackagingRatePaise: packagingTier.CostPaise,
		PrintingRatePaise:  printingTier.CostPaise,
		Charges:            charges,
		Classification:     classification,
		Totals:             pricing.ComputeTotals(itemsSubtotalPaise, charges, classification),
	}, nil
}

// GetPlan returns the active rate plan, materializing the baseline on first
// access
func (s *PricingService) GetPlan(ctx context.Context) (*entity.RatePlan, error) {
	return s.ratePlanRepo.GetPlan(ctx)
}

// ReplaceTable validates a candidate tier list for one charge kind and
// persists it wholesale. Validation failures surface the specific violated
// invariant; nothing is written unless the whole candidate set passes.
func (s *PricingService) ReplaceTable(ctx context.Context, kind enum.ChargeKind, rawTiers []pricing.RawTier) (*entity.RatePlan, error) {
	table, err := pricing.ValidateTiers(rawTiers, kind)
	if err != nil {
		return nil, apperror.NewUnprocessableError(err.Error())
	}
	return s.ratePlanRepo.ReplaceTable(ctx, table)
}

// mapPricingError turns domain pricing failures into API errors while
// leaving storage errors untouched
func mapPricingError(err error) error {
	if errors.Is(err, pricing.ErrNoMatchingTier) {
		return apperror.NewUnprocessableError(err.Error())
	}
	return err
}

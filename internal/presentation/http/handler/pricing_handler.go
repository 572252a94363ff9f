package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/printsetu/printsetu-api/internal/application/service"
	"github.com/printsetu/printsetu-api/internal/presentation/http/dto/request"
	"github.com/printsetu/printsetu-api/internal/presentation/http/dto/response"
)

// PricingHandler handles pricing-related HTTP requests
type PricingHandler struct {
	pricingService *service.PricingService
}

// NewPricingHandler creates a new pricing handler
func NewPricingHandler(pricingService *service.PricingService) *PricingHandler {
	return &PricingHandler{pricingService: pricingService}
}

// Quote prices a prospective order without persisting anything
func (h *PricingHandler) Quote(c *gin.Context) {
	var req request.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	quote, err := h.pricingService.GetQuote(c.Request.Context(), &service.QuoteInput{
		Quantity:      req.Quantity,
		ItemsSubtotal: req.ItemsSubtotal,
		BuyerState:    req.BuyerState,
		BuyerCountry:  req.BuyerCountry,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote computed successfully", quoteResponse(quote))
}

// quoteResponse converts paise amounts to rupee decimals for the wire
func quoteResponse(q *service.Quote) gin.H {
	return gin.H{
		"quantity":                  q.Quantity,
		"packaging_forwarding_rate": rupees(q.PackagingRatePaise),
		"printing_rate":             rupees(q.PrintingRatePaise),
		"packaging_forwarding":      rupees(q.Charges.PackagingForwardingPaise),
		"printing":                  rupees(q.Charges.PrintingPaise),
		"tax_regime":                q.Classification.Regime,
		"cgst_rate":                 q.Classification.CGSTRate,
		"sgst_rate":                 q.Classification.SGSTRate,
		"igst_rate":                 q.Classification.IGSTRate,
		"flat_tax_rate":             q.Classification.FlatRate,
		"items_subtotal":            rupees(q.Totals.ItemsSubtotal),
		"charges_total":             rupees(q.Totals.ChargesTotal),
		"taxable_value":             rupees(q.Totals.TaxableValue),
		"tax_amount":                rupees(q.Totals.TaxAmount),
		"grand_total":               rupees(q.Totals.GrandTotal),
		"round_off":                 rupees(q.Totals.RoundOff),
		"total":                     rupees(q.Totals.FinalTotal),
	}
}

func rupees(paise int64) float64 {
	return float64(paise) / 100
}

package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/printsetu/printsetu-api/internal/application/service"
	"github.com/printsetu/printsetu-api/internal/domain/enum"
	"github.com/printsetu/printsetu-api/internal/domain/pricing"
	"github.com/printsetu/printsetu-api/internal/presentation/http/dto/request"
	"github.com/printsetu/printsetu-api/internal/presentation/http/dto/response"
)

// RatePlanHandler handles rate plan HTTP requests
type RatePlanHandler struct {
	pricingService *service.PricingService
}

// NewRatePlanHandler creates a new rate plan handler
func NewRatePlanHandler(pricingService *service.PricingService) *RatePlanHandler {
	return &RatePlanHandler{pricingService: pricingService}
}

// Get retrieves the active rate plan
func (h *RatePlanHandler) Get(c *gin.Context) {
	plan, err := h.pricingService.GetPlan(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Rate plan retrieved successfully", plan)
}

// ReplaceTable replaces one rate table wholesale. The table is named by the
// :kind path parameter: packaging_forwarding, printing or tax.
func (h *RatePlanHandler) ReplaceTable(c *gin.Context) {
	kind, err := enum.ParseChargeKind(c.Param("kind"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var req request.ReplaceTiersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	rawTiers := make([]pricing.RawTier, 0, len(req.Tiers))
	for _, t := range req.Tiers {
		rawTiers = append(rawTiers, pricing.RawTier{
			MinQty:  t.MinQty,
			MaxQty:  t.MaxQty,
			Cost:    t.Cost,
			Percent: t.Percent,
		})
	}

	plan, err := h.pricingService.ReplaceTable(c.Request.Context(), kind, rawTiers)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Rate table replaced successfully", plan)
}

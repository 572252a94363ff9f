package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/printsetu/printsetu-api/internal/application/service"
	"github.com/printsetu/printsetu-api/internal/domain/entity"
	"github.com/printsetu/printsetu-api/internal/domain/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	repo := &fakeRatePlanRepo{plan: &entity.RatePlan{
		PackagingTiers: entity.TierList{
			{MinQty: 1, MaxQty: 50, CostPaise: 1200},
			{MinQty: 51, MaxQty: 200, CostPaise: 1000},
		},
		PrintingTiers: entity.TierList{
			{MinQty: 1, MaxQty: 50, CostPaise: 1500},
			{MinQty: 51, MaxQty: 200, CostPaise: 1200},
		},
		TaxTiers: entity.TierList{
			{MinQty: 1, MaxQty: 1000000, Percent: 5},
		},
	}}
	pricingService := service.NewPricingService(repo, pricing.NewClassifier("Chhattisgarh"))
	pricingHandler := NewPricingHandler(pricingService)
	ratePlanHandler := NewRatePlanHandler(pricingService)

	router := gin.New()
	router.POST("/pricing/quote", pricingHandler.Quote)
	router.GET("/rate-plan", ratePlanHandler.Get)
	router.PUT("/rate-plan/tables/:kind", ratePlanHandler.ReplaceTable)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestQuoteEndpoint(t *testing.T) {
	router := newTestRouter()

	w, resp := doJSON(t, router, http.MethodPost, "/pricing/quote", gin.H{
		"quantity":       45,
		"items_subtotal": 4500,
		"buyer_state":    "Chhattisgarh",
		"buyer_country":  "India",
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])

	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(45), data["quantity"])
	assert.Equal(t, 12.0, data["packaging_forwarding_rate"])
	assert.Equal(t, 15.0, data["printing_rate"])
	assert.Equal(t, "intrastate", data["tax_regime"])
	assert.Equal(t, 2.5, data["cgst_rate"])
	assert.Equal(t, 2.5, data["sgst_rate"])
	assert.Equal(t, 5715.0, data["taxable_value"])
	assert.Equal(t, 285.75, data["tax_amount"])
	assert.Equal(t, 0.25, data["round_off"])
	assert.Equal(t, 6001.0, data["total"])
}

func TestQuoteEndpointValidation(t *testing.T) {
	router := newTestRouter()

	w, resp := doJSON(t, router, http.MethodPost, "/pricing/quote", gin.H{
		"quantity":       0,
		"items_subtotal": 100,
	})

	// binding rejects the zero quantity before the service sees it
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, resp["success"])
}

func TestQuoteEndpointQuantityOutsideTables(t *testing.T) {
	router := newTestRouter()

	w, resp := doJSON(t, router, http.MethodPost, "/pricing/quote", gin.H{
		"quantity":       999999,
		"items_subtotal": 100,
		"buyer_state":    "Chhattisgarh",
		"buyer_country":  "India",
	})

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, false, resp["success"])
	assert.Contains(t, resp["message"], "no tier covers")
}

func TestGetRatePlanEndpoint(t *testing.T) {
	router := newTestRouter()

	w, resp := doJSON(t, router, http.MethodGet, "/rate-plan", nil)

	require.Equal(t, http.StatusOK, w.Code)
	data := resp["data"].(map[string]interface{})
	assert.Len(t, data["packaging_forwarding_tiers"], 2)
	assert.Len(t, data["tax_tiers"], 1)
}

func TestReplaceTableEndpoint(t *testing.T) {
	router := newTestRouter()

	w, resp := doJSON(t, router, http.MethodPut, "/rate-plan/tables/printing", gin.H{
		"tiers": []gin.H{
			{"min_qty": 1, "max_qty": 100, "cost": 20},
		},
	})

	require.Equal(t, http.StatusOK, w.Code)
	data := resp["data"].(map[string]interface{})
	tiers := data["printing_tiers"].([]interface{})
	require.Len(t, tiers, 1)
	assert.Equal(t, float64(2000), tiers[0].(map[string]interface{})["cost_paise"])
}

func TestReplaceTableEndpointRejectsOverlap(t *testing.T) {
	router := newTestRouter()

	w, resp := doJSON(t, router, http.MethodPut, "/rate-plan/tables/printing", gin.H{
		"tiers": []gin.H{
			{"min_qty": 1, "max_qty": 100, "cost": 20},
			{"min_qty": 100, "max_qty": 200, "cost": 15},
		},
	})

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, resp["message"], "overlaps")
}

func TestReplaceTableEndpointUnknownKind(t *testing.T) {
	router := newTestRouter()

	w, resp := doJSON(t, router, http.MethodPut, "/rate-plan/tables/stapling", gin.H{
		"tiers": []gin.H{
			{"min_qty": 1, "max_qty": 100, "cost": 20},
		},
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, resp["message"], "unknown charge kind")
}

package repository

import (
	"context"

	"github.com/printsetu/printsetu-api/internal/domain/entity"
	"github.com/printsetu/printsetu-api/internal/domain/pricing"
)

// RatePlanRepository defines durable storage for the single active rate
// plan. GetPlan materializes the documented baseline on first access;
// ReplaceTable persists an already-validated tier table wholesale so readers
// see either the fully-old or fully-new table, never a mix.
type RatePlanRepository interface {
	GetPlan(ctx context.Context) (*entity.RatePlan, error)
	ReplaceTable(ctx context.Context, table pricing.TierTable) (*entity.RatePlan, error)
}

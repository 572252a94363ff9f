package repository

import (
	"context"
	"errors"

	"github.com/printsetu/printsetu-api/internal/domain/entity"
	"github.com/printsetu/printsetu-api/internal/domain/pricing"
	domainRepo "github.com/printsetu/printsetu-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ratePlanRepository struct {
	db *gorm.DB
}

// NewRatePlanRepository creates a new rate plan repository
func NewRatePlanRepository(db *gorm.DB) domainRepo.RatePlanRepository {
	return &ratePlanRepository{db: db}
}

// GetPlan returns the singleton rate plan, creating the baseline plan on
// first access
func (r *ratePlanRepository) GetPlan(ctx context.Context) (*entity.RatePlan, error) {
	var plan entity.RatePlan
	err := r.db.WithContext(ctx).Order("created_at ASC").First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		plan = baselinePlan()
		if err := r.db.WithContext(ctx).Create(&plan).Error; err != nil {
			return nil, err
		}
		return &plan, nil
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// ReplaceTable overwrites one tier array of the plan inside a transaction.
// The row is locked for the duration of the update so concurrent readers see
// either the old table or the new one, never a partial write.
func (r *ratePlanRepository) ReplaceTable(ctx context.Context, table pricing.TierTable) (*entity.RatePlan, error) {
	var plan *entity.RatePlan
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current entity.RatePlan
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Order("created_at ASC").First(&current).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			current = baselinePlan()
			if err := tx.Create(&current).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		if err := current.SetTable(table); err != nil {
			return err
		}
		if err := tx.Save(&current).Error; err != nil {
			return err
		}
		plan = &current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// baselinePlan returns the documented default rate plan used when no plan
// row exists yet: three packaging tiers, three printing tiers and a single
// flat 5% GST tier spanning all quantities.
func baselinePlan() entity.RatePlan {
	return entity.RatePlan{
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

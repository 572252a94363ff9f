package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/printsetu/printsetu-api/internal/domain/enum"
	"github.com/printsetu/printsetu-api/internal/domain/pricing"
	"gorm.io/gorm"
)

// TierList stores a validated tier array as a JSONB column
type TierList []pricing.Tier

func (l TierList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *TierList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return fmt.Errorf("unsupported tier list column type %T", value)
}

// RatePlan is the single live rate configuration for the deployment: one
// tier table per charge kind. Exactly one row exists; it is created lazily
// with the baseline tables on first read and updated wholesale per table.
type RatePlan struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	PackagingTiers TierList       `gorm:"type:jsonb;not null" json:"packaging_forwarding_tiers"`
	PrintingTiers  TierList       `gorm:"type:jsonb;not null" json:"printing_tiers"`
	TaxTiers       TierList       `gorm:"type:jsonb;not null" json:"tax_tiers"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating the plan row
func (p *RatePlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the RatePlan model
func (RatePlan) TableName() string {
	return "rate_plans"
}

// Table returns the tier table for the given charge kind
func (p *RatePlan) Table(kind enum.ChargeKind) pricing.TierTable {
	switch kind {
	case enum.ChargeKindPrinting:
		return pricing.TierTable{Kind: kind, Tiers: p.PrintingTiers}
	case enum.ChargeKindTax:
		return pricing.TierTable{Kind: kind, Tiers: p.TaxTiers}
	default:
		return pricing.TierTable{Kind: enum.ChargeKindPackagingForwarding, Tiers: p.PackagingTiers}
	}
}

// SetTable replaces the tier array for the table's charge kind
func (p *RatePlan) SetTable(table pricing.TierTable) error {
	switch table.Kind {
	case enum.ChargeKindPackagingForwarding:
		p.PackagingTiers = TierList(table.Tiers)
	case enum.ChargeKindPrinting:
		p.PrintingTiers = TierList(table.Tiers)
	case enum.ChargeKindTax:
		p.TaxTiers = TierList(table.Tiers)
	default:
		return errors.New("unknown charge kind")
	}
	return nil
}

package pricing

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/printsetu/printsetu-api/internal/domain/enum"
)

// Sentinel errors so callers can branch on the failure class while the
// wrapper types below carry the offending values.
var (
	ErrNoTiers        = errors.New("tier list cannot be empty")
	ErrTierOverlap    = errors.New("tier ranges overlap")
	ErrNoMatchingTier = errors.New("no tier covers the requested quantity")
)

// Tier is a closed quantity range mapped to a single rate. Per-unit tables
// (packaging/forwarding, printing) use CostPaise; the tax table uses Percent.
type Tier struct {
	MinQty    int     `json:"min_qty"`
	MaxQty    int     `json:"max_qty"`
	CostPaise int64   `json:"cost_paise,omitempty"`
	Percent   float64 `json:"percent,omitempty"`
}

// RawTier is an unvalidated tier as submitted through the admin API.
// Quantities arrive as floats so that non-integral input can be rejected
// explicitly instead of silently truncated; Cost is in rupees.
type RawTier struct {
	MinQty  float64  `json:"min_qty"`
	MaxQty  float64  `json:"max_qty"`
	Cost    *float64 `json:"cost,omitempty"`
	Percent *float64 `json:"percent,omitempty"`
}

// TierTable is an ordered, non-overlapping sequence of tiers for one charge
// kind. Tables are immutable once built; mutation happens only through
// ValidateTiers producing a replacement.
type TierTable struct {
	Kind  enum.ChargeKind
	Tiers []Tier
}

// TierValidationError reports a single invalid field on a raw tier
type TierValidationError struct {
	Index  int
	Field  string
	Reason string
}

func (e *TierValidationError) Error() string {
	return fmt.Sprintf("tier %d: %s %s", e.Index, e.Field, e.Reason)
}

// OverlapError reports two adjacent tiers whose quantity ranges collide
// after sorting
type OverlapError struct {
	Index   int
	PrevMax int
	MinQty  int
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("tier %d overlaps previous tier: min_qty %d must be greater than previous max_qty %d",
		e.Index, e.MinQty, e.PrevMax)
}

func (e *OverlapError) Unwrap() error {
	return ErrTierOverlap
}

// NoMatchingTierError reports a lookup quantity that no tier covers
type NoMatchingTierError struct {
	Kind     enum.ChargeKind
	Quantity int
}

func (e *NoMatchingTierError) Error() string {
	return fmt.Sprintf("%s table: no tier covers quantity %d", e.Kind, e.Quantity)
}

func (e *NoMatchingTierError) Unwrap() error {
	return ErrNoMatchingTier
}

// ValidateTiers validates a full candidate tier list for the given charge
// kind and returns the replacement table. The candidate set is checked as a
// whole before anything is returned; a single bad tier rejects the lot.
func ValidateTiers(raw []RawTier, kind enum.ChargeKind) (TierTable, error) {
	if len(raw) == 0 {
		return TierTable{}, ErrNoTiers
	}

	tiers := make([]Tier, 0, len(raw))
	for i, r := range raw {
		minQty, err := coerceQty(i, "min_qty", r.MinQty)
		if err != nil {
			return TierTable{}, err
		}
		maxQty, err := coerceQty(i, "max_qty", r.MaxQty)
		if err != nil {
			return TierTable{}, err
		}
		if minQty < 1 {
			return TierTable{}, &TierValidationError{Index: i, Field: "min_qty", Reason: "must be at least 1"}
		}
		if maxQty < minQty {
			return TierTable{}, &TierValidationError{Index: i, Field: "max_qty", Reason: "must be greater than or equal to min_qty"}
		}

		tier := Tier{MinQty: minQty, MaxQty: maxQty}
		if kind.IsPercentage() {
			if r.Percent == nil {
				return TierTable{}, &TierValidationError{Index: i, Field: "percent", Reason: "is required"}
			}
			if !isFinite(*r.Percent) {
				return TierTable{}, &TierValidationError{Index: i, Field: "percent", Reason: "must be a finite number"}
			}
			if *r.Percent < 0 {
				return TierTable{}, &TierValidationError{Index: i, Field: "percent", Reason: "must not be negative"}
			}
			tier.Percent = *r.Percent
		} else {
			if r.Cost == nil {
				return TierTable{}, &TierValidationError{Index: i, Field: "cost", Reason: "is required"}
			}
			if !isFinite(*r.Cost) {
				return TierTable{}, &TierValidationError{Index: i, Field: "cost", Reason: "must be a finite number"}
			}
			if *r.Cost < 0 {
				return TierTable{}, &TierValidationError{Index: i, Field: "cost", Reason: "must not be negative"}
			}
			tier.CostPaise = int64(math.Round(*r.Cost * 100))
		}
		tiers = append(tiers, tier)
	}

	sort.Slice(tiers, func(i, j int) bool {
		return tiers[i].MinQty < tiers[j].MinQty
	})

	// Gaps between tiers are allowed; overlaps are not. A min_qty equal to
	// the previous max_qty is already a collision (inclusive boundaries).
	for i := 1; i < len(tiers); i++ {
		if tiers[i].MinQty <= tiers[i-1].MaxQty {
			return TierTable{}, &OverlapError{
				Index:   i,
				PrevMax: tiers[i-1].MaxQty,
				MinQty:  tiers[i].MinQty,
			}
		}
	}

	return TierTable{Kind: kind, Tiers: tiers}, nil
}

// Lookup returns the tier covering the given quantity. Boundaries are
// inclusive on both ends. A quantity falling in a gap, below the lowest tier
// or above the highest one fails with a NoMatchingTierError; lookup never
// substitutes a zero rate or a neighbouring tier.
func (t TierTable) Lookup(quantity int) (Tier, error) {
	for _, tier := range t.Tiers {
		if quantity >= tier.MinQty && quantity <= tier.MaxQty {
			return tier, nil
		}
	}
	return Tier{}, &NoMatchingTierError{Kind: t.Kind, Quantity: quantity}
}

func coerceQty(index int, field string, v float64) (int, error) {
	if !isFinite(v) {
		return 0, &TierValidationError{Index: index, Field: field, Reason: "must be a finite number"}
	}
	if v != math.Trunc(v) {
		return 0, &TierValidationError{Index: index, Field: field, Reason: "must be a whole number"}
	}
	return int(v), nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

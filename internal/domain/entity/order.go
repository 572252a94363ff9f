package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/printsetu/printsetu-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Order is a priced print order. The full invoice breakdown is snapshotted
// at creation time from the rate plan and tax classification then in force;
// later rate plan edits never reprice an existing order.
type Order struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	CustomerID *uuid.UUID `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	OrderDate  time.Time  `gorm:"type:date;not null" json:"order_date"`
	InvoiceNo  string     `gorm:"size:100;unique;not null" json:"invoice_no"`
	Quantity   int        `gorm:"not null" json:"quantity"`

	// Buyer location as entered, kept for audit of the classification
	BuyerState   string `gorm:"size:100" json:"buyer_state"`
	BuyerCountry string `gorm:"size:100" json:"buyer_country"`

	// Per-unit rates resolved from the rate plan at the order quantity
	PackagingRate int64 `gorm:"default:0" json:"-"` // paise per unit
	PrintingRate  int64 `gorm:"default:0" json:"-"` // paise per unit

	// Tax classification
	TaxRegime   enum.TaxRegime `gorm:"default:2" json:"tax_regime"`
	CGSTRate    float64        `gorm:"default:0" json:"cgst_rate"`
	SGSTRate    float64        `gorm:"default:0" json:"sgst_rate"`
	IGSTRate    float64        `gorm:"default:0" json:"igst_rate"`
	FlatTaxRate float64        `gorm:"default:0" json:"flat_tax_rate"`

	// Monetary breakdown, stored in paise and excluded from JSON; the
	// marshaler below exposes decimal rupees
	ItemsSubtotal   int64 `gorm:"default:0" json:"-"`
	PackagingCharge int64 `gorm:"default:0" json:"-"`
	PrintingCharge  int64 `gorm:"default:0" json:"-"`
	TaxableValue    int64 `gorm:"default:0" json:"-"`
	TaxAmount       int64 `gorm:"default:0" json:"-"`
	GrandTotal      int64 `gorm:"default:0" json:"-"`
	RoundOff        int64 `gorm:"default:0" json:"-"`
	Total           int64 `gorm:"default:0" json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User     User        `gorm:"foreignKey:UserID" json:"-"`
	Customer *Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert paise to decimal rupees for API
// responses
func (o Order) MarshalJSON() ([]byte, error) {
	type Alias Order
	return json.Marshal(&struct {
		Alias
		PackagingRate   float64 `json:"packaging_forwarding_rate"`
		PrintingRate    float64 `json:"printing_rate"`
		ItemsSubtotal   float64 `json:"items_subtotal"`
		PackagingCharge float64 `json:"packaging_forwarding_charge"`
		PrintingCharge  float64 `json:"printing_charge"`
		TaxableValue    float64 `json:"taxable_value"`
		TaxAmount       float64 `json:"tax_amount"`
		GrandTotal      float64 `json:"grand_total"`
		RoundOff        float64 `json:"round_off"`
		Total           float64 `json:"total"`
	}{
		Alias:           Alias(o),
		PackagingRate:   float64(o.PackagingRate) / 100,
		PrintingRate:    float64(o.PrintingRate) / 100,
		ItemsSubtotal:   float64(o.ItemsSubtotal) / 100,
		PackagingCharge: float64(o.PackagingCharge) / 100,
		PrintingCharge:  float64(o.PrintingCharge) / 100,
		TaxableValue:    float64(o.TaxableValue) / 100,
		TaxAmount:       float64(o.TaxAmount) / 100,
		GrandTotal:      float64(o.GrandTotal) / 100,
		RoundOff:        float64(o.RoundOff) / 100,
		Total:           float64(o.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// GetTotalDecimal returns the final total as decimal rupees
func (o *Order) GetTotalDecimal() float64 {
	return float64(o.Total) / 100
}

// OrderItem represents a line item in an order
type OrderItem struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OrderID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"order_id"`
	Description string         `gorm:"size:255;not null" json:"description"`
	Quantity    int            `gorm:"not null" json:"quantity"`
	UnitPrice   int64          `gorm:"not null" json:"-"` // paise, excluded from JSON
	Total       int64          `gorm:"not null" json:"-"` // paise, excluded from JSON
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Order Order `gorm:"foreignKey:OrderID" json:"-"`
}

// MarshalJSON custom marshaler to convert paise to decimal rupees for API
// responses
func (oi OrderItem) MarshalJSON() ([]byte, error) {
	type Alias OrderItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(oi),
		UnitPrice: float64(oi.UnitPrice) / 100,
		Total:     float64(oi.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order item
func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == uuid.Nil {
		oi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}

package request

// QuoteRequest represents a pricing quote request. ItemsSubtotal is in rupees.
type QuoteRequest struct {
	Quantity      int     `json:"quantity" binding:"required"`
	ItemsSubtotal float64 `json:"items_subtotal"`
	BuyerState    string  `json:"buyer_state"`
	BuyerCountry  string  `json:"buyer_country"`
}

// TierInput represents one candidate quantity tier. Cost is in rupees and
// applies to the packaging and printing tables; Percent applies to the tax
// table. Quantities arrive as numbers and are checked for integrality
// server-side, so no binding constraint is placed on them here.
type TierInput struct {
	MinQty  float64  `json:"min_qty"`
	MaxQty  float64  `json:"max_qty"`
	Cost    *float64 `json:"cost,omitempty"`
	Percent *float64 `json:"percent,omitempty"`
}

// ReplaceTiersRequest represents a wholesale replacement of one rate table
type ReplaceTiersRequest struct {
	Tiers []TierInput `json:"tiers" binding:"required"`
}

package request

// OrderItemRequest represents an item in an order creation request.
// UnitPrice is in rupees.
type OrderItemRequest struct {
	Description string  `json:"description" binding:"required"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity" binding:"required"`
}

// CreateOrderRequest represents an order creation request. BuyerState and
// BuyerCountry fall back to the customer record when omitted.
type CreateOrderRequest struct {
	CustomerID   *string            `json:"customer_id"`
	BuyerState   string             `json:"buyer_state"`
	BuyerCountry string             `json:"buyer_country"`
	Items        []OrderItemRequest `json:"items" binding:"required"`
}

package request

// CreateCustomerRequest represents a customer creation request
type CreateCustomerRequest struct {
	Name    string  `json:"name" binding:"required"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	GSTIN   *string `json:"gstin"`
	Address *string `json:"address"`
	State   string  `json:"state"`
	Country string  `json:"country"`
}

// UpdateCustomerRequest represents a customer update request
type UpdateCustomerRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	GSTIN   *string `json:"gstin"`
	Address *string `json:"address"`
	State   *string `json:"state"`
	Country *string `json:"country"`
}

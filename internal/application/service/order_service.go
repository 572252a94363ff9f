package service

import (
	"context"
	"log"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/printsetu/printsetu-api/internal/domain/entity"
	"github.com/printsetu/printsetu-api/internal/domain/pricing"
	"github.com/printsetu/printsetu-api/internal/domain/repository"
	"github.com/printsetu/printsetu-api/pkg/apperror"
	"github.com/printsetu/printsetu-api/pkg/email"
	"github.com/printsetu/printsetu-api/pkg/pagination"
	"github.com/printsetu/printsetu-api/pkg/utils"
)

// OrderService handles order-related operations
type OrderService struct {
	orderRepo      repository.OrderRepository
	customerRepo   repository.CustomerRepository
	pricingService *PricingService
	emailService   *email.EmailService
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	pricingService *PricingService,
	emailService *email.EmailService,
) *OrderService {
	return &OrderService{
		orderRepo:      orderRepo,
		customerRepo:   customerRepo,
		pricingService: pricingService,
		emailService:   emailService,
	}
}

// OrderItemInput represents an item in an order
type OrderItemInput struct {
	Description string
	UnitPrice   float64 // rupees
	Quantity    int
}

// CreateOrderInput represents the create order input. BuyerState and
// BuyerCountry default to the customer record when left empty.
type CreateOrderInput struct {
	UserID       uuid.UUID
	CustomerID   *uuid.UUID
	BuyerState   string
	BuyerCountry string
	Items        []OrderItemInput
}

// CreateOrder prices and persists a new order. The invoice breakdown is
// computed from the rate plan active right now and snapshotted on the order.
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.Order, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "items", Message: "at least one item is required"},
		})
	}

	items := make([]pricing.LineItem, 0, len(input.Items))
	var totalQuantity int
	for i, item := range input.Items {
		if item.Quantity < 1 {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "items", Message: "item quantity must be at least 1"},
			})
		}
		if math.IsNaN(item.UnitPrice) || math.IsInf(item.UnitPrice, 0) || item.UnitPrice < 0 {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "items", Message: "item unit price must be a non-negative number"},
			})
		}
		totalQuantity += item.Quantity
		items = append(items, pricing.LineItem{
			Description:    input.Items[i].Description,
			UnitPricePaise: int64(math.Round(item.UnitPrice * 100)),
			Quantity:       item.Quantity,
		})
	}

	// Resolve the customer and fall back to their stored location when the
	// request does not carry one
	var customer *entity.Customer
	if input.CustomerID != nil {
		var err error
		customer, err = s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
	}
	buyerState := input.BuyerState
	buyerCountry := input.BuyerCountry
	if customer != nil {
		if buyerState == "" {
			buyerState = customer.State
		}
		if buyerCountry == "" {
			buyerCountry = customer.Country
		}
	}

	quote, err := s.pricingService.QuoteAt(ctx, totalQuantity, pricing.ItemsSubtotal(items), buyerState, buyerCountry)
	if err != nil {
		return nil, err
	}

	order := &entity.Order{
		UserID:          input.UserID,
		CustomerID:      input.CustomerID,
		OrderDate:       time.Now(),
		InvoiceNo:       utils.GenerateInvoiceNo("INV-"),
		Quantity:        totalQuantity,
		BuyerState:      buyerState,
		BuyerCountry:    buyerCountry,
		PackagingRate:   quote.PackagingRatePaise,
		PrintingRate:    quote.PrintingRatePaise,
		TaxRegime:       quote.Classification.Regime,
		CGSTRate:        quote.Classification.CGSTRate,
		SGSTRate:        quote.Classification.SGSTRate,
		IGSTRate:        quote.Classification.IGSTRate,
		FlatTaxRate:     quote.Classification.FlatRate,
		ItemsSubtotal:   quote.Totals.ItemsSubtotal,
		PackagingCharge: quote.Charges.PackagingForwardingPaise,
		PrintingCharge:  quote.Charges.PrintingPaise,
		TaxableValue:    quote.Totals.TaxableValue,
		TaxAmount:       quote.Totals.TaxAmount,
		GrandTotal:      quote.Totals.GrandTotal,
		RoundOff:        quote.Totals.RoundOff,
		Total:           quote.Totals.FinalTotal,
	}

	orderItems := make([]entity.OrderItem, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, entity.OrderItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPricePaise,
			Total:       item.UnitPricePaise * int64(item.Quantity),
		})
	}

	if err := s.orderRepo.Create(ctx, order, orderItems); err != nil {
		return nil, err
	}

	// Invoice mail is best effort; a delivery failure never fails the order
	if customer != nil && customer.Email != nil && s.emailService.Enabled() {
		if err := s.emailService.SendInvoiceEmail(*customer.Email, order); err != nil {
			log.Printf("Warning: failed to send invoice email for %s: %v", order.InvoiceNo, err)
		}
	}

	return s.orderRepo.GetWithItems(ctx, order.ID)
}

// GetOrder retrieves an order with its items
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrders lists orders with filtering
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

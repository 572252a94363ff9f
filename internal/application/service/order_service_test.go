package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/printsetu/printsetu-api/internal/domain/entity"
	"github.com/printsetu/printsetu-api/internal/domain/enum"
	"github.com/printsetu/printsetu-api/internal/domain/pricing"
	"github.com/printsetu/printsetu-api/internal/domain/repository"
	"github.com/printsetu/printsetu-api/pkg/apperror"
	"github.com/printsetu/printsetu-api/pkg/email"
	"github.com/printsetu/printsetu-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderRepo struct {
	orders map[uuid.UUID]*entity.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*entity.Order)}
}

func (r *fakeOrderRepo) Create(ctx context.Context, order *entity.Order, items []entity.OrderItem) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	order.Items = items
	r.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return r.orders[id], nil
}

func (r *fakeOrderRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return r.orders[id], nil
}

func (r *fakeOrderRepo) List(ctx context.Context, params *repository.OrderFilterParams) ([]entity.Order, int64, error) {
	var out []entity.Order
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*entity.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[uuid.UUID]*entity.Customer)}
}

func (r *fakeCustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	r.customers[customer.ID] = customer
	return nil
}

func (r *fakeCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	return r.customers[id], nil
}

func (r *fakeCustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	r.customers[customer.ID] = customer
	return nil
}

func (r *fakeCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.customers, id)
	return nil
}

func (r *fakeCustomerRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	var out []entity.Customer
	for _, c := range r.customers {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func newTestOrderService() (*OrderService, *fakeOrderRepo, *fakeCustomerRepo) {
	orderRepo := newFakeOrderRepo()
	customerRepo := newFakeCustomerRepo()
	pricingService, _ := newTestPricingService()
	emailService := email.NewEmailService(email.EmailConfig{})
	return NewOrderService(orderRepo, customerRepo, pricingService, emailService), orderRepo, customerRepo
}

func TestCreateOrderSnapshotsPricing(t *testing.T) {
	svc, _, _ := newTestOrderService()
	userID := uuid.New()

	order, err := svc.CreateOrder(context.Background(), &CreateOrderInput{
		UserID:       userID,
		BuyerState:   "Chhattisgarh",
		BuyerCountry: "India",
		Items: []OrderItemInput{
			{Description: "Visiting cards", UnitPrice: 100, Quantity: 45},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, userID, order.UserID)
	assert.Equal(t, 45, order.Quantity)
	assert.True(t, strings.HasPrefix(order.InvoiceNo, "INV-"))

	assert.Equal(t, enum.TaxRegimeIntrastate, order.TaxRegime)
	assert.Equal(t, 2.5, order.CGSTRate)
	assert.Equal(t, 2.5, order.SGSTRate)

	assert.Equal(t, int64(1200), order.PackagingRate)
	assert.Equal(t, int64(1500), order.PrintingRate)
	assert.Equal(t, int64(450000), order.ItemsSubtotal)
	assert.Equal(t, int64(54000), order.PackagingCharge)
	assert.Equal(t, int64(67500), order.PrintingCharge)
	assert.Equal(t, int64(571500), order.TaxableValue)
	assert.Equal(t, int64(28575), order.TaxAmount)
	assert.Equal(t, int64(25), order.RoundOff)
	assert.Equal(t, int64(600100), order.Total)

	require.Len(t, order.Items, 1)
	assert.Equal(t, int64(10000), order.Items[0].UnitPrice)
	assert.Equal(t, int64(450000), order.Items[0].Total)
}

func TestCreateOrderSumsItemQuantities(t *testing.T) {
	svc, _, _ := newTestOrderService()

	order, err := svc.CreateOrder(context.Background(), &CreateOrderInput{
		UserID:       uuid.New(),
		BuyerState:   "Maharashtra",
		BuyerCountry: "India",
		Items: []OrderItemInput{
			{Description: "Flyers", UnitPrice: 10, Quantity: 30},
			{Description: "Posters", UnitPrice: 50, Quantity: 30},
		},
	})

	require.NoError(t, err)
	// 60 units lands in the second tier of both per-unit tables
	assert.Equal(t, 60, order.Quantity)
	assert.Equal(t, int64(1000), order.PackagingRate)
	assert.Equal(t, int64(1200), order.PrintingRate)
	assert.Equal(t, enum.TaxRegimeInterstate, order.TaxRegime)
	assert.Equal(t, 5.0, order.IGSTRate)
}

func TestCreateOrderFallsBackToCustomerLocation(t *testing.T) {
	svc, _, customerRepo := newTestOrderService()

	customer := &entity.Customer{
		UserID:  uuid.New(),
		Name:    "Sharma Prints",
		State:   "Chhattisgarh",
		Country: "India",
	}
	require.NoError(t, customerRepo.Create(context.Background(), customer))

	order, err := svc.CreateOrder(context.Background(), &CreateOrderInput{
		UserID:     uuid.New(),
		CustomerID: &customer.ID,
		Items: []OrderItemInput{
			{Description: "Brochures", UnitPrice: 20, Quantity: 10},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "Chhattisgarh", order.BuyerState)
	assert.Equal(t, enum.TaxRegimeIntrastate, order.TaxRegime)
}

func TestCreateOrderValidation(t *testing.T) {
	svc, _, _ := newTestOrderService()

	tests := []struct {
		name  string
		input *CreateOrderInput
	}{
		{
			name:  "no items",
			input: &CreateOrderInput{UserID: uuid.New()},
		},
		{
			name: "zero quantity item",
			input: &CreateOrderInput{
				UserID: uuid.New(),
				Items:  []OrderItemInput{{Description: "Flyers", UnitPrice: 10, Quantity: 0}},
			},
		},
		{
			name: "negative unit price",
			input: &CreateOrderInput{
				UserID: uuid.New(),
				Items:  []OrderItemInput{{Description: "Flyers", UnitPrice: -10, Quantity: 1}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateOrder(context.Background(), tt.input)
			require.Error(t, err)
			assert.Equal(t, 422, apperror.GetAppError(err).Code)
		})
	}
}

func TestCreateOrderUnknownCustomer(t *testing.T) {
	svc, _, _ := newTestOrderService()
	missing := uuid.New()

	_, err := svc.CreateOrder(context.Background(), &CreateOrderInput{
		UserID:     uuid.New(),
		CustomerID: &missing,
		Items:      []OrderItemInput{{Description: "Flyers", UnitPrice: 10, Quantity: 1}},
	})

	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestGetOrderNotFound(t *testing.T) {
	svc, _, _ := newTestOrderService()

	_, err := svc.GetOrder(context.Background(), uuid.New())

	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestCreateOrderUsesFreshRateTables(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	customerRepo := newFakeCustomerRepo()
	pricingService, _ := newTestPricingService()
	svc := NewOrderService(orderRepo, customerRepo, pricingService, email.NewEmailService(email.EmailConfig{}))

	first, err := svc.CreateOrder(context.Background(), &CreateOrderInput{
		UserID:       uuid.New(),
		BuyerState:   "Chhattisgarh",
		BuyerCountry: "India",
		Items:        []OrderItemInput{{Description: "Flyers", UnitPrice: 10, Quantity: 10}},
	})
	require.NoError(t, err)

	cost := 30.0
	_, err = pricingService.ReplaceTable(context.Background(), enum.ChargeKindPrinting, []pricing.RawTier{
		{MinQty: 1, MaxQty: 1000, Cost: &cost},
	})
	require.NoError(t, err)

	second, err := svc.CreateOrder(context.Background(), &CreateOrderInput{
		UserID:       uuid.New(),
		BuyerState:   "Chhattisgarh",
		BuyerCountry: "India",
		Items:        []OrderItemInput{{Description: "Flyers", UnitPrice: 10, Quantity: 10}},
	})
	require.NoError(t, err)

	// The earlier order keeps its snapshot; the new one prices off the
	// replaced table
	assert.Equal(t, int64(1500), first.PrintingRate)
	assert.Equal(t, int64(3000), second.PrintingRate)
}

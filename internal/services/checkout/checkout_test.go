package checkout

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/video-storefront/internal/models"
	"github.com/magabrotheeeer/video-storefront/internal/paymentprovider"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ReadProduct(ctx context.Context, id int) (*models.Product, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*models.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockProviderClient struct {
	mock.Mock
}

func (m *MockProviderClient) CreateCheckoutSession(reqParams paymentprovider.CreateCheckoutSessionRequest) (*paymentprovider.CreateCheckoutSessionResponse, error) {
	args := m.Called(reqParams)
	if res := args.Get(0); res != nil {
		return res.(*paymentprovider.CreateCheckoutSessionResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func product(id int, title, price string) *models.Product {
	return &models.Product{
		ID:    id,
		Title: title,
		Price: decimal.RequireFromString(price),
	}
}

func TestCreateCheckout(t *testing.T) {
	tests := []struct {
		name          string
		items         []models.CartItem
		setupMocks    func(*MockRepository, *MockProviderClient)
		expectedURL   string
		expectedError error
	}{
		{
			name: "цена конвертируется в минорные единицы",
			items: []models.CartItem{
				{ProductID: 1, Quantity: 2},
			},
			setupMocks: func(r *MockRepository, p *MockProviderClient) {
				r.On("ReadProduct", mock.Anything, 1).Return(product(1, "Курс по Go", "9.99"), nil).Once()
				p.On("CreateCheckoutSession", mock.MatchedBy(func(req paymentprovider.CreateCheckoutSessionRequest) bool {
					return len(req.LineItems) == 1 &&
						req.LineItems[0].UnitAmount == 999 &&
						req.LineItems[0].Quantity == 2 &&
						req.LineItems[0].Currency == "usd" &&
						req.Metadata["user_uid"] == "uid-1"
				})).Return(&paymentprovider.CreateCheckoutSessionResponse{
					ID:  "cs_1",
					URL: "https://pay.example/cs_1",
				}, nil).Once()
			},
			expectedURL: "https://pay.example/cs_1",
		},
		{
			name: "неизвестный товар отбрасывается, остальные уходят провайдеру",
			items: []models.CartItem{
				{ProductID: 404, Quantity: 1},
				{ProductID: 2, Quantity: 1},
			},
			setupMocks: func(r *MockRepository, p *MockProviderClient) {
				r.On("ReadProduct", mock.Anything, 404).Return(nil, sql.ErrNoRows).Once()
				r.On("ReadProduct", mock.Anything, 2).Return(product(2, "Курс по SQL", "5.00"), nil).Once()
				p.On("CreateCheckoutSession", mock.MatchedBy(func(req paymentprovider.CreateCheckoutSessionRequest) bool {
					return len(req.LineItems) == 1 && req.LineItems[0].UnitAmount == 500
				})).Return(&paymentprovider.CreateCheckoutSessionResponse{
					ID:  "cs_2",
					URL: "https://pay.example/cs_2",
				}, nil).Once()
			},
			expectedURL: "https://pay.example/cs_2",
		},
		{
			name:          "пустая корзина",
			items:         nil,
			setupMocks:    func(_ *MockRepository, _ *MockProviderClient) {},
			expectedError: ErrEmptyCart,
		},
		{
			name: "все позиции отброшены",
			items: []models.CartItem{
				{ProductID: 1, Quantity: 0},
				{ProductID: 404, Quantity: 1},
			},
			setupMocks: func(r *MockRepository, _ *MockProviderClient) {
				r.On("ReadProduct", mock.Anything, 404).Return(nil, sql.ErrNoRows).Once()
			},
			expectedError: ErrEmptyCart,
		},
		{
			name: "ошибка провайдера",
			items: []models.CartItem{
				{ProductID: 1, Quantity: 1},
			},
			setupMocks: func(r *MockRepository, p *MockProviderClient) {
				r.On("ReadProduct", mock.Anything, 1).Return(product(1, "Курс по Go", "9.99"), nil).Once()
				p.On("CreateCheckoutSession", mock.Anything).Return(nil, errors.New("provider down")).Once()
			},
			expectedError: errors.New("provider down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			provider := new(MockProviderClient)
			tt.setupMocks(repo, provider)

			service := NewCheckoutService(repo, provider, "https://shop.example", newNoopLogger())
			url, err := service.CreateCheckout(context.Background(), "uid-1", tt.items)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError.Error())
				assert.Empty(t, url)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedURL, url)
			}
			repo.AssertExpectations(t)
			provider.AssertExpectations(t)
		})
	}
}

func TestCreateCheckout_RedirectURLs(t *testing.T) {
	repo := new(MockRepository)
	provider := new(MockProviderClient)
	repo.On("ReadProduct", mock.Anything, 1).Return(product(1, "Курс", "1.00"), nil).Once()
	provider.On("CreateCheckoutSession", mock.MatchedBy(func(req paymentprovider.CreateCheckoutSessionRequest) bool {
		return req.SuccessURL == "https://shop.example/checkout-success" &&
			req.CancelURL == "https://shop.example/cart" &&
			req.Mode == "payment"
	})).Return(&paymentprovider.CreateCheckoutSessionResponse{ID: "cs", URL: "u"}, nil).Once()

	service := NewCheckoutService(repo, provider, "https://shop.example", newNoopLogger())
	_, err := service.CreateCheckout(context.Background(), "uid-1", []models.CartItem{{ProductID: 1, Quantity: 1}})

	assert.NoError(t, err)
	provider.AssertExpectations(t)
}

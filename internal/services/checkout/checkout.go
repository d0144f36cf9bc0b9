// Package checkout конвертирует содержимое корзины в checkout-сессию
// внешнего платёжного провайдера.
package checkout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/video-storefront/internal/models"
	"github.com/magabrotheeeer/video-storefront/internal/paymentprovider"
)

// ErrEmptyCart возвращается, когда ни одна позиция не разрешилась в товар.
var ErrEmptyCart = errors.New("empty cart")

// Currency — валюта витрины. Цены хранятся без привязки к валюте,
// сумма передаётся провайдеру в минорных единицах.
const Currency = "usd"

// ProductRepository описывает контракт чтения товаров.
type ProductRepository interface {
	ReadProduct(ctx context.Context, id int) (*models.Product, error)
}

// ProviderClient описывает интерфейс для работы с платёжным провайдером.
type ProviderClient interface {
	CreateCheckoutSession(reqParams paymentprovider.CreateCheckoutSessionRequest) (*paymentprovider.CreateCheckoutSessionResponse, error)
}

// CheckoutService собирает checkout-запрос из позиций корзины.
type CheckoutService struct {
	repo           ProductRepository
	providerClient ProviderClient
	successURL     string
	cancelURL      string
	log            *slog.Logger
}

// NewCheckoutService создает новый экземпляр CheckoutService.
// publicBaseURL — внешний адрес сервиса для redirect-целей провайдера.
func NewCheckoutService(repo ProductRepository, providerClient ProviderClient, publicBaseURL string, log *slog.Logger) *CheckoutService {
	return &CheckoutService{
		repo:           repo,
		providerClient: providerClient,
		successURL:     publicBaseURL + "/checkout-success",
		cancelURL:      publicBaseURL + "/cart",
		log:            log,
	}
}

// CreateCheckout разрешает позиции корзины в товары и создаёт checkout-сессию.
//
// Позиции с неизвестным товаром или количеством меньше единицы молча
// отбрасываются; если не осталось ни одной валидной позиции, возвращается
// ErrEmptyCart. Сумма каждой позиции — round(price*100) минорных единиц.
func (s *CheckoutService) CreateCheckout(ctx context.Context, userUID string, items []models.CartItem) (string, error) {
	const op = "checkout.CreateCheckout"

	var lineItems []paymentprovider.LineItem
	for _, item := range items {
		if item.Quantity < 1 {
			continue
		}
		product, err := s.repo.ReadProduct(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				s.log.Info("skipping unknown product in checkout",
					slog.Int("product_id", item.ProductID))
				continue
			}
			return "", fmt.Errorf("%s: %w", op, err)
		}
		lineItems = append(lineItems, paymentprovider.LineItem{
			Name:        product.Title,
			Description: product.ShortDesc,
			UnitAmount:  product.UnitAmount(),
			Currency:    Currency,
			Quantity:    item.Quantity,
		})
	}
	if len(lineItems) == 0 {
		return "", ErrEmptyCart
	}

	sessionResp, err := s.providerClient.CreateCheckoutSession(paymentprovider.CreateCheckoutSessionRequest{
		LineItems:  lineItems,
		Mode:       "payment",
		SuccessURL: s.successURL,
		CancelURL:  s.cancelURL,
		Metadata: map[string]string{
			"user_uid": userUID,
		},
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return sessionResp.URL, nil
}

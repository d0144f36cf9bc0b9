// Package cart реализует серверную корзину пользователя.
//
// Корзина — отображение product id -> количество, хранится в Redis по ключу
// сессии пользователя и не переживает успешное оформление заказа. Неизвестные
// товары, оставшиеся в сохранённой корзине, при чтении молча пропускаются.
package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/video-storefront/internal/models"
)

// cartTTL — срок хранения брошенной корзины.
const cartTTL = 7 * 24 * time.Hour

// Cache описывает контракт хранилища корзин.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// ProductRepository описывает контракт чтения товаров для раскрытия корзины.
type ProductRepository interface {
	ReadProduct(ctx context.Context, id int) (*models.Product, error)
}

// CartService реализует операции над корзиной.
type CartService struct {
	cache Cache
	repo  ProductRepository
	log   *slog.Logger
}

// NewCartService создает новый экземпляр CartService.
func NewCartService(cache Cache, repo ProductRepository, log *slog.Logger) *CartService {
	return &CartService{cache: cache, repo: repo, log: log}
}

func cartKey(userUID string) string {
	return "cart:" + userUID
}

func (s *CartService) load(ctx context.Context, userUID string) (map[string]int, error) {
	items := make(map[string]int)
	if _, err := s.cache.Get(ctx, cartKey(userUID), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Add увеличивает количество товара в корзине на единицу.
func (s *CartService) Add(ctx context.Context, userUID string, productID int) error {
	const op = "cart.Add"
	items, err := s.load(ctx, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	items[strconv.Itoa(productID)]++
	if err := s.cache.Set(ctx, cartKey(userUID), items, cartTTL); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Remove убирает товар из корзины целиком.
func (s *CartService) Remove(ctx context.Context, userUID string, productID int) error {
	const op = "cart.Remove"
	items, err := s.load(ctx, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	delete(items, strconv.Itoa(productID))
	if err := s.cache.Set(ctx, cartKey(userUID), items, cartTTL); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Get раскрывает корзину: подтягивает товары, считает подытоги и общую сумму.
// Товары, которых больше нет в каталоге, пропускаются.
func (s *CartService) Get(ctx context.Context, userUID string) (*models.Cart, error) {
	const op = "cart.Get"
	items, err := s.load(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := &models.Cart{Total: decimal.Zero}
	for key, qty := range items {
		productID, err := strconv.Atoi(key)
		if err != nil || qty < 1 {
			continue
		}
		product, err := s.repo.ReadProduct(ctx, productID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		subtotal := product.Price.Mul(decimal.NewFromInt(int64(qty)))
		result.Items = append(result.Items, models.ResolvedCartItem{
			Product:  *product,
			Quantity: qty,
			Subtotal: subtotal,
		})
		result.Total = result.Total.Add(subtotal)
	}
	return result, nil
}

// Items возвращает сырое содержимое корзины в виде списка позиций
// для передачи в оформление заказа.
func (s *CartService) Items(ctx context.Context, userUID string) ([]models.CartItem, error) {
	const op = "cart.Items"
	items, err := s.load(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var result []models.CartItem
	for key, qty := range items {
		productID, err := strconv.Atoi(key)
		if err != nil || qty < 1 {
			continue
		}
		result = append(result, models.CartItem{ProductID: productID, Quantity: qty})
	}
	return result, nil
}

// Clear удаляет корзину пользователя. Вызывается после возврата
// с успешной оплаты.
func (s *CartService) Clear(ctx context.Context, userUID string) error {
	const op = "cart.Clear"
	if err := s.cache.Invalidate(ctx, cartKey(userUID)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

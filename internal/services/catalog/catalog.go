// Package catalog содержит read-only логику каталога товаров:
// листинг опубликованных товаров, карточку товара, витрину продавца
// и список категорий. Бизнес-логики сверх фильтрации здесь нет.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/video-storefront/internal/models"
)

// ErrNotFound возвращается, когда товар или продавец не существует.
var ErrNotFound = errors.New("not found")

// ProductRepository описывает контракт чтения каталога из хранилища.
type ProductRepository interface {
	ReadProduct(ctx context.Context, id int) (*models.Product, error)
	ListPublishedProducts(ctx context.Context, category string, limit, offset int) ([]*models.Product, error)
	ListProductsBySeller(ctx context.Context, sellerUID string) ([]*models.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// CatalogService реализует операции чтения каталога.
type CatalogService struct {
	repo ProductRepository
	log  *slog.Logger
}

// NewCatalogService создает новый экземпляр CatalogService.
func NewCatalogService(repo ProductRepository, log *slog.Logger) *CatalogService {
	return &CatalogService{repo: repo, log: log}
}

// ListPublished возвращает опубликованные товары, опционально по категории.
func (s *CatalogService) ListPublished(ctx context.Context, category string, limit, offset int) ([]*models.Product, error) {
	const op = "catalog.ListPublished"
	result, err := s.repo.ListPublishedProducts(ctx, category, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetProduct возвращает товар по ID или ErrNotFound.
func (s *CatalogService) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	const op = "catalog.GetProduct"
	product, err := s.repo.ReadProduct(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return product, nil
}

// ListBySeller возвращает опубликованные товары продавца по его username.
// Если продавец не существует, возвращается ErrNotFound.
func (s *CatalogService) ListBySeller(ctx context.Context, sellerUsername string) ([]*models.Product, error) {
	const op = "catalog.ListBySeller"
	seller, err := s.repo.GetUserByUsername(ctx, sellerUsername)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	result, err := s.repo.ListProductsBySeller(ctx, seller.UID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListCategories возвращает список категорий опубликованных товаров.
func (s *CatalogService) ListCategories(ctx context.Context) ([]string, error) {
	const op = "catalog.ListCategories"
	result, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

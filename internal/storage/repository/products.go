package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/video-storefront/internal/models"
)

// CreateProduct вставляет новый товар и возвращает его ID.
func (s *Storage) CreateProduct(ctx context.Context, product models.Product) (int, error) {
	const op = "storage.CreateProduct"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO products (seller_uid, title, short_desc, full_desc,
			      price, category, filename, published)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		product.SellerUID, product.Title, product.ShortDesc, product.FullDesc,
		product.Price, product.Category, product.Filename, product.Published).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadProduct возвращает товар по его ID вместе с именем продавца.
func (s *Storage) ReadProduct(ctx context.Context, id int) (*models.Product, error) {
	const op = "storage.ReadProduct"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT p.id, p.seller_uid, u.username, p.title, p.short_desc, p.full_desc,
			      p.price, p.category, p.filename, p.published, p.created_at
			  FROM products p
			  LEFT JOIN users u ON p.seller_uid = u.uid
			  WHERE p.id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Product
	if err := row.Scan(&result.ID, &result.SellerUID, &result.SellerUsername,
		&result.Title, &result.ShortDesc, &result.FullDesc, &result.Price,
		&result.Category, &result.Filename, &result.Published, &result.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ListPublishedProducts возвращает опубликованные товары каталога с пагинацией.
// Пустая категория означает выборку по всем категориям.
func (s *Storage) ListPublishedProducts(ctx context.Context, category string, limit, offset int) ([]*models.Product, error) {
	const op = "storage.ListPublishedProducts"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT p.id, p.seller_uid, u.username, p.title, p.short_desc, p.full_desc,
			      p.price, p.category, p.filename, p.published, p.created_at
			  FROM products p
			  LEFT JOIN users u ON p.seller_uid = u.uid
			  WHERE p.published = true
			    AND ($1 = '' OR p.category = $1)
			  ORDER BY p.id
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, category, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Product
	for rows.Next() {
		var item models.Product
		if err := rows.Scan(&item.ID, &item.SellerUID, &item.SellerUsername,
			&item.Title, &item.ShortDesc, &item.FullDesc, &item.Price,
			&item.Category, &item.Filename, &item.Published, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListProductsBySeller возвращает опубликованные товары конкретного продавца.
func (s *Storage) ListProductsBySeller(ctx context.Context, sellerUID string) ([]*models.Product, error) {
	const op = "storage.ListProductsBySeller"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT p.id, p.seller_uid, u.username, p.title, p.short_desc, p.full_desc,
			      p.price, p.category, p.filename, p.published, p.created_at
			  FROM products p
			  LEFT JOIN users u ON p.seller_uid = u.uid
			  WHERE p.seller_uid = $1
			    AND p.published = true
			  ORDER BY p.id`
	rows, err := s.DB.QueryContext(ctx, query, sellerUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Product
	for rows.Next() {
		var item models.Product
		if err := rows.Scan(&item.ID, &item.SellerUID, &item.SellerUsername,
			&item.Title, &item.ShortDesc, &item.FullDesc, &item.Price,
			&item.Category, &item.Filename, &item.Published, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListCategories возвращает список категорий, встречающихся среди опубликованных товаров.
func (s *Storage) ListCategories(ctx context.Context) ([]string, error) {
	const op = "storage.ListCategories"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT DISTINCT category FROM products WHERE published = true ORDER BY category`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, category)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

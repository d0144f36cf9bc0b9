package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/video-storefront/internal/models"
)

// SaveOrder сохраняет запись об оплаченной checkout-сессии.
//
// Вставка идемпотентна по checkout_session_id: повторная доставка одного и
// того же подтверждения платежа (провайдер гарантирует только at-least-once)
// не создаёт вторую строку. Возвращает ID заказа и признак того, была ли
// строка создана этим вызовом.
func (s *Storage) SaveOrder(ctx context.Context, order models.Order) (int, bool, error) {
	const op = "storage.SaveOrder"
	select {
	case <-ctx.Done():
		return 0, false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO orders (checkout_session_id, amount_total, currency, paid)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (checkout_session_id) DO NOTHING
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		order.CheckoutSessionID, order.AmountTotal, order.Currency, order.Paid).Scan(&newID)
	if err == sql.ErrNoRows {
		// Конфликт: заказ уже записан более ранней доставкой webhook
		existing, ferr := s.FindOrderBySessionID(ctx, order.CheckoutSessionID)
		if ferr != nil {
			return 0, false, fmt.Errorf("%s: %w", op, ferr)
		}
		return existing.ID, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", op, err)
	}
	return newID, true, nil
}

// FindOrderBySessionID возвращает заказ по идентификатору checkout-сессии.
func (s *Storage) FindOrderBySessionID(ctx context.Context, sessionID string) (*models.Order, error) {
	const op = "storage.FindOrderBySessionID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, checkout_session_id, amount_total, currency, paid, created_at
			  FROM orders
			  WHERE checkout_session_id = $1`
	var result models.Order
	row := s.DB.QueryRowContext(ctx, query, sessionID)
	if err := row.Scan(&result.ID, &result.CheckoutSessionID, &result.AmountTotal,
		&result.Currency, &result.Paid, &result.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ListOrders возвращает заказы с пагинацией, новые первыми.
func (s *Storage) ListOrders(ctx context.Context, limit, offset int) ([]*models.Order, error) {
	const op = "storage.ListOrders"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, checkout_session_id, amount_total, currency, paid, created_at
			  FROM orders
			  ORDER BY id DESC
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Order
	for rows.Next() {
		var item models.Order
		if err := rows.Scan(&item.ID, &item.CheckoutSessionID, &item.AmountTotal,
			&item.Currency, &item.Paid, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

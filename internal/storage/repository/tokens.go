package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/video-storefront/internal/models"
)

// SaveDownloadToken сохраняет аудиторскую запись о выданном токене скачивания.
// Запись никогда не читается для принятия решения о доступе.
func (s *Storage) SaveDownloadToken(ctx context.Context, productID int, userUID, token string) (int, error) {
	const op = "storage.SaveDownloadToken"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO download_tokens (product_id, user_uid, token)
			  VALUES ($1, $2, $3)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query, productID, userUID, token).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListDownloadTokens возвращает аудиторские записи токенов пользователя.
func (s *Storage) ListDownloadTokens(ctx context.Context, userUID string) ([]*models.DownloadToken, error) {
	const op = "storage.ListDownloadTokens"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, product_id, user_uid, token, created_at
			  FROM download_tokens
			  WHERE user_uid = $1
			  ORDER BY id DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.DownloadToken
	for rows.Next() {
		var dt models.DownloadToken
		if err := rows.Scan(&dt.ID, &dt.ProductID, &dt.UserUID, &dt.Token, &dt.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &dt)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

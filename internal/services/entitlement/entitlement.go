// Package entitlement выдаёт и проверяет подписанные токены скачивания.
//
// Выдача токена сейчас требует только аутентифицированной сессии, а не
// подтверждённой покупки конкретного товара. Это осознанно сохранённый
// пробел политики: связь "оплачено -> можно скачивать" в системе не
// реализована, и выдумывать её здесь нельзя.
package entitlement

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/video-storefront/internal/lib/dltoken"
	"github.com/magabrotheeeer/video-storefront/internal/lib/sl"
	"github.com/magabrotheeeer/video-storefront/internal/models"
)

// ErrProductNotFound возвращается при попытке выдать токен на несуществующий товар.
var ErrProductNotFound = errors.New("product not found")

// Repository описывает контракт хранилища для аудита и проверки товара.
type Repository interface {
	SaveDownloadToken(ctx context.Context, productID int, userUID, token string) (int, error)
	ReadProduct(ctx context.Context, id int) (*models.Product, error)
}

// EntitlementService выпускает токены скачивания и ведёт их аудит.
type EntitlementService struct {
	maker *dltoken.Maker
	repo  Repository
	log   *slog.Logger
}

// NewEntitlementService создает новый экземпляр EntitlementService.
func NewEntitlementService(maker *dltoken.Maker, repo Repository, log *slog.Logger) *EntitlementService {
	return &EntitlementService{maker: maker, repo: repo, log: log}
}

// Issue выпускает подписанный токен для пары (товар, пользователь)
// и сохраняет аудиторскую запись. Аудит — побочный эффект: его отказ
// не отменяет уже выданный токен, но логируется.
func (s *EntitlementService) Issue(ctx context.Context, productID int, userUID string) (string, error) {
	const op = "entitlement.Issue"

	if _, err := s.repo.ReadProduct(ctx, productID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrProductNotFound
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.maker.Issue(productID, userUID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.repo.SaveDownloadToken(ctx, productID, userUID, token); err != nil {
		s.log.Error("failed to save download token audit record", sl.Err(err))
	}
	return token, nil
}

// Verify проверяет подпись и срок действия токена, возвращая зашитую пару
// (товар, пользователь). Обращений к базе данных не выполняется.
func (s *EntitlementService) Verify(token string) (*dltoken.Payload, error) {
	return s.maker.Verify(token)
}

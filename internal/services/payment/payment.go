// Package payment обрабатывает подтверждения оплаты от платёжного провайдера.
package payment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/video-storefront/internal/lib/sl"
	"github.com/magabrotheeeer/video-storefront/internal/models"
	"github.com/magabrotheeeer/video-storefront/internal/rabbitmq"
)

// OrderRepository описывает контракт записи заказов.
type OrderRepository interface {
	// SaveOrder идемпотентен по checkout_session_id.
	SaveOrder(ctx context.Context, order models.Order) (int, bool, error)
}

// EventPublisher публикует события об оплаченных заказах в очередь.
type EventPublisher interface {
	Publish(exchange, routingKey string, message any) error
}

// PaymentService создаёт заказы по подтверждённым платежам.
type PaymentService struct {
	repo      OrderRepository
	publisher EventPublisher
	log       *slog.Logger
}

// New создает новый экземпляр PaymentService. publisher может быть nil,
// если отправка квитанций не настроена.
func New(repo OrderRepository, publisher EventPublisher, log *slog.Logger) *PaymentService {
	return &PaymentService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// ProcessCompletedSession записывает заказ по завершённой checkout-сессии.
//
// Провайдер доставляет уведомления как минимум один раз, поэтому запись
// идемпотентна: повторная доставка того же session id не создаёт второй
// заказ и не публикует второе событие. Заказ не привязывается к товарам:
// уведомление несёт только сессию и сумму.
func (s *PaymentService) ProcessCompletedSession(ctx context.Context, event *models.WebhookEvent) error {
	const op = "payment.ProcessCompletedSession"

	order := models.Order{
		CheckoutSessionID: event.Object.ID,
		AmountTotal:       event.Object.AmountTotal,
		Currency:          event.Object.Currency,
		Paid:              true,
	}
	orderID, created, err := s.repo.SaveOrder(ctx, order)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !created {
		s.log.Info("duplicate webhook delivery, order already recorded",
			slog.String("checkout_session_id", event.Object.ID),
			slog.Int("order_id", orderID))
		return nil
	}

	s.log.Info("order recorded",
		slog.Int("order_id", orderID),
		slog.String("checkout_session_id", event.Object.ID))

	if s.publisher != nil && event.Object.CustomerEmail != "" {
		orderEvent := models.OrderEvent{
			CheckoutSessionID: event.Object.ID,
			AmountTotal:       event.Object.AmountTotal,
			Currency:          event.Object.Currency,
			Email:             event.Object.CustomerEmail,
			Username:          event.Object.Metadata["user_uid"],
		}
		if err := s.publisher.Publish(rabbitmq.PaymentsExchange, rabbitmq.CompletedKey, orderEvent); err != nil {
			// Квитанция вторична, заказ уже записан
			s.log.Error("failed to publish order event", sl.Err(err))
		}
	}
	return nil
}

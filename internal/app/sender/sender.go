// Package sender собирает сервис отправки квитанций: подключение к брокеру
// и потребитель очереди оплаченных заказов.
package sender

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/video-storefront/internal/config"
	"github.com/magabrotheeeer/video-storefront/internal/lib/smtp"
	"github.com/magabrotheeeer/video-storefront/internal/rabbitmq"
	senderservice "github.com/magabrotheeeer/video-storefront/internal/services/sender"
)

// App инкапсулирует потребителя очереди квитанций.
type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.SenderService
	logger        *slog.Logger
}

// New подключается к брокеру, объявляет топологию очередей и собирает сервис.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitConnection, cfg.ConnectRetries, cfg.ConnectDelay)
	if err != nil {
		return nil, err
	}

	ch, err := rabbitmq.SetupChannel(conn)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	newTransport := smtp.NewTransport(cfg, logger)
	senderService := senderservice.NewSenderService(logger, newTransport)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		logger:        logger,
	}, nil
}

// Run запускает потребителя очереди и блокируется до отмены контекста.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.ch, rabbitmq.CompletedQueue, a.senderService.SendOrderReceipt)
	if err != nil {
		a.logger.Error("failed to start payments.completed consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("Sender service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}

	return nil
}

// Package sender отправляет покупателям квитанции об оплаченных заказах.
package sender

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/video-storefront/internal/lib/sl"
	"github.com/magabrotheeeer/video-storefront/internal/lib/smtp"
	"github.com/magabrotheeeer/video-storefront/internal/models"
)

// SenderService формирует и отправляет письма-квитанции.
type SenderService struct {
	transport smtp.TransportInterface
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(log *slog.Logger, transport smtp.TransportInterface) *SenderService {
	return &SenderService{
		transport: transport,
		log:       log,
	}
}

// SendOrderReceipt отправляет квитанцию по событию об оплаченном заказе.
// body — JSON-сообщение из очереди payments.completed.
func (s *SenderService) SendOrderReceipt(body []byte) error {
	var event models.OrderEvent
	if err := json.Unmarshal(body, &event); err != nil {
		s.log.Error("failed to unmarshal order event", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	amount := decimal.NewFromInt(event.AmountTotal).Div(decimal.NewFromInt(100))
	to := []string{event.Email}
	subject := "Квитанция об оплате заказа"
	bodyText := fmt.Sprintf("Здравствуйте!\n\nВаш платёж на сумму %s %s принят.\nНомер сессии оплаты: %s.\n\nСпасибо за покупку.",
		amount.StringFixed(2), strings.ToUpper(event.Currency), event.CheckoutSessionID)

	return s.sendEmail(to, subject, bodyText)
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() {
		if quitErr := client.Quit(); quitErr != nil {
			s.log.Error("failed to quit smtp client", sl.Err(quitErr))
		}
	}()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		return fmt.Errorf("smtp mail failed: %w", err)
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("smtp rcpt failed: %w", err)
		}
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data failed: %w", err)
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		_ = w.Close()
		return fmt.Errorf("smtp write failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close failed: %w", err)
	}
	return nil
}

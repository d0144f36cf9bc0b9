// Package paymentwebhook реализует HTTP-обработчик уведомлений платёжного провайдера.
//
// Подлинность уведомления проверяется HMAC-SHA256 подписью сырого тела запроса
// в заголовке X-Api-Signature. Работа без подписи возможна только при явном
// включении allow_unverified_webhooks в конфигурации.
package paymentwebhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/video-storefront/internal/http/response"
	"github.com/magabrotheeeer/video-storefront/internal/lib/sl"
	"github.com/magabrotheeeer/video-storefront/internal/models"
)

// SignatureHeader — заголовок с base64 HMAC-SHA256 подписью тела запроса.
const SignatureHeader = "X-Api-Signature"

// maxBodySize ограничивает размер тела уведомления.
const maxBodySize = 1 << 20

// Service описывает интерфейс обработки подтверждённой оплаты.
type Service interface {
	ProcessCompletedSession(ctx context.Context, event *models.WebhookEvent) error
}

// Handler обрабатывает уведомления платёжного провайдера.
type Handler struct {
	log             *slog.Logger
	service         Service
	webhookSecret   string
	allowUnverified bool
}

// New создает новый Handler. При пустом webhookSecret уведомления принимаются
// без проверки подписи только если allowUnverified установлен.
func New(log *slog.Logger, service Service, webhookSecret string, allowUnverified bool) *Handler {
	return &Handler{
		log:             log,
		service:         service,
		webhookSecret:   webhookSecret,
		allowUnverified: allowUnverified,
	}
}

// verifySignature сверяет подпись сырого тела с заголовком запроса.
func (h *Handler) verifySignature(body []byte, header string) bool {
	mac := hmac.New(sha256.New, []byte(h.webhookSecret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(header))
}

// ServeHTTP godoc
// @Summary Уведомление платёжного провайдера
// @Description Принимает подписанное уведомление о завершении checkout-сессии и записывает заказ.
// @Tags Payment
// @Accept  json
// @Produce  json
// @Param X-Api-Signature header string false "HMAC-SHA256 подпись тела (base64)"
// @Success 200 {object} response.Response "Уведомление принято"
// @Failure 400 {object} response.ErrorResponse "Некорректное тело или неверная подпись"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /payments/webhook [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.webhook"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		log.Error("failed to read webhook body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to read request body"))
		return
	}

	if h.webhookSecret != "" {
		if !h.verifySignature(body, r.Header.Get(SignatureHeader)) {
			log.Error("webhook signature mismatch")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid signature"))
			return
		}
	} else if !h.allowUnverified {
		log.Error("webhook secret is not configured and unverified webhooks are disabled")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("webhook verification is not configured"))
		return
	}

	var event models.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		log.Error("failed to decode webhook body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode request body"))
		return
	}

	if event.Event != "checkout.session.completed" || event.Object.PaymentStatus != "paid" {
		log.Info("ignoring webhook event",
			slog.String("event", event.Event),
			slog.String("payment_status", event.Object.PaymentStatus))
		render.JSON(w, r, response.OK())
		return
	}
	if event.Object.ID == "" {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing checkout session id"))
		return
	}

	if err := h.service.ProcessCompletedSession(r.Context(), &event); err != nil {
		log.Error("failed to process completed session", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not process payment notification"))
		return
	}

	render.JSON(w, r, response.OK())
}

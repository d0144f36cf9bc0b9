package models

// WebhookEvent — полезная нагрузка уведомления платёжного провайдера.
type WebhookEvent struct {
	Event  string `json:"event"` // например "checkout.session.completed"
	Object struct {
		ID            string            `json:"id"`             // идентификатор checkout-сессии
		PaymentStatus string            `json:"payment_status"` // статус оплаты
		AmountTotal   int64             `json:"amount_total"`   // сумма в минорных единицах
		Currency      string            `json:"currency"`       // валюта
		CustomerEmail string            `json:"customer_email"` // почта покупателя
		Metadata      map[string]string `json:"metadata"`       // user_uid и др.
	} `json:"object"`
}

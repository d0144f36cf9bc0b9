package models

import "time"

// Order представляет запись о завершённом платеже.
// Запись создаётся только обработчиком webhook платёжного провайдера
// и никогда не изменяется. Заказ не ссылается на конкретные товары:
// провайдер сообщает только идентификатор checkout-сессии и сумму.
type Order struct {
	ID                int       // Идентификатор заказа
	CheckoutSessionID string    // Идентификатор checkout-сессии во внешнем провайдере
	AmountTotal       int64     // Сумма в минорных единицах валюты
	Currency          string    // Валюта платежа
	Paid              bool      // Флаг успешной оплаты
	CreatedAt         time.Time // Дата создания записи
}

// OrderEvent — событие об оплаченном заказе, публикуемое в очередь
// для отправки квитанции покупателю.
type OrderEvent struct {
	CheckoutSessionID string `json:"checkout_session_id"`
	AmountTotal       int64  `json:"amount_total"`
	Currency          string `json:"currency"`
	Email             string `json:"email"`
	Username          string `json:"username"`
}

// Package paymentprovider реализует HTTP-клиент внешнего платёжного провайдера.
// Провайдер полностью владеет платёжным UI: сервис только создаёт
// checkout-сессию и перенаправляет покупателя по полученному URL.
// Карточные данные через этот сервис не проходят.
package paymentprovider

// LineItem — позиция checkout-сессии. Сумма указывается в минорных
// единицах валюты (копейки/центы) за единицу товара.
type LineItem struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	UnitAmount  int64  `json:"unit_amount"`
	Currency    string `json:"currency"`
	Quantity    int    `json:"quantity"`
}

// CreateCheckoutSessionRequest — запрос на создание checkout-сессии.
type CreateCheckoutSessionRequest struct {
	LineItems  []LineItem        `json:"line_items"`
	Mode       string            `json:"mode"`
	SuccessURL string            `json:"success_url"`
	CancelURL  string            `json:"cancel_url"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// CreateCheckoutSessionResponse — ответ провайдера с идентификатором
// сессии и URL для перенаправления покупателя.
type CreateCheckoutSessionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

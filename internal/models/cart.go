package models

import "github.com/shopspring/decimal"

// CartItem — позиция корзины: ссылка на товар и количество.
type CartItem struct {
	ProductID int `json:"product_id" validate:"required,gt=0"`
	Quantity  int `json:"quantity" validate:"required,gte=1"`
}

// ResolvedCartItem — позиция корзины с подтянутым товаром и подытогом.
type ResolvedCartItem struct {
	Product  Product         `json:"product"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// Cart — корзина пользователя, хранится на сервере по ключу сессии.
type Cart struct {
	Items []ResolvedCartItem `json:"items"`
	Total decimal.Decimal    `json:"total"`
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product представляет товар каталога, принадлежащий продавцу.
// Цена хранится как decimal, без привязки к конкретной валюте.
type Product struct {
	ID             int             // Идентификатор товара
	SellerUID      string          // UID продавца (владельца)
	SellerUsername string          // Имя продавца, заполняется join-ом при чтении каталога
	Title          string          // Название товара
	ShortDesc      string          // Краткое описание
	FullDesc       string          // Полное описание
	Price          decimal.Decimal // Цена за единицу
	Category       string          // Категория каталога
	Filename       string          // Имя файла в медиа-хранилище
	Published      bool            // Опубликован ли товар в каталоге
	CreatedAt      time.Time       // Дата создания
}

// UnitAmount возвращает цену товара в минорных единицах валюты
// (копейки/центы): round(price * 100).
func (p Product) UnitAmount() int64 {
	return p.Price.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// DummyProduct используется для приёма данных формы загрузки товара,
// прежде чем конвертировать их в Product. Цена приходит строкой,
// чтобы её можно было валидировать и парсить вручную.
type DummyProduct struct {
	Title     string `json:"title" validate:"required,min=1,max=200"`
	ShortDesc string `json:"short_desc" validate:"required,max=500"`
	FullDesc  string `json:"full_desc"`
	Price     string `json:"price" validate:"required"`
	Category  string `json:"category" validate:"required,max=100"`
	Published bool   `json:"published"`
}

// Package models содержит доменные структуры витрины видеотоваров:
// пользователей, товары, заказы и токены скачивания.
// Структуры используются в бизнес-логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID          string    // Уникальный идентификатор пользователя
	Email        string    // Электронная почта
	Username     string    // Имя пользователя (уникальное)
	PasswordHash string    // Хэш пароля пользователя
	Role         string    // Роль пользователя, user или seller
	CreatedAt    time.Time // Дата регистрации
}

// Роли пользователей.
const (
	RoleUser   = "user"
	RoleSeller = "seller"
)

package models

import "time"

// DownloadToken — аудиторская запись о выданном токене скачивания.
// Сам подписанный токен самодостаточен (подпись + встроенное время выдачи),
// строка в базе никогда не используется для решения о доступе,
// только для учёта.
type DownloadToken struct {
	ID        int       // Идентификатор записи
	ProductID int       // Товар, на который выдан токен
	UserUID   string    // Пользователь, которому выдан токен
	Token     string    // Подписанный токен целиком
	CreatedAt time.Time // Время выдачи
}

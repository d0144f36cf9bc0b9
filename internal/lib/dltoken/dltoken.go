// Package dltoken реализует подписанные самодостаточные токены скачивания.
//
// Токен связывает товар и пользователя и несёт встроенное время выдачи,
// поэтому проверка не требует обращения к базе данных: подпись HMAC-SHA256
// покрывает полезную нагрузку вместе с отметкой времени, а срок действия
// проверяется по wall-clock. Формат: base64url(payload) + "." + base64url(sig).
package dltoken

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Ошибки проверки токена. ErrExpired возвращается только при корректной
// подписи: подделанный токен никогда не сообщается как просроченный.
var (
	ErrInvalid = errors.New("token invalid")
	ErrExpired = errors.New("token expired")
)

// Payload — данные, зашитые в токен.
type Payload struct {
	ProductID int    `json:"product_id"`
	UserUID   string `json:"user_uid"`
	IssuedAt  int64  `json:"issued_at"` // unix-время выдачи, подписывается вместе с остальным
}

// Maker выпускает и проверяет токены скачивания на основе серверного секрета
// и окна действия (по умолчанию 24 часа).
type Maker struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewMaker создаёт новый Maker с заданным секретом и сроком действия токена.
func NewMaker(secret string, ttl time.Duration) *Maker {
	return &Maker{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue формирует подписанный токен для пары (товар, пользователь).
func (m *Maker) Issue(productID int, userUID string) (string, error) {
	const op = "dltoken.Issue"
	payload := Payload{
		ProductID: productID,
		UserUID:   userUID,
		IssuedAt:  m.now().Unix(),
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	encoded := base64.RawURLEncoding.EncodeToString(raw)
	return encoded + "." + m.sign(encoded), nil
}

// Verify проверяет подпись и срок действия токена.
//
// Возвращает ErrInvalid при повреждённой структуре или несовпадении подписи,
// ErrExpired — если подпись верна, но время выдачи вышло за пределы окна.
func (m *Maker) Verify(token string) (*Payload, error) {
	encoded, sig, ok := strings.Cut(token, ".")
	if !ok || encoded == "" || sig == "" {
		return nil, ErrInvalid
	}
	if !hmac.Equal([]byte(m.sign(encoded)), []byte(sig)) {
		return nil, ErrInvalid
	}
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalid
	}
	var payload Payload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, ErrInvalid
	}
	issued := time.Unix(payload.IssuedAt, 0)
	if m.now().After(issued.Add(m.ttl)) {
		return nil, ErrExpired
	}
	return &payload, nil
}

func (m *Maker) sign(encoded string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(encoded))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// models содержит доменные сущности contacts-api.
// Эти типы используются слоями бизнес-логики, хранилища и транспорта.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Subscription — тариф подписки пользователя.
type Subscription string

const (
	SubscriptionStarter  Subscription = "starter"
	SubscriptionPro      Subscription = "pro"
	SubscriptionBusiness Subscription = "business"
)

// ParseSubscription проверяет и нормализует строковое значение тарифа.
// Возвращает false, если значение не входит в допустимый набор.
func ParseSubscription(s string) (Subscription, bool) {
	switch Subscription(s) {
	case SubscriptionStarter, SubscriptionPro, SubscriptionBusiness:
		return Subscription(s), true
	default:
		return "", false
	}
}

// User — модель пользователя в системе.
//
// Token хранит текущий сессионный JWT (nil — пользователь разлогинен).
// VerificationToken — одноразовый токен подтверждения e-mail,
// обнуляется после успешной верификации.
type User struct {
	ID                uuid.UUID
	Email             string
	PasswordHash      string
	Subscription      Subscription
	AvatarURL         string
	Verify            bool
	VerificationToken *string
	Token             *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Identity — неизменяемый снимок аутентифицированного пользователя,
// который кладётся в контекст запроса после проверки сессионного токена.
type Identity struct {
	ID           uuid.UUID
	Email        string
	Subscription Subscription
}

// IdentityOf строит снимок идентичности из записи пользователя.
func IdentityOf(u *User) Identity {
	return Identity{
		ID:           u.ID,
		Email:        u.Email,
		Subscription: u.Subscription,
	}
}

// service содержит бизнес-логику contacts-api:
// регистрацию/аутентификацию пользователей, выпуск/проверку сессионных
// токенов, владельческий CRUD контактов и работу с внешними зависимостями
// (хранилище, почта, аватары) через интерфейсы.
//
// Основные аспекты:
//   - Пакет не хранит состояние запроса внутри Service; экземпляр Service
//     безопасен для конкурентного использования из разных горутин при условии,
//     что переданные зависимости потокобезопасны.
//   - Ошибки возвращаются сентинелами и далее маппятся HTTP-слоем
//     (см. комментарии к переменным ошибок ниже).
package service

import (
	"errors"

	"github.com/pribylovaa/go-contacts-api/internal/cache"
	"github.com/pribylovaa/go-contacts-api/internal/config"
	"github.com/pribylovaa/go-contacts-api/internal/mail"
	"github.com/pribylovaa/go-contacts-api/internal/storage"
)

var (
	// ErrInvalidCredentials — пара логин/пароль неверна или пользователь не найден.
	// Сообщение нарочно одно на оба случая. HTTP 401.
	ErrInvalidCredentials = errors.New("email or password is wrong")

	// ErrInvalidToken — сессионный токен некорректен по формату/подписи,
	// не совпадает с сохранённым или пользователь больше не существует. HTTP 401.
	ErrInvalidToken = errors.New("not authorized")

	// ErrTokenExpired — срок действия сессионного токена истёк. HTTP 401.
	ErrTokenExpired = errors.New("token expired")

	// ErrEmailNotVerified — вход запрещён до подтверждения e-mail. HTTP 401.
	ErrEmailNotVerified = errors.New("email is not verified")

	// ErrEmailTaken — e-mail уже занят другим пользователем. HTTP 409.
	ErrEmailTaken = errors.New("email in use")

	// ErrAlreadyVerified — повторный запрос письма для подтверждённого e-mail. HTTP 400.
	ErrAlreadyVerified = errors.New("verification has already been passed")

	// ErrNotFound — сущность не существует или невидима вызывающему. HTTP 404.
	ErrNotFound = errors.New("not found")

	// ErrEmptyUpdate — пустое частичное обновление контакта. HTTP 400.
	ErrEmptyUpdate = errors.New("body must have at least one field")

	// ErrMissingFile — запрос смены аватара без файла. HTTP 400.
	ErrMissingFile = errors.New("avatar file is required")

	// ErrInvalidEmail — e-mail имеет некорректный формат. HTTP 400.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrWeakPassword — пароль короче минимально допустимого. HTTP 400.
	ErrWeakPassword = errors.New("password is too weak")

	// ErrInvalidArgument — прочие нарушения входных ограничений. HTTP 400.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Service описывает бизнес-логику contacts-api.
type Service struct {
	storage storage.Storage
	avatars storage.Avatars
	mailer  mail.Mailer
	cfg     config.Config
	rcache  cache.SessionCache // может быть nil, если кэш не сконфигурирован
}

// New создаёт новый экземпляр Service.
func New(st storage.Storage, avatars storage.Avatars, mailer mail.Mailer, cfg config.Config) *Service {
	return &Service{
		storage: st,
		avatars: avatars,
		mailer:  mailer,
		cfg:     cfg,
	}
}

// SetSessionCache устанавливает кэш сессий (опционально).
func (s *Service) SetSessionCache(c cache.SessionCache) {
	s.rcache = c
}

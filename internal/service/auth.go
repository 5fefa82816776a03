package service

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	netmail "net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pribylovaa/go-contacts-api/internal/models"
	logctx "github.com/pribylovaa/go-contacts-api/internal/pkg/log"
	"github.com/pribylovaa/go-contacts-api/internal/storage"
	"github.com/pribylovaa/go-contacts-api/pkg/redact"
)

// minPasswordLen — минимальная длина пароля при регистрации.
const minPasswordLen = 6

// RegisterUser регистрирует нового пользователя.
//
// Пароль хэшируется bcrypt и в исходном виде никуда не попадает; аватар по
// умолчанию детерминированно выводится из e-mail (gravatar). Вместе с записью
// выпускается одноразовый токен верификации, письмо с ним уходит синхронно,
// но под отдельным таймаутом из конфигурации.
func (s *Service) RegisterUser(ctx context.Context, email, password string) (*models.User, error) {
	const op = "service.auth.RegisterUser"

	lg := logctx.From(ctx)

	email, err := validateEmail(email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("%s: %w", op, ErrWeakPassword)
	}

	_, err = s.storage.UserByEmail(ctx, email)
	if err == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()
	verifyToken := uuid.NewString()
	user := &models.User{
		ID:                uuid.New(),
		Email:             email,
		PasswordHash:      hash,
		Subscription:      models.SubscriptionStarter,
		AvatarURL:         gravatarURL(email),
		Verify:            false,
		VerificationToken: &verifyToken,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.sendVerification(ctx, user.Email, verifyToken); err != nil {
		lg.Error("verification_email_failed",
			slog.String("op", op),
			slog.String("email", redact.Email(user.Email)),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// LoginUser выполняет вход по email+пароль и выпускает новый сессионный токен.
// Токен записывается в запись пользователя: предыдущая сессия при этом
// перестаёт действовать (одна активная сессия на пользователя).
func (s *Service) LoginUser(ctx context.Context, email, password string) (string, *models.User, error) {
	const op = "service.auth.LoginUser"

	lg := logctx.From(ctx)

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	user, err := s.storage.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	if !checkPassword(user.PasswordHash, password) {
		return "", nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if !user.Verify {
		return "", nil, fmt.Errorf("%s: %w", op, ErrEmailNotVerified)
	}

	token, err := s.generateSessionToken(ctx, user.ID, time.Now().UTC())
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	// Старая запись кэша снимается до записи нового токена: кэш подчинён
	// хранилищу, и при сбое кэша прежняя сессия не должна пережить перевыпуск.
	if err := s.dropSession(ctx, user.ID); err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.UpdateUserToken(ctx, user.ID, &token); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	user.Token = &token

	// Write-through в кэш сессий. Ошибка записи не фатальна: запись уже
	// удалена выше, промах кэша уводит AuthenticateToken на путь через БД.
	if s.rcache != nil {
		entry := sessionEntryOf(user, token)
		if err := s.rcache.Set(ctx, user.ID, entry, s.cfg.Auth.TokenTTL); err != nil {
			lg.Warn("session_cache_set_failed",
				slog.String("op", op),
				slog.String("err", err.Error()),
			)
		}
	}

	return token, user, nil
}

// LogoutUser сбрасывает текущий сессионный токен пользователя.
// Повторный logout не ошибка: токен просто остаётся NULL.
func (s *Service) LogoutUser(ctx context.Context, userID uuid.UUID) error {
	const op = "service.auth.LogoutUser"

	// Сначала кэш, потом хранилище. При сбое кэша logout завершается ошибкой,
	// и токен остаётся действующим в обоих местах: устаревшая запись кэша не
	// может аутентифицировать уже отозванный в хранилище токен.
	if err := s.dropSession(ctx, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.UpdateUserToken(ctx, userID, nil); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrInvalidToken)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// UpdateSubscription меняет тариф пользователя.
func (s *Service) UpdateSubscription(ctx context.Context, userID uuid.UUID, tier string) (*models.User, error) {
	const op = "service.auth.UpdateSubscription"

	sub, ok := models.ParseSubscription(tier)
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	// Снимок идентичности в кэше устареет — сбрасываем до записи, чтобы при
	// сбое кэша прежний тариф не пережил обновление.
	if err := s.dropSession(ctx, userID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.storage.UpdateUserSubscription(ctx, userID, sub)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// VerifyEmail подтверждает e-mail по одноразовому токену и гасит токен.
func (s *Service) VerifyEmail(ctx context.Context, verificationToken string) error {
	const op = "service.auth.VerifyEmail"

	user, err := s.storage.UserByVerificationToken(ctx, verificationToken)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.MarkUserVerified(ctx, user.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ResendVerifyEmail повторно отправляет письмо с НЕизрасходованным токеном.
func (s *Service) ResendVerifyEmail(ctx context.Context, email string) error {
	const op = "service.auth.ResendVerifyEmail"

	user, err := s.storage.UserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	if user.Verify || user.VerificationToken == nil {
		return fmt.Errorf("%s: %w", op, ErrAlreadyVerified)
	}

	if err := s.sendVerification(ctx, user.Email, *user.VerificationToken); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// dropSession удаляет запись кэша сессий. Вызывается строго до записи в
// хранилище, и ошибка кэша прерывает операцию целиком: иначе
// рассинхронизированная запись обслуживала бы быстрый путь AuthenticateToken
// до конца своего TTL.
func (s *Service) dropSession(ctx context.Context, userID uuid.UUID) error {
	if s.rcache == nil {
		return nil
	}

	return s.rcache.Delete(ctx, userID)
}

// sendVerification отправляет письмо верификации под почтовым таймаутом.
func (s *Service) sendVerification(ctx context.Context, email, token string) error {
	mailCtx := ctx
	if s.cfg.Timeouts.Mail > 0 {
		var cancel context.CancelFunc
		mailCtx, cancel = context.WithTimeout(ctx, s.cfg.Timeouts.Mail)
		defer cancel()
	}

	return s.mailer.SendVerificationEmail(mailCtx, email, token)
}

// hashPassword хэширует пароль с помощью bcrypt.
func hashPassword(password string) (string, error) {
	const op = "service.auth.hashPassword"

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return string(bytes), nil
}

// checkPassword сравнивает пароль с хэшем.
func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// validateEmail проверяет базовый формат email и обрезает пробелы снаружи.
// Регистр сохраняется: e-mail хранится так, как его ввёл пользователь.
func validateEmail(raw string) (string, error) {
	const op = "service.auth.validateEmail"

	email := strings.TrimSpace(raw)
	if email == "" {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	if _, err := netmail.ParseAddress(email); err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	return email, nil
}

// gravatarURL детерминированно выводит URL аватара по умолчанию из e-mail.
// Хэш по соглашению gravatar считается от e-mail в нижнем регистре.
func gravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return "https://www.gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?d=identicon"
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pribylovaa/go-contacts-api/internal/cache"
	"github.com/pribylovaa/go-contacts-api/internal/models"
	logctx "github.com/pribylovaa/go-contacts-api/internal/pkg/log"
	"github.com/pribylovaa/go-contacts-api/internal/storage"
)

// generateSessionToken генерирует сессионный токен (HS256, TTL из конфига).
func (s *Service) generateSessionToken(ctx context.Context, userID uuid.UUID, now time.Time) (string, error) {
	const op = "service.token.generateSessionToken"

	lg := logctx.From(ctx)

	claims := jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.Auth.TokenTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    s.cfg.Auth.Issuer,
		Subject:   userID.String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Auth.JWTSecret))
	if err != nil {
		lg.Error("session_token_sign_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return signed, nil
}

// validateSessionToken валидирует подпись/срок токена и извлекает ID пользователя.
func (s *Service) validateSessionToken(tokenStr string) (uuid.UUID, error) {
	const op = "service.token.validateSessionToken"

	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
			}

			return []byte(s.cfg.Auth.JWTSecret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(5*time.Second),
		jwt.WithIssuer(s.cfg.Auth.Issuer),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, fmt.Errorf("%s: %w", op, ErrTokenExpired)
		}

		return uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	uid, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return uid, nil
}

// AuthenticateToken разрешает идентичность вызывающего по сессионному токену.
//
// Помимо криптографической проверки токен сверяется с сохранённым в записи
// пользователя: logout или более поздний login делают предъявленный токен
// недействительным независимо от его собственного срока. Любая причина
// отказа схлопывается в ErrInvalidToken/ErrTokenExpired без деталей.
func (s *Service) AuthenticateToken(ctx context.Context, tokenStr string) (models.Identity, error) {
	const op = "service.token.AuthenticateToken"

	lg := logctx.From(ctx)

	uid, err := s.validateSessionToken(tokenStr)
	if err != nil {
		return models.Identity{}, fmt.Errorf("%s: %w", op, err)
	}

	// Быстрый путь: кэш сессий хранит действующий токен и снимок идентичности.
	if s.rcache != nil {
		entry, ok, cerr := s.rcache.Get(ctx, uid)
		if cerr != nil {
			lg.Warn("session_cache_get_failed",
				slog.String("op", op),
				slog.String("err", cerr.Error()),
			)
		} else if ok && entry.Token == tokenStr {
			return models.Identity{
				ID:           uid,
				Email:        entry.Email,
				Subscription: models.Subscription(entry.Subscription),
			}, nil
		}
	}

	user, err := s.storage.UserByID(ctx, uid)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Identity{}, fmt.Errorf("%s: %w", op, ErrInvalidToken)
		}

		return models.Identity{}, fmt.Errorf("%s: %w", op, err)
	}

	if user.Token == nil || *user.Token != tokenStr {
		return models.Identity{}, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return models.IdentityOf(user), nil
}

// sessionEntryOf строит запись кэша из пользователя и его нового токена.
func sessionEntryOf(user *models.User, token string) *cache.SessionEntry {
	return &cache.SessionEntry{
		Token:        token,
		Email:        user.Email,
		Subscription: string(user.Subscription),
	}
}

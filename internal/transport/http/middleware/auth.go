package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/pribylovaa/go-contacts-api/internal/models"
	"github.com/pribylovaa/go-contacts-api/internal/service"
	"github.com/pribylovaa/go-contacts-api/internal/transport/http/httperr"
)

type identityKey struct{}

// Authenticator разрешает идентичность по сессионному токену.
// Контракт реализует service.Service.
type Authenticator interface {
	AuthenticateToken(ctx context.Context, token string) (models.Identity, error)
}

// Authenticate защищает поддерево маршрутов: извлекает Bearer-токен,
// проверяет его через Authenticator и кладёт в контекст неизменяемый снимок
// идентичности. Отсутствующий/битый заголовок и любая причина отказа в
// проверке дают одинаковый 401 без деталей.
func Authenticate(auth Authenticator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				httperr.WriteError(w, r, fmt.Errorf("authenticate: %w", service.ErrInvalidToken))
				return
			}

			identity, err := auth.AuthenticateToken(r.Context(), token)
			if err != nil {
				httperr.WriteError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey{}, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken разбирает заголовок Authorization схемы Bearer.
func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "

	if !strings.HasPrefix(header, prefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(prefix):])
	if token == "" {
		return "", false
	}

	return token, true
}

// IdentityFrom достаёт идентичность вызывающего из контекста запроса.
func IdentityFrom(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(models.Identity)
	return identity, ok
}

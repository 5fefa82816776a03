package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pribylovaa/go-contacts-api/internal/models"
	"github.com/pribylovaa/go-contacts-api/internal/service"
	"github.com/pribylovaa/go-contacts-api/internal/transport/http/httperr"
	"github.com/pribylovaa/go-contacts-api/internal/transport/http/middleware"
)

// Handlers агрегирует зависимости HTTP-хендлеров.
type Handlers struct {
	svc     *service.Service
	tempDir string // каталог спула multipart-загрузок
}

func New(svc *service.Service, tempDir string) *Handlers {
	return &Handlers{svc: svc, tempDir: tempDir}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через httperr.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}

// errInvalidBody — локальная ошибка парсинга тела -> 400.
func errInvalidBody() error {
	return fmt.Errorf("handlers: %w", service.ErrInvalidArgument)
}

// callerIdentity достаёт идентичность из контекста; её отсутствие на
// защищённом маршруте — ошибка сборки роутера, отвечаем 401.
func callerIdentity(w http.ResponseWriter, r *http.Request) (models.Identity, bool) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		httperr.WriteError(w, r, fmt.Errorf("handlers: %w", service.ErrInvalidToken))
		return models.Identity{}, false
	}

	return identity, true
}

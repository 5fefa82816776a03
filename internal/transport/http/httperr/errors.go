// httperr стандартизирует ответы об ошибках HTTP-слоя contacts-api.
// На вход он принимает ошибку сервисного слоя (сентинелы из internal/service),
// а на выход даёт:
//   - корректный HTTP-статус;
//   - краткое безопасное message без утечки деталей.
//
// Непознанные ошибки (БД, хэширование, почта) схлопываются в 500/internal.
package httperr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pribylovaa/go-contacts-api/internal/service"
)

// APIError — единый формат для фронта.
// Code — короткий стабильный код для машиночитаемой обработки на FE.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует ошибку сервисного слоя в HTTP-статус и унифицированный
// ответ. err == nil — программная ошибка вызова: возвращаем 500/internal,
// чтобы не послать "200 OK" с телом ошибки и не маскировать баг.
func ToHTTP(err error) (int, ErrorResponse) {
	status, code, msg := classify(err)

	return status, ErrorResponse{
		Error: APIError{
			Code:    code,
			Message: msg,
		},
	}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	// Прокидываем request_id для фронта, чтобы он мог репортить баги с привязкой.
	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// classify — маппинг сентинел-ошибок сервиса на HTTP/FE-код/сообщение.
// Все сбои аутентификации нарочно дают один и тот же обобщённый ответ,
// кроме пары "неверные кредо"/"e-mail не подтверждён", у которых свои
// стабильные сообщения (но тот же 401).
func classify(err error) (int, string, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, "internal", "internal error"
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, "unauthorized", service.ErrInvalidCredentials.Error()
	case errors.Is(err, service.ErrEmailNotVerified):
		return http.StatusUnauthorized, "unauthorized", service.ErrEmailNotVerified.Error()
	case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrTokenExpired):
		return http.StatusUnauthorized, "unauthorized", "not authorized"
	case errors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict, "conflict", service.ErrEmailTaken.Error()
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "not_found", "not found"
	case errors.Is(err, service.ErrEmptyUpdate):
		return http.StatusBadRequest, "bad_request", service.ErrEmptyUpdate.Error()
	case errors.Is(err, service.ErrMissingFile):
		return http.StatusBadRequest, "bad_request", service.ErrMissingFile.Error()
	case errors.Is(err, service.ErrAlreadyVerified):
		return http.StatusBadRequest, "bad_request", service.ErrAlreadyVerified.Error()
	case errors.Is(err, service.ErrInvalidEmail):
		return http.StatusBadRequest, "bad_request", service.ErrInvalidEmail.Error()
	case errors.Is(err, service.ErrWeakPassword):
		return http.StatusBadRequest, "bad_request", service.ErrWeakPassword.Error()
	case errors.Is(err, service.ErrInvalidArgument):
		return http.StatusBadRequest, "bad_request", "invalid argument"
	default:
		return http.StatusInternalServerError, "internal", "internal error"
	}
}

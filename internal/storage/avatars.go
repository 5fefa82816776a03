package storage

import (
	"context"

	"github.com/google/uuid"
)

// Avatars — контракт долговременного размещения загруженных аватаров.
//
// SaveAvatar забирает временный файл (путь и исходное имя отдаёт транспорт
// после разбора multipart), переносит его в постоянное хранилище под
// коллизионно-стойким именем (userID + отметка времени + исходное расширение)
// и возвращает публичный URL. Временный файл после успешного переноса
// прекращает существовать.
type Avatars interface {
	SaveAvatar(ctx context.Context, userID uuid.UUID, srcPath, originalName string) (string, error)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	logctx "github.com/pribylovaa/go-contacts-api/internal/pkg/log"
	"github.com/pribylovaa/go-contacts-api/internal/storage"
)

// UpdateAvatar переносит загруженный файл в постоянное хранилище и записывает
// публичный URL в профиль пользователя. Разбор multipart и спул во временный
// файл — забота транспортного слоя; сюда приходит только путь и исходное имя.
func (s *Service) UpdateAvatar(ctx context.Context, userID uuid.UUID, srcPath, originalName string) (string, error) {
	const op = "service.avatar.UpdateAvatar"

	if srcPath == "" {
		return "", fmt.Errorf("%s: %w", op, ErrMissingFile)
	}

	url, err := s.avatars.SaveAvatar(ctx, userID, srcPath, originalName)
	if err != nil {
		logctx.From(ctx).Error("avatar_save_failed",
			slog.String("op", op),
			slog.String("user_id", userID.String()),
			slog.String("err", err.Error()),
		)
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.UpdateUserAvatarURL(ctx, userID, url); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
		}

		return "", fmt.Errorf("%s: %w", op, err)
	}

	return url, nil
}

package minio

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	mclient "github.com/minio/minio-go/v7"
)

// SaveAvatar загружает временный файл в бакет под ключом
// "avatars/<userID>_<unix-nano><ext>", удаляет локальную копию
// и возвращает публичный URL (PublicBaseURL + ключ).
func (s *AvatarsStorage) SaveAvatar(ctx context.Context, userID uuid.UUID, srcPath, originalName string) (string, error) {
	const op = "storage.minio.SaveAvatar"

	ext := filepath.Ext(originalName)
	key := path.Join("avatars", userID.String()+"_"+strconv.FormatInt(time.Now().UnixNano(), 10)+ext)

	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.FPutObject(ctx, s.cfg.Bucket, key, srcPath, mclient.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	// Временный файл больше не нужен; ошибка удаления не фатальна для запроса.
	_ = os.Remove(srcPath)

	base := strings.TrimRight(s.cfg.PublicBaseURL, "/")

	return base + "/" + key, nil
}

// disk предоставляет реализацию storage.Avatars на локальной файловой системе:
// временный файл загрузки переносится в каталог аватаров и становится доступен
// по публичному пути вида /avatars/<userID>_<unix-nano><ext>.
package disk

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-contacts-api/internal/storage"
)

// AvatarsStorage — адаптер локального диска для хранения аватаров.
type AvatarsStorage struct {
	dir        string // каталог постоянного хранения
	publicPath string // префикс публичного URL, например "/avatars"
}

// New создаёт хранилище и гарантирует существование каталога.
func New(dir, publicPath string) (*AvatarsStorage, error) {
	const op = "storage.disk.New"

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if publicPath == "" {
		publicPath = "/avatars"
	}

	return &AvatarsStorage{dir: dir, publicPath: publicPath}, nil
}

// SaveAvatar переносит временный файл в каталог аватаров под именем
// <userID>_<unix-nano><ext> и возвращает публичный путь к нему.
func (s *AvatarsStorage) SaveAvatar(_ context.Context, userID uuid.UUID, srcPath, originalName string) (string, error) {
	const op = "storage.disk.SaveAvatar"

	name := userID.String() + "_" + strconv.FormatInt(time.Now().UnixNano(), 10) + filepath.Ext(originalName)
	dst := filepath.Join(s.dir, name)

	if err := moveFile(srcPath, dst); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return path.Join(s.publicPath, name), nil
}

// moveFile — rename с фолбэком на копирование: временный каталог загрузок
// может находиться на другой файловой системе.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		_ = os.Remove(dst)
		return err
	}

	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return err
	}

	return os.Remove(src)
}

// Проверка выполнения контракта.
var _ storage.Avatars = (*AvatarsStorage)(nil)

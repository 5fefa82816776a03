package disk

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// writeTemp создаёт временный файл загрузки с заданным содержимым.
func writeTemp(t *testing.T, content string) string {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "upload-*")
	require.NoError(t, err)

	_, err = f.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	return f.Name()
}

func TestNew_CreatesDirectory(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "avatars")

	st, err := New(dir, "/avatars")
	require.NoError(t, err)
	require.NotNil(t, st)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestNew_DefaultPublicPath(t *testing.T) {
	t.Parallel()

	st, err := New(t.TempDir(), "")
	require.NoError(t, err)

	src := writeTemp(t, "img")

	url, err := st.SaveAvatar(context.Background(), uuid.New(), src, "a.png")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "/avatars/"))
}

func TestSaveAvatar_OK(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	st, err := New(dir, "/static/avatars")
	require.NoError(t, err)

	userID := uuid.New()
	src := writeTemp(t, "png-bytes")

	url, err := st.SaveAvatar(context.Background(), userID, src, "photo.png")
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(url, "/static/avatars/"+userID.String()+"_"))
	require.True(t, strings.HasSuffix(url, ".png"))

	// Исходный временный файл перенесён в каталог хранения.
	_, err = os.Stat(src)
	require.True(t, os.IsNotExist(err))

	data, err := os.ReadFile(filepath.Join(dir, filepath.Base(url)))
	require.NoError(t, err)
	require.Equal(t, "png-bytes", string(data))
}

func TestSaveAvatar_NoExtension(t *testing.T) {
	t.Parallel()

	st, err := New(t.TempDir(), "/avatars")
	require.NoError(t, err)

	src := writeTemp(t, "raw")

	url, err := st.SaveAvatar(context.Background(), uuid.New(), src, "avatar")
	require.NoError(t, err)
	require.False(t, strings.Contains(filepath.Base(url), "."))
}

func TestSaveAvatar_SourceMissing(t *testing.T) {
	t.Parallel()

	st, err := New(t.TempDir(), "/avatars")
	require.NoError(t, err)

	_, err = st.SaveAvatar(context.Background(), uuid.New(), filepath.Join(t.TempDir(), "gone"), "a.png")
	require.Error(t, err)
	require.Contains(t, err.Error(), "storage.disk.SaveAvatar")
}

package postgres

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-contacts-api/internal/models"
	"github.com/pribylovaa/go-contacts-api/internal/storage"
)

// Интеграционные тесты репозитория contacts.go: общий startPostgres из users_test.go.

func mustContact(t *testing.T, st *Storage, owner uuid.UUID, name string, favorite bool) *models.Contact {
	t.Helper()

	saved, err := st.SaveContact(context.Background(), &models.Contact{
		Name:     name,
		Email:    name + "@example.com",
		Phone:    "+100",
		Favorite: favorite,
		OwnerID:  owner,
	})
	require.NoError(t, err)
	return saved
}

// Happy-path: создание возвращает серверные поля (id, таймстемпы).
func TestIntegration_SaveContact_OK(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	owner := mustUser(t, st, "owner@example.com")

	saved := mustContact(t, st, owner.ID, "alice", false)
	require.Positive(t, saved.ID)
	require.Equal(t, "alice", saved.Name)
	require.Equal(t, owner.ID, saved.OwnerID)
	require.False(t, saved.CreatedAt.IsZero())
	require.False(t, saved.UpdatedAt.IsZero())

	got, err := st.ContactByID(context.Background(), owner.ID, saved.ID)
	require.NoError(t, err)
	require.Equal(t, saved.ID, got.ID)
}

// Чужой контакт неотличим от несуществующего.
func TestIntegration_ContactByID_ForeignOwner_NotFound(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	owner := mustUser(t, st, "owner@example.com")
	other := mustUser(t, st, "other@example.com")

	saved := mustContact(t, st, owner.ID, "alice", false)

	_, err := st.ContactByID(context.Background(), other.ID, saved.ID)
	require.Error(t, err)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

// ListContacts: порядок вставки, пагинация и фильтр favorite.
func TestIntegration_ListContacts(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	owner := mustUser(t, st, "owner@example.com")
	other := mustUser(t, st, "other@example.com")

	c1 := mustContact(t, st, owner.ID, "a", false)
	c2 := mustContact(t, st, owner.ID, "b", true)
	c3 := mustContact(t, st, owner.ID, "c", true)
	mustContact(t, st, other.ID, "foreign", true)

	// Без фильтра: только контакты владельца, в порядке вставки.
	got, err := st.ListContacts(context.Background(), owner.ID, nil, 10, 0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, []int64{c1.ID, c2.ID, c3.ID}, []int64{got[0].ID, got[1].ID, got[2].ID})

	// Пагинация: limit=2, offset=2 → последний.
	got, err = st.ListContacts(context.Background(), owner.ID, nil, 2, 2)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, c3.ID, got[0].ID)

	// Фильтр favorite=true.
	fav := true
	got, err = st.ListContacts(context.Background(), owner.ID, &fav, 10, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, c2.ID, got[0].ID)
	require.Equal(t, c3.ID, got[1].ID)

	// Фильтр favorite=false.
	fav = false
	got, err = st.ListContacts(context.Background(), owner.ID, &fav, 10, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, c1.ID, got[0].ID)

	// Страница за пределами данных — пустой слайс, не nil-ошибка.
	got, err = st.ListContacts(context.Background(), owner.ID, nil, 10, 100)
	require.NoError(t, err)
	require.Empty(t, got)
}

// UpdateContact: частичное обновление трогает только заданные поля.
func TestIntegration_UpdateContact_Partial(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	owner := mustUser(t, st, "owner@example.com")
	saved := mustContact(t, st, owner.ID, "alice", false)

	name := "renamed"
	got, err := st.UpdateContact(context.Background(), owner.ID, saved.ID, storage.ContactUpdate{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "renamed", got.Name)
	require.Equal(t, saved.Email, got.Email)
	require.Equal(t, saved.Phone, got.Phone)
	require.False(t, got.Favorite)

	fav := true
	got, err = st.UpdateContact(context.Background(), owner.ID, saved.ID, storage.ContactUpdate{Favorite: &fav})
	require.NoError(t, err)
	require.True(t, got.Favorite)
	require.Equal(t, "renamed", got.Name)
}

func TestIntegration_UpdateContact_EmptySet_InvalidArgument(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	owner := mustUser(t, st, "owner@example.com")
	saved := mustContact(t, st, owner.ID, "alice", false)

	_, err := st.UpdateContact(context.Background(), owner.ID, saved.ID, storage.ContactUpdate{})
	require.Error(t, err)
	require.ErrorIs(t, err, storage.ErrInvalidArgument)
}

func TestIntegration_UpdateContact_ForeignOwner_NotFound(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	owner := mustUser(t, st, "owner@example.com")
	other := mustUser(t, st, "other@example.com")
	saved := mustContact(t, st, owner.ID, "alice", false)

	name := "hijack"
	_, err := st.UpdateContact(context.Background(), other.ID, saved.ID, storage.ContactUpdate{Name: &name})
	require.Error(t, err)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

// DeleteContact возвращает снимок до удаления; повторное удаление — ErrNotFound.
func TestIntegration_DeleteContact(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	owner := mustUser(t, st, "owner@example.com")
	saved := mustContact(t, st, owner.ID, "alice", true)

	snapshot, err := st.DeleteContact(context.Background(), owner.ID, saved.ID)
	require.NoError(t, err)
	require.Equal(t, saved.ID, snapshot.ID)
	require.Equal(t, "alice", snapshot.Name)
	require.True(t, snapshot.Favorite)

	_, err = st.ContactByID(context.Background(), owner.ID, saved.ID)
	require.Error(t, err)
	require.ErrorIs(t, err, storage.ErrNotFound)

	_, err = st.DeleteContact(context.Background(), owner.ID, saved.ID)
	require.Error(t, err)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIntegration_DeleteContact_ForeignOwner_NotFound(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	owner := mustUser(t, st, "owner@example.com")
	other := mustUser(t, st, "other@example.com")
	saved := mustContact(t, st, owner.ID, "alice", false)

	_, err := st.DeleteContact(context.Background(), other.ID, saved.ID)
	require.Error(t, err)
	require.ErrorIs(t, err, storage.ErrNotFound)

	// Контакт остался у владельца.
	got, err := st.ContactByID(context.Background(), owner.ID, saved.ID)
	require.NoError(t, err)
	require.Equal(t, saved.ID, got.ID)
}

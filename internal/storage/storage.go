// storage задаёт контракты работы с хранилищами contacts-api
// и общие сентинел-ошибки, на которые маппятся ошибки конкретных реализаций.
package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-contacts-api/internal/models"
)

var (
	// ErrNotFound — запись не найдена (пользователь/контакт/объект аватара).
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — нарушение уникальности (email).
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidArgument — нарушены ограничения запроса (тип/размер файла).
	ErrInvalidArgument = errors.New("invalid argument")
)

// UserStorage выполняет операции над пользователями.
type UserStorage interface {
	// SaveUser создаёт нового пользователя в БД.
	SaveUser(ctx context.Context, user *models.User) error
	// UserByEmail находит пользователя по email (точное совпадение).
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	// UserByID находит пользователя по ID.
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	// UserByVerificationToken находит пользователя по токену верификации.
	UserByVerificationToken(ctx context.Context, token string) (*models.User, error)
	// UpdateUserToken записывает текущий сессионный токен (nil — logout).
	UpdateUserToken(ctx context.Context, id uuid.UUID, token *string) error
	// UpdateUserSubscription меняет тариф и возвращает обновлённую запись.
	UpdateUserSubscription(ctx context.Context, id uuid.UUID, sub models.Subscription) (*models.User, error)
	// UpdateUserAvatarURL записывает новый URL аватара.
	UpdateUserAvatarURL(ctx context.Context, id uuid.UUID, url string) error
	// MarkUserVerified выставляет verify=true и обнуляет токен верификации.
	MarkUserVerified(ctx context.Context, id uuid.UUID) error
}

// ContactUpdate — частичное обновление контакта: nil-поле не трогается.
type ContactUpdate struct {
	Name     *string
	Email    *string
	Phone    *string
	Favorite *bool
}

// IsEmpty сообщает, что обновлять нечего.
func (u ContactUpdate) IsEmpty() bool {
	return u.Name == nil && u.Email == nil && u.Phone == nil && u.Favorite == nil
}

// ContactStorage выполняет операции над контактами.
// Каждый метод фильтрует по владельцу: контакт чужого пользователя
// неотличим от несуществующего (ErrNotFound).
type ContactStorage interface {
	// SaveContact создаёт контакт и возвращает запись с серверными полями.
	SaveContact(ctx context.Context, contact *models.Contact) (*models.Contact, error)
	// ContactByID находит контакт по ID в рамках владельца.
	ContactByID(ctx context.Context, owner uuid.UUID, id int64) (*models.Contact, error)
	// ListContacts возвращает страницу контактов владельца в порядке вставки.
	// favorite == nil — без фильтра по флагу.
	ListContacts(ctx context.Context, owner uuid.UUID, favorite *bool, limit, offset uint64) ([]models.Contact, error)
	// UpdateContact применяет частичное обновление и возвращает результат.
	UpdateContact(ctx context.Context, owner uuid.UUID, id int64, upd ContactUpdate) (*models.Contact, error)
	// DeleteContact удаляет контакт и возвращает снимок до удаления.
	DeleteContact(ctx context.Context, owner uuid.UUID, id int64) (*models.Contact, error)
}

// Storage задаёт контракт работы с БД.
type Storage interface {
	UserStorage
	ContactStorage
	Close()
}

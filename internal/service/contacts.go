package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-contacts-api/internal/models"
	"github.com/pribylovaa/go-contacts-api/internal/storage"
)

// Пределы пагинации. Верхние границы гарантируют, что смещение
// (page-1)*limit не переполняется и помещается в bigint хранилища.
const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
	maxPage      = math.MaxInt64 / maxLimit
)

// ListContactsOptions — параметры выборки контактов.
// Favorite == nil — без фильтра по флагу.
type ListContactsOptions struct {
	Page     uint64
	Limit    uint64
	Favorite *bool
}

// CreateContactInput — входные данные создания контакта.
type CreateContactInput struct {
	Name     string
	Email    string
	Phone    string
	Favorite bool
}

// normalizeContactID приводит строковый идентификатор к ключу хранилища.
// Нечисловой идентификатор — не ошибка формата, а заведомо несуществующая
// запись: вызывающий получает "не найдено".
func normalizeContactID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}

	return id, true
}

// ListContacts возвращает страницу контактов владельца в порядке вставки.
func (s *Service) ListContacts(ctx context.Context, owner uuid.UUID, opts ListContactsOptions) ([]models.Contact, error) {
	const op = "service.contacts.ListContacts"

	page := opts.Page
	if page == 0 {
		page = defaultPage
	}

	limit := opts.Limit
	if limit == 0 {
		limit = defaultLimit
	}

	if page > maxPage || limit > maxLimit {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	offset := (page - 1) * limit

	contacts, err := s.storage.ListContacts(ctx, owner, opts.Favorite, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return contacts, nil
}

// ContactByID возвращает контакт владельца или ErrNotFound.
func (s *Service) ContactByID(ctx context.Context, owner uuid.UUID, rawID string) (*models.Contact, error) {
	const op = "service.contacts.ContactByID"

	id, ok := normalizeContactID(rawID)
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	contact, err := s.storage.ContactByID(ctx, owner, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return contact, nil
}

// CreateContact создаёт контакт, привязанный к владельцу.
func (s *Service) CreateContact(ctx context.Context, owner uuid.UUID, input CreateContactInput) (*models.Contact, error) {
	const op = "service.contacts.CreateContact"

	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)

	if input.Name == "" || input.Email == "" || input.Phone == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	contact := &models.Contact{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Favorite: input.Favorite,
		OwnerID:  owner,
	}

	saved, err := s.storage.SaveContact(ctx, contact)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return saved, nil
}

// UpdateContact применяет частичное обновление контакта владельца.
// Пустое обновление отклоняется до какого-либо обращения к хранилищу.
func (s *Service) UpdateContact(ctx context.Context, owner uuid.UUID, rawID string, upd storage.ContactUpdate) (*models.Contact, error) {
	const op = "service.contacts.UpdateContact"

	if upd.IsEmpty() {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyUpdate)
	}

	id, ok := normalizeContactID(rawID)
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	contact, err := s.storage.UpdateContact(ctx, owner, id, upd)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return contact, nil
}

// UpdateContactFavorite меняет только флаг избранного.
func (s *Service) UpdateContactFavorite(ctx context.Context, owner uuid.UUID, rawID string, favorite bool) (*models.Contact, error) {
	const op = "service.contacts.UpdateContactFavorite"

	contact, err := s.UpdateContact(ctx, owner, rawID, storage.ContactUpdate{Favorite: &favorite})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return contact, nil
}

// RemoveContact удаляет контакт владельца и возвращает снимок до удаления.
func (s *Service) RemoveContact(ctx context.Context, owner uuid.UUID, rawID string) (*models.Contact, error) {
	const op = "service.contacts.RemoveContact"

	id, ok := normalizeContactID(rawID)
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	contact, err := s.storage.DeleteContact(ctx, owner, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return contact, nil
}

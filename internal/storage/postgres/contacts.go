package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pribylovaa/go-contacts-api/internal/models"
	"github.com/pribylovaa/go-contacts-api/internal/storage"
)

const contactColumns = `id, name, email, phone, favorite, owner_id, created_at, updated_at`

// scanContact вычитывает строку contacts в доменную модель.
func scanContact(row pgx.Row) (*models.Contact, error) {
	var c models.Contact
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.Favorite,
		&c.OwnerID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// SaveContact создаёт контакт и возвращает запись с серверными полями.
func (s *Storage) SaveContact(ctx context.Context, contact *models.Contact) (*models.Contact, error) {
	const op = "storage.postgres.SaveContact"

	query := `
		INSERT INTO contacts(name, email, phone, favorite, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + contactColumns

	now := time.Now().UTC()
	saved, err := scanContact(s.db.QueryRow(ctx, query,
		contact.Name,
		contact.Email,
		contact.Phone,
		contact.Favorite,
		contact.OwnerID,
		now,
		now,
	))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return saved, nil
}

// ContactByID находит контакт по ID в рамках владельца.
func (s *Storage) ContactByID(ctx context.Context, owner uuid.UUID, id int64) (*models.Contact, error) {
	const op = "storage.postgres.ContactByID"

	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = $1 AND owner_id = $2`

	contact, err := scanContact(s.db.QueryRow(ctx, query, id, owner))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return contact, nil
}

// ListContacts возвращает страницу контактов владельца в порядке вставки.
func (s *Storage) ListContacts(ctx context.Context, owner uuid.UUID, favorite *bool, limit, offset uint64) ([]models.Contact, error) {
	const op = "storage.postgres.ListContacts"

	query := `SELECT ` + contactColumns + ` FROM contacts WHERE owner_id = $1`
	args := []any{owner}

	if favorite != nil {
		args = append(args, *favorite)
		query += ` AND favorite = $` + strconv.Itoa(len(args))
	}

	args = append(args, limit)
	query += ` ORDER BY id LIMIT $` + strconv.Itoa(len(args))

	args = append(args, offset)
	query += ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	contacts := make([]models.Contact, 0)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		contacts = append(contacts, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return contacts, nil
}

// UpdateContact применяет частичное обновление: собирает SET только из
// заданных полей и возвращает обновлённую запись в рамках владельца.
func (s *Storage) UpdateContact(ctx context.Context, owner uuid.UUID, id int64, upd storage.ContactUpdate) (*models.Contact, error) {
	const op = "storage.postgres.UpdateContact"

	set := make([]string, 0, 5)
	args := []any{id, owner}

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, column+" = $"+strconv.Itoa(len(args)))
	}

	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Email != nil {
		add("email", *upd.Email)
	}
	if upd.Phone != nil {
		add("phone", *upd.Phone)
	}
	if upd.Favorite != nil {
		add("favorite", *upd.Favorite)
	}

	if len(set) == 0 {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrInvalidArgument)
	}

	add("updated_at", time.Now().UTC())

	query := `
		UPDATE contacts SET ` + strings.Join(set, ", ") + `
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + contactColumns

	contact, err := scanContact(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return contact, nil
}

// DeleteContact удаляет контакт и возвращает снимок до удаления.
func (s *Storage) DeleteContact(ctx context.Context, owner uuid.UUID, id int64) (*models.Contact, error) {
	const op = "storage.postgres.DeleteContact"

	query := `
		DELETE FROM contacts
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + contactColumns

	contact, err := scanContact(s.db.QueryRow(ctx, query, id, owner))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return contact, nil
}

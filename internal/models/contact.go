package models

import (
	"time"

	"github.com/google/uuid"
)

// Contact — запись контакта, принадлежащая ровно одному пользователю.
// OwnerID задаётся при создании и далее неизменяем; все выборки
// в хранилище фильтруются по нему.
type Contact struct {
	ID        int64
	Name      string
	Email     string
	Phone     string
	Favorite  bool
	OwnerID   uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

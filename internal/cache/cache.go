// cache содержит необязательный Redis-кэш активной сессии пользователя.
// Кэш подчинён хранилищу: login/logout/смена тарифа сначала удаляют запись
// отсюда и только потом пишут в БД, поэтому сбой кэша проявляется как промах
// (и поход в БД), а не как устаревший токен, переживший выход из системы.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionEntry описывает данные, которые мы храним в Redis по ID пользователя:
// действующий сессионный токен и снимок полей идентичности, чтобы запрос
// с валидным токеном не ходил в БД.
type SessionEntry struct {
	Token        string
	Email        string
	Subscription string
}

// SessionCache — минимальный контракт кэша сессий.
type SessionCache interface {
	// Get возвращает запись и признак её наличия в кэше.
	Get(ctx context.Context, userID uuid.UUID) (*SessionEntry, bool, error)
	// Set сохраняет запись с TTL (обычно TTL сессионного токена).
	Set(ctx context.Context, userID uuid.UUID, e *SessionEntry, ttl time.Duration) error
	// Delete удаляет запись (logout, смена профиля).
	Delete(ctx context.Context, userID uuid.UUID) error
	// Close закрывает клиент Redis.
	Close() error
}

type redisCache struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisCache создаёт клиент Redis из URL (например, redis://:pass@host:6379/0).
// Если prefix пустой — используется "contacts:session:".
func NewRedisCache(redisURL, prefix string) (SessionCache, error) {
	if prefix == "" {
		prefix = "contacts:session:"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &redisCache{rdb: rdb, prefix: prefix}, nil
}

func (c *redisCache) key(userID uuid.UUID) string { return c.prefix + userID.String() }

// Храним как Redis Hash с полями: tok, email, sub.
func (c *redisCache) Get(ctx context.Context, userID uuid.UUID) (*SessionEntry, bool, error) {
	m, err := c.rdb.HGetAll(ctx, c.key(userID)).Result()
	if err != nil {
		return nil, false, err
	}

	if len(m) == 0 {
		return nil, false, nil
	}

	return &SessionEntry{
		Token:        m["tok"],
		Email:        m["email"],
		Subscription: m["sub"],
	}, true, nil
}

func (c *redisCache) Set(ctx context.Context, userID uuid.UUID, e *SessionEntry, ttl time.Duration) error {
	if e == nil {
		return errors.New("nil session entry")
	}

	kv := map[string]string{
		"tok":   e.Token,
		"email": e.Email,
		"sub":   e.Subscription,
	}

	pipe := c.rdb.TxPipeline()
	pipe.HSet(ctx, c.key(userID), kv)
	pipe.Expire(ctx, c.key(userID), ttl)

	_, err := pipe.Exec(ctx)
	return err
}

func (c *redisCache) Delete(ctx context.Context, userID uuid.UUID) error {
	return c.rdb.Del(ctx, c.key(userID)).Err()
}

func (c *redisCache) Close() error { return c.rdb.Close() }

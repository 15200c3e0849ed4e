package session_test

import (
	"context"
	"testing"
	"time"

	"pinboard/internal/session"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
)

func TestNopStore(t *testing.T) {
	var store session.Store = session.NopStore{}

	assert.NoError(t, store.Revoke(context.Background(), "token", time.Now().Add(time.Hour)))
	revoked, err := store.IsRevoked(context.Background(), "token")
	assert.NoError(t, err)
	assert.False(t, revoked)
}

func TestRedisStore_RevokeExpiredIsNoop(t *testing.T) {
	// Клиент никуда не подключается: для истекшего токена запрос не отправляется
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer rdb.Close()

	store := session.NewRedisStore(rdb)
	err := store.Revoke(context.Background(), "token", time.Now().Add(-time.Minute))

	assert.NoError(t, err)
}

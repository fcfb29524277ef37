package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store keeps revoked login tokens in redis so logout takes effect
// before the JWT expires. Entries live as long as the longest token
// lifetime.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(addr, pass string, db int, ttl time.Duration) *Store {
	return &Store{
		rdb: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
		ttl: ttl,
	}
}

// Revoke denylists the token until its natural expiry.
func (s *Store) Revoke(ctx context.Context, token string) error {
	return s.rdb.Set(ctx, key(token), "revoked", s.ttl).Err()
}

// Revoked reports whether the token was denylisted. Redis being down
// fails open: tokens then live until their JWT expiry.
func (s *Store) Revoked(ctx context.Context, token string) bool {
	_, err := s.rdb.Get(ctx, key(token)).Result()
	return err == nil
}

func (s *Store) Close() error { return s.rdb.Close() }

func key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "medisync:revoked:" + hex.EncodeToString(sum[:])
}

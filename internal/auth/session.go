package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

var ctx = context.Background()

// SessionManager mirrors issued session tokens in Redis so a logout
// actually revokes them server-side, and keeps a blacklist for tokens
// invalidated before their natural expiry.
type SessionManager struct {
	rdb *redis.Client
}

func NewSessionManager(rdb *redis.Client) *SessionManager {
	return &SessionManager{rdb: rdb}
}

// SaveSession stores the current session token for a user.
func (s *SessionManager) SaveSession(userID uint64, token string, ttl time.Duration) error {
	key := fmt.Sprintf("fm:session:%d", userID)
	return s.rdb.Set(ctx, key, token, ttl).Err()
}

// GetSession fetches the stored session token for a user.
func (s *SessionManager) GetSession(userID uint64) (string, error) {
	key := fmt.Sprintf("fm:session:%d", userID)
	return s.rdb.Get(ctx, key).Result()
}

// DeleteSession removes the stored session, used during logout.
func (s *SessionManager) DeleteSession(userID uint64) error {
	key := fmt.Sprintf("fm:session:%d", userID)
	return s.rdb.Del(ctx, key).Err()
}

// AddBlackList blacklists a token for the remainder of its lifetime.
func (s *SessionManager) AddBlackList(token string, ttl time.Duration) error {
	key := fmt.Sprintf("fm:black:%s", token)
	return s.rdb.Set(ctx, key, "1", ttl).Err()
}

// InBlackList reports whether a token has been invalidated previously.
func (s *SessionManager) InBlackList(token string) (bool, error) {
	key := fmt.Sprintf("fm:black:%s", token)
	res, err := s.rdb.Exists(ctx, key).Result()
	return res == 1, err
}

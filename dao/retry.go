package dao

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"fleamarket/internal/metrics"
)

// ErrRetryExhausted is returned when a lock-contended statement still
// fails after the configured number of attempts.
var ErrRetryExhausted = errors.New("database retry attempts exhausted")

// RetryPolicy is the bounded retry applied to statements that fail on
// lock contention. Any error that is not lock contention propagates
// immediately on the first attempt.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

// DefaultRetryPolicy mirrors the historical behavior: five attempts
// with a fixed 100ms pause between them.
var DefaultRetryPolicy = RetryPolicy{MaxAttempts: 5, Delay: 100 * time.Millisecond}

// Do runs fn up to p.MaxAttempts times, sleeping p.Delay between
// attempts while fn keeps failing with a lock-contention error.
func (p RetryPolicy) Do(fn func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !isLockContention(lastErr) {
			return lastErr
		}
		if i < attempts-1 {
			time.Sleep(p.Delay)
		}
	}
	metrics.IncRetryExhausted()
	return fmt.Errorf("%w: %v", ErrRetryExhausted, lastErr)
}

// isLockContention reports whether err is a MySQL lock wait timeout
// (1205) or deadlock (1213), the two conditions worth a blind retry.
func isLockContention(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1205 || mysqlErr.Number == 1213
	}
	return false
}

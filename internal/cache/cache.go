package cache

import (
	"context"
	"time"
)

// BytesCache is a minimal cache API storing raw bytes with TTL.
// A ttl of zero means the entry never expires.
type BytesCache interface {
	GetBytes(ctx context.Context, key string) (b []byte, ok bool, err error)
	SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Close() error
}

// Noop is a BytesCache that stores nothing. Every lookup is a miss.
type Noop struct{}

func (Noop) GetBytes(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (Noop) SetBytes(context.Context, string, []byte, time.Duration) error { return nil }
func (Noop) Close() error { return nil }

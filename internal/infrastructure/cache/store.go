// Package cache holds the expiring key/value stores used for read caching.
//
// Values are raw bytes; callers decide how to encode them. A miss is never
// an error: anything read through a Store must also be obtainable from the
// database.
package cache

import (
	"context"
	"errors"
	"time"
)

var ErrClosed = errors.New("cache is closed")

// EntryOptions controls how long an entry lives.
//
// Sliding is the maximum idle time between reads; every hit restarts it.
// Absolute is the maximum age since the entry was written; hits never extend it.
// A zero value disables the corresponding limit.
type EntryOptions struct {
	Sliding  time.Duration
	Absolute time.Duration
}

type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, opts EntryOptions) error
	Remove(ctx context.Context, key string) error
	Close() error
}

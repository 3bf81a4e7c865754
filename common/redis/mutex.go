package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Mutex is an advisory lock backed by SETNX. Sheet appends must be serialized
// against other writers because the insert position is recomputed immediately
// before each batch write.
type Mutex struct {
	client *Client
	key    string
	token  string
	ttl    time.Duration
}

// NewMutex creates a mutex for the given resource key
func NewMutex(client *Client, key string, ttl time.Duration) *Mutex {
	return &Mutex{
		client: client,
		key:    "lock:" + key,
		ttl:    ttl,
	}
}

// Lock acquires the mutex, polling until acquired or the context is done
func (m *Mutex) Lock(ctx context.Context) error {
	m.token = uuid.NewString()

	for {
		acquired, err := m.client.SetNX(ctx, m.key, m.token, m.ttl)
		if err != nil {
			return fmt.Errorf("acquire lock %s: %w", m.key, err)
		}
		if acquired {
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("acquire lock %s: %w", m.key, ctx.Err())
		case <-time.After(100 * time.Millisecond):
		}
	}
}

// Unlock releases the mutex if still held by this owner
func (m *Mutex) Unlock(ctx context.Context) error {
	held, ok, err := m.client.Get(ctx, m.key)
	if err != nil {
		return err
	}
	if !ok || held != m.token {
		// Expired or taken over; nothing to release
		return nil
	}
	return m.client.Delete(ctx, m.key)
}

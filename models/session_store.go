package models

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rohanthewiz/serr"
	"github.com/vmihailenco/msgpack/v5"
)

// ErrSessionNotFound is returned by a store that has no snapshot for the id.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists session snapshots. The memory store suits a single
// instance; the Redis store lets snapshots survive restarts and be shared.
type SessionStore interface {
	Load(ctx context.Context, id string) (*SessionSnapshot, error)
	Save(ctx context.Context, id string, snap SessionSnapshot) error
	Delete(ctx context.Context, id string) error
}

// EncodeSnapshot serialises a snapshot with msgpack.
func EncodeSnapshot(snap SessionSnapshot) ([]byte, error) {
	b, err := msgpack.Marshal(&snap)
	if err != nil {
		return nil, serr.Wrap(err, "failed to msgpack encode session snapshot")
	}
	return b, nil
}

// DecodeSnapshot is the inverse of EncodeSnapshot.
func DecodeSnapshot(b []byte) (*SessionSnapshot, error) {
	var snap SessionSnapshot
	if err := msgpack.Unmarshal(b, &snap); err != nil {
		return nil, serr.Wrap(err, "failed to msgpack decode session snapshot")
	}
	return &snap, nil
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemorySessionStore keeps encoded snapshots in process memory.
type MemorySessionStore struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]memoryEntry
}

// NewMemorySessionStore returns a store whose entries expire after ttl.
func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{ttl: ttl, entries: make(map[string]memoryEntry)}
}

// Load returns ErrSessionNotFound for unknown or expired ids.
func (m *MemorySessionStore) Load(ctx context.Context, id string) (*SessionSnapshot, error) {
	m.mu.RLock()
	e, ok := m.entries[id]
	m.mu.RUnlock()

	if !ok || time.Now().After(e.expiresAt) {
		return nil, ErrSessionNotFound
	}
	return DecodeSnapshot(e.data)
}

// Save stores snap under id, refreshing its expiry.
func (m *MemorySessionStore) Save(ctx context.Context, id string, snap SessionSnapshot) error {
	b, err := EncodeSnapshot(snap)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Sweep expired entries on write so the map cannot grow without bound
	now := time.Now()
	for k, e := range m.entries {
		if now.After(e.expiresAt) {
			delete(m.entries, k)
		}
	}
	m.entries[id] = memoryEntry{data: b, expiresAt: now.Add(m.ttl)}
	return nil
}

// Delete removes id.
func (m *MemorySessionStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

// RedisSessionStore keeps encoded snapshots in Redis with a TTL.
type RedisSessionStore struct {
	client    *redis.Client
	ttl       time.Duration
	keyPrefix string
}

// RedisStoreConfig holds the Redis connection settings.
type RedisStoreConfig struct {
	Addr      string
	Password  string
	DB        int
	TTL       time.Duration
	KeyPrefix string
}

// NewRedisSessionStore connects and pings Redis.
func NewRedisSessionStore(cfg RedisStoreConfig) (*RedisSessionStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, serr.Wrap(err, "failed to ping redis")
	}

	return NewRedisSessionStoreFromClient(client, cfg.TTL, cfg.KeyPrefix), nil
}

// NewRedisSessionStoreFromClient wraps an existing client.
func NewRedisSessionStoreFromClient(client *redis.Client, ttl time.Duration, keyPrefix string) *RedisSessionStore {
	if keyPrefix == "" {
		keyPrefix = "konvy:session"
	}
	return &RedisSessionStore{client: client, ttl: ttl, keyPrefix: keyPrefix}
}

func (r *RedisSessionStore) key(id string) string {
	return r.keyPrefix + ":" + id
}

// Load returns ErrSessionNotFound when the key is absent.
func (r *RedisSessionStore) Load(ctx context.Context, id string) (*SessionSnapshot, error) {
	b, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, serr.Wrap(err, "failed to read session from redis")
	}
	return DecodeSnapshot(b)
}

// Save writes snap with the store TTL.
func (r *RedisSessionStore) Save(ctx context.Context, id string, snap SessionSnapshot) error {
	b, err := EncodeSnapshot(snap)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key(id), b, r.ttl).Err(); err != nil {
		return serr.Wrap(err, "failed to write session to redis")
	}
	return nil
}

// Delete removes the key.
func (r *RedisSessionStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		return serr.Wrap(err, "failed to delete session from redis")
	}
	return nil
}

// Close releases the Redis connection pool.
func (r *RedisSessionStore) Close() error {
	return r.client.Close()
}

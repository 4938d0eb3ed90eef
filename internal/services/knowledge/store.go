package knowledge

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/deepgram/asklyn/internal/infrastructure/redis"
)

// Document is one entry of the knowledge base.
type Document struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Text    string    `json:"text"`
	AddedAt time.Time `json:"added_at"`
}

// Store persists knowledge-base documents in insertion order.
type Store interface {
	// Add appends doc and returns the new document count.
	Add(ctx context.Context, doc Document) (int, error)
	// Put replaces the document named doc.Name in place, or appends doc when
	// there is none, and returns the document count.
	Put(ctx context.Context, doc Document) (int, error)
	All(ctx context.Context) ([]Document, error)
	Count(ctx context.Context) (int, error)
}

type MemoryStore struct {
	mu   sync.RWMutex
	docs []Document
}

type RedisStore struct {
	redisService *redis.Service
	key          string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func NewRedisStore(redisService *redis.Service, key string) *RedisStore {
	return &RedisStore{redisService: redisService, key: key}
}

// Memory Store implementation
func (ms *MemoryStore) Add(ctx context.Context, doc Document) (int, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.docs = append(ms.docs, doc)
	return len(ms.docs), nil
}

func (ms *MemoryStore) Put(ctx context.Context, doc Document) (int, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	for i := range ms.docs {
		if ms.docs[i].Name == doc.Name {
			ms.docs[i] = doc
			return len(ms.docs), nil
		}
	}
	ms.docs = append(ms.docs, doc)
	return len(ms.docs), nil
}

func (ms *MemoryStore) All(ctx context.Context) ([]Document, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	out := make([]Document, len(ms.docs))
	copy(out, ms.docs)
	return out, nil
}

func (ms *MemoryStore) Count(ctx context.Context) (int, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return len(ms.docs), nil
}

// Redis Store implementation
func (rs *RedisStore) Add(ctx context.Context, doc Document) (int, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return 0, err
	}

	n, err := rs.redisService.Append(ctx, rs.key, string(data))
	if err != nil {
		return 0, fmt.Errorf("appending document %s: %w", doc.ID, err)
	}
	return int(n), nil
}

func (rs *RedisStore) Put(ctx context.Context, doc Document) (int, error) {
	docs, err := rs.All(ctx)
	if err != nil {
		return 0, err
	}
	for i := range docs {
		if docs[i].Name != doc.Name {
			continue
		}
		data, err := json.Marshal(doc)
		if err != nil {
			return 0, err
		}
		if err := rs.redisService.SetAt(ctx, rs.key, int64(i), string(data)); err != nil {
			return 0, fmt.Errorf("replacing document %s: %w", doc.Name, err)
		}
		return len(docs), nil
	}
	return rs.Add(ctx, doc)
}

func (rs *RedisStore) All(ctx context.Context) ([]Document, error) {
	items, err := rs.redisService.List(ctx, rs.key)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	docs := make([]Document, 0, len(items))
	for _, item := range items {
		var doc Document
		if err := json.Unmarshal([]byte(item), &doc); err != nil {
			return nil, fmt.Errorf("decoding document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (rs *RedisStore) Count(ctx context.Context) (int, error) {
	n, err := rs.redisService.Len(ctx, rs.key)
	return int(n), err
}

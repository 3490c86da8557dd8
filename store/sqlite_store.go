package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/daybrief/daybrief/internal/logging"
	"github.com/daybrief/daybrief/models"
)

const (
	todosCacheKey = "todos_cache"
	pendingOpsKey = "pending_sync_operations"
)

// SqliteCacheStore implements CacheStore on a single-file sqlite database,
// holding each blob as one row in a kv table. Each write replaces the row
// whole, so a blob is either the previous version or the new one, never a
// mix.
type SqliteCacheStore struct {
	db  *sql.DB
	mu  sync.Mutex
	log zerolog.Logger
}

// NewSqliteCacheStore opens (and if necessary creates) the database at
// dbPath.
func NewSqliteCacheStore(dbPath string) (*SqliteCacheStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db %s: %w", dbPath, err)
	}

	const schema = `
	CREATE TABLE IF NOT EXISTS cache_blobs (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create cache_blobs table: %w", err)
	}

	return &SqliteCacheStore{
		db:  db,
		log: logging.Component("cache"),
	}, nil
}

// SaveTodos overwrites the cached todo set.
func (s *SqliteCacheStore) SaveTodos(todos []models.Todo) {
	if todos == nil {
		todos = []models.Todo{}
	}
	if err := s.setBlob(todosCacheKey, todos); err != nil {
		s.log.Error().Err(err).Msg("failed to cache todos")
	}
}

// LoadTodos returns the cached todo set, or empty when missing or corrupt.
func (s *SqliteCacheStore) LoadTodos() []models.Todo {
	var todos []models.Todo
	if err := s.getBlob(todosCacheKey, &todos); err != nil {
		s.log.Debug().Err(err).Msg("todo cache unreadable, treating as empty")
		return []models.Todo{}
	}
	if todos == nil {
		todos = []models.Todo{}
	}
	return todos
}

// EnqueueOperation appends op to the queue under the store mutex.
func (s *SqliteCacheStore) EnqueueOperation(op models.PendingOperation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	op.Timestamp = time.Now()
	ops := s.loadOpsLocked()
	ops = append(ops, op)
	if err := s.setBlob(pendingOpsKey, ops); err != nil {
		s.log.Error().Err(err).Str("type", string(op.Type)).Msg("failed to enqueue pending operation")
		return
	}
	s.log.Debug().Str("type", string(op.Type)).Str("id", op.ID).Msg("queued pending operation")
}

// LoadPendingOperations returns the queue in insertion order.
func (s *SqliteCacheStore) LoadPendingOperations() []models.PendingOperation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadOpsLocked()
}

// RemovePendingOperations deletes the operations matching keys.
func (s *SqliteCacheStore) RemovePendingOperations(keys []string) {
	if len(keys) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ops := filterOps(s.loadOpsLocked(), keys)
	if err := s.setBlob(pendingOpsKey, ops); err != nil {
		s.log.Error().Err(err).Msg("failed to rewrite pending queue")
	}
}

// ClearPendingOperations removes the queue.
func (s *SqliteCacheStore) ClearPendingOperations() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.deleteBlob(pendingOpsKey); err != nil {
		s.log.Error().Err(err).Msg("failed to clear pending queue")
	}
}

// ClearAll removes both blobs.
func (s *SqliteCacheStore) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range []string{todosCacheKey, pendingOpsKey} {
		if err := s.deleteBlob(key); err != nil {
			s.log.Error().Err(err).Str("key", key).Msg("failed to remove cache blob")
		}
	}
}

// Close closes the underlying database.
func (s *SqliteCacheStore) Close() error {
	return s.db.Close()
}

func (s *SqliteCacheStore) loadOpsLocked() []models.PendingOperation {
	var ops []models.PendingOperation
	if err := s.getBlob(pendingOpsKey, &ops); err != nil {
		s.log.Debug().Err(err).Msg("pending queue unreadable, treating as empty")
		return []models.PendingOperation{}
	}
	if ops == nil {
		ops = []models.PendingOperation{}
	}
	return ops
}

func (s *SqliteCacheStore) getBlob(key string, dest any) error {
	var value string
	err := s.db.QueryRow(`SELECT value FROM cache_blobs WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read blob %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(value), dest); err != nil {
		return fmt.Errorf("decode blob %s: %w", key, err)
	}
	return nil
}

func (s *SqliteCacheStore) setBlob(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal blob %s: %w", key, err)
	}
	_, err = s.db.Exec(`
		INSERT INTO cache_blobs (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(data), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("write blob %s: %w", key, err)
	}
	return nil
}

func (s *SqliteCacheStore) deleteBlob(key string) error {
	if _, err := s.db.Exec(`DELETE FROM cache_blobs WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete blob %s: %w", key, err)
	}
	return nil
}

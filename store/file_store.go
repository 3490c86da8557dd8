package store

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/daybrief/daybrief/internal/logging"
	"github.com/daybrief/daybrief/models"
)

const (
	todosCacheFile = "todos_cache.json"
	pendingOpsFile = "pending_sync_operations.json"
)

// FileCacheStore implements CacheStore on top of an afero filesystem,
// persisting each blob as a JSON file written atomically via a temp file
// and rename. Tests run it against an in-memory fs.
type FileCacheStore struct {
	fs  afero.Fs
	dir string
	mu  sync.Mutex // serializes queue read-modify-write cycles
	log zerolog.Logger
}

// NewFileCacheStore creates a file-backed cache rooted at dir, creating
// the directory if needed.
func NewFileCacheStore(fs afero.Fs, dir string) (*FileCacheStore, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir %s: %w", dir, err)
	}
	return &FileCacheStore{
		fs:  fs,
		dir: dir,
		log: logging.Component("cache"),
	}, nil
}

// SaveTodos overwrites the cached todo set. Storage failures are logged,
// never raised.
func (s *FileCacheStore) SaveTodos(todos []models.Todo) {
	if todos == nil {
		todos = []models.Todo{}
	}
	if err := s.writeBlob(todosCacheFile, todos); err != nil {
		s.log.Error().Err(err).Msg("failed to cache todos")
	}
}

// LoadTodos returns the cached todo set, or empty when missing or corrupt.
func (s *FileCacheStore) LoadTodos() []models.Todo {
	var todos []models.Todo
	if err := s.readBlob(todosCacheFile, &todos); err != nil {
		s.log.Debug().Err(err).Msg("todo cache unreadable, treating as empty")
		return []models.Todo{}
	}
	if todos == nil {
		todos = []models.Todo{}
	}
	return todos
}

// EnqueueOperation appends op to the persisted queue, stamping it with the
// current time. The whole queue is rewritten under the store mutex so
// concurrent enqueues cannot lose each other's entries.
func (s *FileCacheStore) EnqueueOperation(op models.PendingOperation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	op.Timestamp = time.Now()
	ops := s.loadOpsLocked()
	ops = append(ops, op)
	if err := s.writeBlob(pendingOpsFile, ops); err != nil {
		s.log.Error().Err(err).Str("type", string(op.Type)).Msg("failed to enqueue pending operation")
		return
	}
	s.log.Debug().Str("type", string(op.Type)).Str("id", op.ID).Msg("queued pending operation")
}

// LoadPendingOperations returns the queue in insertion order.
func (s *FileCacheStore) LoadPendingOperations() []models.PendingOperation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadOpsLocked()
}

// RemovePendingOperations deletes the operations matching keys.
func (s *FileCacheStore) RemovePendingOperations(keys []string) {
	if len(keys) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ops := filterOps(s.loadOpsLocked(), keys)
	if err := s.writeBlob(pendingOpsFile, ops); err != nil {
		s.log.Error().Err(err).Msg("failed to rewrite pending queue")
	}
}

// ClearPendingOperations removes the queue.
func (s *FileCacheStore) ClearPendingOperations() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fs.Remove(filepath.Join(s.dir, pendingOpsFile)); err != nil && !isNotExist(err) {
		s.log.Error().Err(err).Msg("failed to clear pending queue")
	}
}

// ClearAll removes both blobs.
func (s *FileCacheStore) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, name := range []string{todosCacheFile, pendingOpsFile} {
		if err := s.fs.Remove(filepath.Join(s.dir, name)); err != nil && !isNotExist(err) {
			s.log.Error().Err(err).Str("file", name).Msg("failed to remove cache file")
		}
	}
}

// Close is a no-op for the file store.
func (s *FileCacheStore) Close() error { return nil }

func (s *FileCacheStore) loadOpsLocked() []models.PendingOperation {
	var ops []models.PendingOperation
	if err := s.readBlob(pendingOpsFile, &ops); err != nil {
		s.log.Debug().Err(err).Msg("pending queue unreadable, treating as empty")
		return []models.PendingOperation{}
	}
	if ops == nil {
		ops = []models.PendingOperation{}
	}
	return ops
}

func (s *FileCacheStore) readBlob(name string, dest any) error {
	path := filepath.Join(s.dir, name)
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if isNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// writeBlob marshals v and writes it to a temp file before renaming over
// the target, so readers never observe a torn write.
func (s *FileCacheStore) writeBlob(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}

	path := filepath.Join(s.dir, name)
	tmpPath := path + ".tmp"
	if err := afero.WriteFile(s.fs, tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp file %s: %w", tmpPath, err)
	}
	if err := s.fs.Rename(tmpPath, path); err != nil {
		_ = s.fs.Remove(tmpPath)
		return fmt.Errorf("rename %s to %s: %w", tmpPath, path, err)
	}
	return nil
}

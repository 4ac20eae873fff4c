package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/ashureev/voicebooth/internal/domain"
)

// FileStore persists orders as a single JSON array in one file, fully
// rewritten on each append. The mutex serializes appends within this
// process; concurrent processes sharing the file can still lose writes,
// which is why the SQLite backend exists for anything beyond demos.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a file-backed order store. The file itself is created
// lazily on first append.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("order file path is empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create order directory: %w", err)
		}
	}
	return &FileStore{path: path}, nil
}

// Append reads the current list, appends the order, and rewrites the file.
func (s *FileStore) Append(ctx context.Context, order domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.readAll()
	existing = append(existing, order)

	data, err := json.MarshalIndent(existing, "", "  ")
	if err != nil {
		return fmt.Errorf("encode orders: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write orders file: %w", err)
	}
	return nil
}

// List returns all persisted orders. Read problems degrade to an empty list.
func (s *FileStore) List(ctx context.Context) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readAll(), nil
}

// Close is a no-op for the file backend.
func (s *FileStore) Close() error {
	return nil
}

// readAll loads the order list, treating a missing or unreadable file as
// empty. Callers must hold the mutex.
func (s *FileStore) readAll() []domain.Order {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Failed to read orders file, treating as empty", "path", s.path, "error", err)
		}
		return []domain.Order{}
	}

	var orders []domain.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		slog.Warn("Orders file is not valid JSON, treating as empty", "path", s.path, "error", err)
		return []domain.Order{}
	}
	return orders
}

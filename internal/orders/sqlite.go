package orders

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ashureev/voicebooth/internal/domain"
	"github.com/ashureev/voicebooth/internal/shared"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite. Unlike the JSON file backend
// each order is an atomic row insert, so concurrent sessions cannot lose
// each other's orders.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a SQLite-backed order store.
func NewSQLite(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// WAL mode for better concurrency.
	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS orders (
		order_id TEXT PRIMARY KEY,
		placed_at TEXT NOT NULL,
		items_json TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_orders_created ON orders(created_at);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Append inserts one order row, retrying briefly on SQLite lock conflicts.
func (s *SQLiteStore) Append(ctx context.Context, order domain.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("encode order items: %w", err)
	}

	query := `INSERT INTO orders (order_id, placed_at, items_json, created_at) VALUES (?, ?, ?, ?)`

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		_, lastErr = s.db.ExecContext(ctx, query,
			order.OrderID, order.Timestamp, string(items), time.Now().Unix())
		if lastErr == nil {
			return nil
		}
		if !shared.IsSQLiteConflictError(lastErr) {
			break
		}
		time.Sleep(time.Duration(attempt+1) * 50 * time.Millisecond)
	}
	return fmt.Errorf("insert order: %w", lastErr)
}

// List returns all persisted orders in append order.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Order, error) {
	query := `SELECT order_id, placed_at, items_json FROM orders ORDER BY rowid`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		var itemsJSON string
		if err := rows.Scan(&order.OrderID, &order.Timestamp, &itemsJSON); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		if err := json.Unmarshal([]byte(itemsJSON), &order.Items); err != nil {
			return nil, fmt.Errorf("decode order items for %s: %w", order.OrderID, err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}
	return orders, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

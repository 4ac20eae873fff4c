// Package eventlog writes session events to per-session NDJSON files.
package eventlog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ashureev/voicebooth/internal/domain"
)

// Config controls NDJSON event logging.
type Config struct {
	Enabled       bool
	Dir           string
	GlobalEnabled bool
	GlobalPath    string
	QueueSize     int
}

// Entry is one NDJSON log line.
type Entry struct {
	Time      string `json:"ts"`
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
	Action    string `json:"action"`
	Round     int    `json:"round,omitempty"`
	Detail    string `json:"detail,omitempty"`
}

// Logger asynchronously appends entries to one NDJSON file per session
// (dir/<user>/<session>.ndjson) and optionally to a single global file.
// Logging never blocks a tool call: when the queue is full the entry is
// dropped with a warning.
type Logger struct {
	cfg    Config
	logger *slog.Logger
	queue  chan Entry
	wg     sync.WaitGroup
	closed atomic.Bool
	once   sync.Once
}

// New creates an event logger. A disabled config yields a no-op logger.
func New(cfg Config, logger *slog.Logger) (*Logger, error) {
	if logger == nil {
		logger = slog.Default()
	}
	l := &Logger{cfg: cfg, logger: logger}
	if !cfg.Enabled {
		l.closed.Store(true)
		return l, nil
	}

	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1000
		l.cfg.QueueSize = cfg.QueueSize
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create event log directory: %w", err)
	}
	if cfg.GlobalEnabled {
		if err := os.MkdirAll(filepath.Dir(cfg.GlobalPath), 0o755); err != nil {
			return nil, fmt.Errorf("create global event log directory: %w", err)
		}
	}

	l.queue = make(chan Entry, cfg.QueueSize)
	l.wg.Add(1)
	go l.run()
	return l, nil
}

// Record implements session.EventSink.
func (l *Logger) Record(userID, sessionID string, event domain.Event) {
	l.Log(Entry{
		Time:      event.Time.Format(time.RFC3339Nano),
		UserID:    userID,
		SessionID: sessionID,
		Action:    event.Action,
		Round:     event.Round,
		Detail:    event.Detail,
	})
}

// Log enqueues an entry for writing.
func (l *Logger) Log(entry Entry) {
	if l.closed.Load() {
		return
	}
	select {
	case l.queue <- entry:
	default:
		l.logger.Warn("Event log queue full, dropping entry",
			"user_id", entry.UserID, "session_id", entry.SessionID, "action", entry.Action)
	}
}

// Close drains the queue and stops the writer goroutine.
func (l *Logger) Close() error {
	l.once.Do(func() {
		if l.queue != nil {
			l.closed.Store(true)
			close(l.queue)
			l.wg.Wait()
		}
	})
	return nil
}

func (l *Logger) run() {
	defer l.wg.Done()
	for entry := range l.queue {
		l.write(entry)
	}
}

func (l *Logger) write(entry Entry) {
	data, err := json.Marshal(entry)
	if err != nil {
		l.logger.Warn("Failed to encode event log entry", "error", err)
		return
	}
	line := append(data, '\n')

	dir := filepath.Join(l.cfg.Dir, sanitizePathComponent(entry.UserID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		l.logger.Warn("Failed to create session log directory", "dir", dir, "error", err)
		return
	}
	path := filepath.Join(dir, sanitizePathComponent(entry.SessionID)+".ndjson")
	if err := appendLine(path, line); err != nil {
		l.logger.Warn("Failed to write session event log", "path", path, "error", err)
	}

	if l.cfg.GlobalEnabled {
		if err := appendLine(l.cfg.GlobalPath, line); err != nil {
			l.logger.Warn("Failed to write global event log", "path", l.cfg.GlobalPath, "error", err)
		}
	}
}

func appendLine(path string, line []byte) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.Write(line)
	return err
}

// sanitizePathComponent keeps ids from escaping the log directory.
func sanitizePathComponent(s string) string {
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		default:
			return '_'
		}
	}, s)
	if s == "" || s == "." || s == ".." {
		return "_"
	}
	return s
}

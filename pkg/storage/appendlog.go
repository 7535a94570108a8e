package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// AppendLog persists one record per line in an append-only file. The file
// is only ever extended, never truncated or rewritten. Appends are safe for
// any number of concurrent callers: a mutex serializes writers so lines
// never interleave.
type AppendLog struct {
	mu    sync.Mutex
	file  *os.File
	path  string
	fsync bool
}

// Open ensures the parent directory exists and opens the log for appending.
// With fsync enabled every append also flushes to stable storage.
func Open(path string, fsync bool) (*AppendLog, error) {
	if path == "" {
		path = "./data/submissions.jsonl"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open append log: %w", err)
	}
	return &AppendLog{file: file, path: path, fsync: fsync}, nil
}

// Append writes the line, newline-terminated, as a single write. The line
// is handed to the OS before Append returns; an I/O failure is surfaced to
// the caller and nothing is considered committed.
func (l *AppendLog) Append(line []byte) error {
	buf := make([]byte, 0, len(line)+1)
	buf = append(buf, line...)
	buf = append(buf, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return fmt.Errorf("append log %s is closed", l.path)
	}
	if _, err := l.file.Write(buf); err != nil {
		return fmt.Errorf("append to log %s: %w", l.path, err)
	}
	if l.fsync {
		if err := l.file.Sync(); err != nil {
			return fmt.Errorf("sync log %s: %w", l.path, err)
		}
	}
	return nil
}

// Close releases the underlying file. Further appends fail.
func (l *AppendLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// Path exposes the underlying log location (useful for debugging).
func (l *AppendLog) Path() string {
	return l.path
}

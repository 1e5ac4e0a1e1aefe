// Package history persists one JSONL record per closed tab so past sweeps
// can be audited.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Record is one sweep-history row.
type Record struct {
	Time   time.Time `json:"time"`
	TabID  string    `json:"tab_id"`
	URL    string    `json:"url"`
	Title  string    `json:"title"`
	Reason string    `json:"reason"`
	DryRun bool      `json:"dry_run"`
}

// Writer appends records to a size-rotated JSONL file under the data dir.
type Writer struct {
	mu     sync.Mutex
	logger *lumberjack.Logger
}

// NewWriter creates the data directory and a writer for sweeps.jsonl in it.
func NewWriter(dataDir string) (*Writer, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("history: mkdir %s: %w", dataDir, err)
	}
	return &Writer{
		logger: &lumberjack.Logger{
			Filename:   filepath.Join(dataDir, "sweeps.jsonl"),
			MaxSize:    10,
			MaxBackups: 5,
			MaxAge:     90,
			Compress:   true,
		},
	}, nil
}

// Append writes one record as a JSON line.
func (w *Writer) Append(rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("history: marshal record: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.logger.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("history: write record: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.logger.Close()
}

package storage

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xaenox/rubot/internal/models"
)

const (
	historyFormat  = "rubot-history"
	historyVersion = 1
)

// header is the first record of every history file. It tags the format so
// a corrupt or foreign file fails loading instead of producing garbage
// messages, and leaves room for format evolution.
type header struct {
	Format  string `json:"format"`
	Version int    `json:"version"`
	User    string `json:"user"`
}

// FileBackend keeps one JSON-lines history file per user inside a dedicated
// directory: a header line followed by one message record per line.
type FileBackend struct {
	dir string
}

// NewFileBackend creates the storage directory if needed and returns a
// backend rooted there. Pre-existence of the directory is not an error.
func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating history directory: %w", err)
	}
	return &FileBackend{dir: dir}, nil
}

func (b *FileBackend) path(user string) string {
	return filepath.Join(b.dir, "history_"+user+".jsonl")
}

// SaveHistory rewrites the user's record in full.
func (b *FileBackend) SaveHistory(user string, messages []models.Message) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)

	if err := enc.Encode(header{Format: historyFormat, Version: historyVersion, User: user}); err != nil {
		return fmt.Errorf("error encoding history header: %w", err)
	}
	for _, msg := range messages {
		if err := enc.Encode(msg); err != nil {
			return fmt.Errorf("error encoding history message: %w", err)
		}
	}

	if err := os.WriteFile(b.path(user), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("error writing history file: %w", err)
	}
	return nil
}

// LoadHistory reads the user's record back. Any structural problem, from a
// missing file to a bad header or an unparsable line, is returned as an
// error so the caller can fall back to a fresh log.
func (b *FileBackend) LoadHistory(user string) ([]models.Message, error) {
	f, err := os.Open(b.path(user))
	if err != nil {
		return nil, fmt.Errorf("error opening history file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() {
		return nil, fmt.Errorf("history file for %q is empty", user)
	}
	var h header
	if err := json.Unmarshal(scanner.Bytes(), &h); err != nil {
		return nil, fmt.Errorf("error parsing history header: %w", err)
	}
	if h.Format != historyFormat || h.Version != historyVersion {
		return nil, fmt.Errorf("unsupported history format %q version %d", h.Format, h.Version)
	}

	var messages []models.Message
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		var msg models.Message
		if err := json.Unmarshal(line, &msg); err != nil {
			return nil, fmt.Errorf("error parsing history message: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading history file: %w", err)
	}
	return messages, nil
}

func (b *FileBackend) Close() error {
	// Nothing held open between calls.
	return nil
}

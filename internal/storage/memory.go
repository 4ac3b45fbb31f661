package storage

import (
	"fmt"
	"sync"

	"github.com/xaenox/rubot/internal/models"
)

// MemoryBackend holds history records in process memory. Used by tests and
// by the `memory` backend configuration, where history does not survive a
// restart.
type MemoryBackend struct {
	mu        sync.RWMutex
	histories map[string][]models.Message
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		histories: make(map[string][]models.Message),
	}
}

func (b *MemoryBackend) SaveHistory(user string, messages []models.Message) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	record := make([]models.Message, len(messages))
	copy(record, messages)
	b.histories[user] = record
	return nil
}

func (b *MemoryBackend) LoadHistory(user string) ([]models.Message, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	record, exists := b.histories[user]
	if !exists {
		return nil, fmt.Errorf("no history record for %q", user)
	}
	messages := make([]models.Message, len(record))
	copy(messages, record)
	return messages, nil
}

func (b *MemoryBackend) Close() error {
	// Nothing to close for in-memory storage.
	return nil
}

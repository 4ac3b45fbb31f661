package storage

import "github.com/xaenox/rubot/internal/models"

// Backend stores one durable conversation record per user identifier.
// SaveHistory overwrites the user's whole record; LoadHistory returns the
// messages in their original order.
type Backend interface {
	SaveHistory(user string, messages []models.Message) error
	LoadHistory(user string) ([]models.Message, error)
	Close() error
}

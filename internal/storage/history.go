package storage

import (
	"go.uber.org/zap"

	"github.com/xaenox/rubot/internal/models"
)

// History owns the ordered in-memory conversation log of one user and
// mirrors it to the user's durable record. The log is exclusively held:
// loading replaces it in a single swap, appends only ever grow it.
type History struct {
	user     string
	backend  Backend
	logger   *zap.Logger
	messages []models.Message
}

func NewHistory(user string, backend Backend, logger *zap.Logger) *History {
	return &History{
		user:    user,
		backend: backend,
		logger:  logger,
	}
}

// WelcomeMessage synthesizes the bot greeting that seeds a fresh log.
func WelcomeMessage(user string) models.Message {
	return models.NewBotMessage("Привет, " + user + "! Я чат-бот.\nНапишите /help для списка команд.")
}

// Append adds one message to the end of the log. It does not persist;
// callers pair it with Persist.
func (h *History) Append(msg models.Message) {
	h.messages = append(h.messages, msg)
}

// Persist writes the whole log to the user's durable record, replacing any
// previous record. Backend failures are logged and otherwise swallowed:
// a broken disk must never surface as a chat error.
func (h *History) Persist() {
	if err := h.backend.SaveHistory(h.user, h.messages); err != nil {
		h.logger.Error("Failed to persist chat history",
			zap.Error(err),
			zap.String("user", h.user),
			zap.Int("messages", len(h.messages)))
	}
}

// LoadOrInit restores the log from the durable record, forwarding every
// restored message to sink in original order. When the record is missing or
// unreadable the log is initialized with a single welcome message instead,
// and that one message is forwarded.
func (h *History) LoadOrInit(sink func(models.Message)) {
	loaded, err := h.backend.LoadHistory(h.user)
	if err == nil {
		h.messages = loaded
		for _, msg := range loaded {
			sink(msg)
		}
		return
	}

	h.logger.Info("Starting a fresh chat history",
		zap.Error(err),
		zap.String("user", h.user))

	welcome := WelcomeMessage(h.user)
	h.messages = []models.Message{welcome}
	sink(welcome)
}

// Clear resets the log to a single fresh welcome message and persists the
// result.
func (h *History) Clear() {
	h.messages = []models.Message{WelcomeMessage(h.user)}
	h.Persist()
}

// Messages returns a copy of the log in chronological order.
func (h *History) Messages() []models.Message {
	out := make([]models.Message, len(h.messages))
	copy(out, h.messages)
	return out
}

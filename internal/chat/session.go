package chat

import (
	"strings"

	"github.com/xaenox/rubot/internal/models"
	"github.com/xaenox/rubot/internal/storage"
)

// Responder turns one line of user input into a reply.
type Responder interface {
	Respond(input string) string
}

// Session ties the responder and the history together for one logged-in
// user. It drives the request/response pairing: every accepted user line is
// followed by exactly one bot reply, and each of the two is persisted right
// after it is appended.
type Session struct {
	user      string
	responder Responder
	history   *storage.History
}

func NewSession(user string, responder Responder, history *storage.History) *Session {
	return &Session{
		user:      user,
		responder: responder,
		history:   history,
	}
}

// Start restores the conversation, forwarding each restored message to sink
// in chronological order. A missing or unreadable record yields a single
// welcome message instead.
func (s *Session) Start(sink func(models.Message)) {
	s.history.LoadOrInit(sink)
}

// Send processes one raw input line. Blank input is ignored and reported
// with ok=false. Otherwise the trimmed text becomes a user message, the
// responder's reply becomes the paired bot message, and both are returned
// after being appended and persisted.
func (s *Session) Send(text string) (user, bot models.Message, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Message{}, models.Message{}, false
	}

	user = models.NewUserMessage(s.user, text)
	s.history.Append(user)
	s.history.Persist()

	bot = models.NewBotMessage(s.responder.Respond(text))
	s.history.Append(bot)
	s.history.Persist()

	return user, bot, true
}

// Clear drops the conversation and reseeds it with a welcome message.
func (s *Session) Clear() {
	s.history.Clear()
}

// Shutdown persists the log one final time before the client exits.
func (s *Session) Shutdown() {
	s.history.Persist()
}

// Messages returns the current log in chronological order.
func (s *Session) Messages() []models.Message {
	return s.history.Messages()
}

func (s *Session) User() string {
	return s.user
}

package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xaenox/rubot/internal/models"
	"github.com/xaenox/rubot/internal/storage"
)

// echoResponder replies with a fixed prefix so tests can tell user text and
// bot reply apart without pulling in the real rule table.
type echoResponder struct{}

func (echoResponder) Respond(input string) string { return "ответ: " + input }

func newTestSession(t *testing.T) (*Session, storage.Backend) {
	t.Helper()
	backend := storage.NewMemoryBackend()
	history := storage.NewHistory("Алиса", backend, zap.NewNop())
	s := NewSession("Алиса", echoResponder{}, history)
	s.Start(func(models.Message) {})
	return s, backend
}

func TestSession_SendPairsUserAndBot(t *testing.T) {
	s, _ := newTestSession(t)

	user, bot, ok := s.Send("привет")
	require.True(t, ok)

	assert.True(t, user.IsUser)
	assert.Equal(t, "Алиса", user.Author)
	assert.Equal(t, "привет", user.Text)

	assert.False(t, bot.IsUser)
	assert.Equal(t, models.BotName, bot.Author)
	assert.Equal(t, "ответ: привет", bot.Text)

	// Welcome, then the request/response pair, in order.
	msgs := s.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, user, msgs[1])
	assert.Equal(t, bot, msgs[2])
}

func TestSession_SendTrimsInput(t *testing.T) {
	s, _ := newTestSession(t)

	user, _, ok := s.Send("  привет  ")
	require.True(t, ok)
	assert.Equal(t, "привет", user.Text)
}

func TestSession_SendIgnoresBlankInput(t *testing.T) {
	s, _ := newTestSession(t)
	before := len(s.Messages())

	_, _, ok := s.Send("   ")
	assert.False(t, ok)
	assert.Len(t, s.Messages(), before)
}

func TestSession_SendPersistsBothMessages(t *testing.T) {
	s, backend := newTestSession(t)
	s.Send("привет")

	stored, err := backend.LoadHistory("Алиса")
	require.NoError(t, err)
	assert.Equal(t, s.Messages(), stored)
}

func TestSession_ClearResetsToWelcome(t *testing.T) {
	s, backend := newTestSession(t)
	s.Send("раз")
	s.Send("два")
	require.Len(t, s.Messages(), 5)

	s.Clear()

	msgs := s.Messages()
	require.Len(t, msgs, 1)
	assert.False(t, msgs[0].IsUser)
	assert.Contains(t, msgs[0].Text, "Алиса")

	stored, err := backend.LoadHistory("Алиса")
	require.NoError(t, err)
	assert.Equal(t, msgs, stored)
}

func TestSession_StartReplaysStoredConversation(t *testing.T) {
	backend := storage.NewMemoryBackend()

	first := NewSession("bob", echoResponder{}, storage.NewHistory("bob", backend, zap.NewNop()))
	first.Start(func(models.Message) {})
	first.Send("привет")

	second := NewSession("bob", echoResponder{}, storage.NewHistory("bob", backend, zap.NewNop()))
	var replayed []models.Message
	second.Start(func(m models.Message) { replayed = append(replayed, m) })

	assert.Equal(t, first.Messages(), replayed)
}

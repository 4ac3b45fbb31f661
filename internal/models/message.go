package models

import (
	"fmt"
	"time"
)

// BotName is the display name the bot signs its messages with.
const BotName = "Бот"

// TimeLayout is the wall-clock stamp format carried by every message.
const TimeLayout = "15:04"

// Message is one entry of a conversation log. Messages carry no identifier:
// ordering is positional within the log.
type Message struct {
	Author string `json:"author"`
	Text   string `json:"text"`
	Time   string `json:"time"`
	IsUser bool   `json:"is_user"`
}

// NewUserMessage creates a message authored by the human user, stamped with
// the current wall-clock time.
func NewUserMessage(author, text string) Message {
	return Message{
		Author: author,
		Text:   text,
		Time:   time.Now().Format(TimeLayout),
		IsUser: true,
	}
}

// NewBotMessage creates a bot-authored message stamped with the current
// wall-clock time.
func NewBotMessage(text string) Message {
	return Message{
		Author: BotName,
		Text:   text,
		Time:   time.Now().Format(TimeLayout),
		IsUser: false,
	}
}

func (m Message) String() string {
	return fmt.Sprintf("[%s] %s: %s", m.Time, m.Author, m.Text)
}

package telegram

import (
	"strings"

	"github.com/jackwardell/partypeople/internal/domain/user"
)

type apiResponse[T any] struct {
	OK          bool   `json:"ok"`
	Result      T      `json:"result"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
	Parameters  struct {
		RetryAfter int `json:"retry_after"`
	} `json:"parameters"`
}

type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message,omitempty"`
}

type Message struct {
	MessageID int64           `json:"message_id"`
	From      *User           `json:"from,omitempty"`
	Chat      Chat            `json:"chat"`
	Date      int64           `json:"date"`
	Text      string          `json:"text"`
	Entities  []MessageEntity `json:"entities,omitempty"`
}

type Chat struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

type User struct {
	ID        int64  `json:"id"`
	IsBot     bool   `json:"is_bot"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`
}

// MessageEntity marks a span of Message.Text. User is set for text_mention entities.
type MessageEntity struct {
	Type   string `json:"type"`
	Offset int    `json:"offset"`
	Length int    `json:"length"`
	User   *User  `json:"user,omitempty"`
}

const (
	EntityBotCommand  = "bot_command"
	EntityTextMention = "text_mention"
)

type BotCommand struct {
	Command     string `json:"command"`
	Description string `json:"description"`
}

type chatMember struct {
	Status string `json:"status"`
	User   User   `json:"user"`
}

// ToDomain maps a Telegram account to a sweepstake user. Empty optional names become nil.
func (u User) ToDomain() user.User {
	out := user.User{ID: u.ID, FirstName: strings.TrimSpace(u.FirstName)}
	if v := strings.TrimSpace(u.LastName); v != "" {
		out.LastName = &v
	}
	if v := strings.TrimSpace(u.Username); v != "" {
		out.Username = &v
	}
	return out
}

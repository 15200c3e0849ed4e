package middleware

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	MessagesCookie = "messages"
	pendingKey     = "pending_messages"
)

const (
	LevelSuccess = "success"
	LevelInfo    = "info"
	LevelError   = "error"
)

// Message is a one-shot notice shown on the next rendered page.
type Message struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

// AddMessage queues a notice. It is written to the messages cookie so that it
// survives the redirect that usually follows.
func AddMessage(c *gin.Context, level, text string) {
	pending := append(pendingMessages(c), Message{Level: level, Text: text})
	c.Set(pendingKey, pending)

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(MessagesCookie, EncodeMessages(pending), 0, "/", "", false, true)
}

// Messages drains every notice: the ones carried in by the cookie and the ones
// queued during this request.
func Messages(c *gin.Context) []Message {
	var all []Message
	raw, err := c.Cookie(MessagesCookie)
	if err == nil && raw != "" {
		if carried, err := DecodeMessages(raw); err == nil {
			all = append(all, carried...)
		}
	}
	pending := pendingMessages(c)
	all = append(all, pending...)
	if raw != "" || len(pending) > 0 {
		c.SetCookie(MessagesCookie, "", -1, "/", "", false, true)
	}
	c.Set(pendingKey, []Message(nil))
	if all == nil {
		all = []Message{}
	}
	return all
}

func pendingMessages(c *gin.Context) []Message {
	v, ok := c.Get(pendingKey)
	if !ok {
		return nil
	}
	msgs, _ := v.([]Message)
	return msgs
}

func EncodeMessages(msgs []Message) string {
	raw, _ := json.Marshal(msgs)
	return base64.RawURLEncoding.EncodeToString(raw)
}

func DecodeMessages(value string) ([]Message, error) {
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil, err
	}
	var msgs []Message
	if err := json.Unmarshal(raw, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

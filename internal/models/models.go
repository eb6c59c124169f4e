package models

import (
	"strings"
	"time"
)

// Sender identifies which side of the conversation authored a message.
const (
	SenderUser = "user"
	SenderAI   = "ai"
)

// User represents the remote user record this client chats as. The server
// assigns the id; the client only ever persists it.
type User struct {
	ID int64 `json:"id"`
}

// Persona holds the configured AI character's attributes. Multi-select
// fields are array-typed on the wire; created once and treated as immutable
// by this client.
type Persona struct {
	ID          int64    `json:"id,omitempty"`
	UserID      int64    `json:"user_id,omitempty"`
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	Personality []string `json:"personality"`
	Tone        string   `json:"tone"`
	Likes       []string `json:"likes,omitempty"`
	Dislikes    []string `json:"dislikes,omitempty"`
}

// IsZero reports whether no persona has been set.
func (p Persona) IsZero() bool {
	return p.Name == "" && len(p.Personality) == 0
}

// AvatarGlyph returns the upper-cased first rune of the persona name, the
// glyph the header renders next to the name.
func (p Persona) AvatarGlyph() string {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return ""
	}
	return strings.ToUpper(string([]rune(name)[0]))
}

// Message is a single entry in the chat log.
type Message struct {
	ID        string    `json:"id,omitempty"`
	Sender    string    `json:"sender"`
	Text      string    `json:"message"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// CreatePersonaRequest is the request structure for creating a persona.
type CreatePersonaRequest struct {
	UserID      int64    `json:"user_id"`
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	Personality []string `json:"personality"`
	Tone        string   `json:"tone"`
	Likes       []string `json:"likes,omitempty"`
	Dislikes    []string `json:"dislikes,omitempty"`
}

// ChatRequest carries one outgoing chat message.
type ChatRequest struct {
	UserID  int64  `json:"user_id"`
	Message string `json:"message"`
}

// ChatResponse carries the AI reply to a single chat message.
type ChatResponse struct {
	Reply string `json:"reply"`
}

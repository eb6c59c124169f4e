package session

import (
	"ai-persona-chat/client/internal/models"
)

// State is one of the two mutually exclusive UI states. Exactly one is
// active at a time: Setup until a persona exists, Chat afterwards, back to
// Setup only via Reset.
type State string

const (
	StateSetup State = "setup"
	StateChat  State = "chat"
)

// EventSink receives the output events of the session client. The rendering
// layer implements this; the session client never touches presentation
// directly.
type EventSink interface {
	// StateChanged fires on every Setup/Chat transition, and once at the
	// end of Initialize with the resulting state.
	StateChanged(state State)

	// PersonaChanged carries the active persona for the chat header. A
	// zero persona means none is active (after Reset).
	PersonaChanged(persona models.Persona)

	// MessageAppended adds one entry to the end of the visible log.
	MessageAppended(msg models.Message)

	// HistoryReplaced swaps the entire visible log for the server's
	// ordered history. An empty history keeps the welcome placeholder.
	HistoryReplaced(messages []models.Message)

	// TypingChanged toggles the pending-reply indicator.
	TypingChanged(active bool)

	// ErrorRaised surfaces a user-visible error without changing state.
	ErrorRaised(message string)

	// LogReset clears the log back to the welcome placeholder.
	LogReset()
}

// NopSink discards all events. Useful as a default before a view attaches.
type NopSink struct{}

func (NopSink) StateChanged(State)               {}
func (NopSink) PersonaChanged(models.Persona)    {}
func (NopSink) MessageAppended(models.Message)   {}
func (NopSink) HistoryReplaced([]models.Message) {}
func (NopSink) TypingChanged(bool)               {}
func (NopSink) ErrorRaised(string)               {}
func (NopSink) LogReset()                        {}

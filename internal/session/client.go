package session

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"ai-persona-chat/client/internal/models"
	"ai-persona-chat/client/pkg/errors"
	"ai-persona-chat/client/pkg/logger"
)

// FallbackReply is appended in place of the AI reply when a chat send
// fails. The user's own message is never rolled back.
const FallbackReply = "Sorry, I had trouble responding. Please try again."

// User-visible error texts for the setup flow.
const (
	errCreateUser    = "Failed to create user. Please try again."
	errCreatePersona = "Failed to create persona. Please try again."
)

// API is the slice of the remote persona-chat contract the session client
// consumes. internal/api.Client satisfies it; tests substitute a fake.
type API interface {
	CreateUser(ctx context.Context) (models.User, error)
	CreatePersona(ctx context.Context, req models.CreatePersonaRequest) (models.Persona, error)
	GetPersona(ctx context.Context, userID int64) (models.Persona, error)
	GetHistory(ctx context.Context, userID int64, limit int) ([]models.Message, error)
	SendMessage(ctx context.Context, userID int64, message string) (string, error)
}

// Store is the durable local session record: the persisted user id plus an
// optional cached persona copy.
type Store interface {
	UserID() (int64, bool, error)
	SetUserID(int64) error
	Persona() (models.Persona, bool, error)
	SetPersona(models.Persona) error
	Reset() error
}

// PersonaForm carries the setup form input for SubmitPersona.
type PersonaForm struct {
	Name        string
	Role        string
	Personality []string
	Tone        string
	Likes       []string
	Dislikes    []string
}

// Validate rejects incomplete forms locally, before any network call.
func (f PersonaForm) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return errors.NewValidationError("Please enter a name for your companion")
	}
	if len(f.Personality) == 0 {
		return errors.NewValidationError("Please select at least one personality trait")
	}
	return nil
}

// Client owns the client-side session state: which of the two views is
// active, the persisted user identity and its persona, and the optimistic
// message flow. All state lives here explicitly; operations are driven by
// the view layer and side effects flow back through the EventSink.
type Client struct {
	api   API
	store Store
	sink  EventSink
	log   *logger.Logger

	historyLimit int

	state   State
	userID  int64
	hasUser bool
	persona models.Persona

	// sending gates chat submissions to one in-flight request; overlapping
	// submits are dropped rather than risking misattributed replies.
	sending atomic.Bool
}

// Option configures a Client.
type Option func(*Client)

// WithHistoryLimit caps how many messages a history load requests.
func WithHistoryLimit(limit int) Option {
	return func(c *Client) { c.historyLimit = limit }
}

// New creates a session client in the Setup state with no view attached.
func New(api API, store Store, sink EventSink, opts ...Option) *Client {
	if sink == nil {
		sink = NopSink{}
	}
	c := &Client{
		api:          api,
		store:        store,
		sink:         sink,
		log:          logger.GetGlobal(),
		historyLimit: 50,
		state:        StateSetup,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the active UI state.
func (c *Client) State() State { return c.state }

// Persona returns the active persona, zero when none is set.
func (c *Client) Persona() models.Persona { return c.persona }

// UserID returns the session's user id and whether one exists.
func (c *Client) UserID() (int64, bool) { return c.userID, c.hasUser }

// Initialize resumes a persisted session. With a stored user id it loads
// the persona (remote first, cached copy as fallback) and enters Chat with
// the full history; without one, or on any failure, it stays in Setup.
// Bootstrap failures are logged, never surfaced to the user. No remote user
// record is created here; creation is deferred to the first persona submit.
func (c *Client) Initialize(ctx context.Context) {
	id, ok, err := c.store.UserID()
	if err != nil {
		c.log.LogError(err, "failed to read persisted session")
		c.sink.StateChanged(StateSetup)
		return
	}
	if !ok {
		c.log.Debug("no persisted session, showing setup")
		c.sink.StateChanged(StateSetup)
		return
	}
	c.userID = id
	c.hasUser = true

	persona, err := c.api.GetPersona(ctx, id)
	if err != nil {
		c.log.LogError(err, "failed to load persona", "user_id", id)
		cached, ok, cacheErr := c.store.Persona()
		if cacheErr != nil || !ok {
			c.sink.StateChanged(StateSetup)
			return
		}
		persona = cached
	}

	c.persona = persona
	c.state = StateChat
	c.sink.PersonaChanged(persona)
	c.sink.StateChanged(StateChat)
	c.loadHistory(ctx)
}

// SubmitPersona validates the form, lazily creates the remote user record
// if none exists yet, creates the persona, and on success enters Chat and
// loads history. On any failure the Setup view stays active and the user
// retries by resubmitting; nothing is retried automatically.
func (c *Client) SubmitPersona(ctx context.Context, form PersonaForm) error {
	if err := form.Validate(); err != nil {
		c.sink.ErrorRaised(err.Error())
		return err
	}

	if !c.hasUser {
		user, err := c.api.CreateUser(ctx)
		if err != nil {
			c.log.LogError(err, "failed to create user")
			c.sink.ErrorRaised(errCreateUser)
			return err
		}
		if err := c.store.SetUserID(user.ID); err != nil {
			c.log.LogError(err, "failed to persist user id", "user_id", user.ID)
			c.sink.ErrorRaised(errCreateUser)
			return err
		}
		c.userID = user.ID
		c.hasUser = true
		c.log.Info("created user", "user_id", user.ID)
	}

	persona, err := c.api.CreatePersona(ctx, models.CreatePersonaRequest{
		UserID:      c.userID,
		Name:        strings.TrimSpace(form.Name),
		Role:        strings.TrimSpace(form.Role),
		Personality: form.Personality,
		Tone:        form.Tone,
		Likes:       form.Likes,
		Dislikes:    form.Dislikes,
	})
	if err != nil {
		c.log.LogError(err, "failed to create persona", "user_id", c.userID)
		c.sink.ErrorRaised(errCreatePersona)
		return err
	}

	if err := c.store.SetPersona(persona); err != nil {
		// The server copy is authoritative; a failed cache write is not fatal.
		c.log.LogError(err, "failed to cache persona", "user_id", c.userID)
	}

	c.persona = persona
	c.state = StateChat
	c.sink.PersonaChanged(persona)
	c.sink.StateChanged(StateChat)
	c.log.Info("persona created", "user_id", c.userID, "persona", persona.Name)
	c.loadHistory(ctx)
	return nil
}

// SubmitMessage sends one chat message. Empty or whitespace-only input is a
// silent no-op, as is a submit while another send is in flight. The user's
// message is appended optimistically before the request; a failed send
// degrades to FallbackReply in the reply slot.
func (c *Client) SubmitMessage(ctx context.Context, text string) {
	message := strings.TrimSpace(text)
	if message == "" {
		return
	}
	if !c.sending.CompareAndSwap(false, true) {
		c.log.Debug("send already in flight, dropping submit")
		return
	}
	defer c.sending.Store(false)

	c.sink.MessageAppended(models.Message{
		ID:        uuid.NewString(),
		Sender:    models.SenderUser,
		Text:      message,
		Timestamp: time.Now(),
	})
	c.sink.TypingChanged(true)

	reply, err := c.api.SendMessage(ctx, c.userID, message)
	c.sink.TypingChanged(false)
	if err != nil {
		c.log.LogError(err, "chat send failed", "user_id", c.userID)
		reply = FallbackReply
	}

	c.sink.MessageAppended(models.Message{
		ID:        uuid.NewString(),
		Sender:    models.SenderAI,
		Text:      reply,
		Timestamp: time.Now(),
	})
}

// LoadHistory reloads the full server-side message log into the view.
func (c *Client) LoadHistory(ctx context.Context) {
	c.loadHistory(ctx)
}

func (c *Client) loadHistory(ctx context.Context) {
	messages, err := c.api.GetHistory(ctx, c.userID, c.historyLimit)
	if err != nil {
		// History is a best-effort rehydration; the log keeps whatever it
		// was showing.
		c.log.LogError(err, "failed to load history", "user_id", c.userID)
		return
	}
	c.sink.HistoryReplaced(messages)
}

// Reset clears all persisted session state and returns to Setup with the
// welcome placeholder restored. The confirmation gate lives in the view;
// callers invoke Reset only after the user has confirmed.
func (c *Client) Reset() error {
	if err := c.store.Reset(); err != nil {
		c.log.LogError(err, "failed to clear session store")
		return err
	}
	c.userID = 0
	c.hasUser = false
	c.persona = models.Persona{}
	c.state = StateSetup
	c.sink.LogReset()
	c.sink.PersonaChanged(models.Persona{})
	c.sink.StateChanged(StateSetup)
	c.log.Info("session reset")
	return nil
}

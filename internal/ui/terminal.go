package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"ai-persona-chat/client/internal/models"
	"ai-persona-chat/client/internal/session"
)

// WelcomeMsg is the placeholder shown while the chat log is empty.
const WelcomeMsg = "Start chatting with your AI companion!"

var (
	headerColor = color.New(color.FgMagenta, color.Bold)
	userColor   = color.New(color.FgCyan)
	aiColor     = color.New(color.FgGreen)
	errorColor  = color.New(color.FgRed)
	faintColor  = color.New(color.Faint)
)

// Terminal is the line-oriented rendering layer. It implements
// session.EventSink for output events and drives the session client's
// operations from stdin input.
type Terminal struct {
	in      *bufio.Scanner
	out     io.Writer
	persona models.Persona
	state   session.State
}

// New creates a terminal view reading from in and rendering to out.
func New(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		in:    bufio.NewScanner(in),
		out:   out,
		state: session.StateSetup,
	}
}

// StateChanged renders the transition between the two views.
func (t *Terminal) StateChanged(state session.State) {
	t.state = state
	if state == session.StateChat {
		t.printHeader()
	}
}

// PersonaChanged updates the chat header persona.
func (t *Terminal) PersonaChanged(persona models.Persona) {
	t.persona = persona
}

// MessageAppended renders one log entry.
func (t *Terminal) MessageAppended(msg models.Message) {
	t.printMessage(msg)
}

// HistoryReplaced re-renders the whole log in server order.
func (t *Terminal) HistoryReplaced(messages []models.Message) {
	if len(messages) == 0 {
		faintColor.Fprintln(t.out, WelcomeMsg)
		return
	}
	for _, msg := range messages {
		t.printMessage(msg)
	}
}

// TypingChanged shows or clears the pending-reply indicator.
func (t *Terminal) TypingChanged(active bool) {
	if active {
		faintColor.Fprintf(t.out, "%s is typing...\n", t.personaLabel())
	}
}

// ErrorRaised surfaces a user-visible error.
func (t *Terminal) ErrorRaised(message string) {
	errorColor.Fprintln(t.out, message)
}

// LogReset restores the welcome placeholder.
func (t *Terminal) LogReset() {
	fmt.Fprintln(t.out)
	faintColor.Fprintln(t.out, WelcomeMsg)
}

// Run drives the UI loop until the input closes or the user quits. In
// Setup it walks the persona form; in Chat each line is a message, with
// /reset and /quit as commands.
func (t *Terminal) Run(ctx context.Context, client *session.Client) {
	client.Initialize(ctx)

	for {
		if t.state == session.StateSetup {
			form, ok := t.promptPersonaForm()
			if !ok {
				return
			}
			// Validation and network errors have already been rendered
			// through ErrorRaised; just prompt again.
			client.SubmitPersona(ctx, form)
			continue
		}

		fmt.Fprint(t.out, "> ")
		if !t.in.Scan() {
			return
		}
		line := strings.TrimSpace(t.in.Text())

		switch line {
		case "/quit", "/exit":
			return
		case "/reset":
			if t.confirmReset() {
				client.Reset()
			}
		default:
			client.SubmitMessage(ctx, line)
		}
	}
}

// promptPersonaForm walks the setup form field by field. ok is false when
// input has been closed.
func (t *Terminal) promptPersonaForm() (session.PersonaForm, bool) {
	headerColor.Fprintln(t.out, "Create your AI companion")

	var form session.PersonaForm
	fields := []struct {
		prompt string
		assign func(string)
	}{
		{"Name: ", func(v string) { form.Name = v }},
		{"Role (e.g. friend, mentor): ", func(v string) { form.Role = v }},
		{"Personality traits (comma-separated): ", func(v string) { form.Personality = splitList(v) }},
		{"Tone (e.g. casual, formal): ", func(v string) { form.Tone = v }},
		{"Likes (comma-separated, optional): ", func(v string) { form.Likes = splitList(v) }},
		{"Dislikes (comma-separated, optional): ", func(v string) { form.Dislikes = splitList(v) }},
	}
	for _, field := range fields {
		fmt.Fprint(t.out, field.prompt)
		if !t.in.Scan() {
			return session.PersonaForm{}, false
		}
		field.assign(strings.TrimSpace(t.in.Text()))
	}
	return form, true
}

// confirmReset gates the destructive reset behind an explicit second step.
func (t *Terminal) confirmReset() bool {
	fmt.Fprint(t.out, "Reset your persona and chat history? [y/N] ")
	if !t.in.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(t.in.Text()))
	return answer == "y" || answer == "yes"
}

func (t *Terminal) printHeader() {
	fmt.Fprintln(t.out)
	headerColor.Fprintf(t.out, "(%s) %s", t.persona.AvatarGlyph(), t.persona.Name)
	if t.persona.Role != "" {
		faintColor.Fprintf(t.out, "  %s", t.persona.Role)
	}
	fmt.Fprintln(t.out)
}

func (t *Terminal) printMessage(msg models.Message) {
	switch msg.Sender {
	case models.SenderUser:
		userColor.Fprintf(t.out, "You: %s\n", msg.Text)
	default:
		aiColor.Fprintf(t.out, "%s: %s\n", t.personaLabel(), msg.Text)
	}
}

func (t *Terminal) personaLabel() string {
	if t.persona.Name != "" {
		return t.persona.Name
	}
	return "AI"
}

// splitList parses a comma-separated multi-select into its canonical
// array form, dropping empty entries.
func splitList(input string) []string {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	var items []string
	for _, part := range strings.Split(input, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

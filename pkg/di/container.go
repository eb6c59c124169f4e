package di

import (
	"fmt"
	"os"

	"ai-persona-chat/client/internal/api"
	"ai-persona-chat/client/internal/session"
	"ai-persona-chat/client/internal/store"
	"ai-persona-chat/client/internal/ui"
	"ai-persona-chat/client/pkg/config"
	"ai-persona-chat/client/pkg/logger"
)

// Container holds all the dependencies for the application
type Container struct {
	Logger   *logger.Logger
	Store    *store.Store
	API      *api.Client
	Session  *session.Client
	Terminal *ui.Terminal
}

// New wires the client from configuration: local session store, remote API
// client, terminal view, and the session client joining them.
func New(cfg *config.Config, log *logger.Logger) (*Container, error) {
	sessionStore, err := store.Open(cfg.Storage.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	apiClient := api.New()
	terminal := ui.New(os.Stdin, os.Stdout)
	sessionClient := session.New(apiClient, sessionStore, terminal,
		session.WithHistoryLimit(cfg.Chat.HistoryLimit))

	return &Container{
		Logger:   log,
		Store:    sessionStore,
		API:      apiClient,
		Session:  sessionClient,
		Terminal: terminal,
	}, nil
}

// Close releases held resources, flushing the session store to disk.
func (c *Container) Close() error {
	return c.Store.Close()
}

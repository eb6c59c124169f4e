package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"ai-persona-chat/client/internal/models"
	"ai-persona-chat/client/pkg/config"
	"ai-persona-chat/client/pkg/errors"
	"ai-persona-chat/client/pkg/logger"
)

// Client is a typed HTTP client for the persona-chat API. One method per
// remote operation; every call takes a context and returns a
// *errors.ClientError on failure (transport or non-2xx status).
type Client struct {
	client  *http.Client
	baseURL string
	log     *logger.Logger
}

// New creates an API client from the application config.
func New() *Client {
	cfg := config.Get()
	return NewWithBaseURL(cfg.API.BaseURL, cfg.API.Timeout)
}

// NewWithBaseURL creates an API client against an explicit base URL.
// Tests point this at an httptest server.
func NewWithBaseURL(baseURL string, timeout time.Duration) *Client {
	return &Client{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		log:     logger.GetGlobal(),
	}
}

// CreateUser creates a new anonymous user record and returns its id.
func (c *Client) CreateUser(ctx context.Context) (models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPost, "/api/users/", nil, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// CreatePersona creates the persona for a user and returns the stored copy.
func (c *Client) CreatePersona(ctx context.Context, req models.CreatePersonaRequest) (models.Persona, error) {
	var persona models.Persona
	if err := c.do(ctx, http.MethodPost, "/api/personas/", req, &persona); err != nil {
		return models.Persona{}, err
	}
	return persona, nil
}

// GetPersona fetches the persona stored for a user.
func (c *Client) GetPersona(ctx context.Context, userID int64) (models.Persona, error) {
	var persona models.Persona
	path := fmt.Sprintf("/api/personas/%d/", userID)
	if err := c.do(ctx, http.MethodGet, path, nil, &persona); err != nil {
		return models.Persona{}, err
	}
	return persona, nil
}

// GetHistory fetches a user's chat history in server order, oldest first.
// A non-positive limit lets the server apply its own default.
func (c *Client) GetHistory(ctx context.Context, userID int64, limit int) ([]models.Message, error) {
	path := fmt.Sprintf("/api/messages/%d/", userID)
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var messages []models.Message
	if err := c.do(ctx, http.MethodGet, path, nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// SendMessage sends one chat message and returns the AI reply.
func (c *Client) SendMessage(ctx context.Context, userID int64, message string) (string, error) {
	req := models.ChatRequest{UserID: userID, Message: message}
	var resp models.ChatResponse
	if err := c.do(ctx, http.MethodPost, "/api/chat/", req, &resp); err != nil {
		return "", err
	}
	return resp.Reply, nil
}

// do issues one JSON request and decodes the response into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.NewTransportError("failed to encode request body", err)
		}
		reader = bytes.NewReader(data)
	}

	url := c.baseURL + path
	httpReq, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return errors.NewTransportError("failed to create request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		c.log.LogError(err, "request failed", "method", method, "url", url)
		return errors.NewTransportError("request failed", err)
	}
	defer httpResp.Body.Close()
	c.log.LogRequest(method, url, httpResp.StatusCode, time.Since(start))

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, io.LimitReader(httpResp.Body, 4096))
		return errors.NewStatusError(httpResp.StatusCode, fmt.Sprintf("%s %s", method, path))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(httpResp.Body).Decode(out); err != nil {
		return errors.NewTransportError("failed to decode response body", err)
	}
	return nil
}

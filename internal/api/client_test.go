package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-persona-chat/client/internal/api"
	"ai-persona-chat/client/internal/models"
	pkgerrors "ai-persona-chat/client/pkg/errors"
)

func newTestClient(t *testing.T, handler http.Handler) *api.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return api.NewWithBaseURL(server.URL, 5*time.Second)
}

func TestCreateUser(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/users/", r.URL.Path)
		json.NewEncoder(w).Encode(models.User{ID: 17})
	}))

	user, err := client.CreateUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(17), user.ID)
}

func TestCreatePersonaSendsArrayFields(t *testing.T) {
	var received models.CreatePersonaRequest
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/personas/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(models.Persona{
			ID:          1,
			UserID:      received.UserID,
			Name:        received.Name,
			Personality: received.Personality,
		})
	}))

	persona, err := client.CreatePersona(context.Background(), models.CreatePersonaRequest{
		UserID:      17,
		Name:        "Luna",
		Role:        "friend",
		Personality: []string{"curious", "witty"},
		Tone:        "casual",
		Likes:       []string{"coffee"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"curious", "witty"}, received.Personality)
	assert.Equal(t, []string{"coffee"}, received.Likes)
	assert.Equal(t, "Luna", persona.Name)
}

func TestGetPersona(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/personas/17/", r.URL.Path)
		json.NewEncoder(w).Encode(models.Persona{UserID: 17, Name: "Luna"})
	}))

	persona, err := client.GetPersona(context.Background(), 17)
	require.NoError(t, err)
	assert.Equal(t, "Luna", persona.Name)
}

func TestGetHistoryPreservesOrderAndLimit(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/messages/17/", r.URL.Path)
		assert.Equal(t, "25", r.URL.Query().Get("limit"))
		json.NewEncoder(w).Encode([]models.Message{
			{Sender: models.SenderUser, Text: "hi"},
			{Sender: models.SenderAI, Text: "hello"},
			{Sender: models.SenderUser, Text: "still there?"},
		})
	}))

	messages, err := client.GetHistory(context.Background(), 17, 25)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "hi", messages[0].Text)
	assert.Equal(t, "hello", messages[1].Text)
	assert.Equal(t, "still there?", messages[2].Text)
}

func TestSendMessage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat/", r.URL.Path)
		var req models.ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(17), req.UserID)
		assert.Equal(t, "hello", req.Message)
		json.NewEncoder(w).Encode(models.ChatResponse{Reply: "hi there"})
	}))

	reply, err := client.SendMessage(context.Background(), 17, "hello")
	require.NoError(t, err)
	assert.Equal(t, "hi there", reply)
}

func TestNonSuccessStatusMapsToStatusError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "persona not found", http.StatusNotFound)
	}))

	_, err := client.GetPersona(context.Background(), 99)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsKind(err, pkgerrors.KindStatus))

	var clientErr *pkgerrors.ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, http.StatusNotFound, clientErr.StatusCode)
}

func TestUnreachableServerMapsToTransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // connection refused from here on
	client := api.NewWithBaseURL(server.URL, time.Second)

	_, err := client.CreateUser(context.Background())
	require.Error(t, err)
	assert.True(t, pkgerrors.IsKind(err, pkgerrors.KindTransport))
}

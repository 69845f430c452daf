package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSendMessage(t *testing.T) {
	var gotPath string
	var gotPayload map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		err := json.NewDecoder(r.Body).Decode(&gotPayload)
		assert.NoError(t, err)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true,"result":{"message_id":42}}`))
	}))
	defer server.Close()

	client := NewClient("test-token", server.URL, server.Client())

	err := client.SendMessage(context.Background(), 123456, "<b>Rates</b>\nUSD: 32.45 ↑")
	assert.NoError(t, err)

	assert.Equal(t, "/bottest-token/sendMessage", gotPath)
	assert.Equal(t, float64(123456), gotPayload["chat_id"])
	assert.Equal(t, "<b>Rates</b>\nUSD: 32.45 ↑", gotPayload["text"])
	assert.Equal(t, "HTML", gotPayload["parse_mode"])
}

func TestSendMessageRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"ok":false,"description":"Forbidden: bot was blocked by the user"}`))
	}))
	defer server.Close()

	client := NewClient("test-token", server.URL, server.Client())

	err := client.SendMessage(context.Background(), 123456, "hello")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "blocked by the user")
}

func TestSendMessageServerDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient("test-token", server.URL, nil)

	err := client.SendMessage(context.Background(), 123456, "hello")
	assert.Error(t, err)
}

func TestSendMessageMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	client := NewClient("test-token", server.URL, server.Client())

	err := client.SendMessage(context.Background(), 123456, "hello")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode sendMessage response")
}

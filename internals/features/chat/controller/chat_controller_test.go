package controller

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatApp(webhookURL string) *fiber.App {
	app := fiber.New()
	app.Post("/chat", NewChatController(webhookURL).Relay)
	return app
}

func postChat(t *testing.T, app *fiber.App, body any) (*http.Response, []byte) {
	t.Helper()

	raw, err := sonic.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req, -1)
	require.NoError(t, err)
	out, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	res.Body.Close()
	return res, out
}

func TestRelayForwardsMessageAndReturnsReply(t *testing.T) {
	var received map[string]any
	webhook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = sonic.Unmarshal(raw, &received)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"reply":"Halo! Ada yang bisa dibantu?"}`))
	}))
	defer webhook.Close()

	app := newChatApp(webhook.URL)
	res, body := postChat(t, app, fiber.Map{"message": "halo", "session_id": "sesi-1"})

	require.Equal(t, fiber.StatusOK, res.StatusCode)
	assert.Contains(t, string(body), "Halo! Ada yang bisa dibantu?")
	assert.Equal(t, "halo", received["message"])
	assert.Equal(t, "sesi-1", received["session_id"])
}

func TestRelayRequiresMessage(t *testing.T) {
	app := newChatApp("http://localhost:0")
	res, _ := postChat(t, app, fiber.Map{"session_id": "sesi-1"})
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
}

func TestRelayWithoutWebhookURL(t *testing.T) {
	app := newChatApp("")
	res, _ := postChat(t, app, fiber.Map{"message": "halo"})
	assert.Equal(t, fiber.StatusServiceUnavailable, res.StatusCode)
}

func TestRelayWebhookFailure(t *testing.T) {
	webhook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer webhook.Close()

	app := newChatApp(webhook.URL)
	res, _ := postChat(t, app, fiber.Map{"message": "halo"})
	assert.Equal(t, fiber.StatusBadGateway, res.StatusCode)
}

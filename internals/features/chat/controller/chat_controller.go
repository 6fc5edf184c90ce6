package controller

import (
	"bytes"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"

	helper "belajarku_backend/internals/helpers"
)

// ChatController meneruskan pesan widget chat ke webhook eksternal dan
// mengembalikan balasannya apa adanya. Widget tidak boleh tahu URL webhook.
type ChatController struct {
	WebhookURL string
	Client     *http.Client
}

func NewChatController(webhookURL string) *ChatController {
	return &ChatController{
		WebhookURL: webhookURL,
		Client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// POST /api/chat
func (cc *ChatController) Relay(c *fiber.Ctx) error {
	if cc.WebhookURL == "" {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Layanan chat sedang tidak tersedia")
	}

	var req struct {
		Message   string `json:"message"`
		SessionID string `json:"session_id,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil || req.Message == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Pesan tidak boleh kosong")
	}

	payload, err := sonic.Marshal(req)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses pesan")
	}

	httpReq, err := http.NewRequestWithContext(c.UserContext(), http.MethodPost, cc.WebhookURL, bytes.NewReader(payload))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses pesan")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := cc.Client.Do(httpReq)
	if err != nil {
		log.Println("[ERROR] Webhook chat gagal:", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Layanan chat sedang tidak tersedia")
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil || res.StatusCode < 200 || res.StatusCode >= 300 {
		log.Printf("[ERROR] Webhook chat status %d: %v\n", res.StatusCode, err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Layanan chat sedang tidak tersedia")
	}

	c.Set("Content-Type", "application/json")
	return c.Status(fiber.StatusOK).Send(body)
}

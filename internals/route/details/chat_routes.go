package details

import (
	"github.com/gofiber/fiber/v2"

	"belajarku_backend/internals/configs"
	chatController "belajarku_backend/internals/features/chat/controller"
)

// ChatRoutes: widget chat mengirim pesan tanpa login; webhook URL tetap
// tersembunyi di server.
func ChatRoutes(app *fiber.App) {
	ctrl := chatController.NewChatController(configs.ChatWebhookURL)
	app.Post("/api/chat", ctrl.Relay)
}

package details

import (
	"github.com/gofiber/fiber/v2"

	"belajarku_backend/internals/bootstrap"
	authController "belajarku_backend/internals/features/users/auth/controller"
	middlewares "belajarku_backend/internals/middlewares"
	authMiddleware "belajarku_backend/internals/middlewares/auth"
)

func AuthRoutes(app *fiber.App, deps *bootstrap.Deps) {
	ctrl := authController.NewAuthController(deps.RosterSvc)

	auth := app.Group("/api/auth")
	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	auth.Get("/me", authMiddleware.AuthMiddleware(), ctrl.Me)
	auth.Post("/change-password", authMiddleware.AuthMiddleware(), ctrl.ChangePassword)
}

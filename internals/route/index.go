package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"belajarku_backend/internals/bootstrap"
	authMiddleware "belajarku_backend/internals/middlewares/auth"
	routeDetails "belajarku_backend/internals/route/details"
)

func SetupRoutes(app *fiber.App, deps *bootstrap.Deps) {
	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, deps)

	// ===================== PRIVATE (USER) =====================
	log.Println("[INFO] Setting up PRIVATE group...")
	private := app.Group("/api/u", authMiddleware.AuthMiddleware())
	routeDetails.LearningUserRoutes(private, deps)

	// ===================== CHAT =====================
	log.Println("[INFO] Setting up ChatRoutes...")
	routeDetails.ChatRoutes(app)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(),
		authMiddleware.OnlyRoles("Hanya admin yang boleh mengakses halaman ini", "admin"),
	)
	routeDetails.RosterRoutes(admin, deps)
	routeDetails.AccountRoutes(admin, deps)

	// guru boleh kelola materi; grup terpisah karena role berbeda
	teaching := app.Group("/api/t",
		authMiddleware.AuthMiddleware(),
		authMiddleware.OnlyRoles("Hanya admin atau guru yang boleh mengakses halaman ini", "admin", "teacher"),
	)
	routeDetails.LearningAdminRoutes(teaching, deps)
}

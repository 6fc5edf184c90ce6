package details

import (
	"github.com/gofiber/fiber/v2"

	"belajarku_backend/internals/bootstrap"
	accountsController "belajarku_backend/internals/features/accounts/controller"
	"belajarku_backend/internals/features/roster/model"
	middlewares "belajarku_backend/internals/middlewares"
)

// AccountRoutes: panel "kelola akun" (credential cache, bulk import,
// overview rekonsiliasi) plus Password Status API & Live Password API.
func AccountRoutes(admin fiber.Router, deps *bootstrap.Deps) {
	teacherAcc := accountsController.NewAccountsController(deps.RosterSvc, model.RoleTeacher, deps.TeacherCache, deps.TeacherPoller)
	studentAcc := accountsController.NewAccountsController(deps.RosterSvc, model.RoleStudent, deps.StudentCache, deps.StudentPoller)
	passwordAPI := accountsController.NewPasswordAPIController(deps.Source)

	for prefix, ctrl := range map[string]*accountsController.AccountsController{
		"/teachers": teacherAcc,
		"/students": studentAcc,
	} {
		grp := admin.Group(prefix + "/accounts")
		grp.Get("/created", ctrl.GetCreatedAccounts)
		grp.Delete("/created", ctrl.ClearCreatedAccounts)
		grp.Post("/import", middlewares.ImportRateLimiter(), ctrl.ImportAccounts)
		grp.Get("/overview", ctrl.GetOverview)
		grp.Post("/live-refresh", ctrl.RefreshLive)
	}

	admin.Post("/accounts/password-status", passwordAPI.CheckStatus)
	admin.Post("/accounts/live-password", passwordAPI.LivePassword)
}

package details

import (
	"github.com/gofiber/fiber/v2"

	"belajarku_backend/internals/bootstrap"
	rosterController "belajarku_backend/internals/features/roster/controller"
)

// RosterRoutes: CRUD roster guru & siswa untuk halaman admin.
func RosterRoutes(admin fiber.Router, deps *bootstrap.Deps) {
	teacherCtrl := rosterController.NewTeacherController(deps.RosterSvc, deps.TeacherCache)
	studentCtrl := rosterController.NewStudentController(deps.RosterSvc, deps.StudentCache)

	admin.Get("/teachers", teacherCtrl.GetList)
	admin.Post("/teachers", teacherCtrl.Create)
	admin.Put("/teachers", teacherCtrl.Update)
	admin.Delete("/teachers", teacherCtrl.Delete)

	admin.Get("/students", studentCtrl.GetList)
	admin.Post("/students", studentCtrl.Create)
	admin.Put("/students", studentCtrl.Update)
	admin.Delete("/students", studentCtrl.Delete)
}

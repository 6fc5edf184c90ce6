package details

import (
	"github.com/gofiber/fiber/v2"

	"belajarku_backend/internals/bootstrap"
	learningController "belajarku_backend/internals/features/learning/controller"
)

// LearningAdminRoutes: guru/admin mengelola mata pelajaran & materi.
func LearningAdminRoutes(teaching fiber.Router, deps *bootstrap.Deps) {
	subjectCtrl := learningController.NewSubjectController(deps.DB)
	materialCtrl := learningController.NewMaterialController(deps.DB)

	teaching.Get("/subjects", subjectCtrl.GetSubjects)
	teaching.Post("/subjects", subjectCtrl.CreateSubject)
	teaching.Put("/subjects/:id", subjectCtrl.UpdateSubject)
	teaching.Delete("/subjects/:id", subjectCtrl.DeleteSubject)

	teaching.Post("/materials", materialCtrl.CreateMaterial)
	teaching.Put("/materials/:id", materialCtrl.UpdateMaterial)
	teaching.Delete("/materials/:id", materialCtrl.DeleteMaterial)
}

// LearningUserRoutes: siswa membaca materi & simulasi.
func LearningUserRoutes(private fiber.Router, deps *bootstrap.Deps) {
	subjectCtrl := learningController.NewSubjectController(deps.DB)
	materialCtrl := learningController.NewMaterialController(deps.DB)

	private.Get("/subjects", subjectCtrl.GetSubjects)
	private.Get("/materials", materialCtrl.GetMaterials)
	private.Get("/materials/:id", materialCtrl.GetMaterial)
}

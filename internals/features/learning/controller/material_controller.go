package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"belajarku_backend/internals/features/learning/model"
	helper "belajarku_backend/internals/helpers"
)

type MaterialController struct {
	DB *gorm.DB
}

func NewMaterialController(db *gorm.DB) *MaterialController {
	return &MaterialController{DB: db}
}

// GET /api/u/materials?subject_id=&kind=
func (mc *MaterialController) GetMaterials(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 25, 200)

	tx := mc.DB.WithContext(c.UserContext()).Model(&model.MaterialModel{})
	if raw := c.Query("subject_id"); raw != "" {
		subjectID, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Format UUID tidak valid")
		}
		tx = tx.Where("subject_id = ?", subjectID)
	}
	if kind := c.Query("kind"); kind != "" {
		tx = tx.Where("kind = ?", kind)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		log.Println("[ERROR] Gagal hitung materials:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	var materials []model.MaterialModel
	if err := tx.Order("created_at DESC").Limit(paging.Limit).Offset(paging.Offset).Find(&materials).Error; err != nil {
		log.Println("[ERROR] Gagal ambil materials:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	return helper.JsonList(c, "Materi berhasil diambil", materials,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /api/u/materials/:id
func (mc *MaterialController) GetMaterial(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format UUID tidak valid")
	}

	var material model.MaterialModel
	if err := mc.DB.WithContext(c.UserContext()).First(&material, "id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Materi tidak ditemukan")
	}
	return helper.JsonOK(c, "Materi berhasil diambil", material)
}

// POST /api/a/materials (guru/admin membuat materi, termasuk simulasi)
func (mc *MaterialController) CreateMaterial(c *fiber.Ctx) error {
	var material model.MaterialModel
	if err := c.BodyParser(&material); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if material.Kind == "" {
		material.Kind = model.MaterialKindArticle
	}
	if err := validate.Struct(&material); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMessages(err))
	}

	if creator, ok := c.Locals("user_id").(string); ok {
		if uid, err := uuid.Parse(creator); err == nil {
			material.CreatedBy = uid
		}
	}

	if err := mc.DB.WithContext(c.UserContext()).Create(&material).Error; err != nil {
		log.Println("[ERROR] Gagal create material:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat materi")
	}

	log.Printf("[SUCCESS] Materi dibuat: %s (%s)\n", material.Title, material.Kind)
	return helper.JsonCreated(c, "Materi berhasil dibuat", material)
}

// PUT /api/a/materials/:id
func (mc *MaterialController) UpdateMaterial(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format UUID tidak valid")
	}

	var material model.MaterialModel
	if err := mc.DB.WithContext(c.UserContext()).First(&material, "id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Materi tidak ditemukan")
	}

	var input model.MaterialModel
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if input.Title != "" {
		material.Title = input.Title
	}
	if input.Kind != "" {
		material.Kind = input.Kind
	}
	if input.Content != "" {
		material.Content = input.Content
	}
	if len(input.Config) > 0 {
		material.Config = input.Config
	}
	if err := validate.Struct(&material); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMessages(err))
	}

	if err := mc.DB.WithContext(c.UserContext()).Save(&material).Error; err != nil {
		log.Println("[ERROR] Gagal update material:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui materi")
	}
	return helper.JsonUpdated(c, "Materi berhasil diperbarui", material)
}

// DELETE /api/a/materials/:id
func (mc *MaterialController) DeleteMaterial(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format UUID tidak valid")
	}

	tx := mc.DB.WithContext(c.UserContext()).Delete(&model.MaterialModel{}, "id = ?", id)
	if tx.Error != nil {
		log.Println("[ERROR] Gagal delete material:", tx.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus materi")
	}
	if tx.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Materi tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Materi berhasil dihapus", fiber.Map{"id": id.String()})
}

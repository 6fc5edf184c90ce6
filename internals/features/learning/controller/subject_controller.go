package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"belajarku_backend/internals/features/learning/model"
	helper "belajarku_backend/internals/helpers"
)

var validate = validator.New()

type SubjectController struct {
	DB *gorm.DB
}

func NewSubjectController(db *gorm.DB) *SubjectController {
	return &SubjectController{DB: db}
}

// GET /api/a/subjects?q=
func (sc *SubjectController) GetSubjects(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 25, 200)

	tx := sc.DB.WithContext(c.UserContext()).Model(&model.SubjectModel{})
	if q := c.Query("q"); q != "" {
		like := "%" + q + "%"
		tx = tx.Where("name ILIKE ? OR code ILIKE ?", like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		log.Println("[ERROR] Gagal hitung subjects:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	var subjects []model.SubjectModel
	if err := tx.Order("name ASC").Limit(paging.Limit).Offset(paging.Offset).Find(&subjects).Error; err != nil {
		log.Println("[ERROR] Gagal ambil subjects:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	return helper.JsonList(c, "Mata pelajaran berhasil diambil", subjects,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// POST /api/a/subjects
func (sc *SubjectController) CreateSubject(c *fiber.Ctx) error {
	var subject model.SubjectModel
	if err := c.BodyParser(&subject); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := validate.Struct(&subject); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMessages(err))
	}

	if err := sc.DB.WithContext(c.UserContext()).Create(&subject).Error; err != nil {
		log.Println("[ERROR] Gagal create subject:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat mata pelajaran")
	}

	log.Printf("[SUCCESS] Subject dibuat: %s (%s)\n", subject.Name, subject.Code)
	return helper.JsonCreated(c, "Mata pelajaran berhasil dibuat", subject)
}

// PUT /api/a/subjects/:id
func (sc *SubjectController) UpdateSubject(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format UUID tidak valid")
	}

	var subject model.SubjectModel
	if err := sc.DB.WithContext(c.UserContext()).First(&subject, "id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Mata pelajaran tidak ditemukan")
	}

	var input struct {
		Name        string `json:"name"`
		Code        string `json:"code"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if input.Name != "" {
		subject.Name = input.Name
	}
	if input.Code != "" {
		subject.Code = input.Code
	}
	if input.Description != "" {
		subject.Description = input.Description
	}
	if err := validate.Struct(&subject); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMessages(err))
	}

	if err := sc.DB.WithContext(c.UserContext()).Save(&subject).Error; err != nil {
		log.Println("[ERROR] Gagal update subject:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui mata pelajaran")
	}
	return helper.JsonUpdated(c, "Mata pelajaran berhasil diperbarui", subject)
}

// DELETE /api/a/subjects/:id
func (sc *SubjectController) DeleteSubject(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format UUID tidak valid")
	}

	tx := sc.DB.WithContext(c.UserContext()).Delete(&model.SubjectModel{}, "id = ?", id)
	if tx.Error != nil {
		log.Println("[ERROR] Gagal delete subject:", tx.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus mata pelajaran")
	}
	if tx.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Mata pelajaran tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Mata pelajaran berhasil dihapus", fiber.Map{"id": id.String()})
}

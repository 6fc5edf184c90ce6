package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"belajarku_backend/internals/features/accounts/credcache"
	"belajarku_backend/internals/features/roster/dto"
	"belajarku_backend/internals/features/roster/model"
	"belajarku_backend/internals/features/roster/service"
	helper "belajarku_backend/internals/helpers"
)

var validate = validator.New()

// RosterController melayani CRUD roster untuk satu peran (teachers atau
// students). Create yang sukses dicatat ke credential cache supaya password
// sementara tetap bisa ditampilkan setelah backend tidak lagi
// mengembalikannya.
type RosterController struct {
	Svc   *service.Service
	Role  string
	Cache *credcache.Store
}

func NewTeacherController(svc *service.Service, cache *credcache.Store) *RosterController {
	return &RosterController{Svc: svc, Role: model.RoleTeacher, Cache: cache}
}

func NewStudentController(svc *service.Service, cache *credcache.Store) *RosterController {
	return &RosterController{Svc: svc, Role: model.RoleStudent, Cache: cache}
}

// GET /api/a/teachers?q=&page=&per_page=
func (rc *RosterController) GetList(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 25, 200)

	users, total, err := rc.Svc.List(c.UserContext(), rc.Role, c.Query("q"), paging.Limit, paging.Offset)
	if err != nil {
		log.Println("[ERROR] Gagal ambil roster:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	return helper.JsonList(c, "Data berhasil diambil", dto.ToUserResponses(users),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// POST /api/a/teachers
func (rc *RosterController) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMessages(err))
	}

	u, err := rc.Svc.Create(c.UserContext(), service.CreateInput{
		Role:     rc.Role,
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Profile:  req.Profile(),
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailExists) {
			return helper.JsonErrorCode(c, fiber.StatusConflict, "email_exists", "Email sudah terdaftar")
		}
		log.Println("[ERROR] Gagal create user:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat akun")
	}

	// catat password sementara yang barusan disetel admin
	rc.Cache.Append([]credcache.Record{{
		ID:                u.ID.String(),
		FullName:          u.FullName,
		Email:             u.Email,
		TemporaryPassword: req.Password,
	}})

	log.Printf("[SUCCESS] Akun %s dibuat: %s\n", rc.Role, u.Email)
	return helper.JsonCreated(c, "Akun berhasil dibuat", dto.ToUserResponse(u))
}

// PUT /api/a/teachers
func (rc *RosterController) Update(c *fiber.Ctx) error {
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMessages(err))
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format UUID tidak valid")
	}

	u, err := rc.Svc.Update(c.UserContext(), id, service.UpdateInput{
		FullName: req.FullName,
		Password: req.Password,
		Profile:  req.Profile(),
		IsActive: req.IsActive,
	})
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
		}
		log.Println("[ERROR] Gagal update user:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui akun")
	}

	// admin menyetel ulang password → nilai barunya jadi temp yang berlaku
	if req.Password != "" {
		rc.Cache.Append([]credcache.Record{{
			ID:                u.ID.String(),
			FullName:          u.FullName,
			Email:             u.Email,
			TemporaryPassword: req.Password,
		}})
	}

	return helper.JsonUpdated(c, "Akun berhasil diperbarui", dto.ToUserResponse(u))
}

// DELETE /api/a/teachers?id=<uuid>
func (rc *RosterController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Query("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format UUID tidak valid")
	}

	if err := rc.Svc.Delete(c.UserContext(), id, rc.Role); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
		}
		log.Println("[ERROR] Gagal delete user:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus akun")
	}

	log.Printf("[SUCCESS] Akun %s dihapus: %s\n", rc.Role, id)
	return helper.JsonDeleted(c, "Akun berhasil dihapus", fiber.Map{"id": id.String()})
}

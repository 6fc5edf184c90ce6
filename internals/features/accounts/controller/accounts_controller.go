package controller

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"belajarku_backend/internals/features/accounts/credcache"
	"belajarku_backend/internals/features/accounts/importer"
	"belajarku_backend/internals/features/accounts/passstatus"
	"belajarku_backend/internals/features/accounts/reconcile"
	"belajarku_backend/internals/features/roster/dto"
	"belajarku_backend/internals/features/roster/service"
	helper "belajarku_backend/internals/helpers"
)

// Batch import bisa berisi ratusan baris dengan bcrypt per baris; deadline
// per-request terlalu pendek untuk itu.
const importTimeout = 10 * time.Minute

// AccountsController melayani panel "kelola akun" untuk satu roster type:
// daftar akun yang dibuat (credential cache), bulk import, dan view roster
// yang sudah direkonsiliasi dengan status/live password.
type AccountsController struct {
	Svc    *service.Service
	Role   string
	Cache  *credcache.Store
	Poller *passstatus.Poller
}

func NewAccountsController(svc *service.Service, role string, cache *credcache.Store, poller *passstatus.Poller) *AccountsController {
	return &AccountsController{Svc: svc, Role: role, Cache: cache, Poller: poller}
}

// GET /api/a/teachers/accounts/created
func (ac *AccountsController) GetCreatedAccounts(c *fiber.Ctx) error {
	records := ac.Cache.Records()
	return helper.JsonOK(c, "Daftar akun yang dibuat", fiber.Map{
		"total":   len(records),
		"records": records,
	})
}

// DELETE /api/a/teachers/accounts/created?confirm=true
// Konfirmasi eksplisit wajib: tanpa confirm=true daftar tidak disentuh.
func (ac *AccountsController) ClearCreatedAccounts(c *fiber.Ctx) error {
	if c.Query("confirm") != "true" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Butuh konfirmasi: tambahkan ?confirm=true")
	}
	ac.Cache.Clear()
	log.Printf("[SUCCESS] Credential cache %s dikosongkan\n", ac.Cache.Key())
	return helper.JsonDeleted(c, "Daftar akun yang dibuat sudah dihapus", nil)
}

// POST /api/a/teachers/accounts/import  (multipart, field "file")
func (ac *AccountsController) ImportAccounts(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File spreadsheet wajib diunggah (field \"file\")")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File tidak bisa dibuka")
	}
	defer f.Close()

	rows, err := importer.ParseXLSX(f)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	runner := &importer.Runner{
		Role:  ac.Role,
		Cache: ac.Cache,
		Creator: importer.CreatorFunc(func(ctx context.Context, in service.CreateInput) (string, string, string, error) {
			u, err := ac.Svc.Create(ctx, in)
			if err != nil {
				return "", "", "", err
			}
			return u.ID.String(), u.FullName, u.Email, nil
		}),
		OnProgress: func(pct int) {
			log.Printf("[IMPORT] %s: %d%%\n", ac.Role, pct)
		},
	}

	// lepas dari deadline per-request supaya baris di ekor batch tidak gagal
	// karena timeout, bukan karena datanya
	runCtx, cancel := context.WithTimeout(context.WithoutCancel(c.UserContext()), importTimeout)
	defer cancel()

	report := runner.Run(runCtx, rows)
	log.Printf("[SUCCESS] Import %s selesai: %d sukses, %d gagal\n", ac.Role, report.Success, report.Failed)
	return helper.JsonOK(c, "Import selesai", report)
}

// GET /api/a/teachers/accounts/overview
// Roster plus hasil rekonsiliasi password per user, dibangun ulang dari state
// terkini setiap panggilan.
func (ac *AccountsController) GetOverview(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 25, 200)

	users, total, err := ac.Svc.List(c.UserContext(), ac.Role, c.Query("q"), paging.Limit, paging.Offset)
	if err != nil {
		log.Println("[ERROR] Gagal ambil roster:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	status := ac.Poller.StatusSnapshot()
	live := ac.Poller.LiveSnapshot()

	type rowView struct {
		dto.UserResponse
		Password reconcile.View `json:"password_view"`
	}

	out := make([]rowView, 0, len(users))
	for i := range users {
		u := &users[i]
		out = append(out, rowView{
			UserResponse: dto.ToUserResponse(u),
			Password: reconcile.Resolve(
				reconcile.Identity{ID: u.ID.String(), Email: u.Email},
				ac.Cache.FindTemporary,
				status, live,
			),
		})
	}

	c.Set("Cache-Control", "no-store")
	return helper.JsonList(c, "Roster + status password", out,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// POST /api/a/teachers/accounts/live-refresh  body {"userId": "..."}
// Aksi "muat" manual dari UI saat nilai live belum ada.
func (ac *AccountsController) RefreshLive(c *fiber.Ctx) error {
	var req struct {
		UserID string `json:"userId"`
	}
	if err := c.BodyParser(&req); err != nil || req.UserID == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "userId wajib diisi")
	}

	ac.Poller.FetchLive(c.UserContext(), req.UserID)
	live := ac.Poller.LiveSnapshot()[req.UserID]
	c.Set("Cache-Control", "no-store")
	return helper.JsonOK(c, "Nilai live dimuat ulang", live)
}

// PasswordAPIController mengimplementasikan Password Status API dan Live
// Password API (lintas roster type) yang dikonsumsi poller/klien.
type PasswordAPIController struct {
	Source passstatus.Source
}

func NewPasswordAPIController(source passstatus.Source) *PasswordAPIController {
	return &PasswordAPIController{Source: source}
}

// POST /api/a/accounts/password-status  body {"userIds": [...]}
func (pc *PasswordAPIController) CheckStatus(c *fiber.Ctx) error {
	var req struct {
		UserIDs []string `json:"userIds"`
	}
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}

	statuses, err := pc.Source.CheckStatus(c.UserContext(), req.UserIDs)
	if err != nil {
		log.Println("[ERROR] Cek status password gagal:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal cek status password")
	}

	type result struct {
		ID                 string `json:"id"`
		PasswordChanged    bool   `json:"passwordChanged"`
		LastPasswordChange any    `json:"lastPasswordChange,omitempty"`
	}
	results := make([]result, 0, len(statuses))
	for id, st := range statuses {
		r := result{ID: id, PasswordChanged: st.Changed}
		if st.LastChange != nil {
			r.LastPasswordChange = st.LastChange
		}
		results = append(results, r)
	}

	c.Set("Cache-Control", "no-store")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"results": results})
}

// POST /api/a/accounts/live-password  body {"userId": "..."}
func (pc *PasswordAPIController) LivePassword(c *fiber.Ctx) error {
	var req struct {
		UserID string `json:"userId"`
	}
	if err := c.BodyParser(&req); err != nil || req.UserID == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "userId wajib diisi")
	}
	if _, err := uuid.Parse(req.UserID); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format UUID tidak valid")
	}

	live, err := pc.Source.FetchLive(c.UserContext(), req.UserID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
		}
		log.Println("[ERROR] Ambil live password gagal:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal ambil password")
	}

	c.Set("Cache-Control", "no-store")
	return c.Status(fiber.StatusOK).JSON(live)
}

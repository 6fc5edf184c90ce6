package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"

	"belajarku_backend/internals/features/roster/model"
	"belajarku_backend/internals/features/roster/repository"
)

// Re-export sentinel repo errors biar pemanggil cukup import service.
var (
	ErrNotFound    = repository.ErrNotFound
	ErrEmailExists = repository.ErrEmailExists
)

var ErrWrongPassword = errors.New("password salah")

// Service memegang aturan bisnis roster: normalisasi email, hashing,
// pembukuan kapan password disetel admin vs diganti user.
type Service struct {
	repo repository.UserRepository
}

func NewService(repo repository.UserRepository) *Service {
	return &Service{repo: repo}
}

// Repo mengekspos repository untuk adapter (mis. sumber status password).
func (s *Service) Repo() repository.UserRepository { return s.repo }

type CreateInput struct {
	Role     string
	FullName string
	Email    string
	Password string
	// Atribut spesifik peran: kelas, telepon, dst.
	Profile map[string]string
	// SendEmail selalu false di alur admin; disimpan untuk kompatibilitas body.
	SendEmail bool
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create membuat satu akun. Email dinormalkan; password disimpan sebagai
// hash bcrypt plus mirror plaintext untuk API live-password; password_set_at
// menandai momen admin menyetel password ini.
func (s *Service) Create(ctx context.Context, in CreateInput) (*model.UserModel, error) {
	// cek sebelum kerja berat; bcrypt + query tidak murah
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = NormalizeEmail(in.Email)
	in.Password = strings.TrimSpace(in.Password)

	if in.FullName == "" || in.Email == "" || in.Password == "" {
		return nil, errors.New("nama, email, dan password wajib diisi")
	}

	if _, err := s.repo.FindByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	u := &model.UserModel{
		Role:          in.Role,
		FullName:      in.FullName,
		Email:         in.Email,
		Password:      string(hash),
		PasswordPlain: in.Password,
		PasswordSetAt: &now,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if len(in.Profile) > 0 {
		raw, err := sonic.Marshal(in.Profile)
		if err != nil {
			return nil, err
		}
		u.Profile = datatypes.JSON(raw)
	}

	if err := u.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// List mengembalikan roster untuk satu peran, dengan pencarian nama/email.
func (s *Service) List(ctx context.Context, role, q string, limit, offset int) ([]model.UserModel, int64, error) {
	return s.repo.List(ctx, role, q, limit, offset)
}

func (s *Service) ListIDs(ctx context.Context, role string) ([]string, error) {
	return s.repo.ListIDs(ctx, role)
}

func (s *Service) FindByID(ctx context.Context, id uuid.UUID) (*model.UserModel, error) {
	return s.repo.FindByID(ctx, id)
}

type UpdateInput struct {
	FullName string
	// Password baru dari admin; kosong = tidak diganti.
	Password string
	Profile  map[string]string
	IsActive *bool
}

// Update mengubah data user. Password baru dari admin dihitung sebagai
// "disetel ulang": password_set_at maju, password_changed_at dikosongkan.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*model.UserModel, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(in.FullName); name != "" {
		u.FullName = name
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	if len(in.Profile) > 0 {
		raw, err := sonic.Marshal(in.Profile)
		if err != nil {
			return nil, err
		}
		u.Profile = datatypes.JSON(raw)
	}

	if pw := strings.TrimSpace(in.Password); pw != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		now := time.Now()
		u.Password = string(hash)
		u.PasswordPlain = pw
		u.PasswordSetAt = &now
		u.PasswordChangedAt = nil
	}

	u.UpdatedAt = time.Now()
	if err := u.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Delete menghapus user; role membatasi supaya endpoint teachers tidak bisa
// menghapus student dan sebaliknya.
func (s *Service) Delete(ctx context.Context, id uuid.UUID, role string) error {
	affected, err := s.repo.Delete(ctx, id, role)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Authenticate memverifikasi email+password untuk login.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*model.UserModel, error) {
	u, err := s.repo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, ErrWrongPassword
	}
	return u, nil
}

// ChangeOwnPassword: user mengganti passwordnya sendiri; password_changed_at
// maju sehingga status berikutnya melaporkan passwordChanged=true.
func (s *Service) ChangeOwnPassword(ctx context.Context, id uuid.UUID, current, newPassword string) error {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(current)) != nil {
		return ErrWrongPassword
	}

	newPassword = strings.TrimSpace(newPassword)
	if len(newPassword) < 6 {
		return errors.New("password baru minimal 6 karakter")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := time.Now()
	u.Password = string(hash)
	u.PasswordPlain = newPassword
	u.PasswordChangedAt = &now
	u.UpdatedAt = now
	return s.repo.Update(ctx, u)
}

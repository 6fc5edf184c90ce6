package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"belajarku_backend/internals/features/roster/model"
)

// Sentinel error lintas layer; controller menerjemahkannya ke kode HTTP.
var (
	ErrNotFound    = errors.New("user tidak ditemukan")
	ErrEmailExists = errors.New("email sudah terdaftar")
)

// UserRepository membungkus akses tabel users supaya service dan test bisa
// memakai storage berbeda (GORM di produksi, in-memory di test).
type UserRepository interface {
	List(ctx context.Context, role, q string, limit, offset int) ([]model.UserModel, int64, error)
	ListIDs(ctx context.Context, role string) ([]string, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.UserModel, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.UserModel, error)
	FindByEmail(ctx context.Context, email string) (*model.UserModel, error)
	Create(ctx context.Context, u *model.UserModel) error
	Update(ctx context.Context, u *model.UserModel) error
	Delete(ctx context.Context, id uuid.UUID, role string) (int64, error)
}

package model

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Validator instance
var validate = validator.New()

// Peran yang dikenal sistem.
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// UserModel merepresentasikan tabel users: admin, guru, dan siswa dalam satu
// tabel dengan kolom role. Kolom password menyimpan hash bcrypt; kolom
// password_plain menyimpan nilai yang sedang berlaku supaya API live-password
// bisa menjawab (meniru BaaS asal yang bisa mengembalikan nilai password).
type UserModel struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Role     string    `gorm:"type:varchar(20);not null;default:'student'" json:"role" validate:"required,oneof=admin teacher student"`
	FullName string    `gorm:"size:100;not null" json:"full_name" validate:"required,min=3,max=100"`
	Email    string    `gorm:"size:255;unique;not null" json:"email" validate:"required,email"`

	Password          string     `gorm:"not null" json:"-" validate:"required,min=6"`
	PasswordPlain     string     `gorm:"size:255" json:"-"`
	PasswordSetAt     *time.Time `json:"-"`
	PasswordChangedAt *time.Time `json:"-"`

	// Atribut spesifik peran (kelas, telepon, dst) disimpan sebagai JSONB.
	Profile datatypes.JSON `gorm:"type:jsonb" json:"profile,omitempty"`

	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (UserModel) TableName() string {
	return "users"
}

// SetDefaultValues memastikan nilai default sebelum validasi
func (u *UserModel) SetDefaultValues() {
	if u.Role == "" {
		u.Role = RoleStudent
	}
}

// Validate memeriksa apakah input sesuai aturan yang telah didefinisikan
func (u *UserModel) Validate() error {
	u.SetDefaultValues()

	if err := validate.Struct(u); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// PasswordIsChanged: true kalau user sudah mengganti password sejak terakhir
// kali admin menyetelnya.
func (u *UserModel) PasswordIsChanged() bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	if u.PasswordSetAt == nil {
		return true
	}
	return u.PasswordChangedAt.After(*u.PasswordSetAt)
}

// PasswordUpdatedAt: timestamp nilai password yang berlaku sekarang.
func (u *UserModel) PasswordUpdatedAt() *time.Time {
	if u.PasswordIsChanged() {
		return u.PasswordChangedAt
	}
	return u.PasswordSetAt
}

// formatValidationError mengubah error validasi menjadi format yang lebih jelas
func formatValidationError(err error) error {
	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		var msg string
		for _, fieldErr := range validationErrs {
			switch fieldErr.Tag() {
			case "required":
				msg += fieldErr.Field() + " wajib diisi.\n"
			case "email":
				msg += "Format email tidak valid.\n"
			case "min":
				msg += fieldErr.Field() + " harus minimal " + fieldErr.Param() + " karakter.\n"
			case "max":
				msg += fieldErr.Field() + " harus kurang dari " + fieldErr.Param() + " karakter.\n"
			case "oneof":
				msg += fieldErr.Field() + " harus salah satu dari " + fieldErr.Param() + ".\n"
			default:
				msg += fieldErr.Field() + ": format tidak valid.\n"
			}
		}
		return errors.New(msg)
	}
	return err
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Jenis materi yang dikenal halaman siswa.
const (
	MaterialKindArticle    = "article"
	MaterialKindFlowchart  = "flowchart"
	MaterialKindArithmetic = "arithmetic"
)

// MaterialModel merepresentasikan tabel learning_materials: materi ajar per
// mata pelajaran, termasuk konfigurasi simulasi interaktif (flowchart,
// latihan ekspresi aritmatika) yang disimpan sebagai JSONB.
type MaterialModel struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SubjectID uuid.UUID `gorm:"type:uuid;not null;index" json:"subject_id" validate:"required"`
	Title     string    `gorm:"size:200;not null" json:"title" validate:"required,min=2,max=200"`
	Kind      string    `gorm:"type:varchar(20);not null;default:'article'" json:"kind" validate:"required,oneof=article flowchart arithmetic"`
	Content   string    `gorm:"type:text" json:"content,omitempty"`

	// Konfigurasi simulasi (node flowchart, soal aritmatika, dst).
	Config datatypes.JSON `gorm:"type:jsonb" json:"config,omitempty"`

	CreatedBy uuid.UUID `gorm:"type:uuid" json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (MaterialModel) TableName() string {
	return "learning_materials"
}

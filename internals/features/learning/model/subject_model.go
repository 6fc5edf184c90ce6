package model

import (
	"time"

	"github.com/google/uuid"
)

// SubjectModel merepresentasikan tabel subjects (mata pelajaran).
type SubjectModel struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name" validate:"required,min=2,max=100"`
	Code        string    `gorm:"size:20;unique;not null" json:"code" validate:"required,min=2,max=20"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SubjectModel) TableName() string {
	return "subjects"
}

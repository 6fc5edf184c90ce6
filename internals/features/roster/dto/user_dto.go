package dto

import (
	"time"

	"gorm.io/datatypes"

	"belajarku_backend/internals/features/roster/model"
)

type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name" validate:"required,min=3,max=100"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone,omitempty"`
	Class    string `json:"class,omitempty"`
	// Selalu false dari halaman admin; password disampaikan manual.
	SendEmail bool `json:"sendEmail"`
}

func (r CreateUserRequest) Profile() map[string]string {
	p := map[string]string{}
	if r.Phone != "" {
		p["phone"] = r.Phone
	}
	if r.Class != "" {
		p["class"] = r.Class
	}
	return p
}

type UpdateUserRequest struct {
	ID       string `json:"id" validate:"required,uuid4"`
	FullName string `json:"full_name,omitempty" validate:"omitempty,min=3,max=100"`
	Password string `json:"password,omitempty" validate:"omitempty,min=6"`
	Phone    string `json:"phone,omitempty"`
	Class    string `json:"class,omitempty"`
	IsActive *bool  `json:"is_active,omitempty"`
}

func (r UpdateUserRequest) Profile() map[string]string {
	p := map[string]string{}
	if r.Phone != "" {
		p["phone"] = r.Phone
	}
	if r.Class != "" {
		p["class"] = r.Class
	}
	return p
}

type UserResponse struct {
	ID        string         `json:"id"`
	Role      string         `json:"role"`
	FullName  string         `json:"full_name"`
	Email     string         `json:"email"`
	Profile   datatypes.JSON `json:"profile,omitempty"`
	IsActive  bool           `json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
}

func ToUserResponse(u *model.UserModel) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Role:      u.Role,
		FullName:  u.FullName,
		Email:     u.Email,
		Profile:   u.Profile,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

func ToUserResponses(users []model.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, ToUserResponse(&users[i]))
	}
	return out
}

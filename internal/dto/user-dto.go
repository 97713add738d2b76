package dto

import "github.com/aarondl/null/v8"

type CreateUserDTO struct {
	Username  string  `json:"username" validate:"required,min=3,max=64"`
	FullName  string  `json:"full_name" validate:"required,min=2"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Password  string  `json:"password" validate:"required,min=8"`
	RoleID    uint64  `json:"role_id" validate:"required,gt=0"`
	SectionID *uint64 `json:"section_id,omitempty" validate:"omitempty,gt=0"`
}

type UpdateUserDTO struct {
	FullName  *string     `json:"full_name,omitempty" validate:"omitempty,min=2"`
	Email     *string     `json:"email,omitempty" validate:"omitempty,email"`
	Password  *string     `json:"password,omitempty" validate:"omitempty,min=8"`
	RoleID    null.Uint64 `json:"role_id,omitempty"`
	SectionID null.Uint64 `json:"section_id,omitempty"`
}

type UserDTO struct {
	ID        uint64       `json:"id"`
	Username  string       `json:"username"`
	FullName  string       `json:"full_name"`
	Email     string       `json:"email,omitempty"`
	RoleID    uint64       `json:"role_id"`
	Role      *ShortRefDTO `json:"role,omitempty"`
	SectionID *uint64      `json:"section_id,omitempty"`
	CreatedAt string       `json:"created_at"`
	UpdatedAt string       `json:"updated_at,omitempty"`
}

package entities

import "checksheet-system/pkg/types"

type User struct {
	ID           uint64  `json:"id"`
	Username     string  `json:"username"`
	FullName     string  `json:"full_name"`
	Email        *string `json:"email"`
	PasswordHash string  `json:"-"`
	RoleID       uint64  `json:"role_id"`
	SectionID    *uint64 `json:"section_id"`

	types.BaseEntity
	types.SoftDelete
}

type Role struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`

	types.BaseEntity
}

type Permission struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

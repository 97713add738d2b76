package dto

import "github.com/aarondl/null/v8"

type CreatePartDTO struct {
	PartCode string `json:"part_code" validate:"required,min=2,max=32"`
	Name     string `json:"name" validate:"required,min=2"`
	ModelID  uint64 `json:"model_id" validate:"required,gt=0"`
}

type UpdatePartDTO struct {
	PartCode *string     `json:"part_code,omitempty" validate:"omitempty,min=2,max=32"`
	Name     *string     `json:"name,omitempty" validate:"omitempty,min=2"`
	ModelID  null.Uint64 `json:"model_id,omitempty"`
}

type PartDTO struct {
	ID        uint64       `json:"id"`
	PartCode  string       `json:"part_code"`
	Name      string       `json:"name"`
	Model     *ShortRefDTO `json:"model,omitempty"`
	ModelID   uint64       `json:"model_id"`
	CreatedAt string       `json:"created_at"`
	UpdatedAt string       `json:"updated_at,omitempty"`
}

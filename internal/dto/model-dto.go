package dto

import "github.com/aarondl/null/v8"

type CreateModelDTO struct {
	ModelCode  string `json:"model_code" validate:"required,min=2,max=32"`
	Name       string `json:"name" validate:"required,min=2"`
	CustomerID uint64 `json:"customer_id" validate:"required,gt=0"`
}

type UpdateModelDTO struct {
	ModelCode  *string     `json:"model_code,omitempty" validate:"omitempty,min=2,max=32"`
	Name       *string     `json:"name,omitempty" validate:"omitempty,min=2"`
	CustomerID null.Uint64 `json:"customer_id,omitempty"`
}

type ModelDTO struct {
	ID         uint64       `json:"id"`
	ModelCode  string       `json:"model_code"`
	Name       string       `json:"name"`
	Customer   *ShortRefDTO `json:"customer,omitempty"`
	CustomerID uint64       `json:"customer_id"`
	CreatedAt  string       `json:"created_at"`
	UpdatedAt  string       `json:"updated_at,omitempty"`
}

package dto

type CreateMaterialDTO struct {
	MaterialCode string `json:"material_code" validate:"required,min=2,max=32"`
	Name         string `json:"name" validate:"required,min=2"`
}

type UpdateMaterialDTO struct {
	MaterialCode *string `json:"material_code,omitempty" validate:"omitempty,min=2,max=32"`
	Name         *string `json:"name,omitempty" validate:"omitempty,min=2"`
}

type MaterialDTO struct {
	ID           uint64 `json:"id"`
	MaterialCode string `json:"material_code"`
	Name         string `json:"name"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at,omitempty"`
}
